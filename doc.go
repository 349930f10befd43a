// Package elsa is a compact, embeddable JSON toolkit for in-memory byte
// buffers: a streaming validator/walker, a path-driven extractor (Scanf), a
// formatted emitter (Printf) that produces well-formed JSON from format
// templates, and a structural editor (Setf) that rewrites a document by
// replacing, deleting or inserting values at a path.
//
// The package accepts a permissive superset of RFC 8259: object keys may be
// unquoted barewords, and whitespace is tolerated anywhere between tokens.
// Everything else follows strict JSON.
package elsa

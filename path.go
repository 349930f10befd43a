package elsa

import (
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MaxPathLen caps the length, in bytes, that a dotted/indexed path is allowed
// to grow to while walking. Once a path would exceed the cap, the segment
// that pushed it over is truncated so the path never exceeds MaxPathLen and
// no previously-written segment is corrupted. Visitors that match paths by
// equality against deeply nested documents must be prepared for the
// truncated form.
const MaxPathLen = 60

// pathBuilder accumulates a dotted/indexed path as the walker descends into
// a document. It reuses its backing array across frames so walking does not
// allocate a new string per level.
type pathBuilder struct {
	buf []byte
}

// bytes returns a view of the path as built so far. Like Token, the slice
// aliases pathBuilder's backing array: it stays valid while nothing writes
// into its own index range, which holds for the lifetime of one Visitor
// call, but a caller that wants to retain it past that must copy.
func (p *pathBuilder) bytes() []byte {
	return p.buf
}

// len returns the number of bytes currently in the path.
func (p *pathBuilder) len() int { return len(p.buf) }

// truncate resets the path back to a previously recorded length, as when
// popping out of a container.
func (p *pathBuilder) truncate(n int) {
	p.buf = p.buf[:n]
}

// pushKey appends ".<key>" for an object member, returning the path length
// before the push so the caller can truncate back to it later. Previously
// written bytes are never touched; only the newly appended segment is
// subject to truncation at MaxPathLen.
//
// key is normalized to NFC first: the path grammar allows verbatim UTF-8 in
// a bareword key, and two keys that render identically but differ in
// combining-mark order would otherwise compare unequal under pathEqual's
// plain byte compare. normalizedKey is the fast path — most keys are
// already NFC-normal and cost only the scan — falling back to norm.NFC.AppendString
// only when that scan finds otherwise.
func (p *pathBuilder) pushKey(key []byte) int {
	mark := len(p.buf)
	p.buf = append(p.buf, '.')
	if normalizedKey(key) {
		p.buf = append(p.buf, key...)
	} else {
		p.buf = norm.NFC.AppendString(p.buf, string(key))
	}
	if len(p.buf) > MaxPathLen {
		p.buf = p.buf[:MaxPathLen]
	}
	return mark
}

// pushIndex appends "[N]" for an array element, under the same truncation
// discipline as pushKey.
func (p *pathBuilder) pushIndex(index int) int {
	mark := len(p.buf)
	p.buf = append(p.buf, '[')
	p.buf = strconv.AppendInt(p.buf, int64(index), 10)
	p.buf = append(p.buf, ']')
	if len(p.buf) > MaxPathLen {
		p.buf = p.buf[:MaxPathLen]
	}
	return mark
}

// segment describes one step of a dotted/indexed path as consumed while
// compiling a format string for Scanf/Setf.
type segment struct {
	key      string // object member, when isIndex and isPush are both false
	index    int    // array index, when isIndex is true
	isIndex  bool
	isPush   bool // bare "[]" — editor-only array push marker
}

// splitPath parses a compiled path string (as produced by pathBuilder, or by
// compiling a Scanf/Setf format) into its segments.
func splitPath(path string) []segment {
	var segs []segment
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			i++
			start := i
			for i < len(path) && path[i] != '.' && path[i] != '[' {
				i++
			}
			segs = append(segs, segment{key: path[start:i]})
		case '[':
			i++
			if i < len(path) && path[i] == ']' {
				segs = append(segs, segment{isIndex: true, isPush: true})
				i++
				continue
			}
			start := i
			for i < len(path) && path[i] != ']' {
				i++
			}
			n, _ := strconv.Atoi(path[start:i])
			segs = append(segs, segment{index: n, isIndex: true})
			if i < len(path) {
				i++
			}
		default:
			i++
		}
	}
	return segs
}

package elsa

import "strconv"

// Walk scans source as a permissive superset of RFC 8259 JSON, calling
// visit once per container enter/exit and once per terminal scalar, in
// depth-first source order. visit may be nil, in which case Walk is a pure
// validator.
//
// Accepted deviations from strict JSON: object keys may be barewords
// matching [A-Za-z_][A-Za-z0-9_\-]* as well as quoted strings, and
// whitespace is tolerated anywhere between tokens. A top-level value may be
// any JSON value, including a bare scalar.
//
// Walk returns the number of source bytes consumed through the end of the
// root value — trailing bytes beyond it, including trailing whitespace, are
// never consumed — or one of the Invalid_/Incomplete_ sentinels.
func Walk(source []byte, visit Visitor) int {
	if len(source) == 0 {
		return Invalid_
	}
	w := &walker{src: source, visit: visit}
	if code := w.parseValue(nameNone, nil, 0); code != 0 {
		return code
	}
	return w.pos
}

type nameKind int

const (
	nameNone nameKind = iota
	nameKey
	nameIndex
)

// walker is a recursive-descent scanner over a single source buffer. Its
// path buffer is shared and reused across the whole recursion: each frame
// appends its own segment, hands a view of the buffer to the Visitor, then
// truncates back to its entry mark before returning. Because every nested
// frame only ever writes at or beyond its own mark, a path view handed to
// the Visitor is never corrupted for the duration of that call — only by
// what happens after it returns.
type walker struct {
	src    []byte
	pos    int
	path   pathBuilder
	visit  Visitor
	idxbuf []byte
}

// parseValue parses the value found at the walker's current position (after
// skipping leading whitespace), pushing the path segment described by kind
// and name/index first.
func (w *walker) parseValue(kind nameKind, name []byte, index int) int {
	w.skipWS()
	if w.pos >= len(w.src) {
		return Incomplete_
	}

	var mark int
	switch kind {
	case nameKey:
		mark = w.path.pushKey(name)
	case nameIndex:
		mark = w.path.pushIndex(index)
	default:
		mark = w.path.len()
	}
	defer w.path.truncate(mark)

	hasName := kind != nameNone
	path := w.path.bytes()
	eventName := name
	if kind == nameIndex {
		eventName = w.indexText(index)
	}

	switch c := w.src[w.pos]; {
	case c == '{':
		return w.parseContainer(ObjectStart, ObjectEnd, '}', true, hasName, eventName, path)
	case c == '[':
		return w.parseContainer(ArrayStart, ArrayEnd, ']', false, hasName, eventName, path)
	case c == '"':
		return w.parseStringValue(hasName, eventName, path)
	case c == 't':
		return w.parseLiteral("true", True, hasName, eventName, path)
	case c == 'f':
		return w.parseLiteral("false", False, hasName, eventName, path)
	case c == 'n':
		return w.parseLiteral("null", Null, hasName, eventName, path)
	case c == '-' || (c >= '0' && c <= '9'):
		return w.parseNumber(hasName, eventName, path)
	default:
		return Invalid_
	}
}

// indexText renders index as decimal text into a small per-walker scratch
// buffer, reused (and overwritten) on every array element — the Go
// translation of the reference walker's caller-visible scratch area for
// array-index names.
func (w *walker) indexText(index int) []byte {
	w.idxbuf = strconv.AppendInt(w.idxbuf[:0], int64(index), 10)
	return w.idxbuf
}

func (w *walker) skipWS() {
	for w.pos < len(w.src) {
		switch w.src[w.pos] {
		case ' ', '\t', '\r', '\n':
			w.pos++
		default:
			return
		}
	}
}

func (w *walker) parseContainer(enter, exit Kind, closeC byte, isObject bool, hasName bool, name, path []byte) int {
	start := w.pos
	w.pos++ // consume '{' or '['
	w.emit(enter, hasName, name, path, nil, start, start)

	w.skipWS()
	if w.pos >= len(w.src) {
		return Incomplete_
	}
	if w.src[w.pos] != closeC {
		index := 0
		for {
			w.skipWS()
			if w.pos >= len(w.src) {
				return Incomplete_
			}
			if isObject {
				key, code := w.parseKey()
				if code != 0 {
					return code
				}
				w.skipWS()
				if w.pos >= len(w.src) {
					return Incomplete_
				}
				if w.src[w.pos] != ':' {
					return Invalid_
				}
				w.pos++
				if code := w.parseValue(nameKey, key, 0); code != 0 {
					return code
				}
			} else {
				if code := w.parseValue(nameIndex, nil, index); code != 0 {
					return code
				}
				index++
			}
			w.skipWS()
			if w.pos >= len(w.src) {
				return Incomplete_
			}
			if w.src[w.pos] == ',' {
				w.pos++
				continue
			}
			if w.src[w.pos] == closeC {
				break
			}
			return Invalid_
		}
	}
	w.pos++ // consume closing brace/bracket
	w.emit(exit, false, nil, path, w.src[start:w.pos], start, w.pos)
	return 0
}

func (w *walker) parseKey() ([]byte, int) {
	if w.src[w.pos] == '"' {
		return w.scanStringBody()
	}
	c := w.src[w.pos]
	if !isKeyStart(c) {
		return nil, Invalid_
	}
	start := w.pos
	w.pos++
	for w.pos < len(w.src) && isKeyCont(w.src[w.pos]) {
		w.pos++
	}
	return w.src[start:w.pos], 0
}

func isKeyStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isKeyCont(c byte) bool {
	return isKeyStart(c) || (c >= '0' && c <= '9') || c == '-'
}

// scanStringBody parses a double-quoted string starting at the current
// position, validating (but not decoding) escapes, and returns the raw
// bytes between the quotes.
func (w *walker) scanStringBody() ([]byte, int) {
	w.pos++ // opening quote
	bodyStart := w.pos
	for {
		if w.pos >= len(w.src) {
			return nil, Incomplete_
		}
		switch c := w.src[w.pos]; {
		case c == '"':
			body := w.src[bodyStart:w.pos]
			w.pos++
			return body, 0
		case c == '\\':
			if w.pos+1 >= len(w.src) {
				return nil, Incomplete_
			}
			switch w.src[w.pos+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				w.pos += 2
			case 'u':
				if w.pos+6 > len(w.src) {
					for j := w.pos + 2; j < len(w.src); j++ {
						if !isHexDigit(w.src[j]) {
							return nil, Invalid_
						}
					}
					return nil, Incomplete_
				}
				for j := w.pos + 2; j < w.pos+6; j++ {
					if !isHexDigit(w.src[j]) {
						return nil, Invalid_
					}
				}
				w.pos += 6
			default:
				return nil, Invalid_
			}
		case c < 0x20:
			return nil, Invalid_
		default:
			w.pos++
		}
	}
}

func (w *walker) parseStringValue(hasName bool, name, path []byte) int {
	start := w.pos
	body, code := w.scanStringBody()
	if code != 0 {
		return code
	}
	w.emit(String, hasName, name, path, body, start, w.pos)
	return 0
}

func (w *walker) parseLiteral(word string, kind Kind, hasName bool, name, path []byte) int {
	avail := len(w.src) - w.pos
	n := len(word)
	if avail >= n {
		if string(w.src[w.pos:w.pos+n]) != word {
			return Invalid_
		}
		start := w.pos
		w.pos += n
		w.emit(kind, hasName, name, path, w.src[start:w.pos], start, w.pos)
		return 0
	}
	if string(w.src[w.pos:w.pos+avail]) == word[:avail] {
		return Incomplete_
	}
	return Invalid_
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (w *walker) parseNumber(hasName bool, name, path []byte) int {
	src := w.src
	n := len(src)
	start := w.pos
	pos := w.pos

	if pos < n && src[pos] == '-' {
		pos++
	}
	if pos >= n {
		return Incomplete_
	}
	switch {
	case src[pos] == '0':
		pos++
	case isDigit(src[pos]):
		pos++
		for pos < n && isDigit(src[pos]) {
			pos++
		}
	default:
		return Invalid_
	}

	if pos < n && src[pos] == '.' {
		pos++
		if pos >= n {
			return Incomplete_
		}
		if !isDigit(src[pos]) {
			return Invalid_
		}
		for pos < n && isDigit(src[pos]) {
			pos++
		}
	}

	if pos < n && (src[pos] == 'e' || src[pos] == 'E') {
		pos++
		if pos < n && (src[pos] == '+' || src[pos] == '-') {
			pos++
		}
		if pos >= n {
			return Incomplete_
		}
		if !isDigit(src[pos]) {
			return Invalid_
		}
		for pos < n && isDigit(src[pos]) {
			pos++
		}
	}

	w.pos = pos
	w.emit(Number, hasName, name, path, src[start:pos], start, pos)
	return 0
}

func (w *walker) emit(kind Kind, hasName bool, name, path, raw []byte, start, end int) {
	if w.visit == nil {
		return
	}
	w.visit(Event{Name: name, HasName: hasName, Path: path, Token: Token{Kind: kind, raw: raw, Start: start, End: end}})
}

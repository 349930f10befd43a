package elsa

// Handle is an opaque resume point into a container being iterated
// incrementally by NextKey/NextElem. The zero Handle starts iteration from
// the container's first member.
type Handle struct {
	pos   int // byte offset to resume scanning from
	ready bool
	done  bool
}

// Done reports whether the handle has reached the end of its container.
func (h Handle) Done() bool { return h.ready && h.done }

// NextKey returns the next object member of the object at path, starting
// from handle (the zero Handle to begin). It reports the member's key, its
// full value token (spanning the value's own brackets/braces if it is a
// container), and a handle to resume from for the following member. ok is
// false once the container is exhausted, or path doesn't name an object.
//
// Each call walks source once, over the whole document — NextKey does not
// itself carry any parsed state across calls, only a byte offset — but
// holds no allocation beyond the Handle and the three return values.
func NextKey(source []byte, path string, handle Handle) (key string, val Token, next Handle, ok bool) {
	return nextChild(source, path, handle, true)
}

// NextElem is NextKey's array counterpart. ok is false once the array is
// exhausted or path doesn't name an array.
func NextElem(source []byte, path string, handle Handle) (index int, val Token, next Handle, ok bool) {
	k, v, n, found := nextChild(source, path, handle, false)
	if !found {
		return 0, Token{}, n, false
	}
	idx, err := parseIndexName(k)
	if err != nil {
		return 0, Token{}, n, false
	}
	return idx, v, n, true
}

func parseIndexName(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalid
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalid
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, nil
}

// nextChild returns the first immediate child of the container at path
// whose value starts at or after handle.pos.
func nextChild(source []byte, path string, handle Handle, wantObject bool) (name string, val Token, next Handle, found bool) {
	if handle.done {
		return "", Token{}, handle, false
	}

	var pendingName string
	Walk(source, func(ev Event) {
		if found {
			return
		}
		isEnd := ev.Token.Kind == ObjectEnd || ev.Token.Kind == ArrayEnd
		if (!ev.HasName && !isEnd) || len(ev.Path) <= len(path) {
			return
		}
		if string(ev.Path[:len(path)]) != path {
			return
		}
		rest := ev.Path[len(path):]
		if wantObject {
			if len(rest) == 0 || rest[0] != '.' || bytesContains(rest[1:], '.', '[') {
				return
			}
		} else {
			if len(rest) == 0 || rest[0] != '[' {
				return
			}
			closeAt := indexOfByte(rest, ']')
			if closeAt < 0 || closeAt != len(rest)-1 {
				return // more than one index segment deep: not an immediate element
			}
		}
		if ev.Token.Kind == ObjectStart || ev.Token.Kind == ArrayStart {
			// skip the enter event; the matching End carries the full span,
			// but only the enter event carries the child's name
			pendingName = string(ev.Name)
			return
		}
		if ev.Token.Start < handle.pos {
			return
		}
		if isEnd {
			name = pendingName
		} else {
			name = string(ev.Name)
		}
		val = ev.Token
		found = true
	})

	if !found {
		return "", Token{}, Handle{ready: true, done: true}, false
	}
	return name, val, Handle{pos: val.End, ready: true}, true
}

func indexOfByte(b []byte, target byte) int {
	for i, x := range b {
		if x == target {
			return i
		}
	}
	return -1
}

func bytesContains(b []byte, targets ...byte) bool {
	for _, x := range b {
		for _, t := range targets {
			if x == t {
				return true
			}
		}
	}
	return false
}

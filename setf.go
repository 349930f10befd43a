package elsa

// Setf copies source into sink with a single targeted edit at path, chosen
// by what fmt is and what already exists at path:
//
//   - fmt != "" and path names an existing value: replace it, returning true.
//   - fmt != "" and path names a missing object key: insert "<key>": <value>
//     into the containing object, creating intermediate objects as needed
//     (".d.e" against "{}" produces {"d":{"e":<value>}}). Returns false.
//   - fmt != "" and path ends in "[]": push <value> as a new last array
//     element, creating the array if the key is missing. Returns false.
//   - fmt == "": delete the value at path, removing its key/colon and the
//     adjacent comma. Deleting a missing key copies source unchanged and
//     returns false. Returns true on success.
//   - path == "": replace the whole document.
//
// Whitespace outside the edit region is copied byte for byte; inserted
// content always has the fixed shape ",\"key\":value" or ",value"/"value",
// with no extra spacing.
func Setf(source []byte, sink Sink, path string, format string, args ...interface{}) (bool, error) {
	segs := splitPath(path)

	if format == "" {
		return deleteAt(source, sink, segs)
	}
	if len(segs) > 0 && segs[len(segs)-1].isPush {
		return false, pushAt(source, sink, segs[:len(segs)-1], format, args)
	}
	return replaceOrInsert(source, sink, segs, format, args)
}

// targetPath renders segs the same way pathBuilder does, so it can be
// compared against a live Event.Path during a Walk.
func targetPath(segs []segment) string {
	var b pathBuilder
	for _, s := range segs {
		if s.isIndex {
			b.pushIndex(s.index)
		} else {
			b.pushKey([]byte(s.key))
		}
	}
	return string(b.bytes())
}

// findValue locates the full [start,end) span of the value at segs by
// walking source and comparing each event's path against the target.
func findValue(source []byte, segs []segment) (start, end int, found bool) {
	if len(segs) == 0 {
		return 0, len(source), true
	}
	target := targetPath(segs)
	Walk(source, func(ev Event) {
		if found || ev.Token.Kind == ObjectStart || ev.Token.Kind == ArrayStart {
			return
		}
		if pathEqual(ev.Path, target) {
			start, end, found = ev.Token.Start, ev.Token.End, true
		}
	})
	return
}

func replaceOrInsert(source []byte, sink Sink, segs []segment, format string, args []interface{}) (bool, error) {
	if start, end, ok := findValue(source, segs); ok {
		if _, err := sink.Write(source[:start]); err != nil {
			return false, err
		}
		if _, err := Printf(sink, format, args...); err != nil {
			return false, err
		}
		_, err := sink.Write(source[end:])
		return true, err
	}

	return false, insertKey(source, sink, segs, func() error {
		_, err := Printf(sink, format, args...)
		return err
	})
}

// insertKey splices "<key>":<value> (value written by writeValue) into the
// innermost existing container named by the longest existing prefix of
// segs, wrapping it in as many freshly created intermediate objects as are
// needed to reach the full path.
func insertKey(source []byte, sink Sink, segs []segment, writeValue func() error) error {
	prefixLen := len(segs) - 1
	for prefixLen >= 0 {
		if start, end, ok := findValue(source, segs[:prefixLen]); ok {
			closeAt := end - 1 // offset of the container's closing brace/bracket
			contentEnd := backOverWS(source, closeAt)
			nonEmpty := hasNonWSBetween(source, start+1, closeAt)

			if _, err := sink.Write(source[:contentEnd]); err != nil {
				return err
			}
			if nonEmpty {
				if _, err := sink.Write([]byte{','}); err != nil {
					return err
				}
			}
			for i := prefixLen; i < len(segs)-1; i++ {
				if _, err := sink.Write(QuoteString([]byte(segs[i].key))); err != nil {
					return err
				}
				if _, err := sink.Write([]byte(":{")); err != nil {
					return err
				}
			}
			if _, err := sink.Write(QuoteString([]byte(segs[len(segs)-1].key))); err != nil {
				return err
			}
			if _, err := sink.Write([]byte{':'}); err != nil {
				return err
			}
			if err := writeValue(); err != nil {
				return err
			}
			for i := prefixLen; i < len(segs)-1; i++ {
				if _, err := sink.Write([]byte{'}'}); err != nil {
					return err
				}
			}
			_, err := sink.Write(source[contentEnd:])
			return err
		}
		prefixLen--
	}
	return ErrInvalid
}

func pushAt(source []byte, sink Sink, containerSegs []segment, format string, args []interface{}) error {
	if start, end, ok := findValue(source, containerSegs); ok {
		closeAt := end - 1 // offset of ']'
		contentEnd := backOverWS(source, closeAt)
		nonEmpty := hasNonWSBetween(source, start+1, closeAt)
		if _, err := sink.Write(source[:contentEnd]); err != nil {
			return err
		}
		if nonEmpty {
			if _, err := sink.Write([]byte{','}); err != nil {
				return err
			}
		}
		if _, err := Printf(sink, format, args...); err != nil {
			return err
		}
		_, err := sink.Write(source[contentEnd:])
		return err
	}

	if len(containerSegs) == 0 {
		return ErrInvalid
	}
	return insertKey(source, sink, containerSegs, func() error {
		if _, err := sink.Write([]byte{'['}); err != nil {
			return err
		}
		if _, err := Printf(sink, format, args...); err != nil {
			return err
		}
		_, err := sink.Write([]byte{']'})
		return err
	})
}

func deleteAt(source []byte, sink Sink, segs []segment) (bool, error) {
	if len(segs) == 0 {
		_, err := sink.Write(source)
		return true, err
	}
	start, end, ok := findValue(source, segs)
	if !ok {
		_, err := sink.Write(source)
		return false, err
	}

	delStart, delEnd := deleteSpan(source, segs[len(segs)-1], start, end)
	if _, err := sink.Write(source[:delStart]); err != nil {
		return false, err
	}
	_, err := sink.Write(source[delEnd:])
	return true, err
}

// deleteSpan widens [start,end) — the bare value's span — to also cover its
// key/colon (for an object member) and one adjacent comma, so removing it
// leaves a well-formed document.
func deleteSpan(source []byte, last segment, start, end int) (int, int) {
	keyStart := start
	if !last.isIndex {
		pos := backOverWS(source, start)
		if pos > 0 && source[pos-1] == ':' {
			pos-- // pos now indexes the ':' itself
		}
		pos = backOverWS(source, pos) // skip ws before ':'; pos now just past the key text

		if pos > 0 && source[pos-1] == '"' {
			i := pos - 2 // skip the closing quote, scan for the opening one
			for i >= 0 && source[i] != '"' {
				i--
			}
			keyStart = i
		} else {
			i := pos
			for i > 0 && isKeyCont(source[i-1]) {
				i--
			}
			keyStart = i
		}
	}

	if j := forwardOverWS(source, end); j < len(source) && source[j] == ',' {
		return keyStart, j + 1
	}
	if i := backOverWS(source, keyStart); i > 0 && source[i-1] == ',' {
		return i - 1, end
	}
	return keyStart, end
}

func backOverWS(source []byte, i int) int {
	for i > 0 && isWS(source[i-1]) {
		i--
	}
	return i
}

func forwardOverWS(source []byte, i int) int {
	for i < len(source) && isWS(source[i]) {
		i++
	}
	return i
}

func isWS(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func hasNonWSBetween(source []byte, from, to int) bool {
	for i := from; i < to; i++ {
		if !isWS(source[i]) {
			return true
		}
	}
	return false
}

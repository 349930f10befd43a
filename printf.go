package elsa

import (
	"fmt"
	"strconv"
	"strings"
)

// Printf interprets format as a printf-style template that emits JSON: every
// ordinary printf conversion is accepted (subject to the adaptations noted
// below), plus five JSON-specific ones — %Q, %B, %V, %H, %M — and one lexer
// rule borrowed from the reference implementation's "relaxed" mode: a bare
// identifier run immediately followed (after optional spaces) by ':' is
// quoted and given exactly one trailing space, so callers can write object
// keys as barewords instead of pre-quoting them.
//
// Characters inside a double-quoted run in format itself (quotes included)
// pass through unchanged, bypassing the bareword-key rule — this is how a
// caller embeds a key that needs escaping or isn't a valid bareword.
//
// Adaptations from the C dialect this is modeled on: length modifiers
// (hh h l ll j z t L) are parsed and discarded rather than acted on, since a
// Go argument already carries its own width; %V and %H take a single
// []byte/string argument instead of a separate pointer+length pair, since a
// Go slice already carries its length; %ls/%lc behave exactly like %s/%c,
// there being no wchar_t. %T has no meaning here (it only applies to Scanf)
// and, like any other unrecognized conversion, passes through literally
// without consuming an argument.
func Printf(sink Sink, format string, args ...interface{}) (int, error) {
	p := &printer{sink: sink, cur: NewArgCursor(args)}
	if err := p.run(format); err != nil {
		return p.n, err
	}
	return p.n, nil
}

// PrintfArray is the Go replacement for the reference implementation's
// json_printf_array helper: where C needed an element stride and count
// because it had no slice type, a Go slice already carries both. Use it as
// a %M argument to format a homogeneous slice with a per-element format,
// joined the way the reference helper joins them: ", " between elements,
// the whole run wrapped in [ ].
func PrintfArray[T any](items []T, elemFormat string) PrintfFunc {
	return func(sink Sink, _ *ArgCursor) error {
		if _, err := sink.Write([]byte{'['}); err != nil {
			return err
		}
		for i, item := range items {
			if i > 0 {
				if _, err := sink.Write([]byte(", ")); err != nil {
					return err
				}
			}
			if _, err := Printf(sink, elemFormat, item); err != nil {
				return err
			}
		}
		_, err := sink.Write([]byte{']'})
		return err
	}
}

type printer struct {
	sink Sink
	cur  *ArgCursor
	n    int
}

func (p *printer) write(b []byte) error {
	_, err := p.sink.Write(b)
	p.n += len(b)
	return err
}

func (p *printer) writeStr(s string) error { return p.write([]byte(s)) }

func (p *printer) run(format string) error {
	i := 0
	n := len(format)
	for i < n {
		switch c := format[i]; {
		case c == '"':
			j := i + 1
			for j < n && format[j] != '"' {
				j++
			}
			if j < n {
				j++
			}
			if err := p.writeStr(format[i:j]); err != nil {
				return err
			}
			i = j

		case isKeyStart(c):
			j := i + 1
			for j < n && isKeyCont(format[j]) {
				j++
			}
			k := j
			for k < n && format[k] == ' ' {
				k++
			}
			if k < n && format[k] == ':' {
				if err := p.write(QuoteString([]byte(format[i:j]))); err != nil {
					return err
				}
				if err := p.writeStr(":"); err != nil {
					return err
				}
				i = k + 1
				for i < n && format[i] == ' ' {
					i++
				}
				if err := p.writeStr(" "); err != nil {
					return err
				}
				continue
			}
			if err := p.writeStr(format[i:j]); err != nil {
				return err
			}
			i = j

		case c == '%':
			next, err := p.conversion(format, i)
			if err != nil {
				return err
			}
			i = next

		default:
			if err := p.write([]byte{c}); err != nil {
				return err
			}
			i++
		}
	}
	return nil
}

// conversion parses and executes one %-directive starting at i (format[i] ==
// '%'), returning the index just past it.
func (p *printer) conversion(format string, i int) (int, error) {
	start := i
	n := len(format)
	i++

	flagsStart := i
	for i < n {
		switch format[i] {
		case '-', '+', ' ', '#', '0', '\'':
			i++
			continue
		}
		break
	}
	flags := format[flagsStart:i]

	widthStart := i
	widthStar := false
	if i < n && format[i] == '*' {
		widthStar = true
		i++
	} else {
		for i < n && isDigit(format[i]) {
			i++
		}
	}
	width := format[widthStart:i]

	hasPrec := false
	precStar := false
	precStart := i
	if i < n && format[i] == '.' {
		hasPrec = true
		i++
		precStart = i
		if i < n && format[i] == '*' {
			precStar = true
			i++
		} else {
			for i < n && isDigit(format[i]) {
				i++
			}
		}
	}
	prec := format[precStart:i]

modifiers:
	for i < n {
		switch {
		case strings.HasPrefix(format[i:], "hh"), strings.HasPrefix(format[i:], "ll"):
			i += 2
		case format[i] == 'h' || format[i] == 'l' || format[i] == 'j' || format[i] == 'z' || format[i] == 't' || format[i] == 'L':
			i++
		default:
			break modifiers
		}
	}

	if i >= n {
		// '%' with no verb letter: nothing sensible to do but echo it back.
		return i, p.writeStr(format[start:i])
	}
	verb := format[i]
	i++

	if verb == '%' {
		return i, p.writeStr("%")
	}

	// Resolve any '*' width/precision against the argument list before
	// touching the conversion's own argument, same order C evaluates them in.
	widthN := 0
	if widthStar {
		v, ok := p.cur.Next()
		if !ok {
			return i, ErrIncomplete
		}
		widthN = toInt(v)
		width = strconv.Itoa(widthN)
	}
	precN := 0
	if precStar {
		v, ok := p.cur.Next()
		if !ok {
			return i, ErrIncomplete
		}
		precN = toInt(v)
		prec = strconv.Itoa(precN)
	} else if hasPrec && prec != "" {
		precN, _ = strconv.Atoi(prec)
	}

	switch verb {
	case 'Q':
		return i, p.convQ(hasPrec, precN)
	case 'B':
		return i, p.convB()
	case 'V':
		return i, p.convV()
	case 'H':
		return i, p.convH()
	case 'M':
		return i, p.convM()
	case 'T':
		// Scanf-only: no value to print, and nothing was consumed.
		return i, p.writeStr(format[start:i])
	case 'n':
		return i, p.convN()
	case 'd', 'i', 'u':
		return i, p.convStd(flags, width, prec, hasPrec, 'd')
	case 'o', 'x', 'X', 'f', 'e', 'g', 'a', 's', 'c', 'p':
		return i, p.convStd(flags, width, prec, hasPrec, verb)
	default:
		// Unknown conversion: pass the whole directive through literally,
		// consuming nothing, per the reference printer's tolerance for
		// conversions it doesn't recognize.
		return i, p.writeStr(format[start:i])
	}
}

func toInt(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint:
		return int(t)
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return int(t)
	case uint64:
		return int(t)
	default:
		return 0
	}
}

func (p *printer) convStd(flags, width, prec string, hasPrec bool, verb byte) error {
	v, ok := p.cur.Next()
	if !ok {
		return ErrIncomplete
	}
	var sub strings.Builder
	sub.WriteByte('%')
	for _, f := range flags {
		// Go's fmt only understands these five; drop anything else (e.g.
		// the C thousands-separator flag ') rather than hand it a flag it
		// would report as a bad-verb error.
		if strings.ContainsRune("-+ #0", f) {
			sub.WriteRune(f)
		}
	}
	sub.WriteString(width)
	if hasPrec {
		sub.WriteByte('.')
		sub.WriteString(prec)
	}
	sub.WriteByte(verb)
	return p.writeStr(fmt.Sprintf(sub.String(), v))
}

func (p *printer) convN() error {
	v, ok := p.cur.Next()
	if !ok {
		return ErrIncomplete
	}
	if ptr, ok := v.(*int); ok {
		*ptr = p.n
	}
	return nil
}

func (p *printer) convQ(hasPrec bool, prec int) error {
	v, ok := p.cur.Next()
	if !ok {
		return ErrIncomplete
	}
	if v == nil {
		return p.writeStr("null")
	}
	var b []byte
	switch t := v.(type) {
	case string:
		b = []byte(t)
	case []byte:
		b = t
	default:
		b = []byte(fmt.Sprint(v))
	}
	if hasPrec && prec < len(b) {
		b = b[:prec]
	}
	return p.write(QuoteString(b))
}

func (p *printer) convB() error {
	v, ok := p.cur.Next()
	if !ok {
		return ErrIncomplete
	}
	truth := false
	switch t := v.(type) {
	case bool:
		truth = t
	default:
		truth = toInt(v) != 0
	}
	if truth {
		return p.writeStr("true")
	}
	return p.writeStr("false")
}

func (p *printer) convV() error {
	v, ok := p.cur.Next()
	if !ok {
		return ErrIncomplete
	}
	var b []byte
	switch t := v.(type) {
	case string:
		b = []byte(t)
	case []byte:
		b = t
	}
	return p.write(QuoteString(Base64Encode(b)))
}

func (p *printer) convH() error {
	v, ok := p.cur.Next()
	if !ok {
		return ErrIncomplete
	}
	var b []byte
	switch t := v.(type) {
	case string:
		b = []byte(t)
	case []byte:
		b = t
	}
	return p.write(QuoteString(HexEncode(b)))
}

func (p *printer) convM() error {
	v, ok := p.cur.Next()
	if !ok {
		return ErrIncomplete
	}
	fn, ok := v.(PrintfFunc)
	if !ok {
		return fmt.Errorf("elsa: %%M argument is %T, not PrintfFunc", v)
	}
	return fn(countingSink{p}, p.cur)
}

// countingSink routes a nested %M callback's writes through the same
// printer so its byte count folds into the outer Printf call's total.
type countingSink struct{ p *printer }

func (c countingSink) Write(b []byte) (int, error) {
	if err := c.p.write(b); err != nil {
		return 0, err
	}
	return len(b), nil
}

func (c countingSink) Written() int { return c.p.n }

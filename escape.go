package elsa

import (
	"encoding/base64"
	"encoding/hex"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// hexDigits is reused by the hex codec and by the \u00XX control-byte
// escape below.
const hexDigits = "0123456789abcdef"

// EscapeString encodes src as a JSON string body, without surrounding
// quotes. Control bytes below 0x20 are emitted as \uNNNN, except for the
// handful with dedicated short escapes (\b \f \n \r \t \" \\); every other
// byte, including multi-byte UTF-8 sequences, passes through unchanged.
//
// The scanning loop mirrors the one in the original Builder.WriteJsonString,
// trimmed to exactly the escapes this toolkit's wire format promises: no
// line/paragraph-separator special-casing, those are ordinary pass-through
// bytes here.
func EscapeString(src []byte) []byte {
	return appendEscaped(make([]byte, 0, len(src)+2), src)
}

// QuoteString is EscapeString wrapped in double quotes.
func QuoteString(src []byte) []byte {
	out := make([]byte, 0, len(src)+2)
	out = append(out, '"')
	out = appendEscaped(out, src)
	out = append(out, '"')
	return out
}

func appendEscaped(dst, src []byte) []byte {
	start := 0
	for i := 0; i < len(src); {
		b := src[i]
		if b >= utf8.RuneSelf {
			_, size := utf8.DecodeRune(src[i:])
			i += size
			continue
		}
		if b >= 0x20 && b != '"' && b != '\\' {
			i++
			continue
		}
		if start < i {
			dst = append(dst, src[start:i]...)
		}
		dst = append(dst, '\\')
		switch b {
		case '"', '\\':
			dst = append(dst, b)
		case '\b':
			dst = append(dst, 'b')
		case '\f':
			dst = append(dst, 'f')
		case '\n':
			dst = append(dst, 'n')
		case '\r':
			dst = append(dst, 'r')
		case '\t':
			dst = append(dst, 't')
		default:
			dst = append(dst, 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xf])
		}
		i++
		start = i
	}
	if start < len(src) {
		dst = append(dst, src[start:]...)
	}
	return dst
}

// UnescapeString decodes a JSON string body (no surrounding quotes) into a
// newly allocated slice, returning the decoded bytes and their length. It recognizes \" \\ \/ \b \f \n \r \t
// and \uXXXX. Returns (nil, Incomplete_) if src ends inside an escape,
// (nil, Invalid_) on an unrecognized escape or an invalid \u code point.
//
// Surrogate pairs are not combined into a single rune: each \uD800-\uDFFF
// half is rejected as Invalid_, matching the reference implementation's
// treatment of a lone surrogate half.
func UnescapeString(src []byte) ([]byte, int) {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		b := src[i]
		if b != '\\' {
			out = append(out, b)
			i++
			continue
		}
		if i+1 >= len(src) {
			return nil, Incomplete_
		}
		switch src[i+1] {
		case '"':
			out = append(out, '"')
			i += 2
		case '\\':
			out = append(out, '\\')
			i += 2
		case '/':
			out = append(out, '/')
			i += 2
		case 'b':
			out = append(out, '\b')
			i += 2
		case 'f':
			out = append(out, '\f')
			i += 2
		case 'n':
			out = append(out, '\n')
			i += 2
		case 'r':
			out = append(out, '\r')
			i += 2
		case 't':
			out = append(out, '\t')
			i += 2
		case 'u':
			if i+6 > len(src) {
				// distinguish "ran out of hex digits" from "not hex"
				for j := i + 2; j < len(src); j++ {
					if !isHexDigit(src[j]) {
						return nil, Invalid_
					}
				}
				return nil, Incomplete_
			}
			cp, ok := parseHex4(src[i+2 : i+6])
			if !ok {
				return nil, Invalid_
			}
			if cp >= 0xd800 && cp <= 0xdfff {
				// lone surrogate half: reject, don't try to pair it up
				return nil, Invalid_
			}
			var rb [4]byte
			n := utf8.EncodeRune(rb[:], rune(cp))
			out = append(out, rb[:n]...)
			i += 6
		default:
			return nil, Invalid_
		}
	}
	return out, len(out)
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func parseHex4(b []byte) (int, bool) {
	v := 0
	for _, c := range b {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}

// Base64Encode/Base64Decode use the standard alphabet with '=' padding, as
// %V in the printf dialect and %V in Scanf both rely on.
func Base64Encode(src []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(src)))
	base64.StdEncoding.Encode(out, src)
	return out
}

func Base64Decode(src []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(src)))
	n, err := base64.StdEncoding.Decode(out, src)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// HexEncode/HexDecode produce/accept lowercase two-digit-per-byte hex, as
// used by %H.
func HexEncode(src []byte) []byte {
	out := make([]byte, hex.EncodedLen(len(src)))
	hex.Encode(out, src)
	return out
}

func HexDecode(src []byte) ([]byte, error) {
	out := make([]byte, hex.DecodedLen(len(src)))
	n, err := hex.Decode(out, src)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// normalizedKey reports whether key is already in Unicode NFC form, as the
// path grammar's "UTF-8 bytes allowed verbatim" clause assumes: a bareword
// key that isn't NFC-normalized would compare unequal to its canonical
// spelling even though both render identically, which defeats path
// equality matching in Scanf/Setf. Callers that build paths from untrusted
// key text can use this to reject or normalize such keys up front, the way
// a canonical-JSON signing document must (see SPEC_FULL.md's notes on
// cosmos-sdk-style sign-doc normalization).
func normalizedKey(key []byte) bool {
	return norm.NFC.IsNormal(key)
}

package elsa

import "errors"

// Return codes mirroring the two error classes the walker can surface:
// malformed input (a byte sequence that cannot be a prefix of any valid
// document) and truncated input (valid so far, but ending mid-token or
// mid-container). Every layer built on the walker lifts these unchanged.
const (
	Invalid_     = -1 // malformed: not a prefix of any valid document
	Incomplete_  = -2 // truncated: valid so far, input ran out
)

// ErrInvalid and ErrIncomplete are the error-valued equivalents of the
// Invalid_/Incomplete_ sentinels, for callers that prefer Go's error
// idiom over inspecting a signed return code.
var (
	ErrInvalid    = errors.New("elsa: malformed JSON")
	ErrIncomplete = errors.New("elsa: truncated JSON")
)

func codeErr(code int) error {
	switch code {
	case Incomplete_:
		return ErrIncomplete
	case Invalid_:
		return ErrInvalid
	default:
		return nil
	}
}

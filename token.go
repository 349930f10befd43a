package elsa

// Kind identifies the lexical category of a Token.
type Kind int

const (
	Invalid Kind = iota
	String
	Number
	True
	False
	Null
	ObjectStart
	ObjectEnd
	ArrayStart
	ArrayEnd
)

func (k Kind) String() string {
	switch k {
	case String:
		return "STRING"
	case Number:
		return "NUMBER"
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	case Null:
		return "NULL"
	case ObjectStart:
		return "OBJECT_START"
	case ObjectEnd:
		return "OBJECT_END"
	case ArrayStart:
		return "ARRAY_START"
	case ArrayEnd:
		return "ARRAY_END"
	default:
		return "INVALID"
	}
}

// Token is a non-owning view of a lexical unit inside a source buffer. It is
// only valid for as long as that buffer is alive, and only for the duration
// of the Visitor call that produced it: a Visitor that wants to retain a
// Token must copy the bytes it points at.
//
// For scalars the span covers the literal with any surrounding quotes
// stripped. For ObjectEnd/ArrayEnd the span covers the whole container, from
// its opening brace/bracket through its closing one, inclusive.
type Token struct {
	Kind Kind
	raw  []byte // view into the caller's source slice

	// Start and End are the token's byte offsets within the source slice
	// Walk was given — the same span as raw for everything except String,
	// where raw has its surrounding quotes stripped but Start/End cover
	// them. Setf uses these to splice edits into the original bytes.
	Start, End int
}

// Bytes returns the token's source bytes. The returned slice aliases the
// original source buffer and must not be retained past the buffer's life.
func (t Token) Bytes() []byte { return t.raw }

// Len reports the number of source bytes the token spans.
func (t Token) Len() int { return len(t.raw) }

// String renders the token's raw bytes as a string, copying them.
func (t Token) String() string { return string(t.raw) }

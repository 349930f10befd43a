package elsa

// Event describes one step of a Walk: a container entered or left, or a
// scalar value reached. Every field aliases the walker's internal state and
// is only valid for the duration of the Visitor call that received it — a
// Visitor that wants to retain Name, Path or Token.Bytes() past its own
// return must copy them.
type Event struct {
	// Name holds the object-member key, or (inside an array) the
	// element's decimal index rendered as text. HasName is false for the
	// root value and for every container-exit event, matching the "name
	// or null" sentinel in the reference walker.
	Name    []byte
	HasName bool

	// Path is the full dotted/indexed path to this event's value: to the
	// containing object/array for the root, and to the value itself
	// otherwise. Root is the empty path.
	Path []byte

	// Token carries the event's kind and, for everything except
	// container-enter events, its source span.
	Token Token
}

// Visitor is invoked once per container enter/exit and once per terminal
// scalar value, strictly in depth-first source order. A Visitor has no way
// to abort a Walk early; one that wants to stop processing signals that via
// its own side-channel state and ignores subsequent calls — Walk always
// runs to the end of the value it was given.
type Visitor func(Event)

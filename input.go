package frombase

// Span locates a value in the host shell's source text, as byte offsets.
type Span struct {
	Start int `json:"start" msgpack:"start"`
	End   int `json:"end" msgpack:"end"`
}

// Input is the value piped into a command. It is one of Text, Binary or Other.
type Input interface {
	isInput()
}

// Text is a string input, decoded through a table before conversion.
type Text struct {
	Value string
	Span  Span
}

// Binary is a byte-sequence input whose bytes are already digit values.
type Binary struct {
	Value []byte
	Span  Span
}

// Other is any input shape the command does not accept.
// Type names the shape for error messages.
type Other struct {
	Type string
	Span Span
}

func (Text) isInput()   {}
func (Binary) isInput() {}
func (Other) isInput()  {}

// Call carries the evaluated arguments of a command invocation.
// A nil Base or Table means the argument was not given.
type Call struct {
	Name  string
	Head  Span
	Base  *int
	Table *string
}

// WithBase returns a copy of c with the base argument set.
func (c Call) WithBase(base int) Call {
	c.Base = &base
	return c
}

// WithTable returns a copy of c with the table flag set.
func (c Call) WithTable(table string) Call {
	c.Table = &table
	return c
}

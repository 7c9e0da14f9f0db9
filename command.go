package frombase

// Command is a plugin command a host shell can discover and invoke.
// Implementations are stateless and safe for concurrent use.
type Command interface {
	// Signature describes the command to the host.
	Signature() Signature

	// Run evaluates the command on input. On failure the error is a
	// *LabeledError and no partial output is returned.
	Run(call Call, input Input) ([]byte, error)
}

// Signature is the host-facing description of a command.
type Signature struct {
	Name        string    `json:"name" msgpack:"name"`
	Usage       string    `json:"usage" msgpack:"usage"`
	Category    string    `json:"category" msgpack:"category"`
	Optional    []Param   `json:"optional" msgpack:"optional"`
	Named       []Flag    `json:"named" msgpack:"named"`
	InputOutput []IOType  `json:"input_output_types" msgpack:"input_output_types"`
	Examples    []Example `json:"examples" msgpack:"examples"`
}

// Param is a positional parameter.
type Param struct {
	Name  string `json:"name" msgpack:"name"`
	Shape string `json:"shape" msgpack:"shape"`
	Desc  string `json:"desc" msgpack:"desc"`
}

// IOType pairs an accepted input type with the output type it produces.
type IOType struct {
	Input  string `json:"input" msgpack:"input"`
	Output string `json:"output" msgpack:"output"`
}

// Flag is a named parameter.
type Flag struct {
	Long  string `json:"long" msgpack:"long"`
	Short string `json:"short,omitempty" msgpack:"short"`
	Shape string `json:"shape" msgpack:"shape"`
	Desc  string `json:"desc" msgpack:"desc"`
}

// Example is a documented invocation with its expected result.
type Example struct {
	Example     string `json:"example" msgpack:"example"`
	Description string `json:"description" msgpack:"description"`
	Result      []byte `json:"result,omitempty" msgpack:"result"`
}

// FromBaseCommand is the Command for CommandName.
type FromBaseCommand struct{}

// NewFromBaseCommand returns the "from base" command.
func NewFromBaseCommand() *FromBaseCommand {
	return &FromBaseCommand{}
}

// Signature implements Command.
func (*FromBaseCommand) Signature() Signature {
	return Signature{
		Name:     CommandName,
		Usage:    "convert base",
		Category: "strings",
		Optional: []Param{
			{Name: "base", Shape: "int", Desc: "base of input"},
		},
		Named: []Flag{
			{Long: "table", Short: "t", Shape: "string", Desc: "Source base table, or @name of a registered table"},
		},
		InputOutput: []IOType{
			{Input: "binary", Output: "binary"},
			{Input: "string", Output: "binary"},
		},
		Examples: []Example{
			{
				Example:     `"1am9llMhc" | from base 21 -t "123456789achlmnACHLMN"`,
				Description: "convert base-21 text to binary",
				Result:      []byte{0x04, 0x0A, 0xBA, 0xCA, 0x16},
			},
			{
				Example:     "0x[01 0A 17 10] | from base 21",
				Description: "convert binary which already decoded as position number",
				Result:      []byte{0x37, 0x5A},
			},
			{
				Example:     `"2NEpo7TZRRrLZSi2U" | from base -t @base58`,
				Description: "convert base58 text using a registered table",
				Result:      []byte("Hello World!"),
			},
		},
	}
}

// Run implements Command.
func (*FromBaseCommand) Run(call Call, input Input) ([]byte, error) {
	return Run(call, input)
}

var _ Command = (*FromBaseCommand)(nil)

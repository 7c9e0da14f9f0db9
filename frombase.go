// Package frombase converts numbers written in an arbitrary radix into their
// big-endian base-256 byte representation.
//
// Input is either text, decoded through an explicit alphabet (the "table")
// where a character's position is its digit value, or binary, where every
// byte already is a digit value. The digits are accumulated with
// arbitrary-precision arithmetic, so the radix may exceed 256 and the number
// of digits is unbounded.
//
// Example usage:
//
//	call := frombase.Call{Name: frombase.CommandName}.WithBase(21).WithTable("123456789achlmnACHLMN")
//	out, err := frombase.FromBase(call, frombase.Text{Value: "1am9llMhc"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	// out is []byte{0x04, 0x0A, 0xBA, 0xCA, 0x16}
//
// The output is canonical: it never starts with a zero byte, and a value of
// zero converts to an empty slice.
package frombase

import (
	"fmt"

	"github.com/horasal/frombase/subtle"
)

// CommandName is the name under which the host shell invokes FromBase.
const CommandName = "from base"

// FromBase validates call against input and converts input to bytes.
//
// Binary input requires call.Base. Text input requires call.Table; when
// call.Base is also given it must equal the table length. The table may name
// a registered table (see ResolveTable). Errors are *LabeledError values.
func FromBase(call Call, input Input) ([]byte, error) {
	switch in := input.(type) {
	case Binary:
		if call.Base == nil {
			return nil, labeled(ErrMissingRadix, call.Head,
				"Binary input require base", "add base")
		}
		if *call.Base < 1 {
			return nil, invalidRadix(call.Head, *call.Base)
		}
		return subtle.Convert(in.Value, uint64(*call.Base)), nil

	case Text:
		if call.Table == nil {
			return nil, labeled(ErrMissingTable, call.Head,
				"Encode table is require for string input", `give a encode table with "-t"`)
		}
		chars, err := ResolveTable(*call.Table)
		if err != nil {
			return nil, labeled(ErrUnknownTable, call.Head, "Unknown table", err.Error())
		}
		table := NewTable(chars)

		if call.Base != nil && *call.Base != table.Len() {
			return nil, labeled(ErrRadixTableMismatch, call.Head,
				"Base does not match length of table",
				fmt.Sprintf("Base is %d, but table is %d", *call.Base, table.Len()))
		}
		if table.Len() < 1 {
			return nil, invalidRadix(call.Head, table.Len())
		}

		digits, err := table.Decode(in.Value)
		if err != nil {
			return nil, &LabeledError{
				Kind:  err,
				Label: "incorrect table or input",
				Msg:   fmt.Sprintf("Input contains unknown chars than not in table: %v", err),
				Span:  spanPtr(in.Span),
			}
		}
		return subtle.Convert(digits, uint64(table.Len())), nil

	default:
		typ := "unknown"
		if o, ok := input.(Other); ok && o.Type != "" {
			typ = o.Type
		}
		return nil, labeled(ErrUnsupportedInputType, call.Head,
			"Invalid input", fmt.Sprintf("This type of input is not expected: %s", typ))
	}
}

// Run dispatches call by name. Only CommandName is known.
func Run(call Call, input Input) ([]byte, error) {
	if call.Name != CommandName {
		return nil, labeled(ErrUnknownCommand, call.Head,
			"Plugin call with wrong name signature", fmt.Sprintf("Unknown plugin command %q", call.Name))
	}
	return FromBase(call, input)
}

func invalidRadix(head Span, radix int) *LabeledError {
	return labeled(ErrInvalidRadix, head, "Invalid base",
		fmt.Sprintf("Base must be at least 1, got %d", radix))
}

func spanPtr(s Span) *Span {
	return &s
}

package plugin

import (
	"github.com/pkg/errors"

	"github.com/horasal/frombase"
)

// Request methods.
const (
	MethodSignature = "signature"
	MethodRun       = "run"
	MethodGoodbye   = "goodbye"
)

// Value types understood by the from base command.
const (
	TypeString = "string"
	TypeBinary = "binary"
)

// Value is a typed value exchanged with the host.
type Value struct {
	Type   string        `json:"type" msgpack:"type"`
	String string        `json:"string,omitempty" msgpack:"string"`
	Binary []byte        `json:"binary,omitempty" msgpack:"binary"`
	Span   frombase.Span `json:"span" msgpack:"span"`
}

// Request is a single call from the host.
type Request struct {
	ID     uint64        `json:"id" msgpack:"id"`
	Method string        `json:"method" msgpack:"method"`
	Name   string        `json:"name,omitempty" msgpack:"name"`
	Head   frombase.Span `json:"head" msgpack:"head"`
	Base   *int          `json:"base,omitempty" msgpack:"base"`
	Table  *string       `json:"table,omitempty" msgpack:"table"`
	Input  *Value        `json:"input,omitempty" msgpack:"input"`
}

// Error is a LabeledError on the wire.
type Error struct {
	Label string         `json:"label" msgpack:"label"`
	Msg   string         `json:"msg" msgpack:"msg"`
	Span  *frombase.Span `json:"span,omitempty" msgpack:"span"`
}

// Response answers the Request with the same ID. Exactly one of Value,
// Error and Signatures is set.
type Response struct {
	ID         uint64               `json:"id" msgpack:"id"`
	Value      *Value               `json:"value,omitempty" msgpack:"value"`
	Error      *Error               `json:"error,omitempty" msgpack:"error"`
	Signatures []frombase.Signature `json:"signatures,omitempty" msgpack:"signatures"`
}

func (r *Request) call() frombase.Call {
	return frombase.Call{
		Name:  r.Name,
		Head:  r.Head,
		Base:  r.Base,
		Table: r.Table,
	}
}

// input resolves the wire value into the command's input variant.
func (v *Value) input() frombase.Input {
	if v == nil {
		return frombase.Other{Type: "nothing"}
	}
	switch v.Type {
	case TypeString:
		return frombase.Text{Value: v.String, Span: v.Span}
	case TypeBinary:
		return frombase.Binary{Value: v.Binary, Span: v.Span}
	default:
		return frombase.Other{Type: v.Type, Span: v.Span}
	}
}

func toError(err error) *Error {
	var le *frombase.LabeledError
	if errors.As(err, &le) {
		return &Error{Label: le.Label, Msg: le.Msg, Span: le.Span}
	}
	return &Error{Label: "internal error", Msg: err.Error()}
}

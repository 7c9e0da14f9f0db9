package main

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/horasal/frombase"
)

func (c maincmd) doConvert(ctx context.Context, base int, table string, binary bool, out string, args []string) error {
	input, err := c.readInput(args)
	if err != nil {
		return err
	}

	call := frombase.Call{Name: frombase.CommandName}
	if base != 0 {
		call = call.WithBase(base)
	}

	var in frombase.Input
	if binary {
		digits, err := parseHexDigits(input)
		if err != nil {
			return errors.Wrap(err, "parsing binary input")
		}
		in = frombase.Binary{Value: digits}
	} else {
		if table != "" {
			call = call.WithTable(table)
		}
		in = frombase.Text{Value: strings.TrimRight(input, "\r\n")}
	}

	result, err := frombase.Run(call, in)
	if err != nil {
		return err
	}
	c.log.Debug().Int("base", base).Bool("binary", binary).Int("bytes", len(result)).Msg("converted")

	return writeOutput(c.stdout, result, out)
}

func (c maincmd) doEncode(ctx context.Context, table, in string, args []string) error {
	input, err := c.readInput(args)
	if err != nil {
		return err
	}
	if table == "" {
		return fmt.Errorf("a table is required, give one with -table or default_table")
	}
	chars, err := frombase.ResolveTable(table)
	if err != nil {
		return err
	}

	var data []byte
	switch in {
	case "raw":
		data = []byte(input)
	case "hex":
		data, err = parseHexDigits(input)
	case "base64":
		data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(input))
	default:
		return fmt.Errorf("unknown input format %q", in)
	}
	if err != nil {
		return errors.Wrapf(err, "parsing %s input", in)
	}

	text, err := frombase.Encode(data, chars)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, text)
	return err
}

func (c maincmd) readInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading standard input")
		}
		return string(data), nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("expected at most one input argument, got %d", len(args))
	}
}

// parseHexDigits parses hex such as "0x[01 0A 17 10]", "010a1710" or
// "01 0A 17 10". Case-insensitive; whitespace and brackets are ignored.
func parseHexDigits(s string) ([]byte, error) {
	h := strings.TrimSpace(s)
	if strings.HasPrefix(h, "0x") || strings.HasPrefix(h, "0X") {
		h = h[2:]
	}
	h = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ' ', '\t', '\n', '\r', ',':
			return -1
		}
		return r
	}, h)

	if len(h)%2 != 0 {
		return nil, fmt.Errorf("hex length must be even, got %d", len(h))
	}
	for i, r := range h {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return nil, fmt.Errorf("hex contains non-hex character '%c' at position %d", r, i)
		}
	}
	return hex.DecodeString(h)
}

func writeOutput(w io.Writer, data []byte, format string) error {
	var err error
	switch format {
	case "hex":
		_, err = fmt.Fprintf(w, "0x[%s]\n", strings.ToUpper(spacedHex(data)))
	case "raw":
		_, err = w.Write(data)
	case "base64":
		_, err = fmt.Fprintln(w, base64.StdEncoding.EncodeToString(data))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return err
}

func spacedHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = hex.EncodeToString([]byte{b})
	}
	return strings.Join(parts, " ")
}

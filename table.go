package frombase

import (
	"fmt"
	"unicode/utf8"

	"github.com/horasal/frombase/subtle"
)

// Table is an ordered alphabet: the position of a character is its digit
// value. When a character occurs more than once, the first occurrence wins
// and later copies can never be produced by decoding.
type Table struct {
	chars []rune
	index map[rune]uint32
}

// NewTable builds a Table from the characters of chars.
func NewTable(chars string) *Table {
	t := &Table{
		chars: make([]rune, 0, utf8.RuneCountInString(chars)),
		index: make(map[rune]uint32),
	}
	for _, c := range chars {
		if _, ok := t.index[c]; !ok {
			t.index[c] = uint32(len(t.chars))
		}
		t.chars = append(t.chars, c)
	}
	return t
}

// Len returns the number of characters in the table, which is its radix.
func (t *Table) Len() int {
	return len(t.chars)
}

func (t *Table) String() string {
	return string(t.chars)
}

// Decode maps each character of text to its digit value, most-significant
// first. It stops at the first character missing from the table and returns
// an *UnknownCharacterError; no partial result is returned.
func (t *Table) Decode(text string) ([]uint32, error) {
	result := make([]uint32, 0, utf8.RuneCountInString(text))
	pos := 0
	for offset, c := range text {
		idx, ok := t.index[c]
		if !ok {
			return nil, &UnknownCharacterError{Char: c, Pos: pos, Offset: offset}
		}
		result = append(result, idx)
		pos++
	}
	return result, nil
}

// Encode maps digit values back to their characters.
func (t *Table) Encode(digits []uint32) (string, error) {
	out := make([]rune, len(digits))
	for i, d := range digits {
		if int(d) >= len(t.chars) {
			return "", fmt.Errorf("digit %d at position %d is outside table of length %d", d, i, len(t.chars))
		}
		out[i] = t.chars[d]
	}
	return string(out), nil
}

// Decode maps text to digit values using table. See Table.Decode.
func Decode(text, table string) ([]uint32, error) {
	return NewTable(table).Decode(text)
}

// Encode renders the big-endian value in data as text in the radix given by
// the table length. A zero value encodes as the empty string.
func Encode(data []byte, table string) (string, error) {
	t := NewTable(table)
	if t.Len() < 2 {
		return "", fmt.Errorf("table must have at least 2 characters, got %d", t.Len())
	}
	return t.Encode(subtle.Digits(data, uint64(t.Len())))
}

// Package subtle provides the low-level radix arithmetic behind base conversion.
// It performs no validation of its inputs; most users want the parent package.
package subtle

import (
	"math/big"
)

// Digit is the set of element types a digit sequence may use.
// Raw binary input is a []byte; decoded text is a []uint32.
type Digit interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Convert interprets digits (most-significant first) in the given radix and
// returns the value as canonical big-endian bytes.
//
// The result has no leading zero byte, and a zero value yields an empty,
// non-nil slice. Digits are treated as polynomial coefficients and are never
// checked against radix, so a digit >= radix still contributes its full value.
// A radix of 0 collapses the value to the last digit.
//
// Thread safety: Convert keeps no state and is safe for concurrent use.
func Convert[D Digit](digits []D, radix uint64) []byte {
	var acc, r, d big.Int
	r.SetUint64(radix)

	for _, digit := range digits {
		d.SetUint64(uint64(digit))
		acc.Mul(&acc, &r)
		acc.Add(&acc, &d)
	}

	out := acc.Bytes()
	if out == nil {
		return []byte{}
	}
	return out
}

// Digits decomposes the big-endian value in data into base-radix digits,
// most-significant first. Leading zero bytes in data do not produce leading
// zero digits, and a zero value yields an empty slice.
// Digits returns nil when radix < 2 or radix does not fit in 32 bits.
func Digits(data []byte, radix uint64) []uint32 {
	if radix < 2 || radix > 1<<32 {
		return nil
	}

	var (
		val, r, rem big.Int
		result      []uint32
	)
	val.SetBytes(data)
	r.SetUint64(radix)

	for val.Sign() > 0 {
		val.QuoRem(&val, &r, &rem)
		result = append(result, uint32(rem.Uint64()))
	}

	// Remainders come out least-significant first.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	if result == nil {
		return []uint32{}
	}
	return result
}

// BitLength returns the number of bits needed to represent radix-1.
func BitLength(radix uint64) int {
	if radix <= 1 {
		return 1
	}
	bits := 0
	for n := radix - 1; n > 0; n >>= 1 {
		bits++
	}
	return bits
}

// MaxBytes returns an upper bound on the length of Convert's output for n
// digits that are all below radix.
func MaxBytes(n int, radix uint64) int {
	return (n*BitLength(radix) + 7) / 8
}

// Package bigfield wraps math/big with the handful of operations the
// UNICORN VDF needs, so call sites never have to remember which big.Int
// method implements floored modular reduction versus truncated, or which
// string verb avoids zero-padding.
package bigfield

import (
	"errors"
	"math/big"
)

// ErrNilModulus is returned by PowMod when the modulus is nil or not
// strictly positive.
var ErrNilModulus = errors.New("bigfield: modulus must be > 0")

// ParseDecimal parses a base-10 string into an arbitrary-precision integer.
func ParseDecimal(s string) (*big.Int, error) {
	return parseRadix(s, 10)
}

// ParseHex parses a base-16 string without a "0x" prefix into an
// arbitrary-precision integer; a prefixed string is rejected.
func ParseHex(s string) (*big.Int, error) {
	return parseRadix(s, 16)
}

func parseRadix(s string, base int) (*big.Int, error) {
	x, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errors.New("bigfield: invalid integer literal: " + s)
	}
	return x, nil
}

// ToHex renders x as lowercase hex with no "0x" prefix and no padding
// beyond its natural length. Negative values are not expected by any
// caller in this module; they render with a leading "-" like fmt's "%x".
func ToHex(x *big.Int) string {
	return x.Text(16)
}

// PowMod computes base^exp mod m. m must be strictly positive.
func PowMod(base, exp, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrNilModulus
	}
	return new(big.Int).Exp(base, exp, m), nil
}

// ModFloor reduces x modulo m, always returning a value in [0, m) for a
// strictly positive m regardless of x's sign. big.Int.Mod already
// implements Euclidean reduction, which agrees with floored reduction
// whenever the modulus is positive, so this is a documented pass-through
// rather than new arithmetic.
func ModFloor(x, m *big.Int) *big.Int {
	return new(big.Int).Mod(x, m)
}

// IsProbablyPrime runs the Miller-Rabin primality test for the given
// number of rounds.
func IsProbablyPrime(x *big.Int, iterations int) bool {
	return x.ProbablyPrime(iterations)
}

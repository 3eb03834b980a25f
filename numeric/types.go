// SPDX-License-Identifier: MIT

package numeric

import "errors"

// Sentinel errors returned by the numeric kernel.
var (
	// ErrBadPrecision indicates a digit count of zero or above MaxDigits.
	ErrBadPrecision = errors.New("numeric: precision must be in [1, MaxDigits] digits")

	// ErrNegativeArgument indicates a negative exponent, factorial or binomial argument.
	ErrNegativeArgument = errors.New("numeric: negative argument")

	// ErrDivisionByZero indicates a Quo with a zero divisor.
	ErrDivisionByZero = errors.New("numeric: division by zero")
)

const (
	// DefaultDigits is the precision used by the benchmark set.
	DefaultDigits = 1000

	// MaxDigits bounds the precision a Context accepts.
	MaxDigits = 1 << 20

	// ToleranceGuard is the number of trailing digits excluded from
	// agreement checks; see Context.Tolerance.
	ToleranceGuard = 10

	// guardBits are carried on top of the requested decimal digits.
	guardBits = 64
)

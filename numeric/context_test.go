// SPDX-License-Identifier: MIT

package numeric_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/strongbirthday/numeric"
)

func TestNewContext_Bounds(t *testing.T) {
	_, err := numeric.NewContext(0)
	assert.ErrorIs(t, err, numeric.ErrBadPrecision, "zero digits must be rejected")

	_, err = numeric.NewContext(numeric.MaxDigits + 1)
	assert.ErrorIs(t, err, numeric.ErrBadPrecision, "digits above MaxDigits must be rejected")

	c, err := numeric.NewContext(50)
	require.NoError(t, err)
	assert.Equal(t, uint(50), c.Digits())
	// 50 digits need at least 167 bits of mantissa.
	assert.GreaterOrEqual(t, c.Prec(), uint(167))
}

func TestContext_ValuesCarryPrecision(t *testing.T) {
	c := numeric.MustContext(40)
	for _, v := range []*big.Float{
		c.New(),
		c.FromInt(7),
		c.FromFloat64(0.25),
		c.Add(c.FromInt(1), c.FromInt(2)),
		c.MulInt(c.FromInt(3), 5),
	} {
		assert.Equal(t, c.Prec(), v.Prec(), "every value must be created at the context precision")
	}
}

func TestContext_PowInt(t *testing.T) {
	c := numeric.MustContext(30)

	v, err := c.PowInt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Cmp(c.FromInt(1)), "0^0 is defined as 1")

	v, err = c.PowInt(7, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Cmp(c.FromInt(1)))

	v, err = c.PowInt(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Cmp(c.FromInt(243)))

	v, err = c.PowInt(0, 4)
	require.NoError(t, err)
	assert.Zero(t, v.Sign())

	_, err = c.PowInt(2, -1)
	assert.ErrorIs(t, err, numeric.ErrNegativeArgument)
}

func TestContext_BinomialAndFactorial(t *testing.T) {
	c := numeric.MustContext(30)

	cases := []struct {
		n, k int64
		want int64
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 2, 10},
		{10, 5, 252},
		{3, 4, 0},
	}
	for _, tc := range cases {
		v, err := c.Binomial(tc.n, tc.k)
		require.NoError(t, err)
		assert.Equalf(t, 0, v.Cmp(c.FromInt(tc.want)), "C(%d,%d)", tc.n, tc.k)
	}

	_, err := c.Binomial(-1, 0)
	assert.ErrorIs(t, err, numeric.ErrNegativeArgument)
	_, err = c.Binomial(4, -1)
	assert.ErrorIs(t, err, numeric.ErrNegativeArgument)

	f, err := c.Factorial(0)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Cmp(c.FromInt(1)), "0! = 1")

	f, err = c.Factorial(10)
	require.NoError(t, err)
	assert.Equal(t, 0, f.Cmp(c.FromInt(3628800)))

	_, err = c.Factorial(-3)
	assert.ErrorIs(t, err, numeric.ErrNegativeArgument)
}

func TestContext_Quo(t *testing.T) {
	c := numeric.MustContext(30)

	q, err := c.Quo(c.FromInt(1), c.FromInt(4))
	require.NoError(t, err)
	f, _ := q.Float64()
	assert.Equal(t, 0.25, f)

	_, err = c.Quo(c.FromInt(1), c.New())
	assert.ErrorIs(t, err, numeric.ErrDivisionByZero)
}

func TestContext_ToleranceAndWithin(t *testing.T) {
	c := numeric.MustContext(30)

	tol, _ := c.Tolerance().Float64()
	assert.InDelta(t, 1e-20, tol, 1e-30)

	one := c.FromInt(1)
	near := c.Add(one, c.New().SetMantExp(c.FromInt(1), -100)) // 1 + 2^-100
	far := c.Add(one, c.FromFloat64(1e-10))

	assert.True(t, c.Within(one, near), "2^-100 is far below 1e-20")
	assert.False(t, c.Within(one, far), "1e-10 exceeds the tolerance")
	assert.Zero(t, c.RelDiff(c.New(), c.New()).Sign(), "two zeros are identical")

	small := numeric.MustContext(5)
	tol, _ = small.Tolerance().Float64()
	assert.InDelta(t, 0.1, tol, 1e-12, "tolerance exponent is floored at 1")
}

func TestText(t *testing.T) {
	c := numeric.MustContext(30)
	q, err := c.Quo(c.FromInt(1), c.FromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "0.33333", numeric.Text(q, 5))
	assert.Equal(t, "<nil>", numeric.Text(nil, 5))
}

func TestIntegerKernels(t *testing.T) {
	z, err := numeric.IntPow(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), z.Int64())

	z, err = numeric.IntPow(365, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(365*365*365), z.Int64())

	z, err = numeric.IntBinomial(3, 5)
	require.NoError(t, err)
	assert.Zero(t, z.Sign())

	z, err = numeric.IntBinomial(10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(120), z.Int64())

	z, err = numeric.IntFactorial(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), z.Int64())

	_, err = numeric.IntPow(2, -1)
	assert.ErrorIs(t, err, numeric.ErrNegativeArgument)
	_, err = numeric.IntBinomial(-1, 0)
	assert.ErrorIs(t, err, numeric.ErrNegativeArgument)
	_, err = numeric.IntFactorial(-2)
	assert.ErrorIs(t, err, numeric.ErrNegativeArgument)
}

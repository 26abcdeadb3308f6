package zis

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallIntIdentity(t *testing.T) {
	ctx := NewContext(0, 0)

	a := NewInt(ctx, 42)
	b := NewInt(ctx, 42)
	require.True(t, a.IsSmallIntValue())
	assert.Equal(t, a.AsSmallInt(), b.AsSmallInt())
}

func TestSmallIntOverflowPromotesToBigInt(t *testing.T) {
	ctx := NewContext(0, 0)

	sum := AddInt(ctx, NewInt(ctx, smallIntMax), NewInt(ctx, 1))
	require.True(t, sum.IsRef())
	bi, ok := ctx.Memory.Deref(ctx, sum.Ref()).(*bigIntObj)
	require.True(t, ok)

	want := new(big.Int).Add(big.NewInt(smallIntMax), big.NewInt(1))
	assert.Equal(t, 0, bi.v.Cmp(want))
}

func TestMulIntOverflowIsMathematicallyCorrect(t *testing.T) {
	ctx := NewContext(0, 0)
	a := NewInt(ctx, smallIntMax)
	prod := MulInt(ctx, a, a)
	require.True(t, prod.IsRef())

	want := new(big.Int).Mul(big.NewInt(smallIntMax), big.NewInt(smallIntMax))
	bi := ctx.Memory.Deref(ctx, prod.Ref()).(*bigIntObj)
	assert.Equal(t, 0, bi.v.Cmp(want))
}

func TestSubIntStaysSmallWhenInRange(t *testing.T) {
	ctx := NewContext(0, 0)
	diff := SubInt(ctx, NewInt(ctx, 10), NewInt(ctx, 3))
	require.True(t, diff.IsSmallIntValue())
	assert.Equal(t, int64(7), diff.AsSmallInt())
}

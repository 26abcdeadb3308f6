package zis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nativeEcho(ctx *Context) error {
	ctx.SetReg0(ctx.Stack.Current().Regs[1])
	return nil
}

func TestInvokeArityExactMandatory(t *testing.T) {
	ctx := NewContext(0, 64)
	fn := NewNativeFunction(ctx, FuncMeta{Na: 2, No: 0, Nr: 3}, nativeEcho, RefNull)

	a, b := NewInt(ctx, 1), NewInt(ctx, 2)
	ret, err := Invoke(ctx, fn, []Value{a, b})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ret.AsSmallInt())

	// Too few arguments is a type Exception, no frame leaked.
	depthBefore := ctx.Stack.Depth()
	_, err = Invoke(ctx, fn, []Value{a})
	assert.Error(t, err)
	assert.Equal(t, depthBefore, ctx.Stack.Depth())
}

func TestInvokeArityOptionalDefaultsNil(t *testing.T) {
	ctx := NewContext(0, 64)
	fn := NewNativeFunction(ctx, FuncMeta{Na: 1, No: 1, Nr: 3}, func(ctx *Context) error {
		ctx.SetReg0(ctx.Stack.Current().Regs[2])
		return nil
	}, RefNull)

	a := NewInt(ctx, 7)
	ret, err := Invoke(ctx, fn, []Value{a})
	require.NoError(t, err)
	require.True(t, ret.IsRef())
	assert.Equal(t, ctx.Globals.Nil, ret.Ref())

	b := NewInt(ctx, 9)
	ret, err = Invoke(ctx, fn, []Value{a, b})
	require.NoError(t, err)
	assert.Equal(t, int64(9), ret.AsSmallInt())
}

func TestInvokeArityVariadicCollectsTuple(t *testing.T) {
	ctx := NewContext(0, 64)
	fn := NewNativeFunction(ctx, FuncMeta{Na: 1, No: -1, Nr: 3}, func(ctx *Context) error {
		ctx.SetReg0(ctx.Stack.Current().Regs[2])
		return nil
	}, RefNull)

	args := []Value{NewInt(ctx, 1), NewInt(ctx, 2), NewInt(ctx, 3), NewInt(ctx, 4)}
	ret, err := Invoke(ctx, fn, args)
	require.NoError(t, err)

	tup, ok := ctx.Memory.Deref(ctx, ret.Ref()).(*tupleObj)
	require.True(t, ok)
	require.Len(t, tup.items, 3)
	for i, want := range []int64{2, 3, 4} {
		assert.Equal(t, want, tup.items[i].AsSmallInt())
	}
}

func TestInvokeNonCallableReportsTypeException(t *testing.T) {
	ctx := NewContext(0, 64)
	_, err := Invoke(ctx, NewInt(ctx, 5), nil)
	assert.Error(t, err)
}

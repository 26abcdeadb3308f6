package zis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCKeepsRootedValuesValid(t *testing.T) {
	ctx := NewContext(4, 0) // tiny nursery forces collections quickly

	scope := NewLocalsScope(ctx, 1)
	defer scope.Close()

	rooted := NewString(ctx, "stays alive")
	scope.Set(0, rooted)

	for i := 0; i < 64; i++ {
		NewString(ctx, "garbage")
	}

	obj, ok := ctx.Memory.Deref(ctx, scope.Get(0).Ref()).(*stringObj)
	require.True(t, ok)
	assert.Equal(t, "stays alive", obj.String())
}

func TestGCPromotesCallStackRoots(t *testing.T) {
	ctx := NewContext(4, 64)

	frame := ctx.Stack.PushFrame(ctx, 2, RefNull)
	frame.Regs[1] = NewString(ctx, "in a frame")

	for i := 0; i < 64; i++ {
		NewString(ctx, "garbage")
	}

	obj, ok := ctx.Memory.Deref(ctx, ctx.Stack.Current().Regs[1].Ref()).(*stringObj)
	require.True(t, ok)
	assert.Equal(t, "in a frame", obj.String())

	ctx.Stack.PopFrame()
}

func TestWriteBarrierKeepsOldToYoungEdgeLive(t *testing.T) {
	ctx := NewContext(4, 0)

	scope := NewLocalsScope(ctx, 1)
	defer scope.Close()

	arr := newArray(ctx, nil) // AllocAuto, young
	oldRef := ctx.Memory.Alloc(ctx, AllocSurv, &tupleObj{items: []Value{arr}})
	ctx.Memory.WriteBarrier(oldRef, arr.Ref())
	scope.Set(0, refValue(oldRef)) // only the old-space holder is rooted directly

	ctx.Memory.GC(ctx)
	ctx.Memory.GC(ctx)

	// arr is reachable only through oldRef's slot; if the mark phase
	// failed to trace that old-to-young edge, this Deref would panic.
	holder := ctx.Memory.Deref(ctx, oldRef).(*tupleObj)
	obj := ctx.Memory.Deref(ctx, holder.items[0].Ref())
	_, ok := obj.(*arrayObj)
	assert.True(t, ok)
}

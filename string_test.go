package zis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRoundTrip(t *testing.T) {
	ctx := NewContext(0, 0)
	cases := []string{"", "hello", "a\nb\tc", "héllo wörld", "emoji: 🎉🔥", "日本語"}
	for _, s := range cases {
		v := NewString(ctx, s)
		obj, ok := ctx.Memory.Deref(ctx, v.Ref()).(*stringObj)
		require.True(t, ok)
		assert.Equal(t, s, obj.String())
		assert.Equal(t, len([]rune(s)), obj.RuneCount())
	}
}

func TestStringWidthSelection(t *testing.T) {
	ctx := NewContext(0, 0)

	narrow := NewString(ctx, "plain ascii and ÿ")
	w1 := ctx.Memory.Deref(ctx, narrow.Ref()).(*stringObj)
	assert.Equal(t, 1, w1.Width())

	mid := NewString(ctx, "plainĀ")
	w2 := ctx.Memory.Deref(ctx, mid.Ref()).(*stringObj)
	assert.Equal(t, 2, w2.Width())

	wide := NewString(ctx, "plain\U00010000")
	w4 := ctx.Memory.Deref(ctx, wide.Ref()).(*stringObj)
	assert.Equal(t, 4, w4.Width())
}

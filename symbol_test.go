package zis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolUniqueness(t *testing.T) {
	ctx := NewContext(0, 0)

	a1 := ctx.Symbols.Get([]byte("alpha"))
	a2 := ctx.Symbols.Get([]byte("alpha"))
	assert.Equal(t, a1.Ref(), a2.Ref(), "get(s) == get(s) as handle equality")

	b := ctx.Symbols.Get([]byte("beta"))
	assert.NotEqual(t, a1.Ref(), b.Ref())
}

func TestSymbolWeakAfterGC(t *testing.T) {
	ctx := NewContext(0, 0)

	sym := ctx.Symbols.Get([]byte("transient"))
	_, found := ctx.Symbols.Find([]byte("transient"))
	assert.True(t, found)

	// Drop every strong reference to sym (it's not rooted anywhere else)
	// and force a collection.
	_ = sym
	ctx.Memory.GC(ctx)

	_, found = ctx.Symbols.Find([]byte("transient"))
	assert.False(t, found, "collected symbol must not be returned by find")

	fresh := ctx.Symbols.Get([]byte("transient"))
	assert.NotEqual(t, Ref(0), fresh.Ref(), "a subsequent get must mint a fresh instance")
}

package zis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblerForwardJump(t *testing.T) {
	ctx := NewContext(0, 0)
	as := NewAssembler(ctx, nil)
	as.Meta(FuncMeta{Nr: 1})

	label := as.AllocLabel()
	jumpAt := len(as.code)
	as.AppendJumpAsw(OpRETNIL, label) // placeholder
	as.AppendX(OpNOP)
	as.AppendX(OpNOP)
	as.PlaceLabel(label)
	as.AppendX(OpRETNIL)

	fn, err := as.Finish(RefNull)
	require.NoError(t, err)

	obj, ok := ctx.Memory.Deref(ctx, fn.Ref()).(*functionObj)
	require.True(t, ok)

	want := int32(len(obj.bytecode) - 1 - (jumpAt + 1))
	got := ExtractAsw(Instr(obj.bytecode[jumpAt]))
	assert.Equal(t, want, got)
}

func TestAssemblerJumpOverflowIsReportedNotTruncated(t *testing.T) {
	ctx := NewContext(0, 0)
	as := NewAssembler(ctx, nil)
	as.Meta(FuncMeta{Nr: 1})

	label := as.AllocLabel()
	as.AppendJumpAsBw(OpTHR, label, 0)
	for i := 0; i < 10; i++ {
		as.AppendX(OpNOP)
	}
	as.PlaceLabel(label)

	// Manually force an out-of-range offset to exercise the overflow path
	// without emitting millions of NOPs.
	as.fixups[0].pos = 0
	as.labels[label] = maxI25 + 100

	_, err := as.Finish(RefNull)
	assert.Error(t, err)
}

func TestAssemblerConstantDedup(t *testing.T) {
	ctx := NewContext(0, 0)
	as := NewAssembler(ctx, nil)

	v := NewInt(ctx, 7)
	id1 := as.Constant(v)
	id2 := as.Constant(NewInt(ctx, 7))
	assert.Equal(t, id1, id2)
}

func TestAssemblerSymbolDedup(t *testing.T) {
	ctx := NewContext(0, 0)
	as := NewAssembler(ctx, nil)

	s1 := ctx.Symbols.Get([]byte("x"))
	s2 := ctx.Symbols.Get([]byte("x"))
	assert.Equal(t, as.Symbol(s1), as.Symbol(s2))
}

func TestAssemblerNestingRejectsSecondChild(t *testing.T) {
	ctx := NewContext(0, 0)
	parent := NewAssembler(ctx, nil)
	_ = NewAssembler(ctx, parent)
	assert.Panics(t, func() { NewAssembler(ctx, parent) })
}

package zis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExceptionStackTraceOrder(t *testing.T) {
	ctx := NewContext(0, 64)

	exc := NewExceptionf(ctx, ExcValue, ctx.NilValue(), "boom")

	const depth = 5
	fns := make([]Ref, depth)
	for i := range fns {
		v := NewNativeFunction(ctx, FuncMeta{Nr: 1}, nil, RefNull)
		fns[i] = v.Ref()
	}

	// Simulate a THR unwinding outward through depth frames, innermost first.
	for i := 0; i < depth; i++ {
		AppendStackTrace(ctx, exc, fns[i], i*10)
	}

	require.Equal(t, depth, StackTraceLength(ctx, exc))

	var visited []Ref
	WalkStackTrace(ctx, exc, func(index int, fn Ref, offset int) bool {
		assert.Equal(t, index*10, offset)
		visited = append(visited, fn)
		return true
	})
	require.Len(t, visited, depth)
	for i, fn := range visited {
		assert.Equal(t, fns[i], fn)
	}
}

func TestExceptionWalkStopsEarly(t *testing.T) {
	ctx := NewContext(0, 0)
	exc := NewExceptionf(ctx, ExcValue, ctx.NilValue(), "boom")
	AppendStackTrace(ctx, exc, RefNull, 1)
	AppendStackTrace(ctx, exc, RefNull, 2)
	AppendStackTrace(ctx, exc, RefNull, 3)

	seen := 0
	WalkStackTrace(ctx, exc, func(index int, fn Ref, offset int) bool {
		seen++
		return index < 0 // stop after the very first visit
	})
	assert.Equal(t, 1, seen)
}

func TestExceptionCommonTemplates(t *testing.T) {
	ctx := NewContext(0, 0)

	cases := []struct {
		tmpl CommonTemplate
		args []any
	}{
		{ExcUnsupportedOperationUnary, []any{"-", "String"}},
		{ExcUnsupportedOperationBinary, []any{"+", "Int", "String"}},
		{ExcUnsupportedOperationSubscript, []any{"Array", 3}},
		{ExcWrongArgumentType, []any{"Int", "String"}},
		{ExcIndexOutOfRange, []any{5}},
		{ExcKeyNotFound, []any{"foo"}},
		{ExcNameNotFound, []any{"bar"}},
	}
	for _, c := range cases {
		exc := NewExceptionCommon(ctx, c.tmpl, c.args...)
		assert.NotEmpty(t, ExceptionWhat(ctx, exc))
	}
}

package zis

import "io"

// Globals is the process-wide (per-Context) table of named built-in
// types and singletons, plus the shared standard streams, per spec.md
// §3's Core entities table and §5's "Shared resources" paragraph.
type Globals struct {
	Nil   Ref
	True  Ref
	False Ref

	// Types maps a built-in type name to the typeObj Ref wrapping its
	// *Type descriptor (Nil, Bool, Int, Float, String, Symbol, Tuple,
	// Array, ArraySlots, Map, Range, Exception, Function, Module, Type).
	Types map[string]Ref

	// Names is the general name -> value table the host's module
	// loader and prelude publish into (spec.md §6 "Public C-like API").
	Names map[string]Value

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

func newGlobals(ctx *Context) *Globals {
	g := &Globals{
		Types: make(map[string]Ref, 16),
		Names: make(map[string]Value, 16),
	}
	g.Nil = ctx.Memory.Alloc(ctx, AllocSurv, &nilObj{})
	g.True = ctx.Memory.Alloc(ctx, AllocSurv, &boolObj{b: true})
	g.False = ctx.Memory.Alloc(ctx, AllocSurv, &boolObj{b: false})

	for _, t := range []*Type{
		builtinNilType, builtinBoolType, builtinIntType, builtinFloatType,
		builtinStringType, builtinSymbolType, builtinTupleType, builtinArrayType,
		builtinArraySlotsType, builtinMapType, builtinRangeType, builtinExceptionType,
		builtinFunctionType, builtinModuleType, builtinTypeType,
	} {
		ref := ctx.Memory.Alloc(ctx, AllocSurv, &typeObj{t: t})
		g.Types[t.Name] = ref
	}
	return g
}

// NilValue returns the context's singleton Nil.
func (ctx *Context) NilValue() Value { return refValue(ctx.Globals.Nil) }

// BoolValue returns the context's singleton True or False.
func (ctx *Context) BoolValue(b bool) Value {
	if b {
		return refValue(ctx.Globals.True)
	}
	return refValue(ctx.Globals.False)
}

// IsNil reports whether v is the context's Nil singleton.
func (ctx *Context) IsNil(v Value) bool {
	return v.IsRef() && v.Ref() == ctx.Globals.Nil
}

func (ctx *Context) globalRoots() []Ref {
	g := ctx.Globals
	out := make([]Ref, 0, 3+len(g.Types)+len(g.Names))
	out = append(out, g.Nil, g.True, g.False)
	for _, ref := range g.Types {
		out = append(out, ref)
	}
	for _, v := range g.Names {
		if v.kind == kindRef {
			out = append(out, v.ref)
		}
	}
	return out
}

package zis

// NativeFunc is a host-implemented callable. It returns the OK/THR
// signal implicitly through ctx.Reg0(): on success it returns nil and
// leaves the result in reg-0; on failure it writes a *Exception to reg-0
// and returns a non-nil error, per spec.md §4.5's Execute step.
type NativeFunc func(ctx *Context) error

// FuncMeta is the `na`/`no`/`nr` triple spec.md §3 describes: na is the
// count of mandatory positional arguments, no is the signed optional
// count (no>=0: that many trailing params default to nil; no<0: the
// last declared parameter collects all trailing actuals into a Tuple),
// and nr is the total register count for the frame, including reg-0.
type FuncMeta struct {
	Na int
	No int
	Nr int
}

// Variadic reports whether m declares a trailing-tuple parameter.
func (m FuncMeta) Variadic() bool { return m.No < 0 }

// OptionalCount returns how many optional (nil-defaulted) trailing
// parameters m declares; zero for variadic functions.
func (m FuncMeta) OptionalCount() int {
	if m.No < 0 {
		return 0
	}
	return m.No
}

// functionObj is the basic callable object: header, symbol table,
// constant table, parent module, meta, and either a native entry or a
// bytecode buffer, per spec.md §3.
type functionObj struct {
	symbols   []Value
	constants []Value
	module    Ref // optional parent Module
	meta      FuncMeta
	native    NativeFunc
	bytecode  []uint32 // nil for native functions
}

func (o *functionObj) objType() *Type { return builtinFunctionType }

var builtinFunctionType = &Type{Name: "Function", Layout: LayoutBytesExtended}

// IsNative reports whether fn has a native entry rather than bytecode.
func (o *functionObj) IsNative() bool { return o.native != nil }

// NewNativeFunction wraps a Go function as a callable Function object.
func NewNativeFunction(ctx *Context, meta FuncMeta, fn NativeFunc, module Ref) Value {
	obj := &functionObj{meta: meta, native: fn, module: module}
	ref := ctx.Memory.Alloc(ctx, AllocSurv, obj)
	return refValue(ref)
}

// NewBytecodeFunction wraps an assembled instruction buffer as a
// callable Function object. The buffer is allocated AllocNoMove: the
// interpreter holds raw indices into it as its instruction pointer, and
// those must never be invalidated by a moving collection (spec.md §4.1).
func NewBytecodeFunction(ctx *Context, meta FuncMeta, symbols, constants []Value, code []uint32, module Ref) Value {
	obj := &functionObj{meta: meta, symbols: symbols, constants: constants, bytecode: code, module: module}
	ref := ctx.Memory.Alloc(ctx, AllocNoMove, obj)
	return refValue(ref)
}

func asFunction(ctx *Context, v Value) (*functionObj, bool) {
	if !v.IsRef() {
		return nil, false
	}
	fn, ok := ctx.Memory.Deref(ctx, v.Ref()).(*functionObj)
	return fn, ok
}

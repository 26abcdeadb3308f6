package zis

// Context is the process-wide runtime state container described in
// spec.md §4.4: object memory, call stack, symbol registry, the global
// table, and the panic handler. One Context is owned by one native Go
// goroutine at a time; nothing here is safe to share across goroutines
// (spec.md §5 — the runtime is single-threaded by design).
type Context struct {
	Memory  *ObjectMemory
	Stack   *CallStack
	Symbols *SymbolRegistry
	Globals *Globals

	PanicHandler func(ctx *Context, reason PanicReason)

	locals *localsNode // head of the locals-root linked list

	// topReg0 backs SetReg0/Reg0 when no frame is active (e.g. before
	// the first Invoke call, or after the last frame has been popped).
	topReg0 Value
}

// NewContext creates a runtime context with the given nursery capacity
// (see NewObjectMemory) and call-stack register budget (see
// NewCallStack).
func NewContext(youngLimit, stackRegs int) *Context {
	ctx := &Context{Memory: NewObjectMemory(youngLimit)}
	ctx.Symbols = NewSymbolRegistry(ctx)
	ctx.Stack = NewCallStack(stackRegs)
	ctx.Globals = newGlobals(ctx)
	ctx.topReg0 = ctx.NilValue()
	return ctx
}

// SetReg0 stores v into the current frame's slot 0 (or the context-level
// fallback when no frame is active), per the reg-0 convention in
// spec.md §4.4.
func (ctx *Context) SetReg0(v Value) {
	if f := ctx.Stack.Current(); f != nil {
		f.Regs[0] = v
		return
	}
	ctx.topReg0 = v
}

// Reg0 loads the value most recently stored by SetReg0.
func (ctx *Context) Reg0() Value {
	if f := ctx.Stack.Current(); f != nil {
		return f.Regs[0]
	}
	return ctx.topReg0
}

package zis

// Prepare validates callee against its declared arity and, on success,
// pushes a new nr-register frame, copies positional arguments into
// slots 1..na, fills optional slots with nil (or the last slot with a
// variadic Tuple), and returns the resolved function. On arity mismatch
// or a non-callable target it writes a type Exception into the caller's
// reg-0 and returns (nil, false) — no frame is pushed. See spec.md §4.5.
func Prepare(ctx *Context, callee Value, args []Value) (*functionObj, bool) {
	fn, ok := asFunction(ctx, callee)
	if !ok {
		ctx.SetReg0(NewExceptionf(ctx, ExcType, ctx.NilValue(), "not callable"))
		return nil, false
	}
	meta := fn.meta

	if meta.Variadic() {
		if len(args) < meta.Na {
			ctx.SetReg0(NewExceptionf(
				ctx, ExcType, ctx.NilValue(),
				"wrong number of arguments: expected at least %d, got %d", meta.Na, len(args),
			))
			return nil, false
		}
	} else {
		maxArgs := meta.Na + meta.OptionalCount()
		if len(args) < meta.Na || len(args) > maxArgs {
			ctx.SetReg0(NewExceptionf(
				ctx, ExcType, ctx.NilValue(),
				"wrong number of arguments: expected %d..%d, got %d", meta.Na, maxArgs, len(args),
			))
			return nil, false
		}
	}

	fnRef := callee.Ref()
	frame := ctx.Stack.PushFrame(ctx, meta.Nr, fnRef)
	for i := range frame.Regs {
		frame.Regs[i] = ctx.NilValue()
	}

	if meta.Variadic() {
		for i := 0; i < meta.Na; i++ {
			frame.Regs[1+i] = args[i]
		}
		frame.Regs[1+meta.Na] = NewTuple(ctx, args[meta.Na:])
	} else {
		for i, a := range args {
			frame.Regs[1+i] = a
		}
	}

	return fn, true
}

// Execute runs fn in the frame Prepare just pushed: a native entry is
// called directly, a bytecode entry runs the interpreter loop. It
// returns nil on OK, or a non-nil error (wrapping the Exception now
// sitting in reg-0) on THR, per spec.md §4.5.
func Execute(ctx *Context, fn *functionObj) error {
	if fn.IsNative() {
		if err := fn.native(ctx); err != nil {
			return err
		}
		return nil
	}
	return runInterpreter(ctx, fn)
}

// Cleanup pops the current frame and returns its slot 0 (the value the
// callee left there, be it a normal return or a propagating exception),
// per spec.md §4.5.
func Cleanup(ctx *Context) Value {
	return ctx.Stack.PopFrame()
}

// Invoke is the Prepare/Execute/Cleanup sequence bundled into a single
// call, matching the shape a host embedding the runtime would use.
func Invoke(ctx *Context, callee Value, args []Value) (Value, error) {
	fn, ok := Prepare(ctx, callee, args)
	if !ok {
		return ctx.Reg0(), AsError(ctx, ctx.Reg0())
	}
	err := Execute(ctx, fn)
	ret := Cleanup(ctx)
	return ret, err
}

// NewTuple allocates an immutable Tuple from items.
func NewTuple(ctx *Context, items []Value) Value {
	cp := append([]Value(nil), items...)
	ref := ctx.Memory.Alloc(ctx, AllocSurv, &tupleObj{items: cp})
	return refValue(ref)
}

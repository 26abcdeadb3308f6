package zis

import "fmt"

// StackTraceEntry is one (Function, instruction-offset) pair appended by
// the interpreter as a THR unwinds, per spec.md §3's Exception invariant.
type StackTraceEntry struct {
	Function Ref // the functionObj active when the exception passed through
	Offset   int // bytecode instruction index at that point
}

// exceptionObj is the heap payload behind *Exception values.
type exceptionObj struct {
	typ        Value // symbol or nil
	what       Value // string or nil
	data       Value // any
	stackTrace []StackTraceEntry
}

func (o *exceptionObj) objType() *Type { return builtinExceptionType }

var builtinExceptionType = &Type{Name: "Exception", Layout: LayoutSlotsExtended}

// Exception taxonomy, per spec.md §7.
const (
	ExcSyntax = "syntax"
	ExcType   = "type"
	ExcKey    = "key"
	ExcValue  = "value"
	ExcIO     = "io"
)

// NewException builds an Exception object from already-built Values.
// type_, what, and data are all optional (pass ctx.NilValue() to omit).
func NewException(ctx *Context, type_, what, data Value) Value {
	ref := ctx.Memory.Alloc(ctx, AllocSurv, &exceptionObj{typ: type_, what: what, data: data})
	return refValue(ref)
}

// NewExceptionf builds an Exception whose `what` is a formatted message,
// mirroring zis_exception_obj_format from original_source/core/exceptobj.h.
func NewExceptionf(ctx *Context, typ string, data Value, format string, args ...any) Value {
	var typVal Value
	if typ == "" {
		typVal = ctx.NilValue()
	} else {
		typVal = ctx.Symbols.Get([]byte(typ))
	}
	what := NewString(ctx, fmt.Sprintf(format, args...))
	return NewException(ctx, typVal, what, data)
}

// CommonTemplate selects one of the pre-canned exception message shapes
// from spec.md §4.9 / original_source/core/exceptobj.h.
type CommonTemplate int

const (
	ExcUnsupportedOperationUnary CommonTemplate = iota
	ExcUnsupportedOperationBinary
	ExcUnsupportedOperationSubscript
	ExcWrongArgumentType
	ExcIndexOutOfRange
	ExcKeyNotFound
	ExcNameNotFound
)

// NewExceptionCommon formats one of the standard templated messages.
func NewExceptionCommon(ctx *Context, tmpl CommonTemplate, args ...any) Value {
	switch tmpl {
	case ExcUnsupportedOperationUnary:
		return NewExceptionf(ctx, ExcType, ctx.NilValue(), "unsupported operation: %v %v", args...)
	case ExcUnsupportedOperationBinary:
		return NewExceptionf(ctx, ExcType, ctx.NilValue(), "unsupported operation: %v %v %v", args...)
	case ExcUnsupportedOperationSubscript:
		return NewExceptionf(ctx, ExcType, ctx.NilValue(), "unsupported operation: %v[%v]", args...)
	case ExcWrongArgumentType:
		return NewExceptionf(ctx, ExcType, ctx.NilValue(), "wrong argument type: expected %v, got %v", args...)
	case ExcIndexOutOfRange:
		return NewExceptionf(ctx, ExcValue, ctx.NilValue(), "index out of range: %v", args...)
	case ExcKeyNotFound:
		return NewExceptionf(ctx, ExcKey, ctx.NilValue(), "key not found: %v", args...)
	case ExcNameNotFound:
		return NewExceptionf(ctx, ExcKey, ctx.NilValue(), "name not found: %v", args...)
	default:
		return NewExceptionf(ctx, "", ctx.NilValue(), "unknown exception template")
	}
}

// excError adapts an Exception Value to the Go error interface, so
// native functions and Invoke can return (Value, error) the idiomatic
// Go way while still following the reg-0 convention underneath.
type excError struct {
	ctx *Context
	val Value
}

func (e excError) Error() string { return ExceptionWhat(e.ctx, e.val) }

// AsError wraps an Exception Value as a Go error.
func AsError(ctx *Context, val Value) error { return excError{ctx: ctx, val: val} }

func asException(ctx *Context, v Value) (*exceptionObj, bool) {
	if !v.IsRef() {
		return nil, false
	}
	exc, ok := ctx.Memory.Deref(ctx, v.Ref()).(*exceptionObj)
	return exc, ok
}

// AppendStackTrace records one (Function, offset) pair, called by the
// interpreter each time a THR unwinds through a frame, per spec.md §4.6.
func AppendStackTrace(ctx *Context, exc Value, fn Ref, offset int) {
	obj, ok := asException(ctx, exc)
	if !ok {
		return
	}
	obj.stackTrace = append(obj.stackTrace, StackTraceEntry{Function: fn, Offset: offset})
}

// StackTraceLength is half the raw entry count: the number of frames
// the exception passed through, per spec.md §4.9.
func StackTraceLength(ctx *Context, exc Value) int {
	obj, ok := asException(ctx, exc)
	if !ok {
		return 0
	}
	return len(obj.stackTrace)
}

// WalkStackTrace invokes visit for each (Function, offset) pair in
// innermost-first order (the order they were appended during unwind),
// stopping early if visit returns false.
func WalkStackTrace(ctx *Context, exc Value, visit func(index int, fn Ref, offset int) bool) {
	obj, ok := asException(ctx, exc)
	if !ok {
		return
	}
	for i, e := range obj.stackTrace {
		if !visit(i, e.Function, e.Offset) {
			return
		}
	}
}

// ExceptionWhat returns the exception's human-readable message, or ""
// if it has none.
func ExceptionWhat(ctx *Context, exc Value) string {
	obj, ok := asException(ctx, exc)
	if !ok {
		return ""
	}
	if !obj.what.IsRef() {
		return ""
	}
	s, ok := ctx.Memory.Deref(ctx, obj.what.Ref()).(*stringObj)
	if !ok {
		return ""
	}
	return s.String()
}

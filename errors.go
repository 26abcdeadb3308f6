package zis

import "fmt"

// PanicReason identifies why the runtime aborted. Distinct from the
// Exception value channel: a panic is never recoverable in-language.
type PanicReason int

const (
	PanicAbort PanicReason = iota // unrecoverable programmer error
	PanicOOM                      // allocation failed after a full collection
	PanicSOV                      // call stack would exceed its budget
	PanicILL                      // illegal bytecode opcode
	PanicImpl                     // unimplemented path
)

func (r PanicReason) String() string {
	switch r {
	case PanicAbort:
		return "ABORT"
	case PanicOOM:
		return "OOM"
	case PanicSOV:
		return "SOV"
	case PanicILL:
		return "ILL"
	case PanicImpl:
		return "IMPL"
	default:
		return "UNKNOWN"
	}
}

// PanicError is the payload of a Go panic raised by Panic(). The hosting
// layer recovers it at the boundary, invokes the registered handler, and
// re-panics; nothing inside the core ever recovers one.
type PanicError struct {
	Reason  PanicReason
	Message string
}

func (e *PanicError) Error() string {
	if e.Message == "" {
		return e.Reason.String()
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// Panic invokes ctx's panic handler, if any, and then panics with a
// *PanicError. It never returns.
func Panic(ctx *Context, reason PanicReason, format string, args ...any) {
	err := &PanicError{Reason: reason, Message: fmt.Sprintf(format, args...)}
	if ctx != nil && ctx.PanicHandler != nil {
		ctx.PanicHandler(ctx, reason)
	}
	panic(err)
}

// ErrNotImplemented is returned by parser/codegen stub branches that
// intentionally raise "not implemented", mirroring the teacher source's
// codegen stub (see SPEC_FULL.md §6.11).
var ErrNotImplemented = fmt.Errorf("not implemented")

package zis

// localsNode is one link in the context's locals-root list: a block of
// object slots that native Go code holds across an allocation, and
// which the collector therefore must treat as a root. It plays the role
// of the C macro triplet zis_locals_decl/zero/drop (spec.md §4.4, §9).
type localsNode struct {
	slots  []Value
	next   *localsNode
	closed bool
}

// LocalsScope is the Go stand-in for the native-stack-resident locals
// block described in spec.md §4.4: construct it with NewLocalsScope,
// hold object references across any allocation in its slots, and Close
// it (typically via defer) before returning. Scopes must close in
// strict reverse declaration order — Close panics ABORT otherwise,
// exactly as the original's debug assertions do.
type LocalsScope struct {
	ctx  *Context
	node *localsNode
}

// NewLocalsScope declares a block of n slots and links it at the head of
// ctx's locals-root list. Slots start zero-valued, which is always
// GC-safe (a zero Value looks like SmallInt(0), never a dangling Ref).
func NewLocalsScope(ctx *Context, n int) *LocalsScope {
	node := &localsNode{slots: make([]Value, n), next: ctx.locals}
	ctx.locals = node
	return &LocalsScope{ctx: ctx, node: node}
}

// Get returns the i-th slot.
func (s *LocalsScope) Get(i int) Value { return s.node.slots[i] }

// Set stores v into the i-th slot. Use this (not a raw struct field)
// whenever a value must survive across an allocation.
func (s *LocalsScope) Set(i int, v Value) { s.node.slots[i] = v }

// Len returns the number of slots this scope declared.
func (s *LocalsScope) Len() int { return len(s.node.slots) }

// Close unlinks the scope from ctx's locals-root list. It must be called
// exactly once, in the reverse order scopes were created (innermost
// first) — any other order means some native function is about to
// return while still holding the list's tail, corrupting every
// enclosing scope's roots, which is exactly the fatal defect spec.md
// §4.4 requires this enforcement for.
func (s *LocalsScope) Close() {
	if s.node.closed {
		Panic(s.ctx, PanicAbort, "LocalsScope closed twice")
	}
	if s.ctx.locals != s.node {
		Panic(s.ctx, PanicAbort, "LocalsScope closed out of declaration order")
	}
	s.node.closed = true
	s.ctx.locals = s.node.next
}

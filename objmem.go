package zis

import "golang.org/x/exp/slices"

// object is implemented by every heap-allocated payload type (strings,
// symbols, tuples, arrays, maps, ranges, functions, modules, exceptions,
// types, bigints, and the Nil/Bool singletons). It is the polymorphism
// anchor spec.md §3 calls the "object header": here the header is
// implicit in which object memory space a value's handle points into,
// plus the Type pointer every payload carries.
type object interface {
	objType() *Type
}

// AllocMode selects which object-memory space a new object is placed
// in, per spec.md §4.1.
type AllocMode int

const (
	// AllocAuto bump-allocates in the young generation; the common case.
	AllocAuto AllocMode = iota
	// AllocSurv allocates directly in the old/survivor space, for
	// objects the caller knows will outlive a nursery cycle.
	AllocSurv
	// AllocNoMove allocates in a space that never moves; used for
	// bytecode buffers whose addresses the interpreter holds directly
	// as an instruction pointer.
	AllocNoMove
)

// Ref is a stable handle to a heap object. It never changes value across
// a GC cycle even though the object it designates may move between
// spaces; dereferencing always re-reads the current location from the
// handle table. RefNull is never a valid allocated handle.
type Ref uint32

const RefNull Ref = 0

type handleLoc struct {
	space spaceKind
	index int
	live  bool
}

type spaceKind uint8

const (
	spaceYoung spaceKind = iota
	spaceOld
	spaceBig
)

// ObjectMemory is the moving, generational object allocator. It owns
// every live object reachable through a Ref, the remembered set used by
// the write barrier, and the handle table that makes moves invisible to
// holders of a Ref.
type ObjectMemory struct {
	young []object
	old   []object
	big   []object

	handles []handleLoc // index 0 is RefNull's slot, never used
	free    []Ref

	// remembered holds old-space refs that point at young-space
	// objects; WriteBarrier populates it, GC() drains it when
	// promoting survivors.
	remembered map[Ref]struct{}

	youngLimit int // nursery bump limit before a minor collection runs
	collections int
}

// NewObjectMemory creates an allocator with the given nursery capacity
// (number of objects, not bytes — this is a logical model, not a byte
// arena, see SPEC_FULL.md §6.1).
func NewObjectMemory(youngLimit int) *ObjectMemory {
	if youngLimit <= 0 {
		youngLimit = 4096
	}
	return &ObjectMemory{
		handles:    make([]handleLoc, 1, 256),
		remembered: make(map[Ref]struct{}),
		youngLimit: youngLimit,
	}
}

func (m *ObjectMemory) newHandle(loc handleLoc) Ref {
	if n := len(m.free); n > 0 {
		ref := m.free[n-1]
		m.free = m.free[:n-1]
		m.handles[ref] = loc
		return ref
	}
	m.handles = append(m.handles, loc)
	return Ref(len(m.handles) - 1)
}

// Alloc places obj according to mode and returns a stable Ref to it. A
// nursery allocation that would exceed youngLimit triggers a minor GC
// first (GC is invoked only at allocation points, per spec.md §5).
func (m *ObjectMemory) Alloc(ctx *Context, mode AllocMode, obj object) Ref {
	if mode == AllocAuto && len(m.young) >= m.youngLimit {
		m.GC(ctx)
	}
	var loc handleLoc
	switch mode {
	case AllocNoMove:
		loc = handleLoc{space: spaceBig, index: len(m.big), live: true}
		m.big = append(m.big, obj)
	case AllocSurv:
		loc = handleLoc{space: spaceOld, index: len(m.old), live: true}
		m.old = append(m.old, obj)
	default:
		loc = handleLoc{space: spaceYoung, index: len(m.young), live: true}
		m.young = append(m.young, obj)
	}
	return m.newHandle(loc)
}

// Deref resolves a Ref to its current object. It panics ABORT on a null
// or dead handle: those are programmer errors, never user-visible.
func (m *ObjectMemory) Deref(ctx *Context, ref Ref) object {
	if ref == RefNull || int(ref) >= len(m.handles) || !m.handles[ref].live {
		Panic(ctx, PanicAbort, "dereferenced a null or collected Ref")
	}
	loc := m.handles[ref]
	switch loc.space {
	case spaceYoung:
		return m.young[loc.index]
	case spaceOld:
		return m.old[loc.index]
	default:
		return m.big[loc.index]
	}
}

// WriteBarrier must be invoked after storing ref `to` into a slot owned
// by object `from`, whenever `from` was allocated with AllocSurv or
// AllocNoMove (i.e. is old) and `to` might be young. Omitting it is a
// fatal defect: a later minor GC would discard `to` and leave `from`
// holding a dangling Ref.
func (m *ObjectMemory) WriteBarrier(from, to Ref) {
	if from == RefNull || to == RefNull {
		return
	}
	if int(from) >= len(m.handles) || int(to) >= len(m.handles) {
		return
	}
	if m.handles[from].space == spaceYoung {
		return // A is young: its whole generation is scanned as a root anyway.
	}
	if m.handles[to].space != spaceYoung {
		return // B is not young: no intergenerational edge to remember.
	}
	m.remembered[from] = struct{}{}
}

// NoBarrierNeeded documents call sites that skip WriteBarrier because A
// is known young or B is known permanent. Misuse (calling this where the
// barrier was actually required) is the fatal defect spec.md §4.1 warns
// about; this function exists purely so such call sites are greppable.
func NoBarrierNeeded() {}

// GC runs a full collection: every root is traced, reachable young
// objects are promoted into old space, and handles are rewritten to
// point at their new locations. Unreachable handles are freed; symbol
// registry entries and old-space survivors referenced only via the
// remembered set are kept alive.
func (m *ObjectMemory) GC(ctx *Context) {
	m.collections++
	marked := make(map[Ref]bool, len(m.handles))
	var mark func(ref Ref)
	mark = func(ref Ref) {
		if ref == RefNull || int(ref) >= len(m.handles) || marked[ref] {
			return
		}
		if !m.handles[ref].live {
			return
		}
		marked[ref] = true
		for _, child := range m.references(ref) {
			mark(child)
		}
	}

	for _, root := range m.roots(ctx) {
		mark(root)
	}

	// The symbol registry is a weak root: it must not keep an entry
	// alive on its own. Now that every *other* root has been traced,
	// unlink chain entries the walk never reached so a later Get() for
	// the same bytes mints a fresh Symbol instead of resurrecting one
	// that's about to be collected.
	if ctx != nil && ctx.Symbols != nil {
		ctx.Symbols.Unlink(marked)
	}

	// remembered-set entries are old objects that hold young refs; the
	// young refs were already marked transitively by the root walk (the
	// old holder itself is only reachable if some root reaches it), so
	// we simply drop remembered entries whose holder died.
	remembered := make(map[Ref]struct{}, len(m.remembered))
	for ref := range m.remembered {
		if marked[ref] {
			remembered[ref] = struct{}{}
		}
	}
	m.remembered = remembered

	// Promote every marked young object into old space; rewrite its
	// handle in place so callers holding the Ref see no difference.
	newYoung := make([]object, 0, 0)
	for idx, obj := range m.young {
		ref := m.refOfYoung(idx)
		if ref == RefNull {
			continue
		}
		if !marked[ref] {
			m.handles[ref].live = false
			m.free = append(m.free, ref)
			continue
		}
		newIndex := len(m.old)
		m.old = append(m.old, obj)
		m.handles[ref] = handleLoc{space: spaceOld, index: newIndex, live: true}
	}
	m.young = newYoung

	// Compact old space, dropping anything unmarked (a full collection
	// reclaims dead old objects too).
	compactedOld := make([]object, 0, len(m.old))
	for idx, obj := range m.old {
		ref := m.refOfOld(idx)
		if ref == RefNull {
			compactedOld = append(compactedOld, obj)
			continue
		}
		if !marked[ref] {
			m.handles[ref].live = false
			m.free = append(m.free, ref)
			continue
		}
		newIndex := len(compactedOld)
		compactedOld = append(compactedOld, obj)
		m.handles[ref] = handleLoc{space: spaceOld, index: newIndex, live: true}
	}
	m.old = compactedOld

	if len(m.free) > 1 {
		slices.Sort(m.free)
		m.free = slices.Compact(m.free)
	}
}

// refOfYoung/refOfOld do a linear scan of the handle table; the model
// prioritizes a small, auditable implementation over raw GC throughput
// (this is a teaching VM, not a production allocator).
func (m *ObjectMemory) refOfYoung(index int) Ref {
	for ref, loc := range m.handles {
		if loc.live && loc.space == spaceYoung && loc.index == index {
			return Ref(ref)
		}
	}
	return RefNull
}

func (m *ObjectMemory) refOfOld(index int) Ref {
	for ref, loc := range m.handles {
		if loc.live && loc.space == spaceOld && loc.index == index {
			return Ref(ref)
		}
	}
	return RefNull
}

// roots enumerates every GC root: globals, the symbol registry, every
// live locals root, and the entire active call stack, per spec.md §3's
// "Lifecycles" paragraph and §4.1's "Roots" paragraph.
func (m *ObjectMemory) roots(ctx *Context) []Ref {
	var out []Ref
	if ctx == nil {
		return out
	}
	out = append(out, ctx.globalRoots()...)
	// NOTE: the symbol registry is intentionally excluded here — it is
	// a *weak* root (spec.md §4.3). See the Unlink call in GC().
	for node := ctx.locals; node != nil; node = node.next {
		for _, v := range node.slots {
			if v.kind == kindRef {
				out = append(out, v.ref)
			}
		}
	}
	if ctx.Stack != nil {
		for _, f := range ctx.Stack.frames {
			for _, v := range f.Regs {
				if v.kind == kindRef {
					out = append(out, v.ref)
				}
			}
		}
		for _, v := range ctx.Stack.temp {
			if v.kind == kindRef {
				out = append(out, v.ref)
			}
		}
	}
	return out
}

// references returns the direct children of the object a Ref points to,
// used by the mark phase. Only heap objects that can hold other Refs
// need an entry here.
func (m *ObjectMemory) references(ref Ref) []Ref {
	obj := m.unsafeDeref(ref)
	switch o := obj.(type) {
	case *symbolObj:
		// The bucket-chain link is registry bookkeeping, not a value a
		// reachable symbol "holds" — tracing it would make reachability
		// contagious across an entire hash bucket and defeat the
		// registry's weak-root contract (spec.md §4.3).
		return nil
	case *tupleObj:
		return refsOfValues(o.items)
	case *arraySlotsObj:
		return refsOfValues(o.items)
	case *arrayObj:
		return []Ref{o.slots}
	case *mapObj:
		var out []Ref
		for _, b := range o.buckets {
			for _, e := range b {
				out = append(out, refsOfValues([]Value{e.key, e.val})...)
			}
		}
		return out
	case *exceptionObj:
		var out []Ref
		out = append(out, refsOfValues([]Value{o.typ, o.what, o.data})...)
		for _, fr := range o.stackTrace {
			out = append(out, fr.Function)
		}
		return out
	case *functionObj:
		var out []Ref
		out = append(out, refsOfValues(o.symbols)...)
		out = append(out, refsOfValues(o.constants)...)
		if o.module != RefNull {
			out = append(out, o.module)
		}
		return out
	case *moduleObj:
		var out []Ref
		out = append(out, refsOfValues(o.variables)...)
		for _, fn := range o.functions {
			out = append(out, fn)
		}
		if o.parent != RefNull {
			out = append(out, o.parent)
		}
		return out
	case *typeObj:
		if o.t != nil {
			return refsOfValues(o.t.Statics0())
		}
	}
	return nil
}

func refsOfValues(vs []Value) []Ref {
	var out []Ref
	for _, v := range vs {
		if v.kind == kindRef && v.ref != RefNull {
			out = append(out, v.ref)
		}
	}
	return out
}

// unsafeDeref reads an object without the liveness panic Deref performs;
// used internally by the collector while walking possibly-dead handles.
func (m *ObjectMemory) unsafeDeref(ref Ref) object {
	if ref == RefNull || int(ref) >= len(m.handles) {
		return nil
	}
	loc := m.handles[ref]
	switch loc.space {
	case spaceYoung:
		if loc.index < len(m.young) {
			return m.young[loc.index]
		}
	case spaceOld:
		if loc.index < len(m.old) {
			return m.old[loc.index]
		}
	case spaceBig:
		if loc.index < len(m.big) {
			return m.big[loc.index]
		}
	}
	return nil
}

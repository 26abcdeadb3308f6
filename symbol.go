package zis

import "hash/fnv"

// symbolObj is an interned, immutable byte sequence with a precomputed
// hash and a next-in-bucket link used by the registry's chained table,
// per spec.md §3/§4.3.
type symbolObj struct {
	data []byte
	hash uint64
	next Ref // next symbol in the same hash bucket, or RefNull
}

func (o *symbolObj) objType() *Type { return builtinSymbolType }

var builtinSymbolType = &Type{Name: "Symbol", Layout: LayoutBytesExtended}

func (o *symbolObj) String() string { return string(o.data) }

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

// SymbolRegistry is the weak-interning table described in spec.md §4.3:
// at most one live Symbol per distinct byte sequence, uniqued by content,
// with entries dropped by the collector once nothing but the registry
// itself still references them.
type SymbolRegistry struct {
	ctx     *Context
	buckets []Ref // chain heads, indexed by hash % len(buckets)
	count   int
}

func NewSymbolRegistry(ctx *Context) *SymbolRegistry {
	return &SymbolRegistry{ctx: ctx, buckets: make([]Ref, 64)}
}

// Get returns the unique live Symbol for data, creating one if none
// exists yet.
func (r *SymbolRegistry) Get(data []byte) Value {
	if ref, ok := r.find(data); ok {
		return refValue(ref)
	}
	h := hashBytes(data)
	idx := int(h % uint64(len(r.buckets)))
	owned := append([]byte(nil), data...)
	sym := &symbolObj{data: owned, hash: h, next: r.buckets[idx]}
	ref := r.ctx.Memory.Alloc(r.ctx, AllocSurv, sym)
	r.buckets[idx] = ref
	r.count++
	return refValue(ref)
}

// Find returns the live Symbol for data, if one already exists.
func (r *SymbolRegistry) Find(data []byte) (Value, bool) {
	ref, ok := r.find(data)
	if !ok {
		return Value{}, false
	}
	return refValue(ref), true
}

func (r *SymbolRegistry) find(data []byte) (Ref, bool) {
	h := hashBytes(data)
	idx := int(h % uint64(len(r.buckets)))
	for ref := r.buckets[idx]; ref != RefNull; {
		sym, ok := r.ctx.Memory.unsafeDeref(ref).(*symbolObj)
		if !ok {
			break
		}
		if sym.hash == h && string(sym.data) == string(data) {
			return ref, true
		}
		ref = sym.next
	}
	return RefNull, false
}

// roots returns every chain head; the registry is a GC root, but a weak
// one — see Unlink.
func (r *SymbolRegistry) roots() []Ref {
	var out []Ref
	for _, head := range r.buckets {
		for ref := head; ref != RefNull; {
			out = append(out, ref)
			sym, ok := r.ctx.Memory.unsafeDeref(ref).(*symbolObj)
			if !ok {
				break
			}
			ref = sym.next
		}
	}
	return out
}

// Unlink drops chain entries whose symbol object did not get marked by
// the last collection from any *other* root, implementing the "weak"
// half of the registry's contract: ObjectMemory.GC calls this before it
// frees dead handles, so a subsequent Get() for the same bytes produces
// a fresh Symbol instance rather than resurrecting the collected one.
func (r *SymbolRegistry) Unlink(liveElsewhere map[Ref]bool) {
	for i, head := range r.buckets {
		r.buckets[i] = r.unlinkChain(head, liveElsewhere)
	}
}

func (r *SymbolRegistry) unlinkChain(head Ref, liveElsewhere map[Ref]bool) Ref {
	if head == RefNull {
		return RefNull
	}
	sym, ok := r.ctx.Memory.unsafeDeref(head).(*symbolObj)
	if !ok {
		return RefNull
	}
	rest := r.unlinkChain(sym.next, liveElsewhere)
	if liveElsewhere[head] {
		sym.next = rest
		return head
	}
	r.count--
	return rest
}

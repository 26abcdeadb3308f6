package zis

import "math/bits"

// newFloatValue boxes a float64 as a Float object.
func newFloatValue(ctx *Context, f float64) Value {
	ref := ctx.Memory.Alloc(ctx, AllocAuto, &floatObj{v: f})
	return refValue(ref)
}

// newArray builds an Array backed by a freshly allocated ArraySlots
// holding a copy of items, per spec.md §3's Array/ArraySlots split.
func newArray(ctx *Context, items []Value) Value {
	cp := append([]Value(nil), items...)
	slotsRef := ctx.Memory.Alloc(ctx, AllocAuto, &arraySlotsObj{items: cp})
	ref := ctx.Memory.Alloc(ctx, AllocAuto, &arrayObj{slots: slotsRef, length: len(cp)})
	return refValue(ref)
}

func asArray(ctx *Context, v Value) (*arrayObj, bool) {
	if !v.IsRef() {
		return nil, false
	}
	arr, ok := ctx.Memory.Deref(ctx, v.Ref()).(*arrayObj)
	return arr, ok
}

// ArrayLen returns the Array's element count.
func ArrayLen(ctx *Context, v Value) int {
	arr, ok := asArray(ctx, v)
	if !ok {
		return 0
	}
	return arr.length
}

// ArrayAt returns the Array's i'th element.
func ArrayAt(ctx *Context, v Value, i int) Value {
	arr, _ := asArray(ctx, v)
	slots := ctx.Memory.Deref(ctx, arr.slots).(*arraySlotsObj)
	return slots.items[i]
}

const mapInitialBuckets = 8

// newMap allocates an empty Map.
func newMap(ctx *Context) Value {
	ref := ctx.Memory.Alloc(ctx, AllocAuto, &mapObj{buckets: make([][]mapEntry, mapInitialBuckets)})
	return refValue(ref)
}

func asMap(ctx *Context, v Value) (*mapObj, bool) {
	if !v.IsRef() {
		return nil, false
	}
	m, ok := ctx.Memory.Deref(ctx, v.Ref()).(*mapObj)
	return m, ok
}

// hashValue computes a Map bucket hash for key. Strings and symbols hash
// by content (so equal keys collide), everything else by its Ref/small
// payload bit pattern — adequate for the closed set of key types this
// runtime's Map supports.
func hashValue(ctx *Context, v Value) uint64 {
	if v.IsSmallIntValue() {
		return uint64(v.AsSmallInt())
	}
	if !v.IsRef() {
		return 0
	}
	switch o := ctx.Memory.Deref(ctx, v.Ref()).(type) {
	case *stringObj:
		return hashBytes([]byte(o.String()))
	case *symbolObj:
		return hashBytes(o.data)
	default:
		return uint64(v.Ref())
	}
}

func valuesEqual(ctx *Context, a, b Value) bool {
	if a.IsSmallIntValue() != b.IsSmallIntValue() {
		return false
	}
	if a.IsSmallIntValue() {
		return a.AsSmallInt() == b.AsSmallInt()
	}
	if a.Ref() == b.Ref() {
		return true
	}
	sa, aok := ctx.Memory.Deref(ctx, a.Ref()).(*stringObj)
	sb, bok := ctx.Memory.Deref(ctx, b.Ref()).(*stringObj)
	if aok && bok {
		return sa.String() == sb.String()
	}
	return false
}

// mapSet inserts or overwrites key -> val, growing the bucket table when
// the load factor exceeds 2 entries/bucket (same threshold the teacher
// pack's own grammar memo-table uses — see SPEC_FULL.md §5).
func mapSet(ctx *Context, m Value, key, val Value) {
	obj, _ := asMap(ctx, m)
	if obj.count >= 2*len(obj.buckets) {
		growMap(ctx, obj)
	}
	h := hashValue(ctx, key)
	idx := h % uint64(len(obj.buckets))
	bucket := obj.buckets[idx]
	for i := range bucket {
		if valuesEqual(ctx, bucket[i].key, key) {
			bucket[i].val = val
			return
		}
	}
	obj.buckets[idx] = append(bucket, mapEntry{key: key, val: val, hash: h})
	obj.count++
}

// MapGet returns the value stored under key, and whether it was found.
func MapGet(ctx *Context, m Value, key Value) (Value, bool) {
	obj, ok := asMap(ctx, m)
	if !ok || len(obj.buckets) == 0 {
		return Value{}, false
	}
	h := hashValue(ctx, key)
	idx := h % uint64(len(obj.buckets))
	for _, e := range obj.buckets[idx] {
		if valuesEqual(ctx, e.key, key) {
			return e.val, true
		}
	}
	return Value{}, false
}

// MapLen returns the number of entries stored in m.
func MapLen(ctx *Context, m Value) int {
	obj, ok := asMap(ctx, m)
	if !ok {
		return 0
	}
	return obj.count
}

func growMap(ctx *Context, obj *mapObj) {
	newBuckets := make([][]mapEntry, nextPow2(len(obj.buckets)*2))
	for _, bucket := range obj.buckets {
		for _, e := range bucket {
			idx := e.hash % uint64(len(newBuckets))
			newBuckets[idx] = append(newBuckets[idx], e)
		}
	}
	obj.buckets = newBuckets
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

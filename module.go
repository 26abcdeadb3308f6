package zis

import (
	"sort"

	"golang.org/x/exp/maps"
)

// moduleObj is a compiled unit: a name -> slot-index map backed by a
// variables table, a functions table (slot 0 reserved for the module
// initializer, per spec.md §3), and an optional parent module.
type moduleObj struct {
	name      Ref // optional Symbol
	nameIndex map[Ref]int
	variables []Value
	functions []Ref // each element is a Ref to a functionObj
	parent    Ref
}

func (o *moduleObj) objType() *Type { return builtinModuleType }

var builtinModuleType = &Type{Name: "Module", Layout: LayoutSlotsExtended}

// NewModule creates an empty module with a reserved slot-0 initializer
// function (a no-op by default — callers replace it via SetFunction(0, ...)).
func NewModule(ctx *Context, name Value, parent Ref) Value {
	mod := &moduleObj{
		nameIndex: make(map[Ref]int),
		parent:    parent,
	}
	if name.IsRef() {
		mod.name = name.Ref()
	}
	ref := ctx.Memory.Alloc(ctx, AllocSurv, mod)
	initFn := NewNativeFunction(ctx, FuncMeta{Nr: 1}, func(*Context) error { return nil }, ref)
	mod.functions = append(mod.functions, initFn.Ref())
	return refValue(ref)
}

func asModule(ctx *Context, v Value) (*moduleObj, bool) {
	if !v.IsRef() {
		return nil, false
	}
	mod, ok := ctx.Memory.Deref(ctx, v.Ref()).(*moduleObj)
	return mod, ok
}

// DefineVariable reserves a new slot for name (a Symbol Value), storing
// initial as its value, and returns the slot index. The name-map invariant
// from spec.md §3 holds: each key maps to a unique index 0<=i<len(variables).
func (m *moduleObj) DefineVariable(ctx *Context, name Value, initial Value) int {
	key := name.Ref()
	if idx, ok := m.nameIndex[key]; ok {
		m.variables[idx] = initial
		return idx
	}
	idx := len(m.variables)
	m.variables = append(m.variables, initial)
	m.nameIndex[key] = idx
	return idx
}

// LookupVariable returns the slot index for name, if defined.
func (m *moduleObj) LookupVariable(name Value) (int, bool) {
	idx, ok := m.nameIndex[name.Ref()]
	return idx, ok
}

// AddFunction appends fn (a Ref to a functionObj) and returns its slot
// index. Index 0 is reserved for the initializer set by NewModule.
func (m *moduleObj) AddFunction(fn Ref) int {
	m.functions = append(m.functions, fn)
	return len(m.functions) - 1
}

// VariableNames returns the module's defined names in a deterministic
// order, for diagnostics/printing — golang.org/x/exp/maps.Keys plus a
// sort, matching the teacher pack's own idiom for iterating a map
// predictably (see SPEC_FULL.md §5).
func (m *moduleObj) VariableNames(ctx *Context) []string {
	keys := maps.Keys(m.nameIndex)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]string, 0, len(keys))
	for _, ref := range keys {
		sym, _ := ctx.Memory.Deref(ctx, ref).(*symbolObj)
		if sym != nil {
			out = append(out, sym.String())
		}
	}
	return out
}

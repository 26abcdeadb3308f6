package zis

import "fmt"

// jumpShape distinguishes which family of make/extract pair a pending
// jump fixup must use once its label is placed.
type jumpShape int

const (
	jumpAsw jumpShape = iota
	jumpAsBw
	jumpAsBC
)

type jumpFixup struct {
	pos   int // index into as.code of the placeholder word
	op    Opcode
	label int
	shape jumpShape
	b, c  uint32 // concrete trailing operands for AsBw/AsBC jumps
}

// Assembler builds one Function incrementally: constants, symbols,
// labels, and instructions, per spec.md §4.7. Assemblers nest one level
// deep to support inner function literals — a parent has at most one
// live child at a time, mirroring the teacher pack's own Program/Encode
// split (vm_program.go, vm_encoder.go) adapted to this spec's operand
// shapes instead of PEG opcodes.
type Assembler struct {
	ctx    *Context
	parent *Assembler
	child  *Assembler

	meta FuncMeta

	constants  []Value
	symbols    []Value
	symbolIdx  map[Ref]int

	code   []Instr
	labels []int // -1 if unplaced, else the instruction index it was bound at
	fixups []jumpFixup
}

// NewAssembler creates an assembler, optionally nested under parent.
func NewAssembler(ctx *Context, parent *Assembler) *Assembler {
	if parent != nil && parent.child != nil {
		Panic(ctx, PanicAbort, "assembler already has a live child")
	}
	as := &Assembler{ctx: ctx, parent: parent, symbolIdx: make(map[Ref]int)}
	if parent != nil {
		parent.child = as
	}
	return as
}

// Clear resets as for reuse, detaching it from its parent.
func (as *Assembler) Clear() {
	if as.parent != nil && as.parent.child == as {
		as.parent.child = nil
	}
	as.parent = nil
	as.child = nil
	as.meta = FuncMeta{}
	as.constants = nil
	as.symbols = nil
	as.symbolIdx = make(map[Ref]int)
	as.code = nil
	as.labels = nil
	as.fixups = nil
}

// Meta sets (or, with a zero FuncMeta, just reads back) the function's
// arity/register-count triple.
func (as *Assembler) Meta(m FuncMeta) FuncMeta {
	if m != (FuncMeta{}) {
		as.meta = m
	}
	return as.meta
}

// Constant interns v into the function's constant table, deduplicating
// by content for the value kinds that support it, and returns its id.
func (as *Assembler) Constant(v Value) int {
	for i, c := range as.constants {
		if valuesEqual(as.ctx, c, v) {
			return i
		}
	}
	id := len(as.constants)
	as.constants = append(as.constants, v)
	return id
}

// Symbol interns s (a Symbol Value, already content-unique courtesy of
// the SymbolRegistry) into the function's symbol table and returns its
// id, deduplicating by Ref since equal symbols always share one.
func (as *Assembler) Symbol(s Value) int {
	ref := s.Ref()
	if id, ok := as.symbolIdx[ref]; ok {
		return id
	}
	id := len(as.symbols)
	as.symbols = append(as.symbols, s)
	as.symbolIdx[ref] = id
	return id
}

// AllocLabel reserves an unbound label and returns its id.
func (as *Assembler) AllocLabel() int {
	as.labels = append(as.labels, -1)
	return len(as.labels) - 1
}

// PlaceLabel binds label id at the current instruction position. A
// label must not be placed twice.
func (as *Assembler) PlaceLabel(id int) int {
	if as.labels[id] != -1 {
		Panic(as.ctx, PanicAbort, "label %d already placed", id)
	}
	as.labels[id] = len(as.code)
	return id
}

func (as *Assembler) emit(i Instr) { as.code = append(as.code, i) }

func (as *Assembler) AppendX(op Opcode)                        { as.emit(MakeX(op)) }
func (as *Assembler) AppendAw(op Opcode, a uint32)              { as.emit(MakeAw(op, a)) }
func (as *Assembler) AppendAsw(op Opcode, a int32)              { as.emit(MakeAsw(op, a)) }
func (as *Assembler) AppendABw(op Opcode, a, b uint32)          { as.emit(MakeABw(op, a, b)) }
func (as *Assembler) AppendABsw(op Opcode, a uint32, b int32)   { as.emit(MakeABsw(op, a, b)) }
func (as *Assembler) AppendABC(op Opcode, a, b, c uint32)       { as.emit(MakeABC(op, a, b, c)) }
func (as *Assembler) AppendABsCs(op Opcode, a uint32, b, c int32) {
	as.emit(MakeABsCs(op, a, b, c))
}

// AppendJumpAsw emits a jump whose destination is label; if label is not
// yet bound, the word is a placeholder patched in at Finish.
func (as *Assembler) AppendJumpAsw(op Opcode, label int) {
	pos := len(as.code)
	as.emit(0)
	as.fixups = append(as.fixups, jumpFixup{pos: pos, op: op, label: label, shape: jumpAsw})
}

func (as *Assembler) AppendJumpAsBw(op Opcode, label int, b uint32) {
	pos := len(as.code)
	as.emit(0)
	as.fixups = append(as.fixups, jumpFixup{pos: pos, op: op, label: label, shape: jumpAsBw, b: b})
}

func (as *Assembler) AppendJumpAsBC(op Opcode, label int, b, c uint32) {
	pos := len(as.code)
	as.emit(0)
	as.fixups = append(as.fixups, jumpFixup{pos: pos, op: op, label: label, shape: jumpAsBC, b: b, c: c})
}

// Finish patches every pending jump, freezes the constant/symbol tables
// and code buffer into a Function belonging to module, and clears the
// assembler for reuse, per spec.md §4.7. Jump offsets are computed as
// target - (jump_instr_address + 1) in instruction-word units; an
// offset that doesn't fit its operand's signed range is a fatal
// generator defect, reported as an error rather than silently truncated.
func (as *Assembler) Finish(module Ref) (Value, error) {
	for _, fx := range as.fixups {
		target := as.labels[fx.label]
		if target < 0 {
			return Value{}, fmt.Errorf("assembler: label %d never placed", fx.label)
		}
		offset := int64(target - (fx.pos + 1))
		if offset < minI25 || offset > maxI25 {
			return Value{}, fmt.Errorf("assembler: jump offset %d at %d overflows Asw range", offset, fx.pos)
		}
		switch fx.shape {
		case jumpAsw:
			as.code[fx.pos] = MakeAsw(fx.op, int32(offset))
		case jumpAsBw:
			as.code[fx.pos] = MakeAsBw(fx.op, int32(offset), fx.b)
		case jumpAsBC:
			as.code[fx.pos] = MakeAsBC(fx.op, int32(offset), fx.b, fx.c)
		}
	}

	words := make([]uint32, len(as.code))
	for i, ins := range as.code {
		words[i] = uint32(ins)
	}
	fn := NewBytecodeFunction(as.ctx, as.meta, as.symbols, as.constants, words, module)
	as.Clear()
	return fn, nil
}

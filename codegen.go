package zis

// CodeGenerator lowers an AST (ast.go) into bytecode via an Assembler.
// Per spec.md §1, the generator is deliberately stubbed: it honors its
// interface contract with the parser and assembler (Generate takes a
// Node, returns an error, and only emits through the Assembler's public
// append/label API) but implements only the atom forms ParseAtom can
// itself produce. Anything else raises ErrNotImplemented.
type CodeGenerator struct {
	ctx *Context
	asm *Assembler
}

// NewCodeGenerator creates a generator emitting into asm.
func NewCodeGenerator(ctx *Context, asm *Assembler) *CodeGenerator {
	return &CodeGenerator{ctx: ctx, asm: asm}
}

// Generate lowers node into a single-expression function body: evaluate
// node into register 1 and return it. dst is the register node's value
// is placed into.
func (g *CodeGenerator) Generate(node *Node, dst uint32) error {
	switch node.Kind {
	case NodeNil:
		g.asm.AppendABw(OpLDNIL, dst, 1)
		return nil
	case NodeBool:
		b := uint32(0)
		if g.ctx.IsNil(node.Value) {
			b = 0
		} else if node.Value.IsRef() && node.Value.Ref() == g.ctx.Globals.True {
			b = 1
		}
		g.asm.AppendABw(OpLDBLN, dst, b)
		return nil
	case NodeConstant:
		id := g.asm.Constant(node.Value)
		g.asm.AppendABw(OpLDCON, dst, uint32(id))
		return nil
	case NodeName:
		id := g.asm.Symbol(node.Value)
		g.asm.AppendABw(OpLDSYM, dst, uint32(id))
		return nil
	default:
		return ErrNotImplemented
	}
}

// GenerateFunction lowers a single atom node into a complete,
// zero-argument bytecode Function: evaluate it into register 1, then
// RET register 1.
func GenerateFunction(ctx *Context, node *Node, module Ref) (Value, error) {
	asm := NewAssembler(ctx, nil)
	asm.Meta(FuncMeta{Na: 0, No: 0, Nr: 2})
	gen := NewCodeGenerator(ctx, asm)
	if err := gen.Generate(node, 1); err != nil {
		asm.Clear()
		return Value{}, err
	}
	asm.AppendAw(OpRET, 1)
	return asm.Finish(module)
}

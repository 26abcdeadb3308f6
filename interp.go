package zis

// runInterpreter executes fn's bytecode buffer in the frame Prepare has
// already pushed (spec.md §4.6): decode an instruction, dispatch on its
// opcode, read its operands per its shape, perform the action, advance
// the instruction pointer, repeat. Illegal opcodes panic ILL; THR
// unwinds by recording a stack-trace entry and returning an error with
// the exception left in reg-0, per spec.md §4.6's "Exception propagation".
func runInterpreter(ctx *Context, fn *functionObj) error {
	frame := ctx.Stack.Current()
	code := fn.bytecode

	for {
		if frame.PC < 0 || frame.PC >= len(code) {
			Panic(ctx, PanicILL, "instruction pointer %d out of range (%d words)", frame.PC, len(code))
		}
		instr := Instr(code[frame.PC])
		op := instr.Opcode()

		switch op {
		case OpNOP:
			// Aw: operand unused.

		case OpARG:
			// Aw: the register holding this invocation's collected
			// variadic tuple. Prepare has already built it (see
			// invoke.go); ARG exists at the bytecode level so a
			// generator can name the slot explicitly, but there is
			// nothing left for the interpreter to do here.
			_ = ExtractAw(instr)

		case OpLDNIL:
			a, b := ExtractABw(instr)
			for i := uint32(0); i < b; i++ {
				frame.Regs[a+i] = ctx.NilValue()
			}

		case OpLDBLN:
			a, b := ExtractABw(instr)
			frame.Regs[a] = ctx.BoolValue(b != 0)

		case OpLDCON:
			a, b := ExtractABw(instr)
			if int(b) >= len(fn.constants) {
				Panic(ctx, PanicILL, "LDCON: constant index %d out of range", b)
			}
			frame.Regs[a] = fn.constants[b]

		case OpLDSYM:
			a, b := ExtractABw(instr)
			if int(b) >= len(fn.symbols) {
				Panic(ctx, PanicILL, "LDSYM: symbol index %d out of range", b)
			}
			frame.Regs[a] = fn.symbols[b]

		case OpMKINT:
			a, b := ExtractABsw(instr)
			frame.Regs[a] = NewInt(ctx, int64(b))

		case OpMKFLT:
			a, b, c := ExtractABsCs(instr)
			frame.Regs[a] = newFloatValue(ctx, float64(b)+float64(c)/100.0)

		case OpMKTUP:
			a, b, c := ExtractABC(instr)
			frame.Regs[a] = NewTuple(ctx, regRange(frame, b, c))

		case OpMKARR:
			a, b, c := ExtractABC(instr)
			frame.Regs[a] = newArray(ctx, regRange(frame, b, c))

		case OpMKMAP:
			a, b, c := ExtractABC(instr)
			items := regRange(frame, b, c)
			if len(items)%2 != 0 {
				Panic(ctx, PanicILL, "MKMAP: odd register range length %d", len(items))
			}
			m := newMap(ctx)
			for i := 0; i < len(items); i += 2 {
				mapSet(ctx, m, items[i], items[i+1])
			}
			frame.Regs[a] = m

		case OpTHR:
			a := ExtractAw(instr)
			exc := frame.Regs[a]
			AppendStackTrace(ctx, exc, frame.Func, frame.PC)
			ctx.SetReg0(exc)
			return AsError(ctx, exc)

		case OpRETNIL:
			ctx.SetReg0(ctx.NilValue())
			return nil

		case OpRET:
			a := ExtractAw(instr)
			ctx.SetReg0(frame.Regs[a])
			return nil

		default:
			Panic(ctx, PanicILL, "illegal opcode 0x%02x at pc=%d", byte(op), frame.PC)
		}

		frame.PC++
	}
}

// regRange returns a copy of frame.Regs[start : start+count], the
// "contiguous register range" MKTUP/MKARR/MKMAP read from.
func regRange(frame *Frame, start, count uint32) []Value {
	out := make([]Value, count)
	copy(out, frame.Regs[start:int(start)+int(count)])
	return out
}

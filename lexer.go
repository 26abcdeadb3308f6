package zis

import (
	"fmt"
	"math"
	"math/big"
	"unicode/utf8"
)

// Input is the character stream the lexer scans: byte-granular
// peek/read plus a bulk accessor over the remaining bytes, per spec.md
// §4.8. Runes are decoded on demand from the bulk view rather than the
// whole source being pre-decoded, so a multi-megabyte source costs one
// allocation, not one per identifier.
type Input struct {
	buf []byte
	pos int
}

func NewInput(src []byte) *Input { return &Input{buf: src} }

// Bulk returns a view of the unread remainder: a pointer (the slice
// header) and its length, exactly the "pointer and remaining size"
// spec.md §4.8 asks for.
func (in *Input) Bulk() []byte { return in.buf[in.pos:] }

func (in *Input) AtEOF() bool { return in.pos >= len(in.buf) }

// PeekByte returns the next unread byte without consuming it.
func (in *Input) PeekByte() (byte, bool) {
	if in.AtEOF() {
		return 0, false
	}
	return in.buf[in.pos], true
}

// ReadByte consumes and returns the next byte.
func (in *Input) ReadByte() (byte, bool) {
	b, ok := in.PeekByte()
	if ok {
		in.pos++
	}
	return b, ok
}

// PeekRune decodes the rune at the cursor without consuming it, along
// with its width in bytes (0 at EOF).
func (in *Input) PeekRune() (rune, int) {
	if in.AtEOF() {
		return eofRune, 0
	}
	r, size := utf8.DecodeRune(in.Bulk())
	return r, size
}

// ReadRune decodes and consumes the rune at the cursor.
func (in *Input) ReadRune() (rune, int) {
	r, size := in.PeekRune()
	in.pos += size
	return r, size
}

const eofRune = rune(-1)

// ErrorHandler is called on illegal lexer input with a short message;
// per spec.md §4.8 it must not return (it raises an exception or longjmps
// out in the original; here it should panic or otherwise divert control).
type ErrorHandler func(ctx *Context, line, col int, msg string)

// Lexer performs streaming UTF-8 tokenization: numeric/string/identifier
// scanning, longest-match operators, and 1-based line/column tracking,
// per spec.md §4.8. It holds a locals-root GC slot for the literal value
// under construction, since building a String/BigInt mid-token can
// allocate and a moving collection must still find that value through a
// root (spec.md §4.8's "GC interaction").
type Lexer struct {
	ctx     *Context
	in      *Input
	line    int
	column  int
	onError ErrorHandler

	locals *LocalsScope // one root slot: the in-progress literal
}

// NewLexer creates a Lexer over src. onError may be nil, in which case
// illegal input panics ABORT.
func NewLexer(ctx *Context, src []byte, onError ErrorHandler) *Lexer {
	return &Lexer{
		ctx:     ctx,
		in:      NewInput(src),
		line:    1,
		column:  1,
		onError: onError,
		locals:  NewLocalsScope(ctx, 1),
	}
}

// Close releases the lexer's GC root. Callers must call this (or rely
// on a defer) once scanning is done.
func (l *Lexer) Close() { l.locals.Close() }

func (l *Lexer) fail(msg string, args ...any) (Token, error) {
	text := fmt.Sprintf(msg, args...)
	if l.onError != nil {
		l.onError(l.ctx, l.line, l.column, text)
	}
	Panic(l.ctx, PanicAbort, "lexer: %s (%d:%d)", text, l.line, l.column)
	panic("unreachable")
}

func (l *Lexer) advance() rune {
	r, size := l.in.ReadRune()
	if size == 0 {
		return eofRune
	}
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	r, _ := l.in.PeekRune()
	return r
}

// peek2 looks one rune past the current one, for 2/3-char lookahead
// (operator scanning, numeric-literal base prefixes).
func (l *Lexer) peek2() rune {
	_, size := l.in.PeekRune()
	if size == 0 {
		return eofRune
	}
	save := l.in.pos
	l.in.pos += size
	r, _ := l.in.PeekRune()
	l.in.pos = save
	return r
}

// Next scans and returns the next token, per spec.md §4.8's scanning rules.
func (l *Lexer) Next() (Token, error) {
	for {
		r := l.peek()
		switch {
		case r == ' ' || r == '\t':
			l.advance()
			continue
		case r == '\\' && l.peek2() == '\n':
			l.advance()
			l.advance()
			continue
		case r == '#':
			for {
				c := l.peek()
				if c == '\n' || c == eofRune {
					break
				}
				l.advance()
			}
			continue
		}
		break
	}

	line0, col0 := l.line, l.column
	r := l.peek()

	switch {
	case r == eofRune:
		return Token{Line0: line0, Column0: col0, Line1: l.line, Column1: l.column, Type: TokEOF}, nil
	case r == '\n' || r == ';':
		l.advance()
		return l.finish(line0, col0, TokEOS, Value{}), nil
	case isASCIIDigit(r):
		return l.scanNumber(line0, col0)
	case r == '"' || r == '\'':
		return l.scanString(line0, col0, false)
	case r == '@' && (l.peek2() == '"' || l.peek2() == '\''):
		l.advance()
		return l.scanString(line0, col0, true)
	case isIdentStart(r):
		return l.scanIdentifier(line0, col0)
	default:
		return l.scanOperator(line0, col0)
	}
}

func (l *Lexer) finish(line0, col0 int, tt TokenType, v Value) Token {
	return Token{Line0: line0, Column0: col0, Line1: l.line, Column1: l.column, Type: tt, Value: v}
}

// scanNumber implements spec.md §4.8's numeric-literal rules: base
// prefixes, bigint accumulation by iterated mul-and-add, and a
// digit-by-digit weighted fractional part that promotes the result to
// a Float.
func (l *Lexer) scanNumber(line0, col0 int) (Token, error) {
	base := 10
	if l.peek() == '0' {
		switch l.peek2() {
		case 'b', 'B':
			base = 2
			l.advance()
			l.advance()
		case 'o', 'O':
			base = 8
			l.advance()
			l.advance()
		case 'x', 'X':
			base = 16
			l.advance()
			l.advance()
		default:
			nxt := l.peek2()
			if !isHexDigit(nxt) && nxt != '.' {
				l.advance() // lone "0"
				return l.finish(line0, col0, TokLitInt, NewInt(l.ctx, 0)), nil
			}
		}
	}

	validDigit := func(r rune) bool {
		switch base {
		case 2:
			return isBinaryDigit(r)
		case 8:
			return isOctalDigit(r)
		case 16:
			return isHexDigit(r)
		default:
			return isASCIIDigit(r)
		}
	}

	intPart := new(big.Int)
	sawDigit := false
	for validDigit(l.peek()) {
		d := digitValue(l.advance())
		intPart.Mul(intPart, big.NewInt(int64(base)))
		intPart.Add(intPart, big.NewInt(int64(d)))
		sawDigit = true
	}
	if !sawDigit {
		return l.fail("expected digit in numeric literal")
	}

	if l.peek() == '.' && isASCIIDigit(l.peek2()) {
		l.advance()
		frac := 0.0
		weight := 1.0 / float64(base)
		for isASCIIDigit(l.peek()) || (base == 16 && isHexDigit(l.peek())) {
			if !validDigit(l.peek()) {
				break
			}
			d := digitValue(l.advance())
			frac += float64(d) * weight
			weight /= float64(base)
		}
		whole, _ := new(big.Float).SetInt(intPart).Float64()
		value := whole + frac
		if math.IsInf(value, 0) {
			return l.fail("numeric literal overflows to infinity")
		}
		v := newFloatValue(l.ctx, value)
		l.locals.Set(0, v) // root the literal while the caller still builds the token
		return l.finish(line0, col0, TokLitFloat, v), nil
	}

	v := normalizeBigInt(l.ctx, intPart)
	l.locals.Set(0, v)
	return l.finish(line0, col0, TokLitInt, v), nil
}

// scanString implements spec.md §4.8's string-literal rules: '"'/'\''
// delimiters, an `@` prefix that disables escape processing, and the
// listed escape set with \xHH and \u{H...} numeric escapes.
func (l *Lexer) scanString(line0, col0 int, raw bool) (Token, error) {
	quote := l.advance()
	var out []rune
	for {
		r := l.peek()
		switch {
		case r == eofRune:
			return l.fail("unterminated string literal")
		case r == quote:
			l.advance()
			s := NewString(l.ctx, string(out))
			l.locals.Set(0, s) // root the literal while the caller still builds the token
			return l.finish(line0, col0, TokLitString, s), nil
		case r == '\\' && !raw:
			l.advance()
			esc, err := l.scanEscape()
			if err != nil {
				return l.fail(err.Error())
			}
			out = append(out, esc)
		default:
			out = append(out, l.advance())
		}
	}
}

func (l *Lexer) scanEscape() (rune, error) {
	r := l.advance()
	switch r {
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case 'x':
		hi, lo := l.advance(), l.advance()
		if !isHexDigit(hi) || !isHexDigit(lo) {
			return 0, fmt.Errorf("illegal \\x escape")
		}
		return rune(digitValue(hi)*16 + digitValue(lo)), nil
	case 'u':
		if l.advance() != '{' {
			return 0, fmt.Errorf("illegal \\u escape: expected '{'")
		}
		val := 0
		n := 0
		for isHexDigit(l.peek()) {
			val = val*16 + digitValue(l.advance())
			n++
		}
		if n == 0 || l.advance() != '}' || val > 0x10FFFF {
			return 0, fmt.Errorf("illegal \\u escape")
		}
		return rune(val), nil
	default:
		return 0, fmt.Errorf("illegal escape sequence '\\%c'", r)
	}
}

// scanIdentifier consumes an identifier and resolves it to either a
// keyword token or an TokIdentifier carrying its interned Symbol value.
func (l *Lexer) scanIdentifier(line0, col0 int) (Token, error) {
	var sb []byte
	for isIdentCont(l.peek()) {
		r := l.advance()
		var tmp [utf8.UTFMax]byte
		n := utf8.EncodeRune(tmp[:], r)
		sb = append(sb, tmp[:n]...)
	}
	if kw, ok := keywords[string(sb)]; ok {
		return l.finish(line0, col0, kw, Value{}), nil
	}
	sym := l.ctx.Symbols.Get(sb)
	return l.finish(line0, col0, TokIdentifier, sym), nil
}

// operatorTable is tried in order (longest text first) for maximal-
// munch operator scanning, per spec.md §4.8's examples ("<" / "<=" /
// "<<" / "<-", "-" / "-=" / "->"). "+" and "-" always lex as the binary
// TokOpAdd/TokOpSub token; distinguishing prefix (unary) position from
// infix is left to the parser, which is the only consumer that knows
// which position it is in (spec.md §6's token/AST boundary).
var operatorTable = []struct {
	text string
	typ  TokenType
}{
	{"<<=", TokOpShlEql}, {">>=", TokOpShrEql}, {"...", TokEllipsis},
	{"==", TokOpEq}, {"!=", TokOpNe}, {"<=", TokOpLe}, {">=", TokOpGe},
	{"&&", TokOpAnd}, {"||", TokOpOr},
	{"+=", TokOpAddEql}, {"-=", TokOpSubEql}, {"*=", TokOpMulEql}, {"/=", TokOpDivEql},
	{"%=", TokOpRemEql}, {"&=", TokOpBitAndEql}, {"|=", TokOpBitOrEql}, {"^=", TokOpBitXorEql},
	{"..", TokDotDot}, {"<<", TokOpShl}, {">>", TokOpShr}, {"<-", TokLArrow}, {"->", TokRArrow},
	{"+", TokOpAdd}, {"-", TokOpSub}, {"*", TokOpMul}, {"/", TokOpDiv}, {"%", TokOpRem},
	{"&", TokOpBitAnd}, {"|", TokOpBitOr}, {"^", TokOpBitXor}, {"=", TokOpEql},
	{"<", TokOpLt}, {">", TokOpGt}, {"!", TokOpNot}, {"~", TokOpBitNot},
	{":", TokOpColon}, {".", TokOpPeriod}, {"@", TokAt}, {"?", TokQuestion}, {"$", TokDollar},
	{",", TokComma}, {"(", TokLParen}, {")", TokRParen},
	{"[", TokLBracket}, {"]", TokRBracket}, {"{", TokLBrace}, {"}", TokRBrace},
}

func (l *Lexer) scanOperator(line0, col0 int) (Token, error) {
	bulk := l.in.Bulk()
	for _, cand := range operatorTable {
		if len(bulk) >= len(cand.text) && string(bulk[:len(cand.text)]) == cand.text {
			for range cand.text {
				l.advance()
			}
			return l.finish(line0, col0, cand.typ, Value{}), nil
		}
	}
	return l.fail("illegal character %q", l.peek())
}

package zis

// Parser turns a token stream into the AST node set ast.go declares.
// Per spec.md §1's explicit non-goal, the full expression/statement
// grammar (operator precedence, control flow, function/module
// definitions) is not implemented here — only the trivial atoms a
// grammar's leaves bottom out on. Parser exists to give the lexer and
// the (also stubbed) code generator a real interface contract to meet,
// per spec.md §6's "Token/AST boundary".
type Parser struct {
	ctx *Context
	lex *Lexer
	tok Token
}

// NewParser creates a Parser over src and primes its first token.
func NewParser(ctx *Context, src []byte, onError ErrorHandler) (*Parser, error) {
	p := &Parser{ctx: ctx, lex: NewLexer(ctx, src, onError)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Close releases the underlying lexer's GC root.
func (p *Parser) Close() { p.lex.Close() }

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// ParseAtom recognizes the leaf productions: nil/true/false, integer,
// float, string, symbol literals, and identifiers. Anything else (every
// composite expression or statement form) raises ErrNotImplemented,
// per spec.md §1.
func (p *Parser) ParseAtom() (*Node, error) {
	tok := p.tok
	switch tok.Type {
	case TokKwNil:
		n := newNode(NodeNil, tok)
		return n, p.advance()
	case TokKwTrue:
		n := newNode(NodeBool, tok)
		n.Value = p.ctx.BoolValue(true)
		return n, p.advance()
	case TokKwFalse:
		n := newNode(NodeBool, tok)
		n.Value = p.ctx.BoolValue(false)
		return n, p.advance()
	case TokLitInt, TokLitFloat, TokLitString, TokLitSymbol:
		n := newNode(NodeConstant, tok)
		n.Value = tok.Value
		return n, p.advance()
	case TokIdentifier:
		n := newNode(NodeName, tok)
		n.Value = tok.Value
		return n, p.advance()
	default:
		return nil, ErrNotImplemented
	}
}

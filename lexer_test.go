package zis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, ctx *Context, src string) []Token {
	t.Helper()
	lex := NewLexer(ctx, []byte(src), nil)
	defer lex.Close()
	var out []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		out = append(out, tok)
		if tok.Type == TokEOF {
			break
		}
	}
	return out
}

func TestLexerScenarios(t *testing.T) {
	t.Run("hex int", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, "0x10")
		require.Equal(t, TokLitInt, toks[0].Type)
		assert.Equal(t, int64(16), toks[0].Value.AsSmallInt())
	})

	t.Run("binary int", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, "0b1010")
		require.Equal(t, TokLitInt, toks[0].Type)
		assert.Equal(t, int64(10), toks[0].Value.AsSmallInt())
	})

	t.Run("float", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, "1.5")
		require.Equal(t, TokLitFloat, toks[0].Type)
		f := ctx.Memory.Deref(ctx, toks[0].Value.Ref()).(*floatObj)
		assert.InDelta(t, 1.5, f.v, 1e-9)
	})

	t.Run("escaped string", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, `"a\nb"`)
		require.Equal(t, TokLitString, toks[0].Type)
		s := ctx.Memory.Deref(ctx, toks[0].Value.Ref()).(*stringObj)
		assert.Equal(t, "a\nb", s.String())
	})

	t.Run("raw string keeps backslash literal", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, `@"a\nb"`)
		require.Equal(t, TokLitString, toks[0].Type)
		s := ctx.Memory.Deref(ctx, toks[0].Value.Ref()).(*stringObj)
		assert.Equal(t, `a\nb`, s.String())
	})

	t.Run("assignment statement", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, "foo_1 = 2")
		types := make([]TokenType, 0, len(toks))
		for _, tk := range toks {
			types = append(types, tk.Type)
		}
		assert.Equal(t, []TokenType{TokIdentifier, TokOpEql, TokLitInt, TokEOF}, types)
	})

	t.Run("comment then int", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, "# comment\n1")
		// The newline after the comment is itself consumed as part of the
		// comment-skip loop's boundary, so the first real token is EOS
		// (the newline) only if it wasn't swallowed — here it is swallowed
		// by the comment scan up to but not including '\n', so EOS is next.
		require.GreaterOrEqual(t, len(toks), 2)
		last := toks[len(toks)-2] // token right before EOF
		assert.Equal(t, TokLitInt, last.Type)
	})

	t.Run("longest match shift-assign", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, "<<=")
		assert.Equal(t, TokOpShlEql, toks[0].Type)
	})

	t.Run("longest match ellipsis", func(t *testing.T) {
		ctx := NewContext(0, 0)
		toks := scanAll(t, ctx, "...")
		assert.Equal(t, TokEllipsis, toks[0].Type)
	})

	t.Run("unterminated string is an error", func(t *testing.T) {
		ctx := NewContext(0, 0)
		lex := NewLexer(ctx, []byte(`"unterminated`), nil)
		defer lex.Close()
		assert.Panics(t, func() { _, _ = lex.Next() })
	})
}

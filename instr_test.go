package zis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstrBijection(t *testing.T) {
	const op = OpLDCON

	t.Run("Aw", func(t *testing.T) {
		for _, v := range []uint32{0, 1, maxU25 / 2, maxU25} {
			got := ExtractAw(MakeAw(op, v))
			assert.Equal(t, v, got)
		}
	})

	t.Run("Asw", func(t *testing.T) {
		for _, v := range []int32{minI25, -1, 0, 1, maxI25} {
			got := ExtractAsw(MakeAsw(op, v))
			assert.Equal(t, v, got)
		}
	})

	t.Run("ABw", func(t *testing.T) {
		for _, a := range []uint32{0, 1, maxU9} {
			for _, b := range []uint32{0, 1, maxU16} {
				ga, gb := ExtractABw(MakeABw(op, a, b))
				assert.Equal(t, a, ga)
				assert.Equal(t, b, gb)
			}
		}
	})

	t.Run("AsBw", func(t *testing.T) {
		for _, a := range []int32{minI9, -1, 0, maxI9} {
			for _, b := range []uint32{0, maxU16} {
				ga, gb := ExtractAsBw(MakeAsBw(op, a, b))
				assert.Equal(t, a, ga)
				assert.Equal(t, b, gb)
			}
		}
	})

	t.Run("ABsw", func(t *testing.T) {
		for _, a := range []uint32{0, maxU9} {
			for _, b := range []int32{minI16, -1, 0, maxI16} {
				ga, gb := ExtractABsw(MakeABsw(op, a, b))
				assert.Equal(t, a, ga)
				assert.Equal(t, b, gb)
			}
		}
	})

	t.Run("ABC", func(t *testing.T) {
		for _, a := range []uint32{0, maxU9} {
			for _, b := range []uint32{0, maxU8} {
				for _, c := range []uint32{0, maxU8} {
					ga, gb, gc := ExtractABC(MakeABC(op, a, b, c))
					assert.Equal(t, a, ga)
					assert.Equal(t, b, gb)
					assert.Equal(t, c, gc)
				}
			}
		}
	})

	t.Run("AsBC", func(t *testing.T) {
		for _, a := range []int32{minI9, 0, maxI9} {
			ga, gb, gc := ExtractAsBC(MakeAsBC(op, a, 5, 7))
			assert.Equal(t, a, ga)
			assert.Equal(t, uint32(5), gb)
			assert.Equal(t, uint32(7), gc)
		}
	})

	t.Run("ABsCs", func(t *testing.T) {
		for _, b := range []int32{minI8, -1, 0, maxI8} {
			for _, c := range []int32{minI8, 0, maxI8} {
				ga, gb, gc := ExtractABsCs(MakeABsCs(op, 3, b, c))
				assert.Equal(t, uint32(3), ga)
				assert.Equal(t, b, gb)
				assert.Equal(t, c, gc)
			}
		}
	})
}

func TestInstrOpcodeExtraction(t *testing.T) {
	i := MakeABw(OpLDSYM, 2, 100)
	assert.Equal(t, OpLDSYM, i.Opcode())
}

func TestInstrOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { MakeAw(OpNOP, maxU25+1) })
	assert.Panics(t, func() { MakeABC(OpMKARR, maxU9+1, 0, 0) })
}

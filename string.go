package zis

import "unicode/utf8"

// stringObj stores its code points packed at the minimum width that fits
// the widest one, per spec.md §3's String row: 1/2/4 bytes per char.
type stringObj struct {
	width int    // 1, 2, or 4
	data  []byte // runeCount * width bytes, little-endian code units
	runes int
}

func (o *stringObj) objType() *Type { return builtinStringType }

var builtinStringType = &Type{Name: "String", Layout: LayoutBytesExtended}

func widthFor(r rune) int {
	switch {
	case r <= 0xFF:
		return 1
	case r <= 0xFFFF:
		return 2
	default:
		return 4
	}
}

func newStringObj(s string) *stringObj {
	width := 1
	n := 0
	for _, r := range s {
		if w := widthFor(r); w > width {
			width = w
		}
		n++
	}
	data := make([]byte, 0, n*width)
	for _, r := range s {
		data = appendCodeUnit(data, width, uint32(r))
	}
	return &stringObj{width: width, data: data, runes: n}
}

func appendCodeUnit(data []byte, width int, v uint32) []byte {
	switch width {
	case 1:
		return append(data, byte(v))
	case 2:
		return append(data, byte(v), byte(v>>8))
	default:
		return append(data, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
}

func (o *stringObj) codeUnitAt(i int) uint32 {
	off := i * o.width
	switch o.width {
	case 1:
		return uint32(o.data[off])
	case 2:
		return uint32(o.data[off]) | uint32(o.data[off+1])<<8
	default:
		return uint32(o.data[off]) | uint32(o.data[off+1])<<8 |
			uint32(o.data[off+2])<<16 | uint32(o.data[off+3])<<24
	}
}

// String reconstructs the canonical UTF-8 representation. For any valid
// UTF-8 input used to build a stringObj, this must round-trip exactly
// (spec.md §8 "String round-trip").
func (o *stringObj) String() string {
	buf := make([]byte, 0, o.runes*o.width)
	tmp := make([]byte, utf8.UTFMax)
	for i := 0; i < o.runes; i++ {
		n := utf8.EncodeRune(tmp, rune(o.codeUnitAt(i)))
		buf = append(buf, tmp[:n]...)
	}
	return string(buf)
}

// RuneCount returns the number of code points, independent of width.
func (o *stringObj) RuneCount() int { return o.runes }

// Width returns the adaptively-chosen byte width (1, 2, or 4).
func (o *stringObj) Width() int { return o.width }

// NewString allocates a String object and returns its Value.
func NewString(ctx *Context, s string) Value {
	ref := ctx.Memory.Alloc(ctx, AllocSurv, newStringObj(s))
	return refValue(ref)
}

package zis

import "math/big"

// Smallint range: symmetric around zero, at least 32 bits wide on
// 64-bit targets (spec.md §3). 61 bits leaves three tag/kind bits of
// headroom, comfortably exceeding the minimum.
const (
	smallIntBits = 61
	smallIntMax  = int64(1)<<(smallIntBits-1) - 1
	smallIntMin  = -(int64(1) << (smallIntBits - 1))
)

// NewInt builds the Value for n: a SmallInt if n is in range, otherwise
// a heap BigInt. Operations that might overflow must go through AddInt/
// SubInt/MulInt below rather than building an int64 sum by hand.
func NewInt(ctx *Context, n int64) Value {
	if IsSmallInt(n) {
		return SmallInt(n)
	}
	return newBigIntValue(ctx, big.NewInt(n))
}

func newBigIntValue(ctx *Context, v *big.Int) Value {
	ref := ctx.Memory.Alloc(ctx, AllocSurv, &bigIntObj{v: v})
	return refValue(ref)
}

// bigIntOf extracts the mathematical value of any integer Value (smallint
// or bigint) as a *big.Int, for use by promotion paths.
func bigIntOf(ctx *Context, v Value) *big.Int {
	if v.IsSmallIntValue() {
		return big.NewInt(v.AsSmallInt())
	}
	if bi, ok := ctx.Memory.unsafeDeref(v.ref).(*bigIntObj); ok {
		return bi.v
	}
	Panic(ctx, PanicAbort, "bigIntOf: value is not an Int")
	return nil
}

// normalizeBigInt demotes a *big.Int back to a SmallInt Value when it
// fits, otherwise keeps it boxed. Every promoting arithmetic op ends by
// calling this, so results outside smallint range are bigints of the
// mathematically correct value and nothing stays needlessly boxed.
func normalizeBigInt(ctx *Context, v *big.Int) Value {
	if v.IsInt64() {
		n := v.Int64()
		if IsSmallInt(n) {
			return SmallInt(n)
		}
	}
	return newBigIntValue(ctx, v)
}

// AddInt, SubInt, and MulInt implement checked arithmetic that promotes
// to a bigint on overflow instead of wrapping, per spec.md §4.2.
func AddInt(ctx *Context, a, b Value) Value {
	if a.IsSmallIntValue() && b.IsSmallIntValue() {
		x, y := a.AsSmallInt(), b.AsSmallInt()
		sum := x + y
		if IsSmallInt(sum) && sameSign(x, y, sum) {
			return SmallInt(sum)
		}
	}
	r := new(big.Int).Add(bigIntOf(ctx, a), bigIntOf(ctx, b))
	return normalizeBigInt(ctx, r)
}

func SubInt(ctx *Context, a, b Value) Value {
	if a.IsSmallIntValue() && b.IsSmallIntValue() {
		x, y := a.AsSmallInt(), b.AsSmallInt()
		diff := x - y
		if IsSmallInt(diff) {
			return SmallInt(diff)
		}
	}
	r := new(big.Int).Sub(bigIntOf(ctx, a), bigIntOf(ctx, b))
	return normalizeBigInt(ctx, r)
}

func MulInt(ctx *Context, a, b Value) Value {
	if a.IsSmallIntValue() && b.IsSmallIntValue() {
		x, y := a.AsSmallInt(), b.AsSmallInt()
		if x == 0 || y == 0 {
			return SmallInt(0)
		}
		p := x * y
		if p/y == x && IsSmallInt(p) {
			return SmallInt(p)
		}
	}
	r := new(big.Int).Mul(bigIntOf(ctx, a), bigIntOf(ctx, b))
	return normalizeBigInt(ctx, r)
}

// sameSign guards against int64-level wraparound sneaking a bad sum past
// the smallint range check (only matters near math.MaxInt64, far outside
// our 61-bit range, but cheap to assert).
func sameSign(x, y, sum int64) bool {
	if (x >= 0) == (y >= 0) {
		return (sum >= 0) == (x >= 0)
	}
	return true
}

package edwards

import (
	"crypto/subtle"
	"encoding/binary"
	"math/bits"

	"github.com/alexdcox/symbol-go/fault"
)

// FieldElement is an element of GF(2^255 - 19) held as five 51-bit limbs,
// t = l0 + l1*2^51 + l2*2^102 + l3*2^153 + l4*2^204.
//
// Limbs are kept below 2^52 after every exported operation, which leaves
// enough headroom for the 128-bit products in Multiply and Square. The zero
// value is the field's additive identity.
type FieldElement struct {
	l0, l1, l2, l3, l4 uint64
}

const maskLow51Bits uint64 = (1 << 51) - 1

var (
	feZero = FieldElement{}
	feOne  = FieldElement{1, 0, 0, 0, 0}
	feTwo  = FieldElement{2, 0, 0, 0, 0}

	// d = -121665/121666, the curve constant.
	feD = FieldElement{929955233495203, 466365720129213, 1662059464998953, 2033849074728123, 1442794654840575}

	// 2*d, used by the addition formulas.
	feD2 = FieldElement{1859910466990425, 932731440258426, 1072319116312658, 1815898335770999, 633789495995903}

	// sqrt(-1) = 2^((p-1)/4) = (2^((p-5)/8))^2 * 2.
	feSqrtM1 = feTwo.Pow22523().Square().Multiply(feTwo)
)

// Zero returns the additive identity.
func Zero() FieldElement { return feZero }

// One returns the multiplicative identity.
func One() FieldElement { return feOne }

type uint128 struct {
	lo, hi uint64
}

func mul64(a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	return uint128{lo, hi}
}

func addMul64(v uint128, a, b uint64) uint128 {
	hi, lo := bits.Mul64(a, b)
	lo, c := bits.Add64(lo, v.lo, 0)
	hi, _ = bits.Add64(hi, v.hi, c)
	return uint128{lo, hi}
}

func shiftRightBy51(a uint128) uint64 {
	return (a.hi << (64 - 51)) | (a.lo >> 51)
}

// carryPropagate brings every limb back under 2^51 + 2^13*19.
func (v FieldElement) carryPropagate() FieldElement {
	c0 := v.l0 >> 51
	c1 := v.l1 >> 51
	c2 := v.l2 >> 51
	c3 := v.l3 >> 51
	c4 := v.l4 >> 51

	return FieldElement{
		l0: v.l0&maskLow51Bits + c4*19,
		l1: v.l1&maskLow51Bits + c0,
		l2: v.l2&maskLow51Bits + c1,
		l3: v.l3&maskLow51Bits + c2,
		l4: v.l4&maskLow51Bits + c3,
	}
}

// reduce returns the unique representative in [0, p).
func (v FieldElement) reduce() FieldElement {
	v = v.carryPropagate()

	// After the carry pass v < 2^255 + 2^13*19; it is >= p exactly when
	// v + 19 overflows 2^255.
	c := (v.l0 + 19) >> 51
	c = (v.l1 + c) >> 51
	c = (v.l2 + c) >> 51
	c = (v.l3 + c) >> 51
	c = (v.l4 + c) >> 51

	v.l0 += 19 * c

	v.l1 += v.l0 >> 51
	v.l0 = v.l0 & maskLow51Bits
	v.l2 += v.l1 >> 51
	v.l1 = v.l1 & maskLow51Bits
	v.l3 += v.l2 >> 51
	v.l2 = v.l2 & maskLow51Bits
	v.l4 += v.l3 >> 51
	v.l3 = v.l3 & maskLow51Bits
	// Drops the 2^255 bit, which subtracts p together with the +19 above.
	v.l4 = v.l4 & maskLow51Bits

	return v
}

// Add returns v + a.
func (v FieldElement) Add(a FieldElement) FieldElement {
	return FieldElement{
		l0: v.l0 + a.l0,
		l1: v.l1 + a.l1,
		l2: v.l2 + a.l2,
		l3: v.l3 + a.l3,
		l4: v.l4 + a.l4,
	}.carryPropagate()
}

// Subtract returns v - a.
func (v FieldElement) Subtract(a FieldElement) FieldElement {
	// Adding 2p keeps every limb positive.
	return FieldElement{
		l0: (v.l0 + 0xFFFFFFFFFFFDA) - a.l0,
		l1: (v.l1 + 0xFFFFFFFFFFFFE) - a.l1,
		l2: (v.l2 + 0xFFFFFFFFFFFFE) - a.l2,
		l3: (v.l3 + 0xFFFFFFFFFFFFE) - a.l3,
		l4: (v.l4 + 0xFFFFFFFFFFFFE) - a.l4,
	}.carryPropagate()
}

// Negate returns -v.
func (v FieldElement) Negate() FieldElement {
	return feZero.Subtract(v)
}

// Multiply returns v * a.
func (v FieldElement) Multiply(a FieldElement) FieldElement {
	a0, a1, a2, a3, a4 := v.l0, v.l1, v.l2, v.l3, v.l4
	b0, b1, b2, b3, b4 := a.l0, a.l1, a.l2, a.l3, a.l4

	// Limb products that wrap past 2^255 pick up a factor of 19.
	a1_19 := a1 * 19
	a2_19 := a2 * 19
	a3_19 := a3 * 19
	a4_19 := a4 * 19

	r0 := mul64(a0, b0)
	r0 = addMul64(r0, a1_19, b4)
	r0 = addMul64(r0, a2_19, b3)
	r0 = addMul64(r0, a3_19, b2)
	r0 = addMul64(r0, a4_19, b1)

	r1 := mul64(a0, b1)
	r1 = addMul64(r1, a1, b0)
	r1 = addMul64(r1, a2_19, b4)
	r1 = addMul64(r1, a3_19, b3)
	r1 = addMul64(r1, a4_19, b2)

	r2 := mul64(a0, b2)
	r2 = addMul64(r2, a1, b1)
	r2 = addMul64(r2, a2, b0)
	r2 = addMul64(r2, a3_19, b4)
	r2 = addMul64(r2, a4_19, b3)

	r3 := mul64(a0, b3)
	r3 = addMul64(r3, a1, b2)
	r3 = addMul64(r3, a2, b1)
	r3 = addMul64(r3, a3, b0)
	r3 = addMul64(r3, a4_19, b4)

	r4 := mul64(a0, b4)
	r4 = addMul64(r4, a1, b3)
	r4 = addMul64(r4, a2, b2)
	r4 = addMul64(r4, a3, b1)
	r4 = addMul64(r4, a4, b0)

	return wideCarry(r0, r1, r2, r3, r4)
}

// Square returns v * v.
func (v FieldElement) Square() FieldElement {
	l0, l1, l2, l3, l4 := v.l0, v.l1, v.l2, v.l3, v.l4

	l0_2 := l0 * 2
	l1_2 := l1 * 2

	l1_38 := l1 * 38
	l2_38 := l2 * 38
	l3_38 := l3 * 38

	l3_19 := l3 * 19
	l4_19 := l4 * 19

	r0 := mul64(l0, l0)
	r0 = addMul64(r0, l1_38, l4)
	r0 = addMul64(r0, l2_38, l3)

	r1 := mul64(l0_2, l1)
	r1 = addMul64(r1, l2_38, l4)
	r1 = addMul64(r1, l3_19, l3)

	r2 := mul64(l0_2, l2)
	r2 = addMul64(r2, l1, l1)
	r2 = addMul64(r2, l3_38, l4)

	r3 := mul64(l0_2, l3)
	r3 = addMul64(r3, l1_2, l2)
	r3 = addMul64(r3, l4_19, l4)

	r4 := mul64(l0_2, l4)
	r4 = addMul64(r4, l1_2, l3)
	r4 = addMul64(r4, l2, l2)

	return wideCarry(r0, r1, r2, r3, r4)
}

// wideCarry folds the 128-bit column sums of a product back into limbs.
func wideCarry(r0, r1, r2, r3, r4 uint128) FieldElement {
	c0 := shiftRightBy51(r0)
	c1 := shiftRightBy51(r1)
	c2 := shiftRightBy51(r2)
	c3 := shiftRightBy51(r3)
	c4 := shiftRightBy51(r4)

	return FieldElement{
		l0: r0.lo&maskLow51Bits + c4*19,
		l1: r1.lo&maskLow51Bits + c0,
		l2: r2.lo&maskLow51Bits + c1,
		l3: r3.lo&maskLow51Bits + c2,
		l4: r4.lo&maskLow51Bits + c3,
	}.carryPropagate()
}

// squareN squares v n times.
func (v FieldElement) squareN(n int) FieldElement {
	for i := 0; i < n; i++ {
		v = v.Square()
	}
	return v
}

// Invert returns 1/v = v^(p-2).
//
// v must not be zero. Zero has no inverse and the result is zero; callers
// are responsible for never relying on it.
func (v FieldElement) Invert() FieldElement {
	z2 := v.Square()                    // 2
	z9 := z2.squareN(2).Multiply(v)     // 9
	z11 := z9.Multiply(z2)              // 11
	z2_5_0 := z11.Square().Multiply(z9) // 2^5 - 2^0

	z2_10_0 := z2_5_0.squareN(5).Multiply(z2_5_0)        // 2^10 - 2^0
	z2_20_0 := z2_10_0.squareN(10).Multiply(z2_10_0)     // 2^20 - 2^0
	z2_40_0 := z2_20_0.squareN(20).Multiply(z2_20_0)     // 2^40 - 2^0
	z2_50_0 := z2_40_0.squareN(10).Multiply(z2_10_0)     // 2^50 - 2^0
	z2_100_0 := z2_50_0.squareN(50).Multiply(z2_50_0)    // 2^100 - 2^0
	z2_200_0 := z2_100_0.squareN(100).Multiply(z2_100_0) // 2^200 - 2^0
	z2_250_0 := z2_200_0.squareN(50).Multiply(z2_50_0)   // 2^250 - 2^0

	return z2_250_0.squareN(5).Multiply(z11) // 2^255 - 21
}

// Pow22523 returns v^((p-5)/8) = v^(2^252 - 3), the exponent used when
// taking square roots during point decompression.
func (v FieldElement) Pow22523() FieldElement {
	t0 := v.Square()                // 2
	t1 := t0.squareN(2).Multiply(v) // 9
	t0 = t0.Multiply(t1)            // 11
	t0 = t0.Square().Multiply(t1)   // 2^5 - 2^0

	t10 := t0.squareN(5).Multiply(t0)   // 2^10 - 2^0
	t1 = t10.squareN(10).Multiply(t10)  // 2^20 - 2^0
	t1 = t1.squareN(20).Multiply(t1)    // 2^40 - 2^0
	t50 := t1.squareN(10).Multiply(t10) // 2^50 - 2^0
	t1 = t50.squareN(50).Multiply(t50)  // 2^100 - 2^0
	t1 = t1.squareN(100).Multiply(t1)   // 2^200 - 2^0
	t1 = t1.squareN(50).Multiply(t50)   // 2^250 - 2^0

	return t1.squareN(2).Multiply(v) // 2^252 - 3
}

// Select returns a if cond == 1 and b if cond == 0, in constant time.
func Select(a, b FieldElement, cond int) FieldElement {
	m := -uint64(cond & 1)
	return FieldElement{
		l0: (m & a.l0) | (^m & b.l0),
		l1: (m & a.l1) | (^m & b.l1),
		l2: (m & a.l2) | (^m & b.l2),
		l3: (m & a.l3) | (^m & b.l3),
		l4: (m & a.l4) | (^m & b.l4),
	}
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v FieldElement) Bytes() [32]byte {
	t := v.reduce()

	var out [32]byte
	var buf [8]byte
	for i, l := range [5]uint64{t.l0, t.l1, t.l2, t.l3, t.l4} {
		bitsOffset := i * 51
		binary.LittleEndian.PutUint64(buf[:], l<<uint(bitsOffset%8))
		for j, bb := range buf {
			off := bitsOffset/8 + j
			if off >= len(out) {
				break
			}
			out[off] |= bb
		}
	}

	return out
}

// FieldElementFromBytes decodes a 32-byte little-endian value, ignoring the
// top bit. Values in [p, 2^255) are accepted and reduced; use
// FieldElementFromCanonicalBytes when such encodings must be rejected.
func FieldElementFromBytes(x []byte) (v FieldElement, err error) {
	if len(x) != 32 {
		err = fault.Short("field element", 0, 32, len(x))
		return
	}

	v.l0 = binary.LittleEndian.Uint64(x[0:8])
	v.l0 &= maskLow51Bits
	v.l1 = binary.LittleEndian.Uint64(x[6:14]) >> 3
	v.l1 &= maskLow51Bits
	v.l2 = binary.LittleEndian.Uint64(x[12:20]) >> 6
	v.l2 &= maskLow51Bits
	v.l3 = binary.LittleEndian.Uint64(x[19:27]) >> 1
	v.l3 &= maskLow51Bits
	// Bits 204 to 254; bit 255 is left to the caller.
	v.l4 = binary.LittleEndian.Uint64(x[24:32]) >> 12
	v.l4 &= maskLow51Bits

	return
}

// FieldElementFromCanonicalBytes decodes x and fails with a decode error if
// the top bit is set or the value is not below p.
func FieldElementFromCanonicalBytes(x []byte) (v FieldElement, err error) {
	v, err = FieldElementFromBytes(x)
	if err != nil {
		return
	}

	encoded := v.Bytes()
	if subtle.ConstantTimeCompare(encoded[:], x) != 1 {
		err = fault.Malformed("field element", 0, "non-canonical encoding %x", x)
		return
	}

	return
}

// Equal reports whether v and a are the same field element, in constant time.
func (v FieldElement) Equal(a FieldElement) bool {
	vb, ab := v.Bytes(), a.Bytes()
	return subtle.ConstantTimeCompare(vb[:], ab[:]) == 1
}

// IsZero reports whether v is zero.
func (v FieldElement) IsZero() bool {
	return v.Equal(feZero)
}

// IsNegative reports 1 if the canonical encoding of v is odd, 0 otherwise.
func (v FieldElement) IsNegative() int {
	b := v.Bytes()
	return int(b[0] & 1)
}

// Absolute returns |v|, the non-negative one of v and -v.
func (v FieldElement) Absolute() FieldElement {
	return Select(v.Negate(), v, v.IsNegative())
}

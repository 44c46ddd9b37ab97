package edwards

import (
	"fmt"

	"github.com/alexdcox/symbol-go/fault"
)

// CoordinateSystem tags the representation held by a GroupElement.
type CoordinateSystem int

const (
	// Affine holds (x, y).
	Affine CoordinateSystem = iota + 1
	// P2 is projective (X:Y:Z) with x = X/Z, y = Y/Z.
	P2
	// P3 is extended (X:Y:Z:T) with x = X/Z, y = Y/Z, xy = T/Z.
	P3
	// P1xP1 is completed ((X:Z),(Y:T)) with x = X/Z, y = Y/T.
	P1xP1
	// Precomputed is (y+x, y-x, 2dxy) of an affine point.
	Precomputed
	// Cached is (Y+X, Y-X, Z, 2dT) of an extended point.
	Cached
)

func (c CoordinateSystem) String() string {
	switch c {
	case Affine:
		return "affine"
	case P2:
		return "P2"
	case P3:
		return "P3"
	case P1xP1:
		return "P1xP1"
	case Precomputed:
		return "precomputed"
	case Cached:
		return "cached"
	default:
		return fmt.Sprintf("CoordinateSystem(%d)", int(c))
	}
}

// GroupElement is a point on the twisted Edwards curve
//
//	-x^2 + y^2 = 1 + d x^2 y^2
//
// in one of the coordinate systems above. The four slots a, b, c, e are read
// according to the system tag only; there is no way to reinterpret one
// system's slots as another's other than the conversions in To.
//
// GroupElement values are immutable: every operation returns a new value.
// The zero GroupElement carries no coordinate system and is not a point.
type GroupElement struct {
	system     CoordinateSystem
	a, b, c, e FieldElement
}

func NewAffine(x, y FieldElement) GroupElement {
	return GroupElement{system: Affine, a: x, b: y}
}

func NewP2(x, y, z FieldElement) GroupElement {
	return GroupElement{system: P2, a: x, b: y, c: z}
}

func NewP3(x, y, z, t FieldElement) GroupElement {
	return GroupElement{system: P3, a: x, b: y, c: z, e: t}
}

func NewP1xP1(x, y, z, t FieldElement) GroupElement {
	return GroupElement{system: P1xP1, a: x, b: y, c: z, e: t}
}

func NewPrecomputed(yPlusX, yMinusX, xy2d FieldElement) GroupElement {
	return GroupElement{system: Precomputed, a: yPlusX, b: yMinusX, c: xy2d}
}

func NewCached(yPlusX, yMinusX, z, t2d FieldElement) GroupElement {
	return GroupElement{system: Cached, a: yPlusX, b: yMinusX, c: z, e: t2d}
}

// Identity returns the neutral element in the given coordinate system.
func Identity(system CoordinateSystem) GroupElement {
	switch system {
	case Affine:
		return NewAffine(feZero, feOne)
	case P2:
		return NewP2(feZero, feOne, feOne)
	case P3:
		return NewP3(feZero, feOne, feOne, feZero)
	case P1xP1:
		return NewP1xP1(feZero, feOne, feOne, feOne)
	case Precomputed:
		return NewPrecomputed(feOne, feOne, feZero)
	case Cached:
		return NewCached(feOne, feOne, feOne, feZero)
	}
	panic("edwards: identity requested for " + system.String())
}

// System returns the coordinate system g is held in.
func (g GroupElement) System() CoordinateSystem {
	return g.system
}

func (g GroupElement) mustBe(system CoordinateSystem) {
	if g.system != system {
		panic("edwards: expected " + system.String() + " element, got " + g.system.String())
	}
}

type conversion func(GroupElement) GroupElement

// Direct conversions that need no inversion. Anything else goes through
// affine coordinates.
var conversions = map[CoordinateSystem]map[CoordinateSystem]conversion{
	P1xP1: {
		P2:     p1p1ToP2,
		P3:     p1p1ToP3,
		Cached: func(g GroupElement) GroupElement { return p3ToCached(p1p1ToP3(g)) },
	},
	P3: {
		P2:     p3ToP2,
		Cached: p3ToCached,
	},
}

var toAffine = map[CoordinateSystem]conversion{
	P2:          projectiveToAffine,
	P3:          projectiveToAffine,
	P1xP1:       completedToAffine,
	Precomputed: precomputedToAffine,
	Cached:      cachedToAffine,
}

var fromAffine = map[CoordinateSystem]conversion{
	P2:          affineToP2,
	P3:          affineToP3,
	P1xP1:       affineToP1xP1,
	Precomputed: affineToPrecomputed,
	Cached:      affineToCached,
}

// To converts g into the target coordinate system.
func (g GroupElement) To(target CoordinateSystem) GroupElement {
	if g.system == target {
		return g
	}
	if f, ok := conversions[g.system][target]; ok {
		return f(g)
	}

	affine := g
	if g.system != Affine {
		f, ok := toAffine[g.system]
		if !ok {
			panic("edwards: cannot convert " + g.system.String() + " element")
		}
		affine = f(g)
	}
	if target == Affine {
		return affine
	}

	f, ok := fromAffine[target]
	if !ok {
		panic("edwards: cannot convert to " + target.String())
	}
	return f(affine)
}

// ToAffine returns g as (x, y).
func (g GroupElement) ToAffine() GroupElement {
	return g.To(Affine)
}

func p1p1ToP2(g GroupElement) GroupElement {
	g.mustBe(P1xP1)
	return NewP2(
		g.a.Multiply(g.e),
		g.b.Multiply(g.c),
		g.c.Multiply(g.e),
	)
}

func p1p1ToP3(g GroupElement) GroupElement {
	g.mustBe(P1xP1)
	return NewP3(
		g.a.Multiply(g.e),
		g.b.Multiply(g.c),
		g.c.Multiply(g.e),
		g.a.Multiply(g.b),
	)
}

func p3ToP2(g GroupElement) GroupElement {
	g.mustBe(P3)
	return NewP2(g.a, g.b, g.c)
}

func p3ToCached(g GroupElement) GroupElement {
	g.mustBe(P3)
	return NewCached(
		g.b.Add(g.a),
		g.b.Subtract(g.a),
		g.c,
		g.e.Multiply(feD2),
	)
}

func projectiveToAffine(g GroupElement) GroupElement {
	zInv := g.c.Invert()
	return NewAffine(g.a.Multiply(zInv), g.b.Multiply(zInv))
}

func completedToAffine(g GroupElement) GroupElement {
	g.mustBe(P1xP1)
	return NewAffine(g.a.Multiply(g.c.Invert()), g.b.Multiply(g.e.Invert()))
}

var feInvTwo = feTwo.Invert()

func precomputedToAffine(g GroupElement) GroupElement {
	g.mustBe(Precomputed)
	x := g.a.Subtract(g.b).Multiply(feInvTwo)
	y := g.a.Add(g.b).Multiply(feInvTwo)
	return NewAffine(x, y)
}

func cachedToAffine(g GroupElement) GroupElement {
	g.mustBe(Cached)
	zInv := g.c.Invert()
	x := g.a.Subtract(g.b).Multiply(feInvTwo).Multiply(zInv)
	y := g.a.Add(g.b).Multiply(feInvTwo).Multiply(zInv)
	return NewAffine(x, y)
}

func affineToP2(g GroupElement) GroupElement {
	g.mustBe(Affine)
	return NewP2(g.a, g.b, feOne)
}

func affineToP3(g GroupElement) GroupElement {
	g.mustBe(Affine)
	return NewP3(g.a, g.b, feOne, g.a.Multiply(g.b))
}

func affineToP1xP1(g GroupElement) GroupElement {
	g.mustBe(Affine)
	return NewP1xP1(g.a, g.b, feOne, feOne)
}

func affineToPrecomputed(g GroupElement) GroupElement {
	g.mustBe(Affine)
	return NewPrecomputed(
		g.b.Add(g.a),
		g.b.Subtract(g.a),
		g.a.Multiply(g.b).Multiply(feD2),
	)
}

func affineToCached(g GroupElement) GroupElement {
	g.mustBe(Affine)
	return NewCached(
		g.b.Add(g.a),
		g.b.Subtract(g.a),
		feOne,
		g.a.Multiply(g.b).Multiply(feD2),
	)
}

// dbl doubles a P2 element into P1xP1.
func dbl(p GroupElement) GroupElement {
	p.mustBe(P2)
	xx := p.a.Square()
	yy := p.b.Square()
	zz := p.c.Square()
	zz2 := zz.Add(zz)
	xPlusYSq := p.a.Add(p.b).Square()

	y := yy.Add(xx)
	z := yy.Subtract(xx)
	return NewP1xP1(xPlusYSq.Subtract(y), y, z, zz2.Subtract(z))
}

// add computes P3 + Cached, or P3 - Cached when negate is set.
func add(p, q GroupElement, negate bool) GroupElement {
	p.mustBe(P3)
	q.mustBe(Cached)
	yPlusX, yMinusX := q.a, q.b
	if negate {
		yPlusX, yMinusX = yMinusX, yPlusX
	}

	a := p.b.Add(p.a).Multiply(yPlusX)
	b := p.b.Subtract(p.a).Multiply(yMinusX)
	c := q.e.Multiply(p.e)
	zz := p.c.Multiply(q.c)
	d := zz.Add(zz)

	if negate {
		return NewP1xP1(a.Subtract(b), a.Add(b), d.Subtract(c), d.Add(c))
	}
	return NewP1xP1(a.Subtract(b), a.Add(b), d.Add(c), d.Subtract(c))
}

// madd computes P3 + Precomputed, or P3 - Precomputed when negate is set.
func madd(p, q GroupElement, negate bool) GroupElement {
	p.mustBe(P3)
	q.mustBe(Precomputed)
	yPlusX, yMinusX := q.a, q.b
	if negate {
		yPlusX, yMinusX = yMinusX, yPlusX
	}

	a := p.b.Add(p.a).Multiply(yPlusX)
	b := p.b.Subtract(p.a).Multiply(yMinusX)
	c := q.c.Multiply(p.e)
	d := p.c.Add(p.c)

	if negate {
		return NewP1xP1(a.Subtract(b), a.Add(b), d.Subtract(c), d.Add(c))
	}
	return NewP1xP1(a.Subtract(b), a.Add(b), d.Add(c), d.Subtract(c))
}

// Double returns 2g as a P1xP1 element.
func (g GroupElement) Double() GroupElement {
	return dbl(g.To(P2))
}

// Add returns g + h as a P1xP1 element.
func (g GroupElement) Add(h GroupElement) GroupElement {
	if h.system == Precomputed {
		return madd(g.To(P3), h, false)
	}
	return add(g.To(P3), h.To(Cached), false)
}

// Subtract returns g - h as a P1xP1 element.
func (g GroupElement) Subtract(h GroupElement) GroupElement {
	if h.system == Precomputed {
		return madd(g.To(P3), h, true)
	}
	return add(g.To(P3), h.To(Cached), true)
}

// Negate returns -g in g's coordinate system.
func (g GroupElement) Negate() GroupElement {
	switch g.system {
	case Affine, P2:
		g.a = g.a.Negate()
	case P3:
		g.a = g.a.Negate()
		g.e = g.e.Negate()
	case P1xP1:
		g.a = g.a.Negate()
	case Precomputed:
		g.a, g.b = g.b, g.a
		g.c = g.c.Negate()
	case Cached:
		g.a, g.b = g.b, g.a
		g.e = g.e.Negate()
	default:
		panic("edwards: negate of " + g.system.String())
	}
	return g
}

// Bytes returns the 32-byte compressed encoding: y little-endian with the
// sign of x in the top bit.
func (g GroupElement) Bytes() [32]byte {
	affine := g.ToAffine()
	out := affine.b.Bytes()
	out[31] ^= byte(affine.a.IsNegative() << 7)
	return out
}

// Equal reports whether g and h are the same point.
func (g GroupElement) Equal(h GroupElement) bool {
	// Cross-multiplied projective coordinates avoid two inversions.
	p := g.To(P2)
	q := h.To(P2)
	return p.a.Multiply(q.c).Equal(q.a.Multiply(p.c)) &&
		p.b.Multiply(q.c).Equal(q.b.Multiply(p.c))
}

// IsIdentity reports whether g is the neutral element.
func (g GroupElement) IsIdentity() bool {
	return g.Equal(Identity(P3))
}

// IsOnCurve reports whether g satisfies the curve equation.
func (g GroupElement) IsOnCurve() bool {
	p := g.ToAffine()
	xx := p.a.Square()
	yy := p.b.Square()
	lhs := yy.Subtract(xx)
	rhs := feOne.Add(feD.Multiply(xx).Multiply(yy))
	return lhs.Equal(rhs)
}

// GroupElementFromBytes decodes a compressed point and returns it in P3.
//
// It fails with a decode error if b is not 32 bytes, if y is not canonical,
// if no x satisfies the curve equation, or if x = 0 is encoded with the
// sign bit set. Malformed public keys are never adjusted into valid ones.
func GroupElementFromBytes(b []byte) (g GroupElement, err error) {
	if len(b) != 32 {
		err = fault.Short("group element", 0, 32, len(b))
		return
	}

	var yBytes [32]byte
	copy(yBytes[:], b)
	sign := int(yBytes[31] >> 7)
	yBytes[31] &= 0x7f

	y, err := FieldElementFromCanonicalBytes(yBytes[:])
	if err != nil {
		err = fault.Malformed("group element", 0, "non-canonical y coordinate")
		return
	}

	// x^2 = (y^2 - 1) / (d y^2 + 1) = u / v
	yy := y.Square()
	u := yy.Subtract(feOne)
	v := feD.Multiply(yy).Add(feOne)

	// x = u v^3 (u v^7)^((p-5)/8)
	v3 := v.Square().Multiply(v)
	v7 := v3.Square().Multiply(v)
	x := u.Multiply(v7).Pow22523().Multiply(v3).Multiply(u)

	vxx := x.Square().Multiply(v)
	if !vxx.Equal(u) {
		if !vxx.Equal(u.Negate()) {
			err = fault.Malformed("group element", 0, "point is not on the curve")
			return
		}
		x = x.Multiply(feSqrtM1)
	}

	if x.IsZero() && sign == 1 {
		err = fault.Malformed("group element", 0, "negative zero x coordinate")
		return
	}
	if x.IsNegative() != sign {
		x = x.Negate()
	}

	return NewP3(x, y, feOne, x.Multiply(y)), nil
}

func mustDecode(hexBytes [32]byte) GroupElement {
	g, err := GroupElementFromBytes(hexBytes[:])
	if err != nil {
		panic(err)
	}
	return g
}

// basePoint is B = (x, 4/5) with x positive.
var basePoint = mustDecode([32]byte{
	0x58, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
})

// BasePoint returns the generator B in P3.
func BasePoint() GroupElement {
	return basePoint
}

// MultiplyByCofactor returns 8g in P3.
func (g GroupElement) MultiplyByCofactor() GroupElement {
	p := g.Double().To(P2)
	p = dbl(p).To(P2)
	return p1p1ToP3(dbl(p))
}

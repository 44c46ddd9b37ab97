package edwards

import (
	"sync"

	"github.com/rs/zerolog"
)

var log = zerolog.Nop()

// SetLogger replaces the package logger, which is silent by default.
func SetLogger(l zerolog.Logger) {
	log = l
}

// The fixed-base table holds, for i in [0, 32) and j in [0, 8), the
// Precomputed form of (j+1) * 256^i * B. It is built on first use and only
// read afterwards.
var (
	baseTableOnce sync.Once
	baseTable     [32][8]GroupElement
)

// The odd multiples B, 3B, ..., 15B used by the verification path.
var (
	baseOddOnce     sync.Once
	baseOddMultiple [8]GroupElement
)

func fixedBaseTable() *[32][8]GroupElement {
	baseTableOnce.Do(func() {
		p := basePoint
		for i := range baseTable {
			q := p
			for j := range baseTable[i] {
				baseTable[i][j] = q.To(Precomputed)
				q = p1p1ToP3(q.Add(p))
			}
			// p <- 256p
			for k := 0; k < 8; k++ {
				p = p1p1ToP3(p.Double())
			}
		}
		log.Debug().Msg("fixed-base multiplication table ready")
	})
	return &baseTable
}

func oddBaseMultiples() *[8]GroupElement {
	baseOddOnce.Do(func() {
		twoB := p1p1ToP3(basePoint.Double())
		q := basePoint
		for i := range baseOddMultiple {
			baseOddMultiple[i] = q.To(Precomputed)
			q = p1p1ToP3(q.Add(twoB))
		}
	})
	return &baseOddMultiple
}

// signedRadix16 splits a into 64 digits in [-8, 8) such that
// a = sum(e[i] * 16^i). a[31] must be at most 127.
func signedRadix16(a Scalar) (e [64]int8) {
	for i := 0; i < 32; i++ {
		e[2*i] = int8(a[i] & 15)
		e[2*i+1] = int8((a[i] >> 4) & 15)
	}

	var carry int8
	for i := 0; i < 63; i++ {
		e[i] += carry
		carry = (e[i] + 8) >> 4
		e[i] -= carry << 4
	}
	e[63] += carry

	return
}

func ctEqual(b, c int8) int {
	x := uint8(b ^ c)
	return int((uint32(x) - 1) >> 31)
}

func ctNegative(b int8) int {
	return int(uint8(b) >> 7)
}

func ctSelect(a, b GroupElement, cond int) GroupElement {
	return GroupElement{
		system: a.system,
		a:      Select(a.a, b.a, cond),
		b:      Select(a.b, b.b, cond),
		c:      Select(a.c, b.c, cond),
		e:      Select(a.e, b.e, cond),
	}
}

// lookup returns b * entries[|b|-1] (or the identity for b = 0) without
// branching on b. All entries must share one coordinate system.
func lookup(entries *[8]GroupElement, b int8) GroupElement {
	negative := ctNegative(b)
	abs := b - int8((-negative)&int(b))<<1

	t := Identity(entries[0].system)
	for j := range entries {
		t = ctSelect(entries[j], t, ctEqual(abs, int8(j+1)))
	}
	return ctSelect(t.Negate(), t, negative)
}

// ScalarBaseMult returns a * B in P3, in constant time with respect to a.
// a[31] must be at most 127, which holds for reduced and clamped scalars.
func ScalarBaseMult(a Scalar) GroupElement {
	table := fixedBaseTable()
	e := signedRadix16(a)

	h := Identity(P3)
	for i := 1; i < 64; i += 2 {
		h = p1p1ToP3(madd(h, lookup(&table[i/2], e[i]), false))
	}

	// h <- 16h
	p := p3ToP2(h)
	p = p1p1ToP2(dbl(p))
	p = p1p1ToP2(dbl(p))
	p = p1p1ToP2(dbl(p))
	h = p1p1ToP3(dbl(p))

	for i := 0; i < 64; i += 2 {
		h = p1p1ToP3(madd(h, lookup(&table[i/2], e[i]), false))
	}

	return h
}

// ScalarMult returns a * g in P3, in constant time with respect to a.
func ScalarMult(a Scalar, g GroupElement) GroupElement {
	var multiples [8]GroupElement
	p := g.To(P3)
	q := p
	for j := range multiples {
		multiples[j] = p3ToCached(q)
		q = p1p1ToP3(add(q, multiples[0], false))
	}

	// Reduction keeps the top digit within range for any input.
	e := signedRadix16(a.Add(Scalar{}))

	h := Identity(P3)
	for i := 63; i >= 0; i-- {
		r := p3ToP2(h)
		r = p1p1ToP2(dbl(r))
		r = p1p1ToP2(dbl(r))
		r = p1p1ToP2(dbl(r))
		h = p1p1ToP3(dbl(r))
		h = p1p1ToP3(add(h, lookup(&multiples, e[i]), false))
	}

	return h
}

// slide recodes a into a width-5 non-adjacent form with odd digits in
// [-15, 15].
func slide(a Scalar) (r [256]int8) {
	for i := range r {
		r[i] = int8(1 & (a[i>>3] >> (i & 7)))
	}

	for i := range r {
		if r[i] == 0 {
			continue
		}
		for b := 1; b <= 6 && i+b < 256; b++ {
			if r[i+b] == 0 {
				continue
			}
			if r[i]+(r[i+b]<<b) <= 15 {
				r[i] += r[i+b] << b
				r[i+b] = 0
			} else if r[i]-(r[i+b]<<b) >= -15 {
				r[i] -= r[i+b] << b
				for k := i + b; k < 256; k++ {
					if r[k] == 0 {
						r[k] = 1
						break
					}
					r[k] = 0
				}
			} else {
				break
			}
		}
	}

	return
}

// DoubleScalarMultVartime returns a*A + b*B in P2.
//
// It runs in variable time and must only see public inputs, as during
// signature verification.
func DoubleScalarMultVartime(a Scalar, A GroupElement, b Scalar) GroupElement {
	aSlide := slide(a)
	bSlide := slide(b)
	bOdd := oddBaseMultiples()

	var aOdd [8]GroupElement
	p := A.To(P3)
	twoA := p1p1ToP3(dbl(p3ToP2(p)))
	aOdd[0] = p3ToCached(p)
	for i := 1; i < len(aOdd); i++ {
		aOdd[i] = p3ToCached(p1p1ToP3(add(twoA, aOdd[i-1], false)))
	}

	i := 255
	for ; i >= 0; i-- {
		if aSlide[i] != 0 || bSlide[i] != 0 {
			break
		}
	}

	r := Identity(P2)
	for ; i >= 0; i-- {
		t := dbl(r)

		if aSlide[i] > 0 {
			t = add(p1p1ToP3(t), aOdd[aSlide[i]/2], false)
		} else if aSlide[i] < 0 {
			t = add(p1p1ToP3(t), aOdd[(-aSlide[i])/2], true)
		}

		if bSlide[i] > 0 {
			t = madd(p1p1ToP3(t), bOdd[bSlide[i]/2], false)
		} else if bSlide[i] < 0 {
			t = madd(p1p1ToP3(t), bOdd[(-bSlide[i])/2], true)
		}

		r = p1p1ToP2(t)
	}

	return r
}

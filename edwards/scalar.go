package edwards

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/alexdcox/symbol-go/fault"
)

// Scalar is an integer modulo the group order
//
//	L = 2^252 + 27742317777372353535851937790883648493
//
// held as 32 little-endian bytes. Scalars produced by Reduce and
// MultiplyAdd are always fully reduced.
type Scalar [32]byte

// groupOrder is L, little-endian.
var groupOrder = Scalar{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// GroupOrder returns L.
func GroupOrder() Scalar { return groupOrder }

const (
	limbBits = 21
	limbMask = (1 << limbBits) - 1
)

// Limbs of -(L - 2^252) in radix 2^21. Folding limb i >= 12 adds
// s[i] * 2^(21(i-12)) times these into the lower limbs, since
// 2^252 = -(L - 2^252) mod L.
const (
	fold0 = 666643
	fold1 = 470296
	fold2 = 654183
	fold3 = -997805
	fold4 = 136657
	fold5 = -683901
)

// loadLimb reads the 21 bits of b that start at bit 21*i.
func loadLimb(b []byte, i int) int64 {
	bit := limbBits * i
	var buf [4]byte
	copy(buf[:], b[bit/8:])
	return int64(binary.LittleEndian.Uint32(buf[:])>>(bit%8)) & limbMask
}

func fold(s *[24]int64, i int) {
	c := s[i]
	s[i-12] += c * fold0
	s[i-11] += c * fold1
	s[i-10] += c * fold2
	s[i-9] += c * fold3
	s[i-8] += c * fold4
	s[i-7] += c * fold5
	s[i] = 0
}

// carry moves everything above 21 bits of s[i] into s[i+1]. With round
// set the limb ends up centered on zero instead of non-negative.
func carry(s *[24]int64, i int, round bool) {
	var c int64
	if round {
		c = (s[i] + (1 << (limbBits - 1))) >> limbBits
	} else {
		c = s[i] >> limbBits
	}
	s[i+1] += c
	s[i] -= c << limbBits
}

func carryRange(s *[24]int64, from, to int) {
	for i := from; i <= to; i += 2 {
		carry(s, i, true)
	}
}

// reduceLimbs reduces a 24-limb value modulo L. Limbs 0..22 must be within
// 21 bits of signed magnitude and limb 23 within 29 bits.
func reduceLimbs(s *[24]int64) (out Scalar) {
	for i := 23; i >= 18; i-- {
		fold(s, i)
	}
	carryRange(s, 6, 16)
	carryRange(s, 7, 15)

	for i := 17; i >= 12; i-- {
		fold(s, i)
	}
	carryRange(s, 0, 10)
	carryRange(s, 1, 11)

	fold(s, 12)
	for i := 0; i <= 11; i++ {
		carry(s, i, false)
	}

	fold(s, 12)
	for i := 0; i <= 10; i++ {
		carry(s, i, false)
	}

	var acc uint64
	var accBits uint
	n := 0
	for i := 0; i < 12; i++ {
		acc |= uint64(s[i]) << accBits
		accBits += limbBits
		for accBits >= 8 && n < len(out) {
			out[n] = byte(acc)
			acc >>= 8
			accBits -= 8
			n++
		}
	}
	if n < len(out) {
		out[n] = byte(acc)
	}

	return
}

// Reduce returns the 64-byte little-endian value wide modulo L.
func Reduce(wide []byte) (s Scalar, err error) {
	if len(wide) != 64 {
		err = fault.InvalidArgument("scalar reduction expects 64 bytes, got %d", len(wide))
		return
	}

	var limbs [24]int64
	for i := 0; i < 23; i++ {
		limbs[i] = loadLimb(wide, i)
	}
	// Bits 483..511.
	limbs[23] = int64(binary.LittleEndian.Uint32(wide[60:]) >> 3)

	return reduceLimbs(&limbs), nil
}

// MultiplyAdd returns a*b + c mod L.
func MultiplyAdd(a, b, c Scalar) Scalar {
	var al, bl, cl [12]int64
	for i := 0; i < 12; i++ {
		al[i] = loadLimb(a[:], i)
		bl[i] = loadLimb(b[:], i)
		cl[i] = loadLimb(c[:], i)
	}
	// The twelfth limb takes the remaining top bits of the 256-bit input.
	al[11] = int64(binary.LittleEndian.Uint32(a[28:]) >> 7)
	bl[11] = int64(binary.LittleEndian.Uint32(b[28:]) >> 7)
	cl[11] = int64(binary.LittleEndian.Uint32(c[28:]) >> 7)

	var s [24]int64
	for i := 0; i < 12; i++ {
		s[i] = cl[i]
	}
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			s[i+j] += al[i] * bl[j]
		}
	}

	carryRange(&s, 0, 22)
	carryRange(&s, 1, 21)

	return reduceLimbs(&s)
}

// Multiply returns a*b mod L.
func (a Scalar) Multiply(b Scalar) Scalar {
	return MultiplyAdd(a, b, Scalar{})
}

// Add returns a+b mod L.
func (a Scalar) Add(b Scalar) Scalar {
	one := Scalar{1}
	return MultiplyAdd(a, one, b)
}

// IsCanonical reports whether s < L, i.e. whether s is the unique encoding
// of its value. Signatures with a non-canonical S are malleable and must be
// rejected.
func (s Scalar) IsCanonical() bool {
	// Compare from the most significant byte down without branching on
	// secret data: lt/gt latch on the first differing byte.
	var lt, gt int
	for i := 31; i >= 0; i-- {
		x, y := int(s[i]), int(groupOrder[i])
		undecided := 1 ^ (lt | gt)
		lt |= undecided & int(uint(x-y)>>63)
		gt |= undecided & int(uint(y-x)>>63)
	}
	return lt == 1
}

// ScalarFromCanonicalBytes decodes b as a scalar and rejects encodings that
// are not below L.
func ScalarFromCanonicalBytes(b []byte) (s Scalar, err error) {
	if len(b) != 32 {
		err = fault.Short("scalar", 0, 32, len(b))
		return
	}
	copy(s[:], b)
	if !s.IsCanonical() {
		err = fault.Malformed("scalar", 0, "value is not below the group order")
		return
	}
	return
}

// Clamp applies the Ed25519 private scalar convention: clear the three low
// bits (cofactor), clear bit 255 and set bit 254.
func Clamp(b [32]byte) Scalar {
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
	return Scalar(b)
}

// Equal reports whether a and b hold the same bytes, in constant time.
func (a Scalar) Equal(b Scalar) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// IsZero reports whether a is zero.
func (a Scalar) IsZero() bool {
	return a.Equal(Scalar{})
}

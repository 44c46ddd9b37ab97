package edwards

import (
	"encoding/hex"
	"math/rand"
	"testing"

	"filippo.io/edwards25519/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexdcox/symbol-go/fault"
)

func randomFieldBytes(r *rand.Rand) []byte {
	b := make([]byte, 32)
	r.Read(b)
	b[31] &= 0x7f
	return b
}

func mustField(t *testing.T, b []byte) FieldElement {
	t.Helper()
	v, err := FieldElementFromBytes(b)
	require.NoError(t, err)
	return v
}

func oracleField(t *testing.T, b []byte) *field.Element {
	t.Helper()
	v, err := new(field.Element).SetBytes(b)
	require.NoError(t, err)
	return v
}

func TestFieldElement_MatchesOracle(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		ab, bb := randomFieldBytes(r), randomFieldBytes(r)
		a, b := mustField(t, ab), mustField(t, bb)
		oa, ob := oracleField(t, ab), oracleField(t, bb)

		got := a.Multiply(b).Bytes()
		assert.Equal(t, new(field.Element).Multiply(oa, ob).Bytes(), got[:], "multiply")

		got = a.Add(b).Bytes()
		assert.Equal(t, new(field.Element).Add(oa, ob).Bytes(), got[:], "add")

		got = a.Subtract(b).Bytes()
		assert.Equal(t, new(field.Element).Subtract(oa, ob).Bytes(), got[:], "subtract")

		got = a.Square().Bytes()
		assert.Equal(t, new(field.Element).Square(oa).Bytes(), got[:], "square")

		got = a.Invert().Bytes()
		assert.Equal(t, new(field.Element).Invert(oa).Bytes(), got[:], "invert")

		got = a.Pow22523().Bytes()
		assert.Equal(t, new(field.Element).Pow22523(oa).Bytes(), got[:], "pow22523")
	}
}

func TestFieldElement_Identities(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 100; i++ {
		a := mustField(t, randomFieldBytes(r))
		b := mustField(t, randomFieldBytes(r))
		c := mustField(t, randomFieldBytes(r))

		assert.True(t, a.Add(a.Negate()).IsZero(), "a + -a")
		assert.True(t, a.Subtract(a).IsZero(), "a - a")
		if !a.IsZero() {
			assert.True(t, a.Multiply(a.Invert()).Equal(One()), "a * 1/a")
		}
		assert.True(t, a.Multiply(b.Add(c)).Equal(a.Multiply(b).Add(a.Multiply(c))), "distributive")
		assert.True(t, a.Square().Equal(a.Multiply(a)), "square")
		assert.Equal(t, 0, a.Absolute().IsNegative())
	}
}

func TestFieldElement_Constants(t *testing.T) {
	minusOne := One().Negate()
	assert.True(t, feSqrtM1.Square().Equal(minusOne), "sqrt(-1)^2")

	// d * 121666 = -121665
	n121666 := FieldElement{121666, 0, 0, 0, 0}
	n121665 := FieldElement{121665, 0, 0, 0, 0}
	assert.True(t, feD.Multiply(n121666).Equal(n121665.Negate()))
	assert.True(t, feD.Add(feD).Equal(feD2))
	assert.True(t, feInvTwo.Multiply(feTwo).Equal(One()))
}

func TestFieldElement_InvertZero(t *testing.T) {
	assert.True(t, Zero().Invert().IsZero())
}

func TestFieldElement_Encoding(t *testing.T) {
	// p - 1 is the largest canonical encoding.
	pMinusOne, _ := hex.DecodeString("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
	v, err := FieldElementFromCanonicalBytes(pMinusOne)
	require.NoError(t, err)
	assert.True(t, v.Add(One()).IsZero())

	// p itself decodes to zero but is not canonical.
	p, _ := hex.DecodeString("edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
	v, err = FieldElementFromBytes(p)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = FieldElementFromCanonicalBytes(p)
	assert.ErrorIs(t, err, fault.ErrDecode)

	// The top bit is never part of a canonical encoding.
	top := make([]byte, 32)
	top[31] = 0x80
	_, err = FieldElementFromCanonicalBytes(top)
	assert.ErrorIs(t, err, fault.ErrDecode)

	_, err = FieldElementFromBytes(make([]byte, 31))
	var decodeErr *fault.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 32, decodeErr.Want)
	assert.Equal(t, 31, decodeErr.Have)
}

func TestFieldElement_Select(t *testing.T) {
	a, b := One(), feTwo
	assert.True(t, Select(a, b, 1).Equal(a))
	assert.True(t, Select(a, b, 0).Equal(b))
}

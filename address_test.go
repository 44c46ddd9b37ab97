package symbol

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

func TestNewAddress(t *testing.T) {
	pub := testKeyPair(t, 7).PublicKey()

	testCases := []struct {
		network NetworkType
		prefix  byte
	}{
		{NetworkTypeMainNet, 'N'},
		{NetworkTypeTestNet, 'T'},
		{NetworkTypeMijin, 'M'},
		{NetworkTypeMijinTest, 'S'},
		{NetworkTypePrivate, 'P'},
		{NetworkTypePrivateTest, 'V'},
	}

	for _, testCase := range testCases {
		a := NewAddress(pub, testCase.network)
		s := a.String()

		if len(s) != AddressEncodedSize {
			t.Fatalf("%s address '%s' has %d characters", testCase.network, s, len(s))
		}
		assert.Equal(t, testCase.prefix, s[0], testCase.network.String())
		assert.Equal(t, testCase.network, a.Network())
		assert.True(t, a.IsForNetwork(testCase.network))
		assert.NoError(t, a.Validate())
	}
}

func TestNewAddress_Layout(t *testing.T) {
	pub := testKeyPair(t, 7).PublicKey()
	a := NewAddress(pub, NetworkTypeTestNet)

	keyHash := sha3.Sum256(pub[:])
	h := ripemd160.New()
	h.Write(keyHash[:])

	assert.Equal(t, byte(NetworkTypeTestNet), a[0])
	assert.Equal(t, h.Sum(nil), a[1:21])

	checksum := sha3.Sum256(a[:21])
	assert.Equal(t, checksum[:3], a[21:])
}

func TestParseAddress(t *testing.T) {
	a := NewAddress(testKeyPair(t, 8).PublicKey(), NetworkTypeMainNet)

	for _, s := range []string{
		a.String(),
		strings.ToLower(a.String()),
		a.Pretty(),
		ToHex(a[:]),
		"  " + a.String() + "\n",
	} {
		parsed, err := ParseAddress(s)
		require.NoError(t, err, s)
		assert.Equal(t, a, parsed, s)
	}

	pretty := a.Pretty()
	assert.Len(t, pretty, AddressEncodedSize+6)
	assert.Equal(t, a.String()[:6], pretty[:6])
	assert.Equal(t, byte('-'), pretty[6])
}

func TestParseAddress_Invalid(t *testing.T) {
	a := NewAddress(testKeyPair(t, 8).PublicKey(), NetworkTypeTestNet)

	badChecksum := a
	badChecksum[23] ^= 0xFF

	badNetwork := a
	badNetwork[0] = 0x01

	testCases := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrInvalidArgument},
		{"short", a.String()[:38], ErrInvalidArgument},
		{"not base32", "1" + a.String()[1:], ErrInvalidArgument},
		{"not hex", strings.Repeat("Z", 48), ErrInvalidArgument},
		{"checksum", badChecksum.String(), ErrInvalidArgument},
		{"network", ToHex(badNetwork[:]), ErrUnknownEnumValue},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := ParseAddress(testCase.input)
			assert.ErrorIs(t, err, testCase.want)
		})
	}
}

func TestAddress_MarshalJSON(t *testing.T) {
	a := NewAddress(testKeyPair(t, 8).PublicKey(), NetworkTypeTestNet)

	b, err := json.Marshal(struct {
		Recipient Address `json:"recipient"`
	}{a})
	require.NoError(t, err)
	assert.Equal(t, `{"recipient":"`+a.String()+`"}`, string(b))
}

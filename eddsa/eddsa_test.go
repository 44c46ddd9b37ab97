package eddsa

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexdcox/symbol-go/edwards"
	"github.com/alexdcox/symbol-go/fault"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestSign_RFC8032Vectors(t *testing.T) {
	testCases := []struct {
		seed      string
		publicKey string
		message   string
		signature string
	}{
		{
			seed:      "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			publicKey: "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
			message:   "",
			signature: "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
		},
		{
			seed:      "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
			publicKey: "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
			message:   "72",
			signature: "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00",
		},
	}

	for _, testCase := range testCases {
		kp, err := NewKeyPairFromSeed(mustHex(t, testCase.seed))
		require.NoError(t, err)

		pub := kp.PublicKey()
		assert.Equal(t, testCase.publicKey, hex.EncodeToString(pub[:]))

		message := mustHex(t, testCase.message)
		sig := Sign(kp, message)
		assert.Equal(t, testCase.signature, hex.EncodeToString(sig[:]))

		ok, err := Verify(pub[:], message, sig[:])
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSign_MatchesStandardLibrary(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 30; i++ {
		seed := make([]byte, SeedSize)
		r.Read(seed)
		message := make([]byte, r.Intn(300))
		r.Read(message)

		kp, err := NewKeyPairFromSeed(seed)
		require.NoError(t, err)

		std := ed25519.NewKeyFromSeed(seed)
		pub := kp.PublicKey()
		assert.Equal(t, []byte(std.Public().(ed25519.PublicKey)), pub[:])

		sig := kp.Sign(message)
		assert.Equal(t, ed25519.Sign(std, message), sig[:])

		ok, err := Verify(pub[:], message, sig[:])
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSign_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, SeedSize)

	for _, engine := range []*Engine{NewEngine(SHA2_512), NewEngine(SHA3_512)} {
		a, err := engine.NewKeyPairFromSeed(seed)
		require.NoError(t, err)
		b, err := engine.NewKeyPairFromSeed(seed)
		require.NoError(t, err)

		assert.Equal(t, a.PublicKey(), b.PublicKey())
		assert.Equal(t, a.Sign([]byte("payload")), b.Sign([]byte("payload")))
	}
}

func TestSign_SHA3Engine(t *testing.T) {
	engine := NewEngine(SHA3_512)
	seed := bytes.Repeat([]byte{0x42}, SeedSize)

	kp, err := engine.NewKeyPairFromSeed(seed)
	require.NoError(t, err)

	std, err := NewKeyPairFromSeed(seed)
	require.NoError(t, err)
	assert.NotEqual(t, std.PublicKey(), kp.PublicKey(), "hash choice must change the derived key")

	message := []byte("catapult")
	sig := Sign(kp, message)
	pub := kp.PublicKey()

	ok, err := engine.Verify(pub[:], message, sig[:])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Default.Verify(pub[:], message, sig[:])
	require.NoError(t, err)
	assert.False(t, ok, "signature must not verify under the other hash")
}

func TestVerify_RejectsTampering(t *testing.T) {
	kp, err := NewKeyPairFromSeed(bytes.Repeat([]byte{1}, SeedSize))
	require.NoError(t, err)

	message := []byte("transfer 100 symbol.xym")
	sig := kp.Sign(message)
	pub := kp.PublicKey()

	for i := 0; i < len(message)*8; i++ {
		flipped := append([]byte(nil), message...)
		flipped[i/8] ^= 1 << (i % 8)
		ok, err := Verify(pub[:], flipped, sig[:])
		require.NoError(t, err)
		assert.False(t, ok, "message bit %d", i)
	}

	for i := 0; i < SignatureSize*8; i++ {
		flipped := sig
		flipped[i/8] ^= 1 << (i % 8)
		ok, err := Verify(pub[:], message, flipped[:])
		require.NoError(t, err)
		assert.False(t, ok, "signature bit %d", i)
	}

	other, err := NewKeyPairFromSeed(bytes.Repeat([]byte{2}, SeedSize))
	require.NoError(t, err)
	otherPub := other.PublicKey()
	ok, err := Verify(otherPub[:], message, sig[:])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_NonCanonicalS(t *testing.T) {
	kp, err := NewKeyPairFromSeed(bytes.Repeat([]byte{3}, SeedSize))
	require.NoError(t, err)

	message := []byte("malleable")
	sig := kp.Sign(message)
	pub := kp.PublicKey()

	// S + L verifies under the group law but must be refused.
	var S edwards.Scalar
	copy(S[:], sig[32:])
	order := edwards.GroupOrder()
	var carry uint16
	for i := range S {
		v := uint16(S[i]) + uint16(order[i]) + carry
		S[i] = byte(v)
		carry = v >> 8
	}
	require.Zero(t, carry)

	malleated := sig
	copy(malleated[32:], S[:])
	ok, err := Verify(pub[:], message, malleated[:])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_BadInputs(t *testing.T) {
	kp, err := NewKeyPairFromSeed(bytes.Repeat([]byte{4}, SeedSize))
	require.NoError(t, err)
	message := []byte("x")
	sig := kp.Sign(message)
	pub := kp.PublicKey()

	_, err = Verify(pub[:31], message, sig[:])
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)

	_, err = Verify(pub[:], message, sig[:63])
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)

	// Undecodable public key.
	bad := make([]byte, PublicKeySize)
	for i := range bad {
		bad[i] = 0xff
	}
	ok, err := Verify(bad, message, sig[:])
	require.NoError(t, err)
	assert.False(t, ok)

	// The identity is a valid encoding but has small order.
	identity := make([]byte, PublicKeySize)
	identity[0] = 1
	ok, err = Verify(identity, message, sig[:])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewKeyPair_InvalidSeed(t *testing.T) {
	for _, n := range []int{0, 31, 33, 64} {
		_, err := NewKeyPairFromSeed(make([]byte, n))
		assert.ErrorIs(t, err, fault.ErrInvalidArgument, "seed of %d bytes", n)
	}

	_, err := NewKeyPairFromPrivateKey("not hex")
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

func TestNewKeyPairFromPrivateKey(t *testing.T) {
	seed := "9D61B19DEFFD5A60BA844AF492EC2CC44449C5697B326919703BAC031CAE7F60"
	kp, err := NewKeyPairFromPrivateKey(seed)
	require.NoError(t, err)
	assert.Equal(t, seed, kp.PrivateKey())
	assert.Equal(t, "D75A980182B10AB7D54BFED3C964073A0EE172F3DAA62325AF021A68F707511A", kp.PublicKey().String())

	pub, err := PublicKeyFromHex(kp.PublicKey().String())
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), pub)
}

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair(bytes.NewReader(bytes.Repeat([]byte{5}, SeedSize)))
	require.NoError(t, err)
	fromSeed, err := NewKeyPairFromSeed(bytes.Repeat([]byte{5}, SeedSize))
	require.NoError(t, err)
	assert.Equal(t, fromSeed.PublicKey(), kp.PublicKey())

	_, err = GenerateKeyPair(bytes.NewReader(make([]byte, 5)))
	assert.Error(t, err)

	a, err := GenerateKeyPair(nil)
	require.NoError(t, err)
	b, err := GenerateKeyPair(nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.PublicKey(), b.PublicKey())
}

func TestKeyPair_NeverPrintsSecret(t *testing.T) {
	kp, err := NewKeyPairFromPrivateKey("9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	require.NoError(t, err)

	secret := strings.ToLower(kp.PrivateKey())
	outputs := []string{
		kp.String(),
		fmt.Sprintf("%v", kp),
		fmt.Sprintf("%+v", kp),
		fmt.Sprintf("%#v", kp),
		fmt.Sprintf("%x", kp),
		fmt.Sprintf("%s", kp),
	}

	var logged bytes.Buffer
	logger := zerolog.New(&logged)
	logger.Info().Object("keyPair", kp).Msg("derived")
	outputs = append(outputs, logged.String())

	for _, out := range outputs {
		assert.NotContains(t, strings.ToLower(out), secret)
		assert.NotContains(t, strings.ToLower(out), secret[:16])
		assert.Contains(t, out, kp.PublicKey().String())
	}
}

func TestKeyPair_Zeroize(t *testing.T) {
	kp, err := NewKeyPairFromSeed(bytes.Repeat([]byte{9}, SeedSize))
	require.NoError(t, err)
	pub := kp.PublicKey()

	kp.Zeroize()
	assert.Equal(t, strings.Repeat("0", 64), kp.PrivateKey())
	assert.True(t, kp.secret.IsZero())
	assert.Equal(t, [32]byte{}, kp.prefix)
	assert.Equal(t, pub, kp.PublicKey())
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range []Algorithm{SHA2_512, SHA3_512} {
		parsed, err := ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, parsed)
	}

	_, err := ParseAlgorithm("md5")
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

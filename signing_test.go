package symbol

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexdcox/symbol-go/eddsa"
	"github.com/alexdcox/symbol-go/merkle"
)

var testGenerationHash = mustHash("49D6E1CE276A85B70EAFE52349AACCA389302E7A9754BCF1221E79494FC665A4")

func TestTransaction_SignAndVerify(t *testing.T) {
	kp := testKeyPair(t, 1)
	tx := NewTransaction(NetworkTypeTestNet, 1000, 0, &Transfer{
		Recipient: testAddress(t, 2),
		Message:   []byte("\x00memo"),
	})
	tx.MaxFee = tx.CalculateMaxFee(100, 0)
	assert.Equal(t, uint64(tx.Size()*100), tx.MaxFee)

	signed, err := tx.Sign(kp, testGenerationHash)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), signed.Signer)
	assert.Equal(t, TransactionTypeTransfer, signed.Type)
	assert.Equal(t, NetworkTypeTestNet, signed.Network)
	assert.Equal(t, kp.PublicKey(), tx.Signer)
	assert.Equal(t, signed.Payload[8:72], tx.Signature[:])

	ok, err := VerifyTransaction(nil, signed.Payload, testGenerationHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// Non aggregates sign everything from the version byte on.
	signing, err := SigningBytes(signed.Payload)
	require.NoError(t, err)
	assert.Equal(t, signed.Payload[108:], signing)

	// Plain Ed25519 agrees with the default engine.
	pub := kp.PublicKey()
	message := append(append([]byte{}, testGenerationHash[:]...), signing...)
	assert.True(t, ed25519.Verify(pub[:], message, signed.Payload[8:72]))

	other := MainNetParams.GenerationHashSeed
	ok, err = VerifyTransaction(nil, signed.Payload, other)
	require.NoError(t, err)
	assert.False(t, ok)

	tampered := append([]byte{}, signed.Payload...)
	tampered[len(tampered)-1] ^= 1
	ok, err = VerifyTransaction(nil, tampered, testGenerationHash)
	require.NoError(t, err)
	assert.False(t, ok)

	reencoded, err := tx.Serialize()
	require.NoError(t, err)
	assert.Equal(t, signed.Payload, reencoded)
}

func TestTransactionHash(t *testing.T) {
	kp := testKeyPair(t, 1)
	tx := NewTransaction(NetworkTypeTestNet, 1000, 200, &HashLock{Duration: 10})
	signed, err := tx.Sign(kp, testGenerationHash)
	require.NoError(t, err)

	hash, err := TransactionHash(signed.Payload, testGenerationHash)
	require.NoError(t, err)
	assert.Equal(t, signed.Hash, hash)

	other, err := TransactionHash(signed.Payload, MainNetParams.GenerationHashSeed)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)

	// A different signature changes the hash through R.
	resigned, err := SignPayload(testKeyPair(t, 2), signed.Payload, testGenerationHash)
	require.NoError(t, err)
	assert.NotEqual(t, signed.Hash, resigned.Hash)
}

func TestVerifyTransaction_Errors(t *testing.T) {
	tx := NewTransaction(NetworkTypeTestNet, 1, 1, &AccountKeyLink{})
	payload, err := tx.Serialize()
	require.NoError(t, err)

	_, err = VerifyTransaction(nil, payload, testGenerationHash)
	assert.ErrorIs(t, err, ErrNotSigned)

	_, err = VerifyTransaction(nil, payload[:64], testGenerationHash)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = SignPayload(testKeyPair(t, 1), payload[:64], testGenerationHash)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestVerifyTransaction_Engine(t *testing.T) {
	sha3Engine := eddsa.NewEngine(eddsa.SHA3_512)
	kp, err := sha3Engine.NewKeyPairFromSeed(make([]byte, eddsa.SeedSize))
	require.NoError(t, err)

	tx := NewTransaction(NetworkTypeTestNet, 1, 1, &AccountKeyLink{LinkAction: LinkActionLink})
	signed, err := tx.Sign(kp, testGenerationHash)
	require.NoError(t, err)

	ok, err := VerifyTransaction(sha3Engine, signed.Payload, testGenerationHash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyTransaction(nil, signed.Payload, testGenerationHash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAggregate_EndToEnd(t *testing.T) {
	initiator := testKeyPair(t, 1)
	alice := testKeyPair(t, 2)
	bob := testKeyPair(t, 3)

	inner := []*EmbeddedTransaction{
		NewEmbeddedTransaction(initiator.PublicKey(), NetworkTypeTestNet, &Transfer{
			Recipient: NewAddress(bob.PublicKey(), NetworkTypeTestNet),
			Mosaics:   []Mosaic{{ID: TestNetParams.CurrencyMosaicID, Amount: 5_000_000}},
			Message:   []byte("hello"),
		}),
		NewEmbeddedTransaction(alice.PublicKey(), NetworkTypeTestNet, &AccountKeyLink{
			LinkedPublicKey: testKeyPair(t, 4).PublicKey(),
			LinkAction:      LinkActionLink,
		}),
		NewEmbeddedTransaction(bob.PublicKey(), NetworkTypeTestNet, &AccountMetadata{
			TargetAddress:     NewAddress(bob.PublicKey(), NetworkTypeTestNet),
			ScopedMetadataKey: 42,
			ValueSizeDelta:    2,
			Value:             []byte("v1"),
		}),
	}

	aggregate, err := NewAggregate(false, inner...)
	require.NoError(t, err)

	var leaves []Hash
	for _, e := range inner {
		b, err := e.Serialize()
		require.NoError(t, err)
		leaves = append(leaves, merkle.LeafHash(b))
	}
	root, err := merkle.RootHash(leaves)
	require.NoError(t, err)
	assert.Equal(t, root, aggregate.TransactionsHash)

	tx := NewTransaction(NetworkTypeTestNet, 9_999, 0, aggregate)
	tx.MaxFee = tx.CalculateMaxFee(100, 2)

	signed, err := tx.Sign(initiator, testGenerationHash)
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeAggregateComplete, signed.Type)

	payload := signed.Payload
	// Inner transactions are 101, 81 and 86 bytes, each padded to 8.
	assert.Len(t, payload, 128+40+104+88+88)
	assert.Equal(t, uint32(104+88+88), binary.LittleEndian.Uint32(payload[160:]))
	assert.Equal(t, uint32(101), binary.LittleEndian.Uint32(payload[168:]))
	assert.Equal(t, []byte{0, 0, 0}, payload[168+101:168+104])
	assert.Equal(t, uint32(81), binary.LittleEndian.Uint32(payload[272:]))
	assert.Equal(t, uint32(86), binary.LittleEndian.Uint32(payload[360:]))

	signing, err := SigningBytes(payload)
	require.NoError(t, err)
	assert.Len(t, signing, 52)
	assert.Equal(t, aggregate.TransactionsHash[:], signing[20:])

	ok, err := VerifyTransaction(nil, payload, testGenerationHash)
	require.NoError(t, err)
	assert.True(t, ok)

	cosigned, err := signed.Cosign(alice)
	require.NoError(t, err)
	cosigned, err = cosigned.Cosign(bob)
	require.NoError(t, err)

	assert.Len(t, cosigned.Payload, len(payload)+2*CosignatureSize)
	assert.Equal(t, uint32(len(cosigned.Payload)), binary.LittleEndian.Uint32(cosigned.Payload))
	assert.Equal(t, signed.Hash, cosigned.Hash)

	hash, err := TransactionHash(cosigned.Payload, testGenerationHash)
	require.NoError(t, err)
	assert.Equal(t, signed.Hash, hash)

	ok, err = VerifyTransaction(nil, cosigned.Payload, testGenerationHash)
	require.NoError(t, err)
	assert.True(t, ok)

	decoded, err := DeserializeTransaction(cosigned.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(cosigned.Payload)*100), decoded.MaxFee)

	decodedAggregate, err := decoded.Aggregate()
	require.NoError(t, err)
	require.Len(t, decodedAggregate.Transactions, 3)
	assert.Equal(t, inner, decodedAggregate.Transactions)
	assert.NoError(t, decodedAggregate.VerifyTransactionsHash())

	require.Len(t, decodedAggregate.Cosignatures, 2)
	for i, signer := range []*eddsa.KeyPair{alice, bob} {
		c := decodedAggregate.Cosignatures[i]
		assert.Equal(t, signer.PublicKey(), c.Signer)
		assert.Zero(t, c.Version)

		ok, err := VerifyCosignature(nil, signed.Hash, c)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = VerifyCosignature(nil, Hash{1}, c)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	reencoded, err := decoded.Serialize()
	require.NoError(t, err)
	assert.Equal(t, cosigned.Payload, reencoded)

	// The signature covers the transactions hash only, so an altered inner
	// transaction still verifies but no longer matches the hash.
	tampered := append([]byte{}, cosigned.Payload...)
	tampered[168+96] ^= 1
	ok, err = VerifyTransaction(nil, tampered, testGenerationHash)
	require.NoError(t, err)
	assert.True(t, ok)

	decoded, err = DeserializeTransaction(tampered)
	require.NoError(t, err)
	decodedAggregate, err = decoded.Aggregate()
	require.NoError(t, err)
	assert.ErrorIs(t, decodedAggregate.VerifyTransactionsHash(), ErrTransactionsHash)
}

func TestAggregate_Malformed(t *testing.T) {
	aggregate, err := NewAggregate(true, NewEmbeddedTransaction(
		testKeyPair(t, 1).PublicKey(),
		NetworkTypeTestNet,
		&AccountKeyLink{LinkAction: LinkActionLink},
	))
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeAggregateBonded, aggregate.Type())

	payload, err := NewTransaction(NetworkTypeTestNet, 1, 1, aggregate).Serialize()
	require.NoError(t, err)
	require.Len(t, payload, 128+40+88)

	mutate := func(f func(b []byte)) []byte {
		b := append([]byte{}, payload...)
		f(b)
		return b
	}

	testCases := []struct {
		name    string
		payload []byte
		want    error
	}{
		{"non-zero padding", mutate(func(b []byte) { b[len(b)-1] = 1 }), ErrDecode},
		{"non-zero reserved", mutate(func(b []byte) { b[164] = 1 }), ErrDecode},
		{"payload size past end", mutate(func(b []byte) { b[160] += 8 }), ErrDecode},
		{"inner size past payload", mutate(func(b []byte) { b[168] += 8 }), ErrDecode},
		{"partial cosignature", append(append([]byte{}, payload...), make([]byte, 8)...), ErrDecode},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			b := testCase.payload
			binary.LittleEndian.PutUint32(b, uint32(len(b)))
			_, err := DeserializeTransaction(b)
			assert.ErrorIs(t, err, testCase.want)
		})
	}
}

func TestAppendCosignatures_NotAggregate(t *testing.T) {
	payload, err := NewTransaction(NetworkTypeTestNet, 1, 1, &HashLock{}).Serialize()
	require.NoError(t, err)

	_, err = AppendCosignatures(payload, Cosign(testKeyPair(t, 1), Hash{}))
	assert.ErrorIs(t, err, ErrNotAggregate)

	tx, err := DeserializeTransaction(payload)
	require.NoError(t, err)
	_, err = tx.Aggregate()
	assert.ErrorIs(t, err, ErrNotAggregate)
}

func TestCalculateMaxFee(t *testing.T) {
	aggregate, err := NewAggregate(true)
	require.NoError(t, err)
	tx := NewTransaction(NetworkTypeTestNet, 1, 0, aggregate)

	assert.Equal(t, uint64(168*10), tx.CalculateMaxFee(10, 0))
	assert.Equal(t, uint64((168+3*104)*10), tx.CalculateMaxFee(10, 3))

	aggregate.Cosignatures = make([]Cosignature, 2)
	assert.Equal(t, uint64((168+3*104)*10), tx.CalculateMaxFee(10, 3))
	assert.Equal(t, uint64((168+2*104)*10), tx.CalculateMaxFee(10, 1))

	transfer := NewTransaction(NetworkTypeTestNet, 1, 0, &Transfer{})
	assert.Equal(t, uint64(160*5), transfer.CalculateMaxFee(5, 4))
}

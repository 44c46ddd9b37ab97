package symbol

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/alexdcox/symbol-go/eddsa"
	"github.com/alexdcox/symbol-go/fault"
)

// An aggregate signs its header fields from the version byte through the
// transactions hash. Inner transactions are covered by that hash and
// cosignatures are left out so they can be added later.
const aggregateSigningSize = TransactionHeaderSize - signedDataOffset + len(Hash{})

// SignedTransaction is a serialized, signed transaction ready to announce.
type SignedTransaction struct {
	Payload []byte
	Hash    Hash
	Signer  eddsa.PublicKey
	Type    TransactionType
	Network NetworkType
}

func payloadType(payload []byte) (TransactionType, error) {
	if len(payload) < TransactionHeaderSize {
		return 0, fault.Short("transaction header", 0, TransactionHeaderSize, len(payload))
	}
	typ := TransactionType(binary.LittleEndian.Uint16(payload[typeOffset:]))
	return TransactionTypes.Resolve(typ)
}

// SigningBytes returns the part of payload a signature covers, without the
// generation hash prefix.
func SigningBytes(payload []byte) ([]byte, error) {
	typ, err := payloadType(payload)
	if err != nil {
		return nil, err
	}

	end := len(payload)
	if typ.IsAggregate() {
		end = signedDataOffset + aggregateSigningSize
		if len(payload) < end {
			return nil, fault.Short("transactions hash", TransactionHeaderSize, end-TransactionHeaderSize, len(payload)-TransactionHeaderSize)
		}
	}

	return append([]byte{}, payload[signedDataOffset:end]...), nil
}

func signingData(payload []byte, generationHash Hash) ([]byte, error) {
	signed, err := SigningBytes(payload)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, generationHash[:]...), signed...), nil
}

// TransactionHash is SHA3-256 over R, the signer, the generation hash and
// the signing bytes. It stays the same when cosignatures are added.
func TransactionHash(payload []byte, generationHash Hash) (h Hash, err error) {
	signed, err := SigningBytes(payload)
	if err != nil {
		return
	}

	hasher := sha3.New256()
	hasher.Write(payload[signatureOffset : signatureOffset+32])
	hasher.Write(payload[signerOffset : signerOffset+eddsa.PublicKeySize])
	hasher.Write(generationHash[:])
	hasher.Write(signed)
	hasher.Sum(h[:0])
	return
}

// SignPayload signs an already serialized transaction with kp. The signer
// field is overwritten with kp's public key.
func SignPayload(kp *eddsa.KeyPair, payload []byte, generationHash Hash) (*SignedTransaction, error) {
	typ, err := payloadType(payload)
	if err != nil {
		return nil, err
	}

	out := append([]byte{}, payload...)
	signer := kp.PublicKey()
	copy(out[signerOffset:], signer[:])

	data, err := signingData(out, generationHash)
	if err != nil {
		return nil, err
	}
	signature := kp.Sign(data)
	copy(out[signatureOffset:], signature[:])

	hash, err := TransactionHash(out, generationHash)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("type", typ.String()).
		Str("hash", hash.String()).
		Object("signer", kp).
		Msg("signed transaction")

	return &SignedTransaction{
		Payload: out,
		Hash:    hash,
		Signer:  signer,
		Type:    typ,
		Network: NetworkType(out[typeOffset-1]),
	}, nil
}

// Sign sets the signer and signature of t and returns the signed payload.
func (t *Transaction) Sign(kp *eddsa.KeyPair, generationHash Hash) (*SignedTransaction, error) {
	t.Signer = kp.PublicKey()
	payload, err := t.Serialize()
	if err != nil {
		return nil, err
	}

	signed, err := SignPayload(kp, payload, generationHash)
	if err != nil {
		return nil, err
	}
	copy(t.Signature[:], signed.Payload[signatureOffset:])
	return signed, nil
}

// VerifyTransaction checks the signature of a serialized transaction against
// its signer field. A nil engine means eddsa.Default.
func VerifyTransaction(engine *eddsa.Engine, payload []byte, generationHash Hash) (bool, error) {
	if engine == nil {
		engine = eddsa.Default
	}

	data, err := signingData(payload, generationHash)
	if err != nil {
		return false, err
	}

	var signature eddsa.Signature
	copy(signature[:], payload[signatureOffset:])
	if signature == (eddsa.Signature{}) {
		return false, errors.WithStack(ErrNotSigned)
	}

	return engine.Verify(payload[signerOffset:signerOffset+eddsa.PublicKeySize], data, signature[:])
}

// Cosign signs the hash of an aggregate.
func Cosign(kp *eddsa.KeyPair, transactionHash Hash) Cosignature {
	return Cosignature{
		Version:   0,
		Signer:    kp.PublicKey(),
		Signature: kp.Sign(transactionHash[:]),
	}
}

// Cosign adds kp's cosignature to an aggregate. The hash does not change.
func (s *SignedTransaction) Cosign(kp *eddsa.KeyPair) (*SignedTransaction, error) {
	payload, err := AppendCosignatures(s.Payload, Cosign(kp, s.Hash))
	if err != nil {
		return nil, err
	}
	out := *s
	out.Payload = payload
	return &out, nil
}

// VerifyCosignature checks c against the aggregate hash it claims to sign.
// A nil engine means eddsa.Default.
func VerifyCosignature(engine *eddsa.Engine, transactionHash Hash, c Cosignature) (bool, error) {
	if engine == nil {
		engine = eddsa.Default
	}
	return engine.Verify(c.Signer[:], transactionHash[:], c.Signature[:])
}

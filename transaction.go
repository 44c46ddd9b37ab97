package symbol

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/alexdcox/symbol-go/catbuffer"
	"github.com/alexdcox/symbol-go/eddsa"
	"github.com/alexdcox/symbol-go/fault"
)

const (
	TransactionHeaderSize = 128
	EmbeddedHeaderSize    = 48

	// Offset of the version byte, where the signed part of a transaction
	// starts.
	signedDataOffset = 108
	signatureOffset  = 8
	signerOffset     = 72
	typeOffset       = 110
)

type TransactionType uint16

const (
	TransactionTypeAccountKeyLink            TransactionType = 0x414C
	TransactionTypeAccountMetadata           TransactionType = 0x4144
	TransactionTypeAccountAddressRestriction TransactionType = 0x4150
	TransactionTypeMosaicGlobalRestriction   TransactionType = 0x4151
	TransactionTypeMosaicAddressRestriction  TransactionType = 0x4251
	TransactionTypeHashLock                  TransactionType = 0x4148
	TransactionTypeSecretLock                TransactionType = 0x4152
	TransactionTypeTransfer                  TransactionType = 0x4154
	TransactionTypeAggregateComplete         TransactionType = 0x4141
	TransactionTypeAggregateBonded           TransactionType = 0x4241
)

var TransactionTypes = catbuffer.NewLookup(
	"transaction type",
	TransactionTypeTransfer,
	TransactionTypeAccountKeyLink,
	TransactionTypeAccountMetadata,
	TransactionTypeAccountAddressRestriction,
	TransactionTypeMosaicGlobalRestriction,
	TransactionTypeMosaicAddressRestriction,
	TransactionTypeHashLock,
	TransactionTypeSecretLock,
	TransactionTypeAggregateComplete,
	TransactionTypeAggregateBonded,
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeTransfer:
		return "transfer"
	case TransactionTypeAccountKeyLink:
		return "account key link"
	case TransactionTypeAccountMetadata:
		return "account metadata"
	case TransactionTypeAccountAddressRestriction:
		return "account address restriction"
	case TransactionTypeMosaicGlobalRestriction:
		return "mosaic global restriction"
	case TransactionTypeMosaicAddressRestriction:
		return "mosaic address restriction"
	case TransactionTypeHashLock:
		return "hash lock"
	case TransactionTypeSecretLock:
		return "secret lock"
	case TransactionTypeAggregateComplete:
		return "aggregate complete"
	case TransactionTypeAggregateBonded:
		return "aggregate bonded"
	default:
		return fmt.Sprintf("TransactionType(0x%04X)", uint16(t))
	}
}

func (t TransactionType) IsAggregate() bool {
	return t == TransactionTypeAggregateComplete || t == TransactionTypeAggregateBonded
}

// Body is the type specific part of a transaction.
type Body interface {
	Type() TransactionType
	schema() catbuffer.Schema
}

// newBody returns an empty body for typ, ready to be decoded into.
func newBody(typ TransactionType) (Body, error) {
	switch typ {
	case TransactionTypeTransfer:
		return new(Transfer), nil
	case TransactionTypeAccountKeyLink:
		return new(AccountKeyLink), nil
	case TransactionTypeAccountMetadata:
		return new(AccountMetadata), nil
	case TransactionTypeAccountAddressRestriction:
		return new(AccountAddressRestriction), nil
	case TransactionTypeMosaicGlobalRestriction:
		return new(MosaicGlobalRestriction), nil
	case TransactionTypeMosaicAddressRestriction:
		return new(MosaicAddressRestriction), nil
	case TransactionTypeHashLock:
		return new(HashLock), nil
	case TransactionTypeSecretLock:
		return new(SecretLock), nil
	case TransactionTypeAggregateComplete:
		return &Aggregate{}, nil
	case TransactionTypeAggregateBonded:
		return &Aggregate{Bonded: true}, nil
	}
	return nil, errors.Wrapf(ErrUnknownTransaction, "%s", typ)
}

// DefaultVersion is the body version this package writes for typ.
func DefaultVersion(TransactionType) uint8 {
	return 1
}

// Transaction is a top level transaction: header, fee, deadline and body.
type Transaction struct {
	Signature eddsa.Signature
	Signer    eddsa.PublicKey
	Version   uint8
	Network   NetworkType
	MaxFee    uint64
	Deadline  Deadline
	Body      Body
}

// NewTransaction fills in the version for body's type.
func NewTransaction(network NetworkType, deadline Deadline, maxFee uint64, body Body) *Transaction {
	return &Transaction{
		Version:  DefaultVersion(body.Type()),
		Network:  network,
		MaxFee:   maxFee,
		Deadline: deadline,
		Body:     body,
	}
}

func (t *Transaction) Type() TransactionType {
	if t.Body == nil {
		return 0
	}
	return t.Body.Type()
}

func (t *Transaction) headerSchema(size *uint32, typ *TransactionType) catbuffer.Schema {
	return catbuffer.Schema{
		catbuffer.Uint32("size", size),
		catbuffer.Reserved("verifiableEntityHeader_Reserved1", 4),
		catbuffer.Array("signature", t.Signature[:]),
		catbuffer.Array("signer", t.Signer[:]),
		catbuffer.Reserved("entityBody_Reserved1", 4),
		catbuffer.Uint8("version", &t.Version),
		catbuffer.Enum8("network", &t.Network, NetworkTypes),
		catbuffer.Enum16("type", typ, TransactionTypes),
		catbuffer.Uint64("maxFee", &t.MaxFee),
		catbuffer.Uint64("deadline", (*uint64)(&t.Deadline)),
	}
}

// Size is the serialized length in bytes.
func (t *Transaction) Size() int {
	var size uint32
	typ := t.Type()
	n := t.headerSchema(&size, &typ).Size()
	if t.Body != nil {
		n += t.Body.schema().Size()
	}
	return n
}

// Serialize writes the header and body in layout order and sets the size
// field to the resulting length.
func (t *Transaction) Serialize() ([]byte, error) {
	if t.Body == nil {
		return nil, errors.WithStack(ErrMissingBody)
	}

	var size uint32
	typ := t.Body.Type()
	schema := append(t.headerSchema(&size, &typ), t.Body.schema()...)

	w := catbuffer.NewWriter(schema.Size())
	if err := schema.Encode(w); err != nil {
		return nil, errors.Wrapf(err, "failed to serialize %s transaction", typ)
	}
	if err := w.PatchUint32(0, uint32(w.Len())); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// DeserializeTransaction decodes a top level transaction. The size field
// must match len(payload) exactly.
func DeserializeTransaction(payload []byte) (*Transaction, error) {
	r := catbuffer.NewReader(payload)

	t := new(Transaction)
	var size uint32
	var typ TransactionType
	if err := t.headerSchema(&size, &typ).Decode(r); err != nil {
		return nil, err
	}
	if int(size) != len(payload) {
		return nil, fault.Malformed("size", 0, "size field is %d but the payload has %d bytes", size, len(payload))
	}

	body, err := newBody(typ)
	if err != nil {
		return nil, fault.UnknownEnumValue("transaction type", uint64(typ))
	}
	if err = body.schema().Decode(r); err != nil {
		return nil, err
	}
	if err = r.Done("transaction"); err != nil {
		return nil, err
	}
	t.Body = body

	log.Trace().
		Str("type", typ.String()).
		Int("size", len(payload)).
		Msg("decoded transaction")

	return t, nil
}

// EmbeddedTransaction is a transaction inside an aggregate. It has no
// signature, fee or deadline of its own.
type EmbeddedTransaction struct {
	Signer  eddsa.PublicKey
	Version uint8
	Network NetworkType
	Body    Body
}

func NewEmbeddedTransaction(signer eddsa.PublicKey, network NetworkType, body Body) *EmbeddedTransaction {
	return &EmbeddedTransaction{
		Signer:  signer,
		Version: DefaultVersion(body.Type()),
		Network: network,
		Body:    body,
	}
}

func (e *EmbeddedTransaction) Type() TransactionType {
	if e.Body == nil {
		return 0
	}
	return e.Body.Type()
}

func (e *EmbeddedTransaction) headerSchema(size *uint32, typ *TransactionType) catbuffer.Schema {
	return catbuffer.Schema{
		catbuffer.Uint32("size", size),
		catbuffer.Reserved("embeddedTransactionHeader_Reserved1", 4),
		catbuffer.Array("signer", e.Signer[:]),
		catbuffer.Reserved("entityBody_Reserved1", 4),
		catbuffer.Uint8("version", &e.Version),
		catbuffer.Enum8("network", &e.Network, NetworkTypes),
		catbuffer.Enum16("type", typ, TransactionTypes),
	}
}

func (e *EmbeddedTransaction) Size() int {
	n := EmbeddedHeaderSize
	if e.Body != nil {
		n += e.Body.schema().Size()
	}
	return n
}

func (e *EmbeddedTransaction) encode(w *catbuffer.Writer) error {
	if e.Body == nil {
		return errors.WithStack(ErrMissingBody)
	}
	typ := e.Body.Type()
	if typ.IsAggregate() {
		return errors.WithStack(ErrEmbeddedAggregate)
	}

	size := uint32(e.Size())
	schema := append(e.headerSchema(&size, &typ), e.Body.schema()...)

	start := w.Len()
	if err := schema.Encode(w); err != nil {
		return errors.Wrapf(err, "failed to serialize embedded %s transaction", typ)
	}
	return w.PatchUint32(start, uint32(w.Len()-start))
}

// Serialize returns the unpadded embedded form, which is also what the
// aggregate's Merkle leaves hash.
func (e *EmbeddedTransaction) Serialize() ([]byte, error) {
	w := catbuffer.NewWriter(e.Size())
	if err := e.encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func decodeEmbedded(r *catbuffer.Reader) (*EmbeddedTransaction, error) {
	prefix, err := r.PeekBytes("embedded transaction size", 4)
	if err != nil {
		return nil, err
	}
	size := int(binary.LittleEndian.Uint32(prefix))

	sub, err := r.Sub("embedded transaction", size)
	if err != nil {
		return nil, err
	}

	e := new(EmbeddedTransaction)
	var decodedSize uint32
	var typ TransactionType
	if err = e.headerSchema(&decodedSize, &typ).Decode(sub); err != nil {
		return nil, err
	}
	if typ.IsAggregate() {
		return nil, fault.Malformed("type", sub.Offset()-2, "%s", ErrEmbeddedAggregate)
	}

	body, err := newBody(typ)
	if err != nil {
		return nil, fault.UnknownEnumValue("transaction type", uint64(typ))
	}
	if err = body.schema().Decode(sub); err != nil {
		return nil, err
	}
	if err = sub.Done("embedded transaction"); err != nil {
		return nil, err
	}
	e.Body = body

	return e, nil
}

// DeserializeEmbedded decodes a single unpadded embedded transaction.
func DeserializeEmbedded(payload []byte) (*EmbeddedTransaction, error) {
	r := catbuffer.NewReader(payload)
	e, err := decodeEmbedded(r)
	if err != nil {
		return nil, err
	}
	if err = r.Done("embedded transaction"); err != nil {
		return nil, err
	}
	return e, nil
}

var embeddedCodec = catbuffer.Codec[*EmbeddedTransaction]{
	Size:   func(e *EmbeddedTransaction) int { return e.Size() },
	Encode: func(w *catbuffer.Writer, e *EmbeddedTransaction) error { return e.encode(w) },
	Decode: decodeEmbedded,
}

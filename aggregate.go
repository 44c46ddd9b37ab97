package symbol

import (
	"github.com/pkg/errors"

	"github.com/alexdcox/symbol-go/catbuffer"
	"github.com/alexdcox/symbol-go/eddsa"
	"github.com/alexdcox/symbol-go/merkle"
)

const (
	CosignatureSize = 104

	innerTransactionAlignment = 8
)

// Cosignature is an additional signature over an aggregate's hash.
type Cosignature struct {
	Version   uint64
	Signer    eddsa.PublicKey
	Signature eddsa.Signature
}

func cosignatureSchema(c *Cosignature) catbuffer.Schema {
	return catbuffer.Schema{
		catbuffer.Uint64("version", &c.Version),
		catbuffer.Array("signerPublicKey", c.Signer[:]),
		catbuffer.Array("signature", c.Signature[:]),
	}
}

var cosignatureCodec = catbuffer.RecordCodec(cosignatureSchema)

// Aggregate bundles embedded transactions that succeed or fail together.
// A complete aggregate carries every signature it needs; a bonded one
// collects cosignatures after announcement.
type Aggregate struct {
	Bonded           bool
	TransactionsHash Hash
	Transactions     []*EmbeddedTransaction
	Cosignatures     []Cosignature
}

// NewAggregate builds an aggregate and commits to its inner transactions.
func NewAggregate(bonded bool, transactions ...*EmbeddedTransaction) (*Aggregate, error) {
	a := &Aggregate{Bonded: bonded, Transactions: transactions}
	if err := a.UpdateTransactionsHash(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Aggregate) Type() TransactionType {
	if a.Bonded {
		return TransactionTypeAggregateBonded
	}
	return TransactionTypeAggregateComplete
}

func (a *Aggregate) schema() catbuffer.Schema {
	var payloadSize catbuffer.Count
	return catbuffer.Schema{
		catbuffer.Array("transactionsHash", a.TransactionsHash[:]),
		catbuffer.CountUint32("payloadSize", &payloadSize),
		catbuffer.Reserved("aggregateTransactionHeader_Reserved1", 4),
		catbuffer.SizedRecords("transactions", &payloadSize, &a.Transactions, embeddedCodec, innerTransactionAlignment),
		catbuffer.TrailingRecords("cosignatures", &a.Cosignatures, cosignatureCodec),
	}
}

// CalculateTransactionsHash returns the Merkle root over the unpadded inner
// transactions, or the zero hash when there are none.
func (a *Aggregate) CalculateTransactionsHash() (Hash, error) {
	var builder merkle.Builder
	for i, tx := range a.Transactions {
		b, err := tx.Serialize()
		if err != nil {
			return Hash{}, errors.Wrapf(err, "failed to serialize inner transaction %d", i)
		}
		builder.UpdateData(b)
	}
	return builder.Final(), nil
}

func (a *Aggregate) UpdateTransactionsHash() (err error) {
	a.TransactionsHash, err = a.CalculateTransactionsHash()
	return
}

// VerifyTransactionsHash fails with ErrTransactionsHash when the stored
// hash does not commit to the inner transactions.
func (a *Aggregate) VerifyTransactionsHash() error {
	want, err := a.CalculateTransactionsHash()
	if err != nil {
		return err
	}
	if want != a.TransactionsHash {
		return errors.Wrapf(ErrTransactionsHash, "stored %s, calculated %s", a.TransactionsHash, want)
	}
	return nil
}

// Aggregate returns the body of an aggregate transaction.
func (t *Transaction) Aggregate() (*Aggregate, error) {
	a, ok := t.Body.(*Aggregate)
	if !ok {
		return nil, errors.Wrapf(ErrNotAggregate, "%s", t.Type())
	}
	return a, nil
}

// CalculateMaxFee returns size * feeMultiplier. For aggregates the size
// counts at least requiredCosignatures cosignatures, so the fee still
// covers cosignatures that are added later.
func (t *Transaction) CalculateMaxFee(feeMultiplier uint64, requiredCosignatures int) uint64 {
	size := t.Size()
	if a, ok := t.Body.(*Aggregate); ok && requiredCosignatures > len(a.Cosignatures) {
		size += (requiredCosignatures - len(a.Cosignatures)) * CosignatureSize
	}
	return uint64(size) * feeMultiplier
}

// AppendCosignatures adds cosignatures to a serialized aggregate and fixes
// its size field. The signature and hash of the aggregate are unaffected.
func AppendCosignatures(payload []byte, cosignatures ...Cosignature) ([]byte, error) {
	typ, err := payloadType(payload)
	if err != nil {
		return nil, err
	}
	if !typ.IsAggregate() {
		return nil, errors.Wrapf(ErrNotAggregate, "%s", typ)
	}

	w := catbuffer.NewWriter(len(payload) + len(cosignatures)*CosignatureSize)
	w.Write(payload)
	for i := range cosignatures {
		if err = cosignatureSchema(&cosignatures[i]).Encode(w); err != nil {
			return nil, err
		}
	}
	if err = w.PatchUint32(0, uint32(w.Len())); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

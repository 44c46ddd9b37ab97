package symbol

import (
	"github.com/alexdcox/symbol-go/catbuffer"
	"github.com/alexdcox/symbol-go/eddsa"
)

type MosaicID uint64

type Mosaic struct {
	ID     MosaicID
	Amount uint64
}

func mosaicSchema(m *Mosaic) catbuffer.Schema {
	return catbuffer.Schema{
		catbuffer.Uint64("mosaicId", (*uint64)(&m.ID)),
		catbuffer.Uint64("amount", &m.Amount),
	}
}

var mosaicCodec = catbuffer.RecordCodec(mosaicSchema)

// Transfer moves mosaics and an optional message to a recipient.
type Transfer struct {
	Recipient Address
	Mosaics   []Mosaic
	Message   []byte
}

func (*Transfer) Type() TransactionType { return TransactionTypeTransfer }

func (b *Transfer) schema() catbuffer.Schema {
	var messageSize, mosaicsCount catbuffer.Count
	return catbuffer.Schema{
		catbuffer.Array("recipientAddress", b.Recipient[:]),
		catbuffer.CountUint16("messageSize", &messageSize),
		catbuffer.CountUint8("mosaicsCount", &mosaicsCount),
		catbuffer.Reserved("transferTransactionBody_Reserved1", 4),
		catbuffer.Reserved("transferTransactionBody_Reserved2", 1),
		catbuffer.Records("mosaics", &mosaicsCount, &b.Mosaics, mosaicCodec),
		catbuffer.SizedBytes("message", &messageSize, &b.Message),
	}
}

type LinkAction uint8

const (
	LinkActionUnlink LinkAction = 0
	LinkActionLink   LinkAction = 1
)

var LinkActions = catbuffer.NewLookup("link action", LinkActionUnlink, LinkActionLink)

func (a LinkAction) String() string {
	switch a {
	case LinkActionUnlink:
		return "unlink"
	case LinkActionLink:
		return "link"
	default:
		return "invalid"
	}
}

// AccountKeyLink delegates account importance to a remote public key.
type AccountKeyLink struct {
	LinkedPublicKey eddsa.PublicKey
	LinkAction      LinkAction
}

func (*AccountKeyLink) Type() TransactionType { return TransactionTypeAccountKeyLink }

func (b *AccountKeyLink) schema() catbuffer.Schema {
	return catbuffer.Schema{
		catbuffer.Array("linkedPublicKey", b.LinkedPublicKey[:]),
		catbuffer.Enum8("linkAction", &b.LinkAction, LinkActions),
	}
}

// AccountMetadata attaches a value under a key to the target account.
// ValueSizeDelta is the change in size against the value already stored.
type AccountMetadata struct {
	TargetAddress     Address
	ScopedMetadataKey uint64
	ValueSizeDelta    int16
	Value             []byte
}

func (*AccountMetadata) Type() TransactionType { return TransactionTypeAccountMetadata }

func (b *AccountMetadata) schema() catbuffer.Schema {
	var valueSize catbuffer.Count
	return catbuffer.Schema{
		catbuffer.Array("targetAddress", b.TargetAddress[:]),
		catbuffer.Uint64("scopedMetadataKey", &b.ScopedMetadataKey),
		catbuffer.Int16("valueSizeDelta", &b.ValueSizeDelta),
		catbuffer.CountUint16("valueSize", &valueSize),
		catbuffer.SizedBytes("value", &valueSize, &b.Value),
	}
}

// AccountRestrictionFlags combines the restricted value kind (address),
// the direction and whether matches are allowed or blocked. Only the
// combinations valid for address restrictions are accepted.
type AccountRestrictionFlags uint16

const (
	AccountRestrictionFlagAddress  AccountRestrictionFlags = 0x0001
	AccountRestrictionFlagOutgoing AccountRestrictionFlags = 0x4000
	AccountRestrictionFlagBlock    AccountRestrictionFlags = 0x8000

	AllowIncomingAddress = AccountRestrictionFlagAddress
	AllowOutgoingAddress = AccountRestrictionFlagAddress | AccountRestrictionFlagOutgoing
	BlockIncomingAddress = AccountRestrictionFlagAddress | AccountRestrictionFlagBlock
	BlockOutgoingAddress = AccountRestrictionFlagAddress | AccountRestrictionFlagBlock | AccountRestrictionFlagOutgoing
)

var AccountAddressRestrictionFlags = catbuffer.NewLookup(
	"account address restriction flags",
	AllowIncomingAddress,
	AllowOutgoingAddress,
	BlockIncomingAddress,
	BlockOutgoingAddress,
)

// AccountAddressRestriction edits the list of addresses the signer accepts
// transactions from or sends them to.
type AccountAddressRestriction struct {
	RestrictionFlags AccountRestrictionFlags
	Additions        []Address
	Deletions        []Address
}

func (*AccountAddressRestriction) Type() TransactionType {
	return TransactionTypeAccountAddressRestriction
}

func (b *AccountAddressRestriction) schema() catbuffer.Schema {
	var additions, deletions catbuffer.Count
	return catbuffer.Schema{
		catbuffer.Enum16("restrictionFlags", &b.RestrictionFlags, AccountAddressRestrictionFlags),
		catbuffer.CountUint8("restrictionAdditionsCount", &additions),
		catbuffer.CountUint8("restrictionDeletionsCount", &deletions),
		catbuffer.Reserved("accountRestrictionTransactionBody_Reserved1", 4),
		catbuffer.Records("restrictionAdditions", &additions, &b.Additions, addressCodec),
		catbuffer.Records("restrictionDeletions", &deletions, &b.Deletions, addressCodec),
	}
}

type MosaicRestrictionType uint8

const (
	MosaicRestrictionTypeNone MosaicRestrictionType = iota
	MosaicRestrictionTypeEQ
	MosaicRestrictionTypeNE
	MosaicRestrictionTypeLT
	MosaicRestrictionTypeLE
	MosaicRestrictionTypeGT
	MosaicRestrictionTypeGE
)

var MosaicRestrictionTypes = catbuffer.NewLookup(
	"mosaic restriction type",
	MosaicRestrictionTypeNone,
	MosaicRestrictionTypeEQ,
	MosaicRestrictionTypeNE,
	MosaicRestrictionTypeLT,
	MosaicRestrictionTypeLE,
	MosaicRestrictionTypeGT,
	MosaicRestrictionTypeGE,
)

// MosaicGlobalRestriction sets the rule accounts must satisfy to hold or
// move a mosaic.
type MosaicGlobalRestriction struct {
	MosaicID                 MosaicID
	ReferenceMosaicID        MosaicID
	RestrictionKey           uint64
	PreviousRestrictionValue uint64
	NewRestrictionValue      uint64
	PreviousRestrictionType  MosaicRestrictionType
	NewRestrictionType       MosaicRestrictionType
}

func (*MosaicGlobalRestriction) Type() TransactionType {
	return TransactionTypeMosaicGlobalRestriction
}

func (b *MosaicGlobalRestriction) schema() catbuffer.Schema {
	return catbuffer.Schema{
		catbuffer.Uint64("mosaicId", (*uint64)(&b.MosaicID)),
		catbuffer.Uint64("referenceMosaicId", (*uint64)(&b.ReferenceMosaicID)),
		catbuffer.Uint64("restrictionKey", &b.RestrictionKey),
		catbuffer.Uint64("previousRestrictionValue", &b.PreviousRestrictionValue),
		catbuffer.Uint64("newRestrictionValue", &b.NewRestrictionValue),
		catbuffer.Enum8("previousRestrictionType", &b.PreviousRestrictionType, MosaicRestrictionTypes),
		catbuffer.Enum8("newRestrictionType", &b.NewRestrictionType, MosaicRestrictionTypes),
	}
}

// MosaicAddressRestriction sets the value an account holds for a
// restriction key of a mosaic.
type MosaicAddressRestriction struct {
	MosaicID                 MosaicID
	RestrictionKey           uint64
	PreviousRestrictionValue uint64
	NewRestrictionValue      uint64
	TargetAddress            Address
}

func (*MosaicAddressRestriction) Type() TransactionType {
	return TransactionTypeMosaicAddressRestriction
}

func (b *MosaicAddressRestriction) schema() catbuffer.Schema {
	return catbuffer.Schema{
		catbuffer.Uint64("mosaicId", (*uint64)(&b.MosaicID)),
		catbuffer.Uint64("restrictionKey", &b.RestrictionKey),
		catbuffer.Uint64("previousRestrictionValue", &b.PreviousRestrictionValue),
		catbuffer.Uint64("newRestrictionValue", &b.NewRestrictionValue),
		catbuffer.Array("targetAddress", b.TargetAddress[:]),
	}
}

// HashLock locks funds as a deposit for an aggregate bonded transaction
// identified by Hash.
type HashLock struct {
	Mosaic   Mosaic
	Duration uint64
	Hash     Hash
}

func (*HashLock) Type() TransactionType { return TransactionTypeHashLock }

func (b *HashLock) schema() catbuffer.Schema {
	return append(
		mosaicSchema(&b.Mosaic),
		catbuffer.Uint64("duration", &b.Duration),
		catbuffer.Array("hash", b.Hash[:]),
	)
}

type LockHashAlgorithm uint8

const (
	LockHashAlgorithmSHA3_256 LockHashAlgorithm = 0
	LockHashAlgorithmHash160  LockHashAlgorithm = 1
	LockHashAlgorithmHash256  LockHashAlgorithm = 2
)

var LockHashAlgorithms = catbuffer.NewLookup(
	"lock hash algorithm",
	LockHashAlgorithmSHA3_256,
	LockHashAlgorithmHash160,
	LockHashAlgorithmHash256,
)

// SecretLock locks funds for Recipient until the proof of Secret is
// revealed or Duration blocks pass.
type SecretLock struct {
	Recipient     Address
	Secret        Hash
	Mosaic        Mosaic
	Duration      uint64
	HashAlgorithm LockHashAlgorithm
}

func (*SecretLock) Type() TransactionType { return TransactionTypeSecretLock }

func (b *SecretLock) schema() catbuffer.Schema {
	schema := catbuffer.Schema{
		catbuffer.Array("recipientAddress", b.Recipient[:]),
		catbuffer.Array("secret", b.Secret[:]),
	}
	schema = append(schema, mosaicSchema(&b.Mosaic)...)
	return append(
		schema,
		catbuffer.Uint64("duration", &b.Duration),
		catbuffer.Enum8("hashAlgorithm", &b.HashAlgorithm, LockHashAlgorithms),
	)
}

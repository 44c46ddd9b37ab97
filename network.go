package symbol

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/alexdcox/symbol-go/catbuffer"
)

func init() {
	MainNetParams.Type = NetworkTypeMainNet
	MainNetParams.GenerationHashSeed = mustHash("57F7DA205008026C776CB6AED843393F04CD458E0AA2D9F1D5F31A402072B2D6")
	MainNetParams.EpochAdjustment = 1_615_853_185
	MainNetParams.CurrencyMosaicID = 0x6BED913FA20223F8

	TestNetParams.Type = NetworkTypeTestNet
	TestNetParams.GenerationHashSeed = mustHash("49D6E1CE276A85B70EAFE52349AACCA389302E7A9754BCF1221E79494FC665A4")
	TestNetParams.EpochAdjustment = 1_667_250_467
	TestNetParams.CurrencyMosaicID = 0x72C0212E67A08BCE
}

// NetworkParams are the per-network values a transaction commits to.
type NetworkParams struct {
	Type               NetworkType
	GenerationHashSeed Hash
	// EpochAdjustment is the network epoch in seconds since the Unix epoch.
	EpochAdjustment  uint64
	CurrencyMosaicID MosaicID
}

var MainNetParams = NetworkParams{}
var TestNetParams = NetworkParams{}

type NetworkType uint8

const (
	NetworkTypeMijin       NetworkType = 0x60
	NetworkTypeMainNet     NetworkType = 0x68
	NetworkTypePrivate     NetworkType = 0x78
	NetworkTypeMijinTest   NetworkType = 0x90
	NetworkTypeTestNet     NetworkType = 0x98
	NetworkTypePrivateTest NetworkType = 0xA8
)

var NetworkTypes = catbuffer.NewLookup(
	"network type",
	NetworkTypeMainNet,
	NetworkTypeTestNet,
	NetworkTypeMijin,
	NetworkTypeMijinTest,
	NetworkTypePrivate,
	NetworkTypePrivateTest,
)

// String returns the identifier a node reports in its network properties.
func (n NetworkType) String() string {
	switch n {
	case NetworkTypeMainNet:
		return "public"
	case NetworkTypeTestNet:
		return "public-test"
	case NetworkTypeMijin:
		return "mijin"
	case NetworkTypeMijinTest:
		return "mijin-test"
	case NetworkTypePrivate:
		return "private"
	case NetworkTypePrivateTest:
		return "private-test"
	default:
		return "invalid"
	}
}

func (n NetworkType) Validate() error {
	_, err := NetworkTypes.Resolve(n)
	return err
}

func (n NetworkType) Valid() bool {
	return n.Validate() == nil
}

// Params returns the built in parameters of the public networks.
func (n NetworkType) Params() (params *NetworkParams, err error) {
	switch n {
	case NetworkTypeMainNet:
		return &MainNetParams, nil
	case NetworkTypeTestNet:
		return &TestNetParams, nil
	}
	err = errors.Errorf("no built in parameters for network '%s'", n)
	return
}

// ParseNetworkType accepts a network identifier ("public", "testnet", ...)
// or a hex byte such as "0x98".
func ParseNetworkType(s string) (n NetworkType, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public", "mainnet":
		return NetworkTypeMainNet, nil
	case "public-test", "testnet":
		return NetworkTypeTestNet, nil
	case "mijin":
		return NetworkTypeMijin, nil
	case "mijin-test":
		return NetworkTypeMijinTest, nil
	case "private":
		return NetworkTypePrivate, nil
	case "private-test":
		return NetworkTypePrivateTest, nil
	}

	raw, decodeErr := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if decodeErr != nil || len(raw) != 1 {
		err = errors.Wrapf(ErrInvalidArgument, "invalid network: '%s'", s)
		return
	}
	n = NetworkType(raw[0])
	err = n.Validate()
	return
}

func mustHash(s string) (h Hash) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(h) {
		panic("invalid hash constant " + s)
	}
	copy(h[:], b)
	return
}

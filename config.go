package symbol

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/alexdcox/symbol-go/eddsa"
)

// Config is what the command line tools need to build and sign
// transactions for one network.
type Config struct {
	Network            NetworkType `json:"network"`
	GenerationHashSeed string      `json:"generationHashSeed"`
	EpochAdjustment    uint64      `json:"epochAdjustment"`
	SignatureHash      string      `json:"signatureHash"`
	LogLevel           string      `json:"logLevel"`
}

// Params resolves the configured network, letting explicit values override
// the built in ones.
func (c *Config) Params() (params *NetworkParams, err error) {
	if err = c.Network.Validate(); err != nil {
		return
	}

	params = &NetworkParams{Type: c.Network}
	if builtin, builtinErr := c.Network.Params(); builtinErr == nil {
		*params = *builtin
	}

	if c.GenerationHashSeed != "" {
		if params.GenerationHashSeed, err = ParseHash(c.GenerationHashSeed); err != nil {
			err = errors.Wrap(err, "invalid generation hash seed")
			return
		}
	}
	if c.EpochAdjustment != 0 {
		params.EpochAdjustment = c.EpochAdjustment
	}

	if params.GenerationHashSeed == (Hash{}) {
		err = errors.Errorf("network '%s' needs a generation hash seed", c.Network)
	}
	return
}

func (c *Config) Engine() (*eddsa.Engine, error) {
	alg, err := eddsa.ParseAlgorithm(c.SignatureHash)
	if err != nil {
		return nil, err
	}
	return eddsa.NewEngine(alg), nil
}

// LoadNetworkProperties reads the JSON a node serves on /network/properties
// and returns the parameters transactions need.
func LoadNetworkProperties(data []byte) (params *NetworkParams, err error) {
	if !gjson.ValidBytes(data) {
		err = errors.Wrap(ErrInvalidArgument, "network properties are not valid json")
		return
	}

	doc := gjson.ParseBytes(data)
	params = new(NetworkParams)

	identifier := doc.Get("network.identifier")
	if !identifier.Exists() {
		err = errors.Wrap(ErrInvalidArgument, "network properties have no network.identifier")
		return
	}
	if params.Type, err = ParseNetworkType(identifier.String()); err != nil {
		return
	}

	if params.GenerationHashSeed, err = ParseHash(doc.Get("network.generationHashSeed").String()); err != nil {
		err = errors.Wrap(err, "invalid network.generationHashSeed")
		return
	}

	if params.EpochAdjustment, err = parseSeconds(doc.Get("network.epochAdjustment").String()); err != nil {
		err = errors.Wrap(err, "invalid network.epochAdjustment")
		return
	}

	if currency := doc.Get("chain.currencyMosaicId"); currency.Exists() {
		var id uint64
		if id, err = parseConfigUint64(currency.String()); err != nil {
			err = errors.Wrap(err, "invalid chain.currencyMosaicId")
			return
		}
		params.CurrencyMosaicID = MosaicID(id)
	}

	log.Debug().
		Str("network", params.Type.String()).
		Uint64("epochAdjustment", params.EpochAdjustment).
		Msg("loaded network properties")

	return
}

func LoadNetworkPropertiesFile(path string) (*NetworkParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read network properties '%s'", path)
	}
	return LoadNetworkProperties(data)
}

// parseSeconds reads durations written the way node configuration writes
// them, such as "1615853185s".
func parseSeconds(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimSpace(s), "s"), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgument, "'%s' is not a number of seconds", s)
	}
	return v, nil
}

// parseConfigUint64 reads hex values with the digit group separators node
// configuration uses, such as "0x6BED'913F'A202'23F8".
func parseConfigUint64(s string) (uint64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), "'", "")
	clean = strings.TrimPrefix(strings.ToLower(clean), "0x")
	v, err := strconv.ParseUint(clean, 16, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgument, "'%s' is not a hex number", s)
	}
	return v, nil
}

package symbol

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNetworkProperties = `{
  "network": {
    "identifier": "public-test",
    "nemesisSignerPublicKey": "76E94661562762111FF7E592B00398554973396D8A4B922F3E3D139892F7C35C",
    "nodeEqualityStrategy": "host",
    "generationHashSeed": "49D6E1CE276A85B70EAFE52349AACCA389302E7A9754BCF1221E79494FC665A4",
    "epochAdjustment": "1667250467s"
  },
  "chain": {
    "enableVerifiableState": true,
    "currencyMosaicId": "0x72C0'212E'67A0'8BCE",
    "harvestingMosaicId": "0x3A84'16DB'2D53'B6C8",
    "blockGenerationTargetTime": "30s"
  }
}`

func TestLoadNetworkProperties(t *testing.T) {
	params, err := LoadNetworkProperties([]byte(testNetworkProperties))
	require.NoError(t, err)
	assert.Equal(t, TestNetParams, *params)

	dir := t.TempDir()
	path := filepath.Join(dir, "properties.json")
	require.NoError(t, os.WriteFile(path, []byte(testNetworkProperties), 0o600))

	params, err = LoadNetworkPropertiesFile(path)
	require.NoError(t, err)
	assert.Equal(t, NetworkTypeTestNet, params.Type)

	_, err = LoadNetworkPropertiesFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadNetworkProperties_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		json string
	}{
		{"not json", `{"network":`},
		{"no identifier", `{"network":{"generationHashSeed":"00"}}`},
		{"unknown identifier", `{"network":{"identifier":"moon"}}`},
		{"bad seed", `{"network":{"identifier":"public","generationHashSeed":"ABCD","epochAdjustment":"1s"}}`},
		{"bad epoch", `{"network":{"identifier":"public","generationHashSeed":"` + TestNetParams.GenerationHashSeed.String() + `","epochAdjustment":"soon"}}`},
		{"bad currency", `{"network":{"identifier":"public","generationHashSeed":"` + TestNetParams.GenerationHashSeed.String() + `","epochAdjustment":"1s"},"chain":{"currencyMosaicId":"0xXYZ"}}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := LoadNetworkProperties([]byte(testCase.json))
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestConfig_Params(t *testing.T) {
	params, err := (&Config{Network: NetworkTypeMainNet}).Params()
	require.NoError(t, err)
	assert.Equal(t, MainNetParams, *params)

	override := &Config{
		Network:            NetworkTypeMainNet,
		GenerationHashSeed: TestNetParams.GenerationHashSeed.String(),
		EpochAdjustment:    42,
	}
	params, err = override.Params()
	require.NoError(t, err)
	assert.Equal(t, TestNetParams.GenerationHashSeed, params.GenerationHashSeed)
	assert.Equal(t, uint64(42), params.EpochAdjustment)
	assert.Equal(t, MainNetParams.CurrencyMosaicID, params.CurrencyMosaicID)
	assert.NotEqual(t, MainNetParams.EpochAdjustment, uint64(42), "built in params must not change")

	_, err = (&Config{Network: NetworkTypePrivate}).Params()
	assert.Error(t, err, "private networks have no built in seed")

	params, err = (&Config{Network: NetworkTypePrivate, GenerationHashSeed: "0x" + TestNetParams.GenerationHashSeed.String()}).Params()
	require.NoError(t, err)
	assert.Equal(t, NetworkTypePrivate, params.Type)

	_, err = (&Config{Network: 0x01}).Params()
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}

func TestConfig_Engine(t *testing.T) {
	engine, err := (&Config{}).Engine()
	require.NoError(t, err)
	assert.Equal(t, "sha2-512", engine.Algorithm().String())

	engine, err = (&Config{SignatureHash: "sha3-512"}).Engine()
	require.NoError(t, err)
	assert.Equal(t, "sha3-512", engine.Algorithm().String())

	_, err = (&Config{SignatureHash: "md5"}).Engine()
	assert.Error(t, err)
}

func TestParseNetworkType(t *testing.T) {
	testCases := []struct {
		input string
		want  NetworkType
	}{
		{"public", NetworkTypeMainNet},
		{"mainnet", NetworkTypeMainNet},
		{"Public-Test", NetworkTypeTestNet},
		{"testnet", NetworkTypeTestNet},
		{"mijin", NetworkTypeMijin},
		{"mijin-test", NetworkTypeMijinTest},
		{"private", NetworkTypePrivate},
		{"private-test", NetworkTypePrivateTest},
		{"0x98", NetworkTypeTestNet},
		{"68", NetworkTypeMainNet},
	}

	for _, testCase := range testCases {
		n, err := ParseNetworkType(testCase.input)
		if err != nil {
			t.Fatalf("failed to parse '%s': %v", testCase.input, err)
		}
		assert.Equal(t, testCase.want, n, testCase.input)
		assert.True(t, n.Valid())

		again, err := ParseNetworkType(n.String())
		require.NoError(t, err)
		assert.Equal(t, n, again)
	}

	_, err := ParseNetworkType("moon")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseNetworkType("0x01")
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
	assert.Equal(t, "invalid", NetworkType(0x01).String())
}

func TestDeadline(t *testing.T) {
	epoch := TestNetParams.EpochAdjustment
	now := time.Unix(int64(epoch)+3600, 0)

	d := NewDeadline(now, 2*time.Hour, epoch)
	assert.Equal(t, Deadline((3600+7200)*1000), d)
	assert.True(t, now.Add(2*time.Hour).Equal(d.Time(epoch)))

	assert.Equal(t, Deadline(0), NewDeadline(time.Unix(0, 0), time.Hour, epoch))
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash("0x" + MainNetParams.GenerationHashSeed.String())
	require.NoError(t, err)
	assert.Equal(t, MainNetParams.GenerationHashSeed, h)

	_, err = ParseHash("ABCD")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseHash("not hex")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("debug"))
	require.NoError(t, SetLogLevel("info"))
	assert.Error(t, SetLogLevel("loud"))
}

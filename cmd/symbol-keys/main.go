package main

import (
	"flag"
	"fmt"
	"os"

	. "github.com/alexdcox/symbol-go"
	"github.com/alexdcox/symbol-go/eddsa"
	"github.com/pkg/errors"
)

type _config struct {
	Config
	PrivateKey string `json:"privatekey"`
	Networks   string `json:"networks"`
}

func (c *_config) Load() (err error) {
	flag.StringVar(&c.PrivateKey, "private", "", "Derive from this 32 byte hex private key instead of generating one")
	flag.StringVar(&c.SignatureHash, "signaturehash", "", "Signature hash (sha2-512|sha3-512)")
	flag.StringVar(&c.Networks, "network", "", "Only print the address for this network (public|public-test|mijin|mijin-test|private|private-test)")
	flag.StringVar(&c.LogLevel, "loglevel", "", "Set the log level (trace|debug|info|warn|error|fatal) Can also be set via the SYMBOL_LOG_LEVEL environment variable")
	flag.Parse()

	if c.LogLevel == "" {
		c.LogLevel = os.Getenv("SYMBOL_LOG_LEVEL")
	}
	if c.LogLevel != "" {
		if err = SetLogLevel(c.LogLevel); err != nil {
			return
		}
	}

	if c.Networks != "" {
		c.Network, err = ParseNetworkType(c.Networks)
	}
	return
}

var log = Log()

func main() {
	config := &_config{}
	if err := config.Load(); err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	engine, err := config.Engine()
	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	var kp *eddsa.KeyPair
	if config.PrivateKey != "" {
		kp, err = engine.NewKeyPairFromPrivateKey(config.PrivateKey)
	} else {
		kp, err = engine.GenerateKeyPair(nil)
	}
	if err != nil {
		log.Fatal().Msgf("%+v", errors.Wrap(err, "failed to create key pair"))
	}
	defer kp.Zeroize()

	log.Debug().Object("keyPair", kp).Msg("key pair ready")

	fmt.Println("")
	if config.PrivateKey == "" {
		fmt.Println("Generated new symbol key pair:")
	} else {
		fmt.Println("Derived symbol key pair:")
	}
	fmt.Println("")
	fmt.Printf("key type:       ed25519 (%s)\n", engine.Algorithm())
	fmt.Printf("private:        %s\n", kp.PrivateKey())
	fmt.Printf("public:         %s\n", kp.PublicKey())

	networks := NetworkTypes.Values()
	if config.Network != 0 {
		networks = []NetworkType{config.Network}
	}

	for _, net := range networks {
		addr := NewAddress(kp.PublicKey(), net)

		fmt.Println("")
		fmt.Printf("network:           %s (0x%02X)\n", net, uint8(net))
		fmt.Printf("addr (raw):        %s\n", ToHex(addr[:]))
		fmt.Printf("addr (base32):     %s\n", addr)
		fmt.Printf("addr (pretty):     %s\n", addr.Pretty())
	}
}

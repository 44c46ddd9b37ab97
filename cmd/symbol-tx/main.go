package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	. "github.com/alexdcox/symbol-go"
	"github.com/pkg/errors"
)

type _config struct {
	Config
	NetworkName string `json:"networkname"`
	Properties  string `json:"properties"`
	PrivateKey  string `json:"privatekey"`
	Payload     string `json:"payload"`
}

func (c *_config) Load(fs *flag.FlagSet, args []string) (err error) {
	fs.StringVar(&c.NetworkName, "network", "public-test", "Set network (public|public-test|mijin|mijin-test|private|private-test)")
	fs.StringVar(&c.GenerationHashSeed, "generationhashseed", "", "Override the network generation hash seed (hex)")
	fs.Uint64Var(&c.EpochAdjustment, "epochadjustment", 0, "Override the network epoch in unix seconds")
	fs.StringVar(&c.Properties, "properties", "", "Read network parameters from a node's /network/properties json")
	fs.StringVar(&c.SignatureHash, "signaturehash", "", "Signature hash (sha2-512|sha3-512)")
	fs.StringVar(&c.PrivateKey, "private", "", "Hex private key used by sign and cosign")
	fs.StringVar(&c.Payload, "payload", "-", "Hex transaction payload, or - to read it from stdin")
	fs.StringVar(&c.LogLevel, "loglevel", "", "Set the log level (trace|debug|info|warn|error|fatal) Can also be set via the SYMBOL_LOG_LEVEL environment variable")
	if err = fs.Parse(args); err != nil {
		return errors.WithStack(err)
	}

	if c.LogLevel == "" {
		c.LogLevel = os.Getenv("SYMBOL_LOG_LEVEL")
	}
	if c.LogLevel != "" {
		if err = SetLogLevel(c.LogLevel); err != nil {
			return
		}
	}

	c.Network, err = ParseNetworkType(c.NetworkName)
	return
}

// Params resolves the network parameters, preferring a properties file
// over the built in values. Explicit flags win over both.
func (c *_config) Params() (params *NetworkParams, err error) {
	if c.Properties == "" {
		return c.Config.Params()
	}

	if params, err = LoadNetworkPropertiesFile(c.Properties); err != nil {
		return
	}
	if c.GenerationHashSeed != "" {
		if params.GenerationHashSeed, err = ParseHash(c.GenerationHashSeed); err != nil {
			return
		}
	}
	if c.EpochAdjustment != 0 {
		params.EpochAdjustment = c.EpochAdjustment
	}
	return
}

func (c *_config) ReadPayload() ([]byte, error) {
	text := c.Payload
	if text == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read payload from stdin")
		}
		text = string(b)
	}
	text = strings.Trim(strings.TrimSpace(text), "\"")
	if text == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "no payload given")
	}
	return HexString(text).Decode()
}

var log = Log()

type command func(c *_config) error

var commands = map[string]command{
	"decode": decodeCommand,
	"hash":   hashCommand,
	"sign":   signCommand,
	"cosign": cosignCommand,
	"verify": verifyCommand,
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: symbol-tx decode|hash|sign|cosign|verify [flags]")
	fmt.Fprintln(os.Stderr, "run 'symbol-tx <command> -h' for the flags of a command")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	run, ok := commands[name]
	if !ok {
		usage()
		os.Exit(2)
	}

	config := &_config{}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	if err := config.Load(fs, os.Args[2:]); err != nil {
		log.Fatal().Msgf("%+v", err)
	}

	if err := run(config); err != nil {
		log.Error().Str("command", name).Msg(err.Error())
		log.Debug().Msg(StackTracerMessage(err))
		os.Exit(1)
	}
}

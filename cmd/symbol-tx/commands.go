package main

import (
	"encoding/json"
	"fmt"
	"time"

	. "github.com/alexdcox/symbol-go"
	"github.com/alexdcox/symbol-go/eddsa"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var p = message.NewPrinter(language.English)

func keyPair(c *_config) (*eddsa.KeyPair, error) {
	if c.PrivateKey == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "-private is required")
	}
	engine, err := c.Engine()
	if err != nil {
		return nil, err
	}
	return engine.NewKeyPairFromPrivateKey(c.PrivateKey)
}

func printJSON(label string, v any) error {
	j, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	fmt.Printf("%s %s\n", label, j)
	return nil
}

func decodeCommand(c *_config) error {
	payload, err := c.ReadPayload()
	if err != nil {
		return err
	}
	tx, err := DeserializeTransaction(payload)
	if err != nil {
		return err
	}
	params, err := c.Params()
	if err != nil {
		return err
	}

	fmt.Println("")
	fmt.Printf("type:              %s (0x%04X)\n", tx.Type(), uint16(tx.Type()))
	fmt.Printf("size:              %s bytes\n", p.Sprintf("%d", len(payload)))
	fmt.Printf("version:           %d\n", tx.Version)
	fmt.Printf("network:           %s\n", tx.Network)
	fmt.Printf("signer:            %s\n", tx.Signer)
	fmt.Printf("signer address:    %s\n", NewAddress(tx.Signer, tx.Network))
	fmt.Printf("max fee:           %s (multiplier %s)\n",
		p.Sprintf("%d", tx.MaxFee),
		p.Sprintf("%d", tx.MaxFee/uint64(len(payload))))
	fmt.Printf("deadline:          %s\n", tx.Deadline.Time(params.EpochAdjustment).Format(time.RFC3339))

	if tx.Signature != (eddsa.Signature{}) {
		hash, err := TransactionHash(payload, params.GenerationHashSeed)
		if err != nil {
			return err
		}
		fmt.Printf("hash:              %s\n", hash)
	}

	aggregate, err := tx.Aggregate()
	if err != nil {
		fmt.Println("")
		return printJSON("body:", tx.Body)
	}

	fmt.Printf("transactions hash: %s\n", aggregate.TransactionsHash)
	for i, inner := range aggregate.Transactions {
		fmt.Println("")
		fmt.Printf("inner %d:           %s signed by %s\n", i, inner.Type(), NewAddress(inner.Signer, inner.Network))
		if err = printJSON("body:", inner.Body); err != nil {
			return err
		}
	}
	fmt.Println("")
	for _, cosignature := range aggregate.Cosignatures {
		fmt.Printf("cosigned by:       %s\n", NewAddress(cosignature.Signer, tx.Network))
	}
	return nil
}

func hashCommand(c *_config) error {
	payload, err := c.ReadPayload()
	if err != nil {
		return err
	}
	params, err := c.Params()
	if err != nil {
		return err
	}
	hash, err := TransactionHash(payload, params.GenerationHashSeed)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func signCommand(c *_config) error {
	kp, err := keyPair(c)
	if err != nil {
		return err
	}
	defer kp.Zeroize()

	payload, err := c.ReadPayload()
	if err != nil {
		return err
	}
	params, err := c.Params()
	if err != nil {
		return err
	}

	// Only sign what a node could decode.
	if _, err = DeserializeTransaction(payload); err != nil {
		return errors.Wrap(err, "refusing to sign an invalid payload")
	}

	signed, err := SignPayload(kp, payload, params.GenerationHashSeed)
	if err != nil {
		return err
	}

	log.Info().
		Str("type", signed.Type.String()).
		Str("hash", signed.Hash.String()).
		Msg("signed")

	fmt.Println(ToHex(signed.Payload))
	return nil
}

func cosignCommand(c *_config) error {
	kp, err := keyPair(c)
	if err != nil {
		return err
	}
	defer kp.Zeroize()

	payload, err := c.ReadPayload()
	if err != nil {
		return err
	}
	params, err := c.Params()
	if err != nil {
		return err
	}

	hash, err := TransactionHash(payload, params.GenerationHashSeed)
	if err != nil {
		return err
	}
	out, err := AppendCosignatures(payload, Cosign(kp, hash))
	if err != nil {
		return err
	}

	log.Info().
		Str("hash", hash.String()).
		Str("cosigner", kp.PublicKey().String()).
		Msg("cosigned")

	fmt.Println(ToHex(out))
	return nil
}

func verifyCommand(c *_config) error {
	payload, err := c.ReadPayload()
	if err != nil {
		return err
	}
	params, err := c.Params()
	if err != nil {
		return err
	}
	engine, err := c.Engine()
	if err != nil {
		return err
	}

	tx, err := DeserializeTransaction(payload)
	if err != nil {
		return err
	}

	ok, err := VerifyTransaction(engine, payload, params.GenerationHashSeed)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Errorf("signature of %s does not verify", tx.Signer)
	}
	fmt.Printf("signature:         ok (%s)\n", tx.Signer)

	aggregate, err := tx.Aggregate()
	if err != nil {
		return nil
	}

	if err = aggregate.VerifyTransactionsHash(); err != nil {
		return err
	}
	fmt.Printf("transactions hash: ok (%d inner)\n", len(aggregate.Transactions))

	hash, err := TransactionHash(payload, params.GenerationHashSeed)
	if err != nil {
		return err
	}
	for i, cosignature := range aggregate.Cosignatures {
		ok, err = VerifyCosignature(engine, hash, cosignature)
		if err != nil {
			return errors.Wrapf(err, "cosignature %d", i)
		}
		if !ok {
			return errors.Errorf("cosignature %d by %s does not verify", i, cosignature.Signer)
		}
		fmt.Printf("cosignature %d:     ok (%s)\n", i, cosignature.Signer)
	}
	return nil
}

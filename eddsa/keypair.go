package eddsa

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/alexdcox/symbol-go/edwards"
	"github.com/alexdcox/symbol-go/fault"
)

// KeyPair holds a private seed, the secret scalar and prefix expanded from
// it, and the matching public key.
//
// Formatting or logging a KeyPair only ever shows the public key.
type KeyPair struct {
	seed   [SeedSize]byte
	secret edwards.Scalar
	prefix [32]byte
	public PublicKey
	engine *Engine
}

// NewKeyPairFromSeed derives a key pair. The same seed always yields the
// same key pair for a given engine.
func (e *Engine) NewKeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, fault.InvalidArgument("seed must be %d bytes, got %d", SeedSize, len(seed))
	}

	kp := &KeyPair{engine: e}
	copy(kp.seed[:], seed)

	digest := e.digest(kp.seed[:])
	var lower [32]byte
	copy(lower[:], digest[:32])
	kp.secret = edwards.Clamp(lower)
	copy(kp.prefix[:], digest[32:])
	kp.public = edwards.ScalarBaseMult(kp.secret).Bytes()

	zeroize(digest)
	zeroize(lower[:])

	return kp, nil
}

// NewKeyPairFromPrivateKey derives a key pair from a hex encoded seed.
func (e *Engine) NewKeyPairFromPrivateKey(privateKey string) (*KeyPair, error) {
	seed, err := hex.DecodeString(strings.TrimSpace(privateKey))
	if err != nil {
		return nil, fault.InvalidArgument("private key is not hex: %v", err)
	}
	defer zeroize(seed)
	return e.NewKeyPairFromSeed(seed)
}

// GenerateKeyPair reads a fresh seed from random, or from crypto/rand when
// random is nil.
func (e *Engine) GenerateKeyPair(random io.Reader) (*KeyPair, error) {
	if random == nil {
		random = rand.Reader
	}
	seed := make([]byte, SeedSize)
	defer zeroize(seed)
	if _, err := io.ReadFull(random, seed); err != nil {
		return nil, errors.Wrap(err, "failed to read key seed")
	}
	return e.NewKeyPairFromSeed(seed)
}

func NewKeyPairFromSeed(seed []byte) (*KeyPair, error) {
	return Default.NewKeyPairFromSeed(seed)
}

func NewKeyPairFromPrivateKey(privateKey string) (*KeyPair, error) {
	return Default.NewKeyPairFromPrivateKey(privateKey)
}

func GenerateKeyPair(random io.Reader) (*KeyPair, error) {
	return Default.GenerateKeyPair(random)
}

func (kp *KeyPair) PublicKey() PublicKey {
	return kp.public
}

// PrivateKey returns a copy of the seed as upper case hex. It is the only
// way to get secret material out of a KeyPair.
func (kp *KeyPair) PrivateKey() string {
	return strings.ToUpper(hex.EncodeToString(kp.seed[:]))
}

func (kp *KeyPair) Engine() *Engine {
	return kp.engine
}

func (kp *KeyPair) Sign(message []byte) Signature {
	return kp.engine.Sign(kp, message)
}

// Zeroize wipes the private material. The key pair can not sign afterwards.
func (kp *KeyPair) Zeroize() {
	zeroize(kp.seed[:])
	zeroize(kp.secret[:])
	zeroize(kp.prefix[:])
}

func (kp *KeyPair) String() string {
	return fmt.Sprintf("KeyPair{publicKey: %s}", kp.public)
}

// Format keeps %x, %v and friends from reaching the seed through the
// struct fields.
func (kp *KeyPair) Format(f fmt.State, verb rune) {
	_, _ = io.WriteString(f, kp.String())
}

func (kp *KeyPair) MarshalZerologObject(e *zerolog.Event) {
	e.Str("publicKey", kp.public.String())
	e.Str("algorithm", kp.engine.algorithm.String())
}

func zeroize(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

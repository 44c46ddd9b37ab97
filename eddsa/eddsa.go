// Package eddsa signs and verifies messages with Ed25519 keys.
//
// The signing hash is selectable. SHA2_512 gives plain RFC 8032 Ed25519 as
// used by the public Symbol networks; SHA3_512 matches early catapult test
// networks. Both reduce 64-byte digests into scalars, so a 256-bit hash can
// not be used here.
package eddsa

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"

	"github.com/alexdcox/symbol-go/edwards"
	"github.com/alexdcox/symbol-go/fault"
)

const (
	SeedSize      = 32
	PublicKeySize = 32
	SignatureSize = 64
)

var log = zerolog.Nop()

// SetLogger replaces the package logger, which is silent by default.
func SetLogger(l zerolog.Logger) {
	log = l
}

type Algorithm uint8

const (
	SHA2_512 Algorithm = iota
	SHA3_512
)

func (a Algorithm) String() string {
	switch a {
	case SHA2_512:
		return "sha2-512"
	case SHA3_512:
		return "sha3-512"
	default:
		return "unknown"
	}
}

func (a Algorithm) newHash() hash.Hash {
	if a == SHA3_512 {
		return sha3.New512()
	}
	return sha512.New()
}

// ParseAlgorithm accepts the names printed by Algorithm.String.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "sha2-512", "sha512", "":
		return SHA2_512, nil
	case "sha3-512", "keccak":
		return SHA3_512, nil
	}
	return 0, fault.InvalidArgument("unknown signature hash %q", s)
}

type PublicKey [PublicKeySize]byte

func (p PublicKey) String() string {
	return strings.ToUpper(hex.EncodeToString(p[:]))
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PublicKeyFromHex parses 64 hex characters.
func PublicKeyFromHex(s string) (p PublicKey, err error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		err = fault.InvalidArgument("public key is not hex: %v", err)
		return
	}
	if len(b) != PublicKeySize {
		err = fault.Short("public key", 0, PublicKeySize, len(b))
		return
	}
	copy(p[:], b)
	return
}

type Signature [SignatureSize]byte

func (s Signature) String() string {
	return strings.ToUpper(hex.EncodeToString(s[:]))
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Engine signs and verifies with one hash algorithm.
type Engine struct {
	algorithm Algorithm
}

func NewEngine(algorithm Algorithm) *Engine {
	return &Engine{algorithm: algorithm}
}

// Default is the RFC 8032 engine used by the package level functions.
var Default = NewEngine(SHA2_512)

func (e *Engine) Algorithm() Algorithm {
	return e.algorithm
}

func (e *Engine) digest(parts ...[]byte) []byte {
	h := e.algorithm.newHash()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

func (e *Engine) reduce(parts ...[]byte) edwards.Scalar {
	s, err := edwards.Reduce(e.digest(parts...))
	if err != nil {
		// Both hashes always produce 64 bytes.
		panic(err)
	}
	return s
}

// Sign produces a deterministic signature of message under kp.
func (e *Engine) Sign(kp *KeyPair, message []byte) (sig Signature) {
	r := e.reduce(kp.prefix[:], message)
	R := edwards.ScalarBaseMult(r).Bytes()

	k := e.reduce(R[:], kp.public[:], message)
	S := edwards.MultiplyAdd(k, kp.secret, r)

	copy(sig[:32], R[:])
	copy(sig[32:], S[:])
	return
}

// Verify reports whether signature is a valid signature of message by
// publicKey.
//
// Only buffers of the wrong length produce an error. A public key that does
// not decode, a small-order public key or an S that is not below the group
// order make the signature invalid, not the call.
func (e *Engine) Verify(publicKey, message, signature []byte) (bool, error) {
	if len(publicKey) != PublicKeySize {
		return false, fault.InvalidArgument("public key must be %d bytes, got %d", PublicKeySize, len(publicKey))
	}
	if len(signature) != SignatureSize {
		return false, fault.InvalidArgument("signature must be %d bytes, got %d", SignatureSize, len(signature))
	}

	S, err := edwards.ScalarFromCanonicalBytes(signature[32:])
	if err != nil {
		log.Trace().Err(err).Msg("rejecting signature")
		return false, nil
	}

	A, err := edwards.GroupElementFromBytes(publicKey)
	if err != nil {
		log.Trace().Err(err).Msg("rejecting public key")
		return false, nil
	}
	if A.MultiplyByCofactor().IsIdentity() {
		log.Trace().Msg("rejecting small order public key")
		return false, nil
	}

	k := e.reduce(signature[:32], publicKey, message)

	// R' = S*B - k*A
	check := edwards.DoubleScalarMultVartime(k, A.Negate(), S).Bytes()

	return subtle.ConstantTimeCompare(check[:], signature[:32]) == 1, nil
}

// Sign signs message with the engine kp was derived from.
func Sign(kp *KeyPair, message []byte) Signature {
	return kp.engine.Sign(kp, message)
}

// Verify checks a signature with the default engine.
func Verify(publicKey, message, signature []byte) (bool, error) {
	return Default.Verify(publicKey, message, signature)
}

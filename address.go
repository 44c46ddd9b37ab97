package symbol

import (
	"crypto/subtle"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/alexdcox/symbol-go/catbuffer"
	"github.com/alexdcox/symbol-go/eddsa"
)

const (
	AddressSize        = 24
	AddressEncodedSize = 39
	addressChecksum    = 3
)

var addressEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Address is network byte | RIPEMD160(SHA3-256(public key)) | checksum,
// where the checksum is the first three bytes of SHA3-256 over the rest.
type Address [AddressSize]byte

// NewAddress derives the address of publicKey on network.
func NewAddress(publicKey eddsa.PublicKey, network NetworkType) (a Address) {
	keyHash := sha3.Sum256(publicKey[:])

	h := ripemd160.New()
	h.Write(keyHash[:])

	a[0] = byte(network)
	h.Sum(a[1:1])

	sum := sha3.Sum256(a[:AddressSize-addressChecksum])
	copy(a[AddressSize-addressChecksum:], sum[:addressChecksum])
	return
}

func (a Address) Network() NetworkType {
	return NetworkType(a[0])
}

// String returns the 39 character base32 form.
func (a Address) String() string {
	return addressEncoding.EncodeToString(a[:])
}

// Pretty groups the base32 form in blocks of six separated by dashes.
func (a Address) Pretty() string {
	s := a.String()
	var parts []string
	for len(s) > 6 {
		parts = append(parts, s[:6])
		s = s[6:]
	}
	return strings.Join(append(parts, s), "-")
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, a)), nil
}

// Validate checks the network byte and the checksum.
func (a Address) Validate() error {
	if err := a.Network().Validate(); err != nil {
		return err
	}
	sum := sha3.Sum256(a[:AddressSize-addressChecksum])
	if subtle.ConstantTimeCompare(sum[:addressChecksum], a[AddressSize-addressChecksum:]) != 1 {
		return errors.Wrapf(ErrInvalidArgument, "address %s has an invalid checksum", a)
	}
	return nil
}

// IsForNetwork reports whether a was derived for network.
func (a Address) IsForNetwork(network NetworkType) bool {
	return a.Network() == network
}

// ParseAddress accepts the plain or dashed base32 form, or 48 hex
// characters, and validates the result.
func ParseAddress(s string) (a Address, err error) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))

	var raw []byte
	switch len(s) {
	case AddressEncodedSize:
		raw, err = addressEncoding.DecodeString(s)
		if err != nil {
			err = errors.Wrapf(ErrInvalidArgument, "address '%s' is not base32: %v", s, err)
			return
		}
	case AddressSize * 2:
		if raw, err = HexString(s).Decode(); err != nil {
			return
		}
	default:
		err = errors.Wrapf(ErrInvalidArgument, "address '%s' has %d characters", s, len(s))
		return
	}

	copy(a[:], raw)
	err = a.Validate()
	return
}

var addressCodec = catbuffer.Codec[Address]{
	Size: func(Address) int { return AddressSize },
	Encode: func(w *catbuffer.Writer, a Address) error {
		w.Write(a[:])
		return nil
	},
	Decode: func(r *catbuffer.Reader) (a Address, err error) {
		err = r.Fill("address", a[:])
		return
	},
}

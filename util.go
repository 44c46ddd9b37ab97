package symbol

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/alexdcox/symbol-go/merkle"
)

// Hash is a SHA3-256 digest: transaction hashes, Merkle roots and
// generation hash seeds.
type Hash = merkle.Hash

// ParseHash reads 64 hex characters.
func ParseHash(s string) (h Hash, err error) {
	b, err := HexString(s).Decode()
	if err != nil {
		return
	}
	if len(b) != len(h) {
		err = errors.Wrapf(ErrInvalidArgument, "expected a %d byte hash, got %d bytes", len(h), len(b))
		return
	}
	copy(h[:], b)
	return
}

// HexString is hex text as found in configuration files and on the command
// line. Upper or lower case and an optional 0x prefix are accepted.
type HexString string

func (h HexString) Decode() ([]byte, error) {
	s := strings.TrimPrefix(strings.TrimSpace(string(h)), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "invalid hex '%s': %v", string(h), err)
	}
	return b, nil
}

// Bytes decodes h, returning nil when it is not valid hex.
func (h HexString) Bytes() []byte {
	b, _ := h.Decode()
	return b
}

// ToHex renders b as upper case hex, the form Symbol tooling prints.
func ToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// Deadline is a point in time in milliseconds since the network epoch.
type Deadline uint64

// NewDeadline returns now + ttl on the network clock.
func NewDeadline(now time.Time, ttl time.Duration, epochAdjustment uint64) Deadline {
	ms := now.Add(ttl).UnixMilli() - int64(epochAdjustment)*1000
	if ms < 0 {
		return 0
	}
	return Deadline(ms)
}

func (d Deadline) Time(epochAdjustment uint64) time.Time {
	return time.UnixMilli(int64(d) + int64(epochAdjustment)*1000).UTC()
}

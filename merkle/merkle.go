// Package merkle computes the SHA3-256 Merkle root that commits an
// aggregate transaction to its inner transactions.
package merkle

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/alexdcox/symbol-go/fault"
)

type Hash [32]byte

func (h Hash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// LeafHash hashes one serialized inner transaction.
func LeafHash(data []byte) Hash {
	return sha3.Sum256(data)
}

func node(left, right Hash) Hash {
	h := sha3.New256()
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	h.Sum(out[:0])
	return out
}

// RootHash folds leaves pairwise into a single root. A level with an odd
// number of nodes pairs its last node with itself. A single leaf is its own
// root.
func RootHash(leaves []Hash) (Hash, error) {
	if len(leaves) == 0 {
		return Hash{}, fault.InvalidArgument("merkle root of no leaves")
	}

	level := append([]Hash{}, leaves...)
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := level[:0]
		for i := 0; i < len(level); i += 2 {
			next = append(next, node(level[i], level[i+1]))
		}
		level = next
	}

	return level[0], nil
}

// Builder collects leaves one at a time.
type Builder struct {
	leaves []Hash
}

func (b *Builder) Update(leaf Hash) {
	b.leaves = append(b.leaves, leaf)
}

// UpdateData adds the leaf hash of data.
func (b *Builder) UpdateData(data []byte) {
	b.Update(LeafHash(data))
}

func (b *Builder) Len() int {
	return len(b.leaves)
}

// Final returns the root of everything added so far, or the zero hash when
// nothing was added.
func (b *Builder) Final() Hash {
	if len(b.leaves) == 0 {
		return Hash{}
	}
	root, _ := RootHash(b.leaves)
	return root
}

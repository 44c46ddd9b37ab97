/*
Package symbol builds, serializes, signs and verifies Symbol blockchain
transactions offline.

Transactions are encoded in the fixed little-endian catbuffer layout: a
128 byte header (or a 48 byte header for transactions embedded in an
aggregate) followed by a body selected by the transaction type. Aggregate
transactions commit to their inner transactions with a SHA3-256 Merkle root
and carry cosignatures after the inner transactions.

Curve arithmetic lives in the edwards package, signatures in eddsa, binary
layout primitives in catbuffer and the Merkle root in merkle. Nothing here
talks to a node.
*/

package symbol

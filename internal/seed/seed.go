// Package seed builds the UNICORN seed from an ordered list of participant
// identifiers. The encoding must match bit-for-bit across implementations
// so that any verifier arrives at the same seed as the one used to
// construct a given UNICORN.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/big"
)

// Construct derives the UNICORN seed from an ordered sequence of
// participant identifiers: canonical bincode-style encoding of the
// sequence, SHA-256 of that byte string, then the hex text of the digest
// parsed as a base-16 integer.
//
// The canonical encoding is an 8-byte little-endian element count,
// followed by, for each element, an 8-byte little-endian byte length and
// the raw identifier bytes.
func Construct(participantIDs []string) *big.Int {
	digest := sha256.Sum256(encode(participantIDs))
	hexDigest := hex.EncodeToString(digest[:])
	// The hex text itself, not the raw digest bytes, is parsed as the
	// integer.
	s, _ := new(big.Int).SetString(hexDigest, 16)
	return s
}

func encode(ids []string) []byte {
	var buf []byte
	var lenBytes [8]byte

	binary.LittleEndian.PutUint64(lenBytes[:], uint64(len(ids)))
	buf = append(buf, lenBytes[:]...)

	for _, id := range ids {
		binary.LittleEndian.PutUint64(lenBytes[:], uint64(len(id)))
		buf = append(buf, lenBytes[:]...)
		buf = append(buf, id...)
	}
	return buf
}

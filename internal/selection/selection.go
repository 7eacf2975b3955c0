// Package selection turns a UNICORN's public digest into a pseudorandom
// 64-bit value that callers reduce modulo their participant count to pick
// a winner. Modular-reduction bias is accepted, per spec: this package
// does not perform rejection sampling.
package selection

import (
	"encoding/binary"
	"fmt"

	"github.com/Zenotta/miner-lottery/internal/fortuna"
	"github.com/Zenotta/miner-lottery/internal/vdf"
)

// GetUnicornPRN derives a Fortuna key from the first 32 ASCII hex
// characters of info.GValue (not the first 16 decoded bytes), draws 8
// bytes from a Fortuna stream seeded with that key and usage, and decodes
// them as a big-endian unsigned 64-bit integer.
func GetUnicornPRN(info vdf.Info, usage uint64) (uint64, error) {
	if len(info.GValue) < fortuna.KeyLen {
		return 0, fmt.Errorf("selection: g_value too short for a %d-byte key", fortuna.KeyLen)
	}

	var key [fortuna.KeyLen]byte
	copy(key[:], info.GValue[:fortuna.KeyLen])

	csprng, err := fortuna.New(&key, usage)
	if err != nil {
		return 0, fmt.Errorf("selection: %w", err)
	}

	b, err := csprng.GetBytes(8)
	if err != nil {
		return 0, fmt.Errorf("selection: %w", err)
	}

	return binary.BigEndian.Uint64(b), nil
}

// PickIndex reduces prn modulo participantCount to choose a winner index.
// Bias from the modular reduction is accepted, matching the reference.
func PickIndex(prn uint64, participantCount int) int {
	if participantCount <= 0 {
		return 0
	}
	return int(prn % uint64(participantCount))
}

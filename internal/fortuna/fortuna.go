// Package fortuna implements a simplified Fortuna CSPRNG: no entropy pools
// and no reseed machinery, just a one-time derived key driving an
// authenticated block cipher used purely as a block permutation in
// counter mode. Two Fortuna instances with the same key and usage tag
// produce identical streams; distinct usage tags under the same key
// produce independent streams.
package fortuna

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"

	siv "github.com/secure-io/siv-go"
)

// KeyLen is the required length, in bytes, of the caller-supplied key.
const KeyLen = 32

// ivSize is the all-zero nonce width the AEAD is driven with. The AEAD is
// never used for its authentication property here — only as a 16-byte
// block permutation — so a fixed, reused nonce is safe: see package docs.
const ivSize = 12

// usageMaxBits limits the usage tag to 96 bits, per spec.
const usageMaxBits = 96

// blockSize is the width of one Fortuna output block (one AES block).
const blockSize = 16

var zeroNonce = make([]byte, ivSize)

// Fortuna is a counter-mode CSPRNG stream. Not safe for concurrent use by
// multiple goroutines; each instance is single-owner.
type Fortuna struct {
	cipher    cipher.AEAD
	counter   [blockSize]byte
	remainder []byte
}

// New derives a stream key from key and usage and returns a ready Fortuna.
// usage is clamped to its low 96 bits, so distinct usage tags carved from
// the same 128-bit value collide only if they agree on those low bits.
func New(key *[KeyLen]byte, usage uint64) (*Fortuna, error) {
	derivedKey, err := deriveSeedKey(key, usage)
	if err != nil {
		return nil, fmt.Errorf("fortuna: derive seed key: %w", err)
	}

	aead, err := siv.NewGCM(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("fortuna: new cipher: %w", err)
	}

	return &Fortuna{cipher: aead}, nil
}

// deriveSeedKey computes the 32-byte derived key: cb = (usage & (2^96-1)) * 2^32,
// encrypt cb and cb+1 as two 16-byte blocks under a cipher keyed by key,
// and concatenate the two ciphertexts.
func deriveSeedKey(key *[KeyLen]byte, usage uint64) ([]byte, error) {
	aead, err := siv.NewGCM(key[:])
	if err != nil {
		return nil, fmt.Errorf("seeding cipher: %w", err)
	}

	// usage is already a uint64, i.e. well within 96 bits, but the mask is
	// applied explicitly so the intent (96-bit usage domain) is visible at
	// the call site and survives a future widening of the parameter type.
	// The shift count is a variable because a constant 1<<96 overflows
	// uint64 at compile time; at run time a shift by 64 or more yields 0,
	// so the mask is all ones for a uint64 usage.
	var usageShift uint = usageMaxBits
	maskedUsage := usage & ((uint64(1) << usageShift) - 1)

	cb := new(bigCounter).setUint64(maskedUsage).shiftLeft32()

	cb1Plain := cb.bytes()
	cb2Plain := cb.clone().increment().bytes()

	cb1, err := encryptBlock(aead, cb1Plain)
	if err != nil {
		return nil, err
	}
	cb2, err := encryptBlock(aead, cb2Plain)
	if err != nil {
		return nil, err
	}

	return append(cb1, cb2...), nil
}

// GetBytes returns n pseudorandom bytes, first draining any buffered
// remainder from a previous partial block, then emitting whole blocks,
// then — if a tail remains — one more block whose unused suffix is
// buffered for the next call. Two sequential calls GetBytes(n1) then
// GetBytes(n2) yield exactly the same bytes as one GetBytes(n1+n2).
func (f *Fortuna) GetBytes(n int) ([]byte, error) {
	result := make([]byte, 0, n)

	if len(f.remainder) > 0 {
		take := n
		if take > len(f.remainder) {
			take = len(f.remainder)
		}
		result = append(result, f.remainder[:take]...)
		f.remainder = f.remainder[take:]
		n -= take
	}

	for n >= blockSize {
		block, err := f.genBlock()
		if err != nil {
			return nil, err
		}
		result = append(result, block...)
		n -= blockSize
	}

	if n > 0 {
		block, err := f.genBlock()
		if err != nil {
			return nil, err
		}
		result = append(result, block[:n]...)
		f.remainder = append(f.remainder, block[n:]...)
	}

	return result, nil
}

// genBlock encrypts the current 128-bit counter, advances it with wrapping
// addition, and returns the 16-byte ciphertext.
func (f *Fortuna) genBlock() ([]byte, error) {
	plain := append([]byte(nil), f.counter[:]...)
	block, err := encryptBlock(f.cipher, plain)
	if err != nil {
		return nil, fmt.Errorf("fortuna: generate block: %w", err)
	}

	incrementBE(&f.counter)
	return block, nil
}

// encryptBlock seals plain under aead with the all-zero nonce and no
// associated data, returning only the ciphertext with the authentication
// tag discarded — the AEAD is used here as a plain block permutation.
func encryptBlock(aead cipher.AEAD, plain []byte) ([]byte, error) {
	sealed := aead.Seal(nil, zeroNonce, plain, nil)
	if len(sealed) < len(plain) {
		return nil, fmt.Errorf("fortuna: short seal output")
	}
	return sealed[:len(plain)], nil
}

// incrementBE increments a 16-byte big-endian counter in place, wrapping
// at 2^128.
func incrementBE(counter *[blockSize]byte) {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			return
		}
	}
}

// bigCounter is a minimal 128-bit big-endian counter used only for the
// seed-key derivation step (cb = usage * 2^32, and cb+1), kept separate
// from the stream counter above because it needs a left-shift-by-32 that
// the stream counter never does.
type bigCounter [blockSize]byte

func (c *bigCounter) setUint64(v uint64) *bigCounter {
	binary.BigEndian.PutUint64(c[8:], v)
	return c
}

// shiftLeft32 multiplies the 128-bit value by 2^32 (equivalent to usage*2^32
// as used by the reference seed derivation), discarding any overflow above
// bit 127 — unreachable here since usage is masked to 96 bits beforehand.
func (c *bigCounter) shiftLeft32() *bigCounter {
	var shifted bigCounter
	copy(shifted[:12], c[4:])
	*c = shifted
	return c
}

func (c *bigCounter) increment() *bigCounter {
	incrementBE((*[blockSize]byte)(c))
	return c
}

func (c *bigCounter) clone() *bigCounter {
	clone := *c
	return &clone
}

func (c *bigCounter) bytes() []byte {
	return append([]byte(nil), c[:]...)
}

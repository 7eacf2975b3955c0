// Package vdf implements the Sloth verifiable delay function used by
// UNICORN: a slow-to-evaluate, fast-to-verify modular square-root
// iteration over a large prime, plus the record types that bundle an
// evaluation's seed, witness and public digest.
//
// See Lenstra and Wesolowski, "Random Zoo" (https://eprint.iacr.org/2015/366.pdf),
// section 3.3, for the construction this implements.
package vdf

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"log"
	"math/big"

	"github.com/Zenotta/miner-lottery/internal/bigfield"
)

// MRPrimeIterations is the number of Miller-Rabin rounds used to check
// that a modulus is probably prime.
const MRPrimeIterations = 15

// FixedParams is the immutable configuration for a UNICORN instance:
// a decimal-string modulus, an iteration count and a security level.
type FixedParams struct {
	Modulus    string `json:"modulus"`
	Iterations uint64 `json:"iterations"`
	Security   uint32 `json:"security"`
}

// Unicorn is the operational VDF state. Seed may be stored unreduced;
// every public method reduces it mod Modulus before use.
type Unicorn struct {
	Modulus       *big.Int
	Seed          *big.Int
	Iterations    uint64
	SecurityLevel uint32
}

// Info bundles a Unicorn with the result of evaluating it: the raw
// witness and its hex digest g.
type Info struct {
	Unicorn Unicorn
	Witness *big.Int
	GValue  string
}

// Construct builds an operational Unicorn from a seed and fixed params,
// evaluates it, and panics if the modulus turns out to be invalid — the
// caller is expected to validate fixedParams (e.g. via IsValidModulus)
// before calling Construct.
func Construct(seed *big.Int, fixedParams FixedParams) Info {
	modulus, err := bigfield.ParseDecimal(fixedParams.Modulus)
	if err != nil {
		panic("vdf: invalid modulus string: " + err.Error())
	}

	u := Unicorn{
		Modulus:       modulus,
		Seed:          seed,
		Iterations:    fixedParams.Iterations,
		SecurityLevel: fixedParams.Security,
	}

	witness, g, ok := u.Eval()
	if !ok {
		panic("vdf: UNICORN construction failed")
	}

	return Info{Unicorn: u, Witness: witness, GValue: g}
}

// SetSeed stores seed on the Unicorn and returns the legacy commitment
// value c = SHA256(hex(SHA256(encode(seed.u64())))), where seed.u64() is a
// "does this fit in 64 bits" option: a single 0x00 byte when seed exceeds
// u64 range, or 0x01 followed by the 8 little-endian bytes of the value
// when it fits. This commitment only distinguishes seeds that fit in 64
// bits and is not consumed anywhere in Eval/Verify; it exists purely for
// external publishing compatibility with systems that already consume it,
// and is not a safe commitment over the full seed — every seed that
// exceeds u64 range commits to the same value.
func (u *Unicorn) SetSeed(seedVal *big.Int) string {
	var payload []byte
	if seedVal.IsUint64() {
		payload = make([]byte, 9)
		payload[0] = 1
		binary.LittleEndian.PutUint64(payload[1:], seedVal.Uint64())
	} else {
		payload = []byte{0}
	}

	inner := sha256.Sum256(payload)
	innerHex := hex.EncodeToString(inner[:])
	outer := sha256.Sum256([]byte(innerHex))

	u.Seed = seedVal
	return hex.EncodeToString(outer[:])
}

// Eval runs the Sloth VDF forward: l iterations of xor_for_overflow
// followed by a modular exponentiation by (p+1)/4, which computes a
// modular square root when p ≡ 3 (mod 4). It returns the witness, its hex
// digest g, and ok=false iff the modulus is invalid (too small for the
// claimed security level, or not probably prime) — in which case an
// error event is logged and the other two return values are zero.
func (u *Unicorn) Eval() (witness *big.Int, g string, ok bool) {
	if !u.IsValidModulus() {
		log.Printf("[vdf] modulus invalid for UNICORN eval (bits=%d, security=%d)",
			u.Modulus.BitLen(), u.SecurityLevel)
		return nil, "", false
	}

	w := bigfield.ModFloor(u.Seed, u.Modulus)

	exponent := new(big.Int).Add(u.Modulus, big.NewInt(1))
	exponent.Div(exponent, big.NewInt(4))

	for i := uint64(0); i < u.Iterations; i++ {
		w = xorForOverflow(w, u.Modulus)

		wPow, err := bigfield.PowMod(w, exponent, u.Modulus)
		if err != nil {
			// Unreachable: IsValidModulus already establishes Modulus > 0.
			log.Printf("[vdf] pow_mod failed during eval: %s", err)
			return nil, "", false
		}
		w = wPow
	}

	digits := msfBytes(w)
	return w, hex.EncodeToString(digits), true
}

// Verify runs the inverse iteration l times on witness and checks that
// the result equals seed mod p. It never fails; it returns a boolean.
func (u *Unicorn) Verify(seed, witness *big.Int) bool {
	w := new(big.Int).Set(witness)
	two := big.NewInt(2)

	for i := uint64(0); i < u.Iterations; i++ {
		squared, err := bigfield.PowMod(w, two, u.Modulus)
		if err != nil {
			// Unreachable: IsValidModulus (checked by the caller's Eval)
			// already establishes Modulus > 0.
			return false
		}
		w = new(big.Int).Neg(squared)
		w = bigfield.ModFloor(w, u.Modulus)
		w = xorForOverflow(w, u.Modulus)
	}

	return w.Cmp(bigfield.ModFloor(seed, u.Modulus)) == 0
}

// IsValidModulus reports whether p >= 2^(2k) and p is not definitely
// composite under MRPrimeIterations rounds of Miller-Rabin.
func (u *Unicorn) IsValidModulus() bool {
	if u.Modulus == nil || u.Modulus.Sign() <= 0 {
		return false
	}
	lowerBound := new(big.Int).Lsh(big.NewInt(1), uint(2*u.SecurityLevel))
	if u.Modulus.Cmp(lowerBound) < 0 {
		return false
	}
	return bigfield.IsProbablyPrime(u.Modulus, MRPrimeIterations)
}

// xorForOverflow XORs w with 1, then repeats while the result is either 0
// or >= modulus. For moduli close to a power of two this may loop more
// than once; callers must not assume a single XOR suffices.
func xorForOverflow(w, modulus *big.Int) *big.Int {
	out := new(big.Int).Xor(w, big.NewInt(1))
	for out.Sign() == 0 || out.Cmp(modulus) >= 0 {
		out = new(big.Int).Xor(out, big.NewInt(1))
	}
	return out
}

// msfBytes renders x as its most-significant-byte-first minimal byte
// representation — big.Int.Bytes() already omits leading zero bytes.
func msfBytes(x *big.Int) []byte {
	return x.Bytes()
}

// jsonUnicorn is the wire shape for Unicorn: big integers serialize as
// lowercase hex strings without a "0x" prefix.
type jsonUnicorn struct {
	Modulus       string `json:"modulus"`
	Seed          string `json:"seed"`
	Iterations    uint64 `json:"iterations"`
	SecurityLevel uint32 `json:"security_level"`
}

// MarshalJSON renders Unicorn with hex-encoded big integers.
func (u Unicorn) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonUnicorn{
		Modulus:       bigfield.ToHex(u.Modulus),
		Seed:          bigfield.ToHex(u.Seed),
		Iterations:    u.Iterations,
		SecurityLevel: u.SecurityLevel,
	})
}

// UnmarshalJSON parses a Unicorn from its hex-encoded wire form.
func (u *Unicorn) UnmarshalJSON(data []byte) error {
	var j jsonUnicorn
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	modulus, err := bigfield.ParseHex(j.Modulus)
	if err != nil {
		return err
	}
	s, err := bigfield.ParseHex(j.Seed)
	if err != nil {
		return err
	}

	u.Modulus = modulus
	u.Seed = s
	u.Iterations = j.Iterations
	u.SecurityLevel = j.SecurityLevel
	return nil
}

// jsonInfo mirrors Info's persisted record shape: g_value is already hex,
// witness is hex, and the nested Unicorn marshals via its own MarshalJSON.
type jsonInfo struct {
	Unicorn Unicorn `json:"unicorn"`
	GValue  string  `json:"g_value"`
	Witness string  `json:"witness"`
}

// MarshalJSON renders Info with its witness hex-encoded and its nested
// Unicorn marshaled via Unicorn.MarshalJSON.
func (i Info) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonInfo{
		Unicorn: i.Unicorn,
		GValue:  i.GValue,
		Witness: bigfield.ToHex(i.Witness),
	})
}

// UnmarshalJSON parses an Info from its persisted record form.
func (i *Info) UnmarshalJSON(data []byte) error {
	var j jsonInfo
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	witness, err := bigfield.ParseHex(j.Witness)
	if err != nil {
		return err
	}

	i.Unicorn = j.Unicorn
	i.GValue = j.GValue
	i.Witness = witness
	return nil
}

package vdf

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testModulusDecimal = "6864797660130609714981900799081393217269435300143305409394463459185543183397656052122559640661454554977296311391480858037121987999716643812574028291115057151"
	testHashHex         = "1eeb30c7163271850b6d018e8282093ac6755a771da6267edf6c9b4fce9242ba"
	testWitnessDecimal  = "3519722601447054908751517254890810869415446534615259770378249754169022895693105944708707316137352415946228979178396400856098248558222287197711860247275230167"
	testGValue          = "0106834db40e90d1cafaa9e4c1981873186ebf019629852059aaf8e4ca35da01ca37041a4b475387dde0667c192ec18d1733d147ea9bfafa35ee4b05f74943e3d3d7"
)

func mustBig(t *testing.T, s string, base int) *big.Int {
	t.Helper()
	x, ok := new(big.Int).SetString(s, base)
	require.True(t, ok, "invalid literal %q", s)
	return x
}

func newTestUnicorn(t *testing.T) Unicorn {
	return Unicorn{
		Modulus:       mustBig(t, testModulusDecimal, 10),
		Seed:          mustBig(t, testHashHex, 16),
		Iterations:    1000,
		SecurityLevel: 1,
	}
}

// Eval against a fixed modulus, seed and iteration count reproduces a
// known witness and digest.
func TestEvalValidUnicorn(t *testing.T) {
	u := newTestUnicorn(t)

	witness, g, ok := u.Eval()
	require.True(t, ok)
	assert.Equal(t, mustBig(t, testWitnessDecimal, 10), witness)
	assert.Equal(t, testGValue, g)
}

// Eval reports failure, with zeroed return values, when the modulus
// fails the validity check.
func TestEvalInvalidModulus(t *testing.T) {
	u := newTestUnicorn(t)
	u.Modulus = big.NewInt(2)

	witness, g, ok := u.Eval()
	assert.False(t, ok)
	assert.Nil(t, witness)
	assert.Empty(t, g)
}

// Verify accepts the witness produced for a seed and rejects an
// unrelated one.
func TestVerify(t *testing.T) {
	u := newTestUnicorn(t)
	seed := mustBig(t, testHashHex, 16)
	witness := mustBig(t, testWitnessDecimal, 10)

	assert.True(t, u.Verify(seed, witness))
	assert.False(t, u.Verify(seed, big.NewInt(8)))
}

func TestMutualInverseLawHoldsForSmallModulus(t *testing.T) {
	// A small prime ≡ 3 mod 4, large enough that p >= 2^(2k) for k=1.
	u := Unicorn{
		Modulus:       big.NewInt(31),
		Seed:          big.NewInt(0),
		Iterations:    5,
		SecurityLevel: 1,
	}

	for s := int64(0); s < 31; s++ {
		u.Seed = big.NewInt(s)
		witness, _, ok := u.Eval()
		require.True(t, ok)
		assert.True(t, u.Verify(big.NewInt(s), witness), "seed=%d", s)
	}
}

func TestIsValidModulus(t *testing.T) {
	u := newTestUnicorn(t)
	assert.True(t, u.IsValidModulus())

	u.Modulus = big.NewInt(2)
	assert.False(t, u.IsValidModulus())

	u.Modulus = big.NewInt(4) // composite, >= 2^2
	assert.False(t, u.IsValidModulus())
}

func TestSetSeedCommitment(t *testing.T) {
	u := newTestUnicorn(t)
	c1 := u.SetSeed(big.NewInt(42))
	c2 := u.SetSeed(big.NewInt(42))
	assert.Equal(t, c1, c2)
	assert.Len(t, c1, 64) // hex-encoded SHA-256

	c3 := u.SetSeed(big.NewInt(43))
	assert.NotEqual(t, c1, c3)
}

func TestConstructUnicorn(t *testing.T) {
	info := Construct(mustBig(t, testHashHex, 16), FixedParams{
		Modulus:    testModulusDecimal,
		Iterations: 1000,
		Security:   1,
	})

	assert.Equal(t, testGValue, info.GValue)
	assert.Equal(t, mustBig(t, testWitnessDecimal, 10), info.Witness)
}

func TestConstructPanicsOnInvalidModulus(t *testing.T) {
	assert.Panics(t, func() {
		Construct(mustBig(t, testHashHex, 16), FixedParams{
			Modulus:    "2",
			Iterations: 1000,
			Security:   1,
		})
	})
}

func TestJSONRoundTrip(t *testing.T) {
	info := Construct(mustBig(t, testHashHex, 16), FixedParams{
		Modulus:    testModulusDecimal,
		Iterations: 10,
		Security:   1,
	})

	data, err := info.MarshalJSON()
	require.NoError(t, err)

	var decoded Info
	require.NoError(t, decoded.UnmarshalJSON(data))

	assert.Equal(t, info.GValue, decoded.GValue)
	assert.Equal(t, info.Witness, decoded.Witness)
	assert.Equal(t, info.Unicorn.Modulus, decoded.Unicorn.Modulus)
	assert.Equal(t, info.Unicorn.Seed, decoded.Unicorn.Seed)
}

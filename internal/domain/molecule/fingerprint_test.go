package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

func TestNewFingerprint_CountsSetBits(t *testing.T) {
	fp := NewFingerprint(mtypes.FPMorgan, []byte{0x01, 0x80}, 16)
	assert.Equal(t, 2, fp.NumOnBits)
	assert.Equal(t, 16, fp.Length)
}

func TestFingerprint_GetSetBit(t *testing.T) {
	fp := NewFingerprint(mtypes.FPMorgan, make([]byte, 2), 16)

	assert.False(t, fp.GetBit(0))
	fp.SetBit(0)
	assert.True(t, fp.GetBit(0))
	assert.Equal(t, 1, fp.NumOnBits)

	// Setting an already-set bit doesn't double count.
	fp.SetBit(0)
	assert.Equal(t, 1, fp.NumOnBits)

	// Out-of-range access is a no-op / false, not a panic.
	assert.False(t, fp.GetBit(-1))
	assert.False(t, fp.GetBit(100))
	fp.SetBit(100)
}

func TestFingerprint_ToBytesAndFromBytes(t *testing.T) {
	fp := NewFingerprint(mtypes.FPMorgan, []byte{0xFF, 0x00}, 16)
	roundTripped := FingerprintFromBytes(mtypes.FPMorgan, fp.ToBytes(), 16)
	assert.Equal(t, fp.Bits, roundTripped.Bits)
	assert.Equal(t, fp.NumOnBits, roundTripped.NumOnBits)
}

func TestCalculateMorganFingerprint(t *testing.T) {
	fp, err := CalculateMorganFingerprint("CCO", 2, 2048)
	require.NoError(t, err)
	assert.Equal(t, mtypes.FPMorgan, fp.Type)
	assert.Equal(t, 2048, fp.Length)
	assert.Greater(t, fp.NumOnBits, 0)
}

func TestCalculateMorganFingerprint_RejectsEmpty(t *testing.T) {
	_, err := CalculateMorganFingerprint("", 2, 2048)
	assert.Error(t, err)
}

func TestCalculateMorganFingerprint_DefaultsRadiusAndBits(t *testing.T) {
	fp, err := CalculateMorganFingerprint("CCO", -1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2048, fp.Length)
}

func TestCalculateMACCSFingerprint(t *testing.T) {
	fp, err := CalculateMACCSFingerprint("c1ccccc1")
	require.NoError(t, err)
	assert.Equal(t, mtypes.FPMACCS, fp.Type)
	assert.Equal(t, 166, fp.Length)
	assert.True(t, fp.GetBit(10), "benzene ring pattern should set the aromatic-ring bit")
}

func TestCalculateMACCSFingerprint_RejectsEmpty(t *testing.T) {
	_, err := CalculateMACCSFingerprint("")
	assert.Error(t, err)
}

func TestCalculateTopologicalFingerprint(t *testing.T) {
	fp, err := CalculateTopologicalFingerprint("CCCCO", 1, 7, 2048)
	require.NoError(t, err)
	assert.Equal(t, mtypes.FPTopological, fp.Type)
	assert.Greater(t, fp.NumOnBits, 0)
}

func TestCalculateTopologicalFingerprint_RejectsEmpty(t *testing.T) {
	_, err := CalculateTopologicalFingerprint("", 1, 7, 2048)
	assert.Error(t, err)
}

func TestTanimotoSimilarity_IdenticalFingerprints(t *testing.T) {
	fp1, err := CalculateMorganFingerprint("c1ccccc1", 2, 2048)
	require.NoError(t, err)
	fp2, err := CalculateMorganFingerprint("c1ccccc1", 2, 2048)
	require.NoError(t, err)

	score, err := TanimotoSimilarity(fp1, fp2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestTanimotoSimilarity_DisjointFingerprints(t *testing.T) {
	fp1 := NewFingerprint(mtypes.FPMorgan, []byte{0xF0}, 8)
	fp2 := NewFingerprint(mtypes.FPMorgan, []byte{0x0F}, 8)

	score, err := TanimotoSimilarity(fp1, fp2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestTanimotoSimilarity_HalfOverlap(t *testing.T) {
	fp1 := NewFingerprint(mtypes.FPMorgan, []byte{0xFF, 0x00}, 16) // 8 bits set
	fp2 := NewFingerprint(mtypes.FPMorgan, []byte{0xFF, 0xFF}, 16) // 16 bits set

	score, err := TanimotoSimilarity(fp1, fp2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestTanimotoSimilarity_RejectsMismatchedTypesOrLengths(t *testing.T) {
	fp1 := NewFingerprint(mtypes.FPMorgan, []byte{0xFF}, 8)
	fp2 := NewFingerprint(mtypes.FPMACCS, []byte{0xFF}, 8)
	_, err := TanimotoSimilarity(fp1, fp2)
	assert.Error(t, err)

	fp3 := NewFingerprint(mtypes.FPMorgan, []byte{0xFF, 0xFF}, 16)
	_, err = TanimotoSimilarity(fp1, fp3)
	assert.Error(t, err)
}

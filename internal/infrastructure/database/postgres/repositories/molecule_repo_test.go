package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMoleculeRepository_NotNil(t *testing.T) {
	repo := NewMoleculeRepository(nil, nil)
	assert.NotNil(t, repo)
}

func TestTanimotoSimilarity_IdenticalFingerprints(t *testing.T) {
	fp := []byte{0xFF, 0x0A}
	assert.Equal(t, 1.0, tanimotoSimilarity(fp, fp))
}

func TestTanimotoSimilarity_DisjointFingerprints(t *testing.T) {
	assert.Equal(t, 0.0, tanimotoSimilarity([]byte{0xF0}, []byte{0x0F}))
}

func TestTanimotoSimilarity_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, tanimotoSimilarity(nil, []byte{0xFF}))
	assert.Equal(t, 0.0, tanimotoSimilarity([]byte{0xFF}, nil))
}

func TestTanimotoSimilarity_DifferentLengths(t *testing.T) {
	// The longer slice's extra bytes only contribute to the union, never the
	// intersection, so appending unset bytes must not change the score.
	base := tanimotoSimilarity([]byte{0xFF}, []byte{0x0F})
	extended := tanimotoSimilarity([]byte{0xFF, 0x00}, []byte{0x0F})
	assert.Equal(t, base, extended)
}

func TestPopcount(t *testing.T) {
	assert.Equal(t, 0, popcount(0x00))
	assert.Equal(t, 8, popcount(0xFF))
	assert.Equal(t, 4, popcount(0x0F))
	assert.Equal(t, 1, popcount(0x01))
}

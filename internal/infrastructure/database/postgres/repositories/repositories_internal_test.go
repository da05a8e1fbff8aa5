package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMoleculeRepository(t *testing.T) {
	repo := NewMoleculeRepository(nil, nil)
	assert.NotNil(t, repo)
}

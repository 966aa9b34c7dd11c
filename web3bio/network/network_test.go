package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByChainID(t *testing.T) {
	meta, ok := ByChainID(8453)
	assert.True(t, ok)
	assert.Equal(t, Base, meta.Key)

	_, ok = ByChainID(-1)
	assert.False(t, ok)
}

func TestCatalogUniqueChainIDs(t *testing.T) {
	seen := make(map[int]bool)
	for _, meta := range catalog {
		assert.False(t, seen[meta.ChainID], "duplicate chain id %d", meta.ChainID)
		seen[meta.ChainID] = true

		got, ok := Lookup(meta.Key)
		assert.True(t, ok)
		assert.Equal(t, meta, got)
	}
}

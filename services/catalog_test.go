package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogDisabledReturnsEmpty(t *testing.T) {
	catalog := NewCatalog(nil, false, 6)

	products, err := catalog.Search(context.Background(), "pendente", 6)

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCatalogShortTermReturnsEmpty(t *testing.T) {
	catalog := NewCatalog(nil, true, 6)

	terms := []string{
		"",
		"p",
		"á", // one rune, two bytes
		"  á ",
		"   ",
	}

	for _, term := range terms {
		products, err := catalog.Search(context.Background(), term, 6)

		require.NoError(t, err, "term: %q", term)
		assert.NotNil(t, products, "term: %q", term)
		assert.Empty(t, products, "term: %q", term)
	}
}

package view_test

import (
	"testing"

	"github.com/nfrund/panel/internal/view"
	"github.com/stretchr/testify/assert"
)

func TestResources(t *testing.T) {
	r, ok := view.FindResource("products")
	assert.True(t, ok)
	assert.Equal(t, "Products", r.Title())
	assert.Equal(t, "/products", r.Path())
	assert.Equal(t, "/fragments/products", r.FragmentPath())

	_, ok = view.FindResource("customers")
	assert.False(t, ok)

	for _, res := range view.Resources {
		assert.NotEmpty(t, res.Columns, res.Slug)
	}
}

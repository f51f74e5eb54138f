package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modern-stitch/models"
)

func TestWardrobeToggle(t *testing.T) {
	w := NewWardrobe()
	p1 := product("1", "45", models.CategoryStreetwear, "S")
	p2 := product("2", "85", models.CategoryMen, "30")

	assert.True(t, w.Toggle(p1))
	assert.True(t, w.Toggle(p2))
	assert.True(t, w.Contains("1"))
	assert.Equal(t, 2, w.Len())

	assert.False(t, w.Toggle(p1))
	assert.False(t, w.Contains("1"))

	items := w.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
}

func TestWardrobeDoubleToggleRestores(t *testing.T) {
	w := NewWardrobe()
	p1 := product("1", "45", models.CategoryStreetwear, "S")
	p2 := product("2", "85", models.CategoryMen, "30")
	w.Toggle(p1)
	w.Toggle(p2)
	before := w.Items()

	w.Toggle(p1)
	w.Toggle(p1)

	after := w.Items()
	require.Len(t, after, 2)
	assert.ElementsMatch(t, []string{before[0].ID, before[1].ID}, []string{after[0].ID, after[1].ID})
	// re-added entries go to the end
	assert.Equal(t, "2", after[0].ID)
	assert.Equal(t, "1", after[1].ID)
}

func TestWardrobeNoDuplicates(t *testing.T) {
	w := NewWardrobe()
	p := product("1", "45", models.CategoryStreetwear, "S")
	for i := 0; i < 5; i++ {
		w.Toggle(p)
	}
	assert.Equal(t, 1, w.Len())
	assert.True(t, w.Contains("1"))
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		c, err := NewCategory("Electronics", "Phones", []string{"mobile", " 5g ", ""})
		require.NoError(t, err)

		assert.Equal(t, "Electronics", c.Main)
		assert.Equal(t, "Phones", c.Sub)
		assert.Equal(t, TagList{"mobile", "5g"}, c.Tags)
		assert.Equal(t, "Electronics / Phones", c.DisplayName())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		c, err := NewCategory("  Electronics  ", " Phones ", nil)
		require.NoError(t, err)
		assert.Equal(t, "Electronics", c.Main)
		assert.Equal(t, "Phones", c.Sub)
	})

	t.Run("rejects empty main", func(t *testing.T) {
		_, err := NewCategory("", "Phones", nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty sub", func(t *testing.T) {
		_, err := NewCategory("Electronics", "  ", nil)
		assert.Error(t, err)
	})
}

func TestCategory_Update(t *testing.T) {
	c, err := NewCategory("Electronics", "Phones", nil)
	require.NoError(t, err)
	version := c.GetVersion()

	require.NoError(t, c.Update("Electronics", "Tablets", []string{"ipad"}))
	assert.Equal(t, "Tablets", c.Sub)
	assert.Equal(t, TagList{"ipad"}, c.Tags)
	assert.Equal(t, version+1, c.GetVersion())

	assert.Error(t, c.Update("", "Tablets", nil))
}

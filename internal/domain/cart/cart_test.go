package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lincyaw/storefront/internal/domain/catalog"
)

func testLine(productID uuid.UUID, qty int, variants catalog.VariantSelection) Line {
	return Line{
		ProductID: productID,
		Name:      "Phone",
		Slug:      "phone",
		UnitPrice: decimal.NewFromFloat(499.99),
		Quantity:  qty,
		Variants:  variants,
	}
}

func TestCart_AddLine(t *testing.T) {
	productID := uuid.New()

	t.Run("same key merges into one line", func(t *testing.T) {
		c := NewCart(uuid.New())
		sel := catalog.VariantSelection{"color": "black", "storage": "256GB"}

		require.NoError(t, c.AddLine(testLine(productID, 2, sel)))
		require.NoError(t, c.AddLine(testLine(productID, 3, sel)))

		require.Len(t, c.Lines, 1)
		assert.Equal(t, 5, c.Lines[0].Quantity)
	})

	t.Run("key ignores variant map ordering", func(t *testing.T) {
		c := NewCart(uuid.New())

		require.NoError(t, c.AddLine(testLine(productID, 1, catalog.VariantSelection{"color": "black", "storage": "256GB"})))
		require.NoError(t, c.AddLine(testLine(productID, 1, catalog.VariantSelection{"storage": "256GB", "color": "black"})))

		require.Len(t, c.Lines, 1)
		assert.Equal(t, 2, c.Lines[0].Quantity)
	})

	t.Run("different variant selection makes a new line", func(t *testing.T) {
		c := NewCart(uuid.New())

		require.NoError(t, c.AddLine(testLine(productID, 1, catalog.VariantSelection{"color": "black"})))
		require.NoError(t, c.AddLine(testLine(productID, 1, catalog.VariantSelection{"color": "white"})))

		assert.Len(t, c.Lines, 2)
	})

	t.Run("no variants is its own key", func(t *testing.T) {
		c := NewCart(uuid.New())

		require.NoError(t, c.AddLine(testLine(productID, 1, nil)))
		require.NoError(t, c.AddLine(testLine(productID, 1, catalog.VariantSelection{"color": "black"})))
		require.NoError(t, c.AddLine(testLine(productID, 4, nil)))

		require.Len(t, c.Lines, 2)
		assert.Equal(t, 5, c.Lines[0].Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		c := NewCart(uuid.New())
		assert.Error(t, c.AddLine(testLine(productID, 0, nil)))
		assert.Error(t, c.AddLine(testLine(productID, -1, nil)))
	})

	t.Run("rejects nil product", func(t *testing.T) {
		c := NewCart(uuid.New())
		assert.Error(t, c.AddLine(testLine(uuid.Nil, 1, nil)))
	})
}

func TestCart_SetQuantity(t *testing.T) {
	productID := uuid.New()
	sel := catalog.VariantSelection{"size": "L"}

	t.Run("updates in place", func(t *testing.T) {
		c := NewCart(uuid.New())
		require.NoError(t, c.AddLine(testLine(productID, 2, sel)))

		require.NoError(t, c.SetQuantity(NewLineKey(productID, sel), 7))
		assert.Equal(t, 7, c.Lines[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c := NewCart(uuid.New())
		require.NoError(t, c.AddLine(testLine(productID, 2, sel)))

		require.NoError(t, c.SetQuantity(NewLineKey(productID, sel), 0))
		assert.True(t, c.IsEmpty())
	})

	t.Run("unknown key errors", func(t *testing.T) {
		c := NewCart(uuid.New())
		assert.Error(t, c.SetQuantity(NewLineKey(productID, sel), 1))
	})

	t.Run("negative quantity errors", func(t *testing.T) {
		c := NewCart(uuid.New())
		require.NoError(t, c.AddLine(testLine(productID, 2, sel)))
		assert.Error(t, c.SetQuantity(NewLineKey(productID, sel), -1))
	})
}

func TestCart_RemoveLine(t *testing.T) {
	productID := uuid.New()
	c := NewCart(uuid.New())
	require.NoError(t, c.AddLine(testLine(productID, 1, catalog.VariantSelection{"color": "black"})))
	require.NoError(t, c.AddLine(testLine(productID, 1, catalog.VariantSelection{"color": "white"})))

	require.NoError(t, c.RemoveLine(NewLineKey(productID, catalog.VariantSelection{"color": "black"})))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "white", c.Lines[0].Variants["color"])

	assert.Error(t, c.RemoveLine(NewLineKey(productID, catalog.VariantSelection{"color": "black"})))
}

func TestCart_Totals(t *testing.T) {
	c := NewCart(uuid.New())
	require.NoError(t, c.AddLine(Line{ProductID: uuid.New(), UnitPrice: decimal.NewFromFloat(19.99), Quantity: 2}))
	require.NoError(t, c.AddLine(Line{ProductID: uuid.New(), UnitPrice: decimal.NewFromFloat(5.50), Quantity: 3}))

	assert.Equal(t, 5, c.ItemCount())
	assert.Equal(t, "56.48", c.ItemsSubtotal().StringFixed(2))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "0.00", c.ItemsSubtotal().StringFixed(2))
}

package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// Test helpers
func createTestProduct(t *testing.T) *Product {
	p, err := NewProduct("iPhone 15 Pro", "iphone-15-pro", valueobject.NewMoneyUSDFromFloat(999.00))
	require.NoError(t, err)
	return p
}

// ============================================
// Product Creation Tests
// ============================================

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p := createTestProduct(t)
		assert.Equal(t, "iPhone 15 Pro", p.Name)
		assert.Equal(t, "iphone-15-pro", p.Slug)
		assert.Equal(t, "999.00", p.Price.StringFixed(2))
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.Equal(t, 1, p.GetVersion())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "slug", valueobject.NewMoneyUSDFromFloat(1))
		assert.Error(t, err)
	})

	t.Run("rejects bad slug", func(t *testing.T) {
		_, err := NewProduct("Name", "Bad Slug!", valueobject.NewMoneyUSDFromFloat(1))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Name", "name", valueobject.NewMoneyUSDFromFloat(-1))
		assert.Error(t, err)
	})
}

// ============================================
// Image Tests
// ============================================

func TestProduct_Images(t *testing.T) {
	t.Run("placeholder when no images", func(t *testing.T) {
		p := createTestProduct(t)
		assert.Equal(t, PlaceholderImageURL, p.PrimaryImageURL())
	})

	t.Run("first image becomes primary", func(t *testing.T) {
		p := createTestProduct(t)
		require.NoError(t, p.AddImage("https://cdn.example.com/a.jpg", "", false))
		require.NoError(t, p.AddImage("https://cdn.example.com/b.jpg", "", false))

		assert.Equal(t, "https://cdn.example.com/a.jpg", p.PrimaryImageURL())
	})

	t.Run("explicit primary displaces previous", func(t *testing.T) {
		p := createTestProduct(t)
		require.NoError(t, p.AddImage("https://cdn.example.com/a.jpg", "", false))
		require.NoError(t, p.AddImage("https://cdn.example.com/b.jpg", "", true))

		assert.Equal(t, "https://cdn.example.com/b.jpg", p.PrimaryImageURL())
		assert.False(t, p.Images[0].IsPrimary)
	})

	t.Run("removing primary promotes first remaining", func(t *testing.T) {
		p := createTestProduct(t)
		require.NoError(t, p.AddImage("https://cdn.example.com/a.jpg", "", false))
		require.NoError(t, p.AddImage("https://cdn.example.com/b.jpg", "", false))

		require.NoError(t, p.RemoveImage("https://cdn.example.com/a.jpg"))
		assert.Equal(t, "https://cdn.example.com/b.jpg", p.PrimaryImageURL())
	})

	t.Run("set primary by URL", func(t *testing.T) {
		p := createTestProduct(t)
		require.NoError(t, p.AddImage("https://cdn.example.com/a.jpg", "", false))
		require.NoError(t, p.AddImage("https://cdn.example.com/b.jpg", "", false))

		require.NoError(t, p.SetPrimaryImage("https://cdn.example.com/b.jpg"))
		assert.Equal(t, "https://cdn.example.com/b.jpg", p.PrimaryImageURL())

		assert.Error(t, p.SetPrimaryImage("https://cdn.example.com/missing.jpg"))
	})

	t.Run("remove unknown image errors", func(t *testing.T) {
		p := createTestProduct(t)
		assert.Error(t, p.RemoveImage("https://cdn.example.com/nope.jpg"))
	})
}

// ============================================
// Review and Rating Tests
// ============================================

func TestProduct_AddReview(t *testing.T) {
	t.Run("recomputes summary on each write", func(t *testing.T) {
		p := createTestProduct(t)

		require.NoError(t, p.AddReview(uuid.New(), "alice", 5, "great"))
		require.NoError(t, p.AddReview(uuid.New(), "bob", 4, "good"))
		require.NoError(t, p.AddReview(uuid.New(), "carol", 4, ""))

		assert.Equal(t, 3, p.RatingCount)
		assert.Equal(t, "4.33", p.RatingAvg.StringFixed(2))
		assert.Equal(t, RatingDistribution{4: 2, 5: 1}, p.RatingDist)
	})

	t.Run("one review per user", func(t *testing.T) {
		p := createTestProduct(t)
		userID := uuid.New()

		require.NoError(t, p.AddReview(userID, "alice", 5, "great"))
		err := p.AddReview(userID, "alice", 1, "changed my mind")
		assert.Error(t, err)
		assert.Equal(t, 1, p.RatingCount)
	})

	t.Run("rating bounds", func(t *testing.T) {
		p := createTestProduct(t)
		assert.Error(t, p.AddReview(uuid.New(), "alice", 0, ""))
		assert.Error(t, p.AddReview(uuid.New(), "alice", 6, ""))
	})

	t.Run("author required", func(t *testing.T) {
		p := createTestProduct(t)
		assert.Error(t, p.AddReview(uuid.New(), "  ", 3, ""))
	})
}

// ============================================
// Status and Misc Tests
// ============================================

func TestProduct_StatusTransitions(t *testing.T) {
	p := createTestProduct(t)
	assert.True(t, p.IsActive())

	require.NoError(t, p.Archive())
	assert.False(t, p.IsActive())
	assert.Error(t, p.Archive())

	require.NoError(t, p.Activate())
	assert.True(t, p.IsActive())
	assert.Error(t, p.Activate())
}

func TestProduct_SetPrice(t *testing.T) {
	p := createTestProduct(t)
	require.NoError(t, p.SetPrice(valueobject.NewMoneyUSDFromFloat(899.99)))
	assert.Equal(t, "899.99", p.Price.StringFixed(2))

	assert.Error(t, p.SetPrice(valueobject.NewMoneyUSDFromFloat(-1)))
}

func TestProduct_SetStock(t *testing.T) {
	p := createTestProduct(t)
	require.NoError(t, p.SetStock(5))
	assert.True(t, p.InStock())

	require.NoError(t, p.SetStock(0))
	assert.False(t, p.InStock())

	assert.Error(t, p.SetStock(-1))
}

func TestVariantSelection_CanonicalKey(t *testing.T) {
	a := VariantSelection{"color": "black", "storage": "256GB"}
	b := VariantSelection{"storage": "256GB", "color": "black"}

	assert.Equal(t, a.CanonicalKey(), b.CanonicalKey())
	assert.Equal(t, "color=black;storage=256GB", a.CanonicalKey())
	assert.Equal(t, "", VariantSelection{}.CanonicalKey())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(VariantSelection{"color": "white", "storage": "256GB"}))
}

func TestVariantOptions_Offers(t *testing.T) {
	v := VariantOptions{"color": {"black", "white"}}
	assert.True(t, v.Offers("color", "black"))
	assert.False(t, v.Offers("color", "red"))
	assert.False(t, v.Offers("size", "L"))
}

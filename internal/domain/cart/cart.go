package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/shared"
)

// LineKey identifies a cart line: the same product with different
// variant selections occupies separate lines. The variant part is the
// canonical sorted serialization, so key equality never depends on the
// order the selection map was built in.
type LineKey struct {
	ProductID  uuid.UUID `json:"product_id"`
	VariantKey string    `json:"variant_key"`
}

// NewLineKey builds a line key from a product and variant selection
func NewLineKey(productID uuid.UUID, variants catalog.VariantSelection) LineKey {
	return LineKey{
		ProductID:  productID,
		VariantKey: variants.CanonicalKey(),
	}
}

// Line is one entry in a cart
type Line struct {
	ProductID uuid.UUID                `json:"product_id"`
	Name      string                   `json:"name"`
	Slug      string                   `json:"slug"`
	UnitPrice decimal.Decimal          `json:"unit_price"`
	Quantity  int                      `json:"quantity"`
	ImageURL  string                   `json:"image_url"`
	Variants  catalog.VariantSelection `json:"variants,omitempty"`
}

// Key returns the line's identity
func (l Line) Key() LineKey {
	return NewLineKey(l.ProductID, l.Variants)
}

// Subtotal returns unit price times quantity
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a user's server-side cart. It is persisted through the Store
// as a single JSON document keyed by user.
type Cart struct {
	UserID    uuid.UUID `json:"user_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		UserID:    userID,
		Lines:     []Line{},
		UpdatedAt: time.Now(),
	}
}

// AddLine upserts a line: an add with an existing key increments that
// line's quantity, a different variant selection makes a new line
func (c *Cart) AddLine(line Line) error {
	if line.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if line.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	key := line.Key()
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines[i].Quantity += line.Quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	c.Lines = append(c.Lines, line)
	c.UpdatedAt = time.Now()
	return nil
}

// SetQuantity sets the quantity of the line with the given key.
// Quantity zero removes the line.
func (c *Cart) SetQuantity(key LineKey, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if quantity == 0 {
		return c.RemoveLine(key)
	}

	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveLine removes the line with the given key
func (c *Cart) RemoveLine(key LineKey) error {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.UpdatedAt = time.Now()
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount returns the total number of units across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// ItemsSubtotal returns the sum of line subtotals, rounded to cents
func (c *Cart) ItemsSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

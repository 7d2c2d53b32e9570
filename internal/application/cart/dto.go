package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/cart"
	domainorder "github.com/lincyaw/storefront/internal/domain/order"
)

// AddItemRequest puts a product into the cart. Price and display data
// are resolved server-side from the catalog, never taken from the
// client.
type AddItemRequest struct {
	ProductID uuid.UUID         `json:"product_id" binding:"required"`
	Quantity  int               `json:"quantity" binding:"required,min=1"`
	Variants  map[string]string `json:"variants"`
}

// UpdateItemRequest changes the quantity of one cart line. Quantity
// zero removes the line.
type UpdateItemRequest struct {
	ProductID uuid.UUID         `json:"product_id" binding:"required"`
	Quantity  int               `json:"quantity" binding:"min=0"`
	Variants  map[string]string `json:"variants"`
}

// RemoveItemRequest deletes one cart line
type RemoveItemRequest struct {
	ProductID uuid.UUID         `json:"product_id" binding:"required"`
	Variants  map[string]string `json:"variants"`
}

// CartLineResponse is one line as returned to the client
type CartLineResponse struct {
	ProductID uuid.UUID         `json:"product_id"`
	Name      string            `json:"name"`
	Slug      string            `json:"slug"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	ImageURL  string            `json:"image_url"`
	Variants  map[string]string `json:"variants,omitempty"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
}

// CartResponse is the full cart with computed totals
type CartResponse struct {
	UserID        uuid.UUID          `json:"user_id"`
	Lines         []CartLineResponse `json:"lines"`
	ItemCount     int                `json:"item_count"`
	ItemsPrice    decimal.Decimal    `json:"items_price"`
	ShippingPrice decimal.Decimal    `json:"shipping_price"`
	TaxPrice      decimal.Decimal    `json:"tax_price"`
	TotalPrice    decimal.Decimal    `json:"total_price"`
}

// ToCartResponse converts a cart to its response shape, computing the
// same totals an order created from it would carry
func ToCartResponse(c *cart.Cart) *CartResponse {
	items := make([]domainorder.Item, len(c.Lines))
	lines := make([]CartLineResponse, len(c.Lines))
	for i, l := range c.Lines {
		items[i] = domainorder.Item{UnitPrice: l.UnitPrice, Quantity: l.Quantity}
		lines[i] = CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Slug:      l.Slug,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			ImageURL:  l.ImageURL,
			Variants:  l.Variants,
			Subtotal:  l.Subtotal().Round(2),
		}
	}
	pricing := domainorder.ComputePricing(items)

	return &CartResponse{
		UserID:        c.UserID,
		Lines:         lines,
		ItemCount:     c.ItemCount(),
		ItemsPrice:    pricing.ItemsPrice,
		ShippingPrice: pricing.ShippingPrice,
		TaxPrice:      pricing.TaxPrice,
		TotalPrice:    pricing.TotalPrice,
	}
}

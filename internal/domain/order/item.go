package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/shared"
	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// Item is a line item snapshotted at order-creation time. Name, price
// and image are copied from the product so later catalog edits never
// change what the customer agreed to pay.
type Item struct {
	ProductID uuid.UUID                `json:"product_id"`
	Name      string                   `json:"name"`
	Slug      string                   `json:"slug"`
	UnitPrice decimal.Decimal          `json:"unit_price"`
	Quantity  int                      `json:"quantity"`
	ImageURL  string                   `json:"image_url"`
	Variants  catalog.VariantSelection `json:"variants,omitempty"`
}

// NewItem creates an order line item from an authoritative product
// snapshot. The unit price always comes from the catalog, never from
// the client.
func NewItem(product *catalog.Product, quantity int, variants catalog.VariantSelection) (Item, error) {
	if product == nil {
		return Item{}, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be nil")
	}
	if quantity <= 0 {
		return Item{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return Item{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		UnitPrice: product.Price,
		Quantity:  quantity,
		ImageURL:  product.PrimaryImageURL(),
		Variants:  variants,
	}, nil
}

// Subtotal returns unit price times quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// UnitPriceMoney returns the unit price as a Money value object
func (i Item) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPrice)
}

// ItemList is the jsonb-stored list of snapshotted order items
type ItemList []Item

// Value implements driver.Valuer
func (l ItemList) Value() (driver.Value, error) {
	if l == nil {
		l = ItemList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *ItemList) Scan(value any) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into ItemList", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, l)
}

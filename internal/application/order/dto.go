package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/order"
)

// OrderItemInput is one cart line submitted at checkout. Any price the
// client sends is ignored; the catalog price is re-fetched server-side.
type OrderItemInput struct {
	ProductID uuid.UUID         `json:"product_id" binding:"required"`
	Quantity  int               `json:"quantity" binding:"required,min=1"`
	Variants  map[string]string `json:"variants"`
}

// AddressInput is the shipping address submitted at checkout
type AddressInput struct {
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress AddressInput     `json:"shipping_address" binding:"required"`
	PaymentMethod   string           `json:"payment_method" binding:"required,max=50"`
}

// OrderItemResponse represents a snapshotted line item
type OrderItemResponse struct {
	ProductID uuid.UUID         `json:"product_id"`
	Name      string            `json:"name"`
	Slug      string            `json:"slug"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	ImageURL  string            `json:"image_url"`
	Variants  map[string]string `json:"variants,omitempty"`
}

// AddressResponse represents a shipping address
type AddressResponse struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	UserID           uuid.UUID           `json:"user_id"`
	Items            []OrderItemResponse `json:"items"`
	ShippingAddress  AddressResponse     `json:"shipping_address"`
	PaymentMethod    string              `json:"payment_method"`
	ItemsPrice       decimal.Decimal     `json:"items_price"`
	ShippingPrice    decimal.Decimal     `json:"shipping_price"`
	TaxPrice         decimal.Decimal     `json:"tax_price"`
	TotalPrice       decimal.Decimal     `json:"total_price"`
	PaymentStatus    string              `json:"payment_status"`
	GatewayReference string              `json:"gateway_reference,omitempty"`
	IsPaid           bool                `json:"is_paid"`
	PaidAt           *time.Time          `json:"paid_at,omitempty"`
	IsDelivered      bool                `json:"is_delivered"`
	DeliveredAt      *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Paid      *bool  `form:"paid"`
	Delivered *bool  `form:"delivered"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SalesByDateRequest represents the report date range
type SalesByDateRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// SalesByDateResponse is one day's aggregate in the sales report
type SalesByDateResponse struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
			Variants:  item.Variants,
		})
	}

	return OrderResponse{
		ID:     o.ID,
		UserID: o.UserID,
		Items:  items,
		ShippingAddress: AddressResponse{
			Street:     o.ShippingAddress.Street(),
			City:       o.ShippingAddress.City(),
			State:      o.ShippingAddress.State(),
			PostalCode: o.ShippingAddress.PostalCode(),
			Country:    o.ShippingAddress.Country(),
		},
		PaymentMethod:    o.PaymentMethod,
		ItemsPrice:       o.ItemsPrice,
		ShippingPrice:    o.ShippingPrice,
		TaxPrice:         o.TaxPrice,
		TotalPrice:       o.TotalPrice,
		PaymentStatus:    o.PaymentStatus.String(),
		GatewayReference: o.GatewayReference,
		IsPaid:           o.IsPaid,
		PaidAt:           o.PaidAt,
		IsDelivered:      o.IsDelivered,
		DeliveredAt:      o.DeliveredAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

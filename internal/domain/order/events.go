package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated            = "OrderCreated"
	EventTypeOrderPaymentInitialized = "OrderPaymentInitialized"
	EventTypeOrderPaid               = "OrderPaid"
	EventTypeOrderVerificationFailed = "OrderVerificationFailed"
	EventTypeOrderDelivered          = "OrderDelivered"
)

// OrderCreatedEvent is published when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	UserID     uuid.UUID       `json:"user_id"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		ItemCount:       len(o.Items),
		TotalPrice:      o.TotalPrice,
	}
}

// OrderPaymentInitializedEvent is published when a gateway transaction
// has been created for the order
type OrderPaymentInitializedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	Reference string    `json:"reference"`
}

// NewOrderPaymentInitializedEvent creates a new OrderPaymentInitializedEvent
func NewOrderPaymentInitializedEvent(o *Order) *OrderPaymentInitializedEvent {
	return &OrderPaymentInitializedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentInitialized, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Reference:       o.GatewayReference,
	}
}

// OrderPaidEvent is published when an order is marked paid
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID       `json:"order_id"`
	UserID     uuid.UUID       `json:"user_id"`
	Reference  string          `json:"reference,omitempty"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		Reference:       o.GatewayReference,
		TotalPrice:      o.TotalPrice,
	}
}

// OrderVerificationFailedEvent is published when a payment verification
// attempt fails
type OrderVerificationFailedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	Reference string    `json:"reference,omitempty"`
	Reason    string    `json:"reason"`
}

// NewOrderVerificationFailedEvent creates a new OrderVerificationFailedEvent
func NewOrderVerificationFailedEvent(o *Order, reason string) *OrderVerificationFailedEvent {
	return &OrderVerificationFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderVerificationFailed, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		Reference:       o.GatewayReference,
		Reason:          reason,
	}
}

// OrderDeliveredEvent is published when an order is marked delivered
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(o *Order) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
	}
}

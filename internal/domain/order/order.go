package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/shared"
	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// PaymentStatus tracks an order through the gateway payment flow
type PaymentStatus string

const (
	PaymentStatusUnpaid             PaymentStatus = "unpaid"
	PaymentStatusInitializing       PaymentStatus = "initializing"
	PaymentStatusAwaitingGateway    PaymentStatus = "awaiting_gateway"
	PaymentStatusVerifying          PaymentStatus = "verifying"
	PaymentStatusPaid               PaymentStatus = "paid"
	PaymentStatusVerificationFailed PaymentStatus = "verification_failed"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusInitializing, PaymentStatusAwaitingGateway,
		PaymentStatusVerifying, PaymentStatusPaid, PaymentStatusVerificationFailed:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusUnpaid:
		return target == PaymentStatusInitializing
	case PaymentStatusInitializing:
		// A failed gateway call drops back to unpaid so the customer
		// can retry.
		return target == PaymentStatusAwaitingGateway || target == PaymentStatusUnpaid
	case PaymentStatusAwaitingGateway:
		return target == PaymentStatusVerifying || target == PaymentStatusInitializing
	case PaymentStatusVerifying:
		return target == PaymentStatusPaid || target == PaymentStatusVerificationFailed
	case PaymentStatusVerificationFailed:
		// Retryable: re-verify with the same reference.
		return target == PaymentStatusVerifying
	case PaymentStatusPaid:
		return false // Terminal state
	}
	return false
}

// Order is the aggregate root for customer orders. Line items are a
// snapshot taken at creation; totals are computed once from that
// snapshot and stored.
type Order struct {
	shared.BaseAggregateRoot
	UserID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	Items            ItemList            `gorm:"type:jsonb;not null;default:'[]'"`
	ShippingAddress  valueobject.Address `gorm:"type:jsonb"`
	PaymentMethod    string              `gorm:"type:varchar(50);not null"`
	ItemsPrice       decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	ShippingPrice    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	TaxPrice         decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	TotalPrice       decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentStatus    PaymentStatus       `gorm:"type:varchar(30);not null;default:'unpaid';index"`
	GatewayReference string              `gorm:"type:varchar(100);index"`
	IsPaid           bool                `gorm:"not null;default:false"`
	PaidAt           *time.Time
	IsDelivered      bool `gorm:"not null;default:false"`
	DeliveredAt      *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order from snapshotted items. Totals are derived
// from the snapshot via the pricing policy.
func NewOrder(userID uuid.UUID, items []Item, address valueobject.Address, paymentMethod string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address is required")
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}

	pricing := ComputePricing(items)

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             items,
		ShippingAddress:   address,
		PaymentMethod:     paymentMethod,
		ItemsPrice:        pricing.ItemsPrice,
		ShippingPrice:     pricing.ShippingPrice,
		TaxPrice:          pricing.TaxPrice,
		TotalPrice:        pricing.TotalPrice,
		PaymentStatus:     PaymentStatusUnpaid,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// BeginPaymentInitialization moves the order into the initializing
// state. Guards against double payment: an already-paid order cannot
// re-enter the payment flow.
func (o *Order) BeginPaymentInitialization() error {
	if o.IsPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order has already been paid")
	}
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusInitializing) {
		// Re-initialization from awaiting_gateway is allowed via the
		// intermediate transition; anything else is a state violation.
		if o.PaymentStatus != PaymentStatusAwaitingGateway && o.PaymentStatus != PaymentStatusVerificationFailed {
			return shared.NewDomainError("INVALID_STATE",
				"Cannot initialize payment from status "+o.PaymentStatus.String())
		}
	}

	o.PaymentStatus = PaymentStatusInitializing
	o.Touch()
	o.IncrementVersion()

	return nil
}

// AttachGatewayReference stores the transaction reference returned by
// the gateway and moves the order to awaiting the customer's redirect
func (o *Order) AttachGatewayReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Gateway reference cannot be empty")
	}
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusAwaitingGateway) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot attach gateway reference from status "+o.PaymentStatus.String())
	}

	o.GatewayReference = reference
	o.PaymentStatus = PaymentStatusAwaitingGateway
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaymentInitializedEvent(o))

	return nil
}

// AbortPaymentInitialization returns an order to unpaid after a failed
// gateway call
func (o *Order) AbortPaymentInitialization() {
	if o.PaymentStatus != PaymentStatusInitializing {
		return
	}
	o.PaymentStatus = PaymentStatusUnpaid
	o.Touch()
	o.IncrementVersion()
}

// BeginVerification moves the order into the verifying state
func (o *Order) BeginVerification() error {
	if o.IsPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order has already been paid")
	}
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusVerifying) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot verify payment from status "+o.PaymentStatus.String())
	}

	o.PaymentStatus = PaymentStatusVerifying
	o.Touch()
	o.IncrementVersion()

	return nil
}

// MarkPaid completes a successful verification
func (o *Order) MarkPaid() error {
	if o.IsPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order has already been paid")
	}
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusPaid) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot mark order paid from status "+o.PaymentStatus.String())
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.IsPaid = true
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// MarkPaidManually records an out-of-band payment (admin override)
func (o *Order) MarkPaidManually() error {
	if o.IsPaid {
		return shared.NewDomainError("ALREADY_PAID", "Order has already been paid")
	}

	now := time.Now()
	o.PaymentStatus = PaymentStatusPaid
	o.IsPaid = true
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// FailVerification records a failed verification. The order stays
// unpaid and a re-verify with the same reference remains possible.
func (o *Order) FailVerification(reason string) error {
	if !o.PaymentStatus.CanTransitionTo(PaymentStatusVerificationFailed) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot fail verification from status "+o.PaymentStatus.String())
	}

	o.PaymentStatus = PaymentStatusVerificationFailed
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderVerificationFailedEvent(o, reason))

	return nil
}

// MarkDelivered records delivery of a paid order
func (o *Order) MarkDelivered() error {
	if !o.IsPaid {
		return shared.NewDomainError("NOT_PAID", "Cannot deliver an unpaid order")
	}
	if o.IsDelivered {
		return shared.NewDomainError("ALREADY_DELIVERED", "Order has already been delivered")
	}

	now := time.Now()
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDeliveredEvent(o))

	return nil
}

// TotalMoney returns the grand total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalPrice)
}

// BelongsTo reports whether the order was placed by the given user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}

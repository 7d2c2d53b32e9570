package payment

import "github.com/google/uuid"

// InitializePaymentRequest starts a payment attempt for an order
type InitializePaymentRequest struct {
	OrderID     uuid.UUID `json:"order_id" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	CallbackURL string    `json:"callback_url"`
}

// InitializePaymentResponse carries the redirect target for the
// customer
type InitializePaymentResponse struct {
	OrderID          uuid.UUID `json:"order_id"`
	Reference        string    `json:"reference"`
	AuthorizationURL string    `json:"authorization_url"`
	AccessCode       string    `json:"access_code"`
	PaymentStatus    string    `json:"payment_status"`
}

// VerifyPaymentRequest confirms a payment attempt by gateway reference
type VerifyPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// VerifyPaymentResponse reports the order's payment state after
// verification
type VerifyPaymentResponse struct {
	OrderID       uuid.UUID `json:"order_id"`
	Reference     string    `json:"reference"`
	PaymentStatus string    `json:"payment_status"`
	IsPaid        bool      `json:"is_paid"`
	PaidAt        *string   `json:"paid_at,omitempty"`
}

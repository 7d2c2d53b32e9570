package payment

import (
	"context"
	"time"
)

// TransactionStatus is the gateway's view of a transaction
type TransactionStatus string

const (
	TransactionStatusSuccess   TransactionStatus = "success"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusAbandoned TransactionStatus = "abandoned"
)

// InitializeRequest asks the gateway to create a transaction. Amount is
// in integer minor units (cents); the gateway never sees a float.
type InitializeRequest struct {
	AmountMinor int64
	Currency    string
	Email       string
	Reference   string
	CallbackURL string
}

// InitializeResult is the gateway's response to a created transaction
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyResult is the gateway's response to a verification query.
// AmountMinor is the amount the gateway actually settled, in minor
// units.
type VerifyResult struct {
	Status      TransactionStatus
	Reference   string
	AmountMinor int64
	Currency    string
	PaidAt      *time.Time
	Channel     string
}

// Gateway wraps the payment provider's HTTP API. Implemented by the
// infrastructure layer.
type Gateway interface {
	// InitializeTransaction creates a transaction and returns the URL
	// the customer is redirected to
	InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResult, error)

	// VerifyTransaction queries the status of a transaction by its
	// reference
	VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error)
}

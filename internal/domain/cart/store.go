package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store persists carts across requests. Implementations serialize the
// cart as a single JSON document keyed by user ID.
type Store interface {
	// Get loads a user's cart, returning an empty cart when none is
	// stored
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save stores the cart
	Save(ctx context.Context, c *Cart) error

	// Delete removes a user's cart
	Delete(ctx context.Context, userID uuid.UUID) error
}

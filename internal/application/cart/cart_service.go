package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lincyaw/storefront/internal/domain/cart"
	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/shared"
)

// Service manages the per-user server-side cart. Line data is always
// resolved from the catalog at add time; client-supplied prices are
// never stored.
type Service struct {
	store       cart.Store
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a cart application service
func NewService(store cart.Store, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		store:       store,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the user's cart with computed totals. A user with no
// stored cart gets an empty one.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// AddItem resolves the product from the catalog and upserts a line.
// Adding the same product with the same variant selection increments
// the existing line; a different selection makes a new line.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, req *AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", fmt.Sprintf("Product %s is not available", product.Name))
	}

	variants := catalog.VariantSelection(req.Variants)
	if err := validateSelection(product, variants); err != nil {
		return nil, err
	}

	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	line := cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
		ImageURL:  product.PrimaryImageURL(),
		Variants:  variants,
	}
	if err := c.AddLine(line); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debug("cart item added",
		zap.String("user_id", userID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", req.Quantity))

	return ToCartResponse(c), nil
}

// UpdateItem sets the quantity of an existing line; quantity zero
// removes it
func (s *Service) UpdateItem(ctx context.Context, userID uuid.UUID, req *UpdateItemRequest) (*CartResponse, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := cart.NewLineKey(req.ProductID, catalog.VariantSelection(req.Variants))
	if err := c.SetQuantity(key, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// RemoveItem deletes one line from the cart
func (s *Service) RemoveItem(ctx context.Context, userID uuid.UUID, req *RemoveItemRequest) (*CartResponse, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := cart.NewLineKey(req.ProductID, catalog.VariantSelection(req.Variants))
	if err := c.RemoveLine(key); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return ToCartResponse(c), nil
}

// Clear empties the user's cart
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Delete(ctx, userID)
}

// validateSelection checks every chosen dimension/value pair against
// the options the product actually offers
func validateSelection(product *catalog.Product, variants catalog.VariantSelection) error {
	for dimension, value := range variants {
		if !product.Variants.Offers(dimension, value) {
			return shared.NewDomainError("INVALID_VARIANT",
				fmt.Sprintf("Product %s does not offer %s %q", product.Name, dimension, value))
		}
	}
	return nil
}

package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lincyaw/storefront/internal/domain/cart"
	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/shared"
	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// MockCartStore is a mock implementation of cart.Store
type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartStore) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindSlugsWithPrefix(ctx context.Context, base string) ([]string, error) {
	args := m.Called(ctx, base)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Test helper functions
func createTestProduct(name, slug string, price float64) *catalog.Product {
	product, _ := catalog.NewProduct(name, slug, valueobject.NewMoneyUSDFromFloat(price))
	return product
}

// Tests for Service.AddItem
func TestCartService_AddItem_ResolvesPriceFromCatalog(t *testing.T) {
	store := new(MockCartStore)
	productRepo := new(MockProductRepository)
	service := NewService(store, productRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Headphones", "headphones", 60.00)

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	store.On("Get", ctx, userID).Return(cart.NewCart(userID), nil)
	store.On("Save", ctx, mock.AnythingOfType("*cart.Cart")).Return(nil)

	result, err := service.AddItem(ctx, userID, &AddItemRequest{ProductID: product.ID, Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, result.Lines, 1)
	assert.True(t, result.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(60.00)))
	assert.True(t, result.ItemsPrice.Equal(decimal.NewFromFloat(120.00)))
	assert.True(t, result.ShippingPrice.IsZero())
	assert.True(t, result.TaxPrice.Equal(decimal.NewFromFloat(18.00)))
	assert.True(t, result.TotalPrice.Equal(decimal.NewFromFloat(138.00)))
	store.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCartService_AddItem_SameVariantsMergeIntoOneLine(t *testing.T) {
	store := new(MockCartStore)
	productRepo := new(MockProductRepository)
	service := NewService(store, productRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Phone", "phone", 60.00)
	product.SetVariants(catalog.VariantOptions{
		"color":   {"black", "white"},
		"storage": {"128GB", "256GB"},
	})

	existing := cart.NewCart(userID)
	assert.NoError(t, existing.AddLine(cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		UnitPrice: product.Price,
		Quantity:  1,
		Variants:  catalog.VariantSelection{"color": "black", "storage": "256GB"},
	}))

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	store.On("Get", ctx, userID).Return(existing, nil)
	store.On("Save", ctx, existing).Return(nil)

	// Same pairs, different map construction order.
	result, err := service.AddItem(ctx, userID, &AddItemRequest{
		ProductID: product.ID,
		Quantity:  2,
		Variants:  map[string]string{"storage": "256GB", "color": "black"},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Lines, 1)
	assert.Equal(t, 3, result.Lines[0].Quantity)
}

func TestCartService_AddItem_DifferentVariantsMakeSeparateLines(t *testing.T) {
	store := new(MockCartStore)
	productRepo := new(MockProductRepository)
	service := NewService(store, productRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Phone", "phone", 60.00)
	product.SetVariants(catalog.VariantOptions{"color": {"black", "white"}})

	existing := cart.NewCart(userID)
	assert.NoError(t, existing.AddLine(cart.Line{
		ProductID: product.ID,
		UnitPrice: product.Price,
		Quantity:  1,
		Variants:  catalog.VariantSelection{"color": "black"},
	}))

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	store.On("Get", ctx, userID).Return(existing, nil)
	store.On("Save", ctx, existing).Return(nil)

	result, err := service.AddItem(ctx, userID, &AddItemRequest{
		ProductID: product.ID,
		Quantity:  1,
		Variants:  map[string]string{"color": "white"},
	})

	assert.NoError(t, err)
	assert.Len(t, result.Lines, 2)
}

func TestCartService_AddItem_UnofferedVariantRejected(t *testing.T) {
	store := new(MockCartStore)
	productRepo := new(MockProductRepository)
	service := NewService(store, productRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Phone", "phone", 60.00)
	product.SetVariants(catalog.VariantOptions{"color": {"black", "white"}})

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.AddItem(ctx, userID, &AddItemRequest{
		ProductID: product.ID,
		Quantity:  1,
		Variants:  map[string]string{"color": "chartreuse"},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_VARIANT", domainErr.Code)
	store.AssertNotCalled(t, "Save")
}

func TestCartService_AddItem_ArchivedProductRejected(t *testing.T) {
	store := new(MockCartStore)
	productRepo := new(MockProductRepository)
	service := NewService(store, productRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Phone", "phone", 60.00)
	assert.NoError(t, product.Archive())

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.AddItem(ctx, userID, &AddItemRequest{ProductID: product.ID, Quantity: 1})

	assert.Error(t, err)
	assert.Nil(t, result)
	store.AssertNotCalled(t, "Save")
}

// Tests for Service.UpdateItem
func TestCartService_UpdateItem_ZeroQuantityRemovesLine(t *testing.T) {
	store := new(MockCartStore)
	productRepo := new(MockProductRepository)
	service := NewService(store, productRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	existing := cart.NewCart(userID)
	assert.NoError(t, existing.AddLine(cart.Line{
		ProductID: productID,
		UnitPrice: decimal.NewFromFloat(10.00),
		Quantity:  2,
	}))

	store.On("Get", ctx, userID).Return(existing, nil)
	store.On("Save", ctx, existing).Return(nil)

	result, err := service.UpdateItem(ctx, userID, &UpdateItemRequest{ProductID: productID, Quantity: 0})

	assert.NoError(t, err)
	assert.Empty(t, result.Lines)
}

func TestCartService_UpdateItem_MissingLine(t *testing.T) {
	store := new(MockCartStore)
	productRepo := new(MockProductRepository)
	service := NewService(store, productRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()

	store.On("Get", ctx, userID).Return(cart.NewCart(userID), nil)

	result, err := service.UpdateItem(ctx, userID, &UpdateItemRequest{ProductID: uuid.New(), Quantity: 1})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, result)
	store.AssertNotCalled(t, "Save")
}

// Tests for Service.Clear
func TestCartService_Clear(t *testing.T) {
	store := new(MockCartStore)
	productRepo := new(MockProductRepository)
	service := NewService(store, productRepo, zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()

	store.On("Delete", ctx, userID).Return(nil)

	assert.NoError(t, service.Clear(ctx, userID))
	store.AssertExpectations(t)
}

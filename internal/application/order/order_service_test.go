package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lincyaw/storefront/internal/domain/cart"
	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/order"
	"github.com/lincyaw/storefront/internal/domain/shared"
	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByReference(ctx context.Context, reference string) (*order.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SalesByDate(ctx context.Context, from, to time.Time) ([]order.SalesByDateRow, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]order.SalesByDateRow), args.Error(1)
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

// Test helper functions
func newTestService(orderRepo *MockOrderRepository, productRepo *MockProductRepository, cartStore *MockCartStore) *Service {
	return NewService(orderRepo, productRepo, cartStore, nil)
}

func createTestProduct(name, slug string, price float64) *catalog.Product {
	product, _ := catalog.NewProduct(name, slug, valueobject.NewMoneyUSDFromFloat(price))
	return product
}

func testAddress() AddressInput {
	return AddressInput{
		Street:     "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
	}
}

func createPaidOrder(t *testing.T, userID uuid.UUID, price float64, quantity int) *order.Order {
	t.Helper()
	product := createTestProduct("Widget", "widget", price)
	item, err := order.NewItem(product, quantity, nil)
	assert.NoError(t, err)
	address, err := valueobject.NewAddress("1 Main St", "Springfield", "12345")
	assert.NoError(t, err)
	o, err := order.NewOrder(userID, []order.Item{item}, address, "card")
	assert.NoError(t, err)
	assert.NoError(t, o.MarkPaidManually())
	return o
}

// Tests for Service.Create
func TestOrderService_Create_PricesComeFromCatalog(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Headphones", "headphones", 60.00)

	productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	cartStore.On("Delete", ctx, userID).Return(nil)

	result, err := service.Create(ctx, userID, CreateOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		ShippingAddress: testAddress(),
		PaymentMethod:   "card",
	})

	assert.NoError(t, err)
	assert.True(t, result.ItemsPrice.Equal(decimal.NewFromFloat(120.00)))
	assert.True(t, result.ShippingPrice.IsZero())
	assert.True(t, result.TaxPrice.Equal(decimal.NewFromFloat(18.00)))
	assert.True(t, result.TotalPrice.Equal(decimal.NewFromFloat(138.00)))
	assert.True(t, result.Items[0].UnitPrice.Equal(decimal.NewFromFloat(60.00)))
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	cartStore.AssertExpectations(t)
}

func TestOrderService_Create_SmallOrderPaysFlatShipping(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Mug", "mug", 20.00)

	productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	orderRepo.On("Save", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	cartStore.On("Delete", ctx, userID).Return(nil)

	result, err := service.Create(ctx, userID, CreateOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
		PaymentMethod:   "card",
	})

	assert.NoError(t, err)
	assert.True(t, result.ShippingPrice.Equal(decimal.NewFromFloat(10.00)))
	assert.True(t, result.TaxPrice.Equal(decimal.NewFromFloat(3.00)))
	assert.True(t, result.TotalPrice.Equal(decimal.NewFromFloat(33.00)))
}

func TestOrderService_Create_UnknownProductAbortsWholeOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Mug", "mug", 20.00)
	unknownID := uuid.New()

	productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID, unknownID}).
		Return([]catalog.Product{*product}, nil)

	result, err := service.Create(ctx, userID, CreateOrderRequest{
		Items: []OrderItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: unknownID, Quantity: 1},
		},
		ShippingAddress: testAddress(),
		PaymentMethod:   "card",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
	orderRepo.AssertNotCalled(t, "Save")
	cartStore.AssertNotCalled(t, "Delete")
}

func TestOrderService_Create_ArchivedProductRejected(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	userID := uuid.New()
	product := createTestProduct("Mug", "mug", 20.00)
	assert.NoError(t, product.Archive())

	productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)

	result, err := service.Create(ctx, userID, CreateOrderRequest{
		Items:           []OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
		PaymentMethod:   "card",
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	orderRepo.AssertNotCalled(t, "Save")
}

// Tests for Service.GetByID
func TestOrderService_GetByID_OwnerCanRead(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	userID := uuid.New()
	o := createPaidOrder(t, userID, 50.00, 1)

	orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

	result, err := service.GetByID(ctx, o.ID, userID, false)

	assert.NoError(t, err)
	assert.Equal(t, o.ID, result.ID)
}

func TestOrderService_GetByID_StrangerForbidden(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	o := createPaidOrder(t, uuid.New(), 50.00, 1)

	orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

	result, err := service.GetByID(ctx, o.ID, uuid.New(), false)

	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Nil(t, result)
}

func TestOrderService_GetByID_AdminCanReadAnyOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	o := createPaidOrder(t, uuid.New(), 50.00, 1)

	orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

	result, err := service.GetByID(ctx, o.ID, uuid.New(), true)

	assert.NoError(t, err)
	assert.Equal(t, o.ID, result.ID)
}

// Tests for Service.MarkDelivered
func TestOrderService_MarkDelivered_RequiresPaidOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	product := createTestProduct("Mug", "mug", 20.00)
	item, _ := order.NewItem(product, 1, nil)
	address, _ := valueobject.NewAddress("1 Main St", "Springfield", "12345")
	unpaid, _ := order.NewOrder(uuid.New(), []order.Item{item}, address, "card")

	orderRepo.On("FindByID", ctx, unpaid.ID).Return(unpaid, nil)

	result, err := service.MarkDelivered(ctx, unpaid.ID)

	assert.Error(t, err)
	assert.Nil(t, result)
	orderRepo.AssertNotCalled(t, "Save")
}

func TestOrderService_MarkDelivered_Success(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	o := createPaidOrder(t, uuid.New(), 50.00, 1)

	orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
	orderRepo.On("Save", ctx, o).Return(nil)

	result, err := service.MarkDelivered(ctx, o.ID)

	assert.NoError(t, err)
	assert.True(t, result.IsDelivered)
	assert.NotNil(t, result.DeliveredAt)
	orderRepo.AssertExpectations(t)
}

// Tests for Service.SalesByDate
func TestOrderService_SalesByDate_InvalidRange(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()

	_, err := service.SalesByDate(ctx, SalesByDateRequest{From: "2026-02-01", To: "2026-01-01"})
	assert.Error(t, err)

	_, err = service.SalesByDate(ctx, SalesByDateRequest{From: "not-a-date", To: "2026-01-01"})
	assert.Error(t, err)
	orderRepo.AssertNotCalled(t, "SalesByDate")
}

func TestOrderService_SalesByDate_FormatsDates(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	cartStore := new(MockCartStore)
	service := newTestService(orderRepo, productRepo, cartStore)

	ctx := context.Background()
	from, _ := time.Parse("2006-01-02", "2026-01-01")
	to, _ := time.Parse("2006-01-02", "2026-01-31")
	rows := []order.SalesByDateRow{
		{Date: from, Orders: 3, Revenue: decimal.NewFromFloat(414.00)},
	}

	orderRepo.On("SalesByDate", ctx, from, to).Return(rows, nil)

	result, err := service.SalesByDate(ctx, SalesByDateRequest{From: "2026-01-01", To: "2026-01-31"})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "2026-01-01", result[0].Date)
	assert.Equal(t, int64(3), result[0].Orders)
	assert.True(t, result[0].Revenue.Equal(decimal.NewFromFloat(414.00)))
	orderRepo.AssertExpectations(t)
}

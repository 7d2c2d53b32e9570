package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/identity"
	"github.com/lincyaw/storefront/internal/domain/shared"
	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// MockProductRepository is a mock implementation of ProductRepository
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

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByMainSub(ctx context.Context, main, sub string) (*catalog.Category, error) {
	args := m.Called(ctx, main, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Test helper functions
func newTestCategoryID() uuid.UUID {
	return uuid.MustParse("33333333-3333-3333-3333-333333333333")
}

func createTestProduct(name, slug string, price float64) *catalog.Product {
	product, _ := catalog.NewProduct(name, slug, valueobject.NewMoneyUSDFromFloat(price))
	return product
}

// Tests for ProductService.Create
func TestProductService_Create_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	req := CreateProductRequest{
		Name:  "Wireless Keyboard",
		Price: decimal.NewFromFloat(49.99),
	}

	mockProductRepo.On("FindSlugsWithPrefix", ctx, "wireless-keyboard").Return([]string{}, nil)
	mockProductRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Wireless Keyboard", result.Name)
	assert.Equal(t, "wireless-keyboard", result.Slug)
	assert.True(t, result.Price.Equal(decimal.NewFromFloat(49.99)))
	assert.Equal(t, "active", result.Status)
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_Create_SlugCollisionGetsSuffix(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	req := CreateProductRequest{
		Name:  "Wireless Keyboard",
		Price: decimal.NewFromFloat(49.99),
	}

	mockProductRepo.On("FindSlugsWithPrefix", ctx, "wireless-keyboard").
		Return([]string{"wireless-keyboard", "wireless-keyboard-2"}, nil)
	mockProductRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "wireless-keyboard-3", result.Slug)
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_Create_WithAllFields(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	categoryID := newTestCategoryID()
	stock := 25
	req := CreateProductRequest{
		Name:         "Gaming Mouse",
		Description:  "A mouse with too many buttons",
		Brand:        "Logi",
		Price:        decimal.NewFromFloat(79.90),
		CategoryID:   &categoryID,
		CountInStock: &stock,
		Variants:     map[string][]string{"color": {"black", "white"}},
	}

	category, _ := catalog.NewCategory("Electronics", "Mice", nil)
	mockCategoryRepo.On("FindByID", ctx, categoryID).Return(category, nil)
	mockProductRepo.On("FindSlugsWithPrefix", ctx, "gaming-mouse").Return([]string{}, nil)
	mockProductRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "A mouse with too many buttons", result.Description)
	assert.Equal(t, "Logi", result.Brand)
	assert.Equal(t, &categoryID, result.CategoryID)
	assert.Equal(t, 25, result.CountInStock)
	assert.Equal(t, []string{"black", "white"}, result.Variants["color"])
	mockProductRepo.AssertExpectations(t)
	mockCategoryRepo.AssertExpectations(t)
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	categoryID := newTestCategoryID()
	req := CreateProductRequest{
		Name:       "Gaming Mouse",
		Price:      decimal.NewFromFloat(79.90),
		CategoryID: &categoryID,
	}

	mockCategoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	mockProductRepo.AssertNotCalled(t, "Save")
	mockCategoryRepo.AssertExpectations(t)
}

// Tests for ProductService.Update
func TestProductService_Update_PartialFields(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	product := createTestProduct("Old Name", "old-name", 10.00)
	newPrice := decimal.NewFromFloat(12.50)
	req := UpdateProductRequest{Price: &newPrice}

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockProductRepo.On("Save", ctx, product).Return(nil)

	result, err := service.Update(ctx, product.ID, req)

	assert.NoError(t, err)
	assert.Equal(t, "Old Name", result.Name)
	assert.True(t, result.Price.Equal(newPrice))
	mockProductRepo.AssertExpectations(t)
}

// Tests for ProductService.GetByIDOrSlug
func TestProductService_GetByIDOrSlug_UUIDUsesIDLookup(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	product := createTestProduct("Desk Lamp", "desk-lamp", 30.00)

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.GetByIDOrSlug(ctx, product.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, product.ID, result.ID)
	mockProductRepo.AssertNotCalled(t, "FindBySlug")
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_GetByIDOrSlug_SlugFallback(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	product := createTestProduct("Desk Lamp", "desk-lamp", 30.00)

	mockProductRepo.On("FindBySlug", ctx, "desk-lamp").Return(product, nil)

	result, err := service.GetByIDOrSlug(ctx, "desk-lamp")

	assert.NoError(t, err)
	assert.Equal(t, "desk-lamp", result.Slug)
	mockProductRepo.AssertExpectations(t)
}

// Tests for ProductService.AddReview
func TestProductService_AddReview_Success(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	product := createTestProduct("Desk Lamp", "desk-lamp", 30.00)
	user, _ := identity.NewUser("Ada", "ada@example.com", "secret-pass")

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockUserRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	mockProductRepo.On("Save", ctx, product).Return(nil)

	result, err := service.AddReview(ctx, product.ID, user.ID, CreateReviewRequest{Rating: 4, Comment: "bright"})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.RatingCount)
	assert.True(t, result.RatingAvg.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "Ada", result.Reviews[0].Author)
	mockProductRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestProductService_AddReview_SecondReviewBySameUserRejected(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	product := createTestProduct("Desk Lamp", "desk-lamp", 30.00)
	user, _ := identity.NewUser("Ada", "ada@example.com", "secret-pass")
	_ = product.AddReview(user.ID, user.Name, 5, "")

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockUserRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	result, err := service.AddReview(ctx, product.ID, user.ID, CreateReviewRequest{Rating: 1})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockProductRepo.AssertNotCalled(t, "Save")
}

// Tests for ProductService.Delete
func TestProductService_Delete_NotFound(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, nil)

	ctx := context.Background()
	id := uuid.New()

	mockProductRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	err := service.Delete(ctx, id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockProductRepo.AssertNotCalled(t, "Delete")
}

func TestProductService_Delete_RemovesStoredImages(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	storage := new(MockObjectStorage)
	remover := NewImageService(mockProductRepo, storage, nil, zap.NewNop())
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, remover)

	ctx := context.Background()
	product := createTestProduct("Desk Lamp", "desk-lamp", 30.00)
	frontKey := "products/" + product.ID.String() + "/front.jpg"
	sideKey := "products/" + product.ID.String() + "/side.jpg"
	require.NoError(t, product.AddImage("https://cdn.test/"+frontKey, "front", true))
	require.NoError(t, product.AddImage("https://cdn.test/"+sideKey, "side", false))

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockProductRepo.On("Delete", ctx, product.ID).Return(nil)
	storage.On("DeleteObject", ctx, frontKey).Return(nil)
	storage.On("DeleteObject", ctx, sideKey).Return(nil)

	err := service.Delete(ctx, product.ID)

	assert.NoError(t, err)
	mockProductRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestProductService_Delete_StorageFailureDoesNotFailDelete(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	mockUserRepo := new(MockUserRepository)
	storage := new(MockObjectStorage)
	remover := NewImageService(mockProductRepo, storage, nil, zap.NewNop())
	service := NewProductService(mockProductRepo, mockCategoryRepo, mockUserRepo, remover)

	ctx := context.Background()
	product := createTestProduct("Desk Lamp", "desk-lamp", 30.00)
	key := "products/" + product.ID.String() + "/front.jpg"
	require.NoError(t, product.AddImage("https://cdn.test/"+key, "front", true))

	mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	mockProductRepo.On("Delete", ctx, product.ID).Return(nil)
	storage.On("DeleteObject", ctx, key).Return(errors.New("bucket unreachable"))

	err := service.Delete(ctx, product.ID)

	assert.NoError(t, err)
	storage.AssertExpectations(t)
}

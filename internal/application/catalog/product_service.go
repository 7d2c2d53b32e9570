package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/identity"
	"github.com/lincyaw/storefront/internal/domain/shared"
	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// ImageRemover removes a product's stored images. Satisfied by
// ImageService.
type ImageRemover interface {
	DeleteProductImages(ctx context.Context, product *catalog.Product)
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	userRepo     identity.UserRepository
	images       ImageRemover
}

// NewProductService creates a new ProductService. images may be nil
// when no object storage is configured.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	userRepo identity.UserRepository,
	images ImageRemover,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		images:       images,
	}
}

// Create creates a new product. The slug is derived from the name and
// collisions are resolved with an incrementing suffix against the
// existing catalog.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	slug, err := s.resolveSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, slug, valueobject.NewMoneyUSD(req.Price))
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Brand != "" {
		if err := product.Update(req.Name, req.Description, req.Brand); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}
	if req.CountInStock != nil {
		if err := product.SetStock(*req.CountInStock); err != nil {
			return nil, err
		}
	}
	if len(req.Variants) > 0 {
		product.SetVariants(catalog.VariantOptions(req.Variants))
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// resolveSlug turns a product name into a slug that is unique across
// the catalog
func (s *ProductService) resolveSlug(ctx context.Context, name string) (string, error) {
	base := catalog.Slugify(name)
	existing, err := s.productRepo.FindSlugsWithPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(existing))
	for _, slug := range existing {
		taken[slug] = true
	}
	return catalog.NextSlug(base, taken), nil
}

// Update updates an existing product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	brand := product.Brand
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Brand != nil {
		brand = *req.Brand
	}
	if err := product.Update(name, description, brand); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyUSD(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.CountInStock != nil {
		if err := product.SetStock(*req.CountInStock); err != nil {
			return nil, err
		}
	}
	if req.Variants != nil {
		product.SetVariants(catalog.VariantOptions(req.Variants))
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySlug retrieves a product by slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByIDOrSlug retrieves a product by UUID when the identifier parses
// as one, falling back to slug lookup
func (s *ProductService) GetByIDOrSlug(ctx context.Context, idOrSlug string) (*ProductResponse, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.GetByID(ctx, id)
	}
	return s.GetBySlug(ctx, idOrSlug)
}

// List retrieves a list of products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	domainFilter := buildProductFilter(filter)

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductListResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductListResponse(&products[i]))
	}

	return responses, total, nil
}

// GetByCategory retrieves products belonging to a category
func (s *ProductService) GetByCategory(ctx context.Context, categoryID uuid.UUID, filter ProductListFilter) ([]ProductListResponse, int64, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, 0, err
	}

	filter.CategoryID = &categoryID
	return s.List(ctx, filter)
}

// AddReview adds a review by the given user to the product and
// persists the recomputed rating summary
func (s *ProductService) AddReview(ctx context.Context, productID, userID uuid.UUID, req CreateReviewRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := product.AddReview(user.ID, user.Name, req.Rating, req.Comment); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product along with its stored images. Image removal
// is best effort; a storage failure never resurrects the row.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	if s.images != nil {
		s.images.DeleteProductImages(ctx, product)
	}
	return nil
}

func buildProductFilter(filter ProductListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.Brand != "" {
		domainFilter.Filters["brand"] = filter.Brand
	}

	return domainFilter
}

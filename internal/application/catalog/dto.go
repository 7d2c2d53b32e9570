package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name         string              `json:"name" binding:"required,min=1,max=200"`
	Description  string              `json:"description" binding:"max=5000"`
	Brand        string              `json:"brand" binding:"max=100"`
	Price        decimal.Decimal     `json:"price" binding:"required"`
	CategoryID   *uuid.UUID          `json:"category_id"`
	CountInStock *int                `json:"count_in_stock"`
	Variants     map[string][]string `json:"variants"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name         *string             `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string             `json:"description" binding:"omitempty,max=5000"`
	Brand        *string             `json:"brand" binding:"omitempty,max=100"`
	Price        *decimal.Decimal    `json:"price"`
	CategoryID   *uuid.UUID          `json:"category_id"`
	CountInStock *int                `json:"count_in_stock"`
	Variants     map[string][]string `json:"variants"`
}

// CreateReviewRequest represents a request to review a product
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewResponse represents an embedded review in API responses
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductImageResponse represents one product image
type ProductImageResponse struct {
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Slug         string                 `json:"slug"`
	Description  string                 `json:"description"`
	Brand        string                 `json:"brand,omitempty"`
	Price        decimal.Decimal        `json:"price"`
	CategoryID   *uuid.UUID             `json:"category_id"`
	Images       []ProductImageResponse `json:"images"`
	Variants     map[string][]string    `json:"variants"`
	Reviews      []ReviewResponse       `json:"reviews"`
	RatingCount  int                    `json:"rating_count"`
	RatingAvg    decimal.Decimal        `json:"rating_avg"`
	RatingDist   map[int]int            `json:"rating_dist"`
	CountInStock int                    `json:"count_in_stock"`
	Status       string                 `json:"status"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
	Version      int                    `json:"version"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Brand        string          `json:"brand,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	ImageURL     string          `json:"image_url"`
	RatingCount  int             `json:"rating_count"`
	RatingAvg    decimal.Decimal `json:"rating_avg"`
	CountInStock int             `json:"count_in_stock"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active archived"`
	CategoryID *uuid.UUID `form:"category_id"`
	Brand      string     `form:"brand"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Main string   `json:"main" binding:"required,min=1,max=100"`
	Sub  string   `json:"sub" binding:"required,min=1,max=100"`
	Tags []string `json:"tags" binding:"omitempty,dive,max=50"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Main string   `json:"main" binding:"required,min=1,max=100"`
	Sub  string   `json:"sub" binding:"required,min=1,max=100"`
	Tags []string `json:"tags" binding:"omitempty,dive,max=50"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Main      string    `json:"main"`
	Sub       string    `json:"sub"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := make([]ProductImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ProductImageResponse{URL: img.URL, AltText: img.AltText, IsPrimary: img.IsPrimary})
	}
	reviews := make([]ReviewResponse, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, ReviewResponse{
			ID:        r.ID,
			Author:    r.Author,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}

	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Brand:        p.Brand,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		Images:       images,
		Variants:     p.Variants,
		Reviews:      reviews,
		RatingCount:  p.RatingCount,
		RatingAvg:    p.RatingAvg,
		RatingDist:   p.RatingDist,
		CountInStock: p.CountInStock,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Brand:        p.Brand,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		ImageURL:     p.PrimaryImageURL(),
		RatingCount:  p.RatingCount,
		RatingAvg:    p.RatingAvg,
		CountInStock: p.CountInStock,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Main:      c.Main,
		Sub:       c.Sub,
		Tags:      c.Tags,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

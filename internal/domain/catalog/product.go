package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lincyaw/storefront/internal/domain/shared"
	"github.com/lincyaw/storefront/internal/domain/shared/valueobject"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

// MinReviewRating and MaxReviewRating bound the integer star scale
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Product is the aggregate root for catalog products. Images, variant
// options and reviews are embedded documents stored as jsonb columns;
// the rating summary is recomputed from the embedded reviews on every
// review write and never maintained anywhere else.
type Product struct {
	shared.BaseAggregateRoot
	Name         string             `gorm:"type:varchar(200);not null"`
	Slug         string             `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description  string             `gorm:"type:text"`
	Brand        string             `gorm:"type:varchar(100)"`
	Price        decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	CategoryID   *uuid.UUID         `gorm:"type:uuid;index"`
	Images       ImageList          `gorm:"type:jsonb;not null;default:'[]'"`
	Variants     VariantOptions     `gorm:"type:jsonb;not null;default:'{}'"`
	Reviews      ReviewList         `gorm:"type:jsonb;not null;default:'[]'"`
	RatingCount  int                `gorm:"not null;default:0"`
	RatingAvg    decimal.Decimal    `gorm:"type:decimal(3,2);not null;default:0"`
	RatingDist   RatingDistribution `gorm:"type:jsonb;not null;default:'{}'"`
	CountInStock int                `gorm:"not null;default:0"`
	Status       ProductStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. The slug is derived from the name;
// uniqueness against the existing catalog is the application layer's
// job (it consults the repository and passes the resolved slug here).
func NewProduct(name, slug string, price valueobject.Money) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Price:             price.Amount().Round(2),
		Images:            ImageList{},
		Variants:          VariantOptions{},
		Reviews:           ReviewList{},
		RatingDist:        RatingDistribution{},
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, brand string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Brand = brand
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice updates the selling price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price.Amount().Round(2)
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p))

	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetStock sets the available stock count
func (p *Product) SetStock(count int) error {
	if count < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock count cannot be negative")
	}

	p.CountInStock = count
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetVariants replaces the product's offered variant options
func (p *Product) SetVariants(variants VariantOptions) {
	if variants == nil {
		variants = VariantOptions{}
	}
	p.Variants = variants
	p.Touch()
	p.IncrementVersion()
}

// AddImage appends an image to the product. The first image added
// becomes primary unless the new one is explicitly flagged.
func (p *Product) AddImage(url, altText string, primary bool) error {
	if strings.TrimSpace(url) == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
	}

	if primary {
		for i := range p.Images {
			p.Images[i].IsPrimary = false
		}
	} else if len(p.Images) == 0 {
		primary = true
	}

	p.Images = append(p.Images, ProductImage{URL: url, AltText: altText, IsPrimary: primary})
	p.Touch()
	p.IncrementVersion()

	return nil
}

// RemoveImage removes the image at the given URL. If the removed image
// was primary, the first remaining image takes over.
func (p *Product) RemoveImage(url string) error {
	idx := -1
	for i, img := range p.Images {
		if img.URL == url {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrNotFound
	}

	wasPrimary := p.Images[idx].IsPrimary
	p.Images = append(p.Images[:idx], p.Images[idx+1:]...)
	if wasPrimary && len(p.Images) > 0 {
		p.Images[0].IsPrimary = true
	}

	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPrimaryImage flags the image at the given URL as primary
func (p *Product) SetPrimaryImage(url string) error {
	found := false
	for i := range p.Images {
		isTarget := p.Images[i].URL == url
		p.Images[i].IsPrimary = isTarget
		if isTarget {
			found = true
		}
	}
	if !found {
		return shared.ErrNotFound
	}

	p.Touch()
	p.IncrementVersion()

	return nil
}

// PrimaryImageURL returns the display image for the product
func (p *Product) PrimaryImageURL() string {
	return p.Images.Primary().URL
}

// AddReview embeds a customer review and recomputes the rating summary.
// A user may review a product at most once.
func (p *Product) AddReview(userID uuid.UUID, author string, rating int, comment string) error {
	if rating < MinReviewRating || rating > MaxReviewRating {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(author) == "" {
		return shared.NewDomainError("INVALID_REVIEW", "Review author cannot be empty")
	}
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return shared.NewDomainError("REVIEW_EXISTS", "Product already reviewed by this user")
		}
	}

	review := Review{
		ID:        uuid.New(),
		UserID:    userID,
		Author:    author,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	p.Reviews = append(p.Reviews, review)
	p.recomputeRatings()

	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductReviewedEvent(p, &review))

	return nil
}

// recomputeRatings rebuilds count, average and star distribution from
// the embedded review list
func (p *Product) recomputeRatings() {
	dist := RatingDistribution{}
	sum := 0
	for _, r := range p.Reviews {
		dist[r.Rating]++
		sum += r.Rating
	}

	p.RatingCount = len(p.Reviews)
	p.RatingDist = dist
	if p.RatingCount == 0 {
		p.RatingAvg = decimal.Zero
		return
	}
	p.RatingAvg = decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(p.RatingCount))).
		Round(2)
}

// Archive removes the product from the storefront without deleting it
func (p *Product) Archive() error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Product is already archived")
	}

	p.Status = ProductStatusArchived
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, ProductStatusActive, ProductStatusArchived))

	return nil
}

// Activate returns an archived product to the storefront
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, ProductStatusArchived, ProductStatusActive))

	return nil
}

// IsActive returns true if the product is purchasable
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// InStock returns true if at least one unit is available
func (p *Product) InStock() bool {
	return p.CountInStock > 0
}

// GetPriceMoney returns the selling price as a Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 220 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 220 characters")
	}
	for _, r := range slug {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !valid {
			return shared.NewDomainError("INVALID_SLUG", "Slug may only contain lowercase letters, digits and hyphens")
		}
	}
	return nil
}

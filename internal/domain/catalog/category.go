package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lincyaw/storefront/internal/domain/shared"
)

// TagList is the jsonb-stored list of free-text category tags
type TagList []string

// Value implements driver.Valuer
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (t *TagList) Scan(value any) error {
	return scanJSON(value, t, "TagList")
}

// Category is a (main, sub) pair in the catalog taxonomy. The pair is
// unique together; products reference a category by id.
type Category struct {
	shared.BaseAggregateRoot
	Main string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_main_sub,priority:1"`
	Sub  string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_category_main_sub,priority:2"`
	Tags TagList `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(main, sub string, tags []string) (*Category, error) {
	main = strings.TrimSpace(main)
	sub = strings.TrimSpace(sub)

	if err := validateCategoryPart("Main", main); err != nil {
		return nil, err
	}
	if err := validateCategoryPart("Sub", sub); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Main:              main,
		Sub:               sub,
		Tags:              normalizeTags(tags),
	}

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Update updates the category pair and tags
func (c *Category) Update(main, sub string, tags []string) error {
	main = strings.TrimSpace(main)
	sub = strings.TrimSpace(sub)

	if err := validateCategoryPart("Main", main); err != nil {
		return err
	}
	if err := validateCategoryPart("Sub", sub); err != nil {
		return err
	}

	c.Main = main
	c.Sub = sub
	c.Tags = normalizeTags(tags)
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// DisplayName returns the category as "Main / Sub"
func (c *Category) DisplayName() string {
	return fmt.Sprintf("%s / %s", c.Main, c.Sub)
}

func normalizeTags(tags []string) TagList {
	out := make(TagList, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func validateCategoryPart(field, value string) error {
	if value == "" {
		return shared.NewDomainError("INVALID_CATEGORY", field+" category cannot be empty")
	}
	if len(value) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", field+" category cannot exceed 100 characters")
	}
	return nil
}

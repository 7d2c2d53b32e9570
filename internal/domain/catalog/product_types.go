package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlaceholderImageURL is used when a product has no uploaded images
const PlaceholderImageURL = "/images/placeholder.png"

// ProductImage is one entry in a product's ordered image list
type ProductImage struct {
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// ImageList is the jsonb-stored ordered list of product images
type ImageList []ProductImage

// Value implements driver.Valuer
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *ImageList) Scan(value any) error {
	return scanJSON(value, l, "ImageList")
}

// Primary returns the primary image, falling back to the first image and
// then to the placeholder
func (l ImageList) Primary() ProductImage {
	for _, img := range l {
		if img.IsPrimary {
			return img
		}
	}
	if len(l) > 0 {
		return l[0]
	}
	return ProductImage{URL: PlaceholderImageURL, IsPrimary: true}
}

// VariantOptions holds the sparse option dimensions a product offers,
// keyed by dimension name (e.g. "color", "storage", "size", "finish")
type VariantOptions map[string][]string

// Value implements driver.Valuer
func (v VariantOptions) Value() (driver.Value, error) {
	if v == nil {
		v = VariantOptions{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (v *VariantOptions) Scan(value any) error {
	return scanJSON(value, v, "VariantOptions")
}

// Offers reports whether the given dimension/value pair is one of the
// product's offered options
func (v VariantOptions) Offers(dimension, value string) bool {
	for _, offered := range v[dimension] {
		if offered == value {
			return true
		}
	}
	return false
}

// VariantSelection is a concrete choice of variant values, keyed by
// dimension name (e.g. {"color": "black", "storage": "256GB"})
type VariantSelection map[string]string

// Value implements driver.Valuer
func (s VariantSelection) Value() (driver.Value, error) {
	if s == nil {
		s = VariantSelection{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (s *VariantSelection) Scan(value any) error {
	return scanJSON(value, s, "VariantSelection")
}

// CanonicalKey serializes the selection with sorted keys so two
// selections with the same pairs always produce the same key, whatever
// order they were built in
func (s VariantSelection) CanonicalKey() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s[k])
	}
	return b.String()
}

// Equal reports whether both selections contain the same pairs
func (s VariantSelection) Equal(other VariantSelection) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if other[k] != v {
			return false
		}
	}
	return true
}

// Review is one customer review embedded in a product
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewList is the jsonb-stored list of embedded reviews
type ReviewList []Review

// Value implements driver.Valuer
func (l ReviewList) Value() (driver.Value, error) {
	if l == nil {
		l = ReviewList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *ReviewList) Scan(value any) error {
	return scanJSON(value, l, "ReviewList")
}

// RatingDistribution buckets review counts by integer star value (1-5)
type RatingDistribution map[int]int

// Value implements driver.Valuer
func (d RatingDistribution) Value() (driver.Value, error) {
	if d == nil {
		d = RatingDistribution{}
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (d *RatingDistribution) Scan(value any) error {
	return scanJSON(value, d, "RatingDistribution")
}

func scanJSON(value any, target any, typeName string) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into %s", value, typeName)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}

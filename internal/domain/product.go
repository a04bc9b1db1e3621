package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, matching the storefront seed format.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product categories.
const (
	CategoryMen   = "men"
	CategoryWomen = "women"
	CategoryKids  = "kids"
)

// Product rating bounds.
const (
	MinRating = 0
	MaxRating = 5
)

// Product represents a shoe in the catalog.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Image    string          `json:"image"`
	Images   []string        `json:"images,omitempty"`
	Sizes    []Size          `json:"sizes"`
	Colors   []string        `json:"colors"`
	Rating   float64         `json:"rating"`
	Reviews  int             `json:"reviews"`
	InStock  bool            `json:"inStock"`
}

// Size is a shoe size. Seeds list sizes either as numbers or as strings; both
// decode to their text form.
type Size string

// UnmarshalJSON accepts a JSON string or number.
func (s *Size) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = Size(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("size must be a string or number: %w", err)
	}
	*s = Size(n.String())
	return nil
}

// ValidCategories returns the set of known product categories.
func ValidCategories() []string {
	return []string{CategoryMen, CategoryWomen, CategoryKids}
}

// HasSize reports whether size is offered for the product.
func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, Size(size))
}

// HasColor reports whether color is offered for the product.
func (p *Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// Clone returns a deep copy so callers cannot mutate shared slices.
func (p *Product) Clone() Product {
	c := *p
	c.Images = slices.Clone(p.Images)
	c.Sizes = slices.Clone(p.Sizes)
	c.Colors = slices.Clone(p.Colors)
	return c
}

// Validate checks the invariants every catalog product must hold.
func (p *Product) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if !slices.Contains(ValidCategories(), p.Category) {
		errs = append(errs, fmt.Errorf("category %q must be one of %v", p.Category, ValidCategories()))
	}
	if p.Price.IsNegative() {
		errs = append(errs, fmt.Errorf("price %s must not be negative", p.Price))
	}
	if p.Rating < MinRating || p.Rating > MaxRating {
		errs = append(errs, fmt.Errorf("rating %g must be between %d and %d", p.Rating, MinRating, MaxRating))
	}
	if p.Reviews < 0 {
		errs = append(errs, fmt.Errorf("reviews %d must not be negative", p.Reviews))
	}
	if len(errs) > 0 {
		return fmt.Errorf("product %d: %w", p.ID, errors.Join(errs...))
	}
	return nil
}

// Package domain defines core business types and interfaces.
package domain

import (
	"math"
	"strings"
)

// Product represents an inventory product. The zero value is not a valid
// product; build one with NewProduct or FromRecord.
type Product struct {
	id       string
	name     string
	quantity int
	price    float64
}

// ProductRecord is the serializable form of a Product.
type ProductRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ProductPatch describes a partial update. Nil fields are left alone.
type ProductPatch struct {
	Name     *string
	Quantity *int
	Price    *float64
}

// NewProduct trims id and name and validates every field.
func NewProduct(id, name string, quantity int, price float64) (Product, error) {
	p := Product{
		id:       strings.TrimSpace(id),
		name:     strings.TrimSpace(name),
		quantity: quantity,
		price:    price,
	}
	if err := ValidateProduct(p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// ValidateProduct checks the product invariants.
func ValidateProduct(p Product) error {
	if p.id == "" {
		return NewValidationError("id", "cannot be empty", p.id)
	}
	if err := validateName(p.name); err != nil {
		return err
	}
	if err := validateQuantity(p.quantity); err != nil {
		return err
	}
	return validatePrice(p.price)
}

func validateName(name string) error {
	if name == "" {
		return NewValidationError("name", "cannot be empty", name)
	}
	return nil
}

func validateQuantity(q int) error {
	if q < 0 {
		return NewValidationError("quantity", "must be non-negative", q)
	}
	return nil
}

func validatePrice(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return NewValidationError("price", "must be a finite number", p)
	}
	if p < 0 {
		return NewValidationError("price", "must be non-negative", p)
	}
	return nil
}

func (p Product) ID() string      { return p.id }
func (p Product) Name() string    { return p.name }
func (p Product) Quantity() int   { return p.quantity }
func (p Product) Price() float64  { return p.price }
func (p Product) NameKey() string { return NameKey(p.name) }

// IsZero reports whether p is the unset zero value.
func (p Product) IsZero() bool { return p == Product{} }

// SetName replaces the display name. The product is unchanged on error.
func (p *Product) SetName(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

// SetQuantity replaces the stock count. The product is unchanged on error.
func (p *Product) SetQuantity(q int) error {
	if err := validateQuantity(q); err != nil {
		return err
	}
	p.quantity = q
	return nil
}

// SetPrice replaces the unit price. The product is unchanged on error.
func (p *Product) SetPrice(price float64) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.price = price
	return nil
}

// Apply returns a copy of p with the patch applied, or the first
// validation error. p itself is never modified.
func (p Product) Apply(patch ProductPatch) (Product, error) {
	next := p
	if patch.Name != nil {
		if err := next.SetName(*patch.Name); err != nil {
			return p, err
		}
	}
	if patch.Quantity != nil {
		if err := next.SetQuantity(*patch.Quantity); err != nil {
			return p, err
		}
	}
	if patch.Price != nil {
		if err := next.SetPrice(*patch.Price); err != nil {
			return p, err
		}
	}
	return next, nil
}

// Record converts the product to its serializable form.
func (p Product) Record() ProductRecord {
	return ProductRecord{ID: p.id, Name: p.name, Quantity: p.quantity, Price: p.price}
}

// FromRecord rebuilds a product, applying the same validation as NewProduct.
func FromRecord(r ProductRecord) (Product, error) {
	return NewProduct(r.ID, r.Name, r.Quantity, r.Price)
}

// NameKey normalizes a name for case-insensitive comparison.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

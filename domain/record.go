package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// largest integer a float64 holds exactly
const maxExactInt = 1 << 53

// legacy keys used by inventories written with Spanish field names
var fieldAliases = map[string][]string{
	"id":       {"id"},
	"name":     {"name", "nombre"},
	"quantity": {"quantity", "cantidad"},
	"price":    {"price", "precio"},
}

// FromMap rebuilds a product from a loosely typed mapping such as a decoded
// JSON object, a split text line or a scanned SQL row.
func FromMap(m map[string]any) (Product, error) {
	id, err := stringField(m, "id")
	if err != nil {
		return Product{}, err
	}
	name, err := stringField(m, "name")
	if err != nil {
		return Product{}, err
	}
	qty, err := intField(m, "quantity")
	if err != nil {
		return Product{}, err
	}
	price, err := floatField(m, "price")
	if err != nil {
		return Product{}, err
	}
	return NewProduct(id, name, qty, price)
}

func lookup(m map[string]any, field string) (any, error) {
	for _, k := range fieldAliases[field] {
		if v, ok := m[k]; ok {
			if v == nil {
				return nil, NewValidationError(field, "cannot be null", v)
			}
			return v, nil
		}
	}
	return nil, NewValidationError(field, "is required", nil)
}

func stringField(m map[string]any, field string) (string, error) {
	v, err := lookup(m, field)
	if err != nil {
		return "", err
	}
	switch v.(type) {
	case string, []byte, json.Number:
	default:
		return "", NewValidationError(field, fmt.Sprintf("must be a string, got %T", v), v)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", NewValidationError(field, err.Error(), v)
	}
	return s, nil
}

func floatField(m map[string]any, field string) (float64, error) {
	v, err := lookup(m, field)
	if err != nil {
		return 0, err
	}
	if _, ok := v.(bool); ok {
		return 0, NewValidationError(field, "must be a number, got bool", v)
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s == "" {
			return 0, NewValidationError(field, "must be a number", v)
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, NewValidationError(field, "must be a number", v)
	}
	return f, nil
}

func intField(m map[string]any, field string) (int, error) {
	f, err := floatField(m, field)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, NewValidationError(field, "must be a whole number", f)
	}
	if math.Abs(f) > maxExactInt {
		return 0, NewValidationError(field, "out of range", f)
	}
	return int(f), nil
}

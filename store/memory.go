// Package store provides the in-memory inventory and its persistence adapters.
package store

import (
	"sort"
	"strings"
	"sync"

	"stockroom/domain"
)

// Inventory is the in-memory product registry: products keyed by ID plus a
// case-insensitive name index kept in step with every mutation.
type Inventory struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	byName   nameIndex
}

// NewInventory constructs an empty Inventory
func NewInventory() *Inventory {
	return &Inventory{
		products: make(map[string]domain.Product),
		byName:   make(nameIndex),
	}
}

// compile-time assertion that Inventory implements domain.ProductRepository
var _ domain.ProductRepository = (*Inventory)(nil)

func (s *Inventory) Add(p domain.Product) error {
	if err := domain.ValidateProduct(p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID()]; exists {
		return domain.NewDuplicateKeyError(p.ID())
	}
	s.products[p.ID()] = p
	s.byName.add(p.Name(), p.ID())
	return nil
}

func (s *Inventory) Remove(id string) (domain.Product, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.NewNotFoundError(id)
	}
	delete(s.products, id)
	s.byName.remove(p.Name(), id)
	return p, nil
}

func (s *Inventory) Get(id string) (domain.Product, error) {
	id = strings.TrimSpace(id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.NewNotFoundError(id)
	}
	return p, nil
}

// Update applies patch to the product with the given ID. Either every field
// in the patch is applied or none is.
func (s *Inventory) Update(id string, patch domain.ProductPatch) (domain.Product, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.NewNotFoundError(id)
	}
	next, err := cur.Apply(patch)
	if err != nil {
		return domain.Product{}, err
	}
	if next.NameKey() != cur.NameKey() {
		s.byName.remove(cur.Name(), id)
		s.byName.add(next.Name(), id)
	}
	s.products[id] = next
	return next, nil
}

func (s *Inventory) UpdateQuantity(id string, q int) error {
	_, err := s.Update(id, domain.ProductPatch{Quantity: &q})
	return err
}

func (s *Inventory) UpdatePrice(id string, price float64) error {
	_, err := s.Update(id, domain.ProductPatch{Price: &price})
	return err
}

func (s *Inventory) Rename(id, name string) error {
	_, err := s.Update(id, domain.ProductPatch{Name: &name})
	return err
}

// FindByName returns the products whose full name matches term, ignoring
// case and surrounding whitespace. It is served by the name index.
func (s *Inventory) FindByName(term string) []domain.Product {
	if strings.TrimSpace(term) == "" {
		return []domain.Product{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byName.lookup(term)
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.products[id])
	}
	return out
}

// SearchByName returns the products whose name contains term, ignoring case.
// It scans every product.
func (s *Inventory) SearchByName(term string) []domain.Product {
	needle := domain.NameKey(term)
	if needle == "" {
		return []domain.Product{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if strings.Contains(p.NameKey(), needle) {
			out = append(out, p)
		}
	}
	sortByID(out)
	return out
}

// List returns a snapshot of every product ordered by ID.
func (s *Inventory) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sortByID(out)
	return out
}

func (s *Inventory) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.products[strings.TrimSpace(id)]
	return ok
}

func (s *Inventory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func sortByID(ps []domain.Product) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID() < ps[j].ID() })
}

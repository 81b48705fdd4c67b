package domain

// ProductRepository is the in-memory product registry used by the CLI.
//
// Identifiers and search terms are trimmed before use. Identifier matching
// is case-sensitive; name matching is case-insensitive. Mutations are atomic:
// a failed call leaves the repository unchanged.
type ProductRepository interface {
	Add(p Product) error
	Remove(id string) (Product, error)
	UpdateQuantity(id string, q int) error
	UpdatePrice(id string, price float64) error
	Rename(id, name string) error
	Update(id string, patch ProductPatch) (Product, error)
	Get(id string) (Product, error)

	// FindByName returns products whose whole name equals term.
	FindByName(term string) []Product
	// SearchByName returns products whose name contains term.
	SearchByName(term string) []Product

	List() []Product
	Exists(id string) bool
	Len() int
}

package store

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/domain"
)

func mustProduct(t testing.TB, id, name string, qty int, price float64) domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, name, qty, price)
	require.NoError(t, err)
	return p
}

func ids(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID())
	}
	return out
}

func TestInventory_MouseKeyboardScenario(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Add(mustProduct(t, "101", "Mouse", 10, 9.99)))
	require.NoError(t, inv.Add(mustProduct(t, "102", "Keyboard", 5, 19.99)))
	require.NoError(t, inv.UpdateQuantity("101", 7))

	all := inv.List()
	require.Len(t, all, 2)
	assert.Equal(t, []string{"101", "102"}, ids(all))
	assert.Equal(t, 7, all[0].Quantity())
	assert.Equal(t, 5, all[1].Quantity())

	for _, term := range []string{"mouse", "MOUSE", "Mouse", "  mOuSe "} {
		got := inv.FindByName(term)
		assert.Equal(t, []string{"101"}, ids(got), "term %q", term)
	}
}

func TestInventory_AddValidation(t *testing.T) {
	inv := NewInventory()

	cases := []struct {
		name    string
		product domain.Product
		check   func(error) bool
	}{
		{"zero product", domain.Product{}, domain.IsValidationError},
		{"valid", mustProduct(t, "x1", "A", 0, 0), func(err error) bool { return err == nil }},
		{"duplicate", mustProduct(t, "x1", "B", 1, 1), domain.IsDuplicateKeyError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inv.Add(tc.product)
			assert.True(t, tc.check(err), "unexpected error: %v", err)
		})
	}

	// the rejected duplicate must not replace the original
	p, err := inv.Get("x1")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name())
	assert.Equal(t, 1, inv.Len())
}

func TestInventory_NotFound(t *testing.T) {
	inv := NewInventory()

	_, err := inv.Get("nope")
	assert.True(t, domain.IsNotFoundError(err))
	_, err = inv.Remove("nope")
	assert.True(t, domain.IsNotFoundError(err))
	assert.True(t, domain.IsNotFoundError(inv.UpdateQuantity("nope", 1)))
	assert.True(t, domain.IsNotFoundError(inv.UpdatePrice("nope", 1)))
	assert.True(t, domain.IsNotFoundError(inv.Rename("nope", "x")))
	assert.False(t, inv.Exists("nope"))
}

func TestInventory_RemoveDropsFromIndex(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Add(mustProduct(t, "1", "Widget", 1, 1)))
	require.NoError(t, inv.Add(mustProduct(t, "2", "widget", 2, 2)))

	assert.Equal(t, []string{"1", "2"}, ids(inv.FindByName("WIDGET")))

	removed, err := inv.Remove(" 1 ")
	require.NoError(t, err)
	assert.Equal(t, "Widget", removed.Name())
	assert.Equal(t, []string{"2"}, ids(inv.FindByName("widget")))

	_, err = inv.Remove("2")
	require.NoError(t, err)
	assert.Empty(t, inv.FindByName("widget"))
	assert.Empty(t, inv.byName)
	assert.Equal(t, 0, inv.Len())
}

func TestInventory_RenameReindexes(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Add(mustProduct(t, "1", "Mouse", 1, 1)))

	require.NoError(t, inv.Rename("1", "Trackball"))
	assert.Empty(t, inv.FindByName("mouse"))
	assert.Equal(t, []string{"1"}, ids(inv.FindByName("trackball")))

	// a case-only rename keeps the same bucket
	require.NoError(t, inv.Rename("1", "TRACKBALL"))
	got := inv.FindByName("trackball")
	require.Len(t, got, 1)
	assert.Equal(t, "TRACKBALL", got[0].Name())
}

func TestInventory_UpdateIsAllOrNothing(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Add(mustProduct(t, "1", "Mouse", 3, 9.5)))

	name := "Keyboard"
	qty := -1
	_, err := inv.Update("1", domain.ProductPatch{Name: &name, Quantity: &qty})
	require.True(t, domain.IsValidationError(err))

	p, err := inv.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Mouse", p.Name())
	assert.Equal(t, 3, p.Quantity())
	assert.Equal(t, []string{"1"}, ids(inv.FindByName("mouse")))
	assert.Empty(t, inv.FindByName("keyboard"))

	assert.True(t, domain.IsValidationError(inv.UpdatePrice("1", -0.01)))
	assert.True(t, domain.IsValidationError(inv.Rename("1", "   ")))

	qty = 0
	price := 12.25
	updated, err := inv.Update("1", domain.ProductPatch{Quantity: &qty, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity())
	assert.Equal(t, 12.25, updated.Price())
}

func TestInventory_SearchByName(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Add(mustProduct(t, "c", "Gaming Mouse", 1, 1)))
	require.NoError(t, inv.Add(mustProduct(t, "a", "Mouse", 1, 1)))
	require.NoError(t, inv.Add(mustProduct(t, "b", "Keyboard", 1, 1)))

	assert.Equal(t, []string{"a", "c"}, ids(inv.SearchByName("MOUSE")))
	assert.Equal(t, []string{"a"}, ids(inv.FindByName("mouse")))
	assert.Empty(t, inv.SearchByName("monitor"))
	assert.Empty(t, inv.SearchByName("  "))
	assert.Empty(t, inv.FindByName(""))
}

func TestInventory_ReturnsCopies(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Add(mustProduct(t, "1", "Mouse", 1, 1)))

	p, err := inv.Get("1")
	require.NoError(t, err)
	require.NoError(t, p.SetQuantity(99))

	stored, err := inv.Get("1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Quantity())
}

func TestInventory_ConcurrentAccess(t *testing.T) {
	inv := NewInventory()
	var wg sync.WaitGroup

	n := 100
	wg.Add(n)
	for i := 0; i < n; i++ {
		id := "p-conc-" + strconv.Itoa(i)
		go func(id string) {
			defer wg.Done()
			_ = inv.Add(domain.Product{})
			p, err := domain.NewProduct(id, "X", 1, 1)
			if err != nil {
				return
			}
			_ = inv.Add(p)
			_ = inv.UpdateQuantity(id, 2)
			_ = inv.FindByName("x")
		}(id)
	}
	wg.Wait()

	assert.Equal(t, n, inv.Len())
	assert.Len(t, inv.FindByName("x"), n)
}

func TestNameIndex(t *testing.T) {
	idx := make(nameIndex)
	idx.add("Mouse", "2")
	idx.add(" mouse ", "1")
	idx.add("Keyboard", "3")

	assert.Equal(t, []string{"1", "2"}, idx.lookup("MOUSE"))
	assert.Empty(t, idx.lookup("monitor"))

	idx.remove("Mouse", "1")
	idx.remove("Mouse", "2")
	_, ok := idx["mouse"]
	assert.False(t, ok, "empty bucket should be dropped")

	// removing an absent pair is a no-op
	idx.remove("Keyboard", "9")
	assert.Equal(t, []string{"3"}, idx.lookup("keyboard"))
}

func BenchmarkInventory_Add(b *testing.B) {
	for i := 0; i < b.N; i++ {
		inv := NewInventory()
		_ = inv.Add(mustProduct(b, "b-add-"+strconv.Itoa(i), "Bench", 1, 1))
	}
}

func BenchmarkInventory_Get(b *testing.B) {
	inv := NewInventory()
	for i := 0; i < 1000; i++ {
		_ = inv.Add(mustProduct(b, "b-get-"+strconv.Itoa(i), "X", 1, 1))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = inv.Get("b-get-" + strconv.Itoa(i%1000))
	}
}

func BenchmarkInventory_FindByName(b *testing.B) {
	inv := NewInventory()
	for i := 0; i < 1000; i++ {
		_ = inv.Add(mustProduct(b, "b-find-"+strconv.Itoa(i), "Item "+strconv.Itoa(i%50), 1, 1))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = inv.FindByName("item 7")
	}
}

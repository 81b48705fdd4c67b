package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"stockroom/domain"
)

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func records(ps []domain.Product) []domain.ProductRecord {
	out := make([]domain.ProductRecord, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Record())
	}
	return out
}

func printProducts(w io.Writer, ps []domain.Product, output string) error {
	switch output {
	case "json":
		return printJSON(w, records(ps))
	case "", "table":
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}

	if len(ps) == 0 {
		_, err := fmt.Fprintln(w, "no products")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tPRICE")
	for _, p := range ps {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID(), p.Name(), p.Quantity(), strconv.FormatFloat(p.Price(), 'f', 2, 64))
	}
	return tw.Flush()
}

// sortProducts orders ps for display. Ties always fall back to the ID so the
// output is stable.
func sortProducts(ps []domain.Product, by, order string) error {
	var less func(a, b domain.Product) bool
	switch strings.ToLower(by) {
	case "", "name":
		less = func(a, b domain.Product) bool {
			if a.NameKey() != b.NameKey() {
				return a.NameKey() < b.NameKey()
			}
			return a.ID() < b.ID()
		}
	case "id":
		less = func(a, b domain.Product) bool { return a.ID() < b.ID() }
	case "quantity":
		less = func(a, b domain.Product) bool {
			if a.Quantity() != b.Quantity() {
				return a.Quantity() < b.Quantity()
			}
			return a.ID() < b.ID()
		}
	case "price":
		less = func(a, b domain.Product) bool {
			if a.Price() != b.Price() {
				return a.Price() < b.Price()
			}
			return a.ID() < b.ID()
		}
	default:
		return fmt.Errorf("unknown sort field: %s", by)
	}

	switch strings.ToLower(order) {
	case "", "asc":
		sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
	case "desc":
		sort.SliceStable(ps, func(i, j int) bool { return less(ps[j], ps[i]) })
	default:
		return fmt.Errorf("unknown sort order: %s", order)
	}
	return nil
}

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"stockroom/domain"
)

// JSONFile persists an Inventory as a single indented JSON array of
// domain.ProductRecord objects.
type JSONFile struct {
	fs afero.Fs
}

// compile-time assertion
var _ Persister = (*JSONFile)(nil)

func NewJSONFile(fs afero.Fs) *JSONFile {
	return &JSONFile{fs: fs}
}

func (f *JSONFile) Save(ctx context.Context, inv *Inventory, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	products := inv.List()
	list := make([]domain.ProductRecord, 0, len(products))
	for _, p := range products {
		list = append(list, p.Record())
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	b = append(b, '\n')
	return writeFileAtomic(f.fs, path, b)
}

func (f *JSONFile) Load(ctx context.Context, path string) (*Inventory, []*domain.MalformedRecordError, error) {
	b, ok, err := readSnapshot(ctx, f.fs, path)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return NewInventory(), nil, nil
	}

	if b = bytes.TrimSpace(b); b[0] != '[' {
		return nil, nil, domain.NewCorruptDataError(path, errors.New("top level is not a JSON array"))
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		return nil, nil, domain.NewCorruptDataError(path, err)
	}

	l := newLoader()
	for i, raw := range elems {
		p, err := decodeJSONRecord(raw)
		l.add(i+1, p, err)
	}
	return l.inv, l.warnings, nil
}

func decodeJSONRecord(raw json.RawMessage) (domain.Product, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.Product{}, fmt.Errorf("expected an object, got %s", typeErr.Value)
		}
		return domain.Product{}, err
	}
	if m == nil {
		return domain.Product{}, errors.New("expected an object, got null")
	}
	return domain.FromMap(m)
}

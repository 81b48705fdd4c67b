package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"stockroom/domain"
)

const lineFields = 4

// LineFile persists an Inventory as one "id,name,quantity,price" record per
// line. Fields are CSV-quoted only when they contain a comma or quote; on
// load, unquoted fields may contain bare quotes and surrounding spaces.
type LineFile struct {
	fs afero.Fs
}

var _ Persister = (*LineFile)(nil)

func NewLineFile(fs afero.Fs) *LineFile {
	return &LineFile{fs: fs}
}

func (f *LineFile) Save(ctx context.Context, inv *Inventory, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, p := range inv.List() {
		r := p.Record()
		if err := w.Write([]string{
			r.ID,
			r.Name,
			strconv.Itoa(r.Quantity),
			strconv.FormatFloat(r.Price, 'f', -1, 64),
		}); err != nil {
			return fmt.Errorf("encode inventory: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	return writeFileAtomic(f.fs, path, buf.Bytes())
}

func (f *LineFile) Load(ctx context.Context, path string) (*Inventory, []*domain.MalformedRecordError, error) {
	b, ok, err := readSnapshot(ctx, f.fs, path)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return NewInventory(), nil, nil
	}

	if !utf8.Valid(b) {
		return nil, nil, domain.NewCorruptDataError(path, errors.New("not a UTF-8 text file"))
	}

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	// names may carry a bare quote, as in files written without CSV quoting
	r.LazyQuotes = true

	l := newLoader()
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			l.add(parseErr.StartLine, domain.Product{}, parseErr.Err)
			continue
		}
		if err != nil {
			return nil, nil, domain.NewCorruptDataError(path, err)
		}
		line, _ := r.FieldPos(0)
		p, err := decodeLine(fields)
		l.add(line, p, err)
	}
	return l.inv, l.warnings, nil
}

func decodeLine(fields []string) (domain.Product, error) {
	if len(fields) != lineFields {
		return domain.Product{}, fmt.Errorf("expected %d fields, got %d", lineFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return domain.FromMap(map[string]any{
		"id":       fields[0],
		"name":     fields[1],
		"quantity": fields[2],
		"price":    fields[3],
	})
}

package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"stockroom/domain"
)

// Persister saves and restores a full Inventory snapshot.
//
// Load returns an empty Inventory when path does not exist. Records that
// cannot be decoded are skipped and returned as warnings; content that is not
// in the expected format at all yields a *domain.CorruptDataError.
type Persister interface {
	Save(ctx context.Context, inv *Inventory, path string) error
	Load(ctx context.Context, path string) (*Inventory, []*domain.MalformedRecordError, error)
}

const (
	FormatJSON   = "json"
	FormatLines  = "lines"
	FormatSQLite = "sqlite"
)

// CanonicalFormat normalizes a format name or alias to one of the Format
// constants. An empty name means JSON.
func CanonicalFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatLines, "txt", "csv":
		return FormatLines, nil
	case FormatSQLite, "db":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unknown storage format: %s", format)
	}
}

// NewPersister constructs a Persister by format: "json", "lines" or "sqlite".
// fs backs the file formats; SQLite always uses the OS filesystem.
func NewPersister(format string, fs afero.Fs) (Persister, error) {
	format, err := CanonicalFormat(format)
	if err != nil {
		return nil, err
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	switch format {
	case FormatLines:
		return NewLineFile(fs), nil
	case FormatSQLite:
		return NewSQLiteFile(), nil
	default:
		return NewJSONFile(fs), nil
	}
}

// FormatFromPath infers the storage format from a file extension, falling
// back to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".csv":
		return FormatLines
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

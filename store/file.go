package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"stockroom/domain"
)

// readSnapshot reads path from fs. A missing file is reported as ok=false
// with no error so callers can start from an empty inventory.
func readSnapshot(ctx context.Context, fs afero.Fs, path string) (b []byte, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b, err = afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			// no file yet; that's fine
			return nil, false, nil
		}
		return nil, false, domain.NewStorageError("read", path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, false, nil
	}
	return b, true, nil
}

// writeFileAtomic writes data next to path and renames it into place so a
// failed write never leaves a truncated snapshot behind.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return domain.NewStorageError("mkdir", dir, err)
	}
	tmp, err := afero.TempFile(fs, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return domain.NewStorageError("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return domain.NewStorageError("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return domain.NewStorageError("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return domain.NewStorageError("close", path, err)
	}
	if err := fs.Chmod(tmpName, 0o644); err != nil {
		_ = fs.Remove(tmpName)
		return domain.NewStorageError("chmod", path, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return domain.NewStorageError("rename", path, err)
	}
	return nil
}

// loader builds a fresh inventory from decoded records. Rejected records,
// including repeated IDs, become warnings; the first occurrence of an ID wins.
type loader struct {
	inv      *Inventory
	warnings []*domain.MalformedRecordError
}

func newLoader() *loader {
	return &loader{inv: NewInventory()}
}

func (l *loader) add(pos int, p domain.Product, err error) {
	if err == nil {
		err = l.inv.Add(p)
	}
	if err != nil {
		l.warnings = append(l.warnings, &domain.MalformedRecordError{Position: pos, Err: err})
	}
}

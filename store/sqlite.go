package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"

	"stockroom/domain"
)

const (
	sqliteDriver = "sqlite3"

	createProductsTable = `CREATE TABLE products (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price    REAL NOT NULL,
	position INTEGER NOT NULL
)`
	insertProduct  = `INSERT INTO products (id, name, quantity, price, position) VALUES (?, ?, ?, ?, ?)`
	selectProducts = `SELECT id, name, quantity, price FROM products ORDER BY position`
)

// SQLiteFile persists an Inventory as a single-table SQLite database. Each
// Save builds a fresh database beside path and renames it into place.
type SQLiteFile struct{}

var _ Persister = (*SQLiteFile)(nil)

func NewSQLiteFile() *SQLiteFile {
	return &SQLiteFile{}
}

func (f *SQLiteFile) Save(ctx context.Context, inv *Inventory, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewStorageError("mkdir", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return domain.NewStorageError("create", path, err)
	}
	if err := writeSQLite(ctx, tmp, inv.List()); err != nil {
		_ = os.Remove(tmp)
		return domain.NewStorageError("write", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return domain.NewStorageError("rename", path, err)
	}
	return nil
}

func writeSQLite(ctx context.Context, path string, products []domain.Product) (err error) {
	db, err := sql.Open(sqliteDriver, sqliteDSN(path, false))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := db.ExecContext(ctx, createProductsTable); err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertProduct)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range products {
		if _, err := stmt.ExecContext(ctx, p.ID(), p.Name(), p.Quantity(), p.Price(), i); err != nil {
			return fmt.Errorf("insert %s: %w", p.ID(), err)
		}
	}
	return tx.Commit()
}

func (f *SQLiteFile) Load(ctx context.Context, path string) (*Inventory, []*domain.MalformedRecordError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewInventory(), nil, nil
		}
		return nil, nil, domain.NewStorageError("read", path, err)
	}
	if info.Size() == 0 {
		return NewInventory(), nil, nil
	}

	db, err := sql.Open(sqliteDriver, sqliteDSN(path, true))
	if err != nil {
		return nil, nil, domain.NewStorageError("open", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectProducts)
	if err != nil {
		return nil, nil, classifySQLiteError(path, err)
	}
	defer rows.Close()

	l := newLoader()
	pos := 0
	for rows.Next() {
		pos++
		var id, name, qty, price any
		if err := rows.Scan(&id, &name, &qty, &price); err != nil {
			l.add(pos, domain.Product{}, err)
			continue
		}
		p, err := domain.FromMap(map[string]any{
			"id":       id,
			"name":     name,
			"quantity": qty,
			"price":    price,
		})
		l.add(pos, p, err)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, classifySQLiteError(path, err)
	}
	return l.inv, l.warnings, nil
}

// sqliteDSN builds a URI filename for path. The path is percent-escaped so
// that '?', '#' and '%' in file names reach SQLite unchanged.
func sqliteDSN(path string, readOnly bool) string {
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath()
	if readOnly {
		dsn += "?mode=ro"
	}
	return dsn
}

// classifySQLiteError separates files that are not usable inventory
// databases from I/O failures.
func classifySQLiteError(path string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
			return domain.NewCorruptDataError(path, err)
		}
	}
	if strings.Contains(err.Error(), "no such table") || strings.Contains(err.Error(), "no such column") {
		return domain.NewCorruptDataError(path, err)
	}
	return domain.NewStorageError("read", path, err)
}

package kvstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/paths"
)

// SQLite is a Store persisted in a single-table sqlite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at dbPath and ensures
// its schema. The parent directory is created with owner-only permissions.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLite, error) {
	if err := paths.EnsureDir(filepath.Dir(dbPath), paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrap(err, "create store dir")
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// sqlite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return errors.Wrap(err, "create kv table")
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var val string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get %q", key)
	}
	return val, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	const stmt = `
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value;
`
	if _, err := s.db.ExecContext(ctx, stmt, key, value); err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "delete %q", key)
	}
	return nil
}

// Keys uses a range scan rather than LIKE so that '%' and '_' in prefixes
// match literally.
func (s *SQLite) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if prefix == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT key FROM kv WHERE key >= ? AND key < ? ORDER BY key`,
			prefix, prefix+"\U0010FFFF")
	}
	if err != nil {
		return nil, errors.Wrap(err, "list keys")
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, "scan key")
		}
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list keys")
	}
	return keys, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

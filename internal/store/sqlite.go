package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"manoscerca.app/internal/models"
)

const (
	tableProviders = "providers"
	schemaVersion  = 1
)

var providerColumns = []string{"id", "name", "email", "phone", "category", "description", "lat", "lng"}

const schema = `
CREATE TABLE IF NOT EXISTS providers (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	lat         REAL NOT NULL DEFAULT 0,
	lng         REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_providers_category ON providers(category);
CREATE INDEX IF NOT EXISTS idx_providers_name ON providers(name);
`

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// builder returns a squirrel statement builder using SQLite placeholders.
func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// OpenSQLite opens or creates the database at path and makes sure the
// schema exists. Opening an existing database at the current schema version
// leaves it untouched. Any failure is reported as ErrStorageUnavailable.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, unavailable(errors.New("empty database path"))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, unavailable(err)
	}
	// A single connection makes the engine serialize every operation.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, unavailable(err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, unavailable(err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if version < schemaVersion {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Add(ctx context.Context, p models.Provider) (int64, error) {
	query, args, err := builder().Insert(tableProviders).
		Columns(providerColumns[1:]...).
		Values(p.Name, p.Email, p.Phone, p.Category, p.Description, p.Lat, p.Lng).
		ToSql()
	if err != nil {
		return 0, &WriteError{Op: "add", Err: err}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &WriteError{Op: "add", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &WriteError{Op: "add", Err: err}
	}
	return id, nil
}

func (s *SQLiteStore) GetAll(ctx context.Context) ([]models.Provider, error) {
	query, args, err := builder().Select(providerColumns...).
		From(tableProviders).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, &ReadError{Op: "get_all", Err: err}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &ReadError{Op: "get_all", Err: err}
	}
	defer rows.Close()

	providers := []models.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, &ReadError{Op: "get_all", Err: err}
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &ReadError{Op: "get_all", Err: err}
	}
	return providers, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (models.Provider, error) {
	query, args, err := builder().Select(providerColumns...).
		From(tableProviders).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Provider{}, &ReadError{Op: "get", Err: err}
	}

	p, err := scanProvider(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Provider{}, ErrNotFound
	}
	if err != nil {
		return models.Provider{}, &ReadError{Op: "get", Err: err}
	}
	return p, nil
}

func (s *SQLiteStore) Update(ctx context.Context, p models.Provider) error {
	if p.ID == 0 {
		return &WriteError{Op: "update", Err: ErrMissingID}
	}

	query, args, err := builder().Insert(tableProviders).
		Columns(providerColumns...).
		Values(p.ID, p.Name, p.Email, p.Phone, p.Category, p.Description, p.Lat, p.Lng).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone,
			category = excluded.category,
			description = excluded.description,
			lat = excluded.lat,
			lng = excluded.lng`).
		ToSql()
	if err != nil {
		return &WriteError{Op: "update", Err: err}
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return &WriteError{Op: "update", Err: err}
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	query, args, err := builder().Delete(tableProviders).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return &WriteError{Op: "delete", Err: err}
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return &WriteError{Op: "delete", Err: err}
	}
	return nil
}

// Clear deletes every record. The AUTOINCREMENT sequence is kept so ids
// handed out before the clear are never reused.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	query, args, err := builder().Delete(tableProviders).ToSql()
	if err != nil {
		return &WriteError{Op: "clear", Err: err}
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return &WriteError{Op: "clear", Err: err}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProvider(row rowScanner) (models.Provider, error) {
	var p models.Provider
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Category, &p.Description, &p.Lat, &p.Lng)
	return p, err
}

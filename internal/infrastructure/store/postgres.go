package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore implements DocumentStore on a single jsonb documents table,
// keeping the same collection/id addressing as the other backends.
type PostgresStore struct {
	db *sql.DB
}

// ConnectPostgres establishes a connection to PostgreSQL.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	ps := &PostgresStore{db: db}
	if err := ps.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) createSchema() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			data       JSONB NOT NULL,
			inserted   BIGSERIAL,
			PRIMARY KEY (collection, id)
		)`)
	return err
}

func (ps *PostgresStore) Put(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = ps.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
		collection, id, data)
	if err != nil {
		return fmt.Errorf("failed to put document: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Get(ctx context.Context, collection, id string) (json.RawMessage, bool, error) {
	var data []byte
	err := ps.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get document: %w", err)
	}
	return data, true, nil
}

func (ps *PostgresStore) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	rows, err := ps.db.QueryContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 ORDER BY inserted`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()
	return scanDocs(rows)
}

func (ps *PostgresStore) FindByField(ctx context.Context, collection, field, value string) ([]json.RawMessage, error) {
	rows, err := ps.db.QueryContext(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND data->>$2 = $3 ORDER BY inserted`,
		collection, field, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()
	return scanDocs(rows)
}

func (ps *PostgresStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	result, err := ps.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanDocs(rows *sql.Rows) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		docs = append(docs, data)
	}
	return docs, rows.Err()
}

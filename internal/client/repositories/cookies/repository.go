// Package cookies persists the cookies the backend sets for its session so a
// restarted client can re-validate the session it had before.
package cookies

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/shopadmin/internal/dbx"
)

type Repository interface {
	// Replace stores cookies as the full cookie set of origin.
	Replace(ctx context.Context, origin string, cookies []*http.Cookie) error
	Load(ctx context.Context, origin string) ([]*http.Cookie, error)
	Clear(ctx context.Context) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Replace(ctx context.Context, origin string, cookies []*http.Cookie) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE origin = ?`, origin); err != nil {
		return fmt.Errorf("failed to reset cookies[%s]: %w", origin, err)
	}
	for _, c := range cookies {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO cookies (origin, name, value) VALUES (?, ?, ?)
			ON CONFLICT(origin, name) DO UPDATE SET value = excluded.value
		`, origin, c.Name, c.Value)
		if err != nil {
			return fmt.Errorf("failed to store cookie[%s/%s]: %w", origin, c.Name, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, origin string) ([]*http.Cookie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, value FROM cookies WHERE origin = ? ORDER BY name`, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to load cookies[%s]: %w", origin, err)
	}
	defer rows.Close()

	var result []*http.Cookie
	for rows.Next() {
		c := &http.Cookie{}
		if err := rows.Scan(&c.Name, &c.Value); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cookies`); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

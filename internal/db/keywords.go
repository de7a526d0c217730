package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ranktrack/internal/models"
)

// FindKeywordIDs resolves keyword texts of one type to their stable ids in
// a single round trip. Texts with no stored keyword are simply absent from
// the result map.
func (d *DB) FindKeywordIDs(ctx context.Context, texts []string, t models.KeywordType) (map[string]uuid.UUID, error) {
	out := make(map[string]uuid.UUID, len(texts))
	if len(texts) == 0 {
		return out, nil
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT text, id FROM keywords
		WHERE type = $1 AND text = ANY($2)
	`, string(t), texts)
	if err != nil {
		return nil, fmt.Errorf("failed to look up keyword ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var text string
		var id uuid.UUID
		if err := rows.Scan(&text, &id); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		out[text] = id
	}
	return out, rows.Err()
}

// GetKeywordByID returns one keyword, or ErrKeywordNotFound.
func (d *DB) GetKeywordByID(ctx context.Context, id uuid.UUID) (*models.Keyword, error) {
	var k models.Keyword
	err := d.Pool.QueryRow(ctx, `
		SELECT id, text, type, created_at FROM keywords WHERE id = $1
	`, id).Scan(&k.ID, &k.Text, &k.Type, &k.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeywordNotFound
		}
		return nil, fmt.Errorf("failed to get keyword: %w", err)
	}
	return &k, nil
}

// CreateKeyword inserts a keyword and sets its generated id. Returns
// ErrDuplicateKeyword when the (text, type) pair already exists.
func (d *DB) CreateKeyword(ctx context.Context, k *models.Keyword) error {
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO keywords (text, type)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, k.Text, string(k.Type)).Scan(&k.ID, &k.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateKeyword
		}
		return fmt.Errorf("failed to create keyword: %w", err)
	}
	return nil
}

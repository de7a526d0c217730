package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ranktrack/internal/models"
)

// rankingTables returns the current and daily table names for a keyword
// type. The closed switch is the single place a type's namespaces are
// wired; a supported type missing here is a programming error surfaced by
// TestRankingTablesCoverSupportedTypes.
func rankingTables(t models.KeywordType) (current, daily string, ok bool) {
	switch t {
	case models.TypeShopping:
		return "shopping_rankings", "shopping_rankings_daily", true
	case models.TypePlace:
		return "place_rankings", "place_rankings_daily", true
	case models.TypeCoupang:
		return "coupang_rankings", "coupang_rankings_daily", true
	default:
		return "", "", false
	}
}

// GetCurrentRanking returns the current ranking record for a keyword and
// product, or (nil, nil) when no record exists.
func (d *DB) GetCurrentRanking(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string) (*models.RankingRecord, error) {
	table, _, ok := rankingTables(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLookup, t)
	}

	query := fmt.Sprintf(`
		SELECT keyword_id, product_id, rank, title, link, price, store_name, checked_at
		FROM %s
		WHERE keyword_id = $1 AND product_id = $2
	`, table)

	var r models.RankingRecord
	err := d.Pool.QueryRow(ctx, query, keywordID, productID).Scan(
		&r.KeywordID, &r.ProductID, &r.Rank, &r.Title, &r.Link, &r.Price, &r.StoreName, &r.CheckedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current ranking: %w", err)
	}
	return &r, nil
}

// GetDailyRanking returns the ranking observed on one calendar day, or
// (nil, nil) when that day has no record.
func (d *DB) GetDailyRanking(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string, date time.Time) (*models.RankingRecord, error) {
	_, table, ok := rankingTables(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLookup, t)
	}

	query := fmt.Sprintf(`
		SELECT keyword_id, product_id, rank, title, link, price, store_name, checked_at
		FROM %s
		WHERE keyword_id = $1 AND product_id = $2 AND date = $3::date
	`, table)

	var r models.RankingRecord
	err := d.Pool.QueryRow(ctx, query, keywordID, productID, date).Scan(
		&r.KeywordID, &r.ProductID, &r.Rank, &r.Title, &r.Link, &r.Price, &r.StoreName, &r.CheckedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily ranking: %w", err)
	}
	return &r, nil
}

// GetDailyRankingRange returns the inclusive daily series between two
// dates, ordered ascending. Days without a record are simply absent.
func (d *DB) GetDailyRankingRange(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string, startDate, endDate time.Time) ([]models.DailyRankingRecord, error) {
	_, table, ok := rankingTables(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLookup, t)
	}

	query := fmt.Sprintf(`
		SELECT keyword_id, product_id, rank, title, link, price, store_name, checked_at, date
		FROM %s
		WHERE keyword_id = $1 AND product_id = $2 AND date BETWEEN $3::date AND $4::date
		ORDER BY date ASC
	`, table)

	rows, err := d.Pool.Query(ctx, query, keywordID, productID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily ranking range: %w", err)
	}
	defer rows.Close()

	var series []models.DailyRankingRecord
	for rows.Next() {
		var r models.DailyRankingRecord
		if err := rows.Scan(
			&r.KeywordID, &r.ProductID, &r.Rank, &r.Title, &r.Link, &r.Price, &r.StoreName, &r.CheckedAt, &r.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily ranking: %w", err)
		}
		series = append(series, r)
	}
	return series, rows.Err()
}

// UpsertCurrentRanking stores or refreshes the current record for a
// keyword and product. Used by seeding and the collection pipeline, which
// lives outside this service.
func (d *DB) UpsertCurrentRanking(ctx context.Context, t models.KeywordType, r *models.RankingRecord) error {
	table, _, ok := rankingTables(t)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedLookup, t)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (keyword_id, product_id, rank, title, link, price, store_name, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (keyword_id, product_id) DO UPDATE
		SET rank = EXCLUDED.rank, title = EXCLUDED.title, link = EXCLUDED.link,
		    price = EXCLUDED.price, store_name = EXCLUDED.store_name, checked_at = NOW()
	`, table)

	_, err := d.Pool.Exec(ctx, query, r.KeywordID, r.ProductID, r.Rank, r.Title, r.Link, r.Price, r.StoreName)
	return err
}

// UpsertDailyRanking stores or refreshes one dated observation.
func (d *DB) UpsertDailyRanking(ctx context.Context, t models.KeywordType, r *models.DailyRankingRecord) error {
	_, table, ok := rankingTables(t)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedLookup, t)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (keyword_id, product_id, rank, title, link, price, store_name, checked_at, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), $8::date)
		ON CONFLICT (keyword_id, product_id, date) DO UPDATE
		SET rank = EXCLUDED.rank, title = EXCLUDED.title, link = EXCLUDED.link,
		    price = EXCLUDED.price, store_name = EXCLUDED.store_name, checked_at = NOW()
	`, table)

	_, err := d.Pool.Exec(ctx, query, r.KeywordID, r.ProductID, r.Rank, r.Title, r.Link, r.Price, r.StoreName, r.Date)
	return err
}

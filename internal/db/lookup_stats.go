package db

import (
	"context"

	"ranktrack/internal/models"
)

// IncrementLookupOutcome upserts a keyword resolution count by outcome.
func (d *DB) IncrementLookupOutcome(ctx context.Context, keyword, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO lookup_stats (keyword, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (keyword, outcome) DO UPDATE
		SET count = lookup_stats.count + 1, last_seen_at = NOW()
	`, keyword, outcome)
	return err
}

// GetAllLookupOutcomes returns all lookup stat rows for metrics export.
func (d *DB) GetAllLookupOutcomes(ctx context.Context) ([]models.LookupStat, error) {
	rows, err := d.Pool.Query(ctx, `SELECT keyword, outcome, count, last_seen_at FROM lookup_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.LookupStat
	for rows.Next() {
		var s models.LookupStat
		if err := rows.Scan(&s.Keyword, &s.Outcome, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// GetCampaignsByIDs returns the campaigns present among ids. Missing ids
// are simply absent from the result, not an error.
func (d *DB) GetCampaignsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Campaign, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT id, name, service_type, ranking_field_mapping, created_at, updated_at
		FROM campaigns
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		var mapping []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.ServiceType, &mapping, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		if len(mapping) > 0 {
			c.RankingFieldMapping = &models.FieldMapping{}
			if err := json.Unmarshal(mapping, c.RankingFieldMapping); err != nil {
				return nil, fmt.Errorf("failed to decode campaign field mapping: %w", err)
			}
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// CreateCampaign inserts a campaign and sets its generated id.
func (d *DB) CreateCampaign(ctx context.Context, c *models.Campaign) error {
	var mapping []byte
	if c.RankingFieldMapping != nil {
		var err error
		mapping, err = json.Marshal(c.RankingFieldMapping)
		if err != nil {
			return fmt.Errorf("failed to encode campaign field mapping: %w", err)
		}
	}

	err := d.Pool.QueryRow(ctx, `
		INSERT INTO campaigns (name, service_type, ranking_field_mapping)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.Name, c.ServiceType, mapping).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// GetSlotsByIDs returns the slots present among ids. Missing ids are
// simply absent from the result, not an error.
func (d *DB) GetSlotsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Slot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT id, campaign_id, keyword_id, input_data, created_at, updated_at
		FROM slots
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	defer rows.Close()

	var slots []models.Slot
	for rows.Next() {
		var s models.Slot
		var inputData []byte
		if err := rows.Scan(&s.ID, &s.CampaignID, &s.KeywordID, &inputData, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		if len(inputData) > 0 {
			if err := json.Unmarshal(inputData, &s.InputData); err != nil {
				return nil, fmt.Errorf("failed to decode slot input data: %w", err)
			}
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// CreateSlot inserts a slot and sets its generated id.
func (d *DB) CreateSlot(ctx context.Context, s *models.Slot) error {
	inputData, err := json.Marshal(s.InputData)
	if err != nil {
		return fmt.Errorf("failed to encode slot input data: %w", err)
	}

	err = d.Pool.QueryRow(ctx, `
		INSERT INTO slots (campaign_id, keyword_id, input_data)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, s.CampaignID, s.KeywordID, inputData).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

// UpdateSlotKeywordID stores the resolved keyword id on a slot. This is
// the best-effort side channel fired after a successful resolution; the
// engine never depends on its outcome.
func (d *DB) UpdateSlotKeywordID(ctx context.Context, slotID, keywordID uuid.UUID) error {
	tag, err := d.Pool.Exec(ctx, `
		UPDATE slots SET keyword_id = $2, updated_at = NOW() WHERE id = $1
	`, slotID, keywordID)
	if err != nil {
		return fmt.Errorf("failed to update slot keyword id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// GetSlotByID returns one slot, or ErrSlotNotFound.
func (d *DB) GetSlotByID(ctx context.Context, id uuid.UUID) (*models.Slot, error) {
	slots, err := d.GetSlotsByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrSlotNotFound
	}
	return &slots[0], nil
}

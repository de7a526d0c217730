package models

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a single work order referencing a campaign. InputData is the
// free-form, per-campaign record that the campaign's field mapping is
// applied to when resolving the slot's ranking identity.
type Slot struct {
	ID         uuid.UUID      `json:"id"`
	CampaignID uuid.UUID      `json:"campaign_id"`
	KeywordID  *uuid.UUID     `json:"keyword_id,omitempty"`
	InputData  map[string]any `json:"input_data"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

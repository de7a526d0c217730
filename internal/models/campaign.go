package models

import (
	"time"

	"github.com/google/uuid"
)

// FieldMapping names which InputData keys hold the canonical keyword and
// product id for a campaign's slots. A nil mapping means the fixed default
// keys apply.
type FieldMapping struct {
	Keyword   string `json:"keyword" yaml:"keyword"`
	ProductID string `json:"product_id" yaml:"product_id"`
}

// Campaign is the tenant context that defines how slot input fields are
// interpreted for ranking purposes. Read-only to the engine.
type Campaign struct {
	ID                  uuid.UUID     `json:"id"`
	Name                string        `json:"name"`
	ServiceType         string        `json:"service_type"`
	RankingFieldMapping *FieldMapping `json:"ranking_field_mapping,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

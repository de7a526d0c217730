package models

import (
	"time"

	"github.com/google/uuid"
)

// Ranking result statuses
const (
	// StatusChecked means a current ranking record was found.
	StatusChecked = "checked"
	// StatusNoRank means the identity resolved but no current record exists.
	StatusNoRank = "no-rank"
	// StatusNotTarget means the slot's fields could not be resolved or its
	// campaign's keyword type does not support ranking.
	StatusNotTarget = "not-target"
)

// RankUnranked is the rank carried by results without a current record.
// Stored ranks are always >= 1, so the sentinel cannot collide.
const RankUnranked = -1

// RankingRecord is one observed rank for a keyword/product pair. The
// descriptive fields pass through to results unmodified.
type RankingRecord struct {
	KeywordID uuid.UUID `json:"keyword_id"`
	ProductID string    `json:"product_id"`
	Rank      int       `json:"rank"`
	Title     string    `json:"title,omitempty"`
	Link      string    `json:"link,omitempty"`
	Price     *int64    `json:"price,omitempty"`
	StoreName string    `json:"store_name,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// DailyRankingRecord is a dated historical rank observation, one per
// calendar day.
type DailyRankingRecord struct {
	RankingRecord
	Date time.Time `json:"date"`
}

// RankingResult is the engine output for a single slot.
type RankingResult struct {
	Keyword         string `json:"keyword,omitempty"`
	ProductID       string `json:"product_id,omitempty"`
	Rank            int    `json:"rank"`
	PreviousDayRank *int   `json:"previous_day_rank,omitempty"`
	Title           string `json:"title,omitempty"`
	Link            string `json:"link,omitempty"`
	Price           *int64 `json:"price,omitempty"`
	StoreName       string `json:"store_name,omitempty"`
	Status          string `json:"status"`
}

// BulkRankingRequest is the API request body for a bulk ranking query.
type BulkRankingRequest struct {
	SlotIDs []string `json:"slot_ids"`
}

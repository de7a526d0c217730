package db

import "errors"

// Domain-level database error sentinels.
var (
	// Slot errors
	ErrSlotNotFound = errors.New("slot not found")

	// Campaign errors
	ErrCampaignNotFound = errors.New("campaign not found")

	// Keyword errors
	ErrKeywordNotFound   = errors.New("keyword not found")
	ErrDuplicateKeyword  = errors.New("keyword already exists for this type")
	ErrUnsupportedLookup = errors.New("keyword type has no ranking tables")
)

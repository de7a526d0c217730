package models

import (
	"time"

	"github.com/google/uuid"
)

// KeywordType selects which ranking storage namespace holds data for a
// keyword. The set is closed; adding a type means wiring its table pair
// in the db package.
type KeywordType string

const (
	TypeShopping     KeywordType = "shopping"
	TypePlace        KeywordType = "place"
	TypeCoupang      KeywordType = "coupang"
	TypeAutocomplete KeywordType = "autocomplete"
	TypeBrand        KeywordType = "brand"
)

// SupportsRanking reports whether ranking tables exist for the type.
// Types outside the allow-list short-circuit to a not-target result
// without any storage I/O.
func (t KeywordType) SupportsRanking() bool {
	switch t {
	case TypeShopping, TypePlace, TypeCoupang:
		return true
	default:
		return false
	}
}

// Keyword is a stored canonical keyword under one type. Two slots whose
// input resolves to the same text and type share the same keyword id.
type Keyword struct {
	ID        uuid.UUID   `json:"id"`
	Text      string      `json:"text"`
	Type      KeywordType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}

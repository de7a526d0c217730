package engine

import (
	"strings"

	"ranktrack/internal/models"
)

// serviceTypeTable maps a campaign's service-type tag to its keyword type.
// The table is closed; per-deployment aliases only extend it, never
// override it.
var serviceTypeTable = map[string]models.KeywordType{
	"shopping":         models.TypeShopping,
	"shopping-compare": models.TypeShopping,
	"shopping-store":   models.TypeShopping,
	"place":            models.TypePlace,
	"place-save":       models.TypePlace,
	"place-traffic":    models.TypePlace,
	"coupang":          models.TypeCoupang,
	"autocomplete":     models.TypeAutocomplete,
	"brand-search":     models.TypeBrand,
}

// ClassifyServiceType maps a campaign service type to its keyword type.
// Unknown and empty service types default to shopping, the dominant
// vertical, rather than failing.
func ClassifyServiceType(serviceType string) models.KeywordType {
	if t, ok := serviceTypeTable[normalizeServiceType(serviceType)]; ok {
		return t
	}
	return models.TypeShopping
}

// classify applies the static table first, then deployment aliases.
func (e *Engine) classify(serviceType string) models.KeywordType {
	key := normalizeServiceType(serviceType)
	if t, ok := serviceTypeTable[key]; ok {
		return t
	}
	if t, ok := e.aliases[key]; ok {
		return t
	}
	return models.TypeShopping
}

func normalizeServiceType(serviceType string) string {
	return strings.ToLower(strings.TrimSpace(serviceType))
}

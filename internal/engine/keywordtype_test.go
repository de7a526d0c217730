package engine

import (
	"testing"

	"ranktrack/internal/models"
)

func TestClassifyServiceType(t *testing.T) {
	tests := []struct {
		serviceType string
		want        models.KeywordType
	}{
		{"shopping", models.TypeShopping},
		{"shopping-compare", models.TypeShopping},
		{"shopping-store", models.TypeShopping},
		{"place", models.TypePlace},
		{"place-save", models.TypePlace},
		{"place-traffic", models.TypePlace},
		{"coupang", models.TypeCoupang},
		{"autocomplete", models.TypeAutocomplete},
		{"brand-search", models.TypeBrand},
		{" Place ", models.TypePlace},
		{"SHOPPING", models.TypeShopping},

		// unknown and empty default to shopping
		{"", models.TypeShopping},
		{"unheard-of", models.TypeShopping},
	}

	for _, tt := range tests {
		if got := ClassifyServiceType(tt.serviceType); got != tt.want {
			t.Errorf("ClassifyServiceType(%q) = %q, want %q", tt.serviceType, got, tt.want)
		}
	}
}

func TestSupportsRanking(t *testing.T) {
	supported := []models.KeywordType{models.TypeShopping, models.TypePlace, models.TypeCoupang}
	for _, kt := range supported {
		if !kt.SupportsRanking() {
			t.Errorf("%q.SupportsRanking() = false, want true", kt)
		}
	}

	unsupported := []models.KeywordType{models.TypeAutocomplete, models.TypeBrand, models.KeywordType("bogus")}
	for _, kt := range unsupported {
		if kt.SupportsRanking() {
			t.Errorf("%q.SupportsRanking() = true, want false", kt)
		}
	}
}

func TestClassifyAliases(t *testing.T) {
	e := &Engine{aliases: map[string]models.KeywordType{
		"smartstore": models.TypeShopping,
		"shopping":   models.TypePlace, // must lose to the static table
	}}

	if got := e.classify("smartstore"); got != models.TypeShopping {
		t.Errorf("classify(smartstore) = %q, want %q", got, models.TypeShopping)
	}
	if got := e.classify("shopping"); got != models.TypeShopping {
		t.Errorf("classify(shopping) = %q, want %q (static table must win)", got, models.TypeShopping)
	}
}

package engine

import (
	"strings"

	"ranktrack/internal/models"
)

// Default input keys searched when a campaign carries no field mapping or
// its mapped keys are missing from the slot input. Order is precedence.
var (
	defaultKeywordKeys = []string{"mainKeyword", "keyword"}
	defaultProductKeys = []string{"mid", "product_id"}
)

// nestedKeywordsField is the guarantee-program input shape: the slot input
// holds a "keywords" sequence whose elements wrap their own input_data
// record.
const nestedKeywordsField = "keywords"

// resolveFields extracts the canonical keyword and product id from a slot's
// input record. The campaign's mapped key is tried first, then the default
// keys in order, then the nested guarantee shape with the same key order.
// Returns ok=false when either value is empty after all fallbacks; callers
// treat that as not-target, never as an error.
func resolveFields(input map[string]any, mapping *models.FieldMapping) (keyword, productID string, ok bool) {
	keywordKeys := defaultKeywordKeys
	productKeys := defaultProductKeys
	if mapping != nil {
		if mapping.Keyword != "" {
			keywordKeys = append([]string{mapping.Keyword}, defaultKeywordKeys...)
		}
		if mapping.ProductID != "" {
			productKeys = append([]string{mapping.ProductID}, defaultProductKeys...)
		}
	}

	keyword = firstString(input, keywordKeys)
	productID = firstString(input, productKeys)

	if keyword == "" || productID == "" {
		if nested := nestedInputData(input); nested != nil {
			if keyword == "" {
				keyword = firstString(nested, keywordKeys)
			}
			if productID == "" {
				productID = firstString(nested, productKeys)
			}
		}
	}

	keyword = sanitizeField(keyword)
	productID = sanitizeField(productID)
	return keyword, productID, keyword != "" && productID != ""
}

// firstString returns the first non-empty string value among keys, in order.
func firstString(input map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := input[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// nestedInputData returns the input_data record of the first element of the
// nested keywords sequence, if the slot carries that shape.
func nestedInputData(input map[string]any) map[string]any {
	seq, ok := input[nestedKeywordsField].([]any)
	if !ok || len(seq) == 0 {
		return nil
	}
	first, ok := seq[0].(map[string]any)
	if !ok {
		return nil
	}
	nested, _ := first["input_data"].(map[string]any)
	return nested
}

// sanitizeField trims surrounding whitespace and strips carriage returns
// pasted in from Windows line endings.
func sanitizeField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r", ""))
}

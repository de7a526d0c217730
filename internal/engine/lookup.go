package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// resolveKeywordIDs resolves distinct identities to keyword ids with one
// store round trip per keyword type. Per-type lookups run concurrently.
// Identities with no stored keyword are absent from the result; a failed
// type lookup is logged and leaves its identities absent, which callers
// surface as no-rank. Safe to call with an empty input: returns an empty
// map without I/O.
func (e *Engine) resolveKeywordIDs(ctx context.Context, idents []identity) map[identity]uuid.UUID {
	out := make(map[identity]uuid.UUID, len(idents))
	if len(idents) == 0 {
		return out
	}

	byType := make(map[models.KeywordType][]string)
	for _, id := range idents {
		byType[id.typ] = append(byType[id.typ], id.text)
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for t, texts := range byType {
		wg.Add(1)
		go func(t models.KeywordType, texts []string) {
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, e.callTimeout)
			defer cancel()

			ids, err := e.keywords.FindKeywordIDs(cctx, texts, t)
			if err != nil {
				slog.Error("keyword id lookup failed", "type", t, "keywords", len(texts), "error", err)
				return
			}

			mu.Lock()
			for text, keywordID := range ids {
				out[identity{text: text, typ: t}] = keywordID
			}
			mu.Unlock()
		}(t, texts)
	}
	wg.Wait()

	return out
}

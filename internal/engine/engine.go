// Package engine implements the ranking resolution and aggregation core:
// it resolves slots to canonical keyword/product identities, deduplicates
// lookups across requesters, fans out to the type-appropriate ranking
// storage and aggregates the results back onto every requesting slot.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ranktrack/internal/cache"
	"ranktrack/internal/models"
)

// defaultCallTimeout bounds each individual storage call.
const defaultCallTimeout = 5 * time.Second

// SlotProvider loads slots by id. Missing ids are simply absent from the
// result, not an error.
type SlotProvider interface {
	GetSlotsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Slot, error)
}

// CampaignProvider loads campaigns by id. Missing ids are simply absent.
type CampaignProvider interface {
	GetCampaignsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Campaign, error)
}

// KeywordStore resolves keyword texts of one type to their stable ids.
type KeywordStore interface {
	// FindKeywordIDs returns ids for the given texts in one round trip.
	// Texts with no stored keyword are absent from the result map.
	FindKeywordIDs(ctx context.Context, texts []string, t models.KeywordType) (map[string]uuid.UUID, error)
}

// RankingStore reads ranking records from the type-appropriate namespace.
// The point lookups return (nil, nil) when no record exists.
type RankingStore interface {
	GetCurrentRanking(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string) (*models.RankingRecord, error)
	GetDailyRanking(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string, date time.Time) (*models.RankingRecord, error)
	GetDailyRankingRange(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string, startDate, endDate time.Time) ([]models.DailyRankingRecord, error)
}

// Engine resolves slots to ranking results. Construct once per process and
// share; all methods are safe for concurrent use.
type Engine struct {
	slots     SlotProvider
	campaigns CampaignProvider
	keywords  KeywordStore
	rankings  RankingStore
	results   cache.ResultCache

	callTimeout time.Duration
	now         func() time.Time
	aliases     map[string]models.KeywordType

	keywordResolvedHook func(slotID, keywordID uuid.UUID)
	recordOutcome       func(keyword, outcome string)
}

// New creates an Engine over the given collaborators.
func New(slots SlotProvider, campaigns CampaignProvider, keywords KeywordStore, rankings RankingStore, results cache.ResultCache) *Engine {
	return &Engine{
		slots:       slots,
		campaigns:   campaigns,
		keywords:    keywords,
		rankings:    rankings,
		results:     results,
		callTimeout: defaultCallTimeout,
		now:         time.Now,
	}
}

// SetCallTimeout overrides the per-storage-call timeout.
func (e *Engine) SetCallTimeout(d time.Duration) {
	if d > 0 {
		e.callTimeout = d
	}
}

// SetClock replaces the time source, for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SetServiceTypeAliases installs per-deployment service-type aliases
// consulted after the static classification table.
func (e *Engine) SetServiceTypeAliases(aliases map[string]models.KeywordType) {
	e.aliases = aliases
}

// OnKeywordResolved installs the best-effort side channel fired when a slot
// resolves to a keyword id it did not already carry. The callback runs on
// its own goroutine; its outcome never affects engine results.
func (e *Engine) OnKeywordResolved(fn func(slotID, keywordID uuid.UUID)) {
	e.keywordResolvedHook = fn
}

// SetOutcomeRecorder installs the per-slot outcome hook used for lookup
// accounting. Must not block.
func (e *Engine) SetOutcomeRecorder(fn func(keyword, outcome string)) {
	e.recordOutcome = fn
}

// identity is the deduplication key for keyword id lookups.
type identity struct {
	text string
	typ  models.KeywordType
}

// slotIdentity binds a slot to its resolved identity and product id.
type slotIdentity struct {
	slot      models.Slot
	id        identity
	productID string
}

// GetBulkRankingData resolves current and previous-day rankings for a set
// of slots. Every input slot gets an entry in the returned map; a bad slot
// degrades to a not-target or no-rank result without affecting its
// siblings. Consumers must not assume any enumeration order.
func (e *Engine) GetBulkRankingData(ctx context.Context, slots []models.Slot) (map[uuid.UUID]models.RankingResult, error) {
	results := make(map[uuid.UUID]models.RankingResult, len(slots))
	if len(slots) == 0 {
		return results, nil
	}

	key := cache.BuildKey(slotIDs(slots))
	if cached, ok := e.results.Get(key); ok {
		return cached, nil
	}

	campaignsByID, err := e.loadCampaigns(ctx, slots)
	if err != nil {
		return nil, err
	}

	resolved := make([]slotIdentity, 0, len(slots))
	for _, s := range slots {
		var mapping *models.FieldMapping
		serviceType := ""
		if c, ok := campaignsByID[s.CampaignID]; ok {
			mapping = c.RankingFieldMapping
			serviceType = c.ServiceType
		}

		keyword, productID, ok := resolveFields(s.InputData, mapping)
		if !ok {
			results[s.ID] = models.RankingResult{Rank: models.RankUnranked, Status: models.StatusNotTarget}
			continue
		}

		t := e.classify(serviceType)
		if !t.SupportsRanking() {
			results[s.ID] = models.RankingResult{
				Keyword:   keyword,
				ProductID: productID,
				Rank:      models.RankUnranked,
				Status:    models.StatusNotTarget,
			}
			e.record(keyword, models.StatusNotTarget)
			continue
		}

		resolved = append(resolved, slotIdentity{
			slot:      s,
			id:        identity{text: keyword, typ: t},
			productID: productID,
		})
	}

	idMap := e.resolveKeywordIDs(ctx, identities(resolved))

	groups := make(map[fetchKey][]slotIdentity)
	for _, si := range resolved {
		keywordID, ok := idMap[si.id]
		if !ok {
			results[si.slot.ID] = models.RankingResult{
				Keyword:   si.id.text,
				ProductID: si.productID,
				Rank:      models.RankUnranked,
				Status:    models.StatusNoRank,
			}
			e.record(si.id.text, models.StatusNoRank)
			continue
		}

		if e.keywordResolvedHook != nil && (si.slot.KeywordID == nil || *si.slot.KeywordID != keywordID) {
			go e.keywordResolvedHook(si.slot.ID, keywordID)
		}

		k := fetchKey{keywordID: keywordID, productID: si.productID, typ: si.id.typ}
		groups[k] = append(groups[k], si)
	}

	fetched := e.fetchRankings(ctx, fetchKeys(groups))

	for k, members := range groups {
		pair := fetched[k]
		for _, si := range members {
			result := buildResult(si.id.text, si.productID, pair)
			results[si.slot.ID] = result
			e.record(si.id.text, result.Status)
		}
	}

	e.results.Set(key, results)
	return results, nil
}

// loadCampaigns fetches the distinct campaigns referenced by slots and
// indexes them by id. Missing campaigns are simply absent; the default
// field mapping applies to their slots.
func (e *Engine) loadCampaigns(ctx context.Context, slots []models.Slot) (map[uuid.UUID]models.Campaign, error) {
	seen := make(map[uuid.UUID]bool, len(slots))
	ids := make([]uuid.UUID, 0, len(slots))
	for _, s := range slots {
		if !seen[s.CampaignID] {
			seen[s.CampaignID] = true
			ids = append(ids, s.CampaignID)
		}
	}

	cctx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	campaigns, err := e.campaigns.GetCampaignsByIDs(cctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}

	byID := make(map[uuid.UUID]models.Campaign, len(campaigns))
	for _, c := range campaigns {
		byID[c.ID] = c
	}
	return byID, nil
}

// buildResult shapes one fetched pair into the per-slot result. The same
// value is broadcast to every slot sharing the pair's identity.
func buildResult(keyword, productID string, pair rankingPair) models.RankingResult {
	result := models.RankingResult{
		Keyword:   keyword,
		ProductID: productID,
		Rank:      models.RankUnranked,
		Status:    models.StatusNoRank,
	}

	if pair.previous != nil {
		prev := pair.previous.Rank
		result.PreviousDayRank = &prev
	}

	if pair.current != nil {
		result.Rank = pair.current.Rank
		result.Title = pair.current.Title
		result.Link = pair.current.Link
		result.Price = pair.current.Price
		result.StoreName = pair.current.StoreName
		result.Status = models.StatusChecked
	}

	return result
}

func (e *Engine) record(keyword, outcome string) {
	if e.recordOutcome != nil && keyword != "" {
		e.recordOutcome(keyword, outcome)
	}
}

func slotIDs(slots []models.Slot) []uuid.UUID {
	ids := make([]uuid.UUID, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	return ids
}

// identities returns the distinct identities among the resolved slots.
func identities(resolved []slotIdentity) []identity {
	seen := make(map[identity]bool, len(resolved))
	out := make([]identity, 0, len(resolved))
	for _, si := range resolved {
		if !seen[si.id] {
			seen[si.id] = true
			out = append(out, si.id)
		}
	}
	return out
}

func fetchKeys(groups map[fetchKey][]slotIdentity) []fetchKey {
	keys := make([]fetchKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	return keys
}

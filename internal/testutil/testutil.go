// Package testutil provides counting fake stores for engine tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// ErrStorage is the simulated storage failure returned by fakes.
var ErrStorage = errors.New("simulated storage failure")

// FakeStore implements the engine's slot, campaign, keyword and ranking
// store interfaces in memory and counts every call, so tests can assert
// exactly how often the underlying storage was consulted.
type FakeStore struct {
	mu sync.Mutex

	slots     map[uuid.UUID]models.Slot
	campaigns map[uuid.UUID]models.Campaign
	keywords  map[identityKey]uuid.UUID
	current   map[recordKey]*models.RankingRecord
	daily     map[recordKey][]models.DailyRankingRecord

	// FailCurrentFor makes the current-record lookup for these keyword
	// ids return ErrStorage.
	FailCurrentFor map[uuid.UUID]bool
	// FailKeywordLookups makes every FindKeywordIDs call return ErrStorage.
	FailKeywordLookups bool

	FindKeywordIDsCalls int
	CurrentCalls        int
	DailyCalls          int
	RangeCalls          int
	SlotCalls           int
	CampaignCalls       int
}

type identityKey struct {
	text string
	typ  models.KeywordType
}

type recordKey struct {
	keywordID uuid.UUID
	productID string
}

// NewFakeStore creates an empty fake store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		slots:          make(map[uuid.UUID]models.Slot),
		campaigns:      make(map[uuid.UUID]models.Campaign),
		keywords:       make(map[identityKey]uuid.UUID),
		current:        make(map[recordKey]*models.RankingRecord),
		daily:          make(map[recordKey][]models.DailyRankingRecord),
		FailCurrentFor: make(map[uuid.UUID]bool),
	}
}

// AddSlot registers a slot.
func (f *FakeStore) AddSlot(s models.Slot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[s.ID] = s
}

// AddCampaign registers a campaign.
func (f *FakeStore) AddCampaign(c models.Campaign) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.campaigns[c.ID] = c
}

// AddKeyword registers a keyword and returns its generated id.
func (f *FakeStore) AddKeyword(text string, t models.KeywordType) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.keywords[identityKey{text: text, typ: t}] = id
	return id
}

// SetCurrent registers the current ranking record for a keyword/product pair.
func (f *FakeStore) SetCurrent(keywordID uuid.UUID, productID string, record models.RankingRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record.KeywordID = keywordID
	record.ProductID = productID
	f.current[recordKey{keywordID: keywordID, productID: productID}] = &record
}

// AddDaily appends a dated observation for a keyword/product pair. Tests
// must append in ascending date order, matching the store contract.
func (f *FakeStore) AddDaily(keywordID uuid.UUID, productID string, date time.Time, rank int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey{keywordID: keywordID, productID: productID}
	f.daily[key] = append(f.daily[key], models.DailyRankingRecord{
		RankingRecord: models.RankingRecord{KeywordID: keywordID, ProductID: productID, Rank: rank},
		Date:          date,
	})
}

// GetSlotsByIDs implements engine.SlotProvider.
func (f *FakeStore) GetSlotsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SlotCalls++

	var out []models.Slot
	for _, id := range ids {
		if s, ok := f.slots[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetCampaignsByIDs implements engine.CampaignProvider.
func (f *FakeStore) GetCampaignsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CampaignCalls++

	var out []models.Campaign
	for _, id := range ids {
		if c, ok := f.campaigns[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// FindKeywordIDs implements engine.KeywordStore.
func (f *FakeStore) FindKeywordIDs(ctx context.Context, texts []string, t models.KeywordType) (map[string]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FindKeywordIDsCalls++

	if f.FailKeywordLookups {
		return nil, ErrStorage
	}

	out := make(map[string]uuid.UUID)
	for _, text := range texts {
		if id, ok := f.keywords[identityKey{text: text, typ: t}]; ok {
			out[text] = id
		}
	}
	return out, nil
}

// GetCurrentRanking implements engine.RankingStore.
func (f *FakeStore) GetCurrentRanking(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string) (*models.RankingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CurrentCalls++

	if f.FailCurrentFor[keywordID] {
		return nil, ErrStorage
	}
	return f.current[recordKey{keywordID: keywordID, productID: productID}], nil
}

// GetDailyRanking implements engine.RankingStore.
func (f *FakeStore) GetDailyRanking(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string, date time.Time) (*models.RankingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DailyCalls++

	day := date.UTC().Format("2006-01-02")
	for _, record := range f.daily[recordKey{keywordID: keywordID, productID: productID}] {
		if record.Date.UTC().Format("2006-01-02") == day {
			r := record.RankingRecord
			return &r, nil
		}
	}
	return nil, nil
}

// GetDailyRankingRange implements engine.RankingStore.
func (f *FakeStore) GetDailyRankingRange(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string, startDate, endDate time.Time) ([]models.DailyRankingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RangeCalls++

	var out []models.DailyRankingRecord
	for _, record := range f.daily[recordKey{keywordID: keywordID, productID: productID}] {
		if record.Date.Before(startDate) || record.Date.After(endDate) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// StoreCalls returns the total number of keyword and ranking store calls.
func (f *FakeStore) StoreCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.FindKeywordIDsCalls + f.CurrentCalls + f.DailyCalls + f.RangeCalls
}

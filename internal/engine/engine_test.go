package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranktrack/internal/cache"
	"ranktrack/internal/models"
	"ranktrack/internal/testutil"
)

func newTestEngine(store *testutil.FakeStore, ttl time.Duration) (*Engine, *cache.Memory) {
	mem := cache.NewMemory(ttl)
	return New(store, store, store, store, mem), mem
}

// shoppingSlot builds a slot plus its campaign registered on the store.
func shoppingSlot(store *testutil.FakeStore, keyword, productID string) models.Slot {
	campaign := models.Campaign{ID: uuid.New(), Name: "test campaign", ServiceType: "shopping"}
	store.AddCampaign(campaign)

	slot := models.Slot{
		ID:         uuid.New(),
		CampaignID: campaign.ID,
		InputData:  map[string]any{"mainKeyword": keyword, "mid": productID},
	}
	store.AddSlot(slot)
	return slot
}

func TestGetBulkRankingData_Checked(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	slot := shoppingSlot(store, "shoes", "1000")
	keywordID := store.AddKeyword("shoes", models.TypeShopping)
	store.SetCurrent(keywordID, "1000", models.RankingRecord{Rank: 3, Title: "Best Shoes", StoreName: "ShoeMart"})
	store.AddDaily(keywordID, "1000", time.Now().AddDate(0, 0, -1), 5)

	results, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slot})
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[slot.ID]
	assert.Equal(t, models.StatusChecked, result.Status)
	assert.Equal(t, 3, result.Rank)
	assert.Equal(t, "shoes", result.Keyword)
	assert.Equal(t, "1000", result.ProductID)
	assert.Equal(t, "Best Shoes", result.Title)
	assert.Equal(t, "ShoeMart", result.StoreName)
	require.NotNil(t, result.PreviousDayRank)
	assert.Equal(t, 5, *result.PreviousDayRank)
}

func TestGetBulkRankingData_GroupingDeterminism(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	// Five slots across two campaigns sharing one identity
	campaign := models.Campaign{ID: uuid.New(), Name: "c1", ServiceType: "shopping"}
	store.AddCampaign(campaign)

	var slots []models.Slot
	for i := 0; i < 5; i++ {
		slot := models.Slot{
			ID:         uuid.New(),
			CampaignID: campaign.ID,
			InputData:  map[string]any{"mainKeyword": "mugs", "mid": "777"},
		}
		store.AddSlot(slot)
		slots = append(slots, slot)
	}

	keywordID := store.AddKeyword("mugs", models.TypeShopping)
	store.SetCurrent(keywordID, "777", models.RankingRecord{Rank: 9, Title: "Mug"})

	results, err := eng.GetBulkRankingData(context.Background(), slots)
	require.NoError(t, err)
	require.Len(t, results, 5)

	first := results[slots[0].ID]
	for _, slot := range slots[1:] {
		assert.Equal(t, first, results[slot.ID], "colliding slots must receive identical results")
	}

	// One identity means one current and one previous-day lookup total
	assert.Equal(t, 1, store.CurrentCalls)
	assert.Equal(t, 1, store.DailyCalls)
	assert.Equal(t, 1, store.FindKeywordIDsCalls)
}

func TestGetBulkRankingData_CacheIdempotence(t *testing.T) {
	store := testutil.NewFakeStore()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := cache.NewMemory(30 * time.Second)
	mem.SetClock(func() time.Time { return now })
	eng := New(store, store, store, store, mem)

	slotA := shoppingSlot(store, "alpha", "1")
	slotB := shoppingSlot(store, "beta", "2")
	store.SetCurrent(store.AddKeyword("alpha", models.TypeShopping), "1", models.RankingRecord{Rank: 1})
	store.SetCurrent(store.AddKeyword("beta", models.TypeShopping), "2", models.RankingRecord{Rank: 2})

	first, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slotA, slotB})
	require.NoError(t, err)
	callsAfterFirst := store.StoreCalls()
	assert.Positive(t, callsAfterFirst)

	// Same set, reversed order, inside the TTL window: stores untouched
	second, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slotB, slotA})
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, store.StoreCalls())
	assert.Equal(t, first, second)

	// Past the TTL the stores are consulted again
	now = now.Add(31 * time.Second)
	_, err = eng.GetBulkRankingData(context.Background(), []models.Slot{slotA, slotB})
	require.NoError(t, err)
	assert.Greater(t, store.StoreCalls(), callsAfterFirst)
}

func TestGetBulkRankingData_UnsupportedTypeShortCircuit(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	campaign := models.Campaign{ID: uuid.New(), Name: "ac", ServiceType: "autocomplete"}
	store.AddCampaign(campaign)
	slot := models.Slot{
		ID:         uuid.New(),
		CampaignID: campaign.ID,
		InputData:  map[string]any{"mainKeyword": "ignored", "mid": "1"},
	}
	store.AddSlot(slot)

	results, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slot})
	require.NoError(t, err)

	result := results[slot.ID]
	assert.Equal(t, models.StatusNotTarget, result.Status)
	assert.Equal(t, models.RankUnranked, result.Rank)
	assert.Zero(t, store.StoreCalls(), "unsupported type must not reach the stores")
}

func TestGetBulkRankingData_UnresolvableInput(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	campaign := models.Campaign{ID: uuid.New(), Name: "c", ServiceType: "shopping"}
	store.AddCampaign(campaign)
	slot := models.Slot{
		ID:         uuid.New(),
		CampaignID: campaign.ID,
		InputData:  map[string]any{"unrelated": "value"},
	}
	store.AddSlot(slot)

	results, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slot})
	require.NoError(t, err)

	assert.Equal(t, models.StatusNotTarget, results[slot.ID].Status)
	assert.Zero(t, store.StoreCalls())
}

func TestGetBulkRankingData_MissingCurrentRecord(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	slot := shoppingSlot(store, "rare", "5")
	store.AddKeyword("rare", models.TypeShopping)
	// identity resolves but no current record exists

	results, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slot})
	require.NoError(t, err)

	result := results[slot.ID]
	assert.Equal(t, models.StatusNoRank, result.Status)
	assert.Equal(t, models.RankUnranked, result.Rank)
}

func TestGetBulkRankingData_UnknownKeyword(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	slot := shoppingSlot(store, "never-stored", "5")

	results, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slot})
	require.NoError(t, err)

	result := results[slot.ID]
	assert.Equal(t, models.StatusNoRank, result.Status)
	// identity lookup happened, ranking fetch did not
	assert.Equal(t, 1, store.FindKeywordIDsCalls)
	assert.Zero(t, store.CurrentCalls)
}

func TestGetBulkRankingData_PartialFailureIsolation(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	// Ten slots across three distinct identities
	keywords := []string{"one", "two", "three"}
	keywordIDs := make(map[string]uuid.UUID, len(keywords))
	var slots []models.Slot
	for i := 0; i < 10; i++ {
		kw := keywords[i%3]
		slots = append(slots, shoppingSlot(store, kw, "p-"+kw))
	}
	for i, kw := range keywords {
		id := store.AddKeyword(kw, models.TypeShopping)
		keywordIDs[kw] = id
		store.SetCurrent(id, "p-"+kw, models.RankingRecord{Rank: i + 1})
	}

	// One identity's current lookup blows up
	store.FailCurrentFor[keywordIDs["two"]] = true

	results, err := eng.GetBulkRankingData(context.Background(), slots)
	require.NoError(t, err)
	require.Len(t, results, 10)

	for i, slot := range slots {
		kw := keywords[i%3]
		result := results[slot.ID]
		if kw == "two" {
			assert.Equal(t, models.StatusNoRank, result.Status, "failed identity degrades to no-rank")
		} else {
			assert.Equal(t, models.StatusChecked, result.Status, "sibling identities must stay populated")
		}
	}
}

func TestGetBulkRankingData_KeywordResolvedCallback(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	slot := shoppingSlot(store, "callback", "9")
	keywordID := store.AddKeyword("callback", models.TypeShopping)

	type resolution struct {
		slotID    uuid.UUID
		keywordID uuid.UUID
	}
	fired := make(chan resolution, 1)
	eng.OnKeywordResolved(func(slotID, keywordID uuid.UUID) {
		fired <- resolution{slotID: slotID, keywordID: keywordID}
	})

	_, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slot})
	require.NoError(t, err)

	select {
	case got := <-fired:
		assert.Equal(t, slot.ID, got.slotID)
		assert.Equal(t, keywordID, got.keywordID)
	case <-time.After(time.Second):
		t.Fatal("keyword resolved callback was not fired")
	}
}

func TestGetBulkRankingData_CallbackSkippedWhenAlreadyStored(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	keywordID := store.AddKeyword("known", models.TypeShopping)

	campaign := models.Campaign{ID: uuid.New(), Name: "c", ServiceType: "shopping"}
	store.AddCampaign(campaign)
	slot := models.Slot{
		ID:         uuid.New(),
		CampaignID: campaign.ID,
		KeywordID:  &keywordID,
		InputData:  map[string]any{"mainKeyword": "known", "mid": "1"},
	}
	store.AddSlot(slot)

	fired := make(chan struct{}, 1)
	eng.OnKeywordResolved(func(_, _ uuid.UUID) {
		fired <- struct{}{}
	})

	_, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slot})
	require.NoError(t, err)

	select {
	case <-fired:
		t.Fatal("callback must not fire for an already-stored keyword id")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestGetBulkRankingData_EmptyInput(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	results, err := eng.GetBulkRankingData(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, store.StoreCalls())
	assert.Zero(t, store.CampaignCalls)
}

func TestGetBulkRankingData_UnknownCampaignUsesDefaults(t *testing.T) {
	store := testutil.NewFakeStore()
	eng, _ := newTestEngine(store, time.Minute)

	// Campaign is not registered: the default mapping and default type apply
	slot := models.Slot{
		ID:         uuid.New(),
		CampaignID: uuid.New(),
		InputData:  map[string]any{"mainKeyword": "orphan", "mid": "3"},
	}
	store.AddSlot(slot)

	keywordID := store.AddKeyword("orphan", models.TypeShopping)
	store.SetCurrent(keywordID, "3", models.RankingRecord{Rank: 4})

	results, err := eng.GetBulkRankingData(context.Background(), []models.Slot{slot})
	require.NoError(t, err)
	assert.Equal(t, models.StatusChecked, results[slot.ID].Status)
	assert.Equal(t, 4, results[slot.ID].Rank)
}

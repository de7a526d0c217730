package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// GetGuaranteeRankingStats computes achievement statistics for a guarantee
// slot against a target rank over an inclusive date range. Returns
// (nil, nil) when the statistics cannot be computed: unresolvable slot
// fields, unsupported keyword type, unknown keyword, an inverted date
// range or a target rank below 1. Those are reportable conditions, not
// errors.
func (e *Engine) GetGuaranteeRankingStats(ctx context.Context, slotID, campaignID uuid.UUID, targetRank int, startDate, endDate time.Time) (*models.GuaranteeStatistics, error) {
	if targetRank < 1 || endDate.Before(startDate) {
		return nil, nil
	}

	slots, err := e.slots.GetSlotsByIDs(ctx, []uuid.UUID{slotID})
	if err != nil {
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if len(slots) == 0 {
		return nil, nil
	}
	slot := slots[0]

	campaigns, err := e.campaigns.GetCampaignsByIDs(ctx, []uuid.UUID{campaignID})
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	var mapping *models.FieldMapping
	serviceType := ""
	if len(campaigns) > 0 {
		mapping = campaigns[0].RankingFieldMapping
		serviceType = campaigns[0].ServiceType
	}

	keyword, productID, ok := resolveFields(slot.InputData, mapping)
	if !ok {
		return nil, nil
	}

	t := e.classify(serviceType)
	if !t.SupportsRanking() {
		return nil, nil
	}

	ident := identity{text: keyword, typ: t}
	keywordID, ok := e.resolveKeywordIDs(ctx, []identity{ident})[ident]
	if !ok {
		return nil, nil
	}

	series := e.loadDailySeries(ctx, t, keywordID, productID, startDate, endDate)
	current := e.loadCurrent(ctx, t, keywordID, productID)

	return computeGuaranteeStats(targetRank, startDate, endDate, series, current), nil
}

// loadDailySeries loads the inclusive ascending daily series, degrading a
// storage failure to an empty series.
func (e *Engine) loadDailySeries(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string, startDate, endDate time.Time) []models.DailyRankingRecord {
	cctx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	series, err := e.rankings.GetDailyRankingRange(cctx, t, keywordID, productID, startDate, endDate)
	if err != nil {
		slog.Error("daily ranking range lookup failed",
			"type", t, "keyword_id", keywordID, "product_id", productID, "error", err)
		return nil
	}
	return series
}

func (e *Engine) loadCurrent(ctx context.Context, t models.KeywordType, keywordID uuid.UUID, productID string) *models.RankingRecord {
	cctx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	record, err := e.rankings.GetCurrentRanking(cctx, t, keywordID, productID)
	if err != nil {
		slog.Error("current ranking lookup failed",
			"type", t, "keyword_id", keywordID, "product_id", productID, "error", err)
		return nil
	}
	return record
}

// computeGuaranteeStats derives the guarantee metrics from a daily series
// ordered ascending by date. Days without data count toward the total span
// but never toward achievement.
func computeGuaranteeStats(targetRank int, startDate, endDate time.Time, series []models.DailyRankingRecord, current *models.RankingRecord) *models.GuaranteeStatistics {
	stats := &models.GuaranteeStatistics{
		TargetRank:    targetRank,
		DailyRankings: make([]models.DailyRanking, 0, len(series)),
	}

	if current != nil {
		rank := current.Rank
		stats.CurrentRank = &rank
	}

	totalDays := int(truncateDay(endDate).Sub(truncateDay(startDate))/(24*time.Hour)) + 1
	if totalDays > 0 {
		stats.TotalDays = totalDays
	}

	sum := 0
	for i, record := range series {
		if i == 0 {
			rank := record.Rank
			stats.FirstRank = &rank
		}
		if stats.BestRank == nil || record.Rank < *stats.BestRank {
			rank := record.Rank
			stats.BestRank = &rank
		}

		sum += record.Rank
		achieved := record.Rank <= targetRank
		if achieved {
			stats.AchievedDays++
		}

		stats.DailyRankings = append(stats.DailyRankings, models.DailyRanking{
			Date:       record.Date.Format("2006-01-02"),
			Rank:       record.Rank,
			IsAchieved: achieved,
		})
	}

	if len(series) > 0 {
		avg := math.Round(float64(sum)/float64(len(series))*10) / 10
		stats.AverageRank = &avg
	}
	if stats.TotalDays > 0 {
		stats.AchievementRate = int(math.Round(float64(stats.AchievedDays) / float64(stats.TotalDays) * 100))
	}

	return stats
}

// truncateDay normalizes a timestamp to UTC midnight so the day span is
// immune to time-of-day and zone offsets.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranktrack/internal/db"
	"ranktrack/internal/engine"
	"ranktrack/internal/models"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// RankingsHandler exposes the ranking engine via JSON API.
type RankingsHandler struct {
	db     *db.DB
	engine *engine.Engine
}

// NewRankingsHandler creates a new API rankings handler.
func NewRankingsHandler(database *db.DB, eng *engine.Engine) *RankingsHandler {
	return &RankingsHandler{db: database, engine: eng}
}

// Bulk resolves current and previous-day rankings for a set of slots.
// Unknown slot ids are silently absent from the result map.
func (h *RankingsHandler) Bulk(c fiber.Ctx) error {
	var req models.BulkRankingRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.SlotIDs) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "slot_ids is required")
	}

	ids := make([]uuid.UUID, 0, len(req.SlotIDs))
	for _, raw := range req.SlotIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid slot id: "+raw)
		}
		ids = append(ids, id)
	}

	slots, err := h.db.GetSlotsByIDs(c.Context(), ids)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load slots")
	}

	results, err := h.engine.GetBulkRankingData(c.Context(), slots)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to resolve rankings")
	}

	return jsonSuccess(c, results)
}

// Guarantee computes guarantee-program statistics for one slot.
func (h *RankingsHandler) Guarantee(c fiber.Ctx) error {
	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid slot id")
	}

	campaignID, err := uuid.Parse(c.Query("campaign_id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid campaign_id")
	}

	targetRank, err := strconv.Atoi(c.Query("target_rank"))
	if err != nil || targetRank < 1 {
		return jsonError(c, fiber.StatusBadRequest, "target_rank must be a positive integer")
	}

	startDate, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return jsonError(c, fiber.StatusBadRequest, "end_date must not precede start_date")
	}

	stats, err := h.engine.GetGuaranteeRankingStats(c.Context(), slotID, campaignID, targetRank, startDate, endDate)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to compute guarantee statistics")
	}
	if stats == nil {
		return jsonError(c, fiber.StatusNotFound, "guarantee statistics unavailable for this slot")
	}

	return jsonSuccess(c, stats)
}

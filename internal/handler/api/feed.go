package api

import (
	"JaxSpot/internal/domain/models"
	"JaxSpot/internal/notifier"
	xhttp "JaxSpot/pkg/http"

	"github.com/labstack/echo/v4"
)

// stagesPayload is the board grouped by stage for the dashboard columns.
type stagesPayload struct {
	Seq            uint64                               `json:"seq"`
	Stages         map[models.Stage][]models.Instrument `json:"stages"`
	VisibleStages  []models.Stage                       `json:"visibleStages"`
	UpgradeMessage string                               `json:"upgradeMessage,omitempty"`
}

// Feed returns the filtered board. Pollers pass their last seen sequence
// in ?since=; a request already at the head gets 204 so stale responses
// never overwrite newer data client-side.
func (h *Handler) Feed(c echo.Context) error {
	req := &models.FeedRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap := h.feed.Snapshot()
	if req.Since > 0 && snap.Seq <= req.Since {
		return xhttp.NoContentResponse(c)
	}

	u := viewer(c)
	return xhttp.SuccessResponse(c, h.access.FilterSnapshot(u, snap))
}

// Stages returns the board grouped into the viewer's visible columns,
// plus the upgrade prompt for the first locked stage.
func (h *Handler) Stages(c echo.Context) error {
	u := viewer(c)
	snap := h.access.FilterSnapshot(u, h.feed.Snapshot())

	grouped := make(map[models.Stage][]models.Instrument)
	for _, in := range snap.Instruments {
		grouped[in.Stage] = append(grouped[in.Stage], in)
	}

	visible := h.access.VisibleStages(u)
	payload := stagesPayload{
		Seq:           snap.Seq,
		Stages:        grouped,
		VisibleStages: visible,
	}
	if len(visible) < len(models.AllStages()) {
		payload.UpgradeMessage = h.access.UpgradeMessage(u, nextTierFor(u))
	}
	return xhttp.SuccessResponse(c, payload)
}

// nextTierFor names the tier that unlocks the viewer's next stage.
func nextTierFor(u *models.User) models.Tier {
	if u == nil {
		return models.TierHerd
	}
	switch models.ParseTier(string(u.Tier)) {
	case models.TierPro:
		return models.TierElite
	case models.TierHerd:
		return models.TierPro
	default:
		return models.TierPro
	}
}

// Alerts returns recent transition alerts. Cues are included only for
// viewers whose preferences have audio enabled; anonymous pollers get them
// so the public board can still chime.
func (h *Handler) Alerts(c echo.Context) error {
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 20)
	alerts := h.notifier.Recent(limit)
	if u := viewer(c); u != nil && !u.Preferences.AudioEnabled {
		alerts = notifier.Silenced(alerts)
	}
	return xhttp.SuccessResponse(c, alerts)
}

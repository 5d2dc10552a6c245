package api

import (
	"JaxSpot/internal/domain/models"
	xhttp "JaxSpot/pkg/http"
	xlogger "JaxSpot/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ListPicks returns the pick history, newest first, trimmed to the stages
// the viewer's tier may see.
func (h *Handler) ListPicks(c echo.Context) error {
	req := &models.ListPicksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	u := viewer(c)
	if req.Stage != "" && !h.access.CanSeeStage(u, models.Stage(req.Stage)) {
		return xhttp.ForbiddenResponse(c, h.access.UpgradeMessage(u, nextTierFor(u)))
	}

	picks, err := h.picks.List(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("list picks error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	visible := picks[:0:0]
	for _, p := range picks {
		if h.access.CanSeeStage(u, p.Stage) {
			visible = append(visible, p)
		}
	}
	return xhttp.ListResponse(c, visible, int64(len(visible)))
}

func (h *Handler) CreatePick(c echo.Context) error {
	req := &models.CreatePickRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p, err := h.picks.Create(c.Request().Context(), req, viewer(c))
	if err != nil {
		h.logger.Error("create pick error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, p)
}

func (h *Handler) ResolvePick(c echo.Context) error {
	req := &models.UpdatePickRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p, err := h.picks.Resolve(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, p)
}

// Accuracy returns the published track record.
func (h *Handler) Accuracy(c echo.Context) error {
	sum, err := h.accuracy.Summary(c.Request().Context())
	if err != nil {
		h.logger.Error("accuracy error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, sum)
}

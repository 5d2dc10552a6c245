package api

import (
	"JaxSpot/internal/domain/models"
	xhttp "JaxSpot/pkg/http"
	xlogger "JaxSpot/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ListApps returns the catalog with per-viewer lock flags.
func (h *Handler) ListApps(c echo.Context) error {
	apps, err := h.apps.List(c.Request().Context(), viewer(c))
	if err != nil {
		h.logger.Error("list apps error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, apps, int64(len(apps)))
}

// LogUsage queues a usage event for an app the viewer can access.
func (h *Handler) LogUsage(c echo.Context) error {
	req := &models.LogUsageRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.apps.LogUsage(c.Request().Context(), viewer(c), c.Param("id"), req); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

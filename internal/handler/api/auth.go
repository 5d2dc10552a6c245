package api

import (
	"JaxSpot/internal/domain/models"
	xhttp "JaxSpot/pkg/http"
	xlogger "JaxSpot/pkg/logger"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Register(c echo.Context) error {
	req := &models.RegisterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("register error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, res)
}

func (h *Handler) Login(c echo.Context) error {
	req := &models.LoginRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.auth.Login(c.Request().Context(), req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), bearerToken(c)); err != nil {
		h.logger.Error("logout error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *Handler) Refresh(c echo.Context) error {
	res, err := h.auth.Refresh(c.Request().Context(), bearerToken(c))
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Me(c echo.Context) error {
	return xhttp.SuccessResponse(c, viewer(c))
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	req := &models.UpdateProfileRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	u, err := h.users.UpdateProfile(c.Request().Context(), viewer(c), req)
	if err != nil {
		h.logger.Error("profile update error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, u)
}

func (h *Handler) UpdatePreferences(c echo.Context) error {
	req := &models.UpdatePreferencesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	u, err := h.users.UpdatePreferences(c.Request().Context(), viewer(c), req)
	if err != nil {
		h.logger.Error("preferences update error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, u)
}

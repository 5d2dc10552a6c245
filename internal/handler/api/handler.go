package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"JaxSpot/internal/domain/models"
	"JaxSpot/internal/notifier"
	"JaxSpot/internal/usecase"
	xhttp "JaxSpot/pkg/http"
	xlogger "JaxSpot/pkg/logger"
)

// HealthChecker reports whether a backing component is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler wires the dashboard API onto Echo.
type Handler struct {
	logger   *xlogger.Logger
	auth     *usecase.AuthService
	users    *usecase.UserService
	feed     *usecase.FeedService
	access   *usecase.AccessService
	picks    *usecase.PickService
	accuracy *usecase.AccuracyService
	apps     *usecase.AppService
	notifier *notifier.Notifier
	health   map[string]HealthChecker
}

func NewHandler(
	lgr *xlogger.Logger,
	auth *usecase.AuthService,
	users *usecase.UserService,
	feed *usecase.FeedService,
	access *usecase.AccessService,
	picks *usecase.PickService,
	accuracy *usecase.AccuracyService,
	apps *usecase.AppService,
	n *notifier.Notifier,
	health map[string]HealthChecker,
) *Handler {
	return &Handler{
		logger:   lgr,
		auth:     auth,
		users:    users,
		feed:     feed,
		access:   access,
		picks:    picks,
		accuracy: accuracy,
		apps:     apps,
		notifier: n,
		health:   health,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	g := e.Group("/api", h.withViewer)

	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", h.Logout)
	g.POST("/auth/refresh", h.Refresh)

	g.GET("/me", h.Me, h.requireViewer)
	g.PUT("/me", h.UpdateProfile, h.requireViewer)
	g.PUT("/me/preferences", h.UpdatePreferences, h.requireViewer)

	g.GET("/feed", h.Feed)
	g.GET("/feed/stages", h.Stages)
	g.GET("/alerts", h.Alerts)

	g.GET("/picks", h.ListPicks)
	g.POST("/picks", h.CreatePick, h.requireTier(models.TierElite))
	g.PATCH("/picks/:id", h.ResolvePick, h.requireTier(models.TierElite))
	g.GET("/accuracy", h.Accuracy)

	g.GET("/apps", h.ListApps)
	g.POST("/apps/:id/usage", h.LogUsage)
}

const viewerKey = "viewer"

// bearerToken pulls the token out of the Authorization header.
func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// withViewer resolves the bearer token to a user when one is presented.
// Anonymous requests pass through as the free tier.
func (h *Handler) withViewer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token != "" {
			u, err := h.auth.UserFromToken(c.Request().Context(), token)
			if err == nil {
				c.Set(viewerKey, u)
			}
		}
		return next(c)
	}
}

// requireViewer rejects requests without a valid session.
func (h *Handler) requireViewer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if viewer(c) == nil {
			return xhttp.UnauthorizedResponse(c, "Token is invalid")
		}
		return next(c)
	}
}

// requireTier rejects viewers below the given tier with an upgrade prompt.
func (h *Handler) requireTier(required models.Tier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := viewer(c)
			if u == nil {
				return xhttp.UnauthorizedResponse(c, "Token is invalid")
			}
			if !h.access.CanAccess(u, required) {
				return xhttp.ForbiddenResponse(c, h.access.UpgradeMessage(u, required))
			}
			return next(c)
		}
	}
}

// viewer returns the resolved user, nil for anonymous requests.
func viewer(c echo.Context) *models.User {
	u, _ := c.Get(viewerKey).(*models.User)
	return u
}

// Healthz reports component health.
func (h *Handler) Healthz(c echo.Context) error {
	ctx := c.Request().Context()
	status := http.StatusOK
	components := make(map[string]string, len(h.health))
	for name, hc := range h.health {
		if hc == nil {
			continue
		}
		if err := hc.Health(ctx); err != nil {
			components[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			components[name] = "ok"
		}
	}
	return c.JSON(status, map[string]interface{}{
		"status":     http.StatusText(status),
		"components": components,
	})
}

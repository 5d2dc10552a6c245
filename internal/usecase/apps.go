package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"JaxSpot/internal/domain/models"
	domrepo "JaxSpot/internal/domain/repository"
	pkghttp "JaxSpot/pkg/http"
	"JaxSpot/pkg/logger"
	"JaxSpot/pkg/queue"
)

// UsageJobType routes usage events through the Redis queue.
const UsageJobType = "usage_log"

// AppService serves the member app catalog and records usage.
type AppService struct {
	apps    domrepo.AppStore
	access  *AccessService
	queue   queue.QueueService
	metrics domrepo.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

func NewAppService(apps domrepo.AppStore, access *AccessService, q queue.QueueService, metrics domrepo.Metrics, lgr *logger.Logger) *AppService {
	return &AppService{apps: apps, access: access, queue: q, metrics: metrics, logger: lgr, now: time.Now}
}

// List returns the catalog with per-viewer lock flags.
func (s *AppService) List(ctx context.Context, viewer *models.User) ([]*models.PlatformApp, error) {
	apps, err := s.apps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	return s.access.LockApps(viewer, apps), nil
}

// LogUsage records an interaction with an app. Gated: a viewer below the
// app's required tier gets an upgrade prompt, not a raw error. The write
// itself is queued so the request path never waits on the analytics store.
func (s *AppService) LogUsage(ctx context.Context, viewer *models.User, appID string, req *models.LogUsageRequest) error {
	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return pkghttp.NotFoundErrorf("App %s not found", appID)
		}
		return fmt.Errorf("get app: %w", err)
	}

	if !s.access.CanAccess(viewer, app.RequiredTier) {
		return pkghttp.ForbiddenError(s.access.UpgradeMessage(viewer, app.RequiredTier))
	}

	ev := models.UsageEvent{
		AppID:  app.ID,
		Action: req.Action,
		At:     s.now(),
	}
	if viewer != nil {
		ev.UserID = viewer.ID
	}

	if err := s.queue.PublishMessage(ctx, UsageJobType, ev); err != nil {
		s.metrics.RecordError("usage_enqueue")
		return fmt.Errorf("enqueue usage: %w", err)
	}
	return nil
}

// UsageLogJob drains queued usage events into the analytics sink.
type UsageLogJob struct {
	sink    domrepo.AnalyticsSink
	metrics domrepo.Metrics
	logger  *logger.Logger
}

func NewUsageLogJob(sink domrepo.AnalyticsSink, metrics domrepo.Metrics, lgr *logger.Logger) *UsageLogJob {
	return &UsageLogJob{sink: sink, metrics: metrics, logger: lgr}
}

func (j *UsageLogJob) Name() string { return "usage-log" }
func (j *UsageLogJob) Type() string { return UsageJobType }

func (j *UsageLogJob) Handle(ctx context.Context, payload interface{}) error {
	ev, err := queue.ParsePayload[models.UsageEvent](payload)
	if err != nil {
		j.metrics.RecordError("usage_payload")
		return err
	}
	start := time.Now()
	if err := j.sink.StoreUsage(ctx, ev); err != nil {
		j.metrics.RecordError("usage_store")
		return fmt.Errorf("store usage: %w", err)
	}
	j.metrics.RecordLatency("usage_store", time.Since(start).Seconds())
	j.logger.Debug("usage recorded",
		logger.String("app_id", ev.AppID), logger.String("action", ev.Action))
	return nil
}

var _ queue.Job = (*UsageLogJob)(nil)

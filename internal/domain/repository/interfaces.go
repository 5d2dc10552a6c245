package repository

import (
	"context"
	"errors"
	"time"

	"JaxSpot/internal/domain/models"
)

// ErrNotFound is returned by stores when a row does not exist.
var ErrNotFound = errors.New("not found")

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

type PickStore interface {
	Create(ctx context.Context, p *models.Pick) error
	GetByID(ctx context.Context, id string) (*models.Pick, error)
	List(ctx context.Context, filter PickFilter) ([]*models.Pick, error)
	Update(ctx context.Context, p *models.Pick) error
}

// PickFilter narrows List results. Zero values mean "any".
type PickFilter struct {
	Stage  models.Stage
	Status models.PickStatus
	Limit  int
}

type AppStore interface {
	List(ctx context.Context) ([]*models.PlatformApp, error)
	GetByID(ctx context.Context, id string) (*models.PlatformApp, error)
}

type SessionStore interface {
	Put(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	Extend(ctx context.Context, token string, until time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, ev *models.TransitionEvent) error
	PublishBatch(ctx context.Context, evs []*models.TransitionEvent) error
	Close() error
}

type AnalyticsSink interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreTransition(ctx context.Context, ev *models.TransitionEvent) error
	StoreUsage(ctx context.Context, ev *models.UsageEvent) error
	Health(ctx context.Context) error // ping
	Close() error
}

type Metrics interface {
	RecordTick(instruments int)
	RecordTransition(direction string)
	RecordPickResolved(status string)
	RecordLogin(outcome string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"JaxSpot/internal/domain/models"
	domrepo "JaxSpot/internal/domain/repository"
	"JaxSpot/internal/service/ratelimit"
	pkghttp "JaxSpot/pkg/http"
	"JaxSpot/pkg/logger"
)

// ErrNotFound aliases the store sentinel for convenience in this package.
var ErrNotFound = domrepo.ErrNotFound

// AuthService registers members and manages bearer sessions.
type AuthService struct {
	users    domrepo.UserStore
	sessions domrepo.SessionStore
	limiter  *ratelimit.Limiter
	metrics  domrepo.Metrics
	logger   *logger.Logger

	secret     string
	loginBurst float64
	loginRate  float64
	now        func() time.Time
}

// AuthOption configures AuthService.
type AuthOption func(*AuthService)

// WithLoginLimit sets the per-email login throttle.
func WithLoginLimit(burst int, refillPerSec float64) AuthOption {
	return func(a *AuthService) {
		if burst > 0 {
			a.loginBurst = float64(burst)
		}
		if refillPerSec > 0 {
			a.loginRate = refillPerSec
		}
	}
}

// WithAuthClock injects the time source.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *AuthService) { a.now = now }
}

func NewAuthService(users domrepo.UserStore, sessions domrepo.SessionStore, limiter *ratelimit.Limiter, metrics domrepo.Metrics, lgr *logger.Logger, secret string, opts ...AuthOption) *AuthService {
	a := &AuthService{
		users:      users,
		sessions:   sessions,
		limiter:    limiter,
		metrics:    metrics,
		logger:     lgr,
		secret:     secret,
		loginBurst: 5,
		loginRate:  0.2,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// HashPassword derives the stored digest from a plaintext password.
func (a *AuthService) HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + a.secret))
	return hex.EncodeToString(sum[:])
}

// AuthResult pairs a user with a freshly issued session.
type AuthResult struct {
	User    *models.User    `json:"user"`
	Session *models.Session `json:"session"`
}

// Register creates an account on the free tier and opens a session.
func (a *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := a.users.GetByEmail(ctx, email); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	} else if existing != nil {
		return nil, pkghttp.BadRequestError("Email is already registered")
	}

	now := a.now()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  req.DisplayName,
		Tier:         models.TierFree,
		JoinDate:     now,
		IsActive:     true,
		Preferences:  models.DefaultPreferences(),
		PasswordHash: a.HashPassword(req.Password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	sess, err := a.openSession(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	a.logger.Info("user registered", logger.String("user_id", u.ID))
	return &AuthResult{User: u, Session: sess}, nil
}

// Login verifies credentials and opens a session. Attempts are throttled
// per email so a credential-stuffing loop starves quickly.
func (a *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if a.limiter != nil && !a.limiter.Allow("login:"+email, a.loginBurst, a.loginRate) {
		a.metrics.RecordLogin("throttled")
		return nil, pkghttp.NewAppError("ERR_TOO_MANY_REQUESTS", "", "Too many login attempts, try again later", 429)
	}

	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			a.metrics.RecordLogin("failed")
			return nil, pkghttp.UnauthorizedError("Invalid email or password")
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	want := a.HashPassword(req.Password)
	if subtle.ConstantTimeCompare([]byte(want), []byte(u.PasswordHash)) != 1 {
		a.metrics.RecordLogin("failed")
		return nil, pkghttp.UnauthorizedError("Invalid email or password")
	}

	sess, err := a.openSession(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if a.limiter != nil {
		a.limiter.Reset("login:" + email)
	}

	// Best effort; a failed stamp must not fail the login.
	now := a.now()
	u.LastLogin = &now
	u.UpdatedAt = now
	if err := a.users.Update(ctx, u); err != nil {
		a.logger.Warn("last login stamp failed", logger.Error(err))
	}

	a.metrics.RecordLogin("ok")
	return &AuthResult{User: u, Session: sess}, nil
}

// Logout revokes the session token. Unknown tokens are a no-op.
func (a *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return a.sessions.Delete(ctx, token)
}

// Refresh extends a live session and returns its user.
func (a *AuthService) Refresh(ctx context.Context, token string) (*AuthResult, error) {
	sess, err := a.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := a.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, pkghttp.UnauthorizedError("Session user no longer exists")
	}
	sess.ExpiresAt = a.now().Add(models.SessionTTL)
	if err := a.sessions.Extend(ctx, sess.Token, sess.ExpiresAt); err != nil {
		return nil, fmt.Errorf("extend session: %w", err)
	}
	return &AuthResult{User: u, Session: sess}, nil
}

// Authenticate resolves a bearer token to a live session.
func (a *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, pkghttp.UnauthorizedError("Missing bearer token")
	}
	sess, err := a.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkghttp.UnauthorizedError("Token is invalid")
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if a.now().After(sess.ExpiresAt) {
		_ = a.sessions.Delete(ctx, token)
		return nil, pkghttp.UnauthorizedError("Session expired")
	}
	return sess, nil
}

// UserFromToken resolves a bearer token straight to its user.
func (a *AuthService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	sess, err := a.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := a.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, pkghttp.UnauthorizedError("Session user no longer exists")
	}
	return u, nil
}

func (a *AuthService) openSession(ctx context.Context, userID string) (*models.Session, error) {
	sess := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: a.now().Add(models.SessionTTL),
	}
	if err := a.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

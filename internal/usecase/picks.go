package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"JaxSpot/internal/domain/models"
	domrepo "JaxSpot/internal/domain/repository"
	pkghttp "JaxSpot/pkg/http"
	"JaxSpot/pkg/logger"
)

// PickService publishes picks and enforces the status machine on updates.
type PickService struct {
	picks    domrepo.PickStore
	accuracy *AccuracyService
	metrics  domrepo.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

func NewPickService(picks domrepo.PickStore, accuracy *AccuracyService, metrics domrepo.Metrics, lgr *logger.Logger) *PickService {
	return &PickService{picks: picks, accuracy: accuracy, metrics: metrics, logger: lgr, now: time.Now}
}

// Create publishes a pick in active status, recording the publishing member
// as its author. Confidence outside 0..100 is clamped, never rejected.
func (s *PickService) Create(ctx context.Context, req *models.CreatePickRequest, creator *models.User) (*models.Pick, error) {
	stage := models.Stage(req.Stage)
	if !stage.Valid() {
		stage = models.StageReady
	}
	var createdBy string
	if creator != nil {
		createdBy = creator.ID
	}
	p := &models.Pick{
		ID:          uuid.NewString(),
		Symbol:      req.Symbol,
		Name:        req.Name,
		Stage:       stage,
		Status:      models.PickActive,
		EntryPrice:  req.EntryPrice,
		TargetPrice: req.TargetPrice,
		StopLoss:    req.StopLoss,
		Confidence:  models.ClampScore(req.Confidence),
		Reasoning:   req.Reasoning,
		CreatedBy:   createdBy,
		DateCreated: s.now(),
	}
	if err := s.picks.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create pick: %w", err)
	}
	s.logger.Info("pick published",
		logger.String("pick_id", p.ID), logger.String("symbol", p.Symbol))
	return p, nil
}

// Get returns one pick.
func (s *PickService) Get(ctx context.Context, id string) (*models.Pick, error) {
	p, err := s.picks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkghttp.NotFoundErrorf("Pick %s not found", id)
		}
		return nil, fmt.Errorf("get pick: %w", err)
	}
	return p, nil
}

// List returns picks newest first, optionally filtered by stage and status.
func (s *PickService) List(ctx context.Context, req *models.ListPicksRequest) ([]*models.Pick, error) {
	filter := domrepo.PickFilter{
		Stage:  models.Stage(req.Stage),
		Status: models.PickStatus(req.Status),
		Limit:  req.Limit,
	}
	picks, err := s.picks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}
	return picks, nil
}

// Resolve moves a pick to a terminal status. Only active picks may move;
// dateResolved and pnl are stamped together on hit or stopped, while a
// cancelled pick keeps neither.
func (s *PickService) Resolve(ctx context.Context, id string, req *models.UpdatePickRequest) (*models.Pick, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := models.PickStatus(req.Status)
	if !p.Status.CanTransition(next) {
		return nil, pkghttp.BadRequestErrorf("Pick is %s and cannot become %s", p.Status, next)
	}

	p.Status = next
	if next.Resolved() {
		now := s.now()
		p.DateResolved = &now
		p.PnL = req.PnL
		p.ActualExit = req.ActualExit
	}

	if err := s.picks.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update pick: %w", err)
	}

	s.metrics.RecordPickResolved(string(next))
	if s.accuracy != nil {
		s.accuracy.Invalidate(ctx)
	}
	s.logger.Info("pick resolved",
		logger.String("pick_id", p.ID), logger.String("status", string(next)))
	return p, nil
}

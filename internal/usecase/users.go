package usecase

import (
	"context"
	"fmt"
	"time"

	"JaxSpot/internal/domain/models"
	domrepo "JaxSpot/internal/domain/repository"
)

// UserService handles profile and preference updates.
type UserService struct {
	users domrepo.UserStore
	now   func() time.Time
}

func NewUserService(users domrepo.UserStore) *UserService {
	return &UserService{users: users, now: time.Now}
}

// UpdateProfile renames the member and swaps their avatar when one is sent.
func (s *UserService) UpdateProfile(ctx context.Context, u *models.User, req *models.UpdateProfileRequest) (*models.User, error) {
	u.DisplayName = req.DisplayName
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	u.UpdatedAt = s.now()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// UpdatePreferences replaces dashboard settings wholesale.
func (s *UserService) UpdatePreferences(ctx context.Context, u *models.User, req *models.UpdatePreferencesRequest) (*models.User, error) {
	u.Preferences = models.Preferences{
		AudioEnabled:  req.AudioEnabled,
		AudioVolume:   req.AudioVolume,
		Notifications: req.Notifications,
		Theme:         req.Theme,
		Timezone:      req.Timezone,
	}
	u.UpdatedAt = s.now()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return u, nil
}

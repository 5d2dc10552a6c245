package usecase

import "JaxSpot/internal/domain/models"

// AccessService gates stage visibility and feature access by tier.
// An unauthenticated viewer is treated as free.
type AccessService struct{}

func NewAccessService() *AccessService {
	return &AccessService{}
}

// viewerTier resolves the effective tier for a possibly-nil user.
func viewerTier(u *models.User) models.Tier {
	if u == nil {
		return models.TierFree
	}
	return models.ParseTier(string(u.Tier))
}

// VisibleStages lists the stages the viewer may see, lowest first.
// Free and herd members see the first two stages, pro adds ready,
// elite sees the whole board.
func (s *AccessService) VisibleStages(u *models.User) []models.Stage {
	switch viewerTier(u) {
	case models.TierElite:
		return models.AllStages()
	case models.TierPro:
		return []models.Stage{models.StageScanning, models.StageWatchlist, models.StageReady}
	default:
		return []models.Stage{models.StageScanning, models.StageWatchlist}
	}
}

// CanSeeStage reports whether the viewer may see one stage.
func (s *AccessService) CanSeeStage(u *models.User, stage models.Stage) bool {
	for _, v := range s.VisibleStages(u) {
		if v == stage {
			return true
		}
	}
	return false
}

// CanAccess reports whether the viewer meets a required tier.
func (s *AccessService) CanAccess(u *models.User, required models.Tier) bool {
	return viewerTier(u).Satisfies(required)
}

// FilterSnapshot strips instruments in stages the viewer may not see.
// The sequence number and timestamp pass through unchanged.
func (s *AccessService) FilterSnapshot(u *models.User, snap models.FeedSnapshot) models.FeedSnapshot {
	visible := make(map[models.Stage]bool)
	for _, v := range s.VisibleStages(u) {
		visible[v] = true
	}
	out := snap
	out.Instruments = make([]models.Instrument, 0, len(snap.Instruments))
	for _, in := range snap.Instruments {
		if visible[in.Stage] {
			out.Instruments = append(out.Instruments, in)
		}
	}
	return out
}

// UpgradeMessage tells the viewer what unlocking the required tier takes.
// A viewer who already satisfies it is told access is granted, never
// prompted to upgrade for something unlocked.
func (s *AccessService) UpgradeMessage(u *models.User, required models.Tier) string {
	if s.CanAccess(u, required) {
		return "Access granted"
	}
	if u == nil {
		return "Sign up to access more stages"
	}
	switch viewerTier(u) {
	case models.TierFree:
		return "Upgrade to Herd membership to access all stages"
	case models.TierHerd:
		return "Upgrade to Pro to access Stage 3"
	default:
		return "Upgrade to Elite to access Stage 4"
	}
}

// LockApps fills the per-viewer Locked flag on a catalog listing.
func (s *AccessService) LockApps(u *models.User, apps []*models.PlatformApp) []*models.PlatformApp {
	out := make([]*models.PlatformApp, len(apps))
	for i, a := range apps {
		c := *a
		c.Locked = !s.CanAccess(u, c.RequiredTier)
		out[i] = &c
	}
	return out
}

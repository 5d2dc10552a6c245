package models

import "time"

// PlatformApp is one tool in the member app catalog.
type PlatformApp struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	URL          string `json:"url"`
	Category     string `json:"category"`
	RequiredTier Tier   `json:"requiredTier"`
	// Locked is filled per request from the viewer's tier.
	Locked bool `json:"locked"`
}

// UsageEvent records one interaction with a platform app.
type UsageEvent struct {
	AppID  string    `json:"appId"`
	UserID string    `json:"userId"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

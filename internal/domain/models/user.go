package models

import "time"

// Preferences holds per-user dashboard settings. AudioVolume is 0..1.
type Preferences struct {
	AudioEnabled  bool    `json:"audioEnabled"`
	AudioVolume   float64 `json:"audioVolume"`
	Notifications bool    `json:"notifications"`
	Theme         string  `json:"theme"`
	Timezone      string  `json:"timezone"`
}

// DefaultPreferences is what new accounts start with. Audio starts muted;
// the dashboard asks before making noise.
func DefaultPreferences() Preferences {
	return Preferences{
		AudioEnabled:  false,
		AudioVolume:   0.5,
		Notifications: true,
		Theme:         "light",
		Timezone:      "UTC",
	}
}

// User is a registered member of the platform.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"displayName"`
	Avatar       string      `json:"avatar,omitempty"`
	Tier         Tier        `json:"tier"`
	JoinDate     time.Time   `json:"joinDate"`
	TotalTrades  int         `json:"totalTrades"`
	WinRate      float64     `json:"winRate"`
	TotalPnL     float64     `json:"totalPnL"`
	IsActive     bool        `json:"isActive"`
	LastLogin    *time.Time  `json:"lastLogin,omitempty"`
	Preferences  Preferences `json:"preferences"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Session is an issued bearer token with its expiry.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

package models

// Requests for the dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"displayName" validate:"required,min=2,max=64"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" validate:"required,min=2,max=64"`
	Avatar      string `json:"avatar" validate:"omitempty,max=256"`
}

type UpdatePreferencesRequest struct {
	AudioEnabled  bool    `json:"audioEnabled"`
	AudioVolume   float64 `json:"audioVolume" default:"0.5" validate:"gte=0,lte=1"`
	Notifications bool    `json:"notifications"`
	Theme         string  `json:"theme" default:"light" validate:"oneof=light dark"`
	Timezone      string  `json:"timezone" default:"UTC" validate:"max=64"`
}

type FeedRequest struct {
	Since uint64 `query:"since" json:"since" validate:"gte=0"`
}

type ListPicksRequest struct {
	Limit  int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=200"`
	Stage  string `query:"stage" json:"stage" validate:"omitempty,oneof=scanning watchlist ready purchased"`
	Status string `query:"status" json:"status" validate:"omitempty,oneof=active hit stopped cancelled"`
}

type CreatePickRequest struct {
	Symbol      string  `json:"symbol" validate:"required,min=2,max=12"`
	Name        string  `json:"name" validate:"required,max=64"`
	Stage       string  `json:"stage" default:"ready" validate:"oneof=scanning watchlist ready purchased"`
	EntryPrice  float64 `json:"entryPrice" validate:"required,gt=0"`
	TargetPrice float64 `json:"targetPrice" validate:"required,gt=0"`
	StopLoss    float64 `json:"stopLoss" validate:"required,gt=0"`
	Confidence  float64 `json:"confidence" default:"50"`
	Reasoning   string  `json:"reasoning" validate:"max=512"`
}

type UpdatePickRequest struct {
	Status     string   `json:"status" validate:"required,oneof=hit stopped cancelled"`
	PnL        float64  `json:"pnl"`
	ActualExit *float64 `json:"actualExit"`
}

type LogUsageRequest struct {
	Action string `json:"action" default:"open" validate:"max=64"`
}

package constants

// Context and session keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"

	SessionCookieName = "cleanify_session"
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxUploadBytes    = 10 << 20 // 10 MiB per completion photo
)

// Complaint submissions allowed per citizen per 24h window.
const DefaultComplaintRateLimit = 10

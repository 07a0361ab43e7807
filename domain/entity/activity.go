package entity

// ActionType represents the kind of authentication event being recorded
type ActionType string

const (
	ActionSignup ActionType = "signup"
	ActionLogin  ActionType = "login"
)

// AuthProvider identifies how the user authenticated. Call sites derive it
// from the email domain; no validation happens at record time.
type AuthProvider string

const (
	ProviderGoogle      AuthProvider = "google"
	ProviderCredentials AuthProvider = "credentials"
)

// ActivityEntry is a record of a login or signup event, kept for admin review.
// JSON keys are camelCase to stay compatible with activity-log.json files
// written by earlier deployments.
type ActivityEntry struct {
	ID        string       `json:"id"`
	Timestamp string       `json:"timestamp"` // RFC3339, UTC
	Email     string       `json:"email"`
	Action    ActionType   `json:"action"`
	Provider  AuthProvider `json:"provider"`
	UserID    string       `json:"userId,omitempty"`
	UserAgent string       `json:"userAgent,omitempty"`
	IPAddress string       `json:"ipAddress,omitempty"`
}

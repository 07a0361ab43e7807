package entity

// NotificationType classifies an admin notification
type NotificationType string

const (
	NotificationLoginGoogle   NotificationType = "login_google"
	NotificationLoginOAuth    NotificationType = "login_oauth"
	NotificationSecurityAlert NotificationType = "security_alert"
	NotificationSystemEvent   NotificationType = "system_event"
)

// NotificationStatus is the delivery lifecycle state of a notification or channel
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// NotificationChannel identifies a delivery channel
type NotificationChannel string

const (
	ChannelEmail   NotificationChannel = "email"
	ChannelPush    NotificationChannel = "push"
	ChannelSMS     NotificationChannel = "sms"
	ChannelWebhook NotificationChannel = "webhook"
)

// ChannelStatus tracks delivery of one notification over one channel.
// SentAt is only set once the channel status reaches "sent".
type ChannelStatus struct {
	Channel NotificationChannel `json:"channel"`
	Status  NotificationStatus  `json:"status"`
	SentAt  string              `json:"sentAt,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// NotificationData carries the subject of the notification. Known fields are
// explicit; anything else goes into Extra.
type NotificationData struct {
	Email     string                 `json:"email"`
	Provider  string                 `json:"provider"`
	UserID    string                 `json:"userId,omitempty"`
	IPAddress string                 `json:"ipAddress,omitempty"`
	UserAgent string                 `json:"userAgent,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// AdminNotification is a record of a noteworthy authentication event with a
// delivery-channel tracking structure. Entries are immutable once written
// except Status and Channels, which are updated by id lookup.
type AdminNotification struct {
	ID        string                 `json:"id"`
	Timestamp string                 `json:"timestamp"` // RFC3339, UTC
	Type      NotificationType       `json:"type"`
	Status    NotificationStatus     `json:"status"`
	Message   string                 `json:"message"`
	Data      NotificationData       `json:"data"`
	Channels  []ChannelStatus        `json:"channels"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

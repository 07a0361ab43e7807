package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/persistence/logstore"
	"github.com/pookie/pookie/infrastructure/service/logger"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationOptions carries optional request metadata for a notification
type NotificationOptions struct {
	UserID    string
	IPAddress string
	UserAgent string
	Metadata  map[string]interface{}
}

// ChannelUpdate describes a delivery attempt over one channel
type ChannelUpdate struct {
	Channel entity.NotificationChannel
	Status  entity.NotificationStatus
	Error   string
}

// NotificationQuery selects notifications for an admin read. Type and Status
// are independent equality filters; both apply when both are set.
type NotificationQuery struct {
	Type   entity.NotificationType
	Status entity.NotificationStatus
	Limit  int
}

// NotificationUseCase records noteworthy authentication events as admin
// notifications with per-channel delivery tracking.
type NotificationUseCase struct {
	store  *logstore.Store[entity.AdminNotification]
	logger logger.Logger
}

func NewNotificationUseCase(store *logstore.Store[entity.AdminNotification], log logger.Logger) *NotificationUseCase {
	return &NotificationUseCase{
		store:  store,
		logger: log,
	}
}

// LogLoginNotification appends a pending notification for a login or signup.
// Only google logins reach this path today; any other provider maps to
// login_oauth, reserved for future providers.
func (uc *NotificationUseCase) LogLoginNotification(ctx context.Context, email, provider string, opts NotificationOptions) (entity.AdminNotification, error) {
	ntype := entity.NotificationLoginOAuth
	if provider == "google" {
		ntype = entity.NotificationLoginGoogle
	}

	notification := entity.AdminNotification{
		ID:        generateLogID("notif"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Type:      ntype,
		Status:    entity.NotificationPending,
		Message:   fmt.Sprintf("User %s logged in via %s", email, capitalize(provider)),
		Data: entity.NotificationData{
			Email:     email,
			Provider:  provider,
			UserID:    opts.UserID,
			IPAddress: opts.IPAddress,
			UserAgent: opts.UserAgent,
		},
		Channels: []entity.ChannelStatus{},
		Metadata: opts.Metadata,
	}

	stored, err := uc.store.Append(notification)
	if err != nil {
		return notification, fmt.Errorf("failed to append notification: %w", err)
	}

	uc.logger.Info(ctx, "Admin notification logged", map[string]interface{}{
		"type":    ntype,
		"message": notification.Message,
	})
	return stored, nil
}

// UpdateNotificationStatus sets the top-level status of a notification and
// optionally records a channel delivery update. Extension point for a
// delivery pipeline that is not implemented here.
func (uc *NotificationUseCase) UpdateNotificationStatus(ctx context.Context, id string, status entity.NotificationStatus, channel *ChannelUpdate) (*entity.AdminNotification, error) {
	var updated *entity.AdminNotification

	err := uc.store.Mutate(func(notifications []entity.AdminNotification) ([]entity.AdminNotification, bool) {
		for i := range notifications {
			if notifications[i].ID != id {
				continue
			}
			notifications[i].Status = status
			if channel != nil {
				applyChannelUpdate(&notifications[i], *channel)
			}
			n := notifications[i]
			updated = &n
			return notifications, true
		}
		return notifications, false
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update notification %s: %w", id, err)
	}
	if updated == nil {
		return nil, ErrNotificationNotFound
	}
	return updated, nil
}

// GetAdminNotifications returns notifications matching the query, sorted by
// timestamp descending and truncated to the limit.
func (uc *NotificationUseCase) GetAdminNotifications(ctx context.Context, q NotificationQuery) ([]entity.AdminNotification, error) {
	notifications, err := uc.store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	filtered := notifications[:0]
	for _, n := range notifications {
		if q.Type != "" && n.Type != q.Type {
			continue
		}
		if q.Status != "" && n.Status != q.Status {
			continue
		}
		filtered = append(filtered, n)
	}
	notifications = filtered

	sortByTimestampDesc(notifications, func(n entity.AdminNotification) string { return n.Timestamp })

	if q.Limit > 0 && q.Limit < len(notifications) {
		notifications = notifications[:q.Limit]
	}
	return notifications, nil
}

// applyChannelUpdate updates an existing channel entry by channel identity or
// appends a new one. SentAt is only stamped when the new status is "sent".
func applyChannelUpdate(n *entity.AdminNotification, u ChannelUpdate) {
	sentAt := ""
	if u.Status == entity.NotificationSent {
		sentAt = time.Now().UTC().Format(time.RFC3339)
	}

	for i := range n.Channels {
		if n.Channels[i].Channel == u.Channel {
			n.Channels[i].Status = u.Status
			n.Channels[i].SentAt = sentAt
			n.Channels[i].Error = u.Error
			return
		}
	}

	n.Channels = append(n.Channels, entity.ChannelStatus{
		Channel: u.Channel,
		Status:  u.Status,
		SentAt:  sentAt,
		Error:   u.Error,
	})
}

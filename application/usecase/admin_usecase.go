package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/domain/entity"
)

// ErrNotAdmin is returned when an authenticated caller is not the configured admin
var ErrNotAdmin = errors.New("admin access required")

// AdminUseCase gates read access to the activity and notification logs.
// Authorization is a single allow-listed address: the configured admin email.
type AdminUseCase struct {
	adminEmail    string
	users         outbound.UserRepository
	activity      *ActivityUseCase
	notifications *NotificationUseCase
}

func NewAdminUseCase(adminEmail string, users outbound.UserRepository, activity *ActivityUseCase, notifications *NotificationUseCase) *AdminUseCase {
	return &AdminUseCase{
		adminEmail:    adminEmail,
		users:         users,
		activity:      activity,
		notifications: notifications,
	}
}

// IsAdminUser reports whether email matches the configured admin address,
// case-insensitively.
func (uc *AdminUseCase) IsAdminUser(email string) bool {
	return strings.EqualFold(email, uc.adminEmail)
}

// VerifyAdmin resolves the authenticated user and enforces the admin gate.
// Returns outbound.ErrUserNotFound when the user record is missing and
// ErrNotAdmin when the caller is not the admin.
func (uc *AdminUseCase) VerifyAdmin(ctx context.Context, userID string) error {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !uc.IsAdminUser(user.Email) {
		return ErrNotAdmin
	}
	return nil
}

func (uc *AdminUseCase) GetActivityLog(ctx context.Context, q ActivityQuery) ([]entity.ActivityEntry, error) {
	return uc.activity.GetActivityLog(ctx, q)
}

func (uc *AdminUseCase) GetAdminNotifications(ctx context.Context, q NotificationQuery) ([]entity.AdminNotification, error) {
	return uc.notifications.GetAdminNotifications(ctx, q)
}

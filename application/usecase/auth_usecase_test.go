package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pookie/pookie/application/port/inbound"
	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/persistence/logstore"
)

type authFixture struct {
	uc            *AuthUseCase
	users         *mockUserRepository
	rateLimit     *mockRateLimitService
	activity      *ActivityUseCase
	notifications *NotificationUseCase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newMockUserRepository()
	rateLimit := newMockRateLimitService(3)
	activity := NewActivityUseCase(
		logstore.New[entity.ActivityEntry](t.TempDir(), "activity-log.json", logstore.Strict),
		&testLogger{},
	)
	notifications := NewNotificationUseCase(
		logstore.New[entity.AdminNotification](t.TempDir(), "notifications.json", logstore.Strict),
		&testLogger{},
	)

	uc := NewAuthUseCase(
		users,
		&mockTokenService{},
		&mockPasswordService{},
		rateLimit,
		activity,
		notifications,
		&testLogger{},
		time.Hour,
		RateLimitPolicy{Attempts: 3, Window: 15 * time.Minute, BlockDuration: 15 * time.Minute},
	)

	return &authFixture{
		uc:            uc,
		users:         users,
		rateLimit:     rateLimit,
		activity:      activity,
		notifications: notifications,
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture(t)

		resp, err := f.uc.Signup(ctx, inbound.SignupRequest{
			Email:     "user@example.com",
			Password:  "password123",
			UserAgent: "Mozilla/5.0",
			IPAddress: "203.0.113.7",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "user@example.com", resp.Email)
		assert.Equal(t, 3600, resp.ExpiresIn)

		entries, err := f.activity.GetActivityLog(ctx, ActivityQuery{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.ActionSignup, entries[0].Action)
		assert.Equal(t, entity.ProviderCredentials, entries[0].Provider)
		assert.Equal(t, resp.UserID, entries[0].UserID)
		assert.Equal(t, "203.0.113.7", entries[0].IPAddress)

		// Non-google signups raise no admin notification
		notifications, err := f.notifications.GetAdminNotifications(ctx, NotificationQuery{})
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})

	t.Run("GoogleEmailRaisesNotification", func(t *testing.T) {
		f := newAuthFixture(t)

		resp, err := f.uc.Signup(ctx, inbound.SignupRequest{
			Email:    "fati@gmail.com",
			Password: "password123",
		})
		require.NoError(t, err)

		notifications, err := f.notifications.GetAdminNotifications(ctx, NotificationQuery{})
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, entity.NotificationLoginGoogle, notifications[0].Type)
		assert.Equal(t, resp.UserID, notifications[0].Data.UserID)
		assert.Equal(t, "signup", notifications[0].Metadata["action"])

		entries, err := f.activity.GetActivityLog(ctx, ActivityQuery{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.ProviderGoogle, entries[0].Provider)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.uc.Signup(ctx, inbound.SignupRequest{Email: "user@example.com", Password: "password123"})
		require.NoError(t, err)

		_, err = f.uc.Signup(ctx, inbound.SignupRequest{Email: "user@example.com", Password: "other-password"})
		assert.True(t, errors.Is(err, outbound.ErrUserAlreadyExists))
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.uc.Signup(ctx, inbound.SignupRequest{Email: "user@example.com"})
		assert.True(t, errors.Is(err, ErrMissingCredentials))

		_, err = f.uc.Signup(ctx, inbound.SignupRequest{Password: "password123"})
		assert.True(t, errors.Is(err, ErrMissingCredentials))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.users.Create(ctx, entity.NewUser("user-1", "user@example.com", "hashed-password123")))

		resp, err := f.uc.Login(ctx, inbound.LoginRequest{
			Email:     "user@example.com",
			Password:  "password123",
			IPAddress: "203.0.113.7",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "user-1", resp.UserID)

		entries, err := f.activity.GetActivityLog(ctx, ActivityQuery{Action: entity.ActionLogin})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "user-1", entries[0].UserID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.users.Create(ctx, entity.NewUser("user-1", "user@example.com", "hashed-password123")))

		_, err := f.uc.Login(ctx, inbound.LoginRequest{
			Email:     "user@example.com",
			Password:  "wrong",
			IPAddress: "203.0.113.7",
		})
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
		assert.Equal(t, 1, f.rateLimit.attempts["login:ip:203.0.113.7"], "failed attempt should count against the IP")

		entries, err := f.activity.GetActivityLog(ctx, ActivityQuery{})
		require.NoError(t, err)
		assert.Empty(t, entries, "failed logins are not recorded in the activity log")
	})

	t.Run("UnknownUser", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.uc.Login(ctx, inbound.LoginRequest{
			Email:     "ghost@example.com",
			Password:  "password123",
			IPAddress: "203.0.113.7",
		})
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("RateLimited", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.users.Create(ctx, entity.NewUser("user-1", "user@example.com", "hashed-password123")))

		for i := 0; i < 3; i++ {
			_, err := f.uc.Login(ctx, inbound.LoginRequest{
				Email:     "user@example.com",
				Password:  "wrong",
				IPAddress: "203.0.113.7",
			})
			assert.True(t, errors.Is(err, ErrInvalidCredentials))
		}

		_, err := f.uc.Login(ctx, inbound.LoginRequest{
			Email:     "user@example.com",
			Password:  "password123",
			IPAddress: "203.0.113.7",
		})
		assert.True(t, errors.Is(err, ErrTooManyAttempts))
		assert.True(t, f.rateLimit.blocked["login:ip:203.0.113.7"])

		// A different IP is unaffected
		resp, err := f.uc.Login(ctx, inbound.LoginRequest{
			Email:     "user@example.com",
			Password:  "password123",
			IPAddress: "198.51.100.9",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	require.NoError(t, f.users.Create(ctx, entity.NewUser("user-1", "jane.doe42@gmail.com", "hash")))

	profile, err := f.uc.Me(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	assert.Equal(t, "jane.doe42@gmail.com", profile.Email)
	assert.Equal(t, "Jane Doe", profile.DisplayName)
	assert.Equal(t, "google", profile.Provider)

	_, err = f.uc.Me(ctx, "ghost")
	assert.True(t, errors.Is(err, outbound.ErrUserNotFound))
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pookie/pookie/application/port/inbound"
	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/service/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// RateLimitPolicy bounds login attempts per client IP
type RateLimitPolicy struct {
	Attempts      int
	Window        time.Duration
	BlockDuration time.Duration
}

// AuthUseCase implements signup, login and profile reads. Successful
// authentication events are recorded in the activity log; google-originated
// events additionally raise an admin notification. Recorder failures never
// fail the authentication flow.
type AuthUseCase struct {
	users         outbound.UserRepository
	tokens        outbound.TokenService
	passwords     outbound.PasswordService
	rateLimit     inbound.RateLimitService
	activity      *ActivityUseCase
	notifications *NotificationUseCase
	logger        logger.Logger
	tokenTTL      time.Duration
	policy        RateLimitPolicy
}

func NewAuthUseCase(
	users outbound.UserRepository,
	tokens outbound.TokenService,
	passwords outbound.PasswordService,
	rateLimit inbound.RateLimitService,
	activity *ActivityUseCase,
	notifications *NotificationUseCase,
	log logger.Logger,
	tokenTTL time.Duration,
	policy RateLimitPolicy,
) *AuthUseCase {
	return &AuthUseCase{
		users:         users,
		tokens:        tokens,
		passwords:     passwords,
		rateLimit:     rateLimit,
		activity:      activity,
		notifications: notifications,
		logger:        log,
		tokenTTL:      tokenTTL,
		policy:        policy,
	}
}

func (uc *AuthUseCase) Signup(ctx context.Context, req inbound.SignupRequest) (*inbound.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	exists, err := uc.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, outbound.ErrUserAlreadyExists
	}

	hash, err := uc.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(uuid.NewString(), req.Email, hash)
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokens.GenerateAccessToken(outbound.TokenClaims{UserID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	provider := providerForEmail(req.Email)
	uc.recordAuthEvent(ctx, user, entity.ActionSignup, provider, req.UserAgent, req.IPAddress)

	return &inbound.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int(uc.tokenTTL.Seconds()),
		UserID:      user.ID,
		Email:       user.Email,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	if err := uc.checkRateLimit(ctx, req.IPAddress); err != nil {
		return nil, err
	}

	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			uc.recordFailedAttempt(ctx, req.Email, req.IPAddress)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := uc.passwords.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		uc.recordFailedAttempt(ctx, req.Email, req.IPAddress)
		return nil, ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateAccessToken(outbound.TokenClaims{UserID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	provider := providerForEmail(user.Email)
	uc.recordAuthEvent(ctx, user, entity.ActionLogin, provider, req.UserAgent, req.IPAddress)

	return &inbound.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int(uc.tokenTTL.Seconds()),
		UserID:      user.ID,
		Email:       user.Email,
	}, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*inbound.Profile, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &inbound.Profile{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: displayNameFromEmail(user.Email),
		Provider:    string(providerForEmail(user.Email)),
		CreatedAt:   user.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// recordAuthEvent writes the activity entry and, for google-originated
// events, the admin notification. Failures are logged and swallowed: the
// logs are advisory, authentication is not.
func (uc *AuthUseCase) recordAuthEvent(ctx context.Context, user *entity.User, action entity.ActionType, provider entity.AuthProvider, userAgent, ipAddress string) {
	_, err := uc.activity.LogActivity(ctx, user.Email, action, provider, ActivityOptions{
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	})
	if err != nil {
		uc.logger.Error(ctx, "Failed to record activity", err, map[string]interface{}{
			"email":  user.Email,
			"action": action,
		})
	}

	if provider != entity.ProviderGoogle {
		return
	}

	opts := NotificationOptions{
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}
	if action == entity.ActionSignup {
		opts.Metadata = map[string]interface{}{"action": "signup"}
	}
	if _, err := uc.notifications.LogLoginNotification(ctx, user.Email, "google", opts); err != nil {
		uc.logger.Error(ctx, "Failed to record admin notification", err, map[string]interface{}{
			"email": user.Email,
		})
	}
}

func (uc *AuthUseCase) checkRateLimit(ctx context.Context, ip string) error {
	if uc.rateLimit == nil || ip == "" {
		return nil
	}

	key := fmt.Sprintf("login:ip:%s", ip)

	blocked, err := uc.rateLimit.IsBlocked(ctx, key)
	if err != nil {
		uc.logger.Error(ctx, "Failed to check block status", err, map[string]interface{}{"ip": ip})
		return nil // fail open on rate limiter errors
	}
	if blocked {
		logger.LogSecurityEvent(ctx, uc.logger, "blocked_ip_login_attempt", "MEDIUM", map[string]interface{}{
			"ip": ip,
		})
		return ErrTooManyAttempts
	}

	underLimit, err := uc.rateLimit.CheckLimit(ctx, key, uc.policy.Attempts, uc.policy.Window)
	if err != nil {
		uc.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{"ip": ip})
		return nil
	}
	if !underLimit {
		logger.LogSecurityEvent(ctx, uc.logger, "ip_rate_limit_exceeded", "HIGH", map[string]interface{}{
			"ip": ip,
		})
		if err := uc.rateLimit.Block(ctx, key, uc.policy.BlockDuration, "login rate limit exceeded"); err != nil {
			uc.logger.Error(ctx, "Failed to block IP", err, map[string]interface{}{"ip": ip})
		}
		return ErrTooManyAttempts
	}
	return nil
}

func (uc *AuthUseCase) recordFailedAttempt(ctx context.Context, email, ip string) {
	logger.LogSecurityEvent(ctx, uc.logger, "failed_login_attempt", "MEDIUM", map[string]interface{}{
		"email": email,
		"ip":    ip,
	})

	if uc.rateLimit == nil || ip == "" {
		return
	}
	key := fmt.Sprintf("login:ip:%s", ip)
	if err := uc.rateLimit.Increment(ctx, key, uc.policy.Window); err != nil {
		uc.logger.Error(ctx, "Failed to increment rate limit counter", err, map[string]interface{}{"ip": ip})
	}
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/service/logger"
)

// Mock implementations

type mockUserRepository struct {
	users map[string]*entity.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*entity.User),
	}
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if user, exists := m.users[id]; exists {
		return user, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if _, exists := m.users[user.ID]; exists {
		return outbound.ErrUserAlreadyExists
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type mockTaskRepository struct {
	tasks map[string]*entity.Task
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{
		tasks: make(map[string]*entity.Task),
	}
}

func (m *mockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	if task, exists := m.tasks[id]; exists {
		copied := *task
		return &copied, nil
	}
	return nil, outbound.ErrTaskNotFound
}

func (m *mockTaskRepository) FindByUser(ctx context.Context, userID string, filter entity.TaskFilter) ([]*entity.Task, error) {
	var tasks []*entity.Task
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		if filter.Status != nil && task.Completed != *filter.Status {
			continue
		}
		copied := *task
		tasks = append(tasks, &copied)
	}
	return tasks, nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	if _, exists := m.tasks[task.ID]; !exists {
		return outbound.ErrTaskNotFound
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id string) error {
	if _, exists := m.tasks[id]; !exists {
		return outbound.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

type mockTokenService struct {
	counter int
}

func (m *mockTokenService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	m.counter++
	return fmt.Sprintf("mock-access-token-%d", m.counter), nil
}

func (m *mockTokenService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	return nil, fmt.Errorf("not implemented in mock")
}

type mockPasswordService struct{}

func (m *mockPasswordService) HashPassword(password string) (string, error) {
	return "hashed-" + password, nil
}

func (m *mockPasswordService) VerifyPassword(password, hash string) (bool, error) {
	return hash == "hashed-"+password, nil
}

// mockRateLimitService records interactions so tests can assert on them
type mockRateLimitService struct {
	attempts map[string]int
	blocked  map[string]bool
	limit    int
}

func newMockRateLimitService(limit int) *mockRateLimitService {
	return &mockRateLimitService{
		attempts: make(map[string]int),
		blocked:  make(map[string]bool),
		limit:    limit,
	}
}

func (m *mockRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return m.attempts[key] < limit, nil
}

func (m *mockRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	m.attempts[key]++
	return nil
}

func (m *mockRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	m.blocked[key] = true
	return nil
}

func (m *mockRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return m.blocked[key], nil
}

func (m *mockRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	return m.attempts[key], nil
}

// Minimal no-op logger

type testLogger struct{}

func (l *testLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {}
func (l *testLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
}
func (l *testLogger) Warn(ctx context.Context, message string, fields map[string]interface{})  {}
func (l *testLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {}
func (l *testLogger) WithFields(fields map[string]interface{}) logger.Logger                   { return l }

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/service/logger"
)

var (
	ErrDescriptionRequired = errors.New("task description is required")
	ErrInvalidPriority     = errors.New("invalid task priority")
)

type CreateTaskRequest struct {
	Description string              `json:"description"`
	Priority    entity.TaskPriority `json:"priority"`
	Tags        []string            `json:"tags"`
	DueDate     *time.Time          `json:"due_date"`
}

type UpdateTaskRequest struct {
	Description *string              `json:"description"`
	Priority    *entity.TaskPriority `json:"priority"`
	Completed   *bool                `json:"completed"`
	Tags        []string             `json:"tags"` // nil = unchanged
	DueDate     *time.Time           `json:"due_date"`
}

// TaskUseCase implements the to-do CRUD and the productivity stats that back
// the analytics view and the chat assistant. All operations are scoped to
// the owning user; a task belonging to someone else reads as not found.
type TaskUseCase struct {
	tasks  outbound.TaskRepository
	logger logger.Logger
}

func NewTaskUseCase(tasks outbound.TaskRepository, log logger.Logger) *TaskUseCase {
	return &TaskUseCase{
		tasks:  tasks,
		logger: log,
	}
}

func (uc *TaskUseCase) CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*entity.Task, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Priority != "" && !entity.ValidPriority(req.Priority) {
		return nil, ErrInvalidPriority
	}

	task := entity.NewTask(uuid.NewString(), userID, description, req.Priority, req.Tags, req.DueDate)
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	uc.logger.Info(ctx, "Task created", map[string]interface{}{
		"task_id":  task.ID,
		"user_id":  userID,
		"priority": task.Priority,
	})
	return task, nil
}

func (uc *TaskUseCase) ListTasks(ctx context.Context, userID string, filter entity.TaskFilter) ([]*entity.Task, error) {
	tasks, err := uc.tasks.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (uc *TaskUseCase) GetTask(ctx context.Context, userID, id string) (*entity.Task, error) {
	return uc.findOwned(ctx, userID, id)
}

func (uc *TaskUseCase) UpdateTask(ctx context.Context, userID, id string, req UpdateTaskRequest) (*entity.Task, error) {
	task, err := uc.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		task.Description = description
	}
	if req.Priority != nil {
		if !entity.ValidPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *req.Priority
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.UpdatedAt = time.Now()

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (uc *TaskUseCase) ToggleTask(ctx context.Context, userID, id string) (*entity.Task, error) {
	task, err := uc.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	task.UpdatedAt = time.Now()
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return task, nil
}

func (uc *TaskUseCase) DeleteTask(ctx context.Context, userID, id string) error {
	if _, err := uc.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Stats aggregates the user's tasks into productivity numbers
func (uc *TaskUseCase) Stats(ctx context.Context, userID string) (entity.TaskStats, error) {
	tasks, err := uc.tasks.FindByUser(ctx, userID, entity.TaskFilter{})
	if err != nil {
		return entity.TaskStats{}, fmt.Errorf("failed to load tasks for stats: %w", err)
	}

	stats := entity.TaskStats{
		ByPriority: make(map[entity.TaskPriority]int),
	}
	now := time.Now()
	for _, t := range tasks {
		stats.Total++
		if t.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if t.DueDate != nil && t.DueDate.Before(now) {
				stats.Overdue++
			}
		}
		stats.ByPriority[t.Priority]++
	}
	if stats.Total > 0 {
		stats.CompletionRate = stats.Completed * 100 / stats.Total
	}
	return stats, nil
}

// findOwned loads a task and hides other users' tasks behind not-found
func (uc *TaskUseCase) findOwned(ctx context.Context, userID, id string) (*entity.Task, error) {
	task, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, outbound.ErrTaskNotFound
	}
	return task, nil
}

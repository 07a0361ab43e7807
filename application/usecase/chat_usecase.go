package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pookie/pookie/application/port/outbound"
	"github.com/pookie/pookie/infrastructure/service/logger"
)

var ErrEmptyMessage = errors.New("message is required")

// ChatUseCase answers chat messages with the rule-based assistant, grounding
// replies in the caller's task stats.
type ChatUseCase struct {
	users     outbound.UserRepository
	tasks     *TaskUseCase
	assistant outbound.Assistant
	logger    logger.Logger
}

func NewChatUseCase(users outbound.UserRepository, tasks *TaskUseCase, assistant outbound.Assistant, log logger.Logger) *ChatUseCase {
	return &ChatUseCase{
		users:     users,
		tasks:     tasks,
		assistant: assistant,
		logger:    log,
	}
}

func (uc *ChatUseCase) Chat(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	stats, err := uc.tasks.Stats(ctx, userID)
	if err != nil {
		return "", err
	}

	reply, err := uc.assistant.Reply(ctx, message, outbound.AssistantContext{
		UserName: firstNameFromEmail(user.Email),
		Stats:    stats,
	})
	if err != nil {
		return "", fmt.Errorf("assistant failed to reply: %w", err)
	}

	uc.logger.Debug(ctx, "Chat reply generated", map[string]interface{}{
		"user_id": userID,
	})
	return reply, nil
}

package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Chuk2022/VKBot-GDM/internal/logger"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api            *tgbotapi.BotAPI
	deps           Dependencies
	commandHandler *CommandHandler
	textHandler    *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api *tgbotapi.BotAPI, deps Dependencies) *UpdateHandler {
	return &UpdateHandler{
		api:            api,
		deps:           deps,
		commandHandler: NewCommandHandler(api, deps),
		textHandler:    NewTextHandler(api, deps),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	message := update.Message
	name := displayName(message.From)

	// Users are registered lazily on first interaction.
	user, err := h.deps.UserService.RegisterUser(ctx, message.From.ID, name)
	if err != nil {
		logger.Errorf("failed to register user %d: %v", message.From.ID, err)
		return fmt.Errorf("failed to register user: %w", err)
	}

	if message.IsCommand() {
		return h.commandHandler.Handle(ctx, message, user)
	}

	if message.Text != "" {
		return h.textHandler.Handle(ctx, message, user)
	}

	return nil
}

func displayName(from *tgbotapi.User) string {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = from.UserName
	}
	return name
}

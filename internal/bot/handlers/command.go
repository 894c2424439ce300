package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Chuk2022/VKBot-GDM/internal/bot/menus"
	"github.com/Chuk2022/VKBot-GDM/internal/domain"
	"github.com/Chuk2022/VKBot-GDM/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api  *tgbotapi.BotAPI
	deps Dependencies
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies) *CommandHandler {
	return &CommandHandler{api: api, deps: deps}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	logger.Infof("Handling command %s from user %d", message.Command(), user.TelegramID)

	switch message.Command() {
	case "start":
		h.deps.IntakeSvc.Abandon(user.TelegramID)
		return menus.SendMainMenu(h.api, message.Chat.ID, user.Name, user.IsAdmin)
	case "help":
		return h.handleHelp(message.Chat.ID)
	default:
		return h.handleUnknownCommand(message.Chat.ID)
	}
}

// handleHelp handles the /help command
func (h *CommandHandler) handleHelp(chatID int64) error {
	text := `Доступные команды:
/start - Показать главное меню
/help - Показать это сообщение

Как записать замер:
1. Нажмите кнопку с периодом измерения (например, "🍽 Перед завтраком")
2. Введите показатель глюкозы в ммоль/л
Пример: "5,6" или "5.6"

Кнопка "📊 График" строит график ваших замеров за неделю, месяц или за все время.`

	msg := tgbotapi.NewMessage(chatID, text)
	_, err := h.api.Send(msg)
	return err
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Неизвестная команда. Используйте /help для просмотра доступных команд.")
	_, err := h.api.Send(msg)
	return err
}

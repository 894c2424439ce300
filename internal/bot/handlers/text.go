package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Chuk2022/VKBot-GDM/internal/apperrors"
	"github.com/Chuk2022/VKBot-GDM/internal/bot/keyboards"
	"github.com/Chuk2022/VKBot-GDM/internal/bot/menus"
	"github.com/Chuk2022/VKBot-GDM/internal/domain"
	"github.com/Chuk2022/VKBot-GDM/internal/logger"
	"github.com/Chuk2022/VKBot-GDM/internal/services"
)

// TextHandler classifies free-text messages: period buttons, report
// requests, admin buttons, admin client selection, pending value
// submissions and everything else.
type TextHandler struct {
	api  *tgbotapi.BotAPI
	deps Dependencies
}

// NewTextHandler creates a new text handler
func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies) *TextHandler {
	return &TextHandler{api: api, deps: deps}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, user *domain.User) error {
	text := message.Text

	for _, label := range keyboards.PeriodButtons {
		if text == label {
			period, ok := keyboards.PeriodFromButton(label)
			if !ok {
				break
			}
			return h.handlePeriodSelect(message.Chat.ID, user, period)
		}
	}

	switch text {
	case keyboards.BtnChart:
		return menus.SendChartMenu(h.api, message.Chat.ID)
	case keyboards.BtnChartWeek:
		return h.handleChart(ctx, message.Chat.ID, user, user.TelegramID, user.Name, services.WindowWeek)
	case keyboards.BtnChartMonth:
		return h.handleChart(ctx, message.Chat.ID, user, user.TelegramID, user.Name, services.WindowMonth)
	case keyboards.BtnChartAll:
		return h.handleChart(ctx, message.Chat.ID, user, user.TelegramID, user.Name, services.WindowAll)
	case keyboards.BtnClients:
		return h.handleClientList(ctx, message.Chat.ID, user)
	case keyboards.BtnAdminPanel:
		return h.handleAdminPanel(ctx, message.Chat.ID, user)
	case keyboards.BtnOverallStats:
		return h.handleOverallStats(ctx, message.Chat.ID, user)
	case keyboards.BtnBack:
		return menus.SendMainMenu(h.api, message.Chat.ID, "", user.IsAdmin)
	}

	if user.IsAdmin && looksLikeClientSelection(text) {
		return h.handleClientSelection(ctx, message.Chat.ID, user, text)
	}

	return h.handleSubmission(ctx, message.Chat.ID, user, text)
}

// handlePeriodSelect moves the user into the awaiting-value state. A new
// selection silently overwrites any prior pending entry.
func (h *TextHandler) handlePeriodSelect(chatID int64, user *domain.User, period domain.Period) error {
	h.deps.IntakeSvc.SelectPeriod(user.TelegramID, period)
	logger.Infof("User %d selected period %s", user.TelegramID, period)

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("📝 Введите показатель глюкозы для периода: %s", period))
	msg.ReplyMarkup = keyboards.Main(user.IsAdmin)
	_, err := h.api.Send(msg)
	return err
}

// handleSubmission runs the text against the intake state machine. With no
// pending entry the message is unclassified and falls through to the
// default response.
func (h *TextHandler) handleSubmission(ctx context.Context, chatID int64, user *domain.User, text string) error {
	result, err := h.deps.IntakeSvc.Submit(ctx, user.TelegramID, text)
	if err != nil {
		if errors.Is(err, services.ErrNoPending) {
			return h.handleDefaultText(chatID, user)
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeValidation {
			// Pending entry is preserved; the next message retries the same period.
			msg := tgbotapi.NewMessage(chatID, "⚠️ "+appErr.Message)
			_, err := h.api.Send(msg)
			return err
		}

		logger.Errorf("failed to save reading for user %d: %v", user.TelegramID, err)
		msg := tgbotapi.NewMessage(chatID, "Произошла ошибка при сохранении данных. Пожалуйста, попробуйте еще раз.")
		_, err = h.api.Send(msg)
		return err
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✅ Сохранено: %.1f ммоль/л\nПериод: %s\nВсего записей: %d",
		result.Value, result.Period, result.Total))
	msg.ReplyMarkup = keyboards.Main(user.IsAdmin)
	_, err = h.api.Send(msg)
	return err
}

// handleChart renders and sends a chart for targetID's readings.
func (h *TextHandler) handleChart(ctx context.Context, chatID int64, viewer *domain.User, targetID int64, targetName string, window services.Window) error {
	report, err := h.deps.ReportSvc.ChartForUser(ctx, targetID, window)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeInsufficientData) {
			msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("📭 У %s недостаточно данных %s", targetName, window))
			if targetID == viewer.TelegramID {
				msg.Text = fmt.Sprintf("📭 Недостаточно данных %s", window)
			}
			msg.ReplyMarkup = keyboards.Main(viewer.IsAdmin)
			_, err := h.api.Send(msg)
			return err
		}
		logger.Errorf("failed to build chart for user %d: %v", targetID, err)
		msg := tgbotapi.NewMessage(chatID, "❌ Не удалось построить график. Попробуйте еще раз.")
		_, err = h.api.Send(msg)
		return err
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "glucose.png", Bytes: report.PNG})
	photo.Caption = report.Caption
	photo.ReplyMarkup = keyboards.Main(viewer.IsAdmin)
	_, err = h.api.Send(photo)
	return err
}

// handleClientList sends the admin a keyboard with one button per client.
func (h *TextHandler) handleClientList(ctx context.Context, chatID int64, user *domain.User) error {
	if !user.IsAdmin {
		msg := tgbotapi.NewMessage(chatID, "❌ Нет прав администратора")
		_, err := h.api.Send(msg)
		return err
	}

	clients, err := h.deps.StatsSvc.ClientList(ctx)
	if err != nil {
		logger.Errorf("failed to list clients: %v", err)
		msg := tgbotapi.NewMessage(chatID, "Произошла ошибка. Пожалуйста, попробуйте еще раз.")
		_, err := h.api.Send(msg)
		return err
	}

	if len(clients) == 0 {
		msg := tgbotapi.NewMessage(chatID, "📭 Нет зарегистрированных клиентов")
		_, err := h.api.Send(msg)
		return err
	}

	buttons := make([]string, 0, len(clients))
	for _, c := range clients {
		buttons = append(buttons, fmt.Sprintf("%d:%s (%d зап.)", c.TelegramID, c.Name, c.Count))
	}

	msg := tgbotapi.NewMessage(chatID, "👥 Список клиентов:")
	msg.ReplyMarkup = keyboards.Clients(buttons)
	_, err = h.api.Send(msg)
	return err
}

// handleAdminPanel shows the aggregate counters.
func (h *TextHandler) handleAdminPanel(ctx context.Context, chatID int64, user *domain.User) error {
	if !user.IsAdmin {
		return h.handleDefaultText(chatID, user)
	}

	counters, err := h.deps.StatsSvc.Counters(ctx)
	if err != nil {
		logger.Errorf("failed to load admin counters: %v", err)
		msg := tgbotapi.NewMessage(chatID, "Произошла ошибка. Пожалуйста, попробуйте еще раз.")
		_, err := h.api.Send(msg)
		return err
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"📊 Админ панель\n\nКлиентов: %d\nЗамеров: %d\nЗамеров сегодня: %d",
		counters.Users, counters.Readings, counters.ReadingsToday))
	msg.ReplyMarkup = keyboards.AdminPanel()
	_, err = h.api.Send(msg)
	return err
}

// handleOverallStats reports count and mean per client with data.
func (h *TextHandler) handleOverallStats(ctx context.Context, chatID int64, user *domain.User) error {
	if !user.IsAdmin {
		return h.handleDefaultText(chatID, user)
	}

	rows, err := h.deps.StatsSvc.Aggregate(ctx)
	if err != nil {
		logger.Errorf("failed to compute overall stats: %v", err)
		msg := tgbotapi.NewMessage(chatID, "Произошла ошибка. Пожалуйста, попробуйте еще раз.")
		_, err := h.api.Send(msg)
		return err
	}

	var sb strings.Builder
	sb.WriteString("📊 Общая статистика:\n\n")
	for _, row := range rows {
		fmt.Fprintf(&sb, "👤 %s:\n   Замеров: %d\n   Среднее: %.1f\n\n", row.Name, row.Count, row.Avg)
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = keyboards.Main(user.IsAdmin)
	_, err = h.api.Send(msg)
	return err
}

// handleClientSelection renders a chart for the client picked from the
// client-list keyboard ("<id>:<name> (N зап.)").
func (h *TextHandler) handleClientSelection(ctx context.Context, chatID int64, admin *domain.User, text string) error {
	idPart, _, _ := strings.Cut(text, ":")
	clientID, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil {
		return h.handleDefaultText(chatID, admin)
	}

	client, err := h.deps.UserService.GetByTelegramID(ctx, clientID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			msg := tgbotapi.NewMessage(chatID, "❌ Клиент не найден")
			_, err := h.api.Send(msg)
			return err
		}
		logger.Errorf("failed to look up client %d: %v", clientID, err)
		msg := tgbotapi.NewMessage(chatID, "Произошла ошибка. Пожалуйста, попробуйте еще раз.")
		_, err = h.api.Send(msg)
		return err
	}

	waiting := tgbotapi.NewMessage(chatID, fmt.Sprintf("⏳ График для %s...", client.Name))
	if _, err := h.api.Send(waiting); err != nil {
		return err
	}

	return h.handleChart(ctx, chatID, admin, client.TelegramID, client.Name, services.WindowAll)
}

// handleDefaultText answers unclassified input. Not an error: the user just
// needs the menu.
func (h *TextHandler) handleDefaultText(chatID int64, user *domain.User) error {
	msg := tgbotapi.NewMessage(chatID, "❓ Используйте кнопки меню")
	msg.ReplyMarkup = keyboards.Main(user.IsAdmin)
	_, err := h.api.Send(msg)
	return err
}

// looksLikeClientSelection matches the client-list button shape: leading
// digits followed by a colon.
func looksLikeClientSelection(text string) bool {
	if text == "" || !unicode.IsDigit(rune(text[0])) {
		return false
	}
	return strings.ContainsRune(text, ':')
}

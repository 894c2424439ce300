package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// Button labels. Period buttons carry a display icon; the canonical period
// values are resolved through domain.ParsePeriodLabel, never by splitting
// these strings.
const (
	BtnBeforeBreakfast = "🍽 Перед завтраком"
	BtnBeforeLunch     = "🍽 Перед обедом"
	BtnBeforeDinner    = "🍽 Перед ужином"
	BtnBeforeSleep     = "🌙 Перед сном"
	BtnNight           = "🌃 Ночью"
	BtnAfterMeal       = "⏱ Через час после еды"

	BtnChart      = "📊 График"
	BtnChartWeek  = "📅 За неделю"
	BtnChartMonth = "📅 За месяц"
	BtnChartAll   = "📈 Все данные"

	BtnClients      = "👥 Список клиентов"
	BtnAdminPanel   = "📊 Админ панель"
	BtnOverallStats = "📊 Общая статистика"
	BtnBack         = "🔙 Назад"
)

// PeriodButtons lists the six period labels in keyboard order.
var PeriodButtons = []string{
	BtnBeforeBreakfast, BtnBeforeLunch, BtnBeforeDinner,
	BtnBeforeSleep, BtnNight, BtnAfterMeal,
}

// PeriodFromButton resolves a period button label to its canonical value.
func PeriodFromButton(label string) (domain.Period, bool) {
	return domain.ParsePeriodLabel(label)
}

// Main creates the persistent main keyboard. Admins get an extra row.
func Main(isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnBeforeBreakfast),
			tgbotapi.NewKeyboardButton(BtnBeforeLunch),
			tgbotapi.NewKeyboardButton(BtnBeforeDinner),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnBeforeSleep),
			tgbotapi.NewKeyboardButton(BtnNight),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnAfterMeal),
			tgbotapi.NewKeyboardButton(BtnChart),
		),
	}

	if isAdmin {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnClients),
			tgbotapi.NewKeyboardButton(BtnAdminPanel),
		))
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// Chart creates the report window selection keyboard.
func Chart() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnChartWeek),
			tgbotapi.NewKeyboardButton(BtnChartMonth),
			tgbotapi.NewKeyboardButton(BtnChartAll),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnBack),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// AdminPanel creates the admin panel keyboard.
func AdminPanel() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnClients),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnOverallStats),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnBack),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// Clients creates a one-time keyboard with one button per client plus a
// back button.
func Clients(buttons []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(buttons)+1)
	for _, label := range buttons {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(BtnBack)))

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return keyboard
}

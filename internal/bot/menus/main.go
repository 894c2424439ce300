package menus

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Chuk2022/VKBot-GDM/internal/bot/keyboards"
)

// SendMainMenu sends the period selection keyboard with a greeting.
func SendMainMenu(api *tgbotapi.BotAPI, chatID int64, name string, isAdmin bool) error {
	text := "Выберите период измерения:"
	if name != "" {
		text = fmt.Sprintf("👋 Здравствуйте, %s!\nВыберите период измерения:", name)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.Main(isAdmin)
	_, err := api.Send(msg)
	return err
}

// SendChartMenu sends the report window selection keyboard.
func SendChartMenu(api *tgbotapi.BotAPI, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "📊 За какой период построить график?")
	msg.ReplyMarkup = keyboards.Chart()
	_, err := api.Send(msg)
	return err
}

package handlers

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytConvertBot/services"
)

// formatKeyboard строит меню выбора формата
func formatKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, choices := range services.MenuChoices() {
		var row []tgbotapi.InlineKeyboardButton
		for _, choice := range choices {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(buttonLabel(choice), choice.Data()))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buttonLabel(choice services.MenuChoice) string {
	switch choice.Kind {
	case services.KindContainerAV:
		return "🎬 MP4 " + choice.Quality + "p"
	case services.KindAudioCompressed:
		return "🎵 MP3 " + choice.Quality + "kbps"
	case services.KindAudioRaw:
		return "🔊 Только звук (" + strings.ToUpper(choice.Quality) + ")"
	case services.KindVideoOnly:
		return "📹 Только видео (лучшее)"
	default:
		return choice.Data()
	}
}

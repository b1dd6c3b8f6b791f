package handlers

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"ytConvertBot/services"
	"ytConvertBot/utils"
)

const (
	maxTitleLength   = 100
	maxCaptionLength = 1024
)

const welcomeText = `🎥 <b>YouTube Converter Bot</b>

Привет! Я скачаю видео с YouTube в нужном формате.

📋 <b>Как пользоваться:</b>
• Отправьте ссылку на видео
• Выберите формат и качество
• Получите файл прямо в чат

🎯 <b>Форматы:</b>
• MP4 (360p-2160p)
• MP3 (128-320 kbps)
• Только звук (M4A, WEBM)
• Только видео

⚠️ Telegram принимает файлы до 2 ГБ.`

const helpText = `📚 <b>Справка</b>

Отправьте ссылку вида:
• https://www.youtube.com/watch?v=VIDEO_ID
• https://youtu.be/VIDEO_ID
• https://www.youtube.com/shorts/VIDEO_ID

После этого выберите формат в меню под сообщением.

/start - приветствие
/help - эта справка`

const (
	unknownCommandText   = "Неизвестная команда. Используйте /help для справки."
	invalidLinkText      = "❌ Это не похоже на ссылку YouTube. Отправьте ссылку на видео."
	rateLimitedText      = "⏳ Слишком много ссылок подряд. Подождите минуту и попробуйте снова."
	fetchingText         = "🔍 Получаю информацию о видео..."
	metadataFailedText   = "❌ Не удалось получить информацию о видео. Попробуйте другую ссылку."
	noConversationText   = "❌ Ссылка не найдена. Отправьте её заново."
	staleChoiceText      = "⌛ Это меню устарело. Выберите формат в последнем меню или отправьте ссылку заново."
	inProgressText       = "⏳ Загрузка уже идёт, дождитесь её завершения."
	badChoiceText        = "❌ Неизвестный вариант. Отправьте ссылку заново."
	apologyText          = "❌ Произошла непредвиденная ошибка. Попробуйте ещё раз."
	unknownValue         = "неизвестно"
	tryAnotherFormatHint = "Попробуйте другой формат или качество."
)

func infoText(meta services.VideoMetadata) string {
	duration := meta.DurationDisplay
	if duration == "" {
		duration = unknownValue
	}

	var b strings.Builder
	b.WriteString("📹 <b>Видео найдено</b>\n\n")
	fmt.Fprintf(&b, "<b>Название:</b> %s\n", html.EscapeString(utils.Truncate(meta.Title, maxTitleLength)))
	if meta.Uploader != nil && *meta.Uploader != "" {
		fmt.Fprintf(&b, "<b>Автор:</b> %s\n", html.EscapeString(*meta.Uploader))
	}
	fmt.Fprintf(&b, "<b>Длительность:</b> %s\n\n", html.EscapeString(duration))
	b.WriteString("Выберите формат и качество:")
	return b.String()
}

func downloadingText(label string) string {
	return fmt.Sprintf("📥 Скачиваю %s... Пожалуйста, подождите.", label)
}

func uploadingText(size int64) string {
	return fmt.Sprintf("📤 Отправляю файл (%s)...", utils.FormatFileSize(size))
}

// captionText builds the caption for a delivered file; the result never
// exceeds Telegram's caption limit.
func captionText(title, label string) string {
	if title == "" {
		title = "video"
	}

	caption := fmt.Sprintf("✅ <b>%s</b>\n\n🎯 Формат: %s",
		html.EscapeString(utils.Truncate(title, maxTitleLength)),
		html.EscapeString(label),
	)
	return utils.Truncate(caption, maxCaptionLength)
}

// errorText turns a failed step into the message shown to the user.
func errorText(err error) string {
	var (
		retrievalErr *services.RetrievalError
		sizeErr      *services.SizeExceededError
		deliveryErr  *services.DeliveryError
	)

	switch {
	case errors.As(err, &sizeErr):
		return fmt.Sprintf("❌ Файл слишком большой (%s, лимит %s). Выберите качество пониже.",
			utils.FormatFileSize(sizeErr.Size), utils.FormatFileSize(sizeErr.Limit))
	case errors.As(err, &retrievalErr):
		if retrievalErr.Kind == services.RetrievalNotFound {
			return "❌ Загрузка не дала файла. " + tryAnotherFormatHint
		}
		return fmt.Sprintf("❌ Ошибка загрузки:\n<code>%s</code>\n\n%s",
			html.EscapeString(retrievalErr.Message), tryAnotherFormatHint)
	case errors.As(err, &deliveryErr):
		return fmt.Sprintf("❌ Не удалось отправить файл:\n<code>%s</code>",
			html.EscapeString(utils.Truncate(deliveryErr.Cause.Error(), services.MaxDiagnosticLength)))
	default:
		return fmt.Sprintf("❌ Произошла ошибка:\n<code>%s</code>\n\n%s",
			html.EscapeString(utils.Truncate(err.Error(), services.MaxDiagnosticLength)), tryAnotherFormatHint)
	}
}

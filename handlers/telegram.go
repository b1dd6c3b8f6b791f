package handlers

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytConvertBot/services"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Sender

// Sender is the part of the Bot API client the handler talks to.
// *tgbotapi.BotAPI implements it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var _ Sender = (*tgbotapi.BotAPI)(nil)

// TelegramHandler обрабатывает сообщения Telegram
type TelegramHandler struct {
	api            Sender
	youtubeService *services.YouTubeService
	files          *services.FileManager
	sessions       *services.SessionStore
}

// NewTelegramHandler создает новый обработчик Telegram
func NewTelegramHandler(api Sender, youtubeService *services.YouTubeService, files *services.FileManager, sessions *services.SessionStore) *TelegramHandler {
	return &TelegramHandler{
		api:            api,
		youtubeService: youtubeService,
		files:          files,
		sessions:       sessions,
	}
}

// HandleUpdate dispatches one update. A panic in any step is logged and
// answered with an apology instead of taking the process down.
func (h *TelegramHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"update_id": update.UpdateID,
				"panic":     r,
				"stack":     string(debug.Stack()),
			}).Error("Panic while handling update")

			if chat := update.FromChat(); chat != nil {
				h.sendMessage(chat.ID, apologyText)
			}
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		h.HandleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.HandleMessage(ctx, update.Message)
	}
}

// HandleMessage обрабатывает входящие сообщения
func (h *TelegramHandler) HandleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}
	chatID := message.Chat.ID

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			h.sendMessage(chatID, welcomeText)
		case "help":
			h.sendMessage(chatID, helpText)
		default:
			h.sendMessage(chatID, unknownCommandText)
		}
		return
	}

	if text := strings.TrimSpace(message.Text); text != "" {
		h.handleLink(ctx, chatID, text)
	}
}

func (h *TelegramHandler) handleLink(ctx context.Context, chatID int64, link string) {
	logger := log.WithFields(log.Fields{
		"chat_id":  chatID,
		"video_id": services.ExtractVideoID(link),
	})

	if !services.IsSupported(link) {
		err := &services.ValidationError{Input: link, Cause: services.ErrNotSupportedURL}
		logger.WithError(err).Debug("Rejected message")
		h.sendMessage(chatID, invalidLinkText)
		return
	}

	if !h.sessions.Allow(chatID) {
		logger.Warn("Chat is rate limited")
		h.sendMessage(chatID, rateLimitedText)
		return
	}

	status, err := h.api.Send(tgbotapi.NewMessage(chatID, fetchingText))
	if err != nil {
		logger.WithError(err).Error("Failed to send status message")
		return
	}

	meta, err := h.youtubeService.FetchMetadata(ctx, link)
	if err != nil {
		logger.WithError(err).Warn("Metadata unavailable")
		h.editText(chatID, status.MessageID, metadataFailedText)
		return
	}

	h.sessions.Remember(chatID, link, meta)

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, status.MessageID, infoText(meta), formatKeyboard())
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := h.api.Send(edit); err != nil {
		logger.WithError(err).Error("Failed to show format menu")
		return
	}

	if !h.sessions.SetMenu(chatID, link, status.MessageID) {
		logger.Info("Newer link arrived before the menu was shown")
		h.editText(chatID, status.MessageID, staleChoiceText)
		return
	}
	logger.WithField("title", meta.Title).Info("Format menu shown")
}

// HandleCallback обрабатывает нажатия на кнопки
func (h *TelegramHandler) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if _, err := h.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.WithError(err).Debug("Failed to answer callback")
	}

	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	menuID := callback.Message.MessageID

	logger := log.WithFields(log.Fields{
		"chat_id": chatID,
		"choice":  callback.Data,
	})

	kind, quality, err := services.ParseChoice(callback.Data)
	if err != nil {
		logger.WithError(err).Warn("Malformed callback data")
		h.editText(chatID, menuID, badChoiceText)
		return
	}

	conv, err := h.sessions.BeginRetrieval(chatID, menuID)
	switch {
	case errors.Is(err, services.ErrNoConversation):
		h.editText(chatID, menuID, noConversationText)
		return
	case errors.Is(err, services.ErrStaleChoice):
		logger.Info("Choice from an outdated menu")
		h.editText(chatID, menuID, staleChoiceText)
		return
	case errors.Is(err, services.ErrRetrievalInProgress):
		h.sendMessage(chatID, inProgressText)
		return
	case err != nil:
		logger.WithError(err).Error("Unexpected session error")
		h.editText(chatID, menuID, apologyText)
		return
	}

	req := services.NewDownloadRequest(conv.URL, kind, quality)
	logger = logger.WithField("video_id", conv.VideoID)

	if err := h.retrieveAndDeliver(ctx, chatID, menuID, conv, req); err != nil {
		logger.WithError(err).Warn("Request failed")
		h.sessions.SetPhase(chatID, services.PhaseFailed)
		h.editText(chatID, menuID, errorText(err))
		return
	}

	h.sessions.SetPhase(chatID, services.PhaseIdle)
	logger.Info("File delivered")
}

func (h *TelegramHandler) retrieveAndDeliver(ctx context.Context, chatID int64, statusID int, conv services.ConversationContext, req services.DownloadRequest) error {
	h.editText(chatID, statusID, downloadingText(req.Label()))

	result, err := h.youtubeService.Retrieve(ctx, req)
	if err != nil {
		return err
	}
	defer h.files.Delete(result.FilePath)

	if !h.files.CheckSizeLimit(result) {
		return h.files.SizeError(result)
	}

	h.sessions.SetPhase(chatID, services.PhaseDelivering)
	h.editText(chatID, statusID, uploadingText(result.ByteSize))

	caption := captionText(conv.Title, req.Label())
	if err := h.sendFile(chatID, req.Kind, result.FilePath, caption); err != nil {
		return &services.DeliveryError{Path: result.FilePath, Cause: err}
	}

	if _, err := h.api.Request(tgbotapi.NewDeleteMessage(chatID, statusID)); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Debug("Failed to delete status message")
	}
	return nil
}

// sendFile uploads path as audio for audio kinds and as a streamable video
// otherwise.
func (h *TelegramHandler) sendFile(chatID int64, kind services.FormatKind, path, caption string) error {
	file := tgbotapi.FilePath(path)

	var upload tgbotapi.Chattable
	if kind.IsAudio() {
		audio := tgbotapi.NewAudio(chatID, file)
		audio.Caption = caption
		audio.ParseMode = tgbotapi.ModeHTML
		upload = audio
	} else {
		video := tgbotapi.NewVideo(chatID, file)
		video.Caption = caption
		video.ParseMode = tgbotapi.ModeHTML
		video.SupportsStreaming = true
		upload = video
	}

	_, err := h.api.Send(upload)
	return err
}

// sendMessage отправляет простое текстовое сообщение
func (h *TelegramHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := h.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

func (h *TelegramHandler) editText(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := h.api.Send(edit); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Debug("Failed to edit status message")
	}
}

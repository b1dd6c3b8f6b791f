package handlers_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytConvertBot/handlers"
	"ytConvertBot/handlers/handlersfakes"
	"ytConvertBot/services"
	"ytConvertBot/services/servicesfakes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const (
	chatID     int64 = 1001
	menuID           = 55
	sourceURL        = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	videoTitle       = "Never Gonna Give You Up"
)

func textMessage(text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}}
	}
	return tgbotapi.Update{UpdateID: 1, Message: msg}
}

func callback(data string, messageID int) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 2,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: data,
			Message: &tgbotapi.Message{
				MessageID: messageID,
				Chat:      &tgbotapi.Chat{ID: chatID},
			},
		},
	}
}

// sentTexts lists the text of every message and edit passed to Send.
func sentTexts(sender *handlersfakes.FakeSender) []string {
	var texts []string
	for i := 0; i < sender.SendCallCount(); i++ {
		switch c := sender.SendArgsForCall(i).(type) {
		case tgbotapi.MessageConfig:
			texts = append(texts, c.Text)
		case tgbotapi.EditMessageTextConfig:
			texts = append(texts, c.Text)
		}
	}
	return texts
}

func lastText(sender *handlersfakes.FakeSender) string {
	texts := sentTexts(sender)
	Expect(texts).NotTo(BeEmpty())
	return texts[len(texts)-1]
}

var _ = Describe("TelegramHandler", func() {
	var (
		ctx         context.Context
		downloadDir string
		sender      *handlersfakes.FakeSender
		engine      *servicesfakes.FakeEngine
		queue       *services.DownloadQueue
		files       *services.FileManager
		sessions    *services.SessionStore
		handler     *handlers.TelegramHandler
		duration    float64
	)

	newHandler := func(maxFileSize int64) {
		files = services.NewFileManager(maxFileSize)
		youtube := services.NewYouTubeService(downloadDir, engine, nil, queue, 0)
		handler = handlers.NewTelegramHandler(sender, youtube, files, sessions)
	}

	BeforeEach(func() {
		var err error
		downloadDir, err = os.MkdirTemp("", "ytconvert-handler")
		Expect(err).NotTo(HaveOccurred())

		ctx = context.Background()
		sender = &handlersfakes.FakeSender{}
		sender.SendReturns(tgbotapi.Message{MessageID: menuID}, nil)
		sender.RequestReturns(&tgbotapi.APIResponse{Ok: true}, nil)

		duration = 212
		engine = &servicesfakes.FakeEngine{}
		engine.InfoReturns(services.EngineInfo{
			ID:             "dQw4w9WgXcQ",
			Title:          videoTitle,
			Duration:       &duration,
			DurationString: "3:32",
		}, nil)

		queue = services.NewDownloadQueue(2)
		sessions = services.NewSessionStore(0)
		newHandler(1 << 30)
	})

	AfterEach(func() {
		queue.Stop()
		Expect(os.RemoveAll(downloadDir)).To(Succeed())
	})

	Describe("commands", func() {
		It("greets on /start", func() {
			handler.HandleUpdate(ctx, textMessage("/start"))

			Expect(sender.SendCallCount()).To(Equal(1))
			Expect(lastText(sender)).To(ContainSubstring("YouTube Converter Bot"))
		})

		It("explains usage on /help", func() {
			handler.HandleUpdate(ctx, textMessage("/help"))
			Expect(lastText(sender)).To(ContainSubstring("youtu.be"))
		})

		It("points unknown commands to /help", func() {
			handler.HandleUpdate(ctx, textMessage("/nope"))
			Expect(lastText(sender)).To(ContainSubstring("/help"))
		})
	})

	Describe("submitting a link", func() {
		It("rejects text that is not a video link", func() {
			handler.HandleUpdate(ctx, textMessage("https://vimeo.com/123"))

			Expect(sender.SendCallCount()).To(Equal(1))
			Expect(lastText(sender)).To(ContainSubstring("не похоже на ссылку"))
			Expect(engine.InfoCallCount()).To(BeZero())
		})

		It("shows the video details with the format menu", func() {
			handler.HandleUpdate(ctx, textMessage(sourceURL))

			Expect(sender.SendCallCount()).To(Equal(2))
			status, ok := sender.SendArgsForCall(0).(tgbotapi.MessageConfig)
			Expect(ok).To(BeTrue())
			Expect(status.Text).To(ContainSubstring("Получаю информацию"))

			menu, ok := sender.SendArgsForCall(1).(tgbotapi.EditMessageTextConfig)
			Expect(ok).To(BeTrue())
			Expect(menu.MessageID).To(Equal(menuID))
			Expect(menu.Text).To(ContainSubstring(videoTitle))
			Expect(menu.Text).To(ContainSubstring("3:32"))
			Expect(menu.ReplyMarkup).NotTo(BeNil())
			Expect(menu.ReplyMarkup.InlineKeyboard).To(HaveLen(6))
			Expect(*menu.ReplyMarkup.InlineKeyboard[1][0].CallbackData).To(Equal("mp4_720"))

			conv, ok := sessions.Get(chatID)
			Expect(ok).To(BeTrue())
			Expect(conv.URL).To(Equal(sourceURL))
			Expect(conv.MenuMessageID).To(Equal(menuID))
		})

		It("reports metadata failures on the status message", func() {
			engine.InfoReturns(services.EngineInfo{}, errors.New("Video unavailable"))

			handler.HandleUpdate(ctx, textMessage(sourceURL))

			Expect(lastText(sender)).To(ContainSubstring("Не удалось получить информацию"))
			_, ok := sessions.Get(chatID)
			Expect(ok).To(BeFalse())
		})

		Context("when a newer link lands while the menu is being shown", func() {
			const newerURL = "https://youtu.be/BBBBBBBBBBB"

			BeforeEach(func() {
				sender.SendStub = func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
					if edit, ok := c.(tgbotapi.EditMessageTextConfig); ok && edit.ReplyMarkup != nil {
						sessions.Remember(chatID, newerURL, services.VideoMetadata{Title: "newer"})
					}
					return tgbotapi.Message{MessageID: menuID}, nil
				}
			})

			It("withdraws the older menu and keeps the newer link", func() {
				handler.HandleUpdate(ctx, textMessage(sourceURL))

				Expect(lastText(sender)).To(ContainSubstring("меню устарело"))

				conv, ok := sessions.Get(chatID)
				Expect(ok).To(BeTrue())
				Expect(conv.URL).To(Equal(newerURL))
				Expect(conv.MenuMessageID).To(BeZero())
			})

			It("does not download the newer link from the older menu", func() {
				handler.HandleUpdate(ctx, textMessage(sourceURL))
				handler.HandleUpdate(ctx, callback("mp3_192", menuID))

				Expect(engine.DownloadCallCount()).To(BeZero())
				Expect(lastText(sender)).To(ContainSubstring("меню устарело"))
			})
		})

		It("throttles a chat that sends too many links", func() {
			sessions = services.NewSessionStore(1)
			newHandler(1 << 30)

			handler.HandleUpdate(ctx, textMessage(sourceURL))
			handler.HandleUpdate(ctx, textMessage(sourceURL))

			Expect(lastText(sender)).To(ContainSubstring("Слишком много"))
			Expect(engine.InfoCallCount()).To(Equal(1))
		})
	})

	Describe("choosing a format", func() {
		var produced string

		BeforeEach(func() {
			handler.HandleUpdate(ctx, textMessage(sourceURL))

			produced = filepath.Join(downloadDir, videoTitle+"_dQw4w9WgXcQ.mp3")
			engine.DownloadStub = func(_ context.Context, _ string, _ services.ExtractionSpec, _ string) (services.EngineInfo, error) {
				Expect(os.WriteFile(produced, []byte("0123456789ABCDEFGHIJ"), 0o644)).To(Succeed())
				return services.EngineInfo{Filename: strings.TrimSuffix(produced, ".mp3") + ".webm"}, nil
			}
		})

		It("delivers audio with a caption and removes the file", func() {
			handler.HandleUpdate(ctx, callback("mp3_192", menuID))

			Expect(engine.DownloadCallCount()).To(Equal(1))
			_, url, spec, _ := engine.DownloadArgsForCall(0)
			Expect(url).To(Equal(sourceURL))
			Expect(spec.AudioFormat).To(Equal("mp3"))

			var audio *tgbotapi.AudioConfig
			for i := 0; i < sender.SendCallCount(); i++ {
				if c, ok := sender.SendArgsForCall(i).(tgbotapi.AudioConfig); ok {
					audio = &c
				}
			}
			Expect(audio).NotTo(BeNil())
			Expect(audio.Caption).To(ContainSubstring(videoTitle))
			Expect(audio.Caption).To(ContainSubstring("MP3 192"))
			Expect(audio.File).To(Equal(tgbotapi.FilePath(produced)))

			Expect(produced).NotTo(BeAnExistingFile())

			var deleted bool
			for i := 0; i < sender.RequestCallCount(); i++ {
				if c, ok := sender.RequestArgsForCall(i).(tgbotapi.DeleteMessageConfig); ok {
					Expect(c.MessageID).To(Equal(menuID))
					deleted = true
				}
			}
			Expect(deleted).To(BeTrue())

			conv, _ := sessions.Get(chatID)
			Expect(conv.Phase).To(Equal(services.PhaseIdle))
		})

		It("delivers video kinds as streamable video", func() {
			produced = filepath.Join(downloadDir, videoTitle+"_dQw4w9WgXcQ.mp4")
			engine.DownloadStub = func(_ context.Context, _ string, _ services.ExtractionSpec, _ string) (services.EngineInfo, error) {
				Expect(os.WriteFile(produced, []byte("video"), 0o644)).To(Succeed())
				return services.EngineInfo{Filename: produced}, nil
			}

			handler.HandleUpdate(ctx, callback("mp4_720", menuID))

			var video *tgbotapi.VideoConfig
			for i := 0; i < sender.SendCallCount(); i++ {
				if c, ok := sender.SendArgsForCall(i).(tgbotapi.VideoConfig); ok {
					video = &c
				}
			}
			Expect(video).NotTo(BeNil())
			Expect(video.SupportsStreaming).To(BeTrue())
			Expect(video.Caption).To(ContainSubstring("MP4 720"))
			Expect(produced).NotTo(BeAnExistingFile())
		})

		It("moves the status straight from the menu to downloading", func() {
			sent := sender.SendCallCount()

			handler.HandleUpdate(ctx, callback("mp3_192", menuID))

			next, ok := sender.SendArgsForCall(sent).(tgbotapi.EditMessageTextConfig)
			Expect(ok).To(BeTrue())
			Expect(next.Text).To(HavePrefix("📥 Скачиваю MP3 192"))
		})

		It("answers the callback", func() {
			handler.HandleUpdate(ctx, callback("mp3_192", menuID))

			first, ok := sender.RequestArgsForCall(0).(tgbotapi.CallbackConfig)
			Expect(ok).To(BeTrue())
			Expect(first.CallbackQueryID).To(Equal("cb-1"))
		})

		It("rejects a choice from an outdated menu", func() {
			handler.HandleUpdate(ctx, callback("mp3_192", menuID-1))

			Expect(engine.DownloadCallCount()).To(BeZero())
			Expect(lastText(sender)).To(ContainSubstring("меню устарело"))
		})

		It("asks for the link again when none is on record", func() {
			sessions = services.NewSessionStore(0)
			newHandler(1 << 30)

			handler.HandleUpdate(ctx, callback("mp3_192", menuID))

			Expect(engine.DownloadCallCount()).To(BeZero())
			Expect(lastText(sender)).To(ContainSubstring("Отправьте её заново"))
		})

		It("rejects malformed callback data", func() {
			handler.HandleUpdate(ctx, callback("garbage", menuID))

			Expect(engine.DownloadCallCount()).To(BeZero())
			Expect(lastText(sender)).To(ContainSubstring("Неизвестный вариант"))
		})

		It("shows the engine diagnostic when the retrieval fails", func() {
			engine.DownloadStub = nil
			engine.DownloadReturns(services.EngineInfo{}, errors.New("ERROR: Requested format is not available"))

			handler.HandleUpdate(ctx, callback("mp4_2160", menuID))

			Expect(lastText(sender)).To(ContainSubstring("Requested format is not available"))
			Expect(engine.DownloadCallCount()).To(Equal(1))

			conv, _ := sessions.Get(chatID)
			Expect(conv.Phase).To(Equal(services.PhaseIdle))
		})

		It("refuses files over the upload limit and removes them", func() {
			newHandler(10)

			handler.HandleUpdate(ctx, callback("mp3_192", menuID))

			Expect(lastText(sender)).To(ContainSubstring("слишком большой"))
			Expect(produced).NotTo(BeAnExistingFile())
			for i := 0; i < sender.SendCallCount(); i++ {
				_, isAudio := sender.SendArgsForCall(i).(tgbotapi.AudioConfig)
				Expect(isAudio).To(BeFalse())
			}
		})

		It("reports a failed upload and still removes the file", func() {
			sender.SendStub = func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
				if _, ok := c.(tgbotapi.AudioConfig); ok {
					return tgbotapi.Message{}, errors.New("Request Entity Too Large")
				}
				return tgbotapi.Message{MessageID: menuID}, nil
			}

			handler.HandleUpdate(ctx, callback("mp3_192", menuID))

			Expect(lastText(sender)).To(ContainSubstring("Не удалось отправить файл"))
			Expect(lastText(sender)).To(ContainSubstring("Request Entity Too Large"))
			Expect(produced).NotTo(BeAnExistingFile())
		})
	})

	Describe("panics", func() {
		It("apologises instead of crashing", func() {
			calls := 0
			sender.SendStub = func(tgbotapi.Chattable) (tgbotapi.Message, error) {
				calls++
				if calls == 1 {
					panic("transport exploded")
				}
				return tgbotapi.Message{}, nil
			}

			Expect(func() { handler.HandleUpdate(ctx, textMessage("/start")) }).NotTo(Panic())
			Expect(sender.SendCallCount()).To(Equal(2))
			Expect(lastText(sender)).To(ContainSubstring("непредвиденная ошибка"))
		})
	})

	It("ignores updates with nothing to handle", func() {
		handler.HandleUpdate(ctx, tgbotapi.Update{UpdateID: 3})
		Expect(sender.SendCallCount()).To(BeZero())
		Eventually(func() int { return sessions.Len() }, time.Second).Should(BeZero())
	})
})

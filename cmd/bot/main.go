package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/json"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytConvertBot/config"
	"ytConvertBot/handlers"
	"ytConvertBot/internal/netx"
	"ytConvertBot/services"
)

func setupLogging(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		log.SetHandler(json.New(os.Stderr))
	} else {
		log.SetHandler(cli.New(os.Stderr))
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	if cfg.Debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.env")
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	setupLogging(cfg)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		log.WithError(err).WithField("dir", cfg.DownloadDir).Fatal("Failed to create download directory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := services.NewYtDlpEngine(cfg.YtDlpPath, cfg.Proxy.EngineProxy())
	if err := engine.EnsureInstalled(ctx); err != nil {
		log.WithError(err).Fatal("yt-dlp is not available")
	}

	httpClient := netx.NewHTTPClient(cfg.Proxy, cfg.HTTPTimeout)

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, cfg.BotAPIEndpoint(), httpClient)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to the Bot API")
	}
	bot.Debug = cfg.Debug

	var metadata services.MetadataProvider
	if cfg.MetadataSource == config.MetadataSourceNative {
		metadata = services.NewNativeMetadata(httpClient)
	}

	queue := services.NewDownloadQueue(cfg.Workers)
	files := services.NewFileManager(cfg.MaxFileSize)
	sessions := services.NewSessionStore(cfg.RateLimitPerMinute)
	youtubeService := services.NewYouTubeService(cfg.DownloadDir, engine, metadata, queue, cfg.EngineTimeout)
	handler := handlers.NewTelegramHandler(bot, youtubeService, files, sessions)

	log.WithFields(log.Fields{
		"bot":             bot.Self.UserName,
		"workers":         cfg.Workers,
		"download_dir":    cfg.DownloadDir,
		"metadata_source": cfg.MetadataSource,
		"proxy":           cfg.Proxy.UseProxy,
	}).Info("Bot started")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		files.RunSweeper(ctx, youtubeService.DownloadDir(), cfg.SweepInterval, cfg.SweepMaxAge)
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case update, ok := <-updates:
			if !ok {
				break loop
			}

			wg.Add(1)
			go func(update tgbotapi.Update) {
				defer wg.Done()
				handler.HandleUpdate(ctx, update)
			}(update)
		}
	}

	stats := queue.GetQueueStats()
	log.WithFields(log.Fields{
		"pending":    stats.Pending,
		"processing": stats.Processing,
	}).Info("Shutting down")
	bot.StopReceivingUpdates()
	queue.Stop()
	wg.Wait()
	log.Info("Bye")
}

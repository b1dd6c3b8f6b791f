// Command selftest checks that the bot's outbound paths work with the
// current configuration: plain HTTP through the configured proxy, yt-dlp
// metadata extraction, the native metadata client and the Bot API.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytConvertBot/config"
	"ytConvertBot/internal/netx"
	"ytConvertBot/services"
)

const defaultSampleURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func main() {
	log.SetHandler(cli.New(os.Stderr))

	cfg, err := config.Load("config.env")
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	sampleURL := defaultSampleURL
	if len(os.Args) > 1 {
		sampleURL = os.Args[1]
	}
	if !services.IsSupported(sampleURL) {
		log.WithField("url", sampleURL).Fatal("Sample URL is not a supported video link")
	}

	log.WithFields(log.Fields{
		"use_proxy": cfg.Proxy.UseProxy,
		"proxy_url": cfg.Proxy.ProxyURL,
		"no_proxy":  cfg.Proxy.NoProxy,
	}).Info("Proxy settings")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := netx.NewHTTPClient(cfg.Proxy, 15*time.Second)
	failed := 0

	// Тест 1: HTTP клиент
	if err := checkHTTP(ctx, client, "https://www.youtube.com"); err != nil {
		log.WithError(err).Error("HTTP check failed")
		failed++
	} else {
		log.Info("HTTP check passed")
	}

	// Тест 2: yt-dlp
	engine := services.NewYtDlpEngine(cfg.YtDlpPath, cfg.Proxy.EngineProxy())
	if err := engine.EnsureInstalled(ctx); err != nil {
		log.WithError(err).Error("yt-dlp install failed")
		failed++
	} else if info, err := engine.Info(ctx, sampleURL); err != nil {
		log.WithError(err).Error("yt-dlp metadata check failed")
		failed++
	} else {
		log.WithFields(log.Fields{"title": info.Title, "duration": info.DurationString}).Info("yt-dlp check passed")
	}

	// Тест 3: native metadata
	if meta, err := services.NewNativeMetadata(client).Metadata(ctx, sampleURL); err != nil {
		log.WithError(err).Warn("Native metadata check failed")
	} else {
		log.WithFields(log.Fields{"title": meta.Title, "duration": meta.DurationDisplay}).Info("Native metadata check passed")
	}

	// Тест 4: Bot API
	if cfg.Validate() != nil {
		log.Warn("No bot token configured, skipping Bot API check")
	} else if bot, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, cfg.BotAPIEndpoint(), client); err != nil {
		log.WithError(err).Error("Bot API check failed")
		failed++
	} else {
		log.WithField("bot", bot.Self.UserName).Info("Bot API check passed")
	}

	if failed > 0 {
		log.WithField("failed", failed).Fatal("Self-test failed")
	}
	log.Info("Self-test passed")
}

func checkHTTP(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/lrstanley/go-ytdlp"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// EngineInfo is the subset of yt-dlp's info JSON the bot relies on.
type EngineInfo struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Duration       *float64 `json:"duration"`
	DurationString string   `json:"duration_string"`
	Uploader       *string  `json:"uploader"`
	Ext            string   `json:"ext"`
	// Filename is yt-dlp's prepared filename. It is computed before
	// post-processing, so it is a hint rather than the final path.
	Filename string `json:"filename"`
}

//counterfeiter:generate . Engine

// Engine is the external extraction tool.
type Engine interface {
	Info(ctx context.Context, url string) (EngineInfo, error)
	Download(ctx context.Context, url string, spec ExtractionSpec, outputTemplate string) (EngineInfo, error)
}

var _ Engine = (*YtDlpEngine)(nil)

// YtDlpEngine drives the yt-dlp binary through go-ytdlp.
type YtDlpEngine struct {
	executable string
	proxy      string
}

// NewYtDlpEngine creates the engine. An empty executable lets go-ytdlp resolve
// the binary from PATH or its own install cache.
func NewYtDlpEngine(executable, proxy string) *YtDlpEngine {
	return &YtDlpEngine{
		executable: executable,
		proxy:      proxy,
	}
}

// EnsureInstalled makes sure a yt-dlp binary is available when no explicit
// path was configured.
func (e *YtDlpEngine) EnsureInstalled(ctx context.Context) error {
	if e.executable != "" {
		return nil
	}

	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

func (e *YtDlpEngine) command() *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		NoWarnings().
		NoProgress()

	if e.executable != "" {
		dl = dl.SetExecutable(e.executable)
	}
	if e.proxy != "" {
		dl = dl.Proxy(e.proxy)
	}

	return dl
}

func (e *YtDlpEngine) Info(ctx context.Context, url string) (EngineInfo, error) {
	dl := e.command().
		SkipDownload().
		PrintJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return EngineInfo{}, engineError("metadata", result, err)
	}

	return parseEngineInfo(result.Stdout)
}

func (e *YtDlpEngine) Download(ctx context.Context, url string, spec ExtractionSpec, outputTemplate string) (EngineInfo, error) {
	dl := e.command().
		Format(spec.Format).
		Output(outputTemplate).
		PrintJSON()

	if spec.MergeOutputFormat != "" {
		dl = dl.MergeOutputFormat(spec.MergeOutputFormat)
	}
	if spec.ExtractAudio {
		dl = dl.ExtractAudio().AudioFormat(spec.AudioFormat)
		if spec.AudioQuality != "" {
			dl = dl.AudioQuality(spec.AudioQuality + "K")
		}
	}

	log.WithFields(log.Fields{
		"url":    url,
		"format": spec.Format,
		"output": outputTemplate,
	}).Info("Running yt-dlp")

	result, err := dl.Run(ctx, url)
	if err != nil {
		return EngineInfo{}, engineError("download", result, err)
	}

	return parseEngineInfo(result.Stdout)
}

func engineError(stage string, result *ytdlp.Result, err error) error {
	if result != nil {
		if stderr := lastLine(result.Stderr); stderr != "" {
			return fmt.Errorf("yt-dlp %s: %s: %w", stage, stderr, err)
		}
	}
	return fmt.Errorf("yt-dlp %s: %w", stage, err)
}

// parseEngineInfo decodes the last JSON object yt-dlp printed.
func parseEngineInfo(stdout string) (EngineInfo, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}

		var info EngineInfo
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			return EngineInfo{}, fmt.Errorf("failed to parse yt-dlp JSON: %w", err)
		}
		return info, nil
	}

	return EngineInfo{}, errors.New("yt-dlp printed no JSON info")
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

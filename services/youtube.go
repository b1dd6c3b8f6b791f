package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"

	"ytConvertBot/utils"
)

// OutputTemplate names files after the title and the video ID.
const OutputTemplate = "%(title)s_%(id)s.%(ext)s"

const unknownTitle = "Unknown"

// VideoMetadata представляет метаданные видео
type VideoMetadata struct {
	Title           string
	DurationSeconds *int
	DurationDisplay string
	Uploader        *string
	VideoID         string
}

//counterfeiter:generate . MetadataProvider

// MetadataProvider describes a video without downloading it.
type MetadataProvider interface {
	Metadata(ctx context.Context, url string) (VideoMetadata, error)
}

// EngineMetadata asks the extraction engine for metadata.
type EngineMetadata struct {
	engine Engine
}

func NewEngineMetadata(engine Engine) *EngineMetadata {
	return &EngineMetadata{engine: engine}
}

func (p *EngineMetadata) Metadata(ctx context.Context, url string) (VideoMetadata, error) {
	info, err := p.engine.Info(ctx, url)
	if err != nil {
		return VideoMetadata{}, err
	}
	return metadataFromInfo(info), nil
}

func metadataFromInfo(info EngineInfo) VideoMetadata {
	meta := VideoMetadata{
		Title:           info.Title,
		DurationDisplay: info.DurationString,
		Uploader:        info.Uploader,
		VideoID:         info.ID,
	}
	if meta.Title == "" {
		meta.Title = unknownTitle
	}
	if info.Duration != nil {
		seconds := int(math.Round(*info.Duration))
		meta.DurationSeconds = &seconds
		if meta.DurationDisplay == "" {
			meta.DurationDisplay = utils.FormatDuration(seconds)
		}
	}
	return meta
}

// YouTubeService drives metadata lookups and retrievals through the worker
// pool and hands back files that exist on disk.
type YouTubeService struct {
	downloadDir   string
	engine        Engine
	metadata      MetadataProvider
	queue         *DownloadQueue
	engineTimeout time.Duration
}

// NewYouTubeService создает новый экземпляр YouTubeService.
// A nil metadata provider falls back to the engine.
func NewYouTubeService(downloadDir string, engine Engine, metadata MetadataProvider, queue *DownloadQueue, engineTimeout time.Duration) *YouTubeService {
	if metadata == nil {
		metadata = NewEngineMetadata(engine)
	}

	return &YouTubeService{
		downloadDir:   downloadDir,
		engine:        engine,
		metadata:      metadata,
		queue:         queue,
		engineTimeout: engineTimeout,
	}
}

// DownloadDir is where retrieved files land.
func (s *YouTubeService) DownloadDir() string {
	return s.downloadDir
}

func (s *YouTubeService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.engineTimeout > 0 {
		return context.WithTimeout(ctx, s.engineTimeout)
	}
	return context.WithCancel(ctx)
}

// FetchMetadata describes the video at url. It is attempted exactly once.
func (s *YouTubeService) FetchMetadata(ctx context.Context, url string) (VideoMetadata, error) {
	logger := log.WithFields(log.Fields{
		"url":      url,
		"video_id": ExtractVideoID(url),
	})
	logger.Info("Fetching metadata")

	var meta VideoMetadata
	err := s.queue.Do(ctx, url, "metadata", func(ctx context.Context) error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		var err error
		meta, err = s.metadata.Metadata(ctx, url)
		return err
	})
	if err != nil {
		logger.WithError(err).Warn("Metadata fetch failed")
		return VideoMetadata{}, &MetadataError{URL: url, Cause: err}
	}

	if meta.VideoID == "" {
		meta.VideoID = ExtractVideoID(url)
	}

	logger.WithFields(log.Fields{
		"title":    meta.Title,
		"duration": meta.DurationDisplay,
	}).Info("Metadata fetched")
	return meta, nil
}

// Retrieve runs one engine download for req and resolves the produced file.
// Failures are never retried.
func (s *YouTubeService) Retrieve(ctx context.Context, req DownloadRequest) (RetrievalResult, error) {
	spec := BuildRequest(req.Kind, req.Quality)
	videoID := ExtractVideoID(req.SourceURL)

	logger := log.WithFields(log.Fields{
		"url":      req.SourceURL,
		"video_id": videoID,
		"format":   req.Label(),
	})
	if spec.Fallback {
		logger.Warn("Unrecognised format choice, using best available")
	}

	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return RetrievalResult{}, newEngineFailure(fmt.Errorf("failed to create download directory: %w", err))
	}

	template := filepath.Join(s.downloadDir, OutputTemplate)

	var info EngineInfo
	err := s.queue.Do(ctx, req.SourceURL, req.Label(), func(ctx context.Context) error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		var err error
		info, err = s.engine.Download(ctx, req.SourceURL, spec, template)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("engine timed out after %s: %w", s.engineTimeout, ctx.Err())
		}
		return err
	})
	if err != nil {
		logger.WithError(err).Error("Retrieval failed")
		removePartials(s.downloadDir, videoID)
		return RetrievalResult{}, newEngineFailure(err)
	}

	path, ok := resolveOutputFile(s.downloadDir, info.Filename, spec.ExpectedExt, videoID)
	if !ok {
		return RetrievalResult{}, newNotFound(info.Filename)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return RetrievalResult{}, newNotFound(path)
	}

	result := RetrievalResult{
		FilePath: path,
		ByteSize: stat.Size(),
	}
	logger.WithFields(log.Fields{
		"path": path,
		"size": utils.FormatFileSize(result.ByteSize),
	}).Info("Retrieval completed")
	return result, nil
}

package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"

	"ytConvertBot/utils"
)

// RetrievalResult is a file on disk ready for delivery.
type RetrievalResult struct {
	FilePath string
	ByteSize int64
}

// FileManager owns the files in the download directory once a retrieval
// has produced them.
type FileManager struct {
	maxFileSize int64
}

func NewFileManager(maxFileSize int64) *FileManager {
	return &FileManager{maxFileSize: maxFileSize}
}

// CheckSizeLimit reports whether the result fits the transport's upload limit.
// A file of exactly the limit is accepted.
func (m *FileManager) CheckSizeLimit(result RetrievalResult) bool {
	ok := result.ByteSize <= m.maxFileSize
	if !ok {
		log.WithFields(log.Fields{
			"path":  result.FilePath,
			"size":  utils.FormatFileSize(result.ByteSize),
			"limit": utils.FormatFileSize(m.maxFileSize),
		}).Warn("File exceeds upload limit")
	}
	return ok
}

// SizeError describes a result rejected by CheckSizeLimit.
func (m *FileManager) SizeError(result RetrievalResult) *SizeExceededError {
	return &SizeExceededError{
		Path:  result.FilePath,
		Size:  result.ByteSize,
		Limit: m.maxFileSize,
	}
}

// Delete removes path. It is safe to call more than once; it reports false
// when nothing was removed.
func (m *FileManager) Delete(path string) bool {
	if path == "" {
		return false
	}

	logger := log.WithField("path", path)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("File already gone")
		} else {
			logger.WithError(err).Warn("Failed to delete file")
		}
		return false
	}

	logger.Debug("File deleted")
	return true
}

// Sweep deletes regular files in folder last modified strictly before
// now-maxAge and returns how many were deleted.
func (m *FileManager) Sweep(folder string, maxAge time.Duration) int {
	logger := log.WithField("dir", folder)

	entries, err := os.ReadDir(folder)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.WithError(err).Warn("Failed to read folder for sweep")
		}
		return 0
	}

	cutoff := time.Now().Add(-maxAge)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logger.WithError(err).WithField("file", entry.Name()).Warn("Failed to stat file")
			continue
		}
		if !info.Mode().IsRegular() || !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.WithError(err).WithField("path", path).Warn("Failed to delete stale file")
			continue
		}
		deleted++
	}

	if deleted > 0 {
		logger.WithField("deleted", deleted).Info("Swept stale files")
	}
	return deleted
}

// RunSweeper sweeps folder once at start and then every interval until ctx
// is done.
func (m *FileManager) RunSweeper(ctx context.Context, folder string, interval, maxAge time.Duration) {
	if interval <= 0 {
		log.Info("Periodic sweep disabled")
		return
	}

	m.Sweep(folder, maxAge)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(folder, maxAge)
		}
	}
}

package services

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
)

// partialSuffixes are leftovers of interrupted or in-flight engine runs.
var partialSuffixes = []string{".part", ".ytdl", ".temp"}

// resolveOutputFile finds the file a finished engine run produced.
// The reported path is tried first, then the same path with the expected
// extension, then the newest file in dir. Files named after videoID win
// over the rest of the shared directory in the last step.
func resolveOutputFile(dir, reported, expectedExt, videoID string) (string, bool) {
	logger := log.WithFields(log.Fields{
		"reported": reported,
		"dir":      dir,
	})

	if reported != "" {
		if isRegularFile(reported) {
			logger.Debug("Output found at reported path")
			return reported, true
		}
		logger.Debug("Reported path does not exist")

		if expectedExt != "" {
			swapped := swapExt(reported, expectedExt)
			if swapped != reported && isRegularFile(swapped) {
				logger.WithField("path", swapped).Info("Output found after extension swap")
				return swapped, true
			}
			logger.WithField("path", swapped).Debug("Swapped path does not exist")
		}
	}

	if newest, ok := newestFile(dir, videoID); ok {
		logger.WithField("path", newest).Warn("Falling back to newest file in download directory")
		return newest, true
	}

	logger.Warn("No output file found")
	return "", false
}

func swapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + strings.TrimPrefix(ext, ".")
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isPartial(name string) bool {
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// newestFile returns the most recently changed regular file in dir.
// When videoID is set, a file carrying it in its name is preferred over any
// newer file that does not.
func newestFile(dir, videoID string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.WithError(err).WithField("dir", dir).Warn("Failed to read download directory")
		return "", false
	}

	var newest, newestOwn candidate
	for _, entry := range entries {
		if entry.IsDir() || isPartial(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		c := candidate{path: filepath.Join(dir, entry.Name()), modTime: info.ModTime()}
		newest.offer(c)
		if videoID != "" && strings.Contains(entry.Name(), videoID) {
			newestOwn.offer(c)
		}
	}

	if newestOwn.path != "" {
		return newestOwn.path, true
	}
	return newest.path, newest.path != ""
}

type candidate struct {
	path    string
	modTime time.Time
}

func (c *candidate) offer(other candidate) {
	if c.path == "" || other.modTime.After(c.modTime) {
		*c = other
	}
}

// removePartials deletes the in-flight leftovers of a failed run for videoID
// and returns how many were removed.
func removePartials(dir, videoID string) int {
	if videoID == "" {
		return 0
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isPartial(name) || !strings.Contains(name, videoID) {
			continue
		}

		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			log.WithError(err).WithField("path", path).Warn("Failed to remove partial download")
			continue
		}
		removed++
	}

	if removed > 0 {
		log.WithFields(log.Fields{
			"dir":      dir,
			"video_id": videoID,
			"removed":  removed,
		}).Debug("Removed partial downloads")
	}
	return removed
}

package utils

import (
	"fmt"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Truncate cuts s to at most max runes without splitting a character.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	return string(runes[:max])
}

// FormatFileSize renders a byte count for chat messages, e.g. "1.5 GiB".
func FormatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// FormatDuration renders seconds the way yt-dlp's duration_string does:
// "45", "3:07", "1:02:03".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%d:%02d", minutes, secs)
	default:
		return fmt.Sprintf("%d", secs)
	}
}

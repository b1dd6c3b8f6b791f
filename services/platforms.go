package services

import (
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// URLShape names which accepted link form matched.
type URLShape string

const (
	ShapeWatch     URLShape = "watch"
	ShapeShortLink URLShape = "short_link"
	ShapeShorts    URLShape = "shorts"
	ShapeEmbed     URLShape = "embed"
	ShapeBare      URLShape = "bare_domain"
	ShapeUnknown   URLShape = "unknown"
)

const hostPrefix = `^(?i)(https?://)?(www\.|m\.|music\.)?`

// Checked in order; the bare-domain pattern is the catch-all and stays last.
var urlShapes = []struct {
	shape   URLShape
	pattern *regexp.Regexp
}{
	{ShapeWatch, regexp.MustCompile(hostPrefix + `youtube\.com/watch\?(\S*&)?v=[\w-]+\S*$`)},
	{ShapeShortLink, regexp.MustCompile(hostPrefix + `youtu\.be/[\w-]+\S*$`)},
	{ShapeShorts, regexp.MustCompile(hostPrefix + `youtube\.com/shorts/[\w-]+\S*$`)},
	{ShapeEmbed, regexp.MustCompile(hostPrefix + `(youtube|youtube-nocookie)\.com/embed/[\w-]+\S*$`)},
	{ShapeBare, regexp.MustCompile(hostPrefix + `(youtube\.com|youtu\.be|youtube-nocookie\.com)(/\S*)?$`)},
}

// ClassifyURL reports which accepted shape the trimmed input matches.
func ClassifyURL(url string) (URLShape, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return ShapeUnknown, false
	}

	for _, candidate := range urlShapes {
		if candidate.pattern.MatchString(url) {
			return candidate.shape, true
		}
	}

	return ShapeUnknown, false
}

// IsSupported reports whether url is a link to the supported video site.
func IsSupported(url string) bool {
	_, ok := ClassifyURL(url)
	return ok
}

// ExtractVideoID returns the video ID embedded in url, or "" if there is none.
func ExtractVideoID(url string) string {
	id, err := youtube.ExtractVideoID(strings.TrimSpace(url))
	if err != nil {
		return ""
	}
	return id
}

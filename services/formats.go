package services

import (
	"fmt"
	"strings"
)

// FormatKind is the family of output the user picked from the menu.
type FormatKind string

const (
	KindContainerAV     FormatKind = "mp4"
	KindAudioCompressed FormatKind = "mp3"
	KindAudioRaw        FormatKind = "audio"
	KindVideoOnly       FormatKind = "video"
)

// IsAudio reports whether files of this kind are delivered as audio.
func (k FormatKind) IsAudio() bool {
	return k == KindAudioCompressed || k == KindAudioRaw
}

// DownloadRequest is one user selection; a value type, never mutated.
type DownloadRequest struct {
	SourceURL string
	Kind      FormatKind
	Quality   string
}

func NewDownloadRequest(sourceURL string, kind FormatKind, quality string) DownloadRequest {
	return DownloadRequest{
		SourceURL: sourceURL,
		Kind:      kind,
		Quality:   quality,
	}
}

// Label is the human readable form used in captions, e.g. "MP4 720".
func (r DownloadRequest) Label() string {
	return strings.TrimSpace(strings.ToUpper(string(r.Kind)) + " " + r.Quality)
}

// ExtractionSpec is the declarative selection handed to the engine.
type ExtractionSpec struct {
	Format            string
	MergeOutputFormat string
	ExtractAudio      bool
	AudioFormat       string
	AudioQuality      string
	// ExpectedExt is the extension the final file should carry after
	// post-processing; empty when it cannot be known in advance.
	ExpectedExt string
	// Fallback marks the generic "best" selection used for unmapped input.
	Fallback bool
}

const bestOverall = "best"

var (
	rawAudioSubtypes = map[string]bool{"m4a": true, "webm": true}
	resolutions      = []string{"360", "480", "720", "1080", "1440", "2160"}
	bitrates         = []string{"128", "192", "320"}
)

// BuildRequest maps a (kind, quality) selection onto an ExtractionSpec.
// Unrecognised combinations yield the "best" selection, never an error.
func BuildRequest(kind FormatKind, quality string) ExtractionSpec {
	quality = strings.ToLower(strings.TrimSpace(quality))

	switch kind {
	case KindContainerAV:
		if isNumeric(quality) {
			return ExtractionSpec{
				Format: fmt.Sprintf(
					"bestvideo[height<=%[1]s][ext=mp4]+bestaudio[ext=m4a]/best[height<=%[1]s][ext=mp4]/best",
					quality,
				),
				MergeOutputFormat: "mp4",
				ExpectedExt:       "mp4",
			}
		}
	case KindAudioCompressed:
		if isNumeric(quality) {
			return ExtractionSpec{
				Format:       "bestaudio/best",
				ExtractAudio: true,
				AudioFormat:  "mp3",
				AudioQuality: quality,
				ExpectedExt:  "mp3",
			}
		}
	case KindAudioRaw:
		if rawAudioSubtypes[quality] {
			return ExtractionSpec{
				Format:      fmt.Sprintf("bestaudio[ext=%s]/bestaudio/best", quality),
				ExpectedExt: quality,
			}
		}
	case KindVideoOnly:
		return ExtractionSpec{
			Format:      "bestvideo[ext=mp4]/bestvideo/best",
			ExpectedExt: "mp4",
		}
	}

	return ExtractionSpec{
		Format:   bestOverall,
		Fallback: true,
	}
}

// ParseChoice splits menu callback data ("mp4_720", "video_only") into a kind
// and quality. Only structurally broken data is rejected; unknown kinds are
// passed through and end up on the fallback selection.
func ParseChoice(data string) (FormatKind, string, error) {
	kind, quality, ok := strings.Cut(strings.TrimSpace(data), "_")
	if !ok || kind == "" || quality == "" {
		return "", "", &ValidationError{Input: data, Cause: fmt.Errorf("malformed format choice")}
	}

	return FormatKind(strings.ToLower(kind)), strings.ToLower(quality), nil
}

// MenuChoice is one entry of the format menu.
type MenuChoice struct {
	Kind    FormatKind
	Quality string
}

// Data is the callback payload for the choice; ParseChoice is its inverse.
func (c MenuChoice) Data() string {
	return string(c.Kind) + "_" + c.Quality
}

// MenuChoices lists the menu rows in display order.
func MenuChoices() [][]MenuChoice {
	var rows [][]MenuChoice

	for i := 0; i < len(resolutions); i += 2 {
		rows = append(rows, []MenuChoice{
			{KindContainerAV, resolutions[i]},
			{KindContainerAV, resolutions[i+1]},
		})
	}

	var mp3Row []MenuChoice
	for _, bitrate := range bitrates {
		mp3Row = append(mp3Row, MenuChoice{KindAudioCompressed, bitrate})
	}
	rows = append(rows, mp3Row)

	rows = append(rows,
		[]MenuChoice{{KindAudioRaw, "m4a"}, {KindAudioRaw, "webm"}},
		[]MenuChoice{{KindVideoOnly, "only"}},
	)

	return rows
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

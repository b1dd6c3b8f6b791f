package services

import (
	"context"
	"net/http"

	"github.com/kkdai/youtube/v2"

	"ytConvertBot/utils"
)

// VideoLookup is the part of the kkdai client NativeMetadata needs.
type VideoLookup interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
}

var _ VideoLookup = (*youtube.Client)(nil)

// NativeMetadata reads metadata straight from the video site's player API
// without starting yt-dlp.
type NativeMetadata struct {
	client VideoLookup
}

func NewNativeMetadata(httpClient *http.Client) *NativeMetadata {
	return &NativeMetadata{
		client: &youtube.Client{HTTPClient: httpClient},
	}
}

func newNativeMetadataWithLookup(client VideoLookup) *NativeMetadata {
	return &NativeMetadata{client: client}
}

func (p *NativeMetadata) Metadata(ctx context.Context, url string) (VideoMetadata, error) {
	video, err := p.client.GetVideoContext(ctx, url)
	if err != nil {
		return VideoMetadata{}, err
	}

	seconds := int(video.Duration.Seconds())
	meta := VideoMetadata{
		Title:           video.Title,
		DurationSeconds: &seconds,
		DurationDisplay: utils.FormatDuration(seconds),
		VideoID:         video.ID,
	}
	if meta.Title == "" {
		meta.Title = unknownTitle
	}
	if video.Author != "" {
		author := video.Author
		meta.Uploader = &author
	}
	return meta, nil
}

package services_test

import (
	"errors"

	"ytConvertBot/services"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Format mapping", func() {
	Describe("BuildRequest", func() {
		It("caps video height and merges into mp4", func() {
			spec := services.BuildRequest(services.KindContainerAV, "720")

			Expect(spec.Format).To(Equal("bestvideo[height<=720][ext=mp4]+bestaudio[ext=m4a]/best[height<=720][ext=mp4]/best"))
			Expect(spec.MergeOutputFormat).To(Equal("mp4"))
			Expect(spec.ExtractAudio).To(BeFalse())
			Expect(spec.ExpectedExt).To(Equal("mp4"))
			Expect(spec.Fallback).To(BeFalse())
		})

		It("extracts mp3 at the chosen bitrate", func() {
			spec := services.BuildRequest(services.KindAudioCompressed, "192")

			Expect(spec.Format).To(Equal("bestaudio/best"))
			Expect(spec.ExtractAudio).To(BeTrue())
			Expect(spec.AudioFormat).To(Equal("mp3"))
			Expect(spec.AudioQuality).To(Equal("192"))
			Expect(spec.ExpectedExt).To(Equal("mp3"))
		})

		It("prefers the raw audio container", func() {
			spec := services.BuildRequest(services.KindAudioRaw, "m4a")

			Expect(spec.Format).To(Equal("bestaudio[ext=m4a]/bestaudio/best"))
			Expect(spec.ExtractAudio).To(BeFalse())
			Expect(spec.ExpectedExt).To(Equal("m4a"))
		})

		It("selects a video-only stream", func() {
			spec := services.BuildRequest(services.KindVideoOnly, "only")

			Expect(spec.Format).To(Equal("bestvideo[ext=mp4]/bestvideo/best"))
			Expect(spec.ExpectedExt).To(Equal("mp4"))
		})

		It("is deterministic", func() {
			Expect(services.BuildRequest(services.KindContainerAV, "1080")).
				To(Equal(services.BuildRequest(services.KindContainerAV, "1080")))
		})

		Context("when the choice is not recognised", func() {
			It("falls back to the best overall selection", func() {
				for _, spec := range []services.ExtractionSpec{
					services.BuildRequest("flac", "lossless"),
					services.BuildRequest(services.KindContainerAV, "hd"),
					services.BuildRequest(services.KindAudioRaw, "ogg"),
				} {
					Expect(spec.Format).To(Equal("best"))
					Expect(spec.Fallback).To(BeTrue())
					Expect(spec.ExtractAudio).To(BeFalse())
				}
			})
		})
	})

	Describe("ParseChoice", func() {
		It("splits kind and quality", func() {
			kind, quality, err := services.ParseChoice("mp4_1080")
			Expect(err).NotTo(HaveOccurred())
			Expect(kind).To(Equal(services.KindContainerAV))
			Expect(quality).To(Equal("1080"))
		})

		It("accepts the video-only entry", func() {
			kind, quality, err := services.ParseChoice("video_only")
			Expect(err).NotTo(HaveOccurred())
			Expect(kind).To(Equal(services.KindVideoOnly))
			Expect(quality).To(Equal("only"))
		})

		It("passes unknown kinds through", func() {
			kind, _, err := services.ParseChoice("flac_lossless")
			Expect(err).NotTo(HaveOccurred())
			Expect(kind).To(Equal(services.FormatKind("flac")))
		})

		It("rejects malformed data", func() {
			for _, data := range []string{"", "mp4", "_720", "mp4_"} {
				_, _, err := services.ParseChoice(data)

				var validationErr *services.ValidationError
				Expect(errors.As(err, &validationErr)).To(BeTrue(), data)
			}
		})
	})

	Describe("MenuChoices", func() {
		It("round-trips every entry through ParseChoice without falling back", func() {
			count := 0
			for _, row := range services.MenuChoices() {
				for _, choice := range row {
					kind, quality, err := services.ParseChoice(choice.Data())
					Expect(err).NotTo(HaveOccurred())
					Expect(services.BuildRequest(kind, quality).Fallback).To(BeFalse(), choice.Data())
					count++
				}
			}
			Expect(count).To(Equal(12))
		})
	})

	Describe("DownloadRequest", func() {
		It("labels the selection", func() {
			req := services.NewDownloadRequest("https://youtu.be/abc", services.KindAudioCompressed, "320")
			Expect(req.Label()).To(Equal("MP3 320"))
		})
	})
})

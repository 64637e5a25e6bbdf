package vikinglink_test

import (
	"testing"

	"github.com/streamplay/vikinglink"
	"github.com/stretchr/testify/assert"
)

func TestFormatFileInfo(t *testing.T) {
	t.Parallel()

	t.Run("lists links with source and inferred attributes", func(t *testing.T) {
		t.Parallel()

		info := &vikinglink.VikingFileInfo{
			FileID:   "abc123",
			FileName: "movie.mkv",
			PageURL:  "https://vikingfile.com/f/abc123",
			DownloadLinks: []vikinglink.DownloadLink{
				{URL: "https://vikingfile.com/d/abc", Source: vikinglink.SourceViking},
				{URL: "https://cdn.example/movie_1080p.mp4", Source: vikinglink.SourceDirect, Quality: "1080p", FileType: "mp4"},
			},
		}

		out := vikinglink.FormatFileInfo(info)

		assert.Contains(t, out, "File ID:  abc123")
		assert.Contains(t, out, "Name:     movie.mkv")
		assert.Contains(t, out, "Links (2):")
		assert.Contains(t, out, "1. https://vikingfile.com/d/abc [viking]")
		assert.Contains(t, out, "2. https://cdn.example/movie_1080p.mp4 [direct, 1080p, mp4]")
	})

	t.Run("omits empty metadata fields", func(t *testing.T) {
		t.Parallel()

		info := &vikinglink.VikingFileInfo{FileID: "abc123", PageURL: "https://vikingfile.com/f/abc123"}
		out := vikinglink.FormatFileInfo(info)

		assert.NotContains(t, out, "Name:")
		assert.NotContains(t, out, "Size:")
		assert.Contains(t, out, "No download links found.")
	})
}

func TestFormatOxxFile(t *testing.T) {
	t.Parallel()

	t.Run("renders every hosting link", func(t *testing.T) {
		t.Parallel()

		f := &vikinglink.OxxFile{
			ID:         "rec-1",
			FileName:   "movie.mkv",
			Size:       1536,
			VikingLink: strptr("https://vikingfile.com/f/x"),
			DriveLinks: []vikinglink.DriveLink{{WebViewLink: "https://drive.google.com/file/d/1"}},
		}

		out := vikinglink.FormatOxxFile(f)

		assert.Contains(t, out, "ID:       rec-1")
		assert.Contains(t, out, "Size:     1.5 KB")
		assert.Contains(t, out, "viking")
		assert.Contains(t, out, "drive_1")
	})

	t.Run("reports records without links", func(t *testing.T) {
		t.Parallel()

		out := vikinglink.FormatOxxFile(&vikinglink.OxxFile{ID: "rec-2"})
		assert.Contains(t, out, "No hosting links.")
	})
}

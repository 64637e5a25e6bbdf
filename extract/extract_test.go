package extract_test

import (
	"context"
	"sync"
	"testing"

	"github.com/streamplay/vikinglink"
	"github.com/streamplay/vikinglink/extract"
	"github.com/streamplay/vikinglink/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughLinks returns a LinkExtractor that yields the given links
// for any page.
func passthroughLinks(links ...vikinglink.DownloadLink) *mock.LinkExtractor {
	return &mock.LinkExtractor{
		ExtractLinksFn: func(html string, pageURL string) ([]vikinglink.DownloadLink, error) {
			return links, nil
		},
	}
}

func TestService_Extract(t *testing.T) {
	t.Parallel()

	t.Run("assembles a full result", func(t *testing.T) {
		t.Parallel()

		link := vikinglink.DownloadLink{URL: "https://vikingfile.com/d/abc", Source: vikinglink.SourceViking}
		svc := &extract.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html>page</html>", nil
				},
			},
			Links: passthroughLinks(link),
			Metadata: &mock.MetadataExtractor{
				ExtractMetadataFn: func(html string) (*vikinglink.PageMetadata, error) {
					return &vikinglink.PageMetadata{FileName: "movie.mkv", FileSize: "1.4 GB", UploadDate: "2024-01-15"}, nil
				},
			},
		}

		result, err := svc.Extract(context.Background(), "https://vikingfile.com/f/abc123")
		require.NoError(t, err)
		require.False(t, result.Partial())

		info := result.Info
		assert.Equal(t, "abc123", info.FileID)
		assert.Equal(t, "https://vikingfile.com/f/abc123", info.PageURL)
		assert.Equal(t, "movie.mkv", info.FileName)
		assert.Equal(t, "1.4 GB", info.FileSize)
		assert.Equal(t, "2024-01-15", info.UploadDate)
		assert.Equal(t, []vikinglink.DownloadLink{link}, info.DownloadLinks)
	})

	t.Run("returns EINVALID when the URL has no identifier", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					t.Fatal("fetch must not be called for unresolvable URLs")
					return "", nil
				},
			},
			Links: passthroughLinks(),
		}

		_, err := svc.Extract(context.Background(), "https://vikingfile.com/about")
		require.Error(t, err)
		assert.Equal(t, vikinglink.EINVALID, vikinglink.ErrorCode(err))
	})

	t.Run("degrades to a partial result on fetch failure", func(t *testing.T) {
		t.Parallel()

		fetchErr := vikinglink.Errorf(vikinglink.EUNAVAILABLE, "connection refused")
		svc := &extract.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", fetchErr
				},
			},
			Links: &mock.LinkExtractor{
				ExtractLinksFn: func(html string, pageURL string) ([]vikinglink.DownloadLink, error) {
					t.Fatal("extraction must not run without a document")
					return nil, nil
				},
			},
		}

		result, err := svc.Extract(context.Background(), "https://vikingfile.com/f/abc123")
		require.NoError(t, err)
		require.True(t, result.Partial())
		assert.Equal(t, fetchErr, result.FetchErr)

		info := result.Info
		assert.Equal(t, "abc123", info.FileID)
		assert.Equal(t, "https://vikingfile.com/f/abc123", info.PageURL)
		assert.Empty(t, info.FileName)

		// Empty, not nil, so links encode as [] rather than null.
		require.NotNil(t, info.DownloadLinks)
		assert.Empty(t, info.DownloadLinks)
	})

	t.Run("encodes discovered-nothing as an empty link list", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "x", nil },
			},
			Links: &mock.LinkExtractor{
				ExtractLinksFn: func(html string, pageURL string) ([]vikinglink.DownloadLink, error) {
					return nil, nil
				},
			},
		}

		result, err := svc.Extract(context.Background(), "https://vikingfile.com/f/abc123")
		require.NoError(t, err)
		require.NotNil(t, result.Info.DownloadLinks)
		assert.Empty(t, result.Info.DownloadLinks)
	})

	t.Run("works without a metadata extractor", func(t *testing.T) {
		t.Parallel()

		svc := &extract.Service{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) { return "x", nil },
			},
			Links: passthroughLinks(),
		}

		result, err := svc.Extract(context.Background(), "https://vikingfile.com/f/abc123")
		require.NoError(t, err)
		assert.Empty(t, result.Info.FileName)
	})
}

func TestService_ExtractAll(t *testing.T) {
	t.Parallel()

	newService := func(fetch func(ctx context.Context, url string) (string, error)) *extract.Service {
		return &extract.Service{
			Fetcher: &mock.Fetcher{FetchFn: fetch},
			Links:   passthroughLinks(),
		}
	}

	t.Run("returns items in input order", func(t *testing.T) {
		t.Parallel()

		svc := newService(func(ctx context.Context, url string) (string, error) {
			return "page", nil
		})
		svc.Concurrency = 3

		urls := []string{
			"https://vikingfile.com/f/a",
			"https://vikingfile.com/f/b",
			"https://vikingfile.com/f/c",
		}

		items, err := svc.ExtractAll(context.Background(), urls, nil)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "a", items[0].Result.Info.FileID)
		assert.Equal(t, "b", items[1].Result.Info.FileID)
		assert.Equal(t, "c", items[2].Result.Info.FileID)
	})

	t.Run("one bad URL does not abort the batch", func(t *testing.T) {
		t.Parallel()

		svc := newService(func(ctx context.Context, url string) (string, error) {
			return "page", nil
		})

		urls := []string{
			"https://vikingfile.com/f/a",
			"https://vikingfile.com/about",
			"https://vikingfile.com/f/c",
		}

		items, err := svc.ExtractAll(context.Background(), urls, nil)
		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.NoError(t, items[0].Err)
		require.Error(t, items[1].Err)
		assert.Equal(t, vikinglink.EINVALID, vikinglink.ErrorCode(items[1].Err))
		assert.NoError(t, items[2].Err)
	})

	t.Run("fetch failures stay partial results", func(t *testing.T) {
		t.Parallel()

		svc := newService(func(ctx context.Context, url string) (string, error) {
			return "", vikinglink.Errorf(vikinglink.EUNAVAILABLE, "down")
		})

		items, err := svc.ExtractAll(context.Background(), []string{"https://vikingfile.com/f/a"}, nil)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.NoError(t, items[0].Err)
		assert.True(t, items[0].Result.Partial())
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		svc := newService(func(ctx context.Context, url string) (string, error) {
			return "page", nil
		})

		var mu sync.Mutex
		var events []extract.ProgressEvent
		progress := func(event extract.ProgressEvent) {
			mu.Lock()
			events = append(events, event)
			mu.Unlock()
		}

		urls := []string{"https://vikingfile.com/f/a", "https://vikingfile.com/about"}
		_, err := svc.ExtractAll(context.Background(), urls, progress)
		require.NoError(t, err)

		require.Len(t, events, 4)
		assert.Equal(t, extract.ProgressStarted, events[0].Type)
		assert.Equal(t, extract.ProgressFinished, events[3].Type)

		var completed, failed int
		for _, event := range events[1:3] {
			switch event.Type {
			case extract.ProgressCompleted:
				completed++
			case extract.ProgressFailed:
				failed++
			}
		}
		assert.Equal(t, 1, completed)
		assert.Equal(t, 1, failed)
	})

	t.Run("waits on the rate limiter per domain", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		svc := newService(func(ctx context.Context, url string) (string, error) {
			return "page", nil
		})
		svc.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				mu.Lock()
				domains = append(domains, domain)
				mu.Unlock()
				return nil
			},
		}

		urls := []string{"https://vikingfile.com/f/a", "https://vik1ngfile.site/f/b"}
		_, err := svc.ExtractAll(context.Background(), urls, nil)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"vikingfile.com", "vik1ngfile.site"}, domains)
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		svc := newService(func(ctx context.Context, url string) (string, error) {
			return "page", nil
		})

		items, err := svc.ExtractAll(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

// Package extract provides extraction orchestration. It coordinates
// identifier resolution, page fetching, metadata extraction and link
// discovery into per-page results, and fans batches of URLs out over a
// worker pool.
package extract

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/streamplay/vikinglink"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker count for batch extraction when none
// is configured.
const DefaultConcurrency = 5

// Service orchestrates extraction of viking file pages.
type Service struct {
	Fetcher  vikinglink.Fetcher
	Links    vikinglink.LinkExtractor
	Metadata vikinglink.MetadataExtractor

	// RateLimiter, when set, throttles fetches per domain during batch
	// extraction.
	RateLimiter vikinglink.DomainLimiter

	// Concurrency caps the batch worker pool. Defaults to
	// DefaultConcurrency when zero.
	Concurrency int
}

// Result carries the best-effort extraction outcome for one page. A
// failed fetch does not fail the extraction: Info still carries the
// resolved identifier and page URL, and FetchErr records the warning.
type Result struct {
	Info     *vikinglink.VikingFileInfo
	FetchErr error
}

// Partial reports whether the result was degraded by a fetch failure.
func (r *Result) Partial() bool {
	return r.FetchErr != nil
}

// Extract resolves the page URL to a file identifier, fetches the page
// and runs metadata and link extraction over it. An unresolvable URL is
// fatal (EINVALID); a fetch failure degrades to a partial result.
func (s *Service) Extract(ctx context.Context, pageURL string) (*Result, error) {
	fileID, ok := vikinglink.ParseFileID(pageURL)
	if !ok {
		return nil, vikinglink.Errorf(vikinglink.EINVALID, "no file identifier in %q", pageURL)
	}

	// DownloadLinks starts empty rather than nil so that JSON output
	// renders [] even when the fetch fails or nothing is discovered.
	info := &vikinglink.VikingFileInfo{
		FileID:        fileID,
		PageURL:       pageURL,
		DownloadLinks: []vikinglink.DownloadLink{},
	}
	result := &Result{Info: info}

	html, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		result.FetchErr = err
		return result, nil
	}

	if s.Metadata != nil {
		meta, err := s.Metadata.ExtractMetadata(html)
		if err != nil {
			return nil, err
		}
		info.FileName = meta.FileName
		info.FileSize = meta.FileSize
		info.UploadDate = meta.UploadDate
	}

	links, err := s.Links.ExtractLinks(html, pageURL)
	if err != nil {
		return nil, err
	}
	if links != nil {
		info.DownloadLinks = links
	}

	return result, nil
}

// BatchItem is the outcome of one URL in a batch extraction.
type BatchItem struct {
	URL    string
	Result *Result
	Err    error
}

// ProgressEvent reports progress during a batch extraction.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ExtractAll extracts every URL using a bounded worker pool and returns
// items in input order. A failure on one URL is recorded in its item
// and never aborts the rest of the batch; ExtractAll itself only fails
// on context cancellation.
func (s *Service) ExtractAll(ctx context.Context, urls []string, progress ProgressFunc) ([]BatchItem, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	items := make([]BatchItem, total)
	var completed atomic.Int64

	// Progress callbacks are serialized so callers need no locking.
	var progressMu sync.Mutex
	report := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		progressMu.Lock()
		progress(event)
		progressMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, pageURL := range urls {
		g.Go(func() error {
			item := BatchItem{URL: pageURL}

			if s.RateLimiter != nil {
				if err := s.RateLimiter.Wait(gctx, domainOf(pageURL)); err != nil {
					return err
				}
			}

			item.Result, item.Err = s.Extract(gctx, pageURL)
			items[i] = item

			event := ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Add(1)),
				Total:     total,
				URL:       pageURL,
			}
			if item.Err != nil {
				event.Type = ProgressFailed
				event.Error = item.Err
			}
			report(event)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return items, nil
}

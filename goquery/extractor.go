// Package goquery provides goquery-based implementations of the link
// extraction engine and the page metadata extractor.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/streamplay/vikinglink"
)

// DefaultBaseURL is the base origin used to resolve relative link targets
// when none can be derived from the page URL.
const DefaultBaseURL = "https://vikingfile.com"

// Inline-scan patterns, applied to the raw page markup in this order.
// The permissive [^\s] classes can swallow closing markup, so every match
// is stripped of trailing quote and angle-bracket characters afterwards.
var inlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://[^\s]+\.(?:mp4|mkv|avi|mov|wmv|flv|webm|m3u8)(?:\?[^\s]*)?`),
	regexp.MustCompile(`https?://[^\s]+/download/[^\s]*`),
	regexp.MustCompile(`https?://[^\s]+/dl/[^\s]*`),
}

// Compile-time interface verification.
var _ vikinglink.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor discovers download links on viking file pages by running
// three strategies in fixed order: anchors whose text advertises a
// download, anchors pointing at known hosting domains, and an inline
// pattern scan over the raw markup. Results are deduplicated on the
// exact URL string; the first strategy to discover a URL decides its
// metadata.
//
// The extractor holds no state across calls and is safe for concurrent
// use.
type LinkExtractor struct {
	baseURL string
}

// LinkExtractorOption configures a LinkExtractor.
type LinkExtractorOption func(*LinkExtractor)

// WithBaseURL overrides the base origin used to resolve relative link
// targets. When unset the origin is derived from the page URL, falling
// back to DefaultBaseURL.
func WithBaseURL(base string) LinkExtractorOption {
	return func(e *LinkExtractor) {
		e.baseURL = base
	}
}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor(opts ...LinkExtractorOption) *LinkExtractor {
	e := &LinkExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractLinks parses the page HTML and returns discovered links in
// discovery order. Malformed or empty documents yield fewer results,
// never an error.
func (e *LinkExtractor) ExtractLinks(html string, pageURL string) ([]vikinglink.DownloadLink, error) {
	base := e.baseURL
	if base == "" {
		base = originOf(pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, vikinglink.Errorf(vikinglink.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []vikinglink.DownloadLink

	add := func(link vikinglink.DownloadLink) {
		if link.URL == "" || seen[link.URL] {
			return
		}
		seen[link.URL] = true
		links = append(links, link)
	}

	// Strategy 1: anchors whose visible text advertises a download.
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if !strings.Contains(strings.ToLower(text), "download") {
			return
		}
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		add(vikinglink.DownloadLink{
			URL:     vikinglink.NormalizeLink(href, base),
			Quality: vikinglink.InferQuality(text),
			Source:  vikinglink.SourceViking,
		})
	})

	// Strategy 2: anchors pointing at known hosting domains. The raw
	// href is recorded without normalization; these targets are always
	// absolute in practice.
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		host, ok := vikinglink.MatchKnownHost(href)
		if !ok {
			return
		}
		add(vikinglink.DownloadLink{
			URL:    href,
			Source: vikinglink.HostSource(host),
		})
	})

	// Strategy 3: inline scan over the raw markup. This deliberately
	// bypasses the parsed tree so that URLs inside scripts or unmodeled
	// attributes are still discovered.
	for _, re := range inlinePatterns {
		for _, match := range re.FindAllString(html, -1) {
			match = strings.TrimRight(match, `"'<>`)
			add(vikinglink.DownloadLink{
				URL:      match,
				Quality:  vikinglink.InferQuality(match),
				Source:   vikinglink.SourceDirect,
				FileType: vikinglink.InferFileType(match),
			})
		}
	}

	return links, nil
}

// originOf derives the scheme://host origin of a URL, falling back to
// DefaultBaseURL when the URL has no usable origin.
func originOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return DefaultBaseURL
	}
	return u.Scheme + "://" + u.Host
}

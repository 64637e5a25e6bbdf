package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/streamplay/vikinglink"
)

// selectorLookup pairs a CSS selector with the attribute to read from the
// first matching element. An empty attribute means the element text.
type selectorLookup struct {
	selector string
	attr     string
}

// Ordered fallbacks for each page attribute. The first lookup producing a
// non-empty trimmed result wins; the markup of these pages is unreliable,
// so each table ends in progressively less specific shapes.
var (
	fileNameLookups = []selectorLookup{
		{selector: "h1.file-name"},
		{selector: ".file-name"},
		{selector: "h1"},
		{selector: `meta[property="og:title"]`, attr: "content"},
		{selector: "title"},
	}

	fileSizeLookups = []selectorLookup{
		{selector: ".file-size"},
		{selector: "span.size"},
		{selector: "td.size"},
	}

	uploadDateLookups = []selectorLookup{
		{selector: ".upload-date"},
		{selector: "time[datetime]", attr: "datetime"},
		{selector: "time"},
	}
)

// Bare-text fallbacks when no labeled element carries the attribute.
var (
	sizeTextRe = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*[KMGT]?B\b`)
	dateTextRe = regexp.MustCompile(`(?i)uploaded:?\s*(?:on\s*)?([0-9]{4}-[0-9]{2}-[0-9]{2})`)
)

// Compile-time interface verification.
var _ vikinglink.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor pulls file name, size and upload date out of viking
// file page HTML using ordered selector fallbacks. Stateless and safe
// for concurrent use.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// ExtractMetadata runs the three fallback lookups over the page. Fields
// no lookup can fill are left empty.
func (e *MetadataExtractor) ExtractMetadata(html string) (*vikinglink.PageMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, vikinglink.Errorf(vikinglink.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := &vikinglink.PageMetadata{
		FileName:   firstMatch(doc, fileNameLookups),
		FileSize:   firstMatch(doc, fileSizeLookups),
		UploadDate: firstMatch(doc, uploadDateLookups),
	}

	pageText := doc.Text()
	if meta.FileSize == "" {
		meta.FileSize = sizeTextRe.FindString(pageText)
	}
	if meta.UploadDate == "" {
		if m := dateTextRe.FindStringSubmatch(pageText); m != nil {
			meta.UploadDate = m[1]
		}
	}

	return meta, nil
}

// firstMatch returns the first non-empty trimmed result of the lookups.
func firstMatch(doc *goquery.Document, lookups []selectorLookup) string {
	for _, l := range lookups {
		sel := doc.Find(l.selector).First()
		if sel.Length() == 0 {
			continue
		}

		var value string
		if l.attr != "" {
			value, _ = sel.Attr(l.attr)
		} else {
			value = sel.Text()
		}

		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

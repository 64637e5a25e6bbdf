package mock

import "github.com/streamplay/vikinglink"

var _ vikinglink.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of vikinglink.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, pageURL string) ([]vikinglink.DownloadLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, pageURL string) ([]vikinglink.DownloadLink, error) {
	return e.ExtractLinksFn(html, pageURL)
}

var _ vikinglink.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of vikinglink.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*vikinglink.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*vikinglink.PageMetadata, error) {
	return e.ExtractMetadataFn(html)
}

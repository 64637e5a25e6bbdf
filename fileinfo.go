package vikinglink

import "regexp"

// VikingFileInfo is the result of extracting a single viking file page.
// One instance is produced per extraction call and is owned by the caller
// afterwards; DownloadLinks preserves discovery order across strategies.
type VikingFileInfo struct {
	FileID        string         `json:"file_id"`
	FileName      string         `json:"file_name,omitempty"`
	FileSize      string         `json:"file_size,omitempty"`
	UploadDate    string         `json:"upload_date,omitempty"`
	DownloadLinks []DownloadLink `json:"download_links"`
	PageURL       string         `json:"page_url"`
}

// fileIDPatterns are tried strictly in order; the first capturing-group
// match wins. Host-qualified patterns come first so that the permissive
// path-only fallbacks cannot shadow them. The path-only fallbacks exist
// because the host rotates mirror domains.
var fileIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`vikingfile\.\w+/f/([a-zA-Z0-9]+)`),
	regexp.MustCompile(`vikingfile\.\w+/file/([a-zA-Z0-9]+)`),
	regexp.MustCompile(`/f/([a-zA-Z0-9]+)`),
	regexp.MustCompile(`/file/([a-zA-Z0-9]+)`),
}

// ParseFileID extracts the canonical file identifier from a viking file
// page URL. Returns false when the URL matches none of the known shapes;
// absence is not an error at this level.
func ParseFileID(rawURL string) (string, bool) {
	for _, re := range fileIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// PageMetadata holds the page-level attributes of a viking file page.
// Any field may be empty when the page does not expose it.
type PageMetadata struct {
	FileName   string
	FileSize   string
	UploadDate string
}

// MetadataExtractor pulls file name, size and upload date out of viking
// file page HTML using ordered selector fallbacks. A field that no
// fallback can fill is left empty; that is normal control flow, not an
// error.
type MetadataExtractor interface {
	ExtractMetadata(html string) (*PageMetadata, error)
}

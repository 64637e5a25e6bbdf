package vikinglink

import (
	"regexp"
	"strings"
)

// Link sources assigned by the extraction engine. Strategy 1 records
// SourceViking, strategy 3 records SourceDirect; strategy 2 records the
// matched host name (see HostSource).
const (
	SourceViking = "viking"
	SourceDirect = "direct"
)

// DownloadLink represents a single download link discovered on a viking
// file page. Links are created only by the extraction engine and are not
// modified afterwards; two links are considered the same discovery iff
// their URL strings are identical.
type DownloadLink struct {
	URL      string `json:"url"`
	Quality  string `json:"quality,omitempty"`
	Source   string `json:"source"`
	FileSize string `json:"file_size,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

// KnownHosts lists the hosting-domain substrings recognized by the
// known-host discovery strategy. Order matters: the first entry contained
// in a link target names its source, so the list must not be reordered.
var KnownHosts = []string{
	"drive.google.com",
	"gdtot",
	"hubcloud",
	"filepress",
	"pixeldrain",
	"mediafire",
	"mega.nz",
	"dropbox",
	"streamtape",
	"doodstream",
	"mixdrop",
	"upstream",
}

// MatchKnownHost returns the first KnownHosts entry contained in the
// target, matching case-insensitively. Returns false when the target
// references none of the known hosts.
func MatchKnownHost(target string) (string, bool) {
	lower := strings.ToLower(target)
	for _, host := range KnownHosts {
		if strings.Contains(lower, host) {
			return host, true
		}
	}
	return "", false
}

// HostSource converts a known host substring into its source label by
// stripping a trailing ".com" or ".nz" suffix: "drive.google.com" becomes
// "drive.google", "mega.nz" becomes "mega".
func HostSource(host string) string {
	host = strings.TrimSuffix(host, ".com")
	host = strings.TrimSuffix(host, ".nz")
	return host
}

// schemeRe matches references that already carry a URL scheme.
var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// NormalizeLink resolves a reference against a base origin. References
// that already carry a scheme are returned unchanged; rooted references
// are appended to the base origin; anything else is treated as a relative
// path one level below the base. The function is pure and idempotent for
// any scheme-qualified base.
func NormalizeLink(ref, base string) string {
	if schemeRe.MatchString(ref) {
		return ref
	}
	base = strings.TrimRight(base, "/")
	if strings.HasPrefix(ref, "/") {
		return base + ref
	}
	return base + "/" + ref
}

// LinkExtractor discovers download links in viking file page HTML.
// Implementations run the discovery strategies in a fixed order and
// deduplicate on the exact URL string, earliest discovery winning.
type LinkExtractor interface {
	// ExtractLinks parses the page HTML and returns discovered links in
	// discovery order. pageURL identifies the page the HTML came from and
	// supplies the default base origin for resolving relative targets.
	ExtractLinks(html string, pageURL string) ([]DownloadLink, error)
}

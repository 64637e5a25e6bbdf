package vikinglink

import "regexp"

// qualityRe matches the known quality vocabulary anywhere in free text.
// FHD and UHD are listed before HD so the longer token wins at the same
// offset; the alternation order is otherwise the canonical label order.
var qualityRe = regexp.MustCompile(`(?i)(1080p|720p|480p|360p|4k|2k|fhd|uhd|hd|sd)`)

// fileTypeRe matches a trailing .<extension> segment of a URL, optionally
// followed by a query string.
var fileTypeRe = regexp.MustCompile(`\.([a-zA-Z0-9]+)(?:\?|$)`)

// InferQuality returns the first quality label found in the text, exactly
// as it appears there, or an empty string when the text names none.
func InferQuality(text string) string {
	return qualityRe.FindString(text)
}

// InferFileType returns the file extension a URL ends in, or an empty
// string when the URL has no recognizable extension segment.
func InferFileType(url string) string {
	m := fileTypeRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

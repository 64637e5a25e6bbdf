package vikinglink

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// fileSizeRe matches a human-readable size token such as "1.4 GB" or
// "700MB". The unit is optional; a bare "B" means bytes.
var fileSizeRe = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*([KMGT]?)B?\s*$`)

const (
	kb int64 = 1024
	mb       = kb * 1024
	gb       = mb * 1024
	tb       = gb * 1024
)

// ParseFileSize converts a human-readable size string into a byte count,
// using 1024-based units. Returns false when the string is not a size.
func ParseFileSize(s string) (int64, bool) {
	m := fileSizeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	var unit int64 = 1
	switch strings.ToUpper(m[2]) {
	case "K":
		unit = kb
	case "M":
		unit = mb
	case "G":
		unit = gb
	case "T":
		unit = tb
	}

	return int64(value * float64(unit)), true
}

// FormatFileSize formats a byte count in human-readable form using
// 1024-based units.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes >= tb:
		return fmt.Sprintf("%.1f TB", float64(bytes)/float64(tb))
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

package vikinglink

import (
	"fmt"
	"sort"
	"strings"
)

// FormatFileInfo renders an extraction result for human consumption.
// Empty metadata fields are omitted; links are listed in discovery order
// with their source and any inferred attributes.
func FormatFileInfo(info *VikingFileInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "File ID:  %s\n", info.FileID)
	if info.FileName != "" {
		fmt.Fprintf(&b, "Name:     %s\n", info.FileName)
	}
	if info.FileSize != "" {
		fmt.Fprintf(&b, "Size:     %s\n", info.FileSize)
	}
	if info.UploadDate != "" {
		fmt.Fprintf(&b, "Uploaded: %s\n", info.UploadDate)
	}
	fmt.Fprintf(&b, "Page:     %s\n", info.PageURL)

	if len(info.DownloadLinks) == 0 {
		b.WriteString("No download links found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Links (%d):\n", len(info.DownloadLinks))
	for i, link := range info.DownloadLinks {
		attrs := []string{link.Source}
		if link.Quality != "" {
			attrs = append(attrs, link.Quality)
		}
		if link.FileType != "" {
			attrs = append(attrs, link.FileType)
		}
		fmt.Fprintf(&b, "  %d. %s [%s]\n", i+1, link.URL, strings.Join(attrs, ", "))
	}

	return b.String()
}

// FormatOxxFile renders a stored record with every known hosting link.
// Hosts are listed alphabetically for stable output.
func FormatOxxFile(f *OxxFile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID:       %s\n", f.ID)
	if f.Code != "" {
		fmt.Fprintf(&b, "Code:     %s\n", f.Code)
	}
	if f.FileName != "" {
		fmt.Fprintf(&b, "Name:     %s\n", f.FileName)
	}
	if f.Size > 0 {
		fmt.Fprintf(&b, "Size:     %s\n", FormatFileSize(f.Size))
	}
	if f.Status != "" {
		fmt.Fprintf(&b, "Status:   %s\n", f.Status)
	}

	links := f.AllLinks()
	if len(links) == 0 {
		b.WriteString("No hosting links.\n")
		return b.String()
	}

	hosts := make([]string, 0, len(links))
	for host := range links {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	fmt.Fprintf(&b, "Links (%d):\n", len(hosts))
	for _, host := range hosts {
		fmt.Fprintf(&b, "  %-12s %s\n", host, links[host])
	}

	return b.String()
}

package vikinglink

import (
	"context"
	"fmt"
)

// DriveLink represents a Google Drive link with its hosting metadata.
// A DriveLink has no lifecycle of its own; it is owned by exactly one
// OxxFile.
type DriveLink struct {
	FileID          string `json:"fileId"`
	WebViewLink     string `json:"webViewLink"`
	DriveLabel      string `json:"driveLabel"`
	CredentialIndex int    `json:"credentialIndex"`
	IsLoginDrive    bool   `json:"isLoginDrive"`
	IsDrive2        bool   `json:"isDrive2"`
}

// Metadata holds file attributes and the per-host conversion failure
// state tracked for pixeldrain and viking uploads.
type Metadata struct {
	MimeType                     string `json:"mimeType"`
	FileExtension                string `json:"fileExtension"`
	ModifiedTime                 string `json:"modifiedTime"`
	CreatedTime                  string `json:"createdTime"`
	PixeldrainConversionFailed   bool   `json:"pixeldrainConversionFailed"`
	PixeldrainConversionFailedAt string `json:"pixeldrainConversionFailedAt"`
	PixeldrainConversionError    string `json:"pixeldrainConversionError"`
	VikingConversionFailed       bool   `json:"vikingConversionFailed"`
	VikingConversionFailedAt     string `json:"vikingConversionFailedAt"`
}

// OxxFile aggregates every hosting-service link known for a single file:
// viking, pixeldrain, gdtot, hubcloud, filepress and any number of Google
// Drive links. Optional link fields are nil when the host has no copy;
// when present they must be non-empty.
//
// The JSON keys mirror the upstream payload exactly, including its one
// inconsistency: credential_index is snake_case while everything else is
// camelCase.
type OxxFile struct {
	ID              string      `json:"id"`
	Code            string      `json:"code"`
	FileName        string      `json:"fileName"`
	Size            int64       `json:"size"`
	DriveLinks      []DriveLink `json:"driveLinks"`
	Metadata        Metadata    `json:"metadata"`
	CreatedAt       string      `json:"createdAt"`
	Views           int         `json:"views"`
	Status          string      `json:"status"`
	GdtotLink       *string     `json:"gdtotLink,omitempty"`
	GdtotName       *string     `json:"gdtotName,omitempty"`
	HubcloudLink    string      `json:"hubcloudLink"`
	FilepressLink   string      `json:"filepressLink"`
	VikingLink      *string     `json:"vikingLink,omitempty"`
	PixeldrainLink  *string     `json:"pixeldrainLink,omitempty"`
	CredentialIndex int         `json:"credential_index"`
	Duration        *string     `json:"duration,omitempty"`
	UserName        string      `json:"userName"`
}

// Validate returns an error if the file breaks the record invariants.
func (f *OxxFile) Validate() error {
	for name, link := range map[string]*string{
		"gdtotLink":      f.GdtotLink,
		"vikingLink":     f.VikingLink,
		"pixeldrainLink": f.PixeldrainLink,
	} {
		if link != nil && *link == "" {
			return Errorf(EINVALID, "%s must be non-empty when present", name)
		}
	}
	if f.Size < 0 {
		return Errorf(EINVALID, "file size must not be negative")
	}
	return nil
}

// HasVikingLink reports whether the file carries a usable viking link.
func (f *OxxFile) HasVikingLink() bool {
	return f.VikingLink != nil && *f.VikingLink != ""
}

// IsVikingConversionFailed reports whether the viking conversion for this
// file has failed.
func (f *OxxFile) IsVikingConversionFailed() bool {
	return f.Metadata.VikingConversionFailed
}

// AllLinks returns every available hosting link keyed by service name.
// Drive links get numbered drive_1..n keys in their stored order.
func (f *OxxFile) AllLinks() map[string]string {
	links := make(map[string]string)

	if f.HasVikingLink() {
		links["viking"] = *f.VikingLink
	}
	if f.PixeldrainLink != nil && *f.PixeldrainLink != "" {
		links["pixeldrain"] = *f.PixeldrainLink
	}
	if f.GdtotLink != nil && *f.GdtotLink != "" {
		links["gdtot"] = *f.GdtotLink
	}
	if f.HubcloudLink != "" {
		links["hubcloud"] = f.HubcloudLink
	}
	if f.FilepressLink != "" {
		links["filepress"] = f.FilepressLink
	}

	for i, drive := range f.DriveLinks {
		links[fmt.Sprintf("drive_%d", i+1)] = drive.WebViewLink
	}

	return links
}

// OxxFileService represents a service for managing stored OxxFile records.
type OxxFileService interface {
	// CreateOxxFile creates a new record. An empty ID is assigned one.
	// Returns ECONFLICT if a record with the same ID already exists.
	CreateOxxFile(ctx context.Context, file *OxxFile) error

	// FindOxxFileByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindOxxFileByID(ctx context.Context, id string) (*OxxFile, error)

	// FindOxxFiles retrieves records matching the filter.
	FindOxxFiles(ctx context.Context, filter OxxFileFilter) ([]*OxxFile, error)

	// UpdateOxxFile updates an existing record.
	// Returns ENOTFOUND if the record does not exist.
	UpdateOxxFile(ctx context.Context, id string, upd OxxFileUpdate) (*OxxFile, error)

	// DeleteOxxFile permanently removes a record and its drive links.
	// Returns ENOTFOUND if the record does not exist.
	DeleteOxxFile(ctx context.Context, id string) error
}

// OxxFileFilter represents a filter for FindOxxFiles.
type OxxFileFilter struct {
	ID     *string `json:"id"`
	Code   *string `json:"code"`
	Status *string `json:"status"`

	// HasVikingLink, when set, keeps only records whose viking link is
	// present and non-empty (true) or absent (false).
	HasVikingLink *bool `json:"hasVikingLink"`

	// VikingConversionFailed, when set, filters on the tracked viking
	// conversion failure state.
	VikingConversionFailed *bool `json:"vikingConversionFailed"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// OxxFileUpdate represents the fields that can change on a stored record.
// Nil fields are left untouched.
type OxxFileUpdate struct {
	Status         *string `json:"status"`
	VikingLink     *string `json:"vikingLink"`
	PixeldrainLink *string `json:"pixeldrainLink"`

	VikingConversionFailed   *bool   `json:"vikingConversionFailed"`
	VikingConversionFailedAt *string `json:"vikingConversionFailedAt"`

	PixeldrainConversionFailed   *bool   `json:"pixeldrainConversionFailed"`
	PixeldrainConversionFailedAt *string `json:"pixeldrainConversionFailedAt"`
	PixeldrainConversionError    *string `json:"pixeldrainConversionError"`
}

// VikingStats summarizes viking link coverage over a set of records.
type VikingStats struct {
	TotalFiles               int     `json:"total_files"`
	FilesWithVikingLink      int     `json:"files_with_viking_link"`
	VikingConversionFailures int     `json:"viking_conversion_failures"`
	SuccessRate              float64 `json:"success_rate"`
}

// ComputeVikingStats derives viking link statistics from a list of
// records. The success rate is the share of files with a viking link
// whose conversion has not failed, as a percentage; it is zero when no
// file has a viking link.
func ComputeVikingStats(files []*OxxFile) VikingStats {
	stats := VikingStats{TotalFiles: len(files)}

	for _, f := range files {
		if f.HasVikingLink() {
			stats.FilesWithVikingLink++
		}
		if f.IsVikingConversionFailed() {
			stats.VikingConversionFailures++
		}
	}

	if stats.FilesWithVikingLink > 0 {
		stats.SuccessRate = float64(stats.FilesWithVikingLink-stats.VikingConversionFailures) /
			float64(stats.FilesWithVikingLink) * 100
	}

	return stats
}

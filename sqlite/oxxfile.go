package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/streamplay/vikinglink"
)

// Compile-time interface verification.
var _ vikinglink.OxxFileService = (*OxxFileService)(nil)

// OxxFileService implements vikinglink.OxxFileService using SQLite.
type OxxFileService struct {
	db *DB
}

// NewOxxFileService creates a new OxxFileService.
func NewOxxFileService(db *DB) *OxxFileService {
	return &OxxFileService{db: db}
}

// oxxFileColumns is the column list shared by every oxx_files read.
const oxxFileColumns = `id, code, file_name, size, created_at, views, status,
	gdtot_link, gdtot_name, hubcloud_link, filepress_link, viking_link,
	pixeldrain_link, credential_index, duration, user_name,
	mime_type, file_extension, modified_time, created_time,
	pixeldrain_conversion_failed, pixeldrain_conversion_failed_at,
	pixeldrain_conversion_error, viking_conversion_failed,
	viking_conversion_failed_at`

// CreateOxxFile creates a new record. An empty ID is assigned one.
func (s *OxxFileService) CreateOxxFile(ctx context.Context, file *vikinglink.OxxFile) error {
	if err := file.Validate(); err != nil {
		return err
	}

	if file.ID == "" {
		file.ID = uuid.New().String()
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM oxx_files WHERE id = ?", file.ID).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return vikinglink.Errorf(vikinglink.ECONFLICT, "record %q already exists", file.ID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO oxx_files (`+oxxFileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, file.ID, file.Code, file.FileName, file.Size, file.CreatedAt, file.Views, file.Status,
		file.GdtotLink, file.GdtotName, file.HubcloudLink, file.FilepressLink, file.VikingLink,
		file.PixeldrainLink, file.CredentialIndex, file.Duration, file.UserName,
		file.Metadata.MimeType, file.Metadata.FileExtension, file.Metadata.ModifiedTime,
		file.Metadata.CreatedTime, file.Metadata.PixeldrainConversionFailed,
		file.Metadata.PixeldrainConversionFailedAt, file.Metadata.PixeldrainConversionError,
		file.Metadata.VikingConversionFailed, file.Metadata.VikingConversionFailedAt)
	if err != nil {
		return err
	}

	return s.insertDriveLinks(ctx, file.ID, file.DriveLinks)
}

// FindOxxFileByID retrieves a record by ID together with its drive links.
func (s *OxxFileService) FindOxxFileByID(ctx context.Context, id string) (*vikinglink.OxxFile, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+oxxFileColumns+" FROM oxx_files WHERE id = ?", id)

	file, err := scanOxxFile(row)
	if err == sql.ErrNoRows {
		return nil, vikinglink.Errorf(vikinglink.ENOTFOUND, "record %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	if file.DriveLinks, err = s.findDriveLinks(ctx, id); err != nil {
		return nil, err
	}

	return file, nil
}

// FindOxxFiles retrieves records matching the filter, newest first.
func (s *OxxFileService) FindOxxFiles(ctx context.Context, filter vikinglink.OxxFileFilter) ([]*vikinglink.OxxFile, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + oxxFileColumns + " FROM oxx_files WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Code != nil {
		query.WriteString(" AND code = ?")
		args = append(args, *filter.Code)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}
	if filter.HasVikingLink != nil {
		if *filter.HasVikingLink {
			query.WriteString(" AND viking_link IS NOT NULL AND viking_link != ''")
		} else {
			query.WriteString(" AND (viking_link IS NULL OR viking_link = '')")
		}
	}
	if filter.VikingConversionFailed != nil {
		query.WriteString(" AND viking_conversion_failed = ?")
		args = append(args, *filter.VikingConversionFailed)
	}

	query.WriteString(" ORDER BY created_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*vikinglink.OxxFile
	for rows.Next() {
		file, err := scanOxxFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, file := range files {
		if file.DriveLinks, err = s.findDriveLinks(ctx, file.ID); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// UpdateOxxFile updates an existing record. Nil update fields are left
// untouched.
func (s *OxxFileService) UpdateOxxFile(ctx context.Context, id string, upd vikinglink.OxxFileUpdate) (*vikinglink.OxxFile, error) {
	file, err := s.FindOxxFileByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		file.Status = *upd.Status
	}
	if upd.VikingLink != nil {
		file.VikingLink = upd.VikingLink
	}
	if upd.PixeldrainLink != nil {
		file.PixeldrainLink = upd.PixeldrainLink
	}
	if upd.VikingConversionFailed != nil {
		file.Metadata.VikingConversionFailed = *upd.VikingConversionFailed
	}
	if upd.VikingConversionFailedAt != nil {
		file.Metadata.VikingConversionFailedAt = *upd.VikingConversionFailedAt
	}
	if upd.PixeldrainConversionFailed != nil {
		file.Metadata.PixeldrainConversionFailed = *upd.PixeldrainConversionFailed
	}
	if upd.PixeldrainConversionFailedAt != nil {
		file.Metadata.PixeldrainConversionFailedAt = *upd.PixeldrainConversionFailedAt
	}
	if upd.PixeldrainConversionError != nil {
		file.Metadata.PixeldrainConversionError = *upd.PixeldrainConversionError
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE oxx_files
		SET status = ?, viking_link = ?, pixeldrain_link = ?,
			viking_conversion_failed = ?, viking_conversion_failed_at = ?,
			pixeldrain_conversion_failed = ?, pixeldrain_conversion_failed_at = ?,
			pixeldrain_conversion_error = ?
		WHERE id = ?
	`, file.Status, file.VikingLink, file.PixeldrainLink,
		file.Metadata.VikingConversionFailed, file.Metadata.VikingConversionFailedAt,
		file.Metadata.PixeldrainConversionFailed, file.Metadata.PixeldrainConversionFailedAt,
		file.Metadata.PixeldrainConversionError, id)
	if err != nil {
		return nil, err
	}

	return file, nil
}

// DeleteOxxFile permanently removes a record; drive links cascade.
func (s *OxxFileService) DeleteOxxFile(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM oxx_files WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return vikinglink.Errorf(vikinglink.ENOTFOUND, "record %q not found", id)
	}

	return nil
}

func (s *OxxFileService) insertDriveLinks(ctx context.Context, fileID string, links []vikinglink.DriveLink) error {
	for i, link := range links {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO drive_links (oxx_file_id, position, file_id, web_view_link, drive_label, credential_index, is_login_drive, is_drive2)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, fileID, i, link.FileID, link.WebViewLink, link.DriveLabel, link.CredentialIndex,
			link.IsLoginDrive, link.IsDrive2)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *OxxFileService) findDriveLinks(ctx context.Context, fileID string) ([]vikinglink.DriveLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_id, web_view_link, drive_label, credential_index, is_login_drive, is_drive2
		FROM drive_links
		WHERE oxx_file_id = ?
		ORDER BY position ASC
	`, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []vikinglink.DriveLink
	for rows.Next() {
		var link vikinglink.DriveLink
		if err := rows.Scan(&link.FileID, &link.WebViewLink, &link.DriveLabel,
			&link.CredentialIndex, &link.IsLoginDrive, &link.IsDrive2); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

// scanOxxFile reads one oxx_files row. Nullable link columns map to nil
// pointers so the absent-vs-empty distinction survives a round-trip.
func scanOxxFile(row scanner) (*vikinglink.OxxFile, error) {
	var file vikinglink.OxxFile
	var gdtotLink, gdtotName, vikingLink, pixeldrainLink, duration sql.NullString

	err := row.Scan(&file.ID, &file.Code, &file.FileName, &file.Size, &file.CreatedAt,
		&file.Views, &file.Status, &gdtotLink, &gdtotName, &file.HubcloudLink,
		&file.FilepressLink, &vikingLink, &pixeldrainLink, &file.CredentialIndex,
		&duration, &file.UserName, &file.Metadata.MimeType, &file.Metadata.FileExtension,
		&file.Metadata.ModifiedTime, &file.Metadata.CreatedTime,
		&file.Metadata.PixeldrainConversionFailed, &file.Metadata.PixeldrainConversionFailedAt,
		&file.Metadata.PixeldrainConversionError, &file.Metadata.VikingConversionFailed,
		&file.Metadata.VikingConversionFailedAt)
	if err != nil {
		return nil, err
	}

	file.GdtotLink = nullableString(gdtotLink)
	file.GdtotName = nullableString(gdtotName)
	file.VikingLink = nullableString(vikingLink)
	file.PixeldrainLink = nullableString(pixeldrainLink)
	file.Duration = nullableString(duration)

	return &file, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/streamplay/vikinglink"
)

// Ensure LoggingOxxFileService implements vikinglink.OxxFileService.
var _ vikinglink.OxxFileService = (*LoggingOxxFileService)(nil)

// LoggingOxxFileService wraps an OxxFileService with debug logging.
type LoggingOxxFileService struct {
	next   vikinglink.OxxFileService
	logger *slog.Logger
}

// NewLoggingOxxFileService creates a new LoggingOxxFileService.
func NewLoggingOxxFileService(next vikinglink.OxxFileService, logger *slog.Logger) *LoggingOxxFileService {
	return &LoggingOxxFileService{next: next, logger: logger}
}

// CreateOxxFile delegates to the wrapped service and logs the operation.
func (s *LoggingOxxFileService) CreateOxxFile(ctx context.Context, file *vikinglink.OxxFile) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create oxx file",
			"id", file.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateOxxFile(ctx, file)
}

// FindOxxFileByID delegates to the wrapped service and logs the operation.
func (s *LoggingOxxFileService) FindOxxFileByID(ctx context.Context, id string) (file *vikinglink.OxxFile, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find oxx file",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindOxxFileByID(ctx, id)
}

// FindOxxFiles delegates to the wrapped service and logs the operation.
func (s *LoggingOxxFileService) FindOxxFiles(ctx context.Context, filter vikinglink.OxxFileFilter) (files []*vikinglink.OxxFile, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find oxx files",
			"count", len(files),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindOxxFiles(ctx, filter)
}

// UpdateOxxFile delegates to the wrapped service and logs the operation.
func (s *LoggingOxxFileService) UpdateOxxFile(ctx context.Context, id string, upd vikinglink.OxxFileUpdate) (file *vikinglink.OxxFile, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update oxx file",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateOxxFile(ctx, id, upd)
}

// DeleteOxxFile delegates to the wrapped service and logs the operation.
func (s *LoggingOxxFileService) DeleteOxxFile(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete oxx file",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteOxxFile(ctx, id)
}

package mock

import (
	"context"

	"github.com/streamplay/vikinglink"
)

var _ vikinglink.OxxFileService = (*OxxFileService)(nil)

// OxxFileService is a mock implementation of vikinglink.OxxFileService.
type OxxFileService struct {
	CreateOxxFileFn   func(ctx context.Context, file *vikinglink.OxxFile) error
	FindOxxFileByIDFn func(ctx context.Context, id string) (*vikinglink.OxxFile, error)
	FindOxxFilesFn    func(ctx context.Context, filter vikinglink.OxxFileFilter) ([]*vikinglink.OxxFile, error)
	UpdateOxxFileFn   func(ctx context.Context, id string, upd vikinglink.OxxFileUpdate) (*vikinglink.OxxFile, error)
	DeleteOxxFileFn   func(ctx context.Context, id string) error
}

func (s *OxxFileService) CreateOxxFile(ctx context.Context, file *vikinglink.OxxFile) error {
	return s.CreateOxxFileFn(ctx, file)
}

func (s *OxxFileService) FindOxxFileByID(ctx context.Context, id string) (*vikinglink.OxxFile, error) {
	return s.FindOxxFileByIDFn(ctx, id)
}

func (s *OxxFileService) FindOxxFiles(ctx context.Context, filter vikinglink.OxxFileFilter) ([]*vikinglink.OxxFile, error) {
	return s.FindOxxFilesFn(ctx, filter)
}

func (s *OxxFileService) UpdateOxxFile(ctx context.Context, id string, upd vikinglink.OxxFileUpdate) (*vikinglink.OxxFile, error) {
	return s.UpdateOxxFileFn(ctx, id, upd)
}

func (s *OxxFileService) DeleteOxxFile(ctx context.Context, id string) error {
	return s.DeleteOxxFileFn(ctx, id)
}

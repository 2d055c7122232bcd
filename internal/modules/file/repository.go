package file

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var metadataColumns = []string{"file_id", "file_name", "file_size", "mime_type"}

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	GetMetadataByID(ctx context.Context, id string) (*Record, error)
	ListMetadata(ctx context.Context) ([]*Record, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("file_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetMetadataByID loads everything except the binary payload.
func (r *repository) GetMetadataByID(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Select(metadataColumns).Where("file_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListMetadata(ctx context.Context) ([]*Record, error) {
	var recs []*Record
	err := r.db.WithContext(ctx).Select(metadataColumns).Order("file_id").Find(&recs).Error
	return recs, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Record{}).Count(&n).Error
	return n, err
}

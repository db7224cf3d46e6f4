package repository

import (
	"context"

	"github.com/petgroomhq/grooming-app/models"
	"gorm.io/gorm"
)

// RecordRepository implements scheduling.RecordSink with an append-only
// grooming_records table.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) AppendRecord(ctx context.Context, record *models.GroomingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

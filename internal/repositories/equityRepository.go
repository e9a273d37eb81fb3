package repositories

import (
	"context"
	"errors"
	"time"

	"PaperTradeBot/internal/models"

	"gorm.io/gorm"
)

// DefaultSnapshotLimit caps snapshot listings when the caller passes no
// limit. Snapshots accrue one per bar, so the default is generous.
const DefaultSnapshotLimit = 5000

type EquityRepository struct {
	db *gorm.DB
}

// NewEquityRepository creates a new instance of EquityRepository
func NewEquityRepository(db *gorm.DB) *EquityRepository {
	return &EquityRepository{db: db}
}

// Create adds a new EquitySnapshot record to the database
func (r *EquityRepository) Create(ctx context.Context, snapshot *models.EquitySnapshot) error {
	if snapshot == nil {
		return errors.New("snapshot cannot be nil")
	}
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// FindSnapshots lists equity snapshots ordered by snapshot time ascending.
// Empty symbol or strategy and a nil since skip that filter; a non-positive
// limit falls back to DefaultSnapshotLimit.
func (r *EquityRepository) FindSnapshots(ctx context.Context, symbol, strategy string, since *time.Time, limit int) ([]models.EquitySnapshot, error) {
	if limit <= 0 {
		limit = DefaultSnapshotLimit
	}

	q := r.db.WithContext(ctx).Model(&models.EquitySnapshot{})
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	if strategy != "" {
		q = q.Where("strategy = ?", strategy)
	}
	if since != nil {
		q = q.Where("snapshot_time >= ?", *since)
	}

	var snapshots []models.EquitySnapshot
	err := q.Order("snapshot_time ASC").Limit(limit).Find(&snapshots).Error
	return snapshots, err
}

// FindLatest retrieves the most recent snapshot for a (symbol, strategy)
// key. No snapshot yet is reported as (nil, nil), not as an error.
func (r *EquityRepository) FindLatest(ctx context.Context, symbol, strategy string) (*models.EquitySnapshot, error) {
	q := r.db.WithContext(ctx).Model(&models.EquitySnapshot{})
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	if strategy != "" {
		q = q.Where("strategy = ?", strategy)
	}

	var snapshot models.EquitySnapshot
	err := q.Order("snapshot_time DESC").First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

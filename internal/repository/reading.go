package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Chuk2022/VKBot-GDM/internal/apperrors"
	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// ReadingRepository handles glucose reading data operations
type ReadingRepository struct {
	db *gorm.DB
}

// NewReadingRepository creates a new reading repository
func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Create persists a new reading. The insert is complete-or-error; no partial
// state is visible on failure.
func (r *ReadingRepository) Create(ctx context.Context, userID int64, value float64, period domain.Period, timestamp time.Time) (*domain.GlucoseReading, error) {
	record := readingRecord{
		UserID:    userID,
		Value:     value,
		Period:    string(period),
		Timestamp: timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	reading := record.toDomain()
	return &reading, nil
}

// ListByUser returns the user's readings in timestamp order, optionally
// restricted to those at or after since.
func (r *ReadingRepository) ListByUser(ctx context.Context, userID int64, since *time.Time) ([]domain.GlucoseReading, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("timestamp >= ?", *since)
	}

	var records []readingRecord
	if err := query.Order("timestamp").Find(&records).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	readings := make([]domain.GlucoseReading, 0, len(records))
	for _, record := range records {
		readings = append(readings, record.toDomain())
	}
	return readings, nil
}

// CountByUser returns the number of readings for a user
func (r *ReadingRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&readingRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return count, nil
}

// CountOn returns the number of readings created on the given calendar day
func (r *ReadingRepository) CountOn(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&readingRecord{}).
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return count, nil
}

// CountAll returns the total number of readings
func (r *ReadingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&readingRecord{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return count, nil
}

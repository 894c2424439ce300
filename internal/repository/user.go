package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Chuk2022/VKBot-GDM/internal/apperrors"
	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate gets an existing user or creates a new one. isAdmin is only
// applied at creation; an existing user's flag is never touched here.
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, name string, isAdmin bool) (*domain.User, error) {
	var record userRecord
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&record)
	if result.Error == nil {
		user := record.toDomain()
		return &user, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewDatabaseError(result.Error)
	}

	record = userRecord{
		TelegramID: telegramID,
		Name:       name,
		IsAdmin:    isAdmin,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	user := record.toDomain()
	return &user, nil
}

// GetByTelegramID gets a user by their Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	user := record.toDomain()
	return &user, nil
}

// ListNonAdmins returns all non-admin users sorted by name
func (r *UserRepository) ListNonAdmins(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if err := r.db.WithContext(ctx).
		Where("is_admin = ?", false).
		Order("name").
		Find(&records).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	users := make([]domain.User, 0, len(records))
	for _, record := range records {
		users = append(users, record.toDomain())
	}
	return users, nil
}

// ListAll returns every user sorted by name. Used by the maintenance CLI.
func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	users := make([]domain.User, 0, len(records))
	for _, record := range records {
		users = append(users, record.toDomain())
	}
	return users, nil
}

// Rename updates a user's display name
func (r *UserRepository) Rename(ctx context.Context, telegramID int64, name string) error {
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("telegram_id = ?", telegramID).
		Update("name", name)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}

// SetAdmin grants or revokes admin rights
func (r *UserRepository) SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) error {
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("telegram_id = ?", telegramID).
		Update("is_admin", isAdmin)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}

// CountAll returns the total number of users
func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userRecord{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}
	return count, nil
}

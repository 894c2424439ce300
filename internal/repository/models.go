package repository

import (
	"time"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// Row types carry the GORM mapping so domain models stay plain value records.

type userRecord struct {
	ID           uint  `gorm:"primaryKey"`
	TelegramID   int64 `gorm:"uniqueIndex;not null"`
	Name         string
	IsAdmin      bool      `gorm:"default:false"`
	RegisteredAt time.Time `gorm:"autoCreateTime"`
}

func (userRecord) TableName() string { return "users" }

type readingRecord struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    int64      `gorm:"index;not null"`
	User      userRecord `gorm:"foreignKey:UserID;references:TelegramID;constraint:OnDelete:CASCADE"`
	Value     float64    `gorm:"not null"`
	Period    string     `gorm:"not null"`
	Timestamp time.Time  `gorm:"index"`
}

func (readingRecord) TableName() string { return "glucose_readings" }

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		TelegramID:   r.TelegramID,
		Name:         r.Name,
		IsAdmin:      r.IsAdmin,
		RegisteredAt: r.RegisteredAt,
	}
}

func (r readingRecord) toDomain() domain.GlucoseReading {
	return domain.GlucoseReading{
		ID:        r.ID,
		UserID:    r.UserID,
		Value:     r.Value,
		Period:    domain.Period(r.Period),
		Timestamp: r.Timestamp,
	}
}

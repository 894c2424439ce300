package domain

import (
	"context"
	"time"
)

// UserRepository handles user persistence.
type UserRepository interface {
	GetOrCreate(ctx context.Context, telegramID int64, name string, isAdmin bool) (*User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	ListNonAdmins(ctx context.Context) ([]User, error)
	Rename(ctx context.Context, telegramID int64, name string) error
	SetAdmin(ctx context.Context, telegramID int64, isAdmin bool) error
	CountAll(ctx context.Context) (int64, error)
}

// ReadingRepository handles glucose reading persistence.
type ReadingRepository interface {
	Create(ctx context.Context, userID int64, value float64, period Period, timestamp time.Time) (*GlucoseReading, error)
	// ListByUser returns the user's readings in timestamp order. A nil since
	// returns the full history.
	ListByUser(ctx context.Context, userID int64, since *time.Time) ([]GlucoseReading, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountOn(ctx context.Context, day time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// PendingTracker is the per-user pending-input state. Implementations must
// keep per-key mutation atomic so a period selection and a value submission
// from the same user cannot interleave.
type PendingTracker interface {
	SetPending(userID int64, period Period)
	GetPending(userID int64) (PendingInput, bool)
	ClearPending(userID int64)
}

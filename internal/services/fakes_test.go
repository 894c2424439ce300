package services

import (
	"context"
	"sort"
	"time"

	"github.com/Chuk2022/VKBot-GDM/internal/apperrors"
	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// In-memory repository fakes for service tests.

type fakeReadingRepo struct {
	readings  []domain.GlucoseReading
	nextID    uint
	createErr error
}

func newFakeReadingRepo() *fakeReadingRepo {
	return &fakeReadingRepo{}
}

func (f *fakeReadingRepo) Create(_ context.Context, userID int64, value float64, period domain.Period, timestamp time.Time) (*domain.GlucoseReading, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	reading := domain.GlucoseReading{
		ID:        f.nextID,
		UserID:    userID,
		Value:     value,
		Period:    period,
		Timestamp: timestamp,
	}
	f.readings = append(f.readings, reading)
	return &reading, nil
}

func (f *fakeReadingRepo) ListByUser(_ context.Context, userID int64, since *time.Time) ([]domain.GlucoseReading, error) {
	var out []domain.GlucoseReading
	for _, r := range f.readings {
		if r.UserID != userID {
			continue
		}
		if since != nil && r.Timestamp.Before(*since) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeReadingRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	readings, err := f.ListByUser(ctx, userID, nil)
	if err != nil {
		return 0, err
	}
	return int64(len(readings)), nil
}

func (f *fakeReadingRepo) CountOn(_ context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var count int64
	for _, r := range f.readings {
		if !r.Timestamp.Before(start) && r.Timestamp.Before(end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeReadingRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.readings)), nil
}

type fakeUserRepo struct {
	users  []domain.User
	nextID uint
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	return &fakeUserRepo{users: users}
}

func (f *fakeUserRepo) GetOrCreate(_ context.Context, telegramID int64, name string, isAdmin bool) (*domain.User, error) {
	for _, u := range f.users {
		if u.TelegramID == telegramID {
			user := u
			return &user, nil
		}
	}
	f.nextID++
	user := domain.User{
		ID:           f.nextID,
		TelegramID:   telegramID,
		Name:         name,
		IsAdmin:      isAdmin,
		RegisteredAt: time.Now(),
	}
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.TelegramID == telegramID {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (f *fakeUserRepo) ListNonAdmins(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if !u.IsAdmin {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUserRepo) Rename(_ context.Context, telegramID int64, name string) error {
	for i := range f.users {
		if f.users[i].TelegramID == telegramID {
			f.users[i].Name = name
			return nil
		}
	}
	return apperrors.NewNotFoundError("user not found")
}

func (f *fakeUserRepo) SetAdmin(_ context.Context, telegramID int64, isAdmin bool) error {
	for i := range f.users {
		if f.users[i].TelegramID == telegramID {
			f.users[i].IsAdmin = isAdmin
			return nil
		}
	}
	return apperrors.NewNotFoundError("user not found")
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

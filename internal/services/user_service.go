package services

import (
	"context"
	"fmt"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// UserService registers users lazily on first interaction. Admin rights come
// from the static allow-list and are applied at creation only.
type UserService struct {
	users    domain.UserRepository
	adminIDs map[int64]bool
}

func NewUserService(users domain.UserRepository, adminIDs []int64) *UserService {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &UserService{users: users, adminIDs: admins}
}

// RegisterUser gets or creates the user for a telegram id. An empty name
// falls back to a placeholder so the aggregate reports stay readable.
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, name string) (*domain.User, error) {
	if name == "" {
		name = fmt.Sprintf("User_%d", telegramID)
	}
	user, err := s.users.GetOrCreate(ctx, telegramID, name, s.adminIDs[telegramID])
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// GetByTelegramID looks up an existing user
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.users.GetByTelegramID(ctx, telegramID)
}

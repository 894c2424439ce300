package services

import (
	"context"
	"testing"
)

func TestRegisterUser_AdminFromAllowList(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, []int64{100})
	ctx := context.Background()

	admin, err := svc.RegisterUser(ctx, 100, "Врач")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("Allow-listed user should be admin")
	}

	regular, err := svc.RegisterUser(ctx, 200, "Анна")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if regular.IsAdmin {
		t.Error("Regular user should not be admin")
	}
}

func TestRegisterUser_Idempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)
	ctx := context.Background()

	first, err := svc.RegisterUser(ctx, 42, "Анна")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	second, err := svc.RegisterUser(ctx, 42, "Другое Имя")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("Expected same user, got ids %d and %d", first.ID, second.ID)
	}
	if second.Name != "Анна" {
		t.Errorf("Existing user's name should not change, got %q", second.Name)
	}
	if len(repo.users) != 1 {
		t.Errorf("Expected 1 user, got %d", len(repo.users))
	}
}

func TestRegisterUser_EmptyNameFallback(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil)

	user, err := svc.RegisterUser(context.Background(), 42, "")
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	if user.Name != "User_42" {
		t.Errorf("Expected placeholder name, got %q", user.Name)
	}
}

func TestGetByTelegramID_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil)

	if _, err := svc.GetByTelegramID(context.Background(), 42); err == nil {
		t.Fatal("Expected error for unknown user")
	}
}

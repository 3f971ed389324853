package service

import (
	"errors"
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

func TestUserUpdateAppliesOnlyProvidedFields(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewUserService(userRepo)

	user := &model.User{Name: "Cara", Email: "cara@example.com", Password: "hash"}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	name := "Cara Updated"
	updated, err := svc.Update(user.ID, UpdateUserInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Cara Updated" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Email != "cara@example.com" {
		t.Errorf("email changed to %q on name-only patch", updated.Email)
	}

	if _, err := svc.Update(user.ID, UpdateUserInput{}); !errors.Is(err, util.ErrNoChanges) {
		t.Errorf("empty patch: err = %v, want ErrNoChanges", err)
	}
	if _, err := svc.Update(999, UpdateUserInput{Name: &name}); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("missing user: err = %v, want ErrUserNotFound", err)
	}
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewUserService(userRepo)

	user := &model.User{Name: "Dan", Email: "dan@example.com", Password: "oldhash"}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	password := "newsecret"
	if _, err := svc.Update(user.ID, UpdateUserInput{Password: &password}); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := userRepo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.Password == "newsecret" || stored.Password == "oldhash" {
		t.Errorf("password not rehashed: %q", stored.Password)
	}
}

func TestUserDelete(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewUserService(userRepo)

	user := &model.User{Name: "Eve", Email: "eve@example.com", Password: "hash"}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := svc.Delete(user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(user.ID); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("repeat delete: err = %v, want ErrUserNotFound", err)
	}
}

func TestUserDeleteFreesEmail(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	auth := NewAuthService(userRepo, cfg)

	first := &model.User{Name: "Eve", Email: "eve@example.com", Password: "secret123"}
	if err := auth.Register(first); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := users.Delete(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The unique email index must not retain the deleted account.
	second := &model.User{Name: "Eve", Email: "eve@example.com", Password: "secret123"}
	if err := auth.Register(second); err != nil {
		t.Fatalf("register after delete: %v", err)
	}
}

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

func testAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(userRepo, cfg), userRepo
}

func TestRegisterHashesPasswordAndRejectsDuplicates(t *testing.T) {
	svc, userRepo := testAuthService(t)

	user := &model.User{Name: "Ana", Email: "ana@example.com", Password: "secret123"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, err := userRepo.FindByEmail("ana@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if stored.Role != model.Student {
		t.Errorf("role = %q, want student", stored.Role)
	}

	dup := &model.User{Name: "Ana Again", Email: "ana@example.com", Password: "other"}
	if err := svc.Register(dup); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("duplicate: err = %v, want ErrEmailRegistered", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := testAuthService(t)

	user := &model.User{Name: "Ben", Email: "ben@example.com", Password: "secret123"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, loggedIn, err := svc.Login("ben@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != loggedIn.ID || claims.Email != "ben@example.com" {
		t.Errorf("claims = %+v, want user %d", claims, loggedIn.ID)
	}

	if _, _, err := svc.Login("ben@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

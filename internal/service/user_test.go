package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/model"
)

func seededUser(t *testing.T, id uint, email, password string, status int, admin bool) model.User {
	t.Helper()
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	u := model.User{Name: "user", Email: email, Password: hash, Status: status, IsAdmin: admin}
	u.ID = id
	return u
}

func TestUserService_CreateUser(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil, nil)

	res, err := svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Name:     "  Alice ",
		Email:    " Alice@Example.com ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if res.Email != "alice@example.com" || res.Name != "Alice" {
		t.Errorf("Unexpected response %+v", res)
	}
	if res.Status != model.StatusEnabled {
		t.Errorf("Expected enabled status, got %d", res.Status)
	}

	stored, _ := store.GetByID(context.Background(), res.ID)
	if stored.Password == "secret123" || !checkPassword(stored.Password, "secret123") {
		t.Error("Expected password to be stored as a bcrypt hash")
	}

	_, err = svc.CreateUser(context.Background(), &dto.CreateUserRequest{
		Name: "Other", Email: "alice@example.com", Password: "secret123",
	})
	if !errors.Is(err, apperrors.ErrEmailExists) {
		t.Errorf("Expected ErrEmailExists, got %v", err)
	}
}

func TestUserService_UpdateUser(t *testing.T) {
	store := newFakeUserStore(
		seededUser(t, 1, "a@example.com", "secret123", model.StatusEnabled, true),
		seededUser(t, 2, "b@example.com", "secret123", model.StatusEnabled, false),
	)
	svc := NewUserService(store, nil, nil)

	tests := []struct {
		name    string
		id      uint
		req     dto.UpdateUserRequest
		wantErr error
	}{
		{"rename", 2, dto.UpdateUserRequest{Name: "Bob"}, nil},
		{"keep own email", 2, dto.UpdateUserRequest{Email: "b@example.com"}, nil},
		{"email of another user", 2, dto.UpdateUserRequest{Email: "a@example.com"}, apperrors.ErrEmailExists},
		{"missing user", 9, dto.UpdateUserRequest{Name: "Ghost"}, apperrors.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateUser(context.Background(), tt.id, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	got, _ := svc.GetByID(context.Background(), 2)
	if got.Name != "Bob" {
		t.Errorf("Expected name Bob, got %q", got.Name)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	store := newFakeUserStore(seededUser(t, 1, "a@example.com", "secret123", model.StatusEnabled, true))
	svc := NewUserService(store, nil, nil)

	if err := svc.DeleteUser(context.Background(), 1, 1); !errors.Is(err, apperrors.ErrSelfDeletion) {
		t.Errorf("Expected ErrSelfDeletion, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), 5, 1); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), 1, 2); err != nil {
		t.Errorf("Expected delete to succeed, got %v", err)
	}
}

func TestUserService_LoginUser(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store := newFakeUserStore(
		seededUser(t, 1, "admin@example.com", "secret123", model.StatusEnabled, true),
		seededUser(t, 2, "staff@example.com", "secret123", model.StatusEnabled, false),
		seededUser(t, 3, "gone@example.com", "secret123", model.StatusDisabled, true),
	)
	jwtSvc := NewJWTService("test-secret", time.Hour)
	svc := NewUserService(store, jwtSvc, nil)
	svc.now = func() time.Time { return now }

	tests := []struct {
		name       string
		email      string
		password   string
		wantStatus int
	}{
		{"admin", "ADMIN@example.com", "secret123", http.StatusOK},
		{"wrong password", "admin@example.com", "nope", http.StatusUnauthorized},
		{"unknown email", "who@example.com", "secret123", http.StatusUnauthorized},
		{"not an admin", "staff@example.com", "secret123", http.StatusUnauthorized},
		{"disabled", "gone@example.com", "secret123", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.LoginUser(context.Background(), tt.email, tt.password)
			if got := apperrors.ToHTTPStatus(err); got != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d (%v)", tt.wantStatus, got, err)
			}
			if err != nil {
				return
			}
			if res.ExpiresIn != 3600 {
				t.Errorf("Expected expires_in 3600, got %d", res.ExpiresIn)
			}
			claims, err := jwtSvc.ValidateToken(res.Token)
			if err != nil {
				t.Fatalf("Issued token does not validate: %v", err)
			}
			if claims.UserID != 1 {
				t.Errorf("Expected user 1 in claims, got %d", claims.UserID)
			}
			if res.User.LastLogin == nil || !res.User.LastLogin.Equal(now) {
				t.Errorf("Expected last login %v, got %v", now, res.User.LastLogin)
			}
		})
	}
}

func TestUserService_ListMapsStoreFailure(t *testing.T) {
	store := newFakeUserStore()
	store.listErr = errors.New("connection refused")
	svc := NewUserService(store, nil, nil)

	_, err := svc.List(context.Background(), listview.RequestParams{Page: 1, PageSize: 20})
	if got := apperrors.ToHTTPStatus(err); got != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", got)
	}
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
)

type stubUserService struct {
	user    *domain.User
	err     error
	updated ports.UpdateProfileInput
}

func (s *stubUserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) error {
	s.updated = in
	return s.err
}

func TestUserHandler_Profile_OmitsPassword(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{user: &domain.User{
		ID:           "u1",
		Name:         "Petar",
		Lastname:     "Petrovic",
		Nickname:     "pera",
		Email:        "pera@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}})

	rec := httptest.NewRecorder()
	c := authedContext(e, httptest.NewRequest(http.MethodGet, "/api/user", nil), rec, "u1")

	if err := handler.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	decodeBody(t, rec, &resp)
	if resp["_id"] != "u1" || resp["email"] != "pera@example.com" || resp["nickname"] != "pera" {
		t.Fatalf("unexpected profile: %v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password must never be serialised")
	}
}

func TestUserHandler_Profile_UserGone(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{err: domain.ErrUserNotFound})

	c := authedContext(e, httptest.NewRequest(http.MethodGet, "/api/user", nil), httptest.NewRecorder(), "u1")
	if err := handler.Profile(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{}
	handler := NewUserHandler(stub)

	body := `{"name":"Petar","lastname":"Petrovic","nickname":"pp","email":"other@example.com","password":"novo"}`
	rec := httptest.NewRecorder()
	c := authedContext(e, jsonRequest(http.MethodPut, "/api/user", body), rec, "u1")

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp messageResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Profile updated successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	want := ports.UpdateProfileInput{UserID: "u1", Name: "Petar", Lastname: "Petrovic", Nickname: "pp", Password: "novo"}
	if stub.updated != want {
		t.Fatalf("unexpected input: %+v", stub.updated)
	}
}

func TestUserHandler_UpdateProfile_Validation(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{err: domain.NewValidationError("Name, lastname and nickname are required")})

	c := authedContext(e, jsonRequest(http.MethodPut, "/api/user", `{}`), httptest.NewRecorder(), "u1")
	if err := handler.UpdateProfile(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

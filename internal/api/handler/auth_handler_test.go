package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/campusworks/project-portal/internal/api/middleware"
	"github.com/campusworks/project-portal/internal/core/domain"
	"github.com/campusworks/project-portal/internal/core/ports"
)

type stubAuthService struct {
	signupFn         func(ctx context.Context, in ports.SignupInput) (*domain.User, *ports.Credential, error)
	loginFn          func(ctx context.Context, email, password string) (*domain.User, *ports.Credential, error)
	logoutFn         func(ctx context.Context, token string) error
	changePasswordFn func(ctx context.Context, userID, current, next string) error
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, *ports.Credential, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, *ports.Credential, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changePasswordFn(ctx, userID, current, next)
}

func testCredential() *ports.Credential {
	return &ports.Credential{
		Token:     "signed.jwt.token",
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.User, *ports.Credential, error) {
			if in.Email != "alice@example.com" || in.StudentID != "S-001" {
				t.Fatalf("input not forwarded: %+v", in)
			}
			return &domain.User{ID: "user_1", Name: in.Name, Email: in.Email, Role: domain.RoleStudent}, testCredential(), nil
		},
	}
	h := NewAuthHandler(svc, CookieSettings{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pass123","student_id":"S-001"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	cookie := findCookie(rec, middleware.SessionCookieName)
	if cookie == nil || cookie.Value != "signed.jwt.token" {
		t.Fatalf("session cookie not set: %+v", cookie)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}

	body := decodeBody(t, rec)
	if body["message"] != "Signup successful" {
		t.Fatalf("unexpected body: %v", body)
	}
	user, _ := body["user"].(map[string]any)
	if user["role"] != domain.RoleStudent {
		t.Fatalf("user missing from response: %v", body)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in response: %v", user)
	}
}

func TestAuthHandler_Signup_ValidationFails(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookieSettings{})

	// Password below the minimum length never reaches the service.
	c, _ := newJSONContext(http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"abc"}`)
	if httpErrCode(t, h.Signup(c)) != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password")
	}

	c, _ = newJSONContext(http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"not-an-email","password":"pass123"}`)
	if httpErrCode(t, h.Signup(c)) != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email")
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*domain.User, *ports.Credential, error) {
			if email != "alice@example.com" || password != "pass123" {
				return nil, nil, domain.ErrInvalidCredentials
			}
			return &domain.User{ID: "user_1", Name: "Alice"}, testCredential(), nil
		},
	}
	h := NewAuthHandler(svc, CookieSettings{Secure: true})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pass123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := findCookie(rec, middleware.SessionCookieName)
	if cookie == nil || !cookie.Secure {
		t.Fatalf("expected a secure session cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(context.Context, string, string) (*domain.User, *ports.Credential, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc, CookieSettings{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)
	// The sentinel flows to the central error handler untouched.
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if findCookie(rec, middleware.SessionCookieName) != nil {
		t.Fatalf("failed login must not set a cookie")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var revokedToken string
	svc := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revokedToken = token
			return nil
		},
	}
	h := NewAuthHandler(svc, CookieSettings{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "live.token"})
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if revokedToken != "live.token" {
		t.Fatalf("token not passed to the service: %q", revokedToken)
	}

	cookie := findCookie(rec, middleware.SessionCookieName)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("cookie not cleared: %+v", cookie)
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookieSettings{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout without a session should still succeed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookieSettings{})

	c, rec := newJSONContext(http.MethodGet, "/api/auth/me", "")
	withIdentity(c, &domain.User{ID: "user_1", Name: "Alice", Role: domain.RoleStudent})
	if err := h.Me(c); err != nil {
		t.Fatalf("me failed: %v", err)
	}

	body := decodeBody(t, rec)
	user, _ := body["user"].(map[string]any)
	if user["name"] != "Alice" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookieSettings{})

	c, _ := newJSONContext(http.MethodGet, "/api/auth/me", "")
	if httpErrCode(t, h.Me(c)) != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity")
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	var gotUserID string
	svc := &stubAuthService{
		changePasswordFn: func(_ context.Context, userID, current, next string) error {
			gotUserID = userID
			if current != "oldpass" || next != "newpass" {
				t.Fatalf("passwords not forwarded: %q %q", current, next)
			}
			return nil
		},
	}
	h := NewAuthHandler(svc, CookieSettings{})

	c, rec := newJSONContext(http.MethodPost, "/api/auth/change-password",
		`{"current_password":"oldpass","new_password":"newpass"}`)
	withIdentity(c, &domain.User{ID: "user_1"})
	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if gotUserID != "user_1" {
		t.Fatalf("identity not used, got %q", gotUserID)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ChangePassword_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, CookieSettings{})

	c, _ := newJSONContext(http.MethodPost, "/api/auth/change-password",
		`{"current_password":"oldpass","new_password":"abc"}`)
	withIdentity(c, &domain.User{ID: "user_1"})
	if httpErrCode(t, h.ChangePassword(c)) != http.StatusBadRequest {
		t.Fatalf("expected 400 for short new password")
	}
}

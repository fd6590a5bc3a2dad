package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/coderun/account-service/internal/core/domain"
)

type stubAccountService struct {
	signupFn      func(ctx context.Context, email, password, name string) error
	loginFn       func(ctx context.Context, email, password string) (*domain.User, string, error)
	resetFn       func(ctx context.Context, userID int64, email string) error
	checkFn       func(ctx context.Context, email string) error
	resendFn      func(ctx context.Context, email string) (bool, error)
	confirmFn     func(ctx context.Context, email string, userID int64) error
	currentUserFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAccountService) Signup(ctx context.Context, email, password, name string) error {
	return s.signupFn(ctx, email, password, name)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) ResetPassword(ctx context.Context, userID int64, email string) error {
	return s.resetFn(ctx, userID, email)
}

func (s *stubAccountService) CheckEmail(ctx context.Context, email string) error {
	return s.checkFn(ctx, email)
}

func (s *stubAccountService) ResendConfirmation(ctx context.Context, email string) (bool, error) {
	return s.resendFn(ctx, email)
}

func (s *stubAccountService) ConfirmEmail(ctx context.Context, email string, userID int64) error {
	return s.confirmFn(ctx, email, userID)
}

func (s *stubAccountService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	return s.currentUserFn(ctx, token)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

const baseURL = "https://coderun.example"

func TestAccountHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		signupFn: func(ctx context.Context, email, password, name string) error {
			if email != "alice@example.com" || name != "alice" {
				t.Fatalf("unexpected args: %s %s", email, name)
			}
			return nil
		},
	}
	h := NewAccountHandler(stub, baseURL)

	body := strings.NewReader(`{"email":"alice@example.com","password":"` + strings.Repeat("a", 64) + `","name":"alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/signup", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["data"] != "success" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAccountHandler_Signup_DomainErrorPassesThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		signupFn: func(ctx context.Context, email, password, name string) error {
			return domain.ErrDuplicateEmail
		},
	}
	h := NewAccountHandler(stub, baseURL)

	body := strings.NewReader(`{"email":"a@b.c","password":"x","name":"n"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/signup", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Signup(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccountHandler_Signup_MissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewAccountHandler(&stubAccountService{}, baseURL)

	req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
}

func TestAccountHandler_Login_ActiveIncludesToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return &domain.User{ID: 7, Email: email, Name: "bob", Active: true}, "tkn", nil
		},
	}
	h := NewAccountHandler(stub, baseURL)

	body := strings.NewReader(`{"email":"bob@example.com","password":"` + strings.Repeat("b", 64) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tkn" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
	if _, leaked := user["security_count"]; leaked {
		t.Fatalf("security_count leaked in response")
	}
}

func TestAccountHandler_Login_InactiveOmitsToken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return &domain.User{ID: 7, Email: email, Name: "bob"}, "", nil
		},
	}
	h := NewAccountHandler(stub, baseURL)

	body := strings.NewReader(`{"email":"bob@example.com","password":"` + strings.Repeat("b", 64) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, present := resp["token"]; present {
		t.Fatalf("unverified login must omit the token field, got %+v", resp)
	}
}

func TestAccountHandler_NewPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		resetFn: func(ctx context.Context, userID int64, email string) error {
			if userID != 3 || email != "carol@example.com" {
				t.Fatalf("unexpected args: %d %s", userID, email)
			}
			return nil
		},
	}
	h := NewAccountHandler(stub, baseURL)

	body := strings.NewReader("user_id=3&email=carol@example.com")
	req := httptest.NewRequest(http.MethodPost, "/api/newpassword", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.NewPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["send"] != "success" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAccountHandler_NewPassword_BadUserID(t *testing.T) {
	e := newTestEcho()
	h := NewAccountHandler(&stubAccountService{}, baseURL)

	body := strings.NewReader("user_id=abc&email=carol@example.com")
	req := httptest.NewRequest(http.MethodPost, "/api/newpassword", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.NewPassword(c); !errors.Is(err, domain.ErrRouteMismatch) {
		t.Fatalf("expected ErrRouteMismatch, got %v", err)
	}
}

func TestAccountHandler_EmailCheck(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		checkFn: func(ctx context.Context, email string) error { return nil },
	}
	h := NewAccountHandler(stub, baseURL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("free@example.com")

	if err := h.EmailCheck(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["data"] != "free@example.com" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAccountHandler_ResendConfirm_SoftFail(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		resendFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
	}
	h := NewAccountHandler(stub, baseURL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email")
	c.SetParamValues("gail@example.com")

	if err := h.ResendConfirm(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("soft failure must still answer 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["data"] != "fail" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAccountHandler_ConfirmRedirect(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		confirmFn: func(ctx context.Context, email string, userID int64) error {
			if email != "iris@example.com" || userID != 5 {
				t.Fatalf("unexpected args: %s %d", email, userID)
			}
			return nil
		},
	}
	h := NewAccountHandler(stub, baseURL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email", "user_id")
	c.SetParamValues("iris@example.com", "5")

	if err := h.ConfirmRedirect(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != baseURL+"/account/success" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
}

func TestAccountHandler_ConfirmRedirect_BadUserID(t *testing.T) {
	e := newTestEcho()
	h := NewAccountHandler(&stubAccountService{}, baseURL)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("email", "user_id")
	c.SetParamValues("iris@example.com", "not-a-number")

	if err := h.ConfirmRedirect(c); !errors.Is(err, domain.ErrRouteMismatch) {
		t.Fatalf("expected ErrRouteMismatch, got %v", err)
	}
}

func TestAccountHandler_Me(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		currentUserFn: func(ctx context.Context, token string) (*domain.User, error) {
			if token != "tkn" {
				t.Fatalf("unexpected token %q", token)
			}
			return &domain.User{ID: 1, Email: "judy@example.com", Name: "judy", Active: true}, nil
		},
	}
	h := NewAccountHandler(stub, baseURL)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("token", "tkn")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "judy@example.com" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAccountHandler_Me_NoToken(t *testing.T) {
	e := newTestEcho()
	h := NewAccountHandler(&stubAccountService{}, baseURL)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

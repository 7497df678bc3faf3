package auth

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dvera/barrioliga/internal/config"
	"github.com/dvera/barrioliga/internal/ratelimit"
)

func setupLoginTest(t *testing.T, limiter *ratelimit.Limiter) {
	t.Helper()

	hash, err := HashPassword("la-clave-del-barrio")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.SecretKey = "test-secret-key"
	cfg.Admin.Username = "admin"
	cfg.Admin.PasswordHash = hash
	Init(cfg, limiter)

	t.Cleanup(func() {
		Init(nil, nil)
	})
}

func postLogin(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:40000"
	recorder := httptest.NewRecorder()
	HandleLogin(recorder, req)
	return recorder
}

func TestHandleLogin_Success(t *testing.T) {
	setupLoginTest(t, nil)

	recorder := postLogin(`{"username":"admin","password":"la-clave-del-barrio"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Username string `json:"username"`
			IsAdmin  bool   `json:"isAdmin"`
		} `json:"user"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token == "" || !resp.User.IsAdmin {
		t.Errorf("response = %+v", resp)
	}

	claims, err := ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("token username = %q", claims.Username)
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	setupLoginTest(t, nil)

	recorder := postLogin(`{"username":"admin","password":"incorrecta"}`)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Credenciales incorrectas") {
		t.Errorf("body = %s", recorder.Body.String())
	}
}

func TestHandleLogin_UnknownUsername(t *testing.T) {
	setupLoginTest(t, nil)

	recorder := postLogin(`{"username":"otro","password":"la-clave-del-barrio"}`)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestHandleLogin_RateLimited(t *testing.T) {
	limiter := ratelimit.New(&ratelimit.Config{
		MaxAttempts:  2,
		Lockout:      5 * time.Minute,
		MaxIPPerHour: 30,
	})
	setupLoginTest(t, limiter)

	for i := 0; i < 2; i++ {
		if recorder := postLogin(`{"username":"admin","password":"incorrecta"}`); recorder.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d", i+1, recorder.Code)
		}
	}

	recorder := postLogin(`{"username":"admin","password":"la-clave-del-barrio"}`)
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", recorder.Code)
	}
}

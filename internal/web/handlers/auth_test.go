package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/kozaktomas/lost-found/internal/database"
	"github.com/kozaktomas/lost-found/internal/web/middleware"
)

func newAuthHandler(t *testing.T, env *testEnv) (*AuthHandler, *middleware.SessionManager) {
	t.Helper()
	sm := middleware.NewSessionManager("test-secret")
	t.Cleanup(sm.Stop)
	return NewAuthHandler(env.users, sm), sm
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	handler, _ := newAuthHandler(t, env)

	recorder := postJSON(t, handler.Register, "/api/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
		"phone":    "+420123456789",
	})

	assertStatusCode(t, recorder, http.StatusCreated)

	user, err := env.users.GetByEmail(context.Background(), "alice@example.com")
	if err != nil || user == nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	handler, _ := newAuthHandler(t, env)

	tests := []struct {
		name    string
		payload map[string]string
		status  int
	}{
		{
			name:    "missing email",
			payload: map[string]string{"username": "bob", "password": "longpassword"},
			status:  http.StatusBadRequest,
		},
		{
			name:    "invalid email",
			payload: map[string]string{"username": "bob", "email": "not-an-email", "password": "longpassword"},
			status:  http.StatusBadRequest,
		},
		{
			name:    "short password",
			payload: map[string]string{"username": "bob", "email": "bob@example.com", "password": "short"},
			status:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, handler.Register, "/api/v1/auth/register", tt.payload)
			assertStatusCode(t, recorder, tt.status)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.users.AddUser(database.User{Username: "alice", Email: "alice@example.com"})
	handler, _ := newAuthHandler(t, env)

	recorder := postJSON(t, handler.Register, "/api/v1/auth/register", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "longpassword",
	})

	assertStatusCode(t, recorder, http.StatusConflict)
	assertJSONError(t, recorder, "username or email already taken")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	env.users.AddUser(database.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	})
	handler, sm := newAuthHandler(t, env)

	recorder := postJSON(t, handler.Login, "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	})

	assertStatusCode(t, recorder, http.StatusOK)

	var resp LoginResponse
	parseJSONResponse(t, recorder, &resp)
	if !resp.Success || resp.SessionID == "" {
		t.Fatalf("expected successful login, got %+v", resp)
	}
	if sm.GetSession(resp.SessionID) == nil {
		t.Error("session not registered in manager")
	}

	cookies := recorder.Result().Cookies()
	if len(cookies) == 0 {
		t.Error("expected session cookie to be set")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	env.users.AddUser(database.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	})
	handler, _ := newAuthHandler(t, env)

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", "alice@example.com", "wrong"},
		{"unknown user", "nobody@example.com", "correct-horse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, handler.Login, "/api/v1/auth/login", map[string]string{
				"email":    tt.email,
				"password": tt.pass,
			})
			assertStatusCode(t, recorder, http.StatusUnauthorized)
		})
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	handler, sm := newAuthHandler(t, env)

	session, err := sm.CreateSession(1)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+session.ID)
	recorder := httptest.NewRecorder()
	handler.Logout(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	if sm.GetSession(session.ID) != nil {
		t.Error("session should be deleted after logout")
	}
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	handler, sm := newAuthHandler(t, env)

	// Unauthenticated
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/status", nil)
	recorder := httptest.NewRecorder()
	handler.Status(recorder, req)
	assertStatusCode(t, recorder, http.StatusOK)

	var resp StatusResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.Authenticated {
		t.Error("expected unauthenticated status")
	}

	// Authenticated
	session, _ := sm.CreateSession(42)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/status", nil)
	req.Header.Set("Authorization", "Bearer "+session.ID)
	recorder = httptest.NewRecorder()
	handler.Status(recorder, req)

	parseJSONResponse(t, recorder, &resp)
	if !resp.Authenticated || resp.UserID != 42 {
		t.Errorf("expected authenticated status for user 42, got %+v", resp)
	}
}

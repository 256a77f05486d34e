package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm := NewSessionManager("test-secret")
	t.Cleanup(sm.Stop)
	return sm
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newTestManager(t)

	session, err := sm.CreateSession(42)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	recorder := httptest.NewRecorder()
	sm.SetSessionCookie(recorder, session)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range recorder.Result().Cookies() {
		req.AddCookie(c)
	}

	got := sm.GetSessionFromRequest(req)
	if got == nil {
		t.Fatal("expected session from signed cookie")
	}
	if got.UserID != 42 {
		t.Errorf("expected user 42, got %d", got.UserID)
	}
}

func TestSessionCookieTampering(t *testing.T) {
	sm := newTestManager(t)

	session, err := sm.CreateSession(1)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  sessionCookieName,
		Value: session.ID + ".forged-signature",
	})

	if sm.GetSessionFromRequest(req) != nil {
		t.Error("tampered cookie must not yield a session")
	}
}

func TestSessionBearerToken(t *testing.T) {
	sm := newTestManager(t)

	session, err := sm.CreateSession(7)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.ID)

	got := sm.GetSessionFromRequest(req)
	if got == nil || got.UserID != 7 {
		t.Fatalf("expected session for user 7, got %+v", got)
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	sm := newTestManager(t)

	session, err := sm.CreateSession(1)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	session.ExpiresAt = time.Now().Add(-time.Minute)

	if sm.GetSession(session.ID) != nil {
		t.Error("expired session must not be returned")
	}
}

func TestRequireAuth(t *testing.T) {
	sm := newTestManager(t)

	var seenUserID int64
	handler := RequireAuth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := GetSessionFromContext(r.Context()); s != nil {
			seenUserID = s.UserID
		}
		w.WriteHeader(http.StatusOK)
	}))

	// Without a session
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", recorder.Code)
	}

	// With a valid session
	session, _ := sm.CreateSession(9)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.ID)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200 with session, got %d", recorder.Code)
	}
	if seenUserID != 9 {
		t.Errorf("expected session user 9 in context, got %d", seenUserID)
	}
}

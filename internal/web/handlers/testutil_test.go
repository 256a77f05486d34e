package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/lost-found/internal/catalog"
	"github.com/kozaktomas/lost-found/internal/database/mock"
	"github.com/kozaktomas/lost-found/internal/match"
	"github.com/kozaktomas/lost-found/internal/web/middleware"
)

// stubExtractor returns a fixed embedding, or a configured error.
type stubExtractor struct {
	vector []float32
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, imageData []byte) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.vector != nil {
		return s.vector, nil
	}
	return []float32{1, 0}, nil
}

func (s *stubExtractor) Version() string { return "mobilenet_v2" }
func (s *stubExtractor) Dim() int        { return 2 }

// stubImageStore is an in-memory image store for handler tests.
type stubImageStore struct {
	files   map[string][]byte
	nextKey int
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{files: make(map[string][]byte)}
}

func (s *stubImageStore) Save(ctx context.Context, data []byte, originalName string) (string, error) {
	s.nextKey++
	key := fmt.Sprintf("img-%d.jpg", s.nextKey)
	s.files[key] = data
	return key, nil
}

func (s *stubImageStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, ok := s.files[key]
	if !ok {
		return nil, fmt.Errorf("no such image: %s", key)
	}
	return data, nil
}

func (s *stubImageStore) Remove(ctx context.Context, key string) error {
	delete(s.files, key)
	return nil
}

func (s *stubImageStore) Clear(ctx context.Context) error {
	s.files = make(map[string][]byte)
	return nil
}

// testEnv bundles the stores and service used across handler tests.
type testEnv struct {
	items         *mock.MockItemStore
	users         *mock.MockUserStore
	notifications *mock.MockNotificationStore
	images        *stubImageStore
	extractor     *stubExtractor
	service       *catalog.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		items:         mock.NewMockItemStore(),
		users:         mock.NewMockUserStore(),
		notifications: mock.NewMockNotificationStore(),
		images:        newStubImageStore(),
		extractor:     &stubExtractor{},
	}
	engine := match.NewEngine(env.items, nil)
	env.service = catalog.NewService(env.items, env.notifications, env.images, env.extractor, engine, nil)
	return env
}

// requestWithSession creates a request carrying an authenticated session.
func requestWithSession(r *http.Request, userID int64) *http.Request {
	session := &middleware.Session{
		ID:        "test-session",
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return r.WithContext(middleware.SetSessionInContext(r.Context(), session))
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// multipartSubmission builds the multipart body of an item submission.
func multipartSubmission(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(image)); err != nil {
			t.Fatalf("failed to write image: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}

package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/mindful/internal/config"
	"github.com/iliyamo/mindful/internal/middleware"
)

const testSecret = "handler-test-secret"

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type testServer struct {
	e     *echo.Echo
	store *memStore
	pub   *recordingPublisher
}

// newTestServer wires the handlers the same way the router does, minus
// Redis and the broker.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := newMemStore()
	pub := &recordingPublisher{}

	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler

	auth := NewAuthHandler(config.Config{JWTSecret: testSecret, BcryptCost: 4}, store)
	h := &TrackerHandler{
		Users:      store,
		Moods:      store,
		Gratitudes: gratitudeStore{store},
		Journal:    journalStore{store},
		Friends:    friendStore{store},
		Stats:      store,
		Events:     pub,
		Now:        func() time.Time { return testNow },
	}

	api := e.Group("/api")
	api.POST("/auth/signup", auth.Signup)
	api.POST("/auth/login", auth.Login)

	p := api.Group("", middleware.JWTAuth(testSecret))
	p.GET("/profile", h.GetProfile)
	p.PUT("/profile", h.UpdateProfile)
	p.POST("/moods", h.SaveMood)
	p.GET("/moods", h.ListMoods)
	p.GET("/moods/calendar", h.MoodCalendar)
	p.POST("/gratitudes", h.SaveGratitude)
	p.GET("/gratitudes", h.ListGratitudes)
	p.POST("/journal", h.CreateJournal)
	p.GET("/journal", h.ListJournal)
	p.GET("/journal/public", h.PublicJournal)
	p.DELETE("/journal/:id", h.DeleteJournal)
	p.GET("/users", h.ListUsers)
	p.POST("/friends/request", h.SendFriendRequest)
	p.GET("/friends/requests", h.ListFriendRequests)
	p.GET("/stats", h.GetStats)

	return &testServer{e: e, store: store, pub: pub}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns its token and id.
func (s *testServer) signup(t *testing.T, name, email, password string) (string, uint64) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint64 `json:"id"`
		} `json:"user"`
	}
	decode(t, rec, &resp)
	return resp.Token, resp.User.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

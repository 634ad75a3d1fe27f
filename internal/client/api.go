package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/iliyamo/mindful/internal/calendar"
	"github.com/iliyamo/mindful/internal/model"
)

// APIError is a non-2xx response from the server.  Message is the server's
// {"error": ...} text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Do sends one request to the API.  body, when non-nil, is sent as JSON;
// out, when non-nil, receives the decoded 2xx response.  The stored token is
// attached as a Bearer credential whenever there is one.
func (s *Session) Do(ctx context.Context, method, path string, body, out any) error {
	return s.send(ctx, method, path, s.Token(), body, out)
}

func (s *Session) send(ctx context.Context, method, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
		}
		return apiErr
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ----- typed helpers -----

// ProfileUpdate is the body of PUT /api/profile.
type ProfileUpdate struct {
	Name   string  `json:"name"`
	Age    *int    `json:"age,omitempty"`
	Gender *string `json:"gender,omitempty"`
	Bio    *string `json:"bio,omitempty"`
}

// MoodSaved is the response of POST /api/moods.
type MoodSaved struct {
	model.Mood
	Tip string `json:"tip"`
}

// Profile fetches the caller's profile.
func (s *Session) Profile(ctx context.Context) (model.User, error) {
	var u model.User
	err := s.Do(ctx, http.MethodGet, "/api/profile", nil, &u)
	return u, err
}

// UpdateProfile saves the profile and refreshes the cached snapshot.
func (s *Session) UpdateProfile(ctx context.Context, p ProfileUpdate) (model.User, error) {
	var u model.User
	if err := s.Do(ctx, http.MethodPut, "/api/profile", p, &u); err != nil {
		return model.User{}, err
	}
	return u, s.setUser(ctx, &u)
}

func (s *Session) SaveMood(ctx context.Context, emoji, mood, date string) (MoodSaved, error) {
	var m MoodSaved
	err := s.Do(ctx, http.MethodPost, "/api/moods", map[string]string{"emoji": emoji, "mood": mood, "date": date}, &m)
	return m, err
}

func (s *Session) Moods(ctx context.Context) ([]model.Mood, error) {
	var out []model.Mood
	err := s.Do(ctx, http.MethodGet, "/api/moods", nil, &out)
	return out, err
}

// MoodCalendar fetches the grid for month (YYYY-MM); empty means the
// server's current month.
func (s *Session) MoodCalendar(ctx context.Context, month string) (calendar.Month, error) {
	path := "/api/moods/calendar"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	var m calendar.Month
	err := s.Do(ctx, http.MethodGet, path, nil, &m)
	return m, err
}

func (s *Session) SaveGratitude(ctx context.Context, text, date string) (model.Gratitude, error) {
	var g model.Gratitude
	err := s.Do(ctx, http.MethodPost, "/api/gratitudes", map[string]string{"text": text, "date": date}, &g)
	return g, err
}

// Gratitudes lists notes, restricted to date when it is non-empty.
func (s *Session) Gratitudes(ctx context.Context, date string) ([]model.Gratitude, error) {
	path := "/api/gratitudes"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var out []model.Gratitude
	err := s.Do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (s *Session) WriteJournal(ctx context.Context, content, category string, public bool) (model.JournalEntry, error) {
	var e model.JournalEntry
	err := s.Do(ctx, http.MethodPost, "/api/journal",
		map[string]any{"content": content, "category": category, "isPublic": public}, &e)
	return e, err
}

func (s *Session) Journal(ctx context.Context) ([]model.JournalEntry, error) {
	var out []model.JournalEntry
	err := s.Do(ctx, http.MethodGet, "/api/journal", nil, &out)
	return out, err
}

func (s *Session) DeleteJournal(ctx context.Context, id uint64) error {
	return s.Do(ctx, http.MethodDelete, "/api/journal/"+strconv.FormatUint(id, 10), nil, nil)
}

// PublicJournal lists shared entries, filtered by category when non-empty.
func (s *Session) PublicJournal(ctx context.Context, category string) ([]model.JournalEntry, error) {
	path := "/api/journal/public"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out []model.JournalEntry
	err := s.Do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (s *Session) Members(ctx context.Context) ([]model.Member, error) {
	var out []model.Member
	err := s.Do(ctx, http.MethodGet, "/api/users", nil, &out)
	return out, err
}

func (s *Session) SendFriendRequest(ctx context.Context, friendID uint64) (model.FriendRequest, error) {
	var fr model.FriendRequest
	err := s.Do(ctx, http.MethodPost, "/api/friends/request", map[string]uint64{"friendId": friendID}, &fr)
	return fr, err
}

func (s *Session) FriendRequests(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := s.Do(ctx, http.MethodGet, "/api/friends/requests", nil, &ids)
	return ids, err
}

func (s *Session) Stats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	err := s.Do(ctx, http.MethodGet, "/api/stats", nil, &st)
	return st, err
}

// Package client talks to the mindful API on behalf of one user.  A Session
// holds the identity token and a profile snapshot, persists both, and
// decides whether a page may be shown or must redirect to login.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/iliyamo/mindful/internal/logging"
	"github.com/iliyamo/mindful/internal/model"
)

// Status is where the session sits in its auth lifecycle.  Rejected holds
// no credentials and behaves like Anonymous; it only records that the last
// signup or login was refused.
type Status int

const (
	Anonymous Status = iota
	Authenticating
	Authenticated
	Rejected
)

func (s Status) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Pages that stay reachable without a token.
const (
	PageLogin  = "login"
	PageSignup = "signup"
)

// Decision is the outcome of CheckAuth.  Redirect names the page to show
// instead; it is empty when the requested page may be rendered.
type Decision struct {
	Authenticated bool
	Redirect      string
}

// Session owns the client-side identity.  Construct one per process and
// hand it to whatever needs to talk to the API.
type Session struct {
	baseURL string
	http    *http.Client
	store   Storage

	mu     sync.RWMutex
	state  State
	status Status
}

// NewSession restores any persisted state from store.  A nil httpClient
// means http.DefaultClient.
func NewSession(ctx context.Context, baseURL string, httpClient *http.Client, store Storage) (*Session, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if store == nil {
		store = &MemoryStorage{}
	}
	st, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	s := &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		store:   store,
		state:   st,
	}
	if st.Token != "" {
		s.status = Authenticated
	}
	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns the last profile snapshot, or nil.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Signup registers a new account and stores the returned credentials.
func (s *Session) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	return s.authenticate(ctx, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	})
}

// Login exchanges credentials for a token and stores it.
func (s *Session) Login(ctx context.Context, email, password string) (*model.User, error) {
	return s.authenticate(ctx, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	})
}

func (s *Session) authenticate(ctx context.Context, path string, body any) (*model.User, error) {
	s.setStatus(Authenticating)

	var resp authResponse
	if err := s.send(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		s.reject(ctx)
		return nil, err
	}
	if resp.Token == "" {
		s.reject(ctx)
		return nil, errors.New("server returned no token")
	}

	st := State{Token: resp.Token, User: &resp.User}
	if err := s.store.Save(ctx, st); err != nil {
		s.setStatus(Anonymous)
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.state = st
	s.status = Authenticated
	s.mu.Unlock()

	u := resp.User
	return &u, nil
}

// Logout forgets the token and the profile snapshot.  The server is not
// involved.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.status = Anonymous
	s.mu.Unlock()
	return s.store.Clear(ctx)
}

// CheckAuth decides whether page can be shown.  With a token it asks the
// server for the profile; a rejection clears the local session.
func (s *Session) CheckAuth(ctx context.Context, page string) (Decision, error) {
	if s.Token() == "" {
		if page == PageLogin || page == PageSignup {
			return Decision{}, nil
		}
		return Decision{Redirect: PageLogin}, nil
	}

	u, err := s.Profile(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && rejectsIdentity(apiErr.Status) {
			logging.Info().Int("status", apiErr.Status).Str("page", page).Msg("session rejected by server")
			if cerr := s.Logout(ctx); cerr != nil {
				return Decision{Redirect: PageLogin}, cerr
			}
			return Decision{Redirect: PageLogin}, nil
		}
		return Decision{}, err
	}
	if err := s.setUser(ctx, &u); err != nil {
		return Decision{Authenticated: true}, err
	}
	if s.Token() == "" {
		// logged out while the profile was in flight
		return Decision{Redirect: PageLogin}, nil
	}
	return Decision{Authenticated: true}, nil
}

func rejectsIdentity(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}

// setUser refreshes the snapshot.  It is a no-op once the token is gone, so
// a profile fetch that races a Logout cannot resurrect a tokenless state.
func (s *Session) setUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	if s.state.Token == "" {
		s.mu.Unlock()
		return nil
	}
	cp := *u
	s.state.User = &cp
	st := s.state
	s.mu.Unlock()
	return s.store.Save(ctx, st)
}

func (s *Session) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

func (s *Session) reject(ctx context.Context) {
	s.mu.Lock()
	s.state = State{}
	s.status = Rejected
	s.mu.Unlock()
	if err := s.store.Clear(ctx); err != nil {
		logging.Warn().Err(err).Msg("clear rejected session")
	}
}

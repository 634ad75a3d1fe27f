package handler

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/mindful/internal/model"
	"github.com/iliyamo/mindful/internal/queue"
	"github.com/iliyamo/mindful/internal/repository"
)

// memStore is an in-memory stand-in for every store interface.  It keeps
// the same uniqueness rules as the MySQL schema.
type memStore struct {
	mu         sync.Mutex
	nextID     uint64
	users      map[uint64]model.User
	moods      map[uint64]model.Mood
	gratitudes []model.Gratitude
	journal    map[uint64]model.JournalEntry
	friends    []model.FriendRequest
	createErr  error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[uint64]model.User{},
		moods:   map[uint64]model.Mood{},
		journal: map[uint64]model.JournalEntry{},
	}
}

func (s *memStore) id() uint64 { s.nextID++; return s.nextID }

// ----- UserStore -----

func (s *memStore) Create(_ context.Context, name, email, hash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return model.User{}, s.createErr
	}
	email = repository.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	u := model.User{ID: s.id(), Name: strings.TrimSpace(name), Email: email, PasswordHash: hash, JoinDate: time.Now().UTC()}
	s.users[u.ID] = u
	return u, nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = repository.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *memStore) FindByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *memStore) UpdateProfile(_ context.Context, id uint64, p model.ProfileUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	u.Name, u.Age, u.Gender, u.Bio, u.ProfileComplete = p.Name, p.Age, p.Gender, p.Bio, true
	s.users[id] = u
	return u, nil
}

func (s *memStore) ListMembers(_ context.Context, exclude uint64) ([]model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Member{}
	for _, u := range s.users {
		if u.ID != exclude && u.ProfileComplete {
			out = append(out, model.Member{ID: u.ID, Name: u.Name, Age: u.Age, Gender: u.Gender, Bio: u.Bio, JoinDate: u.JoinDate})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *memStore) deleteUser(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// ----- MoodStore -----

func (s *memStore) Upsert(_ context.Context, uid uint64, emoji, mood, date string) (model.Mood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[uid]; !ok {
		return model.Mood{}, repository.ErrNotFound
	}
	now := time.Now().UTC()
	for id, m := range s.moods {
		if m.UserID == uid && m.Date == date {
			m.Emoji, m.Mood, m.UpdatedAt = emoji, mood, now
			s.moods[id] = m
			return m, nil
		}
	}
	m := model.Mood{ID: s.id(), UserID: uid, Emoji: emoji, Mood: mood, Date: date, CreatedAt: now, UpdatedAt: now}
	s.moods[m.ID] = m
	return m, nil
}

func (s *memStore) ListByUser(_ context.Context, uid uint64) ([]model.Mood, error) {
	return s.moodsWhere(func(m model.Mood) bool { return m.UserID == uid }, true), nil
}

func (s *memStore) ListBetween(_ context.Context, uid uint64, from, to string) ([]model.Mood, error) {
	return s.moodsWhere(func(m model.Mood) bool {
		return m.UserID == uid && m.Date >= from && m.Date <= to
	}, false), nil
}

func (s *memStore) moodsWhere(keep func(model.Mood) bool, desc bool) []model.Mood {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Mood{}
	for _, m := range s.moods {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// ----- StatsStore -----

func (s *memStore) Counts(_ context.Context, uid uint64) (model.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[uid]
	if !ok {
		return model.Counts{}, repository.ErrNotFound
	}
	c := model.Counts{JoinDate: u.JoinDate}
	for _, m := range s.moods {
		if m.UserID == uid {
			c.Mood++
		}
	}
	for _, g := range s.gratitudes {
		if g.UserID == uid {
			c.Gratitude++
		}
	}
	for _, e := range s.journal {
		if e.UserID == uid {
			c.Journal++
		}
	}
	return c, nil
}

// gratitudeStore, journalStore and friendStore wrap memStore to avoid
// method name clashes between the interfaces.
type gratitudeStore struct{ *memStore }

func (s gratitudeStore) Create(_ context.Context, uid uint64, text, date string) (model.Gratitude, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := model.Gratitude{ID: s.id(), UserID: uid, Text: text, Date: date, CreatedAt: time.Now().UTC()}
	s.gratitudes = append(s.gratitudes, g)
	return g, nil
}

func (s gratitudeStore) List(_ context.Context, uid uint64, date string) ([]model.Gratitude, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Gratitude{}
	for i := len(s.gratitudes) - 1; i >= 0; i-- {
		g := s.gratitudes[i]
		if g.UserID == uid && (date == "" || g.Date == date) {
			out = append(out, g)
		}
	}
	return out, nil
}

type journalStore struct{ *memStore }

func (s journalStore) Create(_ context.Context, uid uint64, content, category string, public bool) (model.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[uid]
	if !ok {
		return model.JournalEntry{}, repository.ErrNotFound
	}
	e := model.JournalEntry{ID: s.id(), UserID: uid, Content: content, Category: category, IsPublic: public, CreatedAt: time.Now().UTC(), UserName: u.Name}
	s.journal[e.ID] = e
	return e, nil
}

func (s journalStore) ListByUser(_ context.Context, uid uint64) ([]model.JournalEntry, error) {
	return s.entries(func(e model.JournalEntry) bool { return e.UserID == uid }), nil
}

func (s journalStore) ListPublic(_ context.Context, category string) ([]model.JournalEntry, error) {
	return s.entries(func(e model.JournalEntry) bool {
		return e.IsPublic && (category == "" || e.Category == category)
	}), nil
}

func (s journalStore) Delete(_ context.Context, id, uid uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.journal[id]
	if !ok || e.UserID != uid {
		return repository.ErrNotFound
	}
	delete(s.journal, id)
	return nil
}

func (s journalStore) entries(keep func(model.JournalEntry) bool) []model.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.JournalEntry{}
	for _, e := range s.journal {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

type friendStore struct{ *memStore }

func (s friendStore) CreateRequest(_ context.Context, from, to uint64) (model.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[to]; !ok {
		return model.FriendRequest{}, repository.ErrNotFound
	}
	for _, fr := range s.friends {
		if fr.RequesterID == from && fr.RequestedID == to {
			return model.FriendRequest{}, repository.ErrFriendRequestExists
		}
	}
	fr := model.FriendRequest{ID: s.id(), RequesterID: from, RequestedID: to, CreatedAt: time.Now().UTC()}
	s.friends = append(s.friends, fr)
	return fr, nil
}

func (s friendStore) RequestedIDs(_ context.Context, from uint64) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := []uint64{}
	for _, fr := range s.friends {
		if fr.RequesterID == from {
			ids = append(ids, fr.RequestedID)
		}
	}
	return ids, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu      sync.Mutex
	friends []queue.FriendRequestedEvent
	shared  []queue.JournalSharedEvent
}

func (p *recordingPublisher) FriendRequested(_ context.Context, ev queue.FriendRequestedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.friends = append(p.friends, ev)
}

func (p *recordingPublisher) JournalShared(_ context.Context, ev queue.JournalSharedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shared = append(p.shared, ev)
}

var errStoreDown = errors.New("connection refused")

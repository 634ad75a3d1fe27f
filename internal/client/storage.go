package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/iliyamo/mindful/internal/model"
)

// State is what a client remembers between runs: the token and the last
// profile the server returned.  The snapshot is advisory; the server stays
// the authority on who the caller is.
type State struct {
	Token string      `json:"token"`
	User  *model.User `json:"user,omitempty"`
}

// Storage persists the client State.  Load returns a zero State when
// nothing has been saved.
type Storage interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
	Clear(ctx context.Context) error
}

const stateKey = "session:current"

// BadgerStorage keeps the State in a BadgerDB so it survives restarts.
type BadgerStorage struct {
	db *badger.DB
}

func NewBadgerStorage(db *badger.DB) *BadgerStorage {
	return &BadgerStorage{db: db}
}

// OpenBadgerStorage opens (or creates) a BadgerDB under dir.  The caller
// owns the returned DB and must close it.
func OpenBadgerStorage(dir string) (*BadgerStorage, *badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open session db: %w", err)
	}
	return NewBadgerStorage(db), db, nil
}

func (s *BadgerStorage) Load(ctx context.Context) (State, error) {
	var st State
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stateKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &st)
		})
	})
	if err != nil {
		return State{}, err
	}
	return st, nil
}

func (s *BadgerStorage) Save(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(stateKey), data)
	})
}

func (s *BadgerStorage) Clear(ctx context.Context) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(stateKey)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// MemoryStorage keeps the State in memory only.
type MemoryStorage struct {
	mu sync.Mutex
	st State
}

func (m *MemoryStorage) Load(context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st, nil
}

func (m *MemoryStorage) Save(_ context.Context, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = st
	return nil
}

func (m *MemoryStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = State{}
	return nil
}

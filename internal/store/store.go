// Package store owns the in-memory player table, the caller registry and
// the system-wide usage ledger, together with their snapshot persistence.
package store

import (
	"errors"
	"sync"

	"german-gate/internal/ledger"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("duplicate user")
)

// Store is the single-writer state container behind the verification core.
// Record mutations must happen under the per-identity lock; the table-level
// mutex only guards the maps themselves.
type Store struct {
	dataDir string

	mu      sync.RWMutex
	players map[string]*Player
	users   []*User

	Global *ledger.Stats

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	saveMu sync.Mutex
}

func New(dataDir string) *Store {
	return &Store{
		dataDir: dataDir,
		players: make(map[string]*Player),
		Global:  &ledger.Stats{},
		locks:   make(map[string]*sync.Mutex),
	}
}

// LockIdentity serializes all mutating access to one player record and
// returns the unlock func. Locks are created lazily and kept for the
// lifetime of the process; records are never deleted.
func (s *Store) LockIdentity(identity string) func() {
	s.locksMu.Lock()
	lk, ok := s.locks[identity]
	if !ok {
		lk = &sync.Mutex{}
		s.locks[identity] = lk
	}
	s.locksMu.Unlock()

	lk.Lock()
	return lk.Unlock
}

func (s *Store) Player(identity string) (*Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[identity]
	return p, ok
}

// CreatePlayer registers a fresh record. Callers must hold the identity
// lock; an existing record for the identity is returned unchanged.
func (s *Store) CreatePlayer(identity, name string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.players[identity]; ok {
		return p
	}
	p := NewPlayer(identity, name)
	s.players[identity] = p
	return p
}

func (s *Store) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

func (s *Store) UserByKey(key string) (*User, bool) {
	if key == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Key == key {
			return u, true
		}
	}
	return nil, false
}

func (s *Store) UserByName(name string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Name == name {
			return u, true
		}
	}
	return nil, false
}

func (s *Store) Users() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) AddUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Name == u.Name || existing.Key == u.Key {
			return ErrDuplicateUser
		}
	}
	s.users = append(s.users, u)
	return nil
}

// Package moderation implements the manual allow-list and block-list
// operations. They bypass the classification provider entirely and never
// touch the usage ledgers: no classification work happens here.
package moderation

import (
	"context"

	"german-gate/internal/store"

	"github.com/rs/zerolog/log"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Allowlist pins the identity's verdict to German. Idempotent upsert: an
// existing record only has its name refreshed before the mode is forced.
func (s *Service) Allowlist(ctx context.Context, rawIdentity, username, reason string) error {
	return s.pin(rawIdentity, username, reason, true)
}

// Blocklist pins the identity's verdict to unknown.
func (s *Service) Blocklist(ctx context.Context, rawIdentity, username, reason string) error {
	return s.pin(rawIdentity, username, reason, false)
}

func (s *Service) pin(rawIdentity, username, reason string, allow bool) error {
	identity, err := store.NormalizeIdentity(rawIdentity)
	if err != nil {
		return ErrInvalidInput
	}
	if !store.ValidUsername(username) {
		return ErrInvalidInput
	}

	unlock := s.store.LockIdentity(identity)
	defer unlock()

	p, ok := s.store.Player(identity)
	if !ok {
		p = s.store.CreatePlayer(identity, username)
	} else if p.LastName != username {
		p.RenameTo(username)
	}
	if allow {
		p.SetAllowlisted(reason)
	} else {
		p.SetBlocklisted(reason)
	}
	log.Info().Str("identity", identity).Str("username", username).Bool("allow", allow).Msg("verdict pinned")
	return nil
}

// PlayerInfo returns a consistent copy of the record for read-only
// endpoints.
func (s *Service) PlayerInfo(ctx context.Context, rawIdentity string) (*PlayerInfo, error) {
	identity, err := store.NormalizeIdentity(rawIdentity)
	if err != nil {
		return nil, ErrInvalidInput
	}

	unlock := s.store.LockIdentity(identity)
	defer unlock()

	p, ok := s.store.Player(identity)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &PlayerInfo{
		Identity:      p.Identity,
		LastName:      p.LastName,
		Mode:          p.Mode.String(),
		Language:      p.Language,
		Reason:        p.Reason,
		Note:          p.Note,
		CooldownSince: p.CooldownSince,
		WasBanned:     p.WasBanned,
	}, nil
}

// Package check implements the verification use case: deciding whether a
// player's username is German, whether the player is banned, and whether
// the cooldown window permits another check.
package check

import (
	"context"
	"errors"
	"time"

	"german-gate/internal/infer"
	"german-gate/internal/ledger"
	"german-gate/internal/store"

	"github.com/rs/zerolog/log"
)

const DefaultCooldownSeconds = 12 * 60 * 60

type Classifier interface {
	Classify(ctx context.Context, username string) (infer.Result, error)
}

type BanChecker interface {
	IsBanned(ctx context.Context, identity string) (bool, error)
}

type Service struct {
	store      *store.Store
	classifier Classifier
	bans       BanChecker
	window     int64
	now        func() time.Time
}

func NewService(st *store.Store, classifier Classifier, bans BanChecker, cooldownSeconds int64) *Service {
	if cooldownSeconds <= 0 {
		cooldownSeconds = DefaultCooldownSeconds
	}
	return &Service{
		store:      st,
		classifier: classifier,
		bans:       bans,
		window:     cooldownSeconds,
		now:        time.Now,
	}
}

// Verify runs the whole verification state machine for one request. All
// mutating access to the player record and to both ledgers happens under
// the per-identity lock; concurrent requests for distinct identities
// proceed in parallel.
func (s *Service) Verify(ctx context.Context, rawIdentity, username string, caller *store.User) (*Outcome, error) {
	identity, err := store.NormalizeIdentity(rawIdentity)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if !store.ValidUsername(username) {
		return nil, ErrInvalidInput
	}

	scope := ledger.Scope{Global: s.store.Global, Caller: caller.Stats}
	unlock := s.store.LockIdentity(identity)
	defer unlock()

	p, found := s.store.Player(identity)
	first := !found
	switch {
	case !found:
		log.Info().Str("identity", identity).Str("username", username).Msg("first check")
		// The check is counted and the record created before
		// classification runs; both persist even if classification
		// fails, since they reflect observed input, not a verdict.
		scope.CountCheck()
		p = s.store.CreatePlayer(identity, username)
		if err := s.classify(ctx, p, scope); err != nil {
			return nil, err
		}
	case p.LastName != username:
		log.Info().Str("identity", identity).Str("old_name", p.LastName).Str("new_name", username).Msg("player renamed")
		p.RenameTo(username)
		if p.Mode == store.ModeInferred {
			if err := s.classify(ctx, p, scope); err != nil {
				return nil, err
			}
		}
	}

	out := &Outcome{
		Verdict:    p.Language,
		Source:     p.SourceLabel(),
		Reason:     p.Reason,
		FirstCheck: first,
	}
	if p.Language != store.VerdictGerman {
		out.Terminal = true
		return out, nil
	}

	banned, err := s.bans.IsBanned(ctx, identity)
	if err != nil {
		log.Error().Err(err).Str("identity", identity).Msg("ban lookup failed")
		return nil, ErrBanCheckUnavailable
	}
	if banned {
		if p.MarkBanObserved() {
			scope.CountBan()
		}
		out.Banned = true
		return out, nil
	}

	now := s.now().Unix()
	if elapsed := now - p.CooldownSince; elapsed < s.window {
		out.CooldownRemaining = s.window - elapsed
		return out, nil
	}
	p.MarkCooldownConsumed(now)
	return out, nil
}

// classify refreshes an inferred record's verdict from the provider.
// Allowlisted and blocklisted records keep their fixed verdict without an
// external call.
func (s *Service) classify(ctx context.Context, p *store.Player, scope ledger.Scope) error {
	if p.Mode != store.ModeInferred {
		return nil
	}
	res, err := s.classifier.Classify(ctx, p.LastName)
	if err != nil {
		log.Error().Err(err).Str("username", p.LastName).Msg("language inference failed")
		return ErrClassificationUnavailable
	}
	scope.AddCost(res.CostUSD)
	if res.Label == store.VerdictGerman && p.Language != store.VerdictGerman {
		scope.CountGermanVerdict()
	}
	if err := p.RecordClassification(res.Label, res.Reason); err != nil {
		// Unreachable given the mode guard above, but surfaced rather
		// than swallowed.
		return errors.Join(ErrClassificationUnavailable, err)
	}
	return nil
}

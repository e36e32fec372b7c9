package store

import "errors"

// InferMode selects which source governs a player's language verdict.
type InferMode int

const (
	ModeInferred InferMode = iota
	ModeAllowlisted
	ModeBlocklisted
)

// VerdictGerman is the only verdict value with downstream significance:
// ban and cooldown logic run exclusively for players carrying it.
const VerdictGerman = "german"

const verdictUnknown = "unknown"

// maxNoteLen bounds moderator-supplied notes.
const maxNoteLen = 128

var ErrNotInferred = errors.New("record is not in inferred mode")

// Player is the per-identity verification record. It is a plain value
// object: all mutating access must be serialized through Store.LockIdentity.
type Player struct {
	Identity string

	// LastName is the most recently observed username. A change triggers
	// re-classification for records in inferred mode.
	LastName string

	Mode     InferMode
	Language string
	Reason   string

	// Note is the moderator-supplied text attached by allowlist/blocklist
	// operations. It is never surfaced in verification outcomes.
	Note string

	// CooldownSince is the unix timestamp of the last consumed
	// cooldown-gated check; 0 means never checked.
	CooldownSince int64

	// WasBanned dedups ban statistics: once set it never resets.
	WasBanned bool
}

func NewPlayer(identity, name string) *Player {
	return &Player{
		Identity: identity,
		LastName: name,
		Mode:     ModeInferred,
		Language: verdictUnknown,
	}
}

func (p *Player) RenameTo(name string) {
	p.LastName = name
}

func (p *Player) SetAllowlisted(note string) {
	p.Mode = ModeAllowlisted
	p.Language = VerdictGerman
	p.Reason = ""
	p.Note = truncateNote(note)
}

func (p *Player) SetBlocklisted(note string) {
	p.Mode = ModeBlocklisted
	p.Language = verdictUnknown
	p.Reason = ""
	p.Note = truncateNote(note)
}

// RecordClassification stores a provider verdict verbatim. The label is not
// validated; any string is accepted. Only inferred records may be updated.
func (p *Player) RecordClassification(label, reason string) error {
	if p.Mode != ModeInferred {
		return ErrNotInferred
	}
	p.Language = label
	p.Reason = reason
	return nil
}

// MarkCooldownConsumed advances the cooldown anchor. It never moves the
// anchor backwards.
func (p *Player) MarkCooldownConsumed(now int64) {
	if now > p.CooldownSince {
		p.CooldownSince = now
	}
}

// MarkBanObserved records a ban observation and reports whether it is the
// first one for this player.
func (p *Player) MarkBanObserved() bool {
	first := !p.WasBanned
	p.WasBanned = true
	return first
}

// SourceLabel is the outward name for the verdict's origin.
func (p *Player) SourceLabel() string {
	switch p.Mode {
	case ModeAllowlisted:
		return "database"
	case ModeBlocklisted:
		return "blocklist"
	default:
		return "infer"
	}
}

func (m InferMode) String() string {
	switch m {
	case ModeAllowlisted:
		return "allowlisted"
	case ModeBlocklisted:
		return "blocklisted"
	default:
		return "inferred"
	}
}

func truncateNote(s string) string {
	r := []rune(s)
	if len(r) > maxNoteLen {
		return string(r[:maxNoteLen])
	}
	return s
}

// Package ledger holds the usage and cost counters kept per caller and
// system-wide. Exactly-once semantics for the conditional counters are the
// orchestrator's job; this package only guarantees that each increment is
// applied atomically to a single ledger.
package ledger

import "sync"

// Stats is one usage ledger.
type Stats struct {
	mu     sync.Mutex
	checks int64
	german int64
	banned int64
	cost   float64
}

// Snapshot is the JSON form of a ledger, matching the persisted layout.
type Snapshot struct {
	Checks int64   `json:"checks"`
	German int64   `json:"german"`
	Banned int64   `json:"banned"`
	Cost   float64 `json:"cost"`
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Checks: s.checks, German: s.german, Banned: s.banned, Cost: s.cost}
}

func (s *Stats) Restore(sn Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = sn.Checks
	s.german = sn.German
	s.banned = sn.Banned
	s.cost = sn.Cost
}

func (s *Stats) addCheck() {
	s.mu.Lock()
	s.checks++
	s.mu.Unlock()
}

func (s *Stats) addGerman() {
	s.mu.Lock()
	s.german++
	s.mu.Unlock()
}

func (s *Stats) addBan() {
	s.mu.Lock()
	s.banned++
	s.mu.Unlock()
}

func (s *Stats) addCost(usd float64) {
	if usd <= 0 {
		return
	}
	s.mu.Lock()
	s.cost += usd
	s.mu.Unlock()
}

// Scope pairs the system-wide ledger with the acting caller's ledger.
// Every qualifying event is recorded on both in the same step.
type Scope struct {
	Global *Stats
	Caller *Stats
}

func (sc Scope) CountCheck() {
	sc.Global.addCheck()
	sc.Caller.addCheck()
}

func (sc Scope) CountGermanVerdict() {
	sc.Global.addGerman()
	sc.Caller.addGerman()
}

func (sc Scope) CountBan() {
	sc.Global.addBan()
	sc.Caller.addBan()
}

func (sc Scope) AddCost(usd float64) {
	sc.Global.addCost(usd)
	sc.Caller.addCost(usd)
}

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"german-gate/internal/ledger"
)

// Persistence is whole-table JSON snapshots at explicit checkpoints
// (startup load, shutdown save, optional periodic ticks). Mutations between
// checkpoints are in-memory only; that trade-off is part of the design.
const (
	playersFile = "players.json"
	usersFile   = "users.json"
	statsFile   = "global_stats.json"
)

type playerDump struct {
	LastName      string `json:"last_name"`
	InferState    int    `json:"infer_state"`
	Language      string `json:"language"`
	InferReason   string `json:"infer_reason"`
	Note          string `json:"note,omitempty"`
	CooldownSince int64  `json:"cooldown_since"`
	WasBanned     bool   `json:"was_banned"`
}

type userDump struct {
	Name        string          `json:"name"`
	Key         string          `json:"key"`
	Permissions []string        `json:"permissions"`
	Disabled    bool            `json:"disabled,omitempty"`
	Group       string          `json:"group,omitempty"`
	Stats       ledger.Snapshot `json:"stats"`
}

// Load reads all snapshot files from the data dir. Missing files are not an
// error: a fresh deployment starts empty.
func (s *Store) Load() error {
	var players map[string]playerDump
	if err := readJSONFile(filepath.Join(s.dataDir, playersFile), &players); err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	var users []userDump
	if err := readJSONFile(filepath.Join(s.dataDir, usersFile), &users); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	var stats ledger.Snapshot
	if err := readJSONFile(filepath.Join(s.dataDir, statsFile), &stats); err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[string]*Player, len(players))
	for identity, d := range players {
		s.players[identity] = &Player{
			Identity:      identity,
			LastName:      d.LastName,
			Mode:          InferMode(d.InferState),
			Language:      d.Language,
			Reason:        d.InferReason,
			Note:          d.Note,
			CooldownSince: d.CooldownSince,
			WasBanned:     d.WasBanned,
		}
	}
	s.users = make([]*User, 0, len(users))
	for _, d := range users {
		u := NewUser(d.Name, d.Key, d.Permissions, d.Group)
		u.Disabled = d.Disabled
		u.Stats.Restore(d.Stats)
		s.users = append(s.users, u)
	}
	s.Global.Restore(stats)
	return nil
}

// Save writes all tables as one snapshot. Each file is written atomically
// via temp-file rename. Serialized: the periodic ticker and the shutdown
// path may call Save at the same time, and both write the same temp paths.
func (s *Store) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(s.dataDir, playersFile), s.dumpPlayers()); err != nil {
		return fmt.Errorf("save players: %w", err)
	}
	if err := writeJSONFile(filepath.Join(s.dataDir, usersFile), s.dumpUsers()); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	if err := writeJSONFile(filepath.Join(s.dataDir, statsFile), s.Global.Snapshot()); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

func (s *Store) dumpPlayers() map[string]playerDump {
	s.mu.RLock()
	ids := make([]string, 0, len(s.players))
	for id := range s.players {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	out := make(map[string]playerDump, len(ids))
	for _, id := range ids {
		// Take the identity lock so an in-flight verify cannot be
		// observed mid-mutation.
		unlock := s.LockIdentity(id)
		if p, ok := s.Player(id); ok {
			out[id] = playerDump{
				LastName:      p.LastName,
				InferState:    int(p.Mode),
				Language:      p.Language,
				InferReason:   p.Reason,
				Note:          p.Note,
				CooldownSince: p.CooldownSince,
				WasBanned:     p.WasBanned,
			}
		}
		unlock()
	}
	return out
}

func (s *Store) dumpUsers() []userDump {
	users := s.Users()
	out := make([]userDump, 0, len(users))
	for _, u := range users {
		out = append(out, userDump{
			Name:        u.Name,
			Key:         u.Key,
			Permissions: u.Perms,
			Disabled:    u.Disabled,
			Group:       u.Group,
			Stats:       u.Stats.Snapshot(),
		})
	}
	return out
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

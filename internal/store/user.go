package store

import "german-gate/internal/ledger"

// User is an authenticated API caller. The verification core only uses it
// to attribute ledger updates; permissions are enforced at the HTTP layer.
type User struct {
	Name     string
	Key      string
	Perms    []string
	Disabled bool
	Group    string

	Stats *ledger.Stats
}

func NewUser(name, key string, perms []string, group string) *User {
	return &User{
		Name:  name,
		Key:   key,
		Perms: perms,
		Group: group,
		Stats: &ledger.Stats{},
	}
}

func (u *User) HasPerm(needed string) bool {
	for _, p := range u.Perms {
		if p == needed {
			return true
		}
	}
	return false
}

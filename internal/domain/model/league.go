// Package model contains domain models passed between layers.
package model

import "slices"

// Player is a league member registered against a local chat account.
type Player struct {
	Name      string `koanf:"name" json:"name"`
	AccountID int64  `koanf:"account_id" json:"account_id"`
}

// League identifies a remote fantasy league and how its entrants map to
// local accounts. It is read-only once loaded.
type League struct {
	Key      string            `koanf:"key" json:"key"` // chat guild the league is bound to
	Tag      string            `koanf:"tag" json:"tag"` // snapshot filename stem
	LeagueID string            `koanf:"league_id" json:"league_id"`
	Players  map[string]Player `koanf:"players" json:"players"` // remote user id -> player
	Ignore   []string          `koanf:"ignore" json:"ignore"`
}

// Ignored reports whether remoteID is on the league's ignore-list.
func (l League) Ignored(remoteID string) bool {
	return slices.Contains(l.Ignore, remoteID)
}

// Player returns the registered player for remoteID.
func (l League) Player(remoteID string) (Player, bool) {
	p, ok := l.Players[remoteID]
	return p, ok
}

// RemoteID returns the remote user id registered for a local account.
func (l League) RemoteID(accountID int64) (string, bool) {
	for id, p := range l.Players {
		if p.AccountID == accountID {
			return id, true
		}
	}
	return "", false
}

// Lookup maps remote driver and team ids to display names.
type Lookup map[string]string

// Resolve returns the display name for id, or nil when the id is not in the table.
func (l Lookup) Resolve(id string) *string {
	name, ok := l[id]
	if !ok {
		return nil
	}
	return &name
}

// NameOr returns the display name for id, falling back to fallback.
func (l Lookup) NameOr(id, fallback string) string {
	if name, ok := l[id]; ok {
		return name
	}
	return fallback
}

// Credentials authenticate against the fantasy platform.
type Credentials struct {
	Login    string `koanf:"login"`
	Password string `koanf:"password"`
}

// Empty reports whether either half of the credentials is missing.
func (c Credentials) Empty() bool {
	return c.Login == "" || c.Password == ""
}

// Package auth is the injected capability gate. It is deliberately a
// plain grant table so the registry core can be tested without a real
// authorization subsystem behind it.
package auth

import (
	"sync"
)

type Gate struct {
	mu    sync.RWMutex
	roles map[string]map[string]bool
}

func NewGate() *Gate {
	return &Gate{
		roles: make(map[string]map[string]bool),
	}
}

func (g *Gate) Grant(role, principal string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.roles[role] == nil {
		g.roles[role] = make(map[string]bool)
	}
	g.roles[role][principal] = true
}

func (g *Gate) Revoke(role, principal string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.roles[role], principal)
}

func (g *Gate) HasRole(role, principal string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.roles[role][principal]
}

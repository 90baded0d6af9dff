package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plinthlabs/tokenbook/auth"
)

func TestGrantRevoke(t *testing.T) {
	gate := auth.NewGate()

	assert.False(t, gate.HasRole("admin", "alice"))

	gate.Grant("admin", "alice")
	assert.True(t, gate.HasRole("admin", "alice"))
	assert.False(t, gate.HasRole("minter", "alice"))
	assert.False(t, gate.HasRole("admin", "bob"))

	gate.Revoke("admin", "alice")
	assert.False(t, gate.HasRole("admin", "alice"))

	// revoking an absent grant is harmless
	gate.Revoke("minter", "nobody")
}

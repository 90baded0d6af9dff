package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinthlabs/tokenbook/fault"
	"github.com/plinthlabs/tokenbook/ledger"
)

func newLedger(t *testing.T) *ledger.Ledger {
	l, err := ledger.New(nil)
	require.NoError(t, err)
	return l
}

func TestMintAndSupply(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.Mint("op", "bob", 1, 5))
	assert.Equal(t, uint64(5), l.BalanceOf("bob", 1))
	assert.Equal(t, uint64(5), l.TotalSupply(1))
	assert.True(t, l.Known(1))
	assert.False(t, l.Known(2))
}

func TestMintInvalidRecipient(t *testing.T) {
	l := newLedger(t)

	assert.Equal(t, fault.ErrInvalidRecipient, l.Mint("op", "", 1, 5))
}

func TestZeroAmountMintAccepted(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.Mint("op", "bob", 1, 0))
	assert.False(t, l.Known(1))
	assert.Zero(t, l.TotalSupply(1))
}

func TestConservation(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.MintBatch("op", "bob", []uint64{1, 2}, []uint64{10, 4}))
	require.NoError(t, l.Transfer("bob", "bob", "eve", 1, 3))
	require.NoError(t, l.Burn("bob", "bob", 2, 1))

	assert.Equal(t, l.TotalSupply(1), l.BalanceOf("bob", 1)+l.BalanceOf("eve", 1))
	assert.Equal(t, l.TotalSupply(2), l.BalanceOf("bob", 2)+l.BalanceOf("eve", 2))
}

func TestOperatorAuthorization(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.Mint("op", "bob", 1, 10))

	assert.Equal(t, fault.ErrUnauthorized, l.Transfer("eve", "bob", "eve", 1, 1))
	assert.Equal(t, fault.ErrUnauthorized, l.Burn("eve", "bob", 1, 1))

	require.NoError(t, l.SetApprovalForAll("bob", "eve", true))
	assert.True(t, l.IsApprovedForAll("bob", "eve"))
	require.NoError(t, l.Transfer("eve", "bob", "eve", 1, 1))
	require.NoError(t, l.Burn("eve", "bob", 1, 1))

	require.NoError(t, l.SetApprovalForAll("bob", "eve", false))
	assert.Equal(t, fault.ErrUnauthorized, l.Transfer("eve", "bob", "eve", 1, 1))
}

func TestBatchAtomicity(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.MintBatch("op", "bob", []uint64{1, 2}, []uint64{5, 5}))

	err := l.TransferBatch("bob", "bob", "eve", []uint64{1, 2}, []uint64{5, 6})
	assert.Equal(t, fault.ErrInsufficientBalance, err)
	assert.Equal(t, uint64(5), l.BalanceOf("bob", 1))
	assert.Equal(t, uint64(5), l.BalanceOf("bob", 2))
	assert.Zero(t, l.BalanceOf("eve", 1))

	// repeated IDs in one batch must be validated against the sum
	err = l.TransferBatch("bob", "bob", "eve", []uint64{1, 1}, []uint64{3, 3})
	assert.Equal(t, fault.ErrInsufficientBalance, err)
	assert.Equal(t, uint64(5), l.BalanceOf("bob", 1))

	require.NoError(t, l.TransferBatch("bob", "bob", "eve", []uint64{1, 1}, []uint64{3, 2}))
	assert.Equal(t, uint64(5), l.BalanceOf("eve", 1))

	err = l.MintBatch("op", "bob", []uint64{1}, []uint64{1, 2})
	assert.Equal(t, fault.ErrLengthMismatch, err)
}

func TestPauseBlocksEverything(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.Mint("op", "bob", 1, 5))
	require.NoError(t, l.Pause())
	assert.True(t, l.Paused())

	assert.Equal(t, fault.ErrSystemPaused, l.Mint("op", "bob", 1, 1))
	assert.Equal(t, fault.ErrSystemPaused, l.Burn("bob", "bob", 1, 1))
	assert.Equal(t, fault.ErrSystemPaused, l.Transfer("bob", "bob", "eve", 1, 1))
	assert.Equal(t, fault.ErrSystemPaused, l.TransferBatch("bob", "bob", "eve", []uint64{1}, []uint64{1}))

	require.NoError(t, l.Resume())
	assert.NoError(t, l.Transfer("bob", "bob", "eve", 1, 1))
}

func TestHookSeesCommittedDeltas(t *testing.T) {
	l := newLedger(t)

	type call struct {
		from, to string
		ids      []uint64
		amounts  []uint64
	}
	var calls []call
	l.SetHook(func(operator, from, to string, ids, amounts []uint64) {
		calls = append(calls, call{from, to, ids, amounts})
	})

	require.NoError(t, l.Mint("op", "bob", 1, 5))
	require.NoError(t, l.TransferBatch("bob", "bob", "eve", []uint64{1, 1}, []uint64{2, 0}))

	// a failing operation must not reach the hook
	require.Error(t, l.Transfer("bob", "bob", "eve", 1, 100))

	require.Len(t, calls, 2)
	assert.Equal(t, "", calls[0].from)
	assert.Equal(t, "bob", calls[0].to)
	assert.Equal(t, []uint64{5}, calls[0].amounts)
	assert.Equal(t, []uint64{2, 0}, calls[1].amounts)
}

func TestBalanceOfBatch(t *testing.T) {
	l := newLedger(t)

	require.NoError(t, l.MintBatch("op", "bob", []uint64{1, 2}, []uint64{5, 7}))

	balances, err := l.BalanceOfBatch([]string{"bob", "bob", "eve"}, []uint64{1, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 7, 0}, balances)

	_, err = l.BalanceOfBatch([]string{"bob"}, []uint64{1, 2})
	assert.Equal(t, fault.ErrLengthMismatch, err)
}

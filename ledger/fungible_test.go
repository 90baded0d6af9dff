package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinthlabs/tokenbook/fault"
	"github.com/plinthlabs/tokenbook/ledger"
)

func TestFungibleTransferFrom(t *testing.T) {
	f := ledger.NewFungible()

	f.Deposit("usdx", "bob", 100)

	err := f.TransferFrom("usdx", "custody", "bob", "custody", 30)
	assert.Equal(t, fault.ErrInsufficientAllowance, err)

	f.Approve("usdx", "bob", "custody", 50)
	require.NoError(t, f.TransferFrom("usdx", "custody", "bob", "custody", 30))
	assert.Equal(t, uint64(70), f.BalanceOf("usdx", "bob"))
	assert.Equal(t, uint64(30), f.BalanceOf("usdx", "custody"))

	// the allowance is consumed
	err = f.TransferFrom("usdx", "custody", "bob", "custody", 30)
	assert.Equal(t, fault.ErrInsufficientAllowance, err)

	err = f.TransferFrom("usdx", "custody", "bob", "custody", 200)
	assert.Equal(t, fault.ErrInsufficientBalance, err)

	err = f.TransferFrom("usdx", "bob", "bob", "", 1)
	assert.Equal(t, fault.ErrInvalidRecipient, err)

	// owners move their own funds without an allowance
	require.NoError(t, f.TransferFrom("usdx", "bob", "bob", "eve", 10))
	assert.Equal(t, uint64(60), f.BalanceOf("usdx", "bob"))
	assert.Equal(t, uint64(10), f.BalanceOf("usdx", "eve"))

	// the spender need not be the recipient
	f.Approve("usdx", "bob", "dex", 5)
	require.NoError(t, f.TransferFrom("usdx", "dex", "bob", "carol", 5))
	assert.Equal(t, uint64(5), f.BalanceOf("usdx", "carol"))
	assert.Equal(t, uint64(55), f.BalanceOf("usdx", "bob"))

	// balances are per asset
	assert.Zero(t, f.BalanceOf("eurx", "bob"))
}

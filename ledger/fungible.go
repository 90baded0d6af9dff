package ledger

import (
	"sync"

	"github.com/plinthlabs/tokenbook/fault"
)

// Fungible is a minimal external fungible-asset ledger with allowance
// semantics, enough for the registry to collect swap payments. Balances
// are keyed asset then account; allowances asset, owner, then spender.
type Fungible struct {
	mu         sync.Mutex
	balances   map[string]map[string]uint64
	allowances map[string]map[string]map[string]uint64
}

func NewFungible() *Fungible {
	return &Fungible{
		balances:   make(map[string]map[string]uint64),
		allowances: make(map[string]map[string]map[string]uint64),
	}
}

// Deposit credits units out of band, standing in for an external inflow.
func (f *Fungible) Deposit(asset, account string, amount uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.balances[asset] == nil {
		f.balances[asset] = make(map[string]uint64)
	}
	f.balances[asset][account] += amount
}

// Approve lets spender move up to amount of owner's asset.
func (f *Fungible) Approve(asset, owner, spender string, amount uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.allowances[asset] == nil {
		f.allowances[asset] = make(map[string]map[string]uint64)
	}
	if f.allowances[asset][owner] == nil {
		f.allowances[asset][owner] = make(map[string]uint64)
	}
	f.allowances[asset][owner][spender] = amount
}

func (f *Fungible) BalanceOf(asset, account string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.balances[asset][account]
}

// TransferFrom moves amount of asset from the owner to the recipient on
// the spender's authority, consuming the spender's allowance. Owners
// move their own funds without one.
func (f *Fungible) TransferFrom(asset, spender, from, to string, amount uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if to == "" {
		return fault.ErrInvalidRecipient
	}
	if f.balances[asset][from] < amount {
		return fault.ErrInsufficientBalance
	}
	if spender != from && f.allowances[asset][from][spender] < amount {
		return fault.ErrInsufficientAllowance
	}
	if f.balances[asset] == nil {
		f.balances[asset] = make(map[string]uint64)
	}
	f.balances[asset][from] -= amount
	f.balances[asset][to] += amount
	if spender != from && amount > 0 {
		f.allowances[asset][from][spender] -= amount
	}
	return nil
}

// Package ledger is the multi-token balance ledger behind the registry:
// per-account per-token balances, operator approvals, mint/burn and
// single/batch transfer, with a post-commit hook over the full delta list
// of each logical operation.
package ledger

import (
	"sync"

	"github.com/vmihailenco/msgpack/v4"

	"github.com/plinthlabs/tokenbook/fault"
)

const statePropertyKey = "LEDGER:STATE"

// PropertyStore persists opaque property blobs; nil means ephemeral.
type PropertyStore interface {
	WriteProperty(key, val []byte) error
	ReadProperty(key []byte) ([]byte, error)
}

// Hook observes the committed deltas of one logical operation. From is
// empty for mints, to is empty for burns.
type Hook func(operator, from, to string, ids, amounts []uint64)

type Ledger struct {
	mu    sync.Mutex
	props PropertyStore
	hook  Hook

	balances  map[uint64]map[string]uint64
	supply    map[uint64]uint64
	known     map[uint64]bool
	operators map[string]map[string]bool
	paused    bool
}

// serialized form of the whole ledger; small enough at the expected
// cardinality to snapshot per commit
type ledgerState struct {
	Balances  map[uint64]map[string]uint64
	Supply    map[uint64]uint64
	Known     []uint64
	Operators map[string]map[string]bool
	Paused    bool
}

func New(props PropertyStore) (*Ledger, error) {
	l := &Ledger{
		props:     props,
		balances:  make(map[uint64]map[string]uint64),
		supply:    make(map[uint64]uint64),
		known:     make(map[uint64]bool),
		operators: make(map[string]map[string]bool),
	}
	if props == nil {
		return l, nil
	}
	bs, err := props.ReadProperty([]byte(statePropertyKey))
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return l, nil
	}
	var state ledgerState
	err = msgpack.Unmarshal(bs, &state)
	if err != nil {
		return nil, err
	}
	// msgpack decodes empty maps as nil
	if state.Balances != nil {
		l.balances = state.Balances
	}
	if state.Supply != nil {
		l.supply = state.Supply
	}
	if state.Operators != nil {
		l.operators = state.Operators
	}
	l.paused = state.Paused
	for _, id := range state.Known {
		l.known[id] = true
	}
	return l, nil
}

// SetHook installs the post-commit observer; the hook runs synchronously
// inside the committing operation.
func (l *Ledger) SetHook(hook func(operator, from, to string, ids, amounts []uint64)) {
	l.hook = hook
}

// Mint credits amount fresh units of id to the recipient. A zero amount
// is accepted and commits without ever marking the token as known.
func (l *Ledger) Mint(operator, to string, id, amount uint64) error {
	return l.MintBatch(operator, to, []uint64{id}, []uint64{amount})
}

func (l *Ledger) MintBatch(operator, to string, ids, amounts []uint64) error {
	if len(ids) != len(amounts) {
		return fault.ErrLengthMismatch
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return fault.ErrSystemPaused
	}
	if to == "" {
		return fault.ErrInvalidRecipient
	}
	for i, id := range ids {
		l.credit(to, id, amounts[i])
		l.supply[id] += amounts[i]
		if amounts[i] > 0 {
			l.known[id] = true
		}
	}
	l.persist()
	l.fire(operator, "", to, ids, amounts)
	return nil
}

// Burn destroys amount units held by from. The operator must be the
// holder or approved by the holder.
func (l *Ledger) Burn(operator, from string, id, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return fault.ErrSystemPaused
	}
	if err := l.authorized(operator, from); err != nil {
		return err
	}
	if l.balance(from, id) < amount {
		return fault.ErrInsufficientBalance
	}
	l.debit(from, id, amount)
	l.supply[id] -= amount
	l.persist()
	l.fire(operator, from, "", []uint64{id}, []uint64{amount})
	return nil
}

func (l *Ledger) Transfer(operator, from, to string, id, amount uint64) error {
	return l.TransferBatch(operator, from, to, []uint64{id}, []uint64{amount})
}

// TransferBatch validates every leg before applying any, so a failing leg
// leaves no partial state.
func (l *Ledger) TransferBatch(operator, from, to string, ids, amounts []uint64) error {
	if len(ids) != len(amounts) {
		return fault.ErrLengthMismatch
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return fault.ErrSystemPaused
	}
	if to == "" {
		return fault.ErrInvalidRecipient
	}
	if err := l.authorized(operator, from); err != nil {
		return err
	}
	needed := make(map[uint64]uint64)
	for i, id := range ids {
		needed[id] += amounts[i]
	}
	for id, amount := range needed {
		if l.balance(from, id) < amount {
			return fault.ErrInsufficientBalance
		}
	}
	for i, id := range ids {
		l.debit(from, id, amounts[i])
		l.credit(to, id, amounts[i])
	}
	l.persist()
	l.fire(operator, from, to, ids, amounts)
	return nil
}

func (l *Ledger) BalanceOf(account string, id uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balance(account, id)
}

func (l *Ledger) BalanceOfBatch(accounts []string, ids []uint64) ([]uint64, error) {
	if len(accounts) != len(ids) {
		return nil, fault.ErrLengthMismatch
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	balances := make([]uint64, len(ids))
	for i := range ids {
		balances[i] = l.balance(accounts[i], ids[i])
	}
	return balances, nil
}

func (l *Ledger) TotalSupply(id uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.supply[id]
}

// Known reports whether the token has ever had positive total supply.
// It stays true after a full burn.
func (l *Ledger) Known(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.known[id]
}

func (l *Ledger) SetApprovalForAll(owner, operator string, approved bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.operators[owner] == nil {
		l.operators[owner] = make(map[string]bool)
	}
	l.operators[owner][operator] = approved
	l.persist()
	return nil
}

func (l *Ledger) IsApprovedForAll(owner, operator string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.operators[owner][operator]
}

// Pause blocks every balance mutation until Resume.
func (l *Ledger) Pause() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.paused = true
	l.persist()
	return nil
}

func (l *Ledger) Resume() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.paused = false
	l.persist()
	return nil
}

func (l *Ledger) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.paused
}

func (l *Ledger) authorized(operator, from string) error {
	if operator != from && !l.operators[from][operator] {
		return fault.ErrUnauthorized
	}
	return nil
}

func (l *Ledger) balance(account string, id uint64) uint64 {
	return l.balances[id][account]
}

func (l *Ledger) credit(account string, id, amount uint64) {
	if l.balances[id] == nil {
		l.balances[id] = make(map[string]uint64)
	}
	l.balances[id][account] += amount
}

func (l *Ledger) debit(account string, id, amount uint64) {
	l.balances[id][account] -= amount
}

func (l *Ledger) fire(operator, from, to string, ids, amounts []uint64) {
	if l.hook != nil {
		l.hook(operator, from, to, ids, amounts)
	}
}

// a snapshot that cannot be written would silently desync balances from
// their durable copy on the next restart
func (l *Ledger) persist() {
	if l.props == nil {
		return
	}
	state := &ledgerState{
		Balances:  l.balances,
		Supply:    l.supply,
		Operators: l.operators,
		Paused:    l.paused,
	}
	for id := range l.known {
		state.Known = append(state.Known, id)
	}
	val, err := msgpack.Marshal(state)
	if err != nil {
		panic(err)
	}
	err = l.props.WriteProperty([]byte(statePropertyKey), val)
	if err != nil {
		panic(err)
	}
}

package registry

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plinthlabs/tokenbook/fault"
)

// capabilities checked through the gate before mutating operations
const (
	RoleAdmin             = "admin"
	RoleMinter            = "minter"
	RoleCollectionCreator = "collection-creator"
)

// the empty account string is the zero-address sentinel used for the
// source of mints and the destination of burns
const ZeroAccount = ""

// Registry mints and groups tokens into suffix-named collections and keeps
// an append-only transfer history per token. All mutable state is guarded
// by one lock; each public operation is a single atomic transaction.
type Registry struct {
	mu       sync.RWMutex
	store    Store
	ledger   BalanceLedger
	gate     Gate
	fungible FungibleLedger
	clock    *Clock
	alloc    *allocator
	log      zerolog.Logger

	custodian string

	collections   map[uint64]*Collection
	collectionIDs []uint64
	tokens        map[uint64]*Token
	tokenIDs      []uint64
	histories     map[uint64][]*TransferRecord
	dataEntries   []string

	events chan *Event
}

// Build wires the registry with its collaborators and loads the persisted
// state surface. The custodian is the registry's own holding account for
// collection-linked mints; it is an ordinary ledger account.
func Build(store Store, ledger BalanceLedger, gate Gate, fungible FungibleLedger, custodian string) (*Registry, error) {
	if custodian == ZeroAccount {
		return nil, fault.ErrInvalidRecipient
	}
	clock, err := NewClock(store)
	if err != nil {
		return nil, err
	}
	alloc, err := newAllocator(store)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		store:       store,
		ledger:      ledger,
		gate:        gate,
		fungible:    fungible,
		clock:       clock,
		alloc:       alloc,
		log:         log.With().Str("module", "registry").Logger(),
		custodian:   custodian,
		collections: make(map[uint64]*Collection),
		tokens:      make(map[uint64]*Token),
		histories:   make(map[uint64][]*TransferRecord),
		events:      make(chan *Event, 256),
	}

	collections, err := store.ListCollections()
	if err != nil {
		return nil, err
	}
	for _, c := range collections {
		r.collections[c.ID] = c
		r.collectionIDs = append(r.collectionIDs, c.ID)
	}

	tokens, err := store.ListTokens()
	if err != nil {
		return nil, err
	}
	for _, t := range tokens {
		r.tokens[t.ID] = t
		r.tokenIDs = append(r.tokenIDs, t.ID)
	}

	// direct mints have histories without a token record, so the set of
	// history-bearing IDs comes from the persisted records themselves
	historyIDs, err := store.ListTransferTokens()
	if err != nil {
		return nil, err
	}
	for _, id := range historyIDs {
		recs, err := store.ListTransfers(id)
		if err != nil {
			return nil, err
		}
		r.histories[id] = recs
	}

	entries, err := store.ReadDataList()
	if err != nil {
		return nil, err
	}
	r.dataEntries = entries

	ledger.SetHook(r.recordTransfers)
	return r, nil
}

// Custodian returns the registry's own holding account.
func (r *Registry) Custodian() string {
	return r.custodian
}

func (r *Registry) require(role, principal string) error {
	if !r.gate.HasRole(role, principal) {
		return fault.ErrUnauthorized
	}
	return nil
}

// Pause blocks all balance mutation until Resume. Registry-only state
// (collections, stored data) stays mutable.
func (r *Registry) Pause(principal string) error {
	if err := r.require(RoleAdmin, principal); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ledger.Pause(); err != nil {
		return err
	}
	r.log.Info().Str("principal", principal).Msg("ledger paused")
	return nil
}

func (r *Registry) Resume(principal string) error {
	if err := r.require(RoleAdmin, principal); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ledger.Resume(); err != nil {
		return err
	}
	r.log.Info().Str("principal", principal).Msg("ledger resumed")
	return nil
}

func (r *Registry) Paused() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ledger.Paused()
}

package registry

import (
	"github.com/plinthlabs/tokenbook/fault"
)

// Token links a minted token to its collection and content identifier.
// The record is written once at mint time and never mutated; the
// CollectionID may refer to a collection that has since been deleted.
type Token struct {
	ID           uint64
	URI          string
	CID          CID
	CollectionID uint64
}

// MintIntoCollection mints amount units of a new token into the
// registry's own custodial account and links the token to the collection
// resolved by suffix. Requires the minter capability.
func (r *Registry) MintIntoCollection(uri string, amount uint64, cid CID, suffix, principal string) (uint64, error) {
	if err := r.require(RoleMinter, principal); err != nil {
		return 0, err
	}
	uri, err := Normalize(uri)
	if err != nil {
		return 0, err
	}
	suffix, err = Normalize(suffix)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	collectionID := r.findCollection(suffix)
	if collectionID == 0 {
		return 0, fault.ErrCollectionNotFound
	}
	if r.ledger.Paused() {
		return 0, fault.ErrSystemPaused
	}

	id, err := r.alloc.Next(KindToken)
	if err != nil {
		return 0, err
	}
	t := &Token{ID: id, URI: uri, CID: cid, CollectionID: collectionID}
	if err := r.store.WriteToken(t); err != nil {
		return 0, err
	}
	r.tokens[id] = t
	r.tokenIDs = append(r.tokenIDs, id)

	// cannot fail past the paused and recipient checks above; the hook
	// appends the mint record before this returns
	if err := r.ledger.Mint(principal, r.custodian, id, amount); err != nil {
		return 0, err
	}

	r.emit(&Event{
		Type:      EventTokenMinted,
		TokenID:   id,
		CID:       cid.String(),
		To:        r.custodian,
		Amount:    amount,
		Principal: principal,
		Timestamp: r.clock.Now(),
	})
	return id, nil
}

// Mint credits an existing or fresh token ID directly to an account with
// no collection linkage. The memo is carried for the caller's benefit
// only. Requires the minter capability.
func (r *Registry) Mint(account string, id, amount uint64, memo []byte, principal string) error {
	if err := r.require(RoleMinter, principal); err != nil {
		return err
	}
	_ = memo

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.Mint(principal, account, id, amount)
}

// MintBatch is Mint over parallel id and amount lists, atomic as a whole.
func (r *Registry) MintBatch(to string, ids, amounts []uint64, memo []byte, principal string) error {
	if err := r.require(RoleMinter, principal); err != nil {
		return err
	}
	_ = memo

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.MintBatch(principal, to, ids, amounts)
}

// Burn destroys amount units held by from. The caller must be the holder
// or an approved operator; the ledger enforces that.
func (r *Registry) Burn(caller, from string, id, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.Burn(caller, from, id, amount)
}

// SafeTransferFrom moves amount units of one token. The caller must be
// the holder or an approved operator.
func (r *Registry) SafeTransferFrom(caller, from, to string, id, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.Transfer(caller, from, to, id, amount)
}

// SafeBatchTransferFrom moves several token types in one atomic
// operation; either every leg commits or none does.
func (r *Registry) SafeBatchTransferFrom(caller, from, to string, ids, amounts []uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.TransferBatch(caller, from, to, ids, amounts)
}

// SetApprovalForAll lets any holder authorize an operator over all of
// their tokens. Self-service, no capability required.
func (r *Registry) SetApprovalForAll(caller, operator string, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ledger.SetApprovalForAll(caller, operator, approved); err != nil {
		return err
	}
	r.emit(&Event{
		Type:      EventApprovalChanged,
		From:      caller,
		Operator:  operator,
		Approved:  approved,
		Timestamp: r.clock.Now(),
	})
	return nil
}

func (r *Registry) IsApprovedForAll(owner, operator string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ledger.IsApprovedForAll(owner, operator)
}

// TokenData returns the collection linkage for a minted token. A stale
// CollectionID is returned as stored when the collection was deleted.
func (r *Registry) TokenData(id uint64) (*Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := r.tokens[id]
	if t == nil {
		return nil, fault.ErrUnknownToken
	}
	clone := *t
	return &clone, nil
}

// ListTokens returns a snapshot of all collection-linked token records in
// live-list order.
func (r *Registry) ListTokens() []*Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]*Token, 0, len(r.tokenIDs))
	for _, id := range r.tokenIDs {
		clone := *r.tokens[id]
		tokens = append(tokens, &clone)
	}
	return tokens
}

// BalanceOf exposes the ledger balance through the registry query surface.
func (r *Registry) BalanceOf(account string, id uint64) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ledger.BalanceOf(account, id)
}

func (r *Registry) TotalSupply(id uint64) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ledger.TotalSupply(id)
}

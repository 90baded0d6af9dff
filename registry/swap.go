package registry

import (
	"github.com/plinthlabs/tokenbook/fault"
)

// Swap sells one custodian-held unit of the token matching uri to the
// buyer against price units of an external fungible asset. The buyer must
// have approved the custodian on the fungible ledger beforehand.
// Self-service, no capability required.
func (r *Registry) Swap(buyer, asset, uri string, price uint64) (uint64, error) {
	uri, err := Normalize(uri)
	if err != nil {
		return 0, err
	}
	if buyer == ZeroAccount {
		return 0, fault.ErrInvalidRecipient
	}
	if price == 0 {
		return 0, fault.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ledger.Paused() {
		return 0, fault.ErrSystemPaused
	}

	id := uint64(0)
	for _, tokenID := range r.tokenIDs {
		if r.tokens[tokenID].URI == uri && r.ledger.BalanceOf(r.custodian, tokenID) > 0 {
			id = tokenID
			break
		}
	}
	if id == 0 {
		return 0, fault.ErrNotFound
	}

	// collect the price first; a failed collection must leave the token
	// with the custodian
	err = r.fungible.TransferFrom(asset, r.custodian, buyer, r.custodian, price)
	if err != nil {
		return 0, err
	}
	err = r.ledger.Transfer(r.custodian, r.custodian, buyer, id, 1)
	if err != nil {
		return 0, err
	}

	r.emit(&Event{
		Type:      EventAssetMoved,
		Asset:     asset,
		To:        r.custodian,
		From:      buyer,
		TokenID:   id,
		Amount:    price,
		Timestamp: r.clock.Now(),
	})
	return id, nil
}

package registry

import (
	"time"

	"github.com/plinthlabs/tokenbook/fault"
)

// TransferRecord is one immutable entry in a token's transfer history.
// From is the zero account for mints and To is the zero account for
// burns.
type TransferRecord struct {
	TokenID   uint64
	Seq       uint64
	From      string
	To        string
	Amount    uint64
	Timestamp time.Time
}

// recordTransfers is the post-commit hook installed on the balance
// ledger. It runs while the calling operation holds the registry lock, so
// it must not lock again. Zero deltas are skipped; the history tracks
// economic movement only.
//
// A failed history write after a committed balance change would leave the
// two permanently out of step; there is no way to continue from that.
func (r *Registry) recordTransfers(operator, from, to string, ids, amounts []uint64) {
	var recs []*TransferRecord
	next := make(map[uint64]uint64)
	for i, id := range ids {
		if amounts[i] == 0 {
			continue
		}
		seq := uint64(len(r.histories[id])) + next[id]
		next[id]++
		recs = append(recs, &TransferRecord{
			TokenID:   id,
			Seq:       seq,
			From:      from,
			To:        to,
			Amount:    amounts[i],
			Timestamp: r.clock.Now(),
		})
	}
	if len(recs) == 0 {
		return
	}
	err := r.store.WriteTransfers(recs)
	if err != nil {
		panic(err)
	}
	for _, rec := range recs {
		r.histories[rec.TokenID] = append(r.histories[rec.TokenID], rec)
		r.emit(&Event{
			Type:      EventTransferRecorded,
			TokenID:   rec.TokenID,
			From:      rec.From,
			To:        rec.To,
			Operator:  operator,
			Amount:    rec.Amount,
			Timestamp: rec.Timestamp,
		})
	}
}

// History returns the ordered transfer records of a token that has been
// in supply at least once.
func (r *Registry) History(tokenID uint64) ([]*TransferRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.ledger.Known(tokenID) {
		return nil, fault.ErrUnknownToken
	}
	recs := r.histories[tokenID]
	out := make([]*TransferRecord, len(recs))
	for i, rec := range recs {
		clone := *rec
		out[i] = &clone
	}
	return out, nil
}

package registry

import (
	"time"
)

// one event per state transition, delivered on a buffered stream
const (
	EventCollectionCreated = "collection.created"
	EventCollectionDeleted = "collection.deleted"
	EventTokenMinted       = "token.minted"
	EventTransferRecorded  = "transfer.recorded"
	EventApprovalChanged   = "approval.changed"
	EventDataStored        = "data.stored"
	EventDataDeleted       = "data.deleted"
	EventAssetMoved        = "asset.moved"
)

// Event carries the fields of one notification; unrelated fields stay at
// their zero values.
type Event struct {
	Type         string
	CollectionID uint64
	TokenID      uint64
	Suffix       string
	CID          string
	From         string
	To           string
	Operator     string
	Approved     bool
	Principal    string
	Asset        string
	Value        string
	Amount       uint64
	Timestamp    time.Time
}

// Events is the outbound notification stream. Slow consumers lose events
// rather than blocking mutations.
func (r *Registry) Events() <-chan *Event {
	return r.events
}

func (r *Registry) emit(e *Event) {
	select {
	case r.events <- e:
	default:
		r.log.Warn().Str("type", e.Type).Msg("event buffer full, notification dropped")
	}
}

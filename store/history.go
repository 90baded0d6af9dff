package store

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v3"

	"github.com/plinthlabs/tokenbook/registry"
)

const prefixTransferPayload = "REGISTRY:TRANSFER:PAYLOAD:"

// key layout: prefix || tokenID(8) || seq(8), so per-token iteration in
// sequence order falls out of the key order

func transferKey(rec *registry.TransferRecord) []byte {
	key := append([]byte(prefixTransferPayload), idToBytes(rec.TokenID)...)
	return append(key, idToBytes(rec.Seq)...)
}

// WriteTransfers persists all records of one logical operation in a
// single transaction.
func (bs *BadgerStore) WriteTransfers(recs []*registry.TransferRecord) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		for _, rec := range recs {
			err := txn.Set(transferKey(rec), MsgpackMarshalPanic(rec))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListTransferTokens returns the distinct token IDs that have at least
// one persisted transfer record, in ascending order. A keys-only scan;
// consecutive keys of one token collapse to one entry.
func (bs *BadgerStore) ListTransferTokens() ([]uint64, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefixTransferPayload)
	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []uint64
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		key := it.Item().Key()
		id := binary.BigEndian.Uint64(key[len(prefixTransferPayload) : len(prefixTransferPayload)+8])
		if len(ids) == 0 || ids[len(ids)-1] != id {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (bs *BadgerStore) ListTransfers(tokenID uint64) ([]*registry.TransferRecord, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = append([]byte(prefixTransferPayload), idToBytes(tokenID)...)
	it := txn.NewIterator(opts)
	defer it.Close()

	var recs []*registry.TransferRecord
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var rec registry.TransferRecord
		err = MsgpackUnmarshal(val, &rec)
		if err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}
	return recs, nil
}

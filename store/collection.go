package store

import (
	"github.com/dgraph-io/badger/v3"

	"github.com/plinthlabs/tokenbook/registry"
)

const prefixCollectionPayload = "REGISTRY:COLLECTION:PAYLOAD:"

func (bs *BadgerStore) WriteCollection(c *registry.Collection) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		key := append([]byte(prefixCollectionPayload), idToBytes(c.ID)...)
		return txn.Set(key, MsgpackMarshalPanic(c))
	})
}

func (bs *BadgerStore) DeleteCollection(id uint64) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		key := append([]byte(prefixCollectionPayload), idToBytes(id)...)
		return txn.Delete(key)
	})
}

func (bs *BadgerStore) ListCollections() ([]*registry.Collection, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixCollectionPayload)
	it := txn.NewIterator(opts)
	defer it.Close()

	var collections []*registry.Collection
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var c registry.Collection
		err = MsgpackUnmarshal(val, &c)
		if err != nil {
			return nil, err
		}
		collections = append(collections, &c)
	}
	return collections, nil
}

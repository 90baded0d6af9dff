package store

import (
	"github.com/dgraph-io/badger/v3"

	"github.com/plinthlabs/tokenbook/registry"
)

const prefixTokenPayload = "REGISTRY:TOKEN:PAYLOAD:"

func (bs *BadgerStore) WriteToken(t *registry.Token) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		key := append([]byte(prefixTokenPayload), idToBytes(t.ID)...)
		return txn.Set(key, MsgpackMarshalPanic(t))
	})
}

func (bs *BadgerStore) ListTokens() ([]*registry.Token, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixTokenPayload)
	it := txn.NewIterator(opts)
	defer it.Close()

	var tokens []*registry.Token
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var t registry.Token
		err = MsgpackUnmarshal(val, &t)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, &t)
	}
	return tokens, nil
}

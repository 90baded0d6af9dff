package registry

import (
	"encoding/binary"
)

// allocation kinds; each kind has its own monotonic counter
const (
	KindCollection = "collection"
	KindToken      = "token"
)

const allocatorPropertyPrefix = "REGISTRY:ALLOCATOR:"

// allocator issues unique non-zero IDs per kind. The last issued value is
// persisted before the ID is handed out, so a restart can never re-issue
// one; an ID burned by a later failure is simply skipped.
type allocator struct {
	store Store
	last  map[string]uint64
}

func newAllocator(store Store) (*allocator, error) {
	a := &allocator{
		store: store,
		last:  make(map[string]uint64),
	}
	for _, kind := range []string{KindCollection, KindToken} {
		bs, err := store.ReadProperty([]byte(allocatorPropertyPrefix + kind))
		if err != nil {
			return nil, err
		}
		if len(bs) == 8 {
			a.last[kind] = binary.BigEndian.Uint64(bs)
		}
	}
	return a, nil
}

func (a *allocator) Next(kind string) (uint64, error) {
	id := a.last[kind] + 1
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, id)
	err := a.store.WriteProperty([]byte(allocatorPropertyPrefix+kind), val)
	if err != nil {
		return 0, err
	}
	a.last[kind] = id
	return id, nil
}

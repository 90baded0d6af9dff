package registry

import (
	"github.com/plinthlabs/tokenbook/fault"
)

// Collection is a named grouping of tokens. The ID is never zero for a
// live collection; zero is the absent sentinel everywhere.
type Collection struct {
	ID     uint64
	Suffix string
}

// CreateCollection registers a new suffix and returns its ID. The suffix
// is unique among live collections after normalization; requires the
// collection-creator capability.
func (r *Registry) CreateCollection(suffix, principal string) (uint64, error) {
	if err := r.require(RoleCollectionCreator, principal); err != nil {
		return 0, err
	}
	suffix, err := Normalize(suffix)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findCollection(suffix) != 0 {
		return 0, fault.ErrDuplicateSuffix
	}
	id, err := r.alloc.Next(KindCollection)
	if err != nil {
		return 0, err
	}
	c := &Collection{ID: id, Suffix: suffix}
	if err := r.store.WriteCollection(c); err != nil {
		return 0, err
	}
	r.collections[id] = c
	r.collectionIDs = append(r.collectionIDs, id)

	r.emit(&Event{
		Type:         EventCollectionCreated,
		CollectionID: id,
		Suffix:       suffix,
		Principal:    principal,
		Timestamp:    r.clock.Now(),
	})
	return id, nil
}

// CollectionBySuffix resolves a suffix to its collection ID, 0 when there
// is no live match.
func (r *Registry) CollectionBySuffix(suffix string) (uint64, error) {
	suffix, err := Normalize(suffix)
	if err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findCollection(suffix), nil
}

// Collection returns the record for a live collection ID.
func (r *Registry) Collection(id uint64) (*Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.collections[id]
	if c == nil {
		return nil, fault.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

// DeleteCollection removes a live collection by suffix. Token records
// referencing the collection are left in place and keep the stale ID.
// Requires the admin capability.
func (r *Registry) DeleteCollection(suffix, principal string) error {
	if err := r.require(RoleAdmin, principal); err != nil {
		return err
	}
	suffix, err := Normalize(suffix)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.findCollection(suffix)
	if id == 0 {
		return fault.ErrNotFound
	}
	if err := r.store.DeleteCollection(id); err != nil {
		return err
	}
	delete(r.collections, id)
	r.collectionIDs = removeID(r.collectionIDs, id)

	r.emit(&Event{
		Type:         EventCollectionDeleted,
		CollectionID: id,
		Suffix:       suffix,
		Principal:    principal,
		Timestamp:    r.clock.Now(),
	})
	return nil
}

// ListCollections returns a snapshot in current live-list order. The order
// is not stable across deletions.
func (r *Registry) ListCollections() []*Collection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collections := make([]*Collection, 0, len(r.collectionIDs))
	for _, id := range r.collectionIDs {
		clone := *r.collections[id]
		collections = append(collections, &clone)
	}
	return collections
}

// linear scan of the live list; fine at the expected cardinality
func (r *Registry) findCollection(suffix string) uint64 {
	for _, id := range r.collectionIDs {
		if r.collections[id].Suffix == suffix {
			return id
		}
	}
	return 0
}

// swap the match with the last element and shrink, so removal is O(1)
// at the cost of list order
func removeID(ids []uint64, id uint64) []uint64 {
	for i, v := range ids {
		if v == id {
			last := len(ids) - 1
			ids[i] = ids[last]
			return ids[:last]
		}
	}
	return ids
}

package registry

import (
	"github.com/plinthlabs/tokenbook/fault"
)

// The data store is an ancillary list of opaque strings, independent of
// tokens. Duplicate values from distinct insertions are stored
// distinctly; deletion removes one instance per call.

// StoreData appends a non-empty value. Requires the admin capability.
func (r *Registry) StoreData(value, principal string) error {
	if err := r.require(RoleAdmin, principal); err != nil {
		return err
	}
	if value == "" {
		return fault.ErrEmptyValue
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append(append([]string{}, r.dataEntries...), value)
	if err := r.store.WriteDataList(entries); err != nil {
		return err
	}
	r.dataEntries = entries

	r.emit(&Event{
		Type:      EventDataStored,
		Value:     value,
		Principal: principal,
		Timestamp: r.clock.Now(),
	})
	return nil
}

// DeleteData removes the first exact match by swapping it with the last
// entry and shrinking the list, so only one instance goes per call and
// order is not preserved. Requires the admin capability.
func (r *Registry) DeleteData(value, principal string) error {
	if err := r.require(RoleAdmin, principal); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	match := -1
	for i, v := range r.dataEntries {
		if v == value {
			match = i
			break
		}
	}
	if match < 0 {
		return fault.ErrNotFound
	}
	entries := append([]string{}, r.dataEntries...)
	last := len(entries) - 1
	entries[match] = entries[last]
	entries = entries[:last]
	if err := r.store.WriteDataList(entries); err != nil {
		return err
	}
	r.dataEntries = entries

	r.emit(&Event{
		Type:      EventDataDeleted,
		Value:     value,
		Principal: principal,
		Timestamp: r.clock.Now(),
	})
	return nil
}

// ListData returns a snapshot in current order.
func (r *Registry) ListData() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string{}, r.dataEntries...)
}

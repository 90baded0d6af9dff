package registry

import (
	"encoding/binary"
	"sync"
	"time"
)

const clockPropertyKey = "REGISTRY:CLOCK:MONOTONIC"

// Clock issues strictly increasing timestamps and persists the high water
// mark, so transfer records keep their order across restarts even when
// the wall clock steps backwards.
type Clock struct {
	sync.Mutex
	store Store
	now   time.Time
}

func NewClock(store Store) (*Clock, error) {
	bs, err := store.ReadProperty([]byte(clockPropertyKey))
	if err != nil {
		return nil, err
	}
	ts := time.Now()
	if len(bs) == 8 {
		if old := time.Unix(0, int64(binary.BigEndian.Uint64(bs))); old.After(ts) {
			ts = old
		}
	}
	clock := new(Clock)
	clock.store = store
	clock.now = ts
	return clock, nil
}

func (c *Clock) Now() time.Time {
	c.Lock()
	defer c.Unlock()

	for {
		now := time.Now()
		if now.After(c.now) {
			c.now = now
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, uint64(c.now.UnixNano()))
	for {
		err := c.store.WriteProperty([]byte(clockPropertyKey), val)
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	return c.now
}

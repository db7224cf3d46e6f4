package scheduling

import (
	"fmt"
	"sync"
)

// DayLocks serializes mutations per (company, professional, date). Two
// concurrent bookings for the same professional and day can each see "no
// conflict" against the pre-mutation state and both commit; holding the day
// lock across validate+commit closes that race.
type DayLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDayLocks() *DayLocks {
	return &DayLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the professional's day and returns its unlock
// function.
func (d *DayLocks) Lock(companyID, professionalID uint, date string) func() {
	key := fmt.Sprintf("%d:%d:%s", companyID, professionalID, date)

	d.mu.Lock()
	m, ok := d.locks[key]
	if !ok {
		m = &sync.Mutex{}
		d.locks[key] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}

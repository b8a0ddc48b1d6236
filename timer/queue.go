// Package timer provides a queue of deferred callbacks keyed to due
// timestamps. Nothing runs on its own: callbacks fire only when the owner
// drains the queue, so they share whatever lock the owner holds.
package timer

import (
	"slices"
	"time"

	"github.com/kamstrup/intmap"
)

// ID identifies a scheduled entry.
type ID uint64

type entry struct {
	id        ID
	due       time.Time
	fn        func()
	cancelled bool
}

// Queue orders entries by due time; entries due at the same instant fire in
// scheduling order. The zero value is not usable; call NewQueue.
type Queue struct {
	entries []*entry
	index   *intmap.Map[ID, *entry]
	nextID  ID
}

func NewQueue() *Queue {
	return &Queue{index: intmap.New[ID, *entry](16)}
}

// Schedule registers fn to run on the first Drain at or after due.
func (q *Queue) Schedule(due time.Time, fn func()) ID {
	q.nextID++
	e := &entry{id: q.nextID, due: due, fn: fn}

	// Insert after every entry due at or before this one.
	i, _ := slices.BinarySearchFunc(q.entries, due, func(e *entry, t time.Time) int {
		if e.due.After(t) {
			return 1
		}
		return -1
	})
	q.entries = slices.Insert(q.entries, i, e)
	q.index.Put(e.id, e)
	return e.id
}

// Cancel removes a pending entry. It reports false if the entry already
// fired or was cancelled.
func (q *Queue) Cancel(id ID) bool {
	e, ok := q.index.Get(id)
	if !ok {
		return false
	}
	e.cancelled = true
	q.index.Del(id)
	return true
}

// Pending reports whether id is still scheduled.
func (q *Queue) Pending(id ID) bool {
	_, ok := q.index.Get(id)
	return ok
}

// Drain runs every entry due at or before now and returns how many ran.
// Entries scheduled by a callback for a time not after now also run.
func (q *Queue) Drain(now time.Time) int {
	ran := 0
	for len(q.entries) > 0 && !q.entries[0].due.After(now) {
		e := q.entries[0]
		q.entries[0] = nil
		q.entries = q.entries[1:]
		if e.cancelled {
			continue
		}
		q.index.Del(e.id)
		e.fn()
		ran++
	}
	return ran
}

// Len returns the number of live entries.
func (q *Queue) Len() int {
	return q.index.Len()
}

// NextDue returns the earliest live due time.
func (q *Queue) NextDue() (time.Time, bool) {
	for _, e := range q.entries {
		if !e.cancelled {
			return e.due, true
		}
	}
	return time.Time{}, false
}

// Clear drops every entry without running it.
func (q *Queue) Clear() {
	clear(q.entries)
	q.entries = q.entries[:0]
	q.index.Clear()
}

// Package events implements the sorted event list and the cursor
// player that steps through it, per the time-indexed, sortable record
// list pattern this module also uses for playback streams.
package events

import (
	"sort"

	"github.com/dronecore/skyb/errs"
	"github.com/dronecore/skyb/internal/streamio"
)

// Event is one entry in the event list.
type Event struct {
	TimeMsec uint32
	Type     uint8
	Subtype  uint8
	Payload  [4]byte
}

// List is an owned, append-only dynamic array of events. Most
// operations assume the invariant that it is sorted by TimeMsec
// nondecreasing; Sort establishes it and IsSorted checks it.
type List struct {
	events []Event
}

// New returns an empty list with room for at least capacityHint
// entries.
func New(capacityHint int) *List {
	return &List{events: make([]Event, 0, capacityHint)}
}

// Decode parses an events block body: {version:u8, count:u16,
// entries*} where each entry is {time:u32 msec, type:u8, subtype:u8,
// payload:4 bytes}.
func Decode(body []byte) (*List, error) {
	r := streamio.New(body)
	if _, err := r.ReadU8(); err != nil { // version, currently unused
		return nil, err
	}
	count, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	l := New(int(count))
	for i := 0; i < int(count); i++ {
		timeMsec, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		typ, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		subtype, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		payload, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		var p [4]byte
		copy(p[:], payload)
		l.Append(Event{TimeMsec: timeMsec, Type: typ, Subtype: subtype, Payload: p})
	}
	return l, nil
}

// Append adds e to the end of the list, without re-sorting.
func (l *List) Append(e Event) { l.events = append(l.events, e) }

// Clear empties the list without shrinking its capacity.
func (l *List) Clear() { l.events = l.events[:0] }

// Size returns the number of events.
func (l *List) Size() int { return len(l.events) }

// Capacity returns the list's backing capacity.
func (l *List) Capacity() int { return cap(l.events) }

// At returns the event at index i.
func (l *List) At(i int) (Event, error) {
	if i < 0 || i >= len(l.events) {
		return Event{}, errs.New(errs.INVAL, "events: index %d out of range [0,%d)", i, len(l.events))
	}
	return l.events[i], nil
}

// Sort establishes the nondecreasing-time invariant, using a stable
// sort so that events sharing a timestamp keep their append order.
func (l *List) Sort() {
	sort.SliceStable(l.events, func(i, j int) bool {
		return l.events[i].TimeMsec < l.events[j].TimeMsec
	})
}

// IsSorted reports whether the list is currently nondecreasing by
// time.
func (l *List) IsSorted() bool {
	return sort.SliceIsSorted(l.events, func(i, j int) bool {
		return l.events[i].TimeMsec < l.events[j].TimeMsec
	})
}

// AdjustTimestampsByType applies deltaMsec to every event of the given
// type, then re-sorts to restore the nondecreasing-time invariant.
// deltaMsec may be negative; a timestamp that would underflow below 0
// clamps to 0.
func (l *List) AdjustTimestampsByType(typ uint8, deltaMsec int32) {
	for i := range l.events {
		if l.events[i].Type != typ {
			continue
		}
		adjusted := int64(l.events[i].TimeMsec) + int64(deltaMsec)
		if adjusted < 0 {
			adjusted = 0
		}
		l.events[i].TimeMsec = uint32(adjusted)
	}
	l.Sort()
}

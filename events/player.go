package events

import "sort"

// Player is a cursor over a List. It assumes the list is sorted (the
// caller is expected to call List.Sort before constructing a player,
// per this format's "sorted by time nondecreasing" invariant).
type Player struct {
	list   *List
	cursor int
}

// NewPlayer creates a player over list, positioned at its first event.
func NewPlayer(list *List) *Player {
	return &Player{list: list}
}

// Rewind resets the cursor to the first event.
func (p *Player) Rewind() { p.cursor = 0 }

// PeekNextEvent returns the next event without advancing the cursor.
func (p *Player) PeekNextEvent() (Event, bool) {
	if p.cursor >= p.list.Size() {
		return Event{}, false
	}
	ev, _ := p.list.At(p.cursor)
	return ev, true
}

// GetNextEvent returns the next event and advances the cursor past it.
func (p *Player) GetNextEvent() (Event, bool) {
	ev, ok := p.PeekNextEvent()
	if ok {
		p.cursor++
	}
	return ev, ok
}

// GetNextEventNotLaterThan returns the next event only if its time is
// <= tMsec, without advancing past it if the caller does not take it;
// like GetNextEvent, a successful call advances the cursor.
func (p *Player) GetNextEventNotLaterThan(tMsec uint32) (Event, bool) {
	ev, ok := p.PeekNextEvent()
	if !ok || ev.TimeMsec > tMsec {
		return Event{}, false
	}
	p.cursor++
	return ev, true
}

// Seek positions the cursor at the first event with time >= tMsec.
func (p *Player) Seek(tMsec uint32) {
	n := p.list.Size()
	p.cursor = sort.Search(n, func(i int) bool {
		ev, _ := p.list.At(i)
		return ev.TimeMsec >= tMsec
	})
}

package symbols

import "surge/internal/source"

// Handle is an opaque reference to whatever the TypeOracle considers "the
// TSL symbol" (spec.md §3 SymbolInfo). It is stored, never inspected, by the
// tracker — only the TypeOracle and the lowerers that requested it know its
// concrete type. Kept as `any` instead of importing internal/tslast directly
// so this package has no dependency on a specific frontend.
type Handle any

// Info is the record held per SymbolID (spec.md §3 SymbolInfo). It is
// immutable after insertion.
type Info struct {
	Handle    Handle
	FirstSeen source.Span
}

// Tracker assigns stable ids to TSL symbols on first encounter and records
// their first-seen position (spec.md §4.4 SymbolTracker). One Tracker is
// created per file transformation and discarded at file completion.
type Tracker struct {
	byHandle map[any]SymbolID
	infos    []Info // index 0 is NoSymbolID's placeholder
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byHandle: make(map[any]SymbolID),
		infos:    make([]Info, 1),
	}
}

// Resolve returns the stable id for handle, minting a fresh one and
// recording pos as its first-seen position if this is the first time handle
// has been seen (spec.md: "on each identifier reference, ask the TypeOracle
// for the symbol; if unseen, assign a fresh id").
func (t *Tracker) Resolve(handle Handle, pos source.Span) SymbolID {
	if id, ok := t.byHandle[handle]; ok {
		return id
	}
	id := SymbolID(len(t.infos))
	t.infos = append(t.infos, Info{Handle: handle, FirstSeen: pos})
	t.byHandle[handle] = id
	return id
}

// Info returns the immutable record for id, or the zero value if id is
// unknown.
func (t *Tracker) Info(id SymbolID) Info {
	if int(id) >= len(t.infos) {
		return Info{}
	}
	return t.infos[id]
}

// Count returns the number of distinct symbols minted so far.
func (t *Tracker) Count() int { return len(t.infos) - 1 }

// Package index builds lookup structures derived from a timeline state.
package index

import (
	"cmp"
	"slices"

	"github.com/palemoky/dynasty-timeline/internal/chrono"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

// Index holds id lookups and relationship lists derived from a State.
// It is rebuilt from scratch whenever the state changes and must be treated as read-only.
type Index struct {
	Dynasties map[string]model.Dynasty
	Kings     map[string]model.King
	Events    map[string]model.Event
	Wars      map[string]model.War

	KingsByDynasty map[string][]model.King
	EventsByKing   map[string][]model.Event
	WarsByKing     map[string][]model.War
}

// Build derives an Index from the state
func Build(st model.State) *Index {
	idx := &Index{
		Dynasties:      make(map[string]model.Dynasty, len(st.Dynasties)),
		Kings:          make(map[string]model.King, len(st.Kings)),
		Events:         make(map[string]model.Event, len(st.Events)),
		Wars:           make(map[string]model.War, len(st.Wars)),
		KingsByDynasty: make(map[string][]model.King),
		EventsByKing:   make(map[string][]model.Event),
		WarsByKing:     make(map[string][]model.War),
	}

	for _, d := range st.Dynasties {
		idx.Dynasties[d.ID] = d
	}
	for _, k := range st.Kings {
		idx.Kings[k.ID] = k
		if k.DynastyID != nil {
			idx.KingsByDynasty[*k.DynastyID] = append(idx.KingsByDynasty[*k.DynastyID], k)
		}
	}
	for _, e := range st.Events {
		idx.Events[e.ID] = e
		for _, kingID := range e.RelatedKings {
			idx.EventsByKing[kingID] = append(idx.EventsByKing[kingID], e)
		}
	}
	for _, w := range st.Wars {
		idx.Wars[w.ID] = w
		for _, p := range w.Participants {
			idx.WarsByKing[p.KingID] = append(idx.WarsByKing[p.KingID], w)
		}
	}

	for _, kings := range idx.KingsByDynasty {
		SortKings(kings)
	}
	for _, events := range idx.EventsByKing {
		SortEvents(events)
	}
	for _, wars := range idx.WarsByKing {
		SortWars(wars)
	}
	return idx
}

// Referenced reports whether any event or war points at the king
func (idx *Index) Referenced(kingID string) bool {
	return len(idx.EventsByKing[kingID]) > 0 || len(idx.WarsByKing[kingID]) > 0
}

// SortDynasties orders dynasties by start year, then name
func SortDynasties(ds []model.Dynasty) {
	slices.SortStableFunc(ds, func(a, b model.Dynasty) int {
		return cmp.Or(cmp.Compare(a.StartYear, b.StartYear), cmp.Compare(a.Name, b.Name))
	})
}

// SortKings orders kings by reign start, then name
func SortKings(ks []model.King) {
	slices.SortStableFunc(ks, func(a, b model.King) int {
		return cmp.Or(cmp.Compare(a.StartYear, b.StartYear), cmp.Compare(a.Name, b.Name))
	})
}

// SortEvents orders events by resolved year; undated events go last
func SortEvents(es []model.Event) {
	slices.SortStableFunc(es, func(a, b model.Event) int {
		ya, oka := chrono.EventYear(a.Date)
		yb, okb := chrono.EventYear(b.Date)
		switch {
		case oka && !okb:
			return -1
		case !oka && okb:
			return 1
		}
		return cmp.Or(cmp.Compare(ya, yb), cmp.Compare(a.Date, b.Date), cmp.Compare(a.Name, b.Name))
	})
}

// SortWars orders wars by start year, then name
func SortWars(ws []model.War) {
	slices.SortStableFunc(ws, func(a, b model.War) int {
		return cmp.Or(cmp.Compare(a.StartYear, b.StartYear), cmp.Compare(a.Name, b.Name))
	})
}

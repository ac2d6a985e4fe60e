package store

import (
	"slices"

	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

// SweepOneTimeKings returns st without the one-time kings that no event or war
// references, plus the ids it removed. idx must be built from st.
func SweepOneTimeKings(st model.State, idx *index.Index) (model.State, []string) {
	var removed []string
	for _, k := range st.Kings {
		if k.IsOneTime && !idx.Referenced(k.ID) {
			removed = append(removed, k.ID)
		}
	}
	if len(removed) == 0 {
		return st, nil
	}

	next := st.Clone()
	next.Kings = slices.DeleteFunc(next.Kings, func(k model.King) bool {
		return slices.Contains(removed, k.ID)
	})
	return next, removed
}

// detachKings strips the given kings from every event and war.
// With dropEmptied, an event or war that loses all of its kings is deleted too.
func detachKings(st *model.State, kings map[string]bool, dropEmptied bool) {
	if len(kings) == 0 {
		return
	}

	events := st.Events[:0]
	for _, e := range st.Events {
		kept := slices.DeleteFunc(slices.Clone(e.RelatedKings), func(id string) bool { return kings[id] })
		if len(kept) == len(e.RelatedKings) {
			events = append(events, e)
			continue
		}
		if dropEmptied && len(kept) == 0 {
			continue
		}
		e.RelatedKings = kept
		events = append(events, e)
	}
	st.Events = events

	wars := st.Wars[:0]
	for _, w := range st.Wars {
		kept := slices.DeleteFunc(slices.Clone(w.Participants), func(p model.Participant) bool { return kings[p.KingID] })
		if len(kept) == len(w.Participants) {
			wars = append(wars, w)
			continue
		}
		if dropEmptied && len(kept) == 0 {
			continue
		}
		w.Participants = kept
		wars = append(wars, w)
	}
	st.Wars = wars
}

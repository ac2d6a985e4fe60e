package store

import (
	"slices"

	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

func warID(w model.War) string { return w.ID }

// WarFilter narrows a war listing
type WarFilter struct {
	KingID     string
	Importance model.Importance
}

func (f WarFilter) match(w model.War) bool {
	if f.KingID != "" && !w.References(f.KingID) {
		return false
	}
	if f.Importance != "" && w.Importance != f.Importance {
		return false
	}
	return true
}

// Wars returns the wars matching the filter by start year
func (s *Store) Wars(filter WarFilter) []model.War {
	s.mu.RLock()
	out := []model.War{}
	for _, w := range s.state.Wars {
		if filter.match(w) {
			out = append(out, w.Clone())
		}
	}
	s.mu.RUnlock()

	index.SortWars(out)
	return out
}

// War returns the war with the given id
func (s *Store) War(id string) (model.War, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.idx.Wars[id]
	if !ok {
		return model.War{}, notFound("war", id)
	}
	return w.Clone(), nil
}

func participantKings(w model.War) []string {
	ids := make([]string, len(w.Participants))
	for i, p := range w.Participants {
		ids[i] = p.KingID
	}
	return ids
}

func resolveParticipants(ids map[string]string, ps []model.Participant) {
	for i, p := range ps {
		if id, ok := ids[p.KingID]; ok {
			ps[i].KingID = id
		}
	}
}

// CreateWar stores a new war with a generated id.
// oneTime kings are created with it; participants may reference their placeholder ids.
func (s *Store) CreateWar(w model.War, oneTime ...model.King) (model.War, error) {
	w = w.Clone()
	w.ID = s.newID()
	w.CreatedAt = s.stamp()
	w.UpdatedAt = w.CreatedAt
	if w.Participants == nil {
		w.Participants = []model.Participant{}
	}
	if err := w.Validate(); err != nil {
		return model.War{}, err
	}

	err := s.mutate(referenceChange, func(st *model.State) error {
		ids, err := s.addOneTimeKings(st, oneTime)
		if err != nil {
			return err
		}
		resolveParticipants(ids, w.Participants)
		if err := checkKingRefs(st, "participants", participantKings(w)); err != nil {
			return err
		}
		st.Wars = append(st.Wars, w.Clone())
		return nil
	})
	if err != nil {
		return model.War{}, err
	}
	return w, nil
}

// UpdateWar applies a partial update to the war, creating any oneTime kings
// the update references
func (s *Store) UpdateWar(id string, apply func(*model.War) error, oneTime ...model.King) (model.War, error) {
	var updated model.War
	err := s.mutate(referenceChange, func(st *model.State) error {
		i := findByID(st.Wars, id, warID)
		if i < 0 {
			return notFound("war", id)
		}
		cur := st.Wars[i].Clone()
		if err := apply(&cur); err != nil {
			return err
		}
		cur.ID = st.Wars[i].ID
		cur.CreatedAt = st.Wars[i].CreatedAt
		cur.UpdatedAt = s.stamp()
		if cur.Participants == nil {
			cur.Participants = []model.Participant{}
		}
		if err := cur.Validate(); err != nil {
			return err
		}
		ids, err := s.addOneTimeKings(st, oneTime)
		if err != nil {
			return err
		}
		resolveParticipants(ids, cur.Participants)
		if err := checkKingRefs(st, "participants", participantKings(cur)); err != nil {
			return err
		}
		st.Wars[i] = cur
		updated = cur.Clone()
		return nil
	})
	return updated, err
}

// DeleteWar removes the war
func (s *Store) DeleteWar(id string) error {
	return s.mutate(referenceChange, func(st *model.State) error {
		i := findByID(st.Wars, id, warID)
		if i < 0 {
			return notFound("war", id)
		}
		st.Wars = slices.Delete(st.Wars, i, i+1)
		return nil
	})
}

func cloneWars(ws []model.War) []model.War {
	out := make([]model.War, len(ws))
	for i, w := range ws {
		out[i] = w.Clone()
	}
	return out
}

package store

import (
	"slices"

	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

func kingID(k model.King) string { return k.ID }

// KingFilter narrows a king listing
type KingFilter struct {
	DynastyID string
	OneTime   *bool
}

func (f KingFilter) match(k model.King) bool {
	if f.DynastyID != "" && !k.InDynasty(f.DynastyID) {
		return false
	}
	if f.OneTime != nil && k.IsOneTime != *f.OneTime {
		return false
	}
	return true
}

// Kings returns the kings matching the filter ordered by reign start
func (s *Store) Kings(filter KingFilter) []model.King {
	s.mu.RLock()
	out := []model.King{}
	for _, k := range s.state.Kings {
		if filter.match(k) {
			out = append(out, k.Clone())
		}
	}
	s.mu.RUnlock()

	index.SortKings(out)
	return out
}

// King returns the king with the given id
func (s *Store) King(id string) (model.King, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.idx.Kings[id]
	if !ok {
		return model.King{}, notFound("king", id)
	}
	return k.Clone(), nil
}

// EventsOfKing returns the events that reference the king, in date order
func (s *Store) EventsOfKing(id string) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.idx.Kings[id]; !ok {
		return nil, notFound("king", id)
	}
	return cloneEvents(s.idx.EventsByKing[id]), nil
}

// WarsOfKing returns the wars the king took part in, by start year
func (s *Store) WarsOfKing(id string) ([]model.War, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.idx.Kings[id]; !ok {
		return nil, notFound("king", id)
	}
	return cloneWars(s.idx.WarsByKing[id]), nil
}

func checkKingDynasty(st *model.State, k model.King) error {
	if k.DynastyID == nil {
		return nil
	}
	if findByID(st.Dynasties, *k.DynastyID, dynastyID) < 0 {
		return model.ValidationErrors{{Field: "dynastyId", Message: "unknown dynasty " + *k.DynastyID}}
	}
	return nil
}

// CreateKing stores a new king with a generated id
func (s *Store) CreateKing(k model.King) (model.King, error) {
	k = k.Clone()
	k.ID = s.newID()
	k.CreatedAt = s.stamp()
	k.UpdatedAt = k.CreatedAt
	if err := k.Validate(); err != nil {
		return model.King{}, err
	}

	err := s.mutate(entityChange, func(st *model.State) error {
		if err := checkKingDynasty(st, k); err != nil {
			return err
		}
		st.Kings = append(st.Kings, k.Clone())
		return nil
	})
	if err != nil {
		return model.King{}, err
	}
	return k, nil
}

// UpdateKing applies a partial update to the king
func (s *Store) UpdateKing(id string, apply func(*model.King) error) (model.King, error) {
	var updated model.King
	err := s.mutate(entityChange, func(st *model.State) error {
		i := findByID(st.Kings, id, kingID)
		if i < 0 {
			return notFound("king", id)
		}
		cur := st.Kings[i].Clone()
		if err := apply(&cur); err != nil {
			return err
		}
		cur.ID = st.Kings[i].ID
		cur.CreatedAt = st.Kings[i].CreatedAt
		cur.UpdatedAt = s.stamp()
		if err := cur.Validate(); err != nil {
			return err
		}
		if err := checkKingDynasty(st, cur); err != nil {
			return err
		}
		st.Kings[i] = cur
		updated = cur.Clone()
		return nil
	})
	return updated, err
}

// DeleteKing removes the king and strips it from events and wars.
// The events and wars themselves are kept.
func (s *Store) DeleteKing(id string) error {
	return s.mutate(referenceChange, func(st *model.State) error {
		i := findByID(st.Kings, id, kingID)
		if i < 0 {
			return notFound("king", id)
		}
		st.Kings = slices.Delete(st.Kings, i, i+1)
		detachKings(st, map[string]bool{id: true}, false)
		return nil
	})
}

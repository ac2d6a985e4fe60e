package store

import (
	"slices"

	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

func dynastyID(d model.Dynasty) string { return d.ID }

// Dynasties returns all dynasties ordered by start year
func (s *Store) Dynasties() []model.Dynasty {
	s.mu.RLock()
	out := make([]model.Dynasty, len(s.state.Dynasties))
	for i, d := range s.state.Dynasties {
		out[i] = d.Clone()
	}
	s.mu.RUnlock()

	index.SortDynasties(out)
	return out
}

// Dynasty returns the dynasty with the given id
func (s *Store) Dynasty(id string) (model.Dynasty, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.idx.Dynasties[id]
	if !ok {
		return model.Dynasty{}, notFound("dynasty", id)
	}
	return d.Clone(), nil
}

// KingsOfDynasty returns the dynasty's kings ordered by reign start
func (s *Store) KingsOfDynasty(id string) ([]model.King, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.idx.Dynasties[id]; !ok {
		return nil, notFound("dynasty", id)
	}
	return cloneKings(s.idx.KingsByDynasty[id]), nil
}

// CreateDynasty stores a new dynasty with a generated id
func (s *Store) CreateDynasty(d model.Dynasty) (model.Dynasty, error) {
	d = d.Clone()
	d.ID = s.newID()
	d.CreatedAt = s.stamp()
	d.UpdatedAt = d.CreatedAt
	if err := d.Validate(); err != nil {
		return model.Dynasty{}, err
	}

	err := s.mutate(entityChange, func(st *model.State) error {
		st.Dynasties = append(st.Dynasties, d.Clone())
		return nil
	})
	if err != nil {
		return model.Dynasty{}, err
	}
	return d, nil
}

// UpdateDynasty applies a partial update to the dynasty.
// The id and creation time are preserved whatever apply does.
func (s *Store) UpdateDynasty(id string, apply func(*model.Dynasty) error) (model.Dynasty, error) {
	var updated model.Dynasty
	err := s.mutate(entityChange, func(st *model.State) error {
		i := findByID(st.Dynasties, id, dynastyID)
		if i < 0 {
			return notFound("dynasty", id)
		}
		cur := st.Dynasties[i].Clone()
		if err := apply(&cur); err != nil {
			return err
		}
		cur.ID = st.Dynasties[i].ID
		cur.CreatedAt = st.Dynasties[i].CreatedAt
		cur.UpdatedAt = s.stamp()
		if err := cur.Validate(); err != nil {
			return err
		}
		st.Dynasties[i] = cur
		updated = cur.Clone()
		return nil
	})
	return updated, err
}

// DeleteDynasty removes the dynasty and its kings. Events and wars that
// referenced only those kings are removed as well; others just lose the reference.
func (s *Store) DeleteDynasty(id string) error {
	return s.mutate(referenceChange, func(st *model.State) error {
		i := findByID(st.Dynasties, id, dynastyID)
		if i < 0 {
			return notFound("dynasty", id)
		}
		st.Dynasties = slices.Delete(st.Dynasties, i, i+1)

		removed := make(map[string]bool)
		st.Kings = slices.DeleteFunc(st.Kings, func(k model.King) bool {
			if k.InDynasty(id) {
				removed[k.ID] = true
				return true
			}
			return false
		})
		detachKings(st, removed, true)

		if st.UISettings.SelectedDynasty == id {
			st.UISettings.SelectedDynasty = ""
		}
		return nil
	})
}

func cloneKings(ks []model.King) []model.King {
	out := make([]model.King, len(ks))
	for i, k := range ks {
		out[i] = k.Clone()
	}
	return out
}

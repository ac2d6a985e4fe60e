package store

import (
	"slices"

	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

func eventID(e model.Event) string { return e.ID }

// EventFilter narrows an event listing
type EventFilter struct {
	KingID     string
	Importance model.Importance
}

func (f EventFilter) match(e model.Event) bool {
	if f.KingID != "" && !e.References(f.KingID) {
		return false
	}
	if f.Importance != "" && e.Importance != f.Importance {
		return false
	}
	return true
}

// Events returns the events matching the filter in date order
func (s *Store) Events(filter EventFilter) []model.Event {
	s.mu.RLock()
	out := []model.Event{}
	for _, e := range s.state.Events {
		if filter.match(e) {
			out = append(out, e.Clone())
		}
	}
	s.mu.RUnlock()

	index.SortEvents(out)
	return out
}

// Event returns the event with the given id
func (s *Store) Event(id string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.idx.Events[id]
	if !ok {
		return model.Event{}, notFound("event", id)
	}
	return e.Clone(), nil
}

func checkKingRefs(st *model.State, field string, ids []string) error {
	var errs model.ValidationErrors
	for _, id := range ids {
		if findByID(st.Kings, id, kingID) < 0 {
			errs = append(errs, model.FieldError{Field: field, Message: "unknown king " + id})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateEvent stores a new event with a generated id.
// oneTime kings are created with it; their ids are placeholders that
// RelatedKings may reference.
func (s *Store) CreateEvent(e model.Event, oneTime ...model.King) (model.Event, error) {
	e = e.Clone()
	e.ID = s.newID()
	e.CreatedAt = s.stamp()
	e.UpdatedAt = e.CreatedAt
	if e.RelatedKings == nil {
		e.RelatedKings = []string{}
	}
	if err := e.Validate(); err != nil {
		return model.Event{}, err
	}

	err := s.mutate(referenceChange, func(st *model.State) error {
		ids, err := s.addOneTimeKings(st, oneTime)
		if err != nil {
			return err
		}
		resolveKingRefs(ids, e.RelatedKings)
		if err := checkKingRefs(st, "relatedKings", e.RelatedKings); err != nil {
			return err
		}
		st.Events = append(st.Events, e.Clone())
		return nil
	})
	if err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// UpdateEvent applies a partial update to the event, creating any oneTime kings
// the update references
func (s *Store) UpdateEvent(id string, apply func(*model.Event) error, oneTime ...model.King) (model.Event, error) {
	var updated model.Event
	err := s.mutate(referenceChange, func(st *model.State) error {
		i := findByID(st.Events, id, eventID)
		if i < 0 {
			return notFound("event", id)
		}
		cur := st.Events[i].Clone()
		if err := apply(&cur); err != nil {
			return err
		}
		cur.ID = st.Events[i].ID
		cur.CreatedAt = st.Events[i].CreatedAt
		cur.UpdatedAt = s.stamp()
		if cur.RelatedKings == nil {
			cur.RelatedKings = []string{}
		}
		if err := cur.Validate(); err != nil {
			return err
		}
		ids, err := s.addOneTimeKings(st, oneTime)
		if err != nil {
			return err
		}
		resolveKingRefs(ids, cur.RelatedKings)
		if err := checkKingRefs(st, "relatedKings", cur.RelatedKings); err != nil {
			return err
		}
		st.Events[i] = cur
		updated = cur.Clone()
		return nil
	})
	return updated, err
}

// DeleteEvent removes the event
func (s *Store) DeleteEvent(id string) error {
	return s.mutate(referenceChange, func(st *model.State) error {
		i := findByID(st.Events, id, eventID)
		if i < 0 {
			return notFound("event", id)
		}
		st.Events = slices.Delete(st.Events, i, i+1)
		return nil
	})
}

func cloneEvents(es []model.Event) []model.Event {
	out := make([]model.Event, len(es))
	for i, e := range es {
		out[i] = e.Clone()
	}
	return out
}

package store

import (
	"errors"
	"fmt"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

// addOneTimeKings appends kings to st as one-time rulers with generated ids.
// The id a caller gave each king is a placeholder that events and wars in the
// same mutation may reference; the returned map resolves placeholders to the
// generated ids. Must run inside a mutate closure so the sweep sees the
// references that the same change adds.
func (s *Store) addOneTimeKings(st *model.State, kings []model.King) (map[string]string, error) {
	if len(kings) == 0 {
		return nil, nil
	}

	var errs model.ValidationErrors
	ids := make(map[string]string, len(kings))
	for i, k := range kings {
		field := fmt.Sprintf("oneTimeKings[%d]", i)
		k = k.Clone()
		ref := k.ID
		k.ID = s.newID()
		k.DynastyID = nil
		k.IsOneTime = true
		k.CreatedAt = s.stamp()
		k.UpdatedAt = k.CreatedAt

		var invalid model.ValidationErrors
		if errors.As(k.Validate(), &invalid) {
			for _, fe := range invalid {
				errs = append(errs, model.FieldError{Field: field + "." + fe.Field, Message: fe.Message})
			}
			continue
		}
		if ref != "" {
			if _, dup := ids[ref]; dup {
				errs = append(errs, model.FieldError{Field: field + ".id", Message: "duplicate placeholder " + ref})
				continue
			}
			if findByID(st.Kings, ref, kingID) >= 0 {
				errs = append(errs, model.FieldError{Field: field + ".id", Message: "placeholder " + ref + " is already a king id"})
				continue
			}
			ids[ref] = k.ID
		}
		st.Kings = append(st.Kings, k)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return ids, nil
}

// resolveKingRefs rewrites placeholder ids in refs to generated ids, in place
func resolveKingRefs(ids map[string]string, refs []string) {
	for i, ref := range refs {
		if id, ok := ids[ref]; ok {
			refs[i] = id
		}
	}
}

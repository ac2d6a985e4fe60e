package store

import (
	"github.com/palemoky/dynasty-timeline/internal/model"
)

// Settings returns the current UI settings
func (s *Store) Settings() model.UISettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.UISettings
}

// UpdateSettings applies a partial update to the UI settings.
// Settings changes are never blocked by strict validation.
func (s *Store) UpdateSettings(apply func(*model.UISettings) error) (model.UISettings, error) {
	var updated model.UISettings
	err := s.mutate(wholesaleReplace, func(st *model.State) error {
		cur := st.UISettings
		if err := apply(&cur); err != nil {
			return err
		}
		if err := cur.Validate(); err != nil {
			return err
		}
		if cur.SelectedDynasty != "" && findByID(st.Dynasties, cur.SelectedDynasty, dynastyID) < 0 {
			return model.ValidationErrors{{Field: "selectedDynasty", Message: "unknown dynasty " + cur.SelectedDynasty}}
		}
		st.UISettings = cur
		updated = cur
		return nil
	})
	return updated, err
}

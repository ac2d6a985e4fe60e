package store

import "github.com/palemoky/dynasty-timeline/internal/model"

// Statistics holds overall dataset counts
type Statistics struct {
	TotalDynasties  int                        `json:"total_dynasties"`
	TotalKings      int                        `json:"total_kings"`
	OneTimeKings    int                        `json:"one_time_kings"`
	TotalEvents     int                        `json:"total_events"`
	TotalWars       int                        `json:"total_wars"`
	WarningsByLevel map[model.WarningLevel]int `json:"warnings_by_level"`
	KingsPerDynasty map[string]int             `json:"kings_per_dynasty"`
	ValidationLevel model.ValidationLevel      `json:"validation_level"`
	SelectedDynasty string                     `json:"selected_dynasty,omitempty"`
}

// Stats summarizes the current dataset
func (s *Store) Stats() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Statistics{
		TotalDynasties:  len(s.state.Dynasties),
		TotalKings:      len(s.state.Kings),
		TotalEvents:     len(s.state.Events),
		TotalWars:       len(s.state.Wars),
		WarningsByLevel: map[model.WarningLevel]int{model.LevelError: 0, model.LevelWarning: 0, model.LevelInfo: 0},
		KingsPerDynasty: make(map[string]int, len(s.state.Dynasties)),
		ValidationLevel: s.state.UISettings.ValidationLevel,
		SelectedDynasty: s.state.UISettings.SelectedDynasty,
	}
	for _, k := range s.state.Kings {
		if k.IsOneTime {
			stats.OneTimeKings++
		}
	}
	for _, d := range s.state.Dynasties {
		stats.KingsPerDynasty[d.Name] = len(s.idx.KingsByDynasty[d.ID])
	}
	for _, w := range s.warnings {
		stats.WarningsByLevel[w.Level]++
	}
	return stats
}

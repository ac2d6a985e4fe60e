package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

// Export returns the full dataset stamped with the export time and app version
func (s *Store) Export() model.ExportFile {
	st := s.Snapshot()
	return model.ExportFile{
		Dynasties:  st.Dynasties,
		Kings:      st.Kings,
		Events:     st.Events,
		Wars:       st.Wars,
		UISettings: st.UISettings,
		ExportDate: s.stamp(),
		AppVersion: AppVersion,
	}
}

// ImportSummary reports what an import loaded
type ImportSummary struct {
	Dynasties int `json:"dynasties"`
	Kings     int `json:"kings"`
	Events    int `json:"events"`
	Wars      int `json:"wars"`
	Warnings  int `json:"warnings"`
}

// Import replaces the whole dataset with an export file.
// Any pre-flight failure leaves the current data untouched.
func (s *Store) Import(data []byte) (ImportSummary, error) {
	st, err := DecodeImport(data)
	if err != nil {
		return ImportSummary{}, err
	}
	for i := range st.Dynasties {
		if st.Dynasties[i].ID == "" {
			st.Dynasties[i].ID = s.newID()
		}
	}
	for i := range st.Kings {
		if st.Kings[i].ID == "" {
			st.Kings[i].ID = s.newID()
		}
	}
	for i := range st.Events {
		if st.Events[i].ID == "" {
			st.Events[i].ID = s.newID()
		}
	}
	for i := range st.Wars {
		if st.Wars[i].ID == "" {
			st.Wars[i].ID = s.newID()
		}
	}

	if err := s.mutate(wholesaleReplace, func(cur *model.State) error {
		*cur = st
		return nil
	}); err != nil {
		return ImportSummary{}, err
	}

	summary := ImportSummary{
		Dynasties: len(st.Dynasties),
		Kings:     len(st.Kings),
		Events:    len(st.Events),
		Wars:      len(st.Wars),
		Warnings:  len(s.Warnings("")),
	}
	s.log.Info("imported dataset",
		zap.Int("dynasties", summary.Dynasties),
		zap.Int("kings", summary.Kings),
		zap.Int("events", summary.Events),
		zap.Int("wars", summary.Wars),
	)
	return summary, nil
}

// DecodeImport parses an export file and runs the structural pre-flight check:
// the JSON must be an object carrying every export key, and ids must be unique per collection.
func DecodeImport(data []byte) (model.State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.State{}, &ImportError{Reason: "malformed JSON", Err: err}
	}

	var missing []string
	for _, key := range model.ExportFileKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return model.State{}, &ImportError{Reason: "missing keys: " + strings.Join(missing, ", ")}
	}

	st := model.NewState()
	fields := []struct {
		key    string
		target any
	}{
		{"dynasties", &st.Dynasties},
		{"kings", &st.Kings},
		{"events", &st.Events},
		{"wars", &st.Wars},
		{"uiSettings", &st.UISettings},
	}
	for _, f := range fields {
		if err := json.Unmarshal(raw[f.key], f.target); err != nil {
			return model.State{}, &ImportError{Reason: "invalid " + f.key, Err: err}
		}
	}
	st.Normalize()

	if err := checkUniqueIDs(st); err != nil {
		return model.State{}, err
	}
	return st, nil
}

func checkUniqueIDs(st model.State) error {
	dups := []struct {
		kind string
		id   string
	}{
		{"dynasty", firstDuplicate(st.Dynasties, dynastyID)},
		{"king", firstDuplicate(st.Kings, kingID)},
		{"event", firstDuplicate(st.Events, eventID)},
		{"war", firstDuplicate(st.Wars, warID)},
	}
	for _, d := range dups {
		if d.id != "" {
			return &ImportError{Reason: fmt.Sprintf("duplicate %s id %q", d.kind, d.id)}
		}
	}
	return nil
}

// firstDuplicate returns the first non-empty id that appears twice, or ""
func firstDuplicate[T any](items []T, idOf func(T) string) string {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		id := idOf(item)
		if id == "" {
			continue
		}
		if seen[id] {
			return id
		}
		seen[id] = true
	}
	return ""
}

// ResetToSample replaces the data with the built-in sample dataset.
// UI settings are kept, except for a dynasty filter that no longer applies.
func (s *Store) ResetToSample() error {
	return s.mutate(wholesaleReplace, func(st *model.State) error {
		settings := st.UISettings
		settings.SelectedDynasty = ""
		*st = SampleState(s.stamp(), s.newID)
		st.UISettings = settings
		return nil
	})
}

// ClearAll removes every dynasty, king, event and war
func (s *Store) ClearAll() error {
	return s.mutate(wholesaleReplace, func(st *model.State) error {
		settings := st.UISettings
		settings.SelectedDynasty = ""
		*st = model.NewState()
		st.UISettings = settings
		return nil
	})
}

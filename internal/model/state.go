package model

import (
	"slices"
	"time"
)

// State is the full dataset: the four collections plus UI settings
type State struct {
	Dynasties  []Dynasty  `json:"dynasties"`
	Kings      []King     `json:"kings"`
	Events     []Event    `json:"events"`
	Wars       []War      `json:"wars"`
	UISettings UISettings `json:"uiSettings"`
}

// NewState returns an empty state with default settings
func NewState() State {
	return State{
		Dynasties:  []Dynasty{},
		Kings:      []King{},
		Events:     []Event{},
		Wars:       []War{},
		UISettings: DefaultUISettings(),
	}
}

// Clone returns a deep copy. Mutations on the copy never reach the original.
func (s State) Clone() State {
	out := State{
		Dynasties:  make([]Dynasty, len(s.Dynasties)),
		Kings:      make([]King, len(s.Kings)),
		Events:     make([]Event, len(s.Events)),
		Wars:       make([]War, len(s.Wars)),
		UISettings: s.UISettings,
	}
	for i, d := range s.Dynasties {
		d.EndYear = cloneInt(d.EndYear)
		out.Dynasties[i] = d
	}
	for i, k := range s.Kings {
		out.Kings[i] = k.Clone()
	}
	for i, e := range s.Events {
		out.Events[i] = e.Clone()
	}
	for i, w := range s.Wars {
		out.Wars[i] = w.Clone()
	}
	return out
}

// Normalize replaces nil collections with empty ones so they encode as []
func (s *State) Normalize() {
	if s.Dynasties == nil {
		s.Dynasties = []Dynasty{}
	}
	if s.Kings == nil {
		s.Kings = []King{}
	}
	if s.Events == nil {
		s.Events = []Event{}
	}
	if s.Wars == nil {
		s.Wars = []War{}
	}
	for i := range s.Events {
		if s.Events[i].RelatedKings == nil {
			s.Events[i].RelatedKings = []string{}
		}
	}
	for i := range s.Wars {
		if s.Wars[i].Participants == nil {
			s.Wars[i].Participants = []Participant{}
		}
	}
	if !s.UISettings.ValidationLevel.IsValid() {
		s.UISettings.ValidationLevel = ValidationWarn
	}
}

// Clone returns a deep copy of the king
func (k King) Clone() King {
	k.DynastyID = cloneString(k.DynastyID)
	k.EndYear = cloneInt(k.EndYear)
	k.BirthYear = cloneInt(k.BirthYear)
	k.DeathYear = cloneInt(k.DeathYear)
	return k
}

// Clone returns a deep copy of the event
func (e Event) Clone() Event {
	e.RelatedKings = slices.Clone(e.RelatedKings)
	return e
}

// Clone returns a deep copy of the war
func (w War) Clone() War {
	w.EndYear = cloneInt(w.EndYear)
	w.Participants = slices.Clone(w.Participants)
	return w
}

// Clone returns a deep copy of the dynasty
func (d Dynasty) Clone() Dynasty {
	d.EndYear = cloneInt(d.EndYear)
	return d
}

// ExportFile is the on-disk shape of an exported dataset
type ExportFile struct {
	Dynasties  []Dynasty  `json:"dynasties"`
	Kings      []King     `json:"kings"`
	Events     []Event    `json:"events"`
	Wars       []War      `json:"wars"`
	UISettings UISettings `json:"uiSettings"`
	ExportDate time.Time  `json:"exportDate"`
	AppVersion string     `json:"appVersion"`
}

// ExportFileKeys lists the top-level keys an import must carry
var ExportFileKeys = []string{"dynasties", "kings", "events", "wars", "uiSettings", "exportDate", "appVersion"}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

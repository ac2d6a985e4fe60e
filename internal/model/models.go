// Package model defines the timeline entities and the state that holds them.
package model

import "time"

// Importance ranks events and wars
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// IsValid reports whether the importance is one of the known values
func (i Importance) IsValid() bool {
	return i == ImportanceHigh || i == ImportanceMedium || i == ImportanceLow
}

// Role is a king's part in a war
type Role string

const (
	RoleVictor      Role = "victor"
	RoleDefeated    Role = "defeated"
	RoleParticipant Role = "participant"
	RoleAlly        Role = "ally"
	RoleNeutral     Role = "neutral"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	switch r {
	case RoleVictor, RoleDefeated, RoleParticipant, RoleAlly, RoleNeutral:
		return true
	}
	return false
}

// Dynasty represents a ruling lineage with a time span
type Dynasty struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartYear   int       `json:"startYear"`
	EndYear     *int      `json:"endYear"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// King represents a ruler, optionally tied to a dynasty.
// One-time kings are created inline from event or war forms and
// live only as long as something references them.
type King struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DynastyID   *string   `json:"dynastyId"`
	StartYear   int       `json:"startYear"`
	EndYear     *int      `json:"endYear"`
	BirthYear   *int      `json:"birthYear,omitempty"`
	DeathYear   *int      `json:"deathYear,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsOneTime   bool      `json:"isOneTime"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// InDynasty reports whether the king belongs to the given dynasty
func (k King) InDynasty(dynastyID string) bool {
	return k.DynastyID != nil && *k.DynastyID == dynastyID
}

// Event represents a dated occurrence linked to kings
type Event struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Date         string     `json:"date"`
	Description  string     `json:"description,omitempty"`
	RelatedKings []string   `json:"relatedKings"`
	Type         string     `json:"type,omitempty"`
	Importance   Importance `json:"importance"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt,omitzero"`
}

// References reports whether the event lists the king
func (e Event) References(kingID string) bool {
	for _, id := range e.RelatedKings {
		if id == kingID {
			return true
		}
	}
	return false
}

// Participant is one king's involvement in a war
type Participant struct {
	KingID string `json:"kingId"`
	Role   Role   `json:"role"`
	Side   string `json:"side,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// War represents a conflict with a participant list
type War struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	StartYear    int           `json:"startYear"`
	EndYear      *int          `json:"endYear"`
	Location     string        `json:"location,omitempty"`
	Type         string        `json:"type,omitempty"`
	Importance   Importance    `json:"importance"`
	Description  string        `json:"description,omitempty"`
	Participants []Participant `json:"participants"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt,omitzero"`
}

// LastYear returns the end year, or the start year for single-year wars
func (w War) LastYear() int {
	if w.EndYear != nil {
		return *w.EndYear
	}
	return w.StartYear
}

// References reports whether the king takes part in the war
func (w War) References(kingID string) bool {
	for _, p := range w.Participants {
		if p.KingID == kingID {
			return true
		}
	}
	return false
}

// ValidationLevel controls how chronological warnings are treated
type ValidationLevel string

const (
	ValidationOff    ValidationLevel = "off"
	ValidationWarn   ValidationLevel = "warn"
	ValidationStrict ValidationLevel = "strict"
)

// IsValid reports whether the level is one of the known values
func (l ValidationLevel) IsValid() bool {
	return l == ValidationOff || l == ValidationWarn || l == ValidationStrict
}

// UISettings holds viewer preferences persisted alongside the data
type UISettings struct {
	SelectedDynasty         string          `json:"selectedDynasty"`
	ShowIncompleteTimelines bool            `json:"showIncompleteTimelines"`
	ValidationLevel         ValidationLevel `json:"validationLevel"`
}

// DefaultUISettings returns the settings used for a fresh dataset
func DefaultUISettings() UISettings {
	return UISettings{
		ShowIncompleteTimelines: true,
		ValidationLevel:         ValidationWarn,
	}
}

// IntPtr returns a pointer to i
func IntPtr(i int) *int {
	return &i
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

package model

import (
	"fmt"
	"strings"
)

// FieldError describes one rejected form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field errors that block a save
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func checkRange(errs *ValidationErrors, start int, end *int) {
	if end != nil && *end < start {
		errs.add("endYear", "must not be before startYear")
	}
}

// Validate checks the dynasty's form-level constraints
func (d Dynasty) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(d.Name) == "" {
		errs.add("name", "is required")
	}
	checkRange(&errs, d.StartYear, d.EndYear)
	return errs.err()
}

// Validate checks the king's form-level constraints
func (k King) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(k.Name) == "" {
		errs.add("name", "is required")
	}
	if k.DynastyID != nil && *k.DynastyID == "" {
		errs.add("dynastyId", "must be null or a dynasty id")
	}
	checkRange(&errs, k.StartYear, k.EndYear)
	if k.BirthYear != nil && k.DeathYear != nil && *k.DeathYear < *k.BirthYear {
		errs.add("deathYear", "must not be before birthYear")
	}
	return errs.err()
}

// Validate checks the event's form-level constraints
func (e Event) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(e.Name) == "" {
		errs.add("name", "is required")
	}
	if strings.TrimSpace(e.Date) == "" {
		errs.add("date", "is required")
	}
	if !e.Importance.IsValid() {
		errs.add("importance", "must be one of high, medium, low")
	}
	seen := make(map[string]bool, len(e.RelatedKings))
	for _, id := range e.RelatedKings {
		if id == "" {
			errs.add("relatedKings", "must not contain empty ids")
			continue
		}
		if seen[id] {
			errs.add("relatedKings", "duplicate king %s", id)
		}
		seen[id] = true
	}
	return errs.err()
}

// Validate checks the war's form-level constraints
func (w War) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(w.Name) == "" {
		errs.add("name", "is required")
	}
	checkRange(&errs, w.StartYear, w.EndYear)
	if !w.Importance.IsValid() {
		errs.add("importance", "must be one of high, medium, low")
	}
	seen := make(map[string]bool, len(w.Participants))
	for i, p := range w.Participants {
		field := fmt.Sprintf("participants[%d]", i)
		if p.KingID == "" {
			errs.add(field+".kingId", "is required")
		} else if seen[p.KingID] {
			errs.add(field+".kingId", "duplicate king %s", p.KingID)
		}
		seen[p.KingID] = true
		if !p.Role.IsValid() {
			errs.add(field+".role", "must be one of victor, defeated, participant, ally, neutral")
		}
	}
	return errs.err()
}

// Validate checks the settings values
func (s UISettings) Validate() error {
	var errs ValidationErrors
	if !s.ValidationLevel.IsValid() {
		errs.add("validationLevel", "must be one of off, warn, strict")
	}
	return errs.err()
}

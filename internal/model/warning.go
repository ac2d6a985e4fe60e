package model

import "strings"

// WarningLevel is the severity of a chronological warning
type WarningLevel string

const (
	LevelError   WarningLevel = "error"
	LevelWarning WarningLevel = "warning"
	LevelInfo    WarningLevel = "info"
)

// Blocking reports whether strict validation refuses changes that raise this level
func (l WarningLevel) Blocking() bool {
	return l == LevelError || l == LevelWarning
}

// WarningType names the rule that produced a warning
type WarningType string

const (
	WarnDynastyInvalidRange WarningType = "dynasty-invalid-range"
	WarnKingInvalidRange    WarningType = "king-invalid-range"
	WarnKingBeforeDynasty   WarningType = "king-before-dynasty"
	WarnKingAfterDynasty    WarningType = "king-after-dynasty"
	WarnKingMissingDynasty  WarningType = "king-missing-dynasty"
	WarnEventOutsideReign   WarningType = "event-outside-reign"
	WarnEventMissingKing    WarningType = "event-missing-king"
	WarnWarInvalidRange     WarningType = "war-invalid-range"
	WarnWarOutsideReign     WarningType = "war-outside-reign"
	WarnWarMissingKing      WarningType = "war-missing-king"
)

// Warning is an advisory flag raised when entity dates disagree
type Warning struct {
	ID         string       `json:"id"`
	Type       WarningType  `json:"type"`
	Level      WarningLevel `json:"level"`
	Message    string       `json:"message"`
	RelatedIDs []string     `json:"relatedIds"`
}

// WarningID builds the deterministic id of a warning from its type and subjects
func WarningID(t WarningType, ids ...string) string {
	return string(t) + ":" + strings.Join(ids, ":")
}

// Package validation cross-checks entity dates and reports chronological warnings.
//
// Run is a pure function of the state: it never mutates its input and the same
// state always yields the same warnings in the same order.
package validation

import (
	"fmt"

	"github.com/palemoky/dynasty-timeline/internal/chrono"
	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

// Run walks dynasties, kings, events and wars and returns every warning found.
// A nil idx is built from st.
func Run(st model.State, idx *index.Index) []model.Warning {
	if idx == nil {
		idx = index.Build(st)
	}

	warnings := []model.Warning{}
	for _, d := range st.Dynasties {
		warnings = append(warnings, checkDynasty(d)...)
	}
	for _, k := range st.Kings {
		warnings = append(warnings, checkKing(k, idx)...)
	}
	for _, e := range st.Events {
		warnings = append(warnings, checkEvent(e, idx)...)
	}
	for _, w := range st.Wars {
		warnings = append(warnings, checkWar(w, idx)...)
	}
	return warnings
}

// Filter keeps the warnings at the given level; an empty level keeps all
func Filter(warnings []model.Warning, level model.WarningLevel) []model.Warning {
	if level == "" {
		return warnings
	}
	out := []model.Warning{}
	for _, w := range warnings {
		if w.Level == level {
			out = append(out, w)
		}
	}
	return out
}

// Introduced returns the blocking warnings in next whose ids are absent from prev
func Introduced(prev, next []model.Warning) []model.Warning {
	seen := make(map[string]bool, len(prev))
	for _, w := range prev {
		seen[w.ID] = true
	}
	var out []model.Warning
	for _, w := range next {
		if w.Level.Blocking() && !seen[w.ID] {
			out = append(out, w)
		}
	}
	return out
}

func newWarning(t model.WarningType, level model.WarningLevel, msg string, ids ...string) model.Warning {
	return model.Warning{
		ID:         model.WarningID(t, ids...),
		Type:       t,
		Level:      level,
		Message:    msg,
		RelatedIDs: ids,
	}
}

func checkDynasty(d model.Dynasty) []model.Warning {
	if d.EndYear != nil && *d.EndYear < d.StartYear {
		return []model.Warning{newWarning(model.WarnDynastyInvalidRange, model.LevelError,
			fmt.Sprintf("Dynasty %q ends (%s) before it starts (%s)",
				d.Name, chrono.FormatYear(*d.EndYear), chrono.FormatYear(d.StartYear)),
			d.ID)}
	}
	return nil
}

func checkKing(k model.King, idx *index.Index) []model.Warning {
	var out []model.Warning
	if k.EndYear != nil && *k.EndYear < k.StartYear {
		out = append(out, newWarning(model.WarnKingInvalidRange, model.LevelError,
			fmt.Sprintf("Reign of %q ends (%s) before it starts (%s)",
				k.Name, chrono.FormatYear(*k.EndYear), chrono.FormatYear(k.StartYear)),
			k.ID))
	}
	if k.DynastyID == nil {
		return out
	}

	d, ok := idx.Dynasties[*k.DynastyID]
	if !ok {
		return append(out, newWarning(model.WarnKingMissingDynasty, model.LevelInfo,
			fmt.Sprintf("Ruler %q refers to a dynasty that no longer exists", k.Name),
			k.ID, *k.DynastyID))
	}

	if k.StartYear < d.StartYear {
		out = append(out, newWarning(model.WarnKingBeforeDynasty, model.LevelWarning,
			fmt.Sprintf("Reign of %q starts in %s, before dynasty %q begins in %s",
				k.Name, chrono.FormatYear(k.StartYear), d.Name, chrono.FormatYear(d.StartYear)),
			k.ID, d.ID))
	}
	if d.EndYear != nil {
		last := k.StartYear
		if k.EndYear != nil {
			last = *k.EndYear
		}
		if last > *d.EndYear {
			out = append(out, newWarning(model.WarnKingAfterDynasty, model.LevelWarning,
				fmt.Sprintf("Reign of %q extends to %s, after dynasty %q ends in %s",
					k.Name, chrono.FormatYear(last), d.Name, chrono.FormatYear(*d.EndYear)),
				k.ID, d.ID))
		}
	}
	return out
}

func outsideReign(k model.King, first, last int) bool {
	if first < k.StartYear {
		return true
	}
	return k.EndYear != nil && last > *k.EndYear
}

func checkEvent(e model.Event, idx *index.Index) []model.Warning {
	var out []model.Warning
	year, dated := chrono.EventYear(e.Date)
	for _, kingID := range e.RelatedKings {
		k, ok := idx.Kings[kingID]
		if !ok {
			out = append(out, newWarning(model.WarnEventMissingKing, model.LevelInfo,
				fmt.Sprintf("Event %q refers to a ruler that no longer exists", e.Name),
				e.ID, kingID))
			continue
		}
		if dated && outsideReign(k, year, year) {
			out = append(out, newWarning(model.WarnEventOutsideReign, model.LevelWarning,
				fmt.Sprintf("Event %q (%s) falls outside the reign of %q (%s)",
					e.Name, chrono.FormatYear(year), k.Name, chrono.FormatRange(k.StartYear, k.EndYear)),
				e.ID, k.ID))
		}
	}
	return out
}

func checkWar(w model.War, idx *index.Index) []model.Warning {
	var out []model.Warning
	if w.EndYear != nil && *w.EndYear < w.StartYear {
		out = append(out, newWarning(model.WarnWarInvalidRange, model.LevelError,
			fmt.Sprintf("War %q ends (%s) before it starts (%s)",
				w.Name, chrono.FormatYear(*w.EndYear), chrono.FormatYear(w.StartYear)),
			w.ID))
	}
	for _, p := range w.Participants {
		k, ok := idx.Kings[p.KingID]
		if !ok {
			out = append(out, newWarning(model.WarnWarMissingKing, model.LevelInfo,
				fmt.Sprintf("War %q lists a participant that no longer exists", w.Name),
				w.ID, p.KingID))
			continue
		}
		if outsideReign(k, w.StartYear, w.LastYear()) {
			out = append(out, newWarning(model.WarnWarOutsideReign, model.LevelWarning,
				fmt.Sprintf("War %q (%s) falls outside the reign of %q (%s)",
					w.Name, chrono.FormatRange(w.StartYear, model.IntPtr(w.LastYear())), k.Name,
					chrono.FormatRange(k.StartYear, k.EndYear)),
				w.ID, k.ID))
		}
	}
	return out
}

// Package timeline turns a dataset into horizontal bars positioned on a shared year axis.
package timeline

import (
	"github.com/palemoky/dynasty-timeline/internal/chrono"
	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

const (
	// DefaultWidth is the axis width used when the caller does not pick one
	DefaultWidth = 1000.0

	minPadding = 10
)

// Bounds is the visible year range, inclusive
type Bounds struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Span returns the number of years covered
func (b Bounds) Span() int {
	return b.End - b.Start
}

// Position maps a year onto [0, width] by linear interpolation.
// Years outside the bounds are clamped to the edges.
func Position(year int, b Bounds, width float64) float64 {
	if b.Span() <= 0 {
		return 0
	}
	p := float64(year-b.Start) / float64(b.Span()) * width
	return min(max(p, 0), width)
}

// Bar is one dynasty or king drawn on the axis
type Bar struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Label      string  `json:"label"`
	Range      string  `json:"range"`
	Color      string  `json:"color,omitempty"`
	StartYear  int     `json:"startYear"`
	EndYear    int     `json:"endYear"`
	Left       float64 `json:"left"`
	Width      float64 `json:"width"`
	Incomplete bool    `json:"incomplete"`
	OneTime    bool    `json:"oneTime,omitempty"`
}

// Row groups a dynasty bar with its rulers. Rulers without a dynasty share a row with no Dynasty.
type Row struct {
	Dynasty *Bar  `json:"dynasty,omitempty"`
	Kings   []Bar `json:"kings"`
}

// Marker is a single-year event on the axis
type Marker struct {
	ID         string           `json:"id"`
	Label      string           `json:"label"`
	Year       int              `json:"year"`
	Left       float64          `json:"left"`
	Importance model.Importance `json:"importance"`
	Kings      []string         `json:"kings"`
}

// Span is a war drawn across its years
type Span struct {
	ID         string           `json:"id"`
	Label      string           `json:"label"`
	StartYear  int              `json:"startYear"`
	EndYear    int              `json:"endYear"`
	Left       float64          `json:"left"`
	Width      float64          `json:"width"`
	Importance model.Importance `json:"importance"`
}

// Layout is everything needed to draw the timeline
type Layout struct {
	Bounds Bounds   `json:"bounds"`
	Width  float64  `json:"width"`
	Rows   []Row    `json:"rows"`
	Events []Marker `json:"events"`
	Wars   []Span   `json:"wars"`
	Empty  bool     `json:"empty"`
}

// visible is the subset of the state the settings allow on screen
type visible struct {
	dynasties  []model.Dynasty
	kings      []model.King
	kingIDs    map[string]bool
	dynastyIDs map[string]bool
	filtered   bool
}

func selectVisible(st model.State) visible {
	settings := st.UISettings
	v := visible{
		kingIDs:    make(map[string]bool),
		dynastyIDs: make(map[string]bool),
		filtered:   settings.SelectedDynasty != "",
	}

	hidden := make(map[string]bool)
	for _, d := range st.Dynasties {
		if (v.filtered && d.ID != settings.SelectedDynasty) ||
			(d.EndYear == nil && !settings.ShowIncompleteTimelines) {
			hidden[d.ID] = true
			continue
		}
		v.dynasties = append(v.dynasties, d)
		v.dynastyIDs[d.ID] = true
	}
	for _, k := range st.Kings {
		if v.filtered && !k.InDynasty(settings.SelectedDynasty) {
			continue
		}
		if k.DynastyID != nil && hidden[*k.DynastyID] {
			continue
		}
		if k.EndYear == nil && !settings.ShowIncompleteTimelines {
			continue
		}
		v.kings = append(v.kings, k)
		v.kingIDs[k.ID] = true
	}
	index.SortDynasties(v.dynasties)
	index.SortKings(v.kings)
	return v
}

// ComputeBounds returns the padded year range covering every visible dynasty and king.
// The second result is false when nothing is visible.
func ComputeBounds(st model.State) (Bounds, bool) {
	return boundsOf(selectVisible(st))
}

func boundsOf(v visible) (Bounds, bool) {
	first := true
	var b Bounds
	extend := func(start int, end *int) {
		last := start
		if end != nil {
			last = *end
		}
		if first {
			b = Bounds{Start: start, End: last}
			first = false
			return
		}
		b.Start = min(b.Start, start)
		b.End = max(b.End, last)
	}
	for _, d := range v.dynasties {
		extend(d.StartYear, d.EndYear)
	}
	for _, k := range v.kings {
		extend(k.StartYear, k.EndYear)
	}
	if first {
		return Bounds{}, false
	}

	pad := max(b.Span()/20, minPadding)
	b.Start -= pad
	b.End += pad
	return b, true
}

// Build lays out the state on an axis of the given width, honoring the UI settings:
// a selected dynasty restricts the view to it, and open-ended entries are dropped
// unless incomplete timelines are shown.
func Build(st model.State, width float64) Layout {
	if width <= 0 {
		width = DefaultWidth
	}
	v := selectVisible(st)
	b, ok := boundsOf(v)
	layout := Layout{Bounds: b, Width: width, Rows: []Row{}, Events: []Marker{}, Wars: []Span{}, Empty: !ok}
	if !ok {
		return layout
	}

	bar := func(id, kind, label, color string, start int, end *int) Bar {
		last := b.End
		if end != nil {
			last = *end
		}
		left := Position(start, b, width)
		return Bar{
			ID:         id,
			Kind:       kind,
			Label:      label,
			Range:      chrono.FormatRange(start, end),
			Color:      color,
			StartYear:  start,
			EndYear:    last,
			Left:       left,
			Width:      Position(last, b, width) - left,
			Incomplete: end == nil,
		}
	}

	kingsOf := make(map[string][]Bar)
	var independent []Bar
	for _, k := range v.kings {
		kb := bar(k.ID, "king", k.Name, "", k.StartYear, k.EndYear)
		kb.OneTime = k.IsOneTime
		if k.DynastyID == nil || !v.dynastyIDs[*k.DynastyID] {
			independent = append(independent, kb)
			continue
		}
		kingsOf[*k.DynastyID] = append(kingsOf[*k.DynastyID], kb)
	}
	for _, d := range v.dynasties {
		db := bar(d.ID, "dynasty", d.Name, d.Color, d.StartYear, d.EndYear)
		for i := range kingsOf[d.ID] {
			kingsOf[d.ID][i].Color = d.Color
		}
		layout.Rows = append(layout.Rows, Row{Dynasty: &db, Kings: nonNil(kingsOf[d.ID])})
	}
	if len(independent) > 0 {
		layout.Rows = append(layout.Rows, Row{Kings: independent})
	}

	events := append([]model.Event(nil), st.Events...)
	index.SortEvents(events)
	for _, e := range events {
		year, ok := chrono.EventYear(e.Date)
		if !ok || !v.shows(e.RelatedKings) {
			continue
		}
		layout.Events = append(layout.Events, Marker{
			ID:         e.ID,
			Label:      e.Name,
			Year:       year,
			Left:       Position(year, b, width),
			Importance: e.Importance,
			Kings:      e.RelatedKings,
		})
	}

	wars := append([]model.War(nil), st.Wars...)
	index.SortWars(wars)
	for _, w := range wars {
		kings := make([]string, len(w.Participants))
		for i, p := range w.Participants {
			kings[i] = p.KingID
		}
		if !v.shows(kings) {
			continue
		}
		last := w.LastYear()
		left := Position(w.StartYear, b, width)
		layout.Wars = append(layout.Wars, Span{
			ID:         w.ID,
			Label:      w.Name,
			StartYear:  w.StartYear,
			EndYear:    last,
			Left:       left,
			Width:      Position(last, b, width) - left,
			Importance: w.Importance,
		})
	}
	return layout
}

// shows reports whether an event or war with these kings belongs on screen.
// Unlinked entries only appear in the unfiltered view.
func (v visible) shows(kings []string) bool {
	if len(kings) == 0 {
		return !v.filtered
	}
	for _, id := range kings {
		if v.kingIDs[id] {
			return true
		}
	}
	return false
}

func nonNil(bars []Bar) []Bar {
	if bars == nil {
		return []Bar{}
	}
	return bars
}

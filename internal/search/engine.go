package search

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/palemoky/dynasty-timeline/internal/chrono"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

// Source provides the dataset to search
type Source interface {
	Snapshot() model.State
}

// Engine handles all search operations
type Engine struct {
	src Source
}

// NewEngine creates a new search engine
func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// SearchType defines the type of search
type SearchType string

const (
	SearchTypeAll     SearchType = "all"
	SearchTypeDynasty SearchType = "dynasty"
	SearchTypeKing    SearchType = "king"
	SearchTypeEvent   SearchType = "event"
	SearchTypeWar     SearchType = "war"
)

// IsValid reports whether t is a known search type
func (t SearchType) IsValid() bool {
	switch t {
	case SearchTypeAll, SearchTypeDynasty, SearchTypeKing, SearchTypeEvent, SearchTypeWar:
		return true
	}
	return false
}

// SearchParams contains search parameters
type SearchParams struct {
	Query      string
	SearchType SearchType
	Page       int
	PageSize   int
}

// Hit is one matching entity
type Hit struct {
	Kind        SearchType `json:"kind"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartYear   *int       `json:"startYear,omitempty"`
	EndYear     *int       `json:"endYear,omitempty"`
	Label       string     `json:"label"`
}

// SearchResult contains search results
type SearchResult struct {
	Hits       []Hit `json:"hits"`
	TotalCount int   `json:"total_count"`
	HasMore    bool  `json:"has_more"`
}

// Search performs a search based on the given parameters.
// A query that reads as a year ("1526", "500 BCE") matches everything spanning that
// year; any other query is a case-insensitive substring match on names and descriptions.
func (e *Engine) Search(params SearchParams) (*SearchResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	if !params.SearchType.IsValid() {
		params.SearchType = SearchTypeAll
	}

	st := e.src.Snapshot()
	match := textMatcher(params.Query)
	if year, ok := yearQuery(params.Query); ok {
		match = yearMatcher(year)
	}

	var hits []Hit
	want := func(t SearchType) bool { return params.SearchType == SearchTypeAll || params.SearchType == t }
	if want(SearchTypeDynasty) {
		hits = append(hits, searchDynasties(st.Dynasties, match)...)
	}
	if want(SearchTypeKing) {
		hits = append(hits, searchKings(st.Kings, match)...)
	}
	if want(SearchTypeEvent) {
		hits = append(hits, searchEvents(st.Events, match)...)
	}
	if want(SearchTypeWar) {
		hits = append(hits, searchWars(st.Wars, match)...)
	}
	sortHits(hits)

	offset := math.MaxInt
	if params.Page-1 <= math.MaxInt/params.PageSize {
		offset = (params.Page - 1) * params.PageSize
	}
	total := len(hits)
	page := []Hit{}
	if offset < total {
		page = hits[offset:min(offset+params.PageSize, total)]
	}

	return &SearchResult{
		Hits:       page,
		TotalCount: total,
		HasMore:    offset+len(page) < total,
	}, nil
}

// matcher decides whether an entity with the given text and span matches
type matcher func(name, description string, start, end *int) bool

func textMatcher(query string) matcher {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(name, description string, _, _ *int) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(name), q) ||
			strings.Contains(strings.ToLower(description), q)
	}
}

func yearMatcher(year int) matcher {
	return func(_, _ string, start, end *int) bool {
		if start == nil {
			return false
		}
		last := *start
		if end != nil {
			last = *end
		}
		return *start <= year && year <= last
	}
}

func searchDynasties(ds []model.Dynasty, match matcher) []Hit {
	var hits []Hit
	for _, d := range ds {
		start := d.StartYear
		if match(d.Name, d.Description, &start, openEnd(d.EndYear)) {
			hits = append(hits, Hit{
				Kind: SearchTypeDynasty, ID: d.ID, Name: d.Name, Description: d.Description,
				StartYear: &start, EndYear: d.EndYear, Label: chrono.FormatRange(d.StartYear, d.EndYear),
			})
		}
	}
	return hits
}

func searchKings(ks []model.King, match matcher) []Hit {
	var hits []Hit
	for _, k := range ks {
		start := k.StartYear
		if match(k.Name, k.Description, &start, openEnd(k.EndYear)) {
			hits = append(hits, Hit{
				Kind: SearchTypeKing, ID: k.ID, Name: k.Name, Description: k.Description,
				StartYear: &start, EndYear: k.EndYear, Label: chrono.FormatRange(k.StartYear, k.EndYear),
			})
		}
	}
	return hits
}

func searchEvents(es []model.Event, match matcher) []Hit {
	var hits []Hit
	for _, e := range es {
		var start *int
		label := e.Date
		if y, ok := chrono.EventYear(e.Date); ok {
			start = &y
			label = chrono.FormatYear(y)
		}
		if match(e.Name, e.Description, start, start) {
			hits = append(hits, Hit{
				Kind: SearchTypeEvent, ID: e.ID, Name: e.Name, Description: e.Description,
				StartYear: start, Label: label,
			})
		}
	}
	return hits
}

func searchWars(ws []model.War, match matcher) []Hit {
	var hits []Hit
	for _, w := range ws {
		start := w.StartYear
		if match(w.Name, w.Description, &start, w.EndYear) {
			hits = append(hits, Hit{
				Kind: SearchTypeWar, ID: w.ID, Name: w.Name, Description: w.Description,
				StartYear: &start, EndYear: w.EndYear, Label: chrono.FormatRange(w.StartYear, w.EndYear),
			})
		}
	}
	return hits
}

// openEnd treats a missing end year as ongoing
func openEnd(end *int) *int {
	if end != nil {
		return end
	}
	ongoing := math.MaxInt
	return &ongoing
}

var kindOrder = map[SearchType]int{SearchTypeDynasty: 0, SearchTypeKing: 1, SearchTypeWar: 2, SearchTypeEvent: 3}

// sortHits orders hits chronologically; undated hits go last
func sortHits(hits []Hit) {
	slices.SortStableFunc(hits, func(a, b Hit) int {
		if (a.StartYear == nil) != (b.StartYear == nil) {
			if a.StartYear == nil {
				return 1
			}
			return -1
		}
		if a.StartYear != nil {
			if c := cmp.Compare(*a.StartYear, *b.StartYear); c != 0 {
				return c
			}
		}
		return cmp.Or(cmp.Compare(kindOrder[a.Kind], kindOrder[b.Kind]), cmp.Compare(a.Name, b.Name))
	})
}

// yearQuery reports whether a query string reads as a year
func yearQuery(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !strings.ContainsFunc(s, unicode.IsDigit) {
		return 0, false
	}
	year, err := chrono.ParseYear(s)
	if err != nil {
		return 0, false
	}
	return year, true
}

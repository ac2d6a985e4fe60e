package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

type staticSource model.State

func (s staticSource) Snapshot() model.State { return model.State(s).Clone() }

// setupTestEngine creates a test search engine with sample data
func setupTestEngine(t *testing.T) *Engine {
	t.Helper()

	st := model.NewState()
	st.Dynasties = []model.Dynasty{
		{ID: "lodi", Name: "Lodi Dynasty", StartYear: 1451, EndYear: model.IntPtr(1526), Description: "Afghan rulers of Delhi"},
		{ID: "mughal", Name: "Mughal Empire", StartYear: 1526},
		{ID: "maurya", Name: "Maurya Empire", StartYear: -321, EndYear: model.IntPtr(-184)},
	}
	st.Kings = []model.King{
		{ID: "ibrahim", Name: "Ibrahim Lodi", DynastyID: model.StringPtr("lodi"), StartYear: 1517, EndYear: model.IntPtr(1526)},
		{ID: "babur", Name: "Babur", DynastyID: model.StringPtr("mughal"), StartYear: 1526, EndYear: model.IntPtr(1530), Description: "Founder of the Mughal Empire"},
		{ID: "ashoka", Name: "Ashoka", DynastyID: model.StringPtr("maurya"), StartYear: -267, EndYear: model.IntPtr(-231)},
	}
	st.Events = []model.Event{
		{ID: "agra", Name: "Founding of Agra", Date: "1506", RelatedKings: []string{}},
		{ID: "edicts", Name: "Rock edicts", Date: "-259", RelatedKings: []string{"ashoka"}},
		{ID: "undated", Name: "Lodi garden legend", Date: "long ago", RelatedKings: []string{}},
	}
	st.Wars = []model.War{
		{ID: "panipat", Name: "First Battle of Panipat", StartYear: 1526, EndYear: model.IntPtr(1526), Description: "Babur defeats Ibrahim Lodi"},
	}
	return NewEngine(staticSource(st))
}

func hitIDs(hits []Hit) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	return ids
}

func TestSearch(t *testing.T) {
	engine := setupTestEngine(t)

	tests := []struct {
		name   string
		params SearchParams
		want   []string
	}{
		{
			name:   "all types by name and description",
			params: SearchParams{Query: "lodi", SearchType: SearchTypeAll},
			want:   []string{"lodi", "ibrahim", "panipat", "undated"},
		},
		{
			name:   "restricted to kings",
			params: SearchParams{Query: "LODI", SearchType: SearchTypeKing},
			want:   []string{"ibrahim"},
		},
		{
			name:   "description match",
			params: SearchParams{Query: "founder", SearchType: SearchTypeAll},
			want:   []string{"babur"},
		},
		{
			name:   "year query matches spans",
			params: SearchParams{Query: "1526", SearchType: SearchTypeAll},
			want:   []string{"lodi", "ibrahim", "mughal", "babur", "panipat"},
		},
		{
			name:   "BCE year query",
			params: SearchParams{Query: "260 BCE", SearchType: SearchTypeAll},
			want:   []string{"maurya", "ashoka", "edicts"},
		},
		{
			name:   "event years",
			params: SearchParams{Query: "1506", SearchType: SearchTypeEvent},
			want:   []string{"agra"},
		},
		{
			name:   "unknown type searches everything",
			params: SearchParams{Query: "panipat", SearchType: "poem"},
			want:   []string{"panipat"},
		},
		{
			name:   "no results",
			params: SearchParams{Query: "vijayanagara", SearchType: SearchTypeAll},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Search(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hitIDs(result.Hits))
			assert.Equal(t, len(tt.want), result.TotalCount)
			assert.False(t, result.HasMore)
		})
	}
}

func TestSearchPagination(t *testing.T) {
	engine := setupTestEngine(t)

	t.Run("first page", func(t *testing.T) {
		result, err := engine.Search(SearchParams{Query: "", Page: 1, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, 10, result.TotalCount)
		assert.Len(t, result.Hits, 3)
		assert.True(t, result.HasMore)
		assert.Equal(t, "maurya", result.Hits[0].ID, "chronological order")
	})

	t.Run("last page", func(t *testing.T) {
		result, err := engine.Search(SearchParams{Query: "", Page: 4, PageSize: 3})
		require.NoError(t, err)
		assert.Len(t, result.Hits, 1)
		assert.Equal(t, "undated", result.Hits[0].ID, "undated hits go last")
		assert.False(t, result.HasMore)
	})

	t.Run("past the end", func(t *testing.T) {
		result, err := engine.Search(SearchParams{Query: "", Page: 9, PageSize: 3})
		require.NoError(t, err)
		assert.Empty(t, result.Hits)
		assert.NotNil(t, result.Hits)
	})

	t.Run("huge page number", func(t *testing.T) {
		result, err := engine.Search(SearchParams{Query: "", Page: 922337203685477581, PageSize: 20})
		require.NoError(t, err)
		assert.Empty(t, result.Hits)
		assert.Equal(t, 10, result.TotalCount)
		assert.False(t, result.HasMore)
	})

	t.Run("default page and page size", func(t *testing.T) {
		result, err := engine.Search(SearchParams{Query: "babur"})
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCount)
	})
}

func TestHitLabels(t *testing.T) {
	engine := setupTestEngine(t)

	result, err := engine.Search(SearchParams{Query: "empire", SearchType: SearchTypeDynasty})
	require.NoError(t, err)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, "322 BCE – 185 BCE", result.Hits[0].Label)
	assert.Equal(t, "1526 – present", result.Hits[1].Label)
}

func TestYearQuery(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"1526", 1526, true},
		{" 500 BCE ", -499, true},
		{"AD 800", 800, true},
		{"-44", -44, true},
		{"babur", 0, false},
		{"", 0, false},
		{"1526 battles", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := yearQuery(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

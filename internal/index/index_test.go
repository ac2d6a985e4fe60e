package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

func testState() model.State {
	st := model.NewState()
	st.Dynasties = []model.Dynasty{
		{ID: "lodi", Name: "Lodi", StartYear: 1451, EndYear: model.IntPtr(1526)},
	}
	st.Kings = []model.King{
		{ID: "ibrahim", Name: "Ibrahim Lodi", DynastyID: model.StringPtr("lodi"), StartYear: 1517, EndYear: model.IntPtr(1526)},
		{ID: "bahlul", Name: "Bahlul Lodi", DynastyID: model.StringPtr("lodi"), StartYear: 1451, EndYear: model.IntPtr(1489)},
		{ID: "sanga", Name: "Rana Sanga", StartYear: 1508, IsOneTime: true},
	}
	st.Events = []model.Event{
		{ID: "e2", Name: "Later", Date: "1525", RelatedKings: []string{"ibrahim"}},
		{ID: "e1", Name: "Earlier", Date: "1518-01-01", RelatedKings: []string{"ibrahim"}},
		{ID: "e3", Name: "Undated", Date: "unknown", RelatedKings: []string{"ibrahim"}},
	}
	st.Wars = []model.War{
		{ID: "w1", Name: "Khatoli", StartYear: 1518, Participants: []model.Participant{
			{KingID: "ibrahim", Role: model.RoleDefeated},
			{KingID: "sanga", Role: model.RoleVictor},
		}},
	}
	return st
}

func TestBuild(t *testing.T) {
	idx := Build(testState())

	require.Len(t, idx.Kings, 3)
	assert.Equal(t, "Lodi", idx.Dynasties["lodi"].Name)

	kings := idx.KingsByDynasty["lodi"]
	require.Len(t, kings, 2)
	assert.Equal(t, "bahlul", kings[0].ID, "kings sorted by reign start")
	assert.Equal(t, "ibrahim", kings[1].ID)

	events := idx.EventsByKing["ibrahim"]
	require.Len(t, events, 3)
	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{events[0].ID, events[1].ID, events[2].ID})

	assert.Len(t, idx.WarsByKing["sanga"], 1)
	assert.Len(t, idx.WarsByKing["ibrahim"], 1)
}

func TestReferenced(t *testing.T) {
	idx := Build(testState())

	assert.True(t, idx.Referenced("ibrahim"))
	assert.True(t, idx.Referenced("sanga"))
	assert.False(t, idx.Referenced("bahlul"))
	assert.False(t, idx.Referenced("missing"))
}

func TestBuildEmptyState(t *testing.T) {
	idx := Build(model.NewState())

	assert.Empty(t, idx.Dynasties)
	assert.Nil(t, idx.KingsByDynasty["anything"])
	assert.False(t, idx.Referenced("anything"))
}

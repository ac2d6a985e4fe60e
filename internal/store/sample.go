package store

import (
	"time"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

type sampleKing struct {
	key        string
	name       string
	dynasty    string
	start, end int
	born, died int
	oneTime    bool
}

// SampleState builds the bundled demonstration dataset: the Delhi Sultanate
// dynasties through the early Mughals, with their rulers, events and battles.
func SampleState(now time.Time, newID func() string) model.State {
	st := model.NewState()

	dynasties := []struct {
		key, name, color, desc string
		start, end             int
	}{
		{"mamluk", "Mamluk Dynasty", "#8e44ad", "Slave dynasty founded by Qutb ud-Din Aibak.", 1206, 1290},
		{"khalji", "Khalji Dynasty", "#c0392b", "Turko-Afghan dynasty that repelled the Mongol invasions.", 1290, 1320},
		{"tughlaq", "Tughlaq Dynasty", "#2980b9", "Largest territorial extent of the Delhi Sultanate.", 1320, 1414},
		{"sayyid", "Sayyid Dynasty", "#16a085", "Ruled a diminished sultanate after Timur's sack of Delhi.", 1414, 1451},
		{"lodi", "Lodi Dynasty", "#d35400", "Last dynasty of the Delhi Sultanate.", 1451, 1526},
		{"mughal", "Mughal Empire", "#27ae60", "Founded by Babur after the First Battle of Panipat.", 1526, 1857},
	}
	dynastyIDs := make(map[string]string, len(dynasties))
	for _, d := range dynasties {
		id := newID()
		dynastyIDs[d.key] = id
		st.Dynasties = append(st.Dynasties, model.Dynasty{
			ID:          id,
			Name:        d.name,
			StartYear:   d.start,
			EndYear:     model.IntPtr(d.end),
			Color:       d.color,
			Description: d.desc,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	kings := []sampleKing{
		{"aibak", "Qutb ud-Din Aibak", "mamluk", 1206, 1210, 1150, 1210, false},
		{"iltutmish", "Iltutmish", "mamluk", 1211, 1236, 1192, 1236, false},
		{"balban", "Ghiyas ud-Din Balban", "mamluk", 1266, 1287, 1216, 1287, false},
		{"alauddin", "Alauddin Khalji", "khalji", 1296, 1316, 1266, 1316, false},
		{"muhammad", "Muhammad bin Tughluq", "tughlaq", 1325, 1351, 1290, 1351, false},
		{"firuz", "Firuz Shah Tughlaq", "tughlaq", 1351, 1388, 1309, 1388, false},
		{"bahlul", "Bahlul Lodi", "lodi", 1451, 1489, 1401, 1489, false},
		{"sikandar", "Sikandar Lodi", "lodi", 1489, 1517, 1458, 1517, false},
		{"ibrahim", "Ibrahim Lodi", "lodi", 1517, 1526, 1480, 1526, false},
		{"babur", "Babur", "mughal", 1526, 1530, 1483, 1530, false},
		{"humayun", "Humayun", "mughal", 1530, 1556, 1508, 1556, false},
		{"akbar", "Akbar", "mughal", 1556, 1605, 1542, 1605, false},
		{"sanga", "Rana Sanga", "", 1508, 1528, 1482, 1528, true},
		{"hemu", "Hemu", "", 1556, 1556, 1501, 1556, true},
	}
	kingIDs := make(map[string]string, len(kings))
	for _, k := range kings {
		id := newID()
		kingIDs[k.key] = id
		king := model.King{
			ID:        id,
			Name:      k.name,
			StartYear: k.start,
			EndYear:   model.IntPtr(k.end),
			BirthYear: model.IntPtr(k.born),
			DeathYear: model.IntPtr(k.died),
			IsOneTime: k.oneTime,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if k.dynasty != "" {
			king.DynastyID = model.StringPtr(dynastyIDs[k.dynasty])
		}
		st.Kings = append(st.Kings, king)
	}

	refs := func(keys ...string) []string {
		ids := make([]string, len(keys))
		for i, k := range keys {
			ids[i] = kingIDs[k]
		}
		return ids
	}

	events := []struct {
		name, date, typ, desc string
		importance            model.Importance
		kings                 []string
	}{
		{"Foundation of the Delhi Sultanate", "1206", "political", "Aibak proclaims himself sultan after the death of Muhammad of Ghor.", model.ImportanceHigh, refs("aibak")},
		{"Iltutmish receives the Abbasid investiture", "1229-02-18", "political", "Recognition of the sultanate by the caliph.", model.ImportanceMedium, refs("iltutmish")},
		{"Market reforms of Alauddin Khalji", "1303", "economic", "Price controls in the markets of Delhi.", model.ImportanceMedium, refs("alauddin")},
		{"Transfer of the capital to Daulatabad", "1327", "political", "Muhammad bin Tughluq moves the court to the Deccan.", model.ImportanceMedium, refs("muhammad")},
		{"Founding of Agra as capital", "1506", "political", "Sikandar Lodi moves the capital to Agra.", model.ImportanceLow, refs("sikandar")},
		{"Proclamation of the Din-i Ilahi", "1582", "religious", "Akbar's syncretic court creed.", model.ImportanceLow, refs("akbar")},
	}
	for _, e := range events {
		st.Events = append(st.Events, model.Event{
			ID:           newID(),
			Name:         e.name,
			Date:         e.date,
			Description:  e.desc,
			RelatedKings: e.kings,
			Type:         e.typ,
			Importance:   e.importance,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	wars := []model.War{
		{
			Name: "First Battle of Panipat", StartYear: 1526, EndYear: model.IntPtr(1526),
			Location: "Panipat", Type: "battle", Importance: model.ImportanceHigh,
			Description: "Babur defeats Ibrahim Lodi, ending the Delhi Sultanate.",
			Participants: []model.Participant{
				{KingID: kingIDs["babur"], Role: model.RoleVictor, Side: "Mughal"},
				{KingID: kingIDs["ibrahim"], Role: model.RoleDefeated, Side: "Lodi"},
			},
		},
		{
			Name: "Battle of Khanwa", StartYear: 1527, EndYear: model.IntPtr(1527),
			Location: "Khanwa", Type: "battle", Importance: model.ImportanceHigh,
			Participants: []model.Participant{
				{KingID: kingIDs["babur"], Role: model.RoleVictor, Side: "Mughal"},
				{KingID: kingIDs["sanga"], Role: model.RoleDefeated, Side: "Rajput confederacy"},
			},
		},
		{
			Name: "Second Battle of Panipat", StartYear: 1556, EndYear: model.IntPtr(1556),
			Location: "Panipat", Type: "battle", Importance: model.ImportanceHigh,
			Participants: []model.Participant{
				{KingID: kingIDs["akbar"], Role: model.RoleVictor, Side: "Mughal"},
				{KingID: kingIDs["hemu"], Role: model.RoleDefeated, Side: "Sur", Notes: "Captured and executed after the battle."},
			},
		},
		{
			Name: "Mongol invasions of India", StartYear: 1297, EndYear: model.IntPtr(1306),
			Location: "Punjab and Delhi", Type: "campaign", Importance: model.ImportanceMedium,
			Participants: []model.Participant{
				{KingID: kingIDs["alauddin"], Role: model.RoleVictor},
			},
		},
	}
	for _, w := range wars {
		w.ID = newID()
		w.CreatedAt = now
		w.UpdatedAt = now
		st.Wars = append(st.Wars, w)
	}

	return st
}

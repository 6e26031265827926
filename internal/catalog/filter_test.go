package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParts() []Part {
	return []Part{
		{ID: "radiator", Name: "Radiator", Category: "Cooling", Price: 85000, Tags: []string{"cooling", "overheating"}, Fits: "Toyota Corolla 1.8L"},
		{ID: "pads", Name: "Front Brake Pads", Category: "Brakes", Price: 28000, Tags: []string{"brake", "squeal"}, Fits: "Toyota Corolla"},
		{ID: "battery", Name: "Battery 60Ah", Category: "Electrical", Price: 95000, Tags: []string{"starting"}, Fits: "Universal"},
		{ID: "coolant", Name: "Coolant 4L", Category: "Cooling", Price: 9500, Tags: []string{"antifreeze"}, Fits: "Universal"},
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	parts := testParts()
	got := Filter(parts, Query{})

	require.Len(t, got, len(parts))
	for i := range parts {
		assert.Equal(t, parts[i].ID, got[i].ID, "catalog order must be preserved")
	}
}

func TestFilter_TextMatchesNameCategoryTagsFits(t *testing.T) {
	parts := testParts()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"name substring", "radiat", []string{"radiator"}},
		{"category substring", "electri", []string{"battery"}},
		{"tag substring", "squeal", []string{"pads"}},
		{"fits substring", "corolla", []string{"radiator", "pads"}},
		{"case insensitive", "RADIATOR", []string{"radiator"}},
		{"no match", "gearbox", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(parts, Query{Text: tt.text})
			var ids []string
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilter_Category(t *testing.T) {
	parts := testParts()

	got := Filter(parts, Query{Category: "Cooling"})
	require.Len(t, got, 2)
	assert.Equal(t, "radiator", got[0].ID)
	assert.Equal(t, "coolant", got[1].ID)

	all := Filter(parts, Query{Category: CategoryAll})
	assert.Len(t, all, len(parts))
}

func TestFilter_Restriction(t *testing.T) {
	parts := testParts()

	t.Run("nil restriction allows everything", func(t *testing.T) {
		got := Filter(parts, Query{Restriction: nil})
		assert.Len(t, got, len(parts))
	})

	t.Run("restriction narrows to listed ids", func(t *testing.T) {
		got := Filter(parts, Query{Restriction: &Restriction{IDs: []string{"pads", "battery"}}})
		require.Len(t, got, 2)
		assert.Equal(t, "pads", got[0].ID)
		assert.Equal(t, "battery", got[1].ID)
	})

	t.Run("empty id list excludes everything", func(t *testing.T) {
		got := Filter(parts, Query{Restriction: &Restriction{IDs: nil}})
		assert.Empty(t, got)
	})
}

func TestFilter_Sorting(t *testing.T) {
	parts := testParts()

	t.Run("priceAsc", func(t *testing.T) {
		got := Filter(parts, Query{Sort: SortPriceAsc})
		require.Len(t, got, 4)
		assert.Equal(t, "coolant", got[0].ID)
		assert.Equal(t, "battery", got[3].ID)
	})

	t.Run("priceDesc", func(t *testing.T) {
		got := Filter(parts, Query{Sort: SortPriceDesc})
		require.Len(t, got, 4)
		assert.Equal(t, "battery", got[0].ID)
		assert.Equal(t, "coolant", got[3].ID)
	})

	t.Run("nameAsc", func(t *testing.T) {
		got := Filter(parts, Query{Sort: SortNameAsc})
		require.Len(t, got, 4)
		assert.Equal(t, "battery", got[0].ID)
	})

	t.Run("sorting is idempotent", func(t *testing.T) {
		once := Filter(parts, Query{Sort: SortPriceAsc})
		twice := Filter(once, Query{Sort: SortPriceAsc})
		assert.Equal(t, once, twice)
	})

	t.Run("stable on equal keys", func(t *testing.T) {
		equal := []Part{
			{ID: "a", Name: "Same", Price: 10},
			{ID: "b", Name: "Same", Price: 10},
			{ID: "c", Name: "Same", Price: 10},
		}
		got := Filter(equal, Query{Sort: SortPriceAsc})
		require.Len(t, got, 3)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
		assert.Equal(t, "c", got[2].ID)
	})
}

func TestSearchSymptoms(t *testing.T) {
	symptoms := []Symptom{
		{ID: "engine-overheating", Title: "Engine overheating", Summary: "Temperature gauge climbs", Category: "Engine"},
		{ID: "brake-squeal", Title: "Brakes squeal or grind", Summary: "High-pitched squeal when braking", Category: "Brakes"},
	}

	got := SearchSymptoms(symptoms, "squeal", "")
	require.Len(t, got, 1)
	assert.Equal(t, "brake-squeal", got[0].ID)

	got = SearchSymptoms(symptoms, "", "Engine")
	require.Len(t, got, 1)
	assert.Equal(t, "engine-overheating", got[0].ID)

	got = SearchSymptoms(symptoms, "", CategoryAll)
	assert.Len(t, got, 2)
}

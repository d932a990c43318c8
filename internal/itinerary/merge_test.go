package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_NilOperands(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-02")
	require.NoError(t, err)

	stored := &Itinerary{Notes: "kept"}

	assert.Same(t, stored, Merge(nil, stored))
	assert.Same(t, template, Merge(template, nil))
}

func TestMerge_AppendsActivities(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-02")
	require.NoError(t, err)

	stored := &Itinerary{
		Days: map[string]*Day{
			"2025-06-01": {
				Activities: []any{
					map[string]any{"name": "Museum", "time": "10:00"},
					map[string]any{"name": "Dinner cruise"},
				},
			},
		},
	}

	merged := Merge(template, stored)
	require.Len(t, merged.Days, 2)

	day := merged.Days["2025-06-01"]
	require.Len(t, day.Activities, 2)
	first, ok := day.Activities[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Museum", first["name"])

	assert.Empty(t, merged.Days["2025-06-02"].Activities)
}

func TestMerge_MealSlotsShallowMerge(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-01")
	require.NoError(t, err)

	stored := &Itinerary{
		Days: map[string]*Day{
			"2025-06-01": {
				Meals: map[string]map[string]any{
					"breakfast": {"place": "Cafe Luna", "time": "08:30"},
					"brunch":    {"place": "ignored"},
				},
			},
		},
	}

	merged := Merge(template, stored)
	day := merged.Days["2025-06-01"]

	assert.Equal(t, "Cafe Luna", day.Meals["breakfast"]["place"])
	assert.Equal(t, "08:30", day.Meals["breakfast"]["time"])
	assert.Empty(t, day.Meals["lunch"])
	assert.Empty(t, day.Meals["dinner"])

	// unknown meal slots never enter the result
	_, ok := day.Meals["brunch"]
	assert.False(t, ok)
}

func TestMerge_LodgingAndNotesOverride(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-02")
	require.NoError(t, err)

	stored := &Itinerary{
		Days: map[string]*Day{
			"2025-06-01": {
				Accommodation:  map[string]any{"name": "Hotel Rex", "checkin": "15:00"},
				Transportation: map[string]any{"mode": "train"},
				Notes:          "arrive early",
			},
			"2025-06-02": {Notes: ""},
		},
	}

	merged := Merge(template, stored)

	day := merged.Days["2025-06-01"]
	assert.Equal(t, "Hotel Rex", day.Accommodation["name"])
	assert.Equal(t, "train", day.Transportation["mode"])
	assert.Equal(t, "arrive early", day.Notes)

	// an empty stored note never clobbers the template's
	assert.Empty(t, merged.Days["2025-06-02"].Notes)
}

func TestMerge_TemplateDateSetIsAuthoritative(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-02")
	require.NoError(t, err)

	stored := &Itinerary{
		Days: map[string]*Day{
			"2025-06-05": {Notes: "outside the trip range"},
			"2025-06-01": {Notes: "inside"},
		},
	}

	merged := Merge(template, stored)
	require.Len(t, merged.Days, 2)
	assert.NotContains(t, merged.Days, "2025-06-05")
	assert.Equal(t, "inside", merged.Days["2025-06-01"].Notes)
}

func TestMerge_TopLevelFields(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-01")
	require.NoError(t, err)

	stored := &Itinerary{
		Notes:           "pack light",
		EstimatedBudget: 1500,
		Overview:        map[string]any{"theme": "food tour"},
	}

	merged := Merge(template, stored)
	assert.Equal(t, "pack light", merged.Notes)
	assert.Equal(t, 1500.0, merged.EstimatedBudget)
	assert.Equal(t, "food tour", merged.Overview["theme"])
}

func TestMerge_ZeroValuesKeepTemplateDefaults(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-01")
	require.NoError(t, err)
	template.Notes = "from template"
	template.EstimatedBudget = 300

	merged := Merge(template, &Itinerary{})
	assert.Equal(t, "from template", merged.Notes)
	assert.Equal(t, 300.0, merged.EstimatedBudget)
}

func TestMerge_NilDayEntryIsSkipped(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-01")
	require.NoError(t, err)

	stored := &Itinerary{
		Days: map[string]*Day{"2025-06-01": nil},
	}

	merged := Merge(template, stored)
	require.NotNil(t, merged.Days["2025-06-01"])
	assert.Empty(t, merged.Days["2025-06-01"].Activities)
}

func TestMerge_MalformedStoredFallsBackToStored(t *testing.T) {
	t.Parallel()

	template, err := Generate("2025-06-01", "2025-06-01")
	require.NoError(t, err)
	// a day with nil meal maps makes the shallow merge panic
	template.Days["2025-06-01"].Meals = map[string]map[string]any{"breakfast": nil}

	stored := &Itinerary{
		Days: map[string]*Day{
			"2025-06-01": {
				Meals: map[string]map[string]any{"breakfast": {"place": "Cafe"}},
			},
		},
		Notes: "stored wins on failure",
	}

	merged := Merge(template, stored)
	assert.Same(t, stored, merged)
	assert.Equal(t, "stored wins on failure", merged.Notes)
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	stored := &Itinerary{
		Days: map[string]*Day{
			"2025-06-01": {Notes: "checked in"},
		},
		EstimatedBudget: 900,
	}

	first, err := Generate("2025-06-01", "2025-06-02")
	require.NoError(t, err)
	second, err := Generate("2025-06-01", "2025-06-02")
	require.NoError(t, err)

	a := Merge(first, stored)
	b := Merge(second, stored)
	assert.Equal(t, a, b)
}

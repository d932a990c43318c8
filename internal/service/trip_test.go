package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planventure/planventure-api/internal/itinerary"
)

func TestTripService_Create_GeneratesDefaultItinerary(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)
	ctx := context.Background()

	view, err := svc.Create(ctx, 1, CreateTripInput{
		Destination: "Lisbon",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-07",
	})
	require.NoError(t, err)
	require.NotZero(t, view.ID)
	assert.Equal(t, "Lisbon", view.Destination)

	require.NotNil(t, view.Itinerary)
	require.Len(t, view.Itinerary.Days, 7)
	day := view.Itinerary.Days["2025-06-03"]
	require.NotNil(t, day)
	assert.Empty(t, day.Activities)
	assert.Len(t, day.Meals, 3)
}

func TestTripService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateTripInput
	}{
		{name: "missing destination", in: CreateTripInput{StartDate: "2025-06-01", EndDate: "2025-06-07"}},
		{name: "blank destination", in: CreateTripInput{Destination: "   ", StartDate: "2025-06-01", EndDate: "2025-06-07"}},
		{name: "missing dates", in: CreateTripInput{Destination: "Lisbon"}},
		{name: "bad date format", in: CreateTripInput{Destination: "Lisbon", StartDate: "06/01/2025", EndDate: "2025-06-07"}},
		{name: "reversed range", in: CreateTripInput{Destination: "Lisbon", StartDate: "2025-06-07", EndDate: "2025-06-01"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			view, err := svc.Create(ctx, 1, tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, view)
		})
	}
}

func TestTripService_Create_TrimsDestination(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)

	view, err := svc.Create(context.Background(), 1, CreateTripInput{
		Destination: "  Kyoto  ",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", view.Destination)
}

func TestTripService_GetAndList_ScopedToOwner(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)
	ctx := context.Background()

	mine, err := svc.Create(ctx, 1, CreateTripInput{Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-02"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, CreateTripInput{Destination: "Oslo", StartDate: "2025-07-01", EndDate: "2025-07-02"})
	require.NoError(t, err)

	views, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Lisbon", views[0].Destination)

	got, err := svc.Get(ctx, 1, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	// someone else's trip reads as absent
	_, err = svc.Get(ctx, 2, mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTripService_Update_PartialFields(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTripInput{Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-03"})
	require.NoError(t, err)

	dest := "Porto"
	lat := 41.1579
	updated, err := svc.Update(ctx, 1, created.ID, UpdateTripInput{Destination: &dest, Latitude: &lat})
	require.NoError(t, err)
	assert.Equal(t, "Porto", updated.Destination)
	require.NotNil(t, updated.Latitude)
	assert.Equal(t, 41.1579, *updated.Latitude)

	// untouched fields survive
	assert.Equal(t, "2025-06-01", updated.StartDate)
	assert.Equal(t, "2025-06-03", updated.EndDate)
	assert.Nil(t, updated.Longitude)
}

func TestTripService_Update_DateValidationUsesMergedValues(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTripInput{Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-03"})
	require.NoError(t, err)

	// moving only the start past the stored end must fail
	badStart := "2025-06-10"
	_, err = svc.Update(ctx, 1, created.ID, UpdateTripInput{StartDate: &badStart})
	assert.ErrorIs(t, err, ErrValidation)

	// and the failed update left the trip untouched
	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", got.StartDate)

	// moving both together is fine
	newStart, newEnd := "2025-06-10", "2025-06-12"
	updated, err := svc.Update(ctx, 1, created.ID, UpdateTripInput{StartDate: &newStart, EndDate: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", updated.StartDate)
	require.NotNil(t, updated.Itinerary)
	assert.Len(t, updated.Itinerary.Days, 3)
}

func TestTripService_Update_BlankDestinationRejected(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTripInput{Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-03"})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(ctx, 1, created.ID, UpdateTripInput{Destination: &blank})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTripService_Update_ItineraryOverlayReadBack(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTripInput{Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-03"})
	require.NoError(t, err)

	overlay := &itinerary.Itinerary{
		Days: map[string]*itinerary.Day{
			"2025-06-02": {
				Activities: []any{map[string]any{"name": "Museum"}},
				Notes:      "buy tickets ahead",
			},
		},
		EstimatedBudget: 800,
	}
	_, err = svc.Update(ctx, 1, created.ID, UpdateTripInput{Itinerary: overlay})
	require.NoError(t, err)

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Itinerary)

	// the projection still covers the full range
	require.Len(t, got.Itinerary.Days, 3)

	day := got.Itinerary.Days["2025-06-02"]
	require.NotNil(t, day)
	require.Len(t, day.Activities, 1)
	activity, ok := day.Activities[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Museum", activity["name"])
	assert.Equal(t, "buy tickets ahead", day.Notes)
	assert.Equal(t, 800.0, got.Itinerary.EstimatedBudget)

	// untouched days keep the template skeleton
	other := got.Itinerary.Days["2025-06-01"]
	require.NotNil(t, other)
	assert.Empty(t, other.Activities)
	assert.Len(t, other.Meals, 3)
}

func TestTripService_Delete(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTripInput{Destination: "Lisbon", StartDate: "2025-06-01", EndDate: "2025-06-02"})
	require.NoError(t, err)

	// only the owner can delete
	assert.ErrorIs(t, svc.Delete(ctx, 2, created.ID), ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))
	_, err = svc.Get(ctx, 1, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 1, created.ID), ErrNotFound)
}

func TestTripService_Search_Unavailable(t *testing.T) {
	t.Parallel()

	svc := newTestTripService(t)

	_, _, err := svc.Search(context.Background(), 1, "lisbon", 0, 10)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

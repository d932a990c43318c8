package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/planventure/planventure-api/internal/es"
	"github.com/planventure/planventure-api/internal/itinerary"
	"github.com/planventure/planventure-api/internal/logging"
	"github.com/planventure/planventure-api/internal/models"
	"github.com/planventure/planventure-api/internal/mykafka"
	"github.com/planventure/planventure-api/internal/repo"
)

type TripService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

type CreateTripInput struct {
	Destination string               `json:"destination"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	Latitude    *float64             `json:"latitude"`
	Longitude   *float64             `json:"longitude"`
	Itinerary   *itinerary.Itinerary `json:"itinerary"`
}

// UpdateTripInput carries partial-update semantics: nil means the field
// was absent from the request and stays untouched.
type UpdateTripInput struct {
	Destination *string              `json:"destination"`
	StartDate   *string              `json:"start_date"`
	EndDate     *string              `json:"end_date"`
	Latitude    *float64             `json:"latitude"`
	Longitude   *float64             `json:"longitude"`
	Itinerary   *itinerary.Itinerary `json:"itinerary"`
}

// TripView is the read projection: stored fields plus the effective
// itinerary computed from the date range and the stored overlay.
type TripView struct {
	ID          uint                 `json:"id"`
	Destination string               `json:"destination"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	Latitude    *float64             `json:"latitude"`
	Longitude   *float64             `json:"longitude"`
	Itinerary   *itinerary.Itinerary `json:"itinerary"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func validateDateRange(startDate, endDate string) error {
	start, err := time.Parse(itinerary.DateLayout, startDate)
	if err != nil {
		return fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrValidation)
	}
	end, err := time.Parse(itinerary.DateLayout, endDate)
	if err != nil {
		return fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrValidation)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start date must not be after end date", ErrValidation)
	}
	return nil
}

// EffectiveItinerary regenerates the template for the trip's range and
// merges the stored overlay onto it. Never persisted; if the stored
// dates fail to parse the raw overlay is returned as-is.
func EffectiveItinerary(trip *models.Trip) *itinerary.Itinerary {
	template, err := itinerary.Generate(trip.StartDate, trip.EndDate)
	if err != nil {
		return trip.Itinerary
	}
	return itinerary.Merge(template, trip.Itinerary)
}

func viewOf(trip *models.Trip) TripView {
	return TripView{
		ID:          trip.ID,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
		Latitude:    trip.Latitude,
		Longitude:   trip.Longitude,
		Itinerary:   EffectiveItinerary(trip),
		CreatedAt:   trip.CreatedAt,
		UpdatedAt:   trip.UpdatedAt,
	}
}

func (s *TripService) publish(ctx context.Context, event map[string]any, key string) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "trip_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "trip_events", "error", err)
	}
}

func (s *TripService) index(ctx context.Context, trip *models.Trip) {
	if s.ES == nil {
		return
	}
	if err := es.IndexTrip(ctx, s.ES, trip); err != nil {
		logging.FromContext(ctx).Error("trip index error", "trip_id", trip.ID, "error", err)
	}
}

func (s *TripService) Create(ctx context.Context, userID uint, in CreateTripInput) (*TripView, error) {
	destination := strings.TrimSpace(in.Destination)
	if destination == "" || in.StartDate == "" || in.EndDate == "" {
		return nil, fmt.Errorf("%w: destination, start_date and end_date are required", ErrValidation)
	}
	if err := validateDateRange(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	stored := in.Itinerary
	if stored == nil {
		generated, err := itinerary.Generate(in.StartDate, in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrValidation)
		}
		stored = generated
	}

	trip := models.Trip{
		UserID:      userID,
		Destination: destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Itinerary:   stored,
	}
	if err := s.Repo.CreateTrip(ctx, &trip); err != nil {
		return nil, err
	}

	s.index(ctx, &trip)
	s.publish(ctx, map[string]any{
		"type":        "trip_created",
		"trip_id":     trip.ID,
		"user_id":     userID,
		"destination": trip.Destination,
	}, fmt.Sprint(userID))

	view := viewOf(&trip)
	return &view, nil
}

func (s *TripService) List(ctx context.Context, userID uint) ([]TripView, error) {
	trips, err := s.Repo.ListTrips(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]TripView, len(trips))
	for i := range trips {
		views[i] = viewOf(&trips[i])
	}
	return views, nil
}

func (s *TripService) Get(ctx context.Context, userID, tripID uint) (*TripView, error) {
	trip, err := s.Repo.GetTrip(ctx, userID, tripID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	view := viewOf(trip)
	return &view, nil
}

// Update applies the fields present in the input; validation failures
// leave the trip untouched.
func (s *TripService) Update(ctx context.Context, userID, tripID uint, in UpdateTripInput) (*TripView, error) {
	trip, err := s.Repo.GetTrip(ctx, userID, tripID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	startDate, endDate := trip.StartDate, trip.EndDate
	if in.StartDate != nil {
		startDate = *in.StartDate
	}
	if in.EndDate != nil {
		endDate = *in.EndDate
	}
	if in.StartDate != nil || in.EndDate != nil {
		if err := validateDateRange(startDate, endDate); err != nil {
			return nil, err
		}
	}
	if in.Destination != nil && strings.TrimSpace(*in.Destination) == "" {
		return nil, fmt.Errorf("%w: destination must not be empty", ErrValidation)
	}

	trip.StartDate, trip.EndDate = startDate, endDate
	if in.Destination != nil {
		trip.Destination = strings.TrimSpace(*in.Destination)
	}
	if in.Latitude != nil {
		trip.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		trip.Longitude = in.Longitude
	}
	if in.Itinerary != nil {
		trip.Itinerary = in.Itinerary
	}

	if err := s.Repo.SaveTrip(ctx, trip); err != nil {
		return nil, err
	}

	s.index(ctx, trip)
	s.publish(ctx, map[string]any{
		"type":    "trip_updated",
		"trip_id": trip.ID,
		"user_id": userID,
	}, fmt.Sprint(userID))

	view := viewOf(trip)
	return &view, nil
}

func (s *TripService) Delete(ctx context.Context, userID, tripID uint) error {
	if err := s.Repo.DeleteTrip(ctx, userID, tripID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if s.ES != nil {
		if err := es.DeleteTrip(ctx, s.ES, tripID); err != nil {
			logging.FromContext(ctx).Error("trip index delete error", "trip_id", tripID, "error", err)
		}
	}
	s.publish(ctx, map[string]any{
		"type":    "trip_deleted",
		"trip_id": tripID,
		"user_id": userID,
	}, fmt.Sprint(userID))
	return nil
}

func (s *TripService) Search(ctx context.Context, userID uint, query string, from, size int) (int64, []es.TripDoc, error) {
	if s.ES == nil {
		return 0, nil, ErrSearchUnavailable
	}
	if strings.TrimSpace(query) == "" {
		return 0, nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	return es.SearchTrips(ctx, s.ES, userID, query, from, size)
}

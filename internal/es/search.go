package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/planventure/planventure-api/internal/models"
)

// TripDoc is the indexed projection of a trip. The stored itinerary
// overlay is deliberately not indexed.
type TripDoc struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func docFromTrip(trip *models.Trip) TripDoc {
	return TripDoc{
		ID:          trip.ID,
		UserID:      trip.UserID,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate,
	}
}

// IndexTrip upserts the trip document. Callers treat failures as
// best-effort: search lags behind the store rather than failing writes.
func IndexTrip(ctx context.Context, client *elasticsearch.Client, trip *models.Trip) error {
	body, err := json.Marshal(docFromTrip(trip))
	if err != nil {
		return fmt.Errorf("index trip: %w", err)
	}

	res, err := client.Index(
		TripsIndex,
		bytes.NewReader(body),
		client.Index.WithContext(ctx),
		client.Index.WithDocumentID(strconv.FormatUint(uint64(trip.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index trip: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index trip: %s", res.Status())
	}
	return nil
}

func DeleteTrip(ctx context.Context, client *elasticsearch.Client, tripID uint) error {
	res, err := client.Delete(
		TripsIndex,
		strconv.FormatUint(uint64(tripID), 10),
		client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete trip doc: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete trip doc: %s", res.Status())
	}
	return nil
}

// SearchTrips runs a fuzzy destination search scoped to the given user.
func SearchTrips(ctx context.Context, client *elasticsearch.Client, userID uint, query string, from, size int) (int64, []TripDoc, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"destination"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search trips: %w", err)
	}

	res, err := client.Search(
		client.Search.WithContext(ctx),
		client.Search.WithIndex(TripsIndex),
		client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search trips: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return 0, nil, fmt.Errorf("search trips: %s: %s", res.Status(), strings.TrimSpace(string(msg)))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source TripDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]TripDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}

package itinerary

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// DateLayout is the only accepted calendar date format for trip dates
// and itinerary day keys.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// MealKeys is the fixed set of meal slots a day carries. Stored meal
// keys outside this set are ignored on merge.
var MealKeys = []string{"breakfast", "lunch", "dinner"}

type Day struct {
	Activities     []any                     `json:"activities"`
	Meals          map[string]map[string]any `json:"meals"`
	Accommodation  map[string]any            `json:"accommodation"`
	Transportation map[string]any            `json:"transportation"`
	Notes          string                    `json:"notes"`
}

type Itinerary struct {
	Days            map[string]*Day `json:"days"`
	Notes           string          `json:"notes"`
	EstimatedBudget float64         `json:"estimated_budget"`
	Overview        map[string]any  `json:"overview"`
}

func newDay() *Day {
	meals := make(map[string]map[string]any, len(MealKeys))
	for _, k := range MealKeys {
		meals[k] = map[string]any{}
	}
	return &Day{
		Activities:     []any{},
		Meals:          meals,
		Accommodation:  map[string]any{},
		Transportation: map[string]any{},
	}
}

// Value implements driver.Valuer so an Itinerary persists as a JSON column.
func (i Itinerary) Value() (driver.Value, error) {
	return json.Marshal(i)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (i *Itinerary) Scan(value any) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("itinerary: unsupported column type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, i)
}

package itinerary

import "time"

// Generate builds the default day-by-day skeleton for the inclusive
// [start, end] range. Both dates must be in strict YYYY-MM-DD form.
// Date ordering is the caller's responsibility; a reversed range simply
// produces no days.
func Generate(startDate, endDate string) (*Itinerary, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	it := &Itinerary{
		Days:     map[string]*Day{},
		Overview: map[string]any{},
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		it.Days[d.Format(DateLayout)] = newDay()
	}
	return it, nil
}

package itinerary

// Merge overlays stored customizations onto a freshly generated
// template. The template's date set is authoritative: stored days
// outside it are dropped. Activities append, meals and the two lodging
// maps shallow-merge with stored values winning, day notes replace only
// when the stored value is non-empty.
//
// A panic while merging is swallowed and the raw stored itinerary is
// returned instead, so a trip with malformed stored data stays readable.
func Merge(template, stored *Itinerary) (result *Itinerary) {
	if template == nil {
		return stored
	}
	if stored == nil {
		return template
	}
	defer func() {
		if r := recover(); r != nil {
			result = stored
		}
	}()

	for date, storedDay := range stored.Days {
		day, ok := template.Days[date]
		if !ok || storedDay == nil {
			continue
		}
		day.Activities = append(day.Activities, storedDay.Activities...)

		for meal, fields := range storedDay.Meals {
			slot, known := day.Meals[meal]
			if !known {
				continue
			}
			for k, v := range fields {
				slot[k] = v
			}
		}
		for k, v := range storedDay.Accommodation {
			day.Accommodation[k] = v
		}
		for k, v := range storedDay.Transportation {
			day.Transportation[k] = v
		}
		if storedDay.Notes != "" {
			day.Notes = storedDay.Notes
		}
	}

	if stored.Notes != "" {
		template.Notes = stored.Notes
	}
	if stored.EstimatedBudget != 0 {
		template.EstimatedBudget = stored.EstimatedBudget
	}
	for k, v := range stored.Overview {
		template.Overview[k] = v
	}

	return template
}

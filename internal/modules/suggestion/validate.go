// README: Final shape validation of the assembled trip suggestion.
package suggestion

import (
	"fmt"
	"math"
)

// Validate checks every invariant of the suggestion aggregate and returns a
// *ShapeError naming the offending path. It runs after transformation and
// geocoding, so a failure here means the model produced a structurally broken
// plan that the lenient transformer could not repair.
//
// An itinerary with zero days is rejected: a trip suggestion with no days is
// not useful to anyone downstream.
func Validate(s *TripSuggestion) error {
	if s == nil {
		return &ShapeError{Path: "$", Reason: "suggestion is nil"}
	}
	if s.Destination == "" {
		return &ShapeError{Path: "$.destination", Reason: "destination is empty"}
	}

	for i := range s.Activities {
		if err := validateActivity(&s.Activities[i], fmt.Sprintf("$.activities[%d]", i)); err != nil {
			return err
		}
	}

	if err := validateBudget(&s.Budget); err != nil {
		return err
	}

	for i, r := range s.Recommendations {
		path := fmt.Sprintf("$.recommendations[%d]", i)
		if r.Title == "" {
			return &ShapeError{Path: path + ".title", Reason: "title is empty"}
		}
		if !knownCategory(r.Category) {
			return &ShapeError{Path: path + ".category", Reason: "unrecognized category"}
		}
		if !knownPriority(r.Priority) {
			return &ShapeError{Path: path + ".priority", Reason: "unrecognized priority"}
		}
	}

	if len(s.Itinerary) == 0 {
		return &ShapeError{Path: "$.itinerary", Reason: "itinerary has no days"}
	}
	prevDay := 0
	for i := range s.Itinerary {
		day := &s.Itinerary[i]
		path := fmt.Sprintf("$.itinerary[%d]", i)
		if day.Day < 1 {
			return &ShapeError{Path: path + ".day", Reason: "day index must be 1-based"}
		}
		if day.Day <= prevDay {
			return &ShapeError{Path: path + ".day", Reason: "day indexes must be strictly increasing"}
		}
		prevDay = day.Day
		for j := range day.Activities {
			if err := validateActivity(&day.Activities[j], fmt.Sprintf("%s.activities[%d]", path, j)); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateActivity(a *Activity, path string) error {
	if a.Title == "" {
		return &ShapeError{Path: path + ".title", Reason: "title is empty"}
	}
	if !finite(a.Cost) {
		return &ShapeError{Path: path + ".cost", Reason: "cost is not a finite number"}
	}
	if a.Cost < 0 {
		return &ShapeError{Path: path + ".cost", Reason: "cost is negative"}
	}
	if (a.Lat == nil) != (a.Lng == nil) {
		return &ShapeError{Path: path, Reason: "lat and lng must be set together"}
	}
	return nil
}

func validateBudget(b *Budget) error {
	fields := map[string]float64{
		"accommodation": b.Accommodation,
		"transport":     b.Transport,
		"activities":    b.Activities,
		"food":          b.Food,
		"other":         b.Other,
	}
	for name, v := range fields {
		if !finite(v) {
			return &ShapeError{Path: "$.budget." + name, Reason: "not a finite number"}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

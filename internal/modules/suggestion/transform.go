// README: Transforms untrusted model JSON into the typed suggestion aggregate.
package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Raw payload mirror types. Numeric fields are kept as json.RawMessage so the
// transformer can tell "absent" (defaulted) apart from "present but malformed"
// (a shape error). Itinerary activities are raw because the model sometimes
// emits a bare title string instead of an activity object.
type rawSuggestion struct {
	Destination     string              `json:"destination"`
	Activities      []rawActivity       `json:"activities"`
	Budget          rawBudget           `json:"budget"`
	Recommendations []rawRecommendation `json:"recommendations"`
	Itinerary       []rawDay            `json:"itinerary"`
}

type rawActivity struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	Location    string          `json:"location"`
	Cost        json.RawMessage `json:"cost"`
}

type rawBudget struct {
	Accommodation json.RawMessage `json:"accommodation"`
	Transport     json.RawMessage `json:"transport"`
	Activities    json.RawMessage `json:"activities"`
	Food          json.RawMessage `json:"food"`
	Other         json.RawMessage `json:"other"`
}

type rawRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

type rawDay struct {
	Day        int               `json:"day"`
	Date       string            `json:"date"`
	Activities []json.RawMessage `json:"activities"`
}

// decodeRaw parses a well-formed JSON document into the raw mirror types.
// The caller has already checked JSON well-formedness, so a failure here is a
// structural mismatch, not a malformed response.
func decodeRaw(data []byte) (*rawSuggestion, error) {
	var raw rawSuggestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ShapeError{Path: "$", Reason: err.Error()}
	}
	return &raw, nil
}

// transform converts the raw payload into the typed aggregate, applying the
// documented leniencies: absent arrays become empty, bare-string itinerary
// activities are normalized, unrecognized enum values are defaulted, and the
// destination falls back to the user's requested one.
func transform(raw *rawSuggestion, prefs TripPreferences) (*TripSuggestion, error) {
	sug := &TripSuggestion{
		Destination:     strings.TrimSpace(raw.Destination),
		Activities:      []Activity{},
		Recommendations: []Recommendation{},
		Itinerary:       []ItineraryDay{},
	}
	if sug.Destination == "" {
		sug.Destination = strings.TrimSpace(prefs.Destination)
	}

	for i, ra := range raw.Activities {
		a, err := buildActivity(ra, fmt.Sprintf("$.activities[%d]", i))
		if err != nil {
			return nil, err
		}
		sug.Activities = append(sug.Activities, a)
	}

	var err error
	if sug.Budget, err = buildBudget(raw.Budget); err != nil {
		return nil, err
	}

	for _, rr := range raw.Recommendations {
		sug.Recommendations = append(sug.Recommendations, Recommendation{
			Title:       strings.TrimSpace(rr.Title),
			Description: rr.Description,
			Category:    normalizeCategory(rr.Category),
			Priority:    normalizePriority(rr.Priority),
		})
	}

	for i, rd := range raw.Itinerary {
		day := ItineraryDay{Day: rd.Day, Date: rd.Date, Activities: []Activity{}}
		for j, entry := range rd.Activities {
			a, err := buildDayActivity(entry, fmt.Sprintf("$.itinerary[%d].activities[%d]", i, j))
			if err != nil {
				return nil, err
			}
			day.Activities = append(day.Activities, a)
		}
		sug.Itinerary = append(sug.Itinerary, day)
	}

	return sug, nil
}

func buildActivity(ra rawActivity, path string) (Activity, error) {
	cost, err := parseNumber(ra.Cost, path+".cost")
	if err != nil {
		return Activity{}, err
	}
	return Activity{
		Title:       strings.TrimSpace(ra.Title),
		Description: ra.Description,
		StartTime:   ra.StartTime,
		EndTime:     ra.EndTime,
		Location:    ra.Location,
		Cost:        cost,
	}, nil
}

// buildDayActivity accepts either a full activity object or a bare title
// string; the latter becomes an activity with empty description, location and
// cost and no timestamps or coordinates.
func buildDayActivity(entry json.RawMessage, path string) (Activity, error) {
	var title string
	if err := json.Unmarshal(entry, &title); err == nil {
		return Activity{Title: strings.TrimSpace(title)}, nil
	}

	var ra rawActivity
	if err := json.Unmarshal(entry, &ra); err != nil {
		return Activity{}, &ShapeError{Path: path, Reason: "activity is neither an object nor a string"}
	}
	return buildActivity(ra, path)
}

func buildBudget(rb rawBudget) (Budget, error) {
	var b Budget
	var err error
	if b.Accommodation, err = parseNumber(rb.Accommodation, "$.budget.accommodation"); err != nil {
		return b, err
	}
	if b.Transport, err = parseNumber(rb.Transport, "$.budget.transport"); err != nil {
		return b, err
	}
	if b.Activities, err = parseNumber(rb.Activities, "$.budget.activities"); err != nil {
		return b, err
	}
	if b.Food, err = parseNumber(rb.Food, "$.budget.food"); err != nil {
		return b, err
	}
	if b.Other, err = parseNumber(rb.Other, "$.budget.other"); err != nil {
		return b, err
	}
	return b, nil
}

// parseNumber maps absent/null to 0 and rejects anything that is present but
// not a JSON number; silent coercion of garbage to zero would hide defects in
// the model output.
func parseNumber(raw json.RawMessage, path string) (float64, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, &ShapeError{Path: path, Reason: "not a number"}
	}
	return v, nil
}

func normalizeCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if knownCategory(c) {
		return c
	}
	return CategoryGeneral
}

func normalizePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if knownPriority(p) {
		return p
	}
	return PriorityMedium
}

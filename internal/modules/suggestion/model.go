// README: Trip suggestion aggregate and preference input types.
package suggestion

// TripPreferences is the immutable input to Generate, populated by the trip
// management layer from whatever the user filled in.
type TripPreferences struct {
	Destination  string   `json:"destination,omitempty"`
	Origin       string   `json:"origin,omitempty"`
	VisitorCount int      `json:"visitor_count"`
	HasPets      bool     `json:"has_pets"`
	HasChildren  bool     `json:"has_children"`
	Interests    []string `json:"interests"`
}

// Activity is a single planned activity, either top-level or inside an
// itinerary day. Lat/Lng stay nil until geocoded and remain nil when the
// location cannot be resolved; geocoding failure never rejects a suggestion.
type Activity struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StartTime   string   `json:"start_time,omitempty"` // ISO-8601, empty when absent
	EndTime     string   `json:"end_time,omitempty"`   // ISO-8601, empty when absent
	Location    string   `json:"location,omitempty"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Cost        float64  `json:"cost"`
}

// ItineraryDay is one day of the trip. Day indexes are 1-based and strictly
// increasing across the itinerary.
type ItineraryDay struct {
	Day        int        `json:"day"`
	Date       string     `json:"date,omitempty"` // yyyy-MM-dd
	Activities []Activity `json:"activities"`
}

// Budget holds advisory per-category totals. No invariant ties the sum to any
// trip total.
type Budget struct {
	Accommodation float64 `json:"accommodation"`
	Transport     float64 `json:"transport"`
	Activities    float64 `json:"activities"`
	Food          float64 `json:"food"`
	Other         float64 `json:"other"`
}

// Category classifies a recommendation.
type Category string

const (
	CategorySightseeing   Category = "sightseeing"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryShopping      Category = "shopping"
	CategorySafety        Category = "safety"
	CategoryGeneral       Category = "general"
)

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is a free-form tip attached to a suggestion. Category and
// priority are defaulted when the model emits a near-miss value, since
// free-text-influenced output occasionally invents enum members.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
}

// TripSuggestion is the aggregate produced by one successful Generate call.
// It is a fresh value per call with no shared state; either a fully validated
// suggestion is returned or the call fails.
type TripSuggestion struct {
	Destination     string           `json:"destination"`
	Activities      []Activity       `json:"activities"`
	Budget          Budget           `json:"budget"`
	Recommendations []Recommendation `json:"recommendations"`
	Itinerary       []ItineraryDay   `json:"itinerary"`
}

func knownCategory(c Category) bool {
	switch c {
	case CategorySightseeing, CategoryFood, CategoryTransport,
		CategoryAccommodation, CategoryShopping, CategorySafety, CategoryGeneral:
		return true
	}
	return false
}

func knownPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// README: Prompt construction for the trip suggestion pipeline.
package suggestion

import (
	"fmt"
	"strings"
)

// systemPrompt pins down the exact JSON contract. The worked example matters:
// models follow an example far more reliably than a prose schema description.
const systemPrompt = `You are a travel planning assistant. You design complete trip plans from user preferences.

Respond with a SINGLE JSON object and nothing else. No markdown, no commentary. The object must match this shape exactly:

{
  "destination": "string",
  "activities": [
    {
      "title": "string (required)",
      "description": "string",
      "start_time": "ISO-8601 timestamp, omit if unknown",
      "end_time": "ISO-8601 timestamp, omit if unknown",
      "location": "free-text place name used for geocoding, e.g. 'Louvre Museum, Paris'",
      "cost": 0
    }
  ],
  "budget": {
    "accommodation": 0,
    "transport": 0,
    "activities": 0,
    "food": 0,
    "other": 0
  },
  "recommendations": [
    {
      "title": "string",
      "description": "string",
      "category": "one of: sightseeing, food, transport, accommodation, shopping, safety, general",
      "priority": "one of: high, medium, low"
    }
  ],
  "itinerary": [
    {
      "day": 1,
      "date": "yyyy-MM-dd",
      "activities": [ same shape as activities above ]
    }
  ]
}

Rules:
- Dates use the yyyy-MM-dd format; times are 24-hour.
- Day numbers start at 1 and increase by one per day.
- Costs and budget figures are plain numbers in the destination's typical currency.
- Every activity needs a title; include a location whenever the activity happens at a concrete place.

Worked example (one day, abbreviated):

{
  "destination": "Paris",
  "activities": [
    {
      "title": "Louvre Museum Tour",
      "description": "Guided morning tour of the Louvre highlights.",
      "start_time": "2024-05-01T09:00:00",
      "end_time": "2024-05-01T12:00:00",
      "location": "Louvre Museum",
      "cost": 45
    }
  ],
  "budget": { "accommodation": 600, "transport": 150, "activities": 200, "food": 250, "other": 100 },
  "recommendations": [
    {
      "title": "Buy a museum pass",
      "description": "Skips most queues and pays for itself in two visits.",
      "category": "sightseeing",
      "priority": "high"
    }
  ],
  "itinerary": [
    {
      "day": 1,
      "date": "2024-05-01",
      "activities": [
        {
          "title": "Louvre Museum Tour",
          "start_time": "2024-05-01T09:00:00",
          "end_time": "2024-05-01T12:00:00",
          "location": "Louvre Museum",
          "cost": 45
        }
      ]
    }
  ]
}`

// buildUserPrompt interpolates the preference fields into the request text.
// An empty interest list simply renders as none.
func buildUserPrompt(prefs TripPreferences) string {
	var sb strings.Builder

	destination := strings.TrimSpace(prefs.Destination)
	if destination == "" {
		destination = "to be suggested (pick a fitting destination)"
	}
	fmt.Fprintf(&sb, "Plan a trip.\nDestination: %s\n", destination)
	if origin := strings.TrimSpace(prefs.Origin); origin != "" {
		fmt.Fprintf(&sb, "Traveling from: %s\n", origin)
	}
	fmt.Fprintf(&sb, "Number of travelers: %d\n", prefs.VisitorCount)
	fmt.Fprintf(&sb, "Traveling with children: %s\n", yesNo(prefs.HasChildren))
	fmt.Fprintf(&sb, "Traveling with pets: %s\n", yesNo(prefs.HasPets))
	fmt.Fprintf(&sb, "Interests: %s\n", strings.Join(prefs.Interests, ", "))

	return sb.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// README: CLI demo; generates one trip suggestion from command-line preferences.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tripzen/internal/ai"
	"tripzen/internal/geo"
	"tripzen/internal/modules/suggestion"
)

// noopGeocoder skips coordinate enrichment when no Maps key is configured.
type noopGeocoder struct{}

func (noopGeocoder) Resolve(_ context.Context, _ string) (*geo.Coordinates, error) {
	return nil, nil
}

func main() {
	_ = godotenv.Load()

	destination := flag.String("destination", "", "destination (empty lets the model pick)")
	origin := flag.String("origin", "", "where the trip starts")
	visitors := flag.Int("visitors", 1, "number of travelers")
	children := flag.Bool("children", false, "traveling with children")
	pets := flag.Bool("pets", false, "traveling with pets")
	interests := flag.String("interests", "", "comma-separated interests")
	flag.Parse()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable not set")
	}
	provider := ai.NewOpenAIProvider(apiKey, os.Getenv("TRIPZEN_AI_MODEL"))

	var geocoder geo.Geocoder = noopGeocoder{}
	if mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY"); mapsKey != "" {
		g, err := geo.NewGoogleGeocoder(mapsKey)
		if err != nil {
			log.Fatalf("geocoder init: %v", err)
		}
		geocoder = g
	}

	prefs := suggestion.TripPreferences{
		Destination:  *destination,
		Origin:       *origin,
		VisitorCount: *visitors,
		HasChildren:  *children,
		HasPets:      *pets,
	}
	if *interests != "" {
		for _, s := range strings.Split(*interests, ",") {
			prefs.Interests = append(prefs.Interests, strings.TrimSpace(s))
		}
	}

	gen := suggestion.NewGenerator(provider, geocoder, suggestion.DefaultRetryPolicy())
	sug, err := gen.Generate(context.Background(), prefs)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	out, err := json.MarshalIndent(sug, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(out))
}

// README: Forward geocoding via Google Maps; lookups are best-effort and never fail the caller.
package geo

import (
	"context"
	"log"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

// DefaultLookupTimeout bounds a single geocoding call so a slow lookup cannot
// stall the callers' join barrier indefinitely.
const DefaultLookupTimeout = 10 * time.Second

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves free-text place names to coordinates.
// A nil result with a nil error means "no match"; callers treat geocoding as
// best-effort enrichment and must tolerate both nil results and errors.
type Geocoder interface {
	Resolve(ctx context.Context, location string) (*Coordinates, error)
}

// GoogleGeocoder implements Geocoder with the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client  *maps.Client
	timeout time.Duration
}

// NewGoogleGeocoder creates a GoogleGeocoder with the given API Key.
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleGeocoder{client: client, timeout: DefaultLookupTimeout}, nil
}

// Resolve forward-geocodes location and returns the first candidate.
// Empty input, zero results and transport errors all yield (nil, nil);
// transport errors are logged but never propagated, so geocoding can never
// fail an enclosing pipeline.
func (g *GoogleGeocoder) Resolve(ctx context.Context, location string) (*Coordinates, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	results, err := g.client.Geocode(callCtx, &maps.GeocodingRequest{Address: location})
	if err != nil {
		log.Printf("geocode %q: %v", location, err)
		return nil, nil
	}
	if len(results) == 0 {
		return nil, nil
	}

	loc := results[0].Geometry.Location
	return &Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// README: SuggestionGenerator orchestrates prompt, completion retry, transform, geocoding and validation.
package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"tripzen/internal/ai"
	"tripzen/internal/geo"
)

// Generator produces validated trip suggestions from user preferences.
// Both provider and geocoder are constructor-injected so tests can substitute
// stubs; the generator holds no state between calls.
type Generator struct {
	provider ai.Provider
	geocoder geo.Geocoder
	policy   RetryPolicy
}

// NewGenerator creates a Generator with the given dependencies.
func NewGenerator(provider ai.Provider, geocoder geo.Geocoder, policy RetryPolicy) *Generator {
	return &Generator{provider: provider, geocoder: geocoder, policy: policy}
}

// Generate runs the full pipeline and returns a validated TripSuggestion.
// Failure modes: ai.ErrTimeout is surfaced immediately; a *ShapeError means
// the model output could not be made to fit the schema (after the optional
// single re-run); a *GenerationError means the retry budget ran out, with the
// last underlying error attached.
func (g *Generator) Generate(ctx context.Context, prefs TripPreferences) (*TripSuggestion, error) {
	sug, err := g.run(ctx, prefs)
	if err == nil {
		return sug, nil
	}

	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) && g.policy.RetryInvalidShape {
		// A second full round sometimes yields a better-formed response; one
		// round only, the loop must not chase a model that cannot comply.
		log.Printf("suggestion: %v; re-running generation once", err)
		return g.run(ctx, prefs)
	}
	return nil, err
}

// run performs one bounded completion loop ending in assembly.
func (g *Generator) run(ctx context.Context, prefs TripPreferences) (*TripSuggestion, error) {
	req := ai.Request{
		System:   systemPrompt,
		Messages: []ai.Message{{Role: ai.RoleUser, Content: buildUserPrompt(prefs)}},
		JSONMode: true,
	}

	var lastErr error
	for attempt := 0; attempt < g.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, g.policy.Backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		text, err := g.provider.Complete(ctx, req)
		if err != nil {
			if !g.policy.IsRetryable(err) {
				return nil, err
			}
			log.Printf("suggestion: completion attempt %d/%d failed: %v", attempt+1, g.policy.MaxAttempts, err)
			lastErr = err
			continue
		}

		clean := cleanJSONString(text)
		if !json.Valid([]byte(clean)) {
			log.Printf("suggestion: completion attempt %d/%d returned unparseable JSON", attempt+1, g.policy.MaxAttempts)
			lastErr = fmt.Errorf("%w (attempt %d)", ErrMalformedResponse, attempt+1)
			continue
		}

		return g.assemble(ctx, prefs, []byte(clean))
	}

	return nil, &GenerationError{Attempts: g.policy.MaxAttempts, Err: lastErr}
}

// assemble turns a well-formed JSON payload into a validated suggestion.
func (g *Generator) assemble(ctx context.Context, prefs TripPreferences, data []byte) (*TripSuggestion, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	sug, err := transform(raw, prefs)
	if err != nil {
		return nil, err
	}

	g.geocodeActivities(ctx, sug)

	if err := Validate(sug); err != nil {
		return nil, err
	}
	return sug, nil
}

// geocodeActivities resolves coordinates for every activity carrying a
// location, top-level and per-day. Lookups are deduplicated by location text
// (the same city shows up on many activities) and issued concurrently; the
// join waits for all of them, and one failed lookup never aborts the others;
// its activities simply keep nil coordinates.
func (g *Generator) geocodeActivities(ctx context.Context, sug *TripSuggestion) {
	targets := map[string][]*Activity{}
	collect := func(a *Activity) {
		loc := strings.TrimSpace(a.Location)
		if loc != "" {
			targets[loc] = append(targets[loc], a)
		}
	}
	for i := range sug.Activities {
		collect(&sug.Activities[i])
	}
	for d := range sug.Itinerary {
		for i := range sug.Itinerary[d].Activities {
			collect(&sug.Itinerary[d].Activities[i])
		}
	}
	if len(targets) == 0 {
		return
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]*geo.Coordinates, len(targets))
	)
	for loc := range targets {
		wg.Add(1)
		go func(loc string) {
			defer wg.Done()
			coords, err := g.geocoder.Resolve(ctx, loc)
			if err != nil {
				log.Printf("suggestion: geocode %q: %v", loc, err)
				return
			}
			if coords != nil {
				mu.Lock()
				results[loc] = coords
				mu.Unlock()
			}
		}(loc)
	}
	wg.Wait()

	for loc, activities := range targets {
		coords, ok := results[loc]
		if !ok {
			continue
		}
		for _, a := range activities {
			lat, lng := coords.Lat, coords.Lng
			a.Lat, a.Lng = &lat, &lng
		}
	}
}

// cleanJSONString removes markdown code fences if present (e.g. ```json ... ```).
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// README: Entry point; loads config, wires services and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tripzen/internal/ai"
	"tripzen/internal/config"
	"tripzen/internal/geo"
	httptransport "tripzen/internal/http"
	"tripzen/internal/infra"
	"tripzen/internal/modules/chat"
	"tripzen/internal/modules/quota"
	"tripzen/internal/modules/suggestion"
	"tripzen/internal/modules/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("TRIPZEN_FIREBASE_PROJECT is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	provider, cleanup, err := newProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("ai provider init: %v", err)
	}
	defer cleanup()

	googleGeocoder, err := geo.NewGoogleGeocoder(cfg.Geo.MapsKey)
	if err != nil {
		log.Fatalf("geocoder init: %v", err)
	}
	geocoder := geo.NewCachedGeocoder(googleGeocoder, redisClient, cfg.Geo.CacheTTL)

	quotaSvc := quota.NewService(quota.NewStore(dbPool))
	generator := suggestion.NewGenerator(provider, geocoder, suggestion.DefaultRetryPolicy())
	tripSvc := trip.NewService(trip.NewStore(dbPool), generator, quotaSvc)
	chatSvc := chat.NewService(chat.NewStore(dbPool), chat.NewReviser(provider), quotaSvc)

	handler := httptransport.NewRouter(verifier, tripSvc, chatSvc, quotaSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// newProvider builds the configured completion backend. The returned cleanup
// closes provider-owned connections and is a no-op for backends without any.
func newProvider(ctx context.Context, cfg config.AIConfig) (ai.Provider, func(), error) {
	switch cfg.Provider {
	case "gemini":
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { p.Close() }, nil
	default:
		return ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.Model), func() {}, nil
	}
}

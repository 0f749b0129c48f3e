package cfg

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type DesklineConfig struct {
	// SearchBaseURL hosts search creation; it is not scoped to a destination.
	SearchBaseURL   string
	BaseURL         string
	Destination     string
	Prefix          string
	AccommodationID string
	Source          string
	Origin          string
	// StaticProductIDs is the operator-configured product list, tried before
	// any discovery call. FallbackProductIDs is the last-resort list used
	// when every discovery strategy comes back empty.
	StaticProductIDs   []string
	FallbackProductIDs []string
	TimeoutSeconds     int
}

type ObservabilityConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

type Config struct {
	AppEnv               string
	AppPort              string
	RedisConfig          RedisConfig
	Deskline             DesklineConfig
	OfferCacheTTLMinutes int
	DefaultChildAge      int
	Observability        ObservabilityConfig
}

// Known-good room ids for the default accommodation, used only when every
// discovery strategy fails and no override is configured.
const defaultFallbackProductIDs = "b4265783-9c09-44e0-9af1-63ad964d64b9," +
	"bda33d85-729b-40ca-ba2b-de4ca5e5841b," +
	"78f0ede7-ce03-4806-8556-0d627bff27de," +
	"bdd9a73d-7429-4610-9347-168b4b2785d8," +
	"980db5a5-ac66-49f3-811f-0da67cc4a972," +
	"0d0ae603-3fd9-4abd-98e8-eea813fd2d89"

func Load() (*Config, error) {
	// .env is a development convenience; in production everything comes
	// from real environment variables.
	_ = godotenv.Load()

	var errs []error

	cfg := &Config{
		AppEnv:  env("APP_ENV", "development"),
		AppPort: env("APP_PORT", "8080"),
		RedisConfig: RedisConfig{
			Host:     env("REDIS_HOST", "localhost"),
			Port:     env("REDIS_PORT", "6379"),
			Password: env("REDIS_PASSWORD", ""),
		},
		Deskline: DesklineConfig{
			SearchBaseURL:      env("DESKLINE_SEARCH_BASE_URL", "https://webapi.deskline.net"),
			BaseURL:            env("DESKLINE_BASE_URL", "https://webapi.deskline.net"),
			Destination:        env("DESKLINE_DESTINATION", "accbludenz"),
			Prefix:             env("DESKLINE_PREFIX", "BLU"),
			AccommodationID:    env("ACCOMMODATION_ID", "5edbae02-da8e-4489-8349-4bb836450b3e"),
			Source:             env("DW_SOURCE", "dwapp-accommodation"),
			Origin:             env("DW_ORIGIN", "https://direct.bookingandmore.com"),
			StaticProductIDs:   envList("PRODUCT_IDS", ""),
			FallbackProductIDs: envList("FALLBACK_PRODUCT_IDS", defaultFallbackProductIDs),
			TimeoutSeconds:     envInt("DESKLINE_TIMEOUT_SECONDS", 12, &errs),
		},
		OfferCacheTTLMinutes: envInt("OFFER_CACHE_TTL_MINUTES", 5, &errs),
		DefaultChildAge:      envInt("DEFAULT_CHILD_AGE", 8, &errs),
		Observability: ObservabilityConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: env("OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  env("OTEL_SERVICE_NAME", "stayprice"),
		},
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func env(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int, errs *[]error) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func envList(key, fallback string) []string {
	raw := env(key, fallback)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

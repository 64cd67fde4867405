package realtime

import (
	"net/http"
	"slices"

	"jobsite"
)

// Config is read from the same environment as the API, so JWT_SECRET, NATS_URL
// and CORS_ALLOW_ORIGINS only need to be set once.
type Config struct {
	NatsURL      string
	JWTSecret    string
	Addr         string
	AllowOrigins []string
}

func LoadConfig() Config {
	return Config{
		NatsURL:      jobsite.GetEnv("NATS_URL", "nats://localhost:4222"),
		JWTSecret:    jobsite.GetEnv("JWT_SECRET", ""),
		Addr:         jobsite.GetEnv("REALTIME_PORT", ":8081"),
		AllowOrigins: jobsite.GetListEnv("CORS_ALLOW_ORIGINS", "*"),
	}
}

// CheckOrigin accepts upgrades from the configured origins. Requests without
// an Origin header do not come from a browser and are let through.
func (slf Config) CheckOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(slf.AllowOrigins, "*") || slices.Contains(slf.AllowOrigins, origin)
}

package http

import (
	"net/http"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/go-chi/cors"

	"github.com/chainsafe/swap-status/pkg/config"
)

// RateLimit limits requests per client IP. A zero rate disables limiting.
func RateLimit(cfg *config.RateLimitConfig) func(http.Handler) http.Handler {
	if cfg == nil || cfg.RequestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	lmt := tollbooth.NewLimiter(cfg.RequestsPerSecond, &limiter.ExpirableOptions{
		DefaultExpirationTTL: cfg.TTL,
	})
	if cfg.Burst > 0 {
		lmt.SetBurst(cfg.Burst)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpErr := tollbooth.LimitByRequest(lmt, w, r); httpErr != nil {
				WriteJSON(w, httpErr.StatusCode, &ErrorResponse{
					ErrMsg:     httpErr.Message,
					ErrMsgCode: httpErr.StatusCode,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows browser clients from the configured origins. An empty list allows any origin.
func CORS(cfg *config.CORSConfig) func(http.Handler) http.Handler {
	origins := []string{"*"}
	if cfg != nil && len(cfg.AllowedOrigins) > 0 {
		origins = cfg.AllowedOrigins
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}

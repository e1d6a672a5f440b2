package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"aether/internal/demo"
	"aether/internal/middleware"
)

// seedCheckTTL is how long a seed self-check result is reused. Each check
// runs bcrypt once per demo role.
const seedCheckTTL = time.Minute

// SeedVerifier checks a demo password against the stored account.
type SeedVerifier interface {
	Verify(ctx context.Context, role, password string) (bool, error)
}

// HealthHandler reports service health. When the deployment seeded demo
// accounts it also checks that every advertised demo login still matches
// the database.
type HealthHandler struct {
	seed   SeedVerifier
	logger zerolog.Logger
	now    func() time.Time

	mu        sync.Mutex
	checkedAt time.Time
	seedOK    bool
}

// NewHealthHandler creates a new HealthHandler. seed may be nil when no
// demo accounts were seeded.
func NewHealthHandler(seed SeedVerifier, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		seed:   seed,
		logger: logger.With().Str("component", "health").Logger(),
		now:    time.Now,
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Demo   bool   `json:"demo"`
	Seed   string `json:"seed,omitempty"`
}

// Health writes {"status":"ok","demo":bool}, plus "seed" when demo
// accounts were seeded. A seed mismatch answers 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Demo: middleware.IsDemo(r)}
	status := http.StatusOK

	if h.seed != nil {
		if h.seedHealthy(r.Context()) {
			resp.Seed = "ok"
		} else {
			resp.Status = "unhealthy"
			resp.Seed = "mismatch"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, resp)
}

func (h *HealthHandler) seedHealthy(ctx context.Context) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if !h.checkedAt.IsZero() && now.Sub(h.checkedAt) < seedCheckTTL {
		return h.seedOK
	}

	h.seedOK = h.verifySeed(ctx)
	h.checkedAt = now
	return h.seedOK
}

func (h *HealthHandler) verifySeed(ctx context.Context) bool {
	for _, role := range demo.Roles() {
		acc, _ := demo.LookupAccount(role)
		ok, err := h.seed.Verify(ctx, role, acc.Password)
		if err != nil {
			h.logger.Error().Err(err).Str("role", role).Msg("Seed self-check failed")
			return false
		}
		if !ok {
			h.logger.Warn().Str("role", role).Msg("Stored demo account does not match advertised password")
			return false
		}
	}
	return true
}

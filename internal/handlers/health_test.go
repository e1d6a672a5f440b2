package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aether/internal/database"
	"aether/internal/demo"
	"aether/internal/middleware"
	"aether/internal/models"
	"aether/internal/repository"
)

type stubVerifier struct {
	ok    bool
	err   error
	calls int
}

func (s *stubVerifier) Verify(ctx context.Context, role, password string) (bool, error) {
	s.calls++
	return s.ok, s.err
}

func serveHealth(t *testing.T, h *HealthHandler, host string) (*httptest.ResponseRecorder, healthResponse) {
	t.Helper()
	handler := middleware.DemoMode(demo.NewDetector(""))(http.HandlerFunc(h.Health))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = host
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealthHandler_NoSeed(t *testing.T) {
	rec, resp := serveHealth(t, NewHealthHandler(nil, zerolog.Nop()), "example.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Demo)
	assert.Empty(t, resp.Seed)
	assert.NotContains(t, rec.Body.String(), `"seed"`)
}

func TestHealthHandler_SeedOK(t *testing.T) {
	stub := &stubVerifier{ok: true}
	rec, resp := serveHealth(t, NewHealthHandler(stub, zerolog.Nop()), "myproject.github.io")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Demo)
	assert.Equal(t, "ok", resp.Seed)
	assert.Equal(t, len(demo.Roles()), stub.calls)
}

func TestHealthHandler_SeedMismatch(t *testing.T) {
	tests := []struct {
		name string
		stub *stubVerifier
	}{
		{"wrong password", &stubVerifier{ok: false}},
		{"verify error", &stubVerifier{err: errors.New("database is locked")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := serveHealth(t, NewHealthHandler(tt.stub, zerolog.Nop()), "myproject.github.io")

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Equal(t, "unhealthy", resp.Status)
			assert.Equal(t, "mismatch", resp.Seed)
		})
	}
}

func TestHealthHandler_CachesSeedCheck(t *testing.T) {
	stub := &stubVerifier{ok: true}
	h := NewHealthHandler(stub, zerolog.Nop())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	serveHealth(t, h, "example.com")
	serveHealth(t, h, "example.com")
	assert.Equal(t, 2, stub.calls, "second request within TTL must reuse the result")

	now = now.Add(seedCheckTTL)
	serveHealth(t, h, "example.com")
	assert.Equal(t, 4, stub.calls)
}

func TestHealthHandler_WithSeeder(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()
	require.NoError(t, db.RunMigrations(ctx))

	seeder := demo.NewSeeder(db, zerolog.Nop())
	require.NoError(t, seeder.SeedIfEmpty(ctx))

	rec, resp := serveHealth(t, NewHealthHandler(seeder, zerolog.Nop()), "myproject.github.io")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Seed)

	// Tampered row: the advertised password no longer logs in.
	require.NoError(t, repository.NewDemoAccountRepository(db).Upsert(ctx, &models.DemoAccount{
		Role:         demo.RoleAdmin,
		Email:        "admin@demo.aether.io",
		PasswordHash: "not-a-bcrypt-hash",
	}))

	rec, resp = serveHealth(t, NewHealthHandler(seeder, zerolog.Nop()), "myproject.github.io")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "mismatch", resp.Seed)
}

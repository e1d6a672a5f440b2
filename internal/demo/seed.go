package demo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"aether/internal/auth"
	"aether/internal/database"
	"aether/internal/models"
	"aether/internal/repository"
)

// Seeder writes the demo account table into the database so deployments
// that do run a backend accept the advertised demo logins.
type Seeder struct {
	repo   *repository.DemoAccountRepository
	logger zerolog.Logger
}

// NewSeeder creates a new demo account seeder.
func NewSeeder(db *database.DB, logger zerolog.Logger) *Seeder {
	return &Seeder{
		repo:   repository.NewDemoAccountRepository(db),
		logger: logger.With().Str("component", "demo-seeder").Logger(),
	}
}

// SeedIfEmpty seeds the demo accounts if none are stored yet.
func (s *Seeder) SeedIfEmpty(ctx context.Context) error {
	count, err := s.repo.CountAll(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		s.logger.Info().Int("accounts", count).Msg("Demo accounts already present, skipping seed")
		return nil
	}

	s.logger.Info().Msg("Seeding demo accounts")
	return s.Seed(ctx)
}

// Seed stores every demo account, replacing existing rows per role.
func (s *Seeder) Seed(ctx context.Context) error {
	for _, role := range Roles() {
		acc, _ := LookupAccount(role)

		hash, err := auth.HashPassword(acc.Password)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", role, err)
		}

		if err := s.repo.Upsert(ctx, &models.DemoAccount{
			Role:         role,
			Email:        acc.Email,
			PasswordHash: hash,
			Hint:         acc.Hint,
		}); err != nil {
			return err
		}
		s.logger.Debug().Str("role", role).Str("email", acc.Email).Msg("Seeded demo account")
	}

	s.logger.Info().Int("accounts", len(Roles())).Msg("Demo accounts seeded")
	return nil
}

// Verify reports whether password matches the stored hash for role.
func (s *Seeder) Verify(ctx context.Context, role, password string) (bool, error) {
	acc, err := s.repo.GetByRole(ctx, role)
	if err != nil {
		return false, err
	}
	if acc == nil {
		return false, nil
	}
	return auth.CheckPassword(password, acc.PasswordHash), nil
}

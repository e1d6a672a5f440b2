// Package repository provides the data access layer for the aether service.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aether/internal/database"
	"aether/internal/models"
)

// DemoAccountRepository handles persisted demo accounts.
type DemoAccountRepository struct {
	db *database.DB
}

// NewDemoAccountRepository creates a new DemoAccountRepository.
func NewDemoAccountRepository(db *database.DB) *DemoAccountRepository {
	return &DemoAccountRepository{db: db}
}

// Upsert inserts a demo account or replaces the one stored for its role.
func (r *DemoAccountRepository) Upsert(ctx context.Context, acc *models.DemoAccount) error {
	query := `
		INSERT INTO demo_accounts (role, email, password_hash, hint, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(role) DO UPDATE SET
			email = excluded.email,
			password_hash = excluded.password_hash,
			hint = excluded.hint
	`
	if _, err := r.db.ExecContext(ctx, query, acc.Role, acc.Email, acc.PasswordHash, acc.Hint, time.Now()); err != nil {
		return fmt.Errorf("upserting demo account %s: %w", acc.Role, err)
	}
	return nil
}

// GetByRole retrieves a demo account by role. Returns nil if not found.
func (r *DemoAccountRepository) GetByRole(ctx context.Context, role string) (*models.DemoAccount, error) {
	query := `
		SELECT role, email, password_hash, hint, created_at
		FROM demo_accounts
		WHERE role = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, role))
}

// GetByEmail retrieves a demo account by email. Returns nil if not found.
func (r *DemoAccountRepository) GetByEmail(ctx context.Context, email string) (*models.DemoAccount, error) {
	query := `
		SELECT role, email, password_hash, hint, created_at
		FROM demo_accounts
		WHERE email = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// List returns all demo accounts ordered by role.
func (r *DemoAccountRepository) List(ctx context.Context) ([]models.DemoAccount, error) {
	query := `
		SELECT role, email, password_hash, hint, created_at
		FROM demo_accounts
		ORDER BY role
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing demo accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.DemoAccount
	for rows.Next() {
		var acc models.DemoAccount
		if err := rows.Scan(&acc.Role, &acc.Email, &acc.PasswordHash, &acc.Hint, &acc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning demo account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// CountAll returns the total number of demo accounts.
func (r *DemoAccountRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM demo_accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting demo accounts: %w", err)
	}
	return count, nil
}

func (r *DemoAccountRepository) scanOne(row *sql.Row) (*models.DemoAccount, error) {
	acc := &models.DemoAccount{}
	err := row.Scan(&acc.Role, &acc.Email, &acc.PasswordHash, &acc.Hint, &acc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting demo account: %w", err)
	}
	return acc, nil
}

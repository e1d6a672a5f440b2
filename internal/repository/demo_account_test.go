package repository

import (
	"context"
	"path/filepath"
	"testing"

	"aether/internal/database"
	"aether/internal/models"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	if err := db.RunMigrations(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestDemoAccountRepository_Upsert_Insert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDemoAccountRepository(db)
	ctx := context.Background()

	acc := &models.DemoAccount{Role: "admin", Email: "admin@demo.aether.io", PasswordHash: "hash", Hint: "admin"}
	if err := repo.Upsert(ctx, acc); err != nil {
		t.Fatalf("Upsert() error = %v, want nil", err)
	}

	got, err := repo.GetByRole(ctx, "admin")
	if err != nil {
		t.Fatalf("GetByRole() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByRole() returned nil")
	}
	if got.Email != acc.Email {
		t.Errorf("Email = %q, want %q", got.Email, acc.Email)
	}
	if got.PasswordHash != "hash" {
		t.Errorf("PasswordHash = %q, want %q", got.PasswordHash, "hash")
	}
}

func TestDemoAccountRepository_Upsert_ReplacesExistingRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDemoAccountRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &models.DemoAccount{Role: "user", Email: "old@demo.aether.io", PasswordHash: "h1"}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	if err := repo.Upsert(ctx, &models.DemoAccount{Role: "user", Email: "user@demo.aether.io", PasswordHash: "h2"}); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	count, err := repo.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountAll() = %d, want 1", count)
	}

	got, err := repo.GetByEmail(ctx, "user@demo.aether.io")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got == nil || got.PasswordHash != "h2" {
		t.Errorf("GetByEmail() = %+v, want replaced row", got)
	}
}

func TestDemoAccountRepository_Upsert_DuplicateEmailAcrossRoles_ReturnsError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDemoAccountRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &models.DemoAccount{Role: "admin", Email: "same@demo.aether.io", PasswordHash: "h"}); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	if err := repo.Upsert(ctx, &models.DemoAccount{Role: "user", Email: "same@demo.aether.io", PasswordHash: "h"}); err == nil {
		t.Error("Upsert() with duplicate email should return error")
	}
}

func TestDemoAccountRepository_GetByRole_NotFound_ReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDemoAccountRepository(db)

	got, err := repo.GetByRole(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByRole() error = %v, want nil", err)
	}
	if got != nil {
		t.Errorf("GetByRole() = %+v, want nil", got)
	}
}

func TestDemoAccountRepository_List_OrderedByRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDemoAccountRepository(db)
	ctx := context.Background()

	for _, acc := range []models.DemoAccount{
		{Role: "user", Email: "user@demo.aether.io", PasswordHash: "h"},
		{Role: "admin", Email: "admin@demo.aether.io", PasswordHash: "h"},
	} {
		if err := repo.Upsert(ctx, &acc); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() len = %d, want 2", len(list))
	}
	if list[0].Role != "admin" || list[1].Role != "user" {
		t.Errorf("List() roles = [%s %s], want [admin user]", list[0].Role, list[1].Role)
	}
}

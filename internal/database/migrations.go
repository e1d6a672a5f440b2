package database

// SQL migrations for the aether database.
// All migrations use IF NOT EXISTS to be idempotent.

const migrationDemoAccounts = `
CREATE TABLE IF NOT EXISTS demo_accounts (
    role TEXT PRIMARY KEY,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    hint TEXT NOT NULL DEFAULT '',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const migrationIndexes = `
CREATE INDEX IF NOT EXISTS idx_demo_accounts_email ON demo_accounts(email);
`

// Package models contains the domain models for the aether service.
package models

import "time"

// DemoAccount is a demo login persisted for deployments that do run a
// backend. The password is stored only as a bcrypt hash.
type DemoAccount struct {
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Hint         string    `json:"hint"`
	CreatedAt    time.Time `json:"created_at"`
}

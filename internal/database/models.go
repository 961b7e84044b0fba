package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the users table row
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
	UpdatedAt    time.Time `bun:"updated_at,notnull"`
}

// Job is the jobs table row
type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Company   string    `bun:"company,notnull"`
	Position  string    `bun:"position,notnull"`
	Status    string    `bun:"status,notnull"`
	CreatedBy uuid.UUID `bun:"created_by,notnull,type:uuid"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

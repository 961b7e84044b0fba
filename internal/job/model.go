package job

import (
	"time"

	"github.com/google/uuid"
)

// Status is the stage of an application
type Status string

const (
	StatusPending   Status = "pending"
	StatusInterview Status = "interview"
	StatusDeclined  Status = "declined"
)

type Job struct {
	ID        uuid.UUID `json:"id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    Status    `json:"status"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Changes are the fields an update writes. A nil Status keeps the current one.
type Changes struct {
	Company  string
	Position string
	Status   *Status
}

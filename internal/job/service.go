package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/redmonkez12/jobs-api/internal/apperr"
)

const emptyFieldsMessage = "company and position fields can't be empty"

var validate = validator.New()

// Store is the job persistence the service depends on
type Store interface {
	Create(ctx context.Context, owner uuid.UUID, company, position string, status Status) (*Job, error)
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*Job, error)
	GetForOwner(ctx context.Context, id, owner uuid.UUID) (*Job, error)
	UpdateForOwner(ctx context.Context, id, owner uuid.UUID, changes Changes) (*Job, error)
	DeleteForOwner(ctx context.Context, id, owner uuid.UUID) (*Job, error)
}

// Input is the writable part of a job
type Input struct {
	Company  string `validate:"required,max=50"`
	Position string `validate:"required,max=100"`
	Status   string `validate:"omitempty,oneof=pending interview declined"`
}

// Service handles job business logic for a single owner at a time
type Service struct {
	jobs Store
}

func NewService(jobs Store) *Service {
	return &Service{jobs: jobs}
}

func (s *Service) List(ctx context.Context, owner uuid.UUID) ([]*Job, error) {
	jobs, err := s.jobs.ListByOwner(ctx, owner)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return jobs, nil
}

// Create validates in and stores a job for owner. Status defaults to pending.
func (s *Service) Create(ctx context.Context, owner uuid.UUID, in Input) (*Job, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	status := StatusPending
	if in.Status != "" {
		status = Status(in.Status)
	}

	created, err := s.jobs.Create(ctx, owner, in.Company, in.Position, status)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return created, nil
}

// Get returns the owner's job. Ids that are malformed, unknown or owned by
// someone else are all reported as not found.
func (s *Service) Get(ctx context.Context, owner uuid.UUID, rawID string) (*Job, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	found, err := s.jobs.GetForOwner(ctx, id, owner)
	if err != nil {
		return nil, storeError(rawID, err)
	}
	return found, nil
}

// Update overwrites company and position and, when given, status
func (s *Service) Update(ctx context.Context, owner uuid.UUID, rawID string, in Input) (*Job, error) {
	if in.Company == "" || in.Position == "" {
		return nil, apperr.BadRequest("", emptyFieldsMessage)
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	changes := Changes{Company: in.Company, Position: in.Position}
	if in.Status != "" {
		status := Status(in.Status)
		changes.Status = &status
	}

	updated, err := s.jobs.UpdateForOwner(ctx, id, owner, changes)
	if err != nil {
		return nil, storeError(rawID, err)
	}
	return updated, nil
}

// Delete removes the owner's job and returns it
func (s *Service) Delete(ctx context.Context, owner uuid.UUID, rawID string) (*Job, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.jobs.DeleteForOwner(ctx, id, owner)
	if err != nil {
		return nil, storeError(rawID, err)
	}
	return deleted, nil
}

func validateInput(in Input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Internal(fmt.Errorf("failed to validate job: %w", err))
	}

	fe := fieldErrs[0]
	field := jsonField(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperr.BadRequest(field, "please provide "+field)
	case "max":
		return apperr.BadRequest(field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "oneof":
		return apperr.BadRequest(field, "status must be one of pending, interview, declined")
	default:
		return apperr.BadRequest(field, "invalid "+field)
	}
}

func jsonField(structField string) string {
	switch structField {
	case "Company":
		return "company"
	case "Position":
		return "position"
	default:
		return "status"
	}
}

func parseID(rawID string) (uuid.UUID, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, notFound(rawID)
	}
	return id, nil
}

func storeError(rawID string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return notFound(rawID)
	}
	return apperr.Internal(err)
}

func notFound(rawID string) error {
	return apperr.NotFound(fmt.Sprintf("no job with id %s", rawID))
}

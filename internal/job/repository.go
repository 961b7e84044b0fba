package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/jobs-api/internal/database"
)

var ErrNotFound = errors.New("job not found")

// Repository handles job persistence. Every query is scoped to the owner.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a job owned by owner
func (r *Repository) Create(ctx context.Context, owner uuid.UUID, company, position string, status Status) (*Job, error) {
	now := time.Now().UTC()
	dbJob := &database.Job{
		ID:        uuid.New(),
		Company:   company,
		Position:  position,
		Status:    string(status),
		CreatedBy: owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.db.NewInsert().Model(dbJob).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return mapDBJobToModel(dbJob), nil
}

// ListByOwner returns the owner's jobs, newest first
func (r *Repository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*Job, error) {
	var dbJobs []database.Job
	err := r.db.NewSelect().
		Model(&dbJobs).
		Where("created_by = ?", owner).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]*Job, 0, len(dbJobs))
	for i := range dbJobs {
		jobs = append(jobs, mapDBJobToModel(&dbJobs[i]))
	}
	return jobs, nil
}

// GetForOwner retrieves a job by id if owner created it
func (r *Repository) GetForOwner(ctx context.Context, id, owner uuid.UUID) (*Job, error) {
	dbJob, err := selectOwned(ctx, r.db, id, owner)
	if err != nil {
		return nil, err
	}
	return mapDBJobToModel(dbJob), nil
}

// UpdateForOwner applies changes and returns the updated job
func (r *Repository) UpdateForOwner(ctx context.Context, id, owner uuid.UUID, changes Changes) (*Job, error) {
	var updated *database.Job

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewUpdate().
			Model((*database.Job)(nil)).
			Set("company = ?", changes.Company).
			Set("position = ?", changes.Position).
			Set("updated_at = ?", time.Now().UTC()).
			Where("id = ?", id).
			Where("created_by = ?", owner)
		if changes.Status != nil {
			q = q.Set("status = ?", string(*changes.Status))
		}

		res, err := q.Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}

		updated, err = selectOwned(ctx, tx, id, owner)
		return err
	})
	if err != nil {
		return nil, err
	}

	return mapDBJobToModel(updated), nil
}

// DeleteForOwner removes a job and returns it as it was
func (r *Repository) DeleteForOwner(ctx context.Context, id, owner uuid.UUID) (*Job, error) {
	var deleted *database.Job

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		deleted, err = selectOwned(ctx, tx, id, owner)
		if err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*database.Job)(nil)).
			Where("id = ?", id).
			Where("created_by = ?", owner).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapDBJobToModel(deleted), nil
}

func selectOwned(ctx context.Context, db bun.IDB, id, owner uuid.UUID) (*database.Job, error) {
	dbJob := new(database.Job)
	err := db.NewSelect().
		Model(dbJob).
		Where("id = ?", id).
		Where("created_by = ?", owner).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return dbJob, nil
}

// mapDBJobToModel converts database model to domain model
func mapDBJobToModel(dbj *database.Job) *Job {
	return &Job{
		ID:        dbj.ID,
		Company:   dbj.Company,
		Position:  dbj.Position,
		Status:    Status(dbj.Status),
		CreatedBy: dbj.CreatedBy,
		CreatedAt: dbj.CreatedAt,
		UpdatedAt: dbj.UpdatedAt,
	}
}

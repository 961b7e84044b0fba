package job

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/jobs-api/internal/apperr"
	"github.com/redmonkez12/jobs-api/internal/database/dbtest"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(dbtest.New(t)))
}

func TestService_CreateDefaultsToPending(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), uuid.New(), Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)
}

func TestService_CreateValidation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name      string
		input     Input
		wantField string
		wantMsg   string
	}{
		{"missing company", Input{Position: "Engineer"}, "company", "please provide company"},
		{"missing position", Input{Company: "Acme"}, "position", "please provide position"},
		{"long company", Input{Company: strings.Repeat("c", 51), Position: "Engineer"}, "company", "company must be at most 50 characters"},
		{"long position", Input{Company: "Acme", Position: strings.Repeat("p", 101)}, "position", "position must be at most 100 characters"},
		{"bad status", Input{Company: "Acme", Position: "Engineer", Status: "hired"}, "status", "status must be one of pending, interview, declined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tt.input)
			require.Error(t, err)

			appErr := apperr.As(err)
			assert.Equal(t, apperr.KindBadRequest, appErr.Kind)
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestService_NotFoundCases(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	ids := []string{"not-a-uuid", uuid.NewString()}
	for _, id := range ids {
		_, err := svc.Get(ctx, owner, id)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, "no job with id "+id, apperr.As(err).Message)

		_, err = svc.Delete(ctx, owner, id)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

		_, err = svc.Update(ctx, owner, id, Input{Company: "A", Position: "B"})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	}

	_, err = svc.Get(ctx, uuid.New(), created.ID.String())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestService_UpdateRequiresCompanyAndPosition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, Input{Company: "Acme", Position: "Engineer"})
	require.NoError(t, err)

	for _, in := range []Input{{Company: "Acme"}, {Position: "Engineer"}, {Status: "declined"}} {
		_, err := svc.Update(ctx, owner, created.ID.String(), in)
		require.Error(t, err)
		assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
		assert.Equal(t, "company and position fields can't be empty", apperr.As(err).Message)
	}

	updated, err := svc.Update(ctx, owner, created.ID.String(), Input{Company: "Acme", Position: "Lead", Status: "interview"})
	require.NoError(t, err)
	assert.Equal(t, "Lead", updated.Position)
	assert.Equal(t, StatusInterview, updated.Status)
}

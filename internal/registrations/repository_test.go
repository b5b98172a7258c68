package registrations

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tournamentpro/backend/internal/games"
	"github.com/tournamentpro/backend/internal/models"
	"github.com/tournamentpro/backend/pkg/apperror"
	"github.com/tournamentpro/backend/pkg/database"
)

// newTestRepository connects to DATABASE_URL and applies the migrations. Tests skip without it.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, dsn, 4, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.Migrate(ctx, pool, zap.NewNop()))
	return NewRepository(pool)
}

func insertSolo(t *testing.T, repo *Repository, game games.ID) *models.Registration {
	t.Helper()
	reg := &models.Registration{}
	soloForm().Apply(reg)
	reg.PaymentScreenshotURL = "1700000000000_abcd1234.png"
	require.NoError(t, repo.Insert(context.Background(), game, reg))
	tbl, err := table(game)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = repo.pool.Exec(context.Background(), "DELETE FROM "+tbl+" WHERE id = $1", reg.ID)
	})
	return reg
}

func TestRepositoryUpdateStatusOnlyFromPending(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	reg := insertSolo(t, repo, games.BGMI)
	assert.Equal(t, models.StatusPending, reg.Status)

	approved, err := repo.UpdateStatus(ctx, games.BGMI, reg.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.False(t, approved.UpdatedAt.Before(reg.UpdatedAt))

	_, err = repo.UpdateStatus(ctx, games.BGMI, reg.ID, models.StatusRejected)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidTransition))
	assert.Contains(t, err.Error(), "already approved")

	stored, err := repo.Get(ctx, games.BGMI, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, stored.Status)
}

func TestRepositoryUpdateStatusUnknownID(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.UpdateStatus(context.Background(), games.BGMI, uuid.New(), models.StatusApproved)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestRepositoryUpdateStatusStaysInGameTable(t *testing.T) {
	repo := newTestRepository(t)
	reg := insertSolo(t, repo, games.BGMI)

	_, err := repo.UpdateStatus(context.Background(), games.FreeFire, reg.ID, models.StatusApproved)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	stored, err := repo.Get(context.Background(), games.BGMI, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestRepositoryConcurrentDecisionsApplyOnce(t *testing.T) {
	repo := newTestRepository(t)
	reg := insertSolo(t, repo, games.FreeFire)

	statuses := []models.Status{models.StatusApproved, models.StatusRejected, models.StatusApproved, models.StatusRejected}
	errs := make([]error, len(statuses))
	var wg sync.WaitGroup
	for i, status := range statuses {
		wg.Add(1)
		go func(i int, status models.Status) {
			defer wg.Done()
			_, errs[i] = repo.UpdateStatus(context.Background(), games.FreeFire, reg.ID, status)
		}(i, status)
	}
	wg.Wait()

	applied := 0
	for _, err := range errs {
		if err == nil {
			applied++
			continue
		}
		assert.True(t, apperror.Is(err, apperror.CodeInvalidTransition), err)
	}
	assert.Equal(t, 1, applied)
}

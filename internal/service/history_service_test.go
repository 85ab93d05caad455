package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/repository"
	"github.com/alexanderramin/gradplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_ListDefaultsLimit(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePlanRunRepo(database)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		require.NoError(t, repo.Create(ctx, testutil.NewTestPlanRun(testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Minute)))))
	}
	svc := NewHistoryService(repo)

	runs, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, DefaultHistoryLimit)
	assert.True(t, runs[0].CreatedAt.After(runs[1].CreatedAt), "newest first")

	runs, err = svc.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestHistoryService_ListEmptyIsNotNil(t *testing.T) {
	svc := NewHistoryService(repository.NewSQLitePlanRunRepo(testutil.NewTestDB(t)))

	runs, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestHistoryService_Get(t *testing.T) {
	repo := repository.NewSQLitePlanRunRepo(testutil.NewTestDB(t))
	run := testutil.NewTestPlanRun()
	require.NoError(t, repo.Create(context.Background(), run))
	rec := &recordingObserver{}
	svc := NewHistoryService(repo, rec)

	got, err := svc.Get(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Results[0].Program.Name, got.Results[0].Program.Name)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "history-get", rec.events[0].Name)
	assert.True(t, rec.events[0].Success)
}

func TestHistoryService_GetNotFound(t *testing.T) {
	svc := NewHistoryService(repository.NewSQLitePlanRunRepo(testutil.NewTestDB(t)))

	_, err := svc.Get(context.Background(), "missing")

	var planErr *app.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, app.PlanErrNotFound, planErr.Code)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

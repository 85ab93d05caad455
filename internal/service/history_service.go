package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/repository"
)

// DefaultHistoryLimit caps history listings when the caller gives no limit.
const DefaultHistoryLimit = 20

type historyService struct {
	runs     repository.PlanRunRepo
	observer UseCaseObserver
}

func NewHistoryService(runs repository.PlanRunRepo, observers ...UseCaseObserver) HistoryService {
	return &historyService{runs: runs, observer: useCaseObserverOrNoop(observers)}
}

func (s *historyService) List(ctx context.Context, limit int) (runs []domain.PlanRunSummary, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "history-list",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"limit": limit, "count": len(runs)},
		})
	}()

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	runs, err = s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	if runs == nil {
		runs = []domain.PlanRunSummary{}
	}
	return runs, nil
}

func (s *historyService) Get(ctx context.Context, id string) (run *domain.PlanRun, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "history-get",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"run_id": id},
		})
	}()

	run, err = s.runs.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &app.PlanError{Code: app.PlanErrNotFound, Message: fmt.Sprintf("plan run %q not found", id), Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("loading plan run: %w", err)
	}
	return run, nil
}

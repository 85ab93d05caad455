package app

import (
	"context"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// PlanUseCase runs the full profile-to-shortlist pipeline. emit may be nil.
type PlanUseCase interface {
	Run(ctx context.Context, req PlanRequest, emit func(PlanEvent)) (*PlanResponse, error)
}

// TimelineUseCase schedules a single program with the deterministic
// planner only.
type TimelineUseCase interface {
	PlanProgram(ctx context.Context, req TimelineRequest) (*TimelineResponse, error)
}

type HistoryUseCase interface {
	List(ctx context.Context, limit int) ([]domain.PlanRunSummary, error)
	Get(ctx context.Context, id string) (*domain.PlanRun, error)
}

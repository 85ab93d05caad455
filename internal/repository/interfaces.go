package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// ErrNotFound is wrapped by every lookup that finds no row.
var ErrNotFound = errors.New("not found")

type PlanRunRepo interface {
	// Create stores the run with all program results and their tasks.
	// Call it inside a unit of work so the write is atomic.
	Create(ctx context.Context, run *domain.PlanRun) error
	GetByID(ctx context.Context, id string) (*domain.PlanRun, error)
	// List returns the newest runs first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.PlanRunSummary, error)
	Delete(ctx context.Context, id string) error
}

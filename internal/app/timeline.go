package app

import (
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/planner"
)

// TimelineRequest plans one program without any text-generation calls.
// Nil requirement lists are treated as unknown.
type TimelineRequest struct {
	Program      domain.Program
	Requirements domain.ProgramRequirements
	Profile      domain.StudentProfile
	Now          *time.Time
}

type TimelineResponse struct {
	Result domain.ProgramResult `json:"result"`
	Trace  []planner.Stage      `json:"trace"`
}

package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/domain"
)

var ErrMissingProgram = errors.New("program name is required")

// TimelineRequestBody is the POST /api/timeline body. Requirements lists
// left out stay unknown. Today defaults to the server's date.
type TimelineRequestBody struct {
	Program      domain.Program             `json:"program"`
	Requirements domain.ProgramRequirements `json:"requirements"`
	Profile      domain.StudentProfile      `json:"profile"`
	Today        string                     `json:"today,omitempty"`
}

func (b TimelineRequestBody) ToRequest() (app.TimelineRequest, error) {
	if strings.TrimSpace(b.Program.Name) == "" {
		return app.TimelineRequest{}, ErrMissingProgram
	}
	req := app.TimelineRequest{
		Program:      b.Program,
		Requirements: b.Requirements,
		Profile:      b.Profile,
	}
	if strings.TrimSpace(b.Today) != "" {
		today, err := domain.ParseDate(b.Today)
		if err != nil {
			return app.TimelineRequest{}, fmt.Errorf("today: %w", err)
		}
		req.Now = &today
	}
	return req, nil
}

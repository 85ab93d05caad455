// Package contract holds the JSON bodies exchanged over the HTTP API and
// their conversion into use-case requests.
package contract

import (
	"strings"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/domain"
)

// ResumeTextKey is the optional plan body field holding pasted resume text.
// Every other field of the body is treated as a profile answer.
const ResumeTextKey = "resume_text"

// PlanRequestFromBody splits a decoded plan body into a use-case request.
func PlanRequestFromBody(body map[string]any, source string) app.PlanRequest {
	profile := make(map[string]any, len(body))
	var resume string
	for k, v := range body {
		if k == ResumeTextKey {
			if s, ok := v.(string); ok {
				resume = strings.TrimSpace(s)
			}
			continue
		}
		profile[k] = v
	}
	req := app.NewPlanRequest(profile, source)
	req.ResumeText = resume
	return req
}

type RunListResponse struct {
	Runs []domain.PlanRunSummary `json:"runs"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version,omitempty"`
	Components map[string]string `json:"components,omitempty"`
}

package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/contract"
	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/gin-gonic/gin"
)

type handler struct {
	plans     app.PlanUseCase
	timelines app.TimelineUseCase
	history   app.HistoryUseCase
	log       logging.Logger
}

// generatePlan handles POST /api/generate-plan. The body is the student
// profile, optionally with resume_text.
func (h *handler) generatePlan(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.plans.Run(c.Request.Context(), contract.PlanRequestFromBody(body, domain.SourceHTTP), nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// generatePlanStream handles POST /api/generate-plan-stream. Every pipeline
// event is written as one SSE data frame; the last frame is either the
// result or an error.
func (h *handler) generatePlanStream(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	w := c.Writer
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	emit := func(ev app.PlanEvent) {
		if err := writeEvent(w, ev); err != nil {
			h.log.Warn("sse write failed", logging.String("type", string(ev.Type)), logging.Err(err))
		}
	}
	if _, err := h.plans.Run(c.Request.Context(), contract.PlanRequestFromBody(body, domain.SourceHTTP), emit); err != nil {
		h.log.Warn("streamed plan run failed", logging.Err(err))
	}
}

func (h *handler) timeline(c *gin.Context) {
	var body contract.TimelineRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req, err := body.ToRequest()
	if errors.Is(err, contract.ErrMissingProgram) {
		h.fail(c, err)
		return
	}
	if err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.timelines.PlanProgram(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) listRuns(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, fmt.Errorf("limit must be a non-negative integer, got %q", raw))
			return
		}
		limit = n
	}

	runs, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contract.RunListResponse{Runs: runs})
}

func (h *handler) getRun(c *gin.Context) {
	run, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.ResponseFromRun(run))
}

package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/teatest"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipSpinner(msg tea.Msg) bool {
	_, ok := msg.(spinner.TickMsg)
	return ok
}

func queued(msgs ...tea.Msg) <-chan tea.Msg {
	ch := make(chan tea.Msg, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	return ch
}

func TestProgressModel_ShowsStepsThenQuits(t *testing.T) {
	resp := &app.PlanResponse{RunID: "run-1", Status: domain.RunCompleted}
	updates := queued(
		planEventMsg{event: app.StatusEvent(app.AgentProfileIntake, "Analyzing student profile...")},
		planEventMsg{event: app.StatusEvent(app.AgentProgramSearch, "Found 4 top matches.")},
		planEventMsg{event: app.ResultEvent(resp)},
		planDoneMsg{resp: resp},
	)

	d := teatest.New(t, newProgressModel(updates, nil), teatest.WithSkip(skipSpinner))
	d.DrainInit()

	require.True(t, d.Quitting)
	view := d.View()
	assert.Contains(t, view, "✔ Analyzing student profile...")
	assert.Contains(t, view, "✔ Found 4 top matches.")
	assert.Contains(t, view, "Plan ready.")

	m := d.Model.(progressModel)
	assert.Len(t, m.steps, 2, "result events are not listed as steps")
	got, err := m.result()
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
}

func TestProgressModel_InFlightStepHasSpinner(t *testing.T) {
	updates := make(chan tea.Msg, 1)
	updates <- planEventMsg{event: app.StatusEvent(app.AgentQnA, "Validating application plan...")}

	d := teatest.New(t, newProgressModel(updates, nil), teatest.WithSkip(skipSpinner))
	d.DrainInit()

	assert.False(t, d.Quitting)
	view := d.View()
	assert.Contains(t, view, "Validating application plan...")
	assert.NotContains(t, view, "✔ Validating")
}

func TestProgressModel_Error(t *testing.T) {
	planErr := &app.PlanError{Code: app.PlanErrInvalidProfile, Message: "incomplete profile"}
	d := teatest.New(t, newProgressModel(queued(planDoneMsg{err: planErr}), nil), teatest.WithSkip(skipSpinner))
	d.DrainInit()

	require.True(t, d.Quitting)
	assert.Contains(t, d.View(), "✖ INVALID_PROFILE: incomplete profile")
	_, err := d.Model.(progressModel).result()
	assert.ErrorIs(t, err, planErr)
}

func TestProgressModel_ClosedChannelWithoutResult(t *testing.T) {
	ch := make(chan tea.Msg)
	close(ch)
	d := teatest.New(t, newProgressModel(ch, nil), teatest.WithSkip(skipSpinner))
	d.DrainInit()

	_, err := d.Model.(progressModel).result()
	assert.ErrorIs(t, err, errNoResult)
}

func TestProgressModel_CtrlCCancels(t *testing.T) {
	canceled := false
	d := teatest.New(t, newProgressModel(make(chan tea.Msg), func() { canceled = true }), teatest.WithSkip(skipSpinner))
	d.PressCtrlC()

	assert.True(t, canceled)
	assert.True(t, d.Quitting)
	assert.Contains(t, d.View(), "Canceled.")
	_, err := d.Model.(progressModel).result()
	assert.ErrorIs(t, err, context.Canceled)
}

type eventingPlans struct{ err error }

func (p eventingPlans) Run(_ context.Context, _ app.PlanRequest, emit func(app.PlanEvent)) (*app.PlanResponse, error) {
	emit(app.StatusEvent(app.AgentProfileIntake, "Analyzing student profile..."))
	if p.err != nil {
		return nil, p.err
	}
	resp := &app.PlanResponse{RunID: "bg"}
	emit(app.ResultEvent(resp))
	return resp, nil
}

func TestStartPlan_FeedsEventsThenDone(t *testing.T) {
	var msgs []tea.Msg
	for msg := range startPlan(context.Background(), eventingPlans{}, app.PlanRequest{}) {
		msgs = append(msgs, msg)
	}
	require.Len(t, msgs, 3)
	assert.IsType(t, planEventMsg{}, msgs[0])
	done, ok := msgs[2].(planDoneMsg)
	require.True(t, ok)
	assert.Equal(t, "bg", done.resp.RunID)

	boom := errors.New("boom")
	msgs = nil
	for msg := range startPlan(context.Background(), eventingPlans{err: boom}, app.PlanRequest{}) {
		msgs = append(msgs, msg)
	}
	require.Len(t, msgs, 2)
	assert.ErrorIs(t, msgs[1].(planDoneMsg).err, boom)
}

func TestStartPlan_CanceledContextDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for range startPlan(ctx, eventingPlans{}, app.PlanRequest{}) {
	}
}

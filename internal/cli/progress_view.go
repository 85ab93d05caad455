package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type planEventMsg struct{ event app.PlanEvent }

type planDoneMsg struct {
	resp *app.PlanResponse
	err  error
}

var errNoResult = errors.New("plan run ended without a result")

// progressModel shows pipeline status events while a plan runs in the
// background. It quits on the first planDoneMsg.
type progressModel struct {
	spinner spinner.Model
	updates <-chan tea.Msg
	cancel  context.CancelFunc

	steps    []app.PlanEvent
	done     bool
	canceled bool
	resp     *app.PlanResponse
	err      error
}

func newProgressModel(updates <-chan tea.Msg, cancel context.CancelFunc) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StylePurple
	return progressModel{spinner: s, updates: updates, cancel: cancel}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

// listen waits for the next update from the running plan.
func (m progressModel) listen() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.updates
		if !ok {
			return planDoneMsg{err: errNoResult}
		}
		return msg
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.cancel != nil {
				m.cancel()
			}
			m.canceled = true
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case planEventMsg:
		if msg.event.Type == app.EventStatus {
			m.steps = append(m.steps, msg.event)
		}
		return m, m.listen()

	case planDoneMsg:
		m.done = true
		m.resp, m.err = msg.resp, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	for i, step := range m.steps {
		last := i == len(m.steps)-1
		switch {
		case last && !m.done:
			fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), step.Message)
		default:
			fmt.Fprintf(&b, "%s %s\n", formatter.StyleGreen.Render("✔"), formatter.Dim(step.Message))
		}
	}
	switch {
	case m.canceled:
		b.WriteString(formatter.StyleYellow.Render("Canceled.") + "\n")
	case m.done && m.err != nil:
		fmt.Fprintf(&b, "%s %s\n", formatter.StyleRed.Render("✖"), m.err.Error())
	case m.done:
		b.WriteString(formatter.StyleGreen.Render("Plan ready.") + "\n")
	case len(m.steps) == 0:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), formatter.Dim("Starting..."))
	}
	return b.String()
}

// result returns what the run produced, or context.Canceled when the user
// quit first.
func (m progressModel) result() (*app.PlanResponse, error) {
	if m.canceled {
		return nil, context.Canceled
	}
	if m.err == nil && m.resp == nil {
		return nil, errNoResult
	}
	return m.resp, m.err
}

// startPlan runs the plan in the background and feeds its events to the
// returned channel, finishing with a planDoneMsg. Sends give up once ctx is
// done so a quit view never blocks the run.
func startPlan(ctx context.Context, plans app.PlanUseCase, req app.PlanRequest) <-chan tea.Msg {
	updates := make(chan tea.Msg, 32)
	send := func(msg tea.Msg) {
		select {
		case updates <- msg:
		case <-ctx.Done():
		}
	}
	go func() {
		defer close(updates)
		resp, err := plans.Run(ctx, req, func(ev app.PlanEvent) { send(planEventMsg{event: ev}) })
		send(planDoneMsg{resp: resp, err: err})
	}()
	return updates
}

// runProgressView runs the plan behind a spinner and returns its result.
func runProgressView(ctx context.Context, plans app.PlanUseCase, req app.PlanRequest, out io.Writer) (*app.PlanResponse, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newProgressModel(startPlan(ctx, plans, req), cancel)
	final, err := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	if m, ok := final.(progressModel); ok {
		return m.result()
	}
	return nil, errNoResult
}

package ui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the user aborts a running task
var ErrInterrupted = errors.New("interrupted")

type taskDoneMsg struct {
	err error
}

// TaskModel is a Bubble Tea model that shows a spinner while a task runs
// and quits when it finishes.
type TaskModel struct {
	Label   string
	Spinner spinner.Model

	task   func() error
	cancel context.CancelFunc
	err    error
	done   bool
}

// NewTaskModel creates a spinner model for task. cancel is called when the
// user presses ctrl+c.
func NewTaskModel(label string, task func() error, cancel context.CancelFunc) TaskModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return TaskModel{
		Label:   label,
		Spinner: s,
		task:    task,
		cancel:  cancel,
	}
}

// Init starts the spinner and, if the model owns one, the task
func (m TaskModel) Init() tea.Cmd {
	task := m.task
	if task == nil {
		return m.Spinner.Tick
	}
	return tea.Batch(
		m.Spinner.Tick,
		func() tea.Msg { return taskDoneMsg{err: task()} },
	)
}

// Update handles messages and updates the model
func (m TaskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			m.done = true
			m.err = ErrInterrupted
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the spinner line; it is empty once the task is done
func (m TaskModel) View() string {
	if m.done {
		return ""
	}
	return "  " + m.Spinner.View() + " " + SpinnerLabelStyle.Render(m.Label) + "\n"
}

// Done reports whether the task has finished or was interrupted
func (m TaskModel) Done() bool {
	return m.done
}

// Err returns the task error
func (m TaskModel) Err() error {
	return m.err
}

// RunWithSpinner runs task while rendering a spinner with label to out.
// Stdin is left alone; SIGINT ends the program and cancels the context
// passed to task. It does not return before task has returned, so
// anything task acquires is visible to the caller even on interrupt.
func RunWithSpinner(ctx context.Context, label string, out io.Writer, task func(context.Context) error) error {
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewTaskModel(label, nil, cancel),
		tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))

	done := make(chan error, 1)
	go func() {
		err := task(taskCtx)
		done <- err
		p.Send(taskDoneMsg{err: err})
	}()

	final, runErr := p.Run()
	cancel()
	taskErr := <-done

	if runErr != nil {
		if errors.Is(runErr, tea.ErrInterrupted) || errors.Is(runErr, tea.ErrProgramKilled) {
			return ErrInterrupted
		}
		return runErr
	}
	if err := final.(TaskModel).Err(); errors.Is(err, ErrInterrupted) {
		return err
	}
	if ctx.Err() != nil {
		return ErrInterrupted
	}
	return taskErr
}

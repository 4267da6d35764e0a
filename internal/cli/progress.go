package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/raphaelgruber/aimreport/internal/service"
	"golang.org/x/term"
)

const pollInterval = 100 * time.Millisecond

// errInterrupted is returned when the user quits the progress view.
var errInterrupted = errors.New("interrupted")

// tickMsg triggers polling the job status
type tickMsg time.Time

// jobUpdateMsg carries the latest job snapshot
type jobUpdateMsg struct {
	snap service.JobSnapshot
}

// progressModel is the bubbletea model for job progress.
type progressModel struct {
	job      *service.Job
	label    string
	snap     service.JobSnapshot
	progress progress.Model
	theme    Theme
	done     bool
	quitting bool
	err      error
}

func newProgressModel(job *service.Job, label string) progressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		job:      job,
		label:    label,
		snap:     job.Snapshot(),
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command (start polling).
func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.progress.Init(),
	)
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		return m, m.poll()

	case jobUpdateMsg:
		m.snap = msg.snap
		switch m.snap.Status {
		case service.JobStatusCompleted:
			m.done = true
			return m, tea.Quit
		case service.JobStatusFailed:
			m.done = true
			m.err = errors.New(m.snap.Error)
			return m, tea.Quit
		}
		return m, tickCmd()

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m progressModel) renderContent() string {
	if m.done || m.quitting {
		return m.finalView()
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.snap.Status))
	bar := m.progress.ViewAs(m.snap.Percent())
	counts := fmt.Sprintf("%d/%d %s", m.snap.Progress, m.snap.Total, m.label)
	hint := m.theme.hintStyle().Render("Press Ctrl+C to stop")

	return fmt.Sprintf("%s %s %s\n%s\n", status, bar, counts, hint)
}

func (m progressModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render(fmt.Sprintf("\nStopped after %d/%d %s.\n", m.snap.Progress, m.snap.Total, m.label))
	}
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ %s failed: %s\n", m.snap.Type, m.err))
	}
	return m.theme.completedStyle().Render(fmt.Sprintf("✓ %d %s saved", m.snap.Total, m.label)) +
		m.theme.hintStyle().Render(fmt.Sprintf(" (%s)\n", m.snap.Elapsed.Round(time.Millisecond)))
}

// poll reads the job snapshot in a command so Update never blocks.
func (m progressModel) poll() tea.Cmd {
	return func() tea.Msg {
		return jobUpdateMsg{snap: m.job.Snapshot()}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// RunJobProgress shows a progress bar until job finishes.
// Returns errInterrupted if the user quits first, or the job's error if it failed.
func RunJobProgress(job *service.Job, label string) error {
	p := tea.NewProgram(newProgressModel(job, label))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(progressModel); ok {
		if m.quitting {
			return errInterrupted
		}
		if m.err != nil {
			return m.err
		}
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

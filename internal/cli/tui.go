package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/forcelay/forcelay/pkg/pipeline"
)

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	watchDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	watchValueStyle = lipgloss.NewStyle().Foreground(colorWhite)
)

// =============================================================================
// WatchModel - Live layout progress
// =============================================================================

// progressMsg carries one iteration update from the layout engine.
type progressMsg struct {
	iteration int
	delta     float64
}

// doneMsg signals that the pipeline finished.
type doneMsg struct {
	result *pipeline.Result
	err    error
}

// WatchModel is the bubbletea model showing live layout iteration progress.
type WatchModel struct {
	Algorithm string
	Iteration int
	Delta     float64
	Result    *pipeline.Result
	Err       error
	quitting  bool
}

// newWatchModel creates a watch model for the given algorithm.
func newWatchModel(algorithm string) WatchModel {
	return WatchModel{Algorithm: algorithm}
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case progressMsg:
		m.Iteration = msg.iteration
		m.Delta = msg.delta
	case doneMsg:
		m.Result = msg.result
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m WatchModel) View() string {
	if m.quitting || m.Result != nil || m.Err != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(watchTitleStyle.Render(fmt.Sprintf("Computing %s layout", m.Algorithm)))
	b.WriteString("\n\n")
	b.WriteString("  " + watchDimStyle.Render("iteration") + " " + watchValueStyle.Render(fmt.Sprintf("%d", m.Iteration)))
	b.WriteString("\n")
	b.WriteString("  " + watchDimStyle.Render("max step ") + " " + watchValueStyle.Render(fmt.Sprintf("%.6g", m.Delta)))
	b.WriteString("\n\n")
	b.WriteString(watchDimStyle.Render("q quit"))
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Watch Runner
// =============================================================================

// runLayoutWatch runs the pipeline while displaying live iteration progress.
// The layout engine's progress callback feeds the bubbletea program, and the
// pipeline itself runs in a background goroutine.
func (c *CLI) runLayoutWatch(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	prog := tea.NewProgram(newWatchModel(opts.Algorithm), tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	opts.Progress = func(iteration int, delta float64) {
		prog.Send(progressMsg{iteration: iteration, delta: delta})
	}

	go func() {
		result, err := runner.Execute(ctx, opts)
		prog.Send(doneMsg{result: result, err: err})
	}()

	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display: %w", err)
	}

	m, ok := final.(WatchModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	if m.Err != nil {
		return nil, fmt.Errorf("compute layout: %w", m.Err)
	}
	if m.Result == nil {
		return nil, context.Canceled
	}
	return m.Result, nil
}

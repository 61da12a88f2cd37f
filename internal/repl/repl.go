// Package repl implements the interactive calculator.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/govalues/bigint"
	"github.com/govalues/bigint/internal/history"
	"github.com/govalues/bigint/internal/render"
)

// Evaluator evaluates a single expression.
type Evaluator interface {
	Eval(expr string) (bigint.BigInteger, error)
	Notation() string
}

// Recorder stores evaluated expressions.
type Recorder interface {
	Add(ctx context.Context, rec history.Record) (int64, error)
}

// Options configure the read-eval-print loop.
type Options struct {
	Group string
	// Keep is the number of past entries shown above the prompt.
	Keep int
	// Recorder, if set, receives every evaluated expression.
	Recorder Recorder
	Log      logrus.FieldLogger
}

type entry struct {
	expr   string
	result string
	err    error
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	exprStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type model struct {
	ctx     context.Context
	eval    Evaluator
	opts    Options
	input   textinput.Model
	entries []entry
	// recall holds submitted inputs for up/down navigation.
	recall []string
	cursor int
	width  int
}

func newModel(ctx context.Context, eval Evaluator, opts Options) *model {
	if opts.Keep <= 0 {
		opts.Keep = 20
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(eval.Notation() + "> ")
	ti.Placeholder = "expression, or :quit"
	ti.Focus()
	return &model{
		ctx:   ctx,
		eval:  eval,
		opts:  opts,
		input: ti,
		width: 80,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		case tea.KeyUp:
			m.move(-1)
			return m, nil
		case tea.KeyDown:
			m.move(1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 1
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) submit() tea.Cmd {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return nil
	}
	m.recall = append(m.recall, line)
	m.cursor = len(m.recall)

	switch line {
	case ":q", ":quit", ":exit":
		return tea.Quit
	case ":clear":
		m.entries = nil
		return nil
	}

	v, err := m.eval.Eval(line)
	e := entry{expr: line, err: err}
	rec := history.Record{Expr: line}
	if err != nil {
		rec.Error = err.Error()
	} else {
		e.result = render.Group(v, m.opts.Group)
		rec.Result = bigint.NullBigInteger{BigInteger: v, Valid: true}
	}
	m.entries = append(m.entries, e)
	if len(m.entries) > m.opts.Keep {
		m.entries = m.entries[len(m.entries)-m.opts.Keep:]
	}
	if m.opts.Recorder != nil {
		if _, err := m.opts.Recorder.Add(m.ctx, rec); err != nil {
			m.opts.Log.WithError(err).Warn("failed to record history")
		}
	}
	return nil
}

func (m *model) move(delta int) {
	if len(m.recall) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.recall))
	if m.cursor == len(m.recall) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.recall[m.cursor])
	m.input.CursorEnd()
}

func (m *model) View() string {
	var b strings.Builder
	for _, e := range m.entries {
		b.WriteString(exprStyle.Render(e.expr))
		b.WriteString("\n")
		if e.err != nil {
			b.WriteString(errorStyle.Render("  error: " + e.err.Error()))
		} else {
			b.WriteString(valueStyle.Width(m.width).Render("  = " + e.result))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter evaluate • ↑/↓ recall • :clear • esc quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts the interactive loop and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, eval Evaluator, in io.Reader, out io.Writer, opts Options) error {
	m := newModel(ctx, eval, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}

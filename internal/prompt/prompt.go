// Package prompt is the terminal selector used by the interactive command.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
)

// ErrAborted is returned when the user quits before every metric is chosen.
var ErrAborted = errors.New("selection aborted by user")

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	tierStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeOptionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#FF00FF")).
				Padding(0, 1)

	inactiveOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 1)

	descriptionStyle = lipgloss.NewStyle().
				Italic(true).
				MarginLeft(2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Back  key.Binding
	Reset key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "previous value"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next value"),
	),
	Next: key.NewBinding(
		key.WithKeys("enter", "right", "tab"),
		key.WithHelp("enter", "choose"),
	),
	Back: key.NewBinding(
		key.WithKeys("left", "shift+tab", "backspace"),
		key.WithHelp("←", "back"),
	),
	Reset: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "default"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Back, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reset},
		{k.Next, k.Back},
		{k.Quit},
	}
}

// model walks through one metric at a time.
type model struct {
	version string
	metrics []*cvss.Metric
	tiers   []schema.Tier // tier of each metric, same index
	current int           // metric being chosen
	cursors []int         // highlighted option per metric
	help    help.Model
	keys    keyMap
	width   int
	done    bool
	aborted bool
}

// newModel instantiates every metric of the requested tiers. Codes found in
// prefill become the initial choices, everything else starts at its default.
func newModel(cat *cvss.Catalog, tiers []schema.Tier, prefill *cvss.Vulnerability) (model, error) {
	var seeded map[schema.ShortName]string
	if prefill != nil {
		seeded = prefill.Selections()
	}

	m := model{
		version: cat.Version(),
		help:    help.New(),
		keys:    keys,
	}
	for _, tier := range tiers {
		for _, tmpl := range cat.Templates(tier) {
			metric, err := tmpl.Instantiate(seeded[tmpl.ShortName])
			if err != nil {
				return model{}, err
			}
			m.metrics = append(m.metrics, metric)
			m.tiers = append(m.tiers, tier)
			m.cursors = append(m.cursors, optionIndex(metric, metric.SelectedCode()))
		}
	}
	if len(m.metrics) == 0 {
		return model{}, fmt.Errorf("no metrics to select for tiers %v", tiers)
	}
	return m, nil
}

// optionIndex returns the position of code among the metric's options.
func optionIndex(metric *cvss.Metric, code string) int {
	for i, opt := range metric.DisplayOptions() {
		if opt.Code() == code {
			return i
		}
	}
	return 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		options := m.metrics[m.current].DisplayOptions()
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursors[m.current] > 0 {
				m.cursors[m.current]--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursors[m.current] < len(options)-1 {
				m.cursors[m.current]++
			}

		case key.Matches(msg, m.keys.Reset):
			m.cursors[m.current] = 0

		case key.Matches(msg, m.keys.Back):
			if m.current > 0 {
				m.current--
			}

		case key.Matches(msg, m.keys.Next):
			metric := m.metrics[m.current]
			if err := metric.Select(options[m.cursors[m.current]].Code()); err != nil {
				// Options come from the metric itself, so this cannot happen.
				m.aborted = true
				return m, tea.Quit
			}
			if m.current == len(m.metrics)-1 {
				m.done = true
				return m, tea.Quit
			}
			m.current++
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var s strings.Builder
	metric := m.metrics[m.current]
	tier := m.tiers[m.current]

	s.WriteString(titleStyle.Render(fmt.Sprintf("CVSS v%s calculator", m.version)))
	s.WriteString("\n\n")
	s.WriteString(tierStyle.Render(fmt.Sprintf("%s metrics", tier.Display())))
	s.WriteString("\n")

	var body strings.Builder
	fmt.Fprintf(&body, "%s (%s)  [%d/%d]\n\n", metric.Name(), metric.ShortName(), m.current+1, len(m.metrics))
	options := metric.DisplayOptions()
	for i, opt := range options {
		line := fmt.Sprintf("%-4s %s", opt.Code(), opt.Label())
		if i == 0 {
			line += " (default)"
		}
		if i == m.cursors[m.current] {
			body.WriteString("> " + activeOptionStyle.Render(line))
		} else {
			body.WriteString("  " + inactiveOptionStyle.Render(line))
		}
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(descriptionStyle.Render(options[m.cursors[m.current]].Description()))
	s.WriteString(contentStyle.Render(body.String()))
	s.WriteString("\n")

	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	s.WriteString("\n")
	return s.String()
}

// Selector asks for metric values in the terminal.
type Selector struct {
	input  io.Reader
	output io.Writer
}

var _ contract.MetricSelector = &Selector{} // Compile-time check

// NewSelector creates a selector bound to the given terminal streams.
func NewSelector(input io.Reader, output io.Writer) *Selector {
	return &Selector{input: input, output: output}
}

// Select implements the MetricSelector interface.
func (s *Selector) Select(ctx context.Context, cat *cvss.Catalog, tiers []schema.Tier, prefill *cvss.Vulnerability) ([]*cvss.Metric, error) {
	m, err := newModel(cat, tiers, prefill)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(s.input),
		tea.WithOutput(s.output),
	)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return result(final)
}

// result extracts the chosen metrics from the final model.
func result(final tea.Model) ([]*cvss.Metric, error) {
	fm, ok := final.(model)
	if !ok || !fm.done {
		return nil, ErrAborted
	}
	return fm.metrics, nil
}

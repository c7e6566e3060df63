package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/mseek/internal/config"
	"github.com/TimelordUK/mseek/internal/render"
	"github.com/TimelordUK/mseek/internal/search"
)

// Engine is the part of the search coordinator the UI talks to
type Engine interface {
	Searcher
	Events() <-chan search.Event
	MaxResults() int
}

// Batcher creates synthetic log files
type Batcher interface {
	Batch(ctx context.Context, n int) (int, error)
}

// ModelOptions holds options for creating a model
type ModelOptions struct {
	Config    *config.Config
	Engine    Engine
	Reader    search.Reader
	Generator Batcher
	Logger    *slog.Logger
}

type eventMsg struct{ event search.Event }

type generatedMsg struct {
	created int
	err     error
}

// Model is the main application model. It only mirrors coordinator
// snapshots; search state itself lives in the coordinator.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg       *config.Config
	engine    Engine
	reader    search.Reader
	generator Batcher
	logger    *slog.Logger
	submit    *submitter

	keys   keyMap
	help   help.Model
	styles styles

	slots  *search.TermSlots
	inputs []textinput.Model
	focus  int

	list    viewport.Model
	entries []search.LogEntry
	opened  map[string]search.LogEntry
	cursor  int
	terms   []string

	generation uint64
	phase      search.Phase
	pending    int
	truncated  bool
	speedText  string
	creating   bool
	status     string

	width  int
	height int
}

type styles struct {
	label    lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
	notice   lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	return styles{
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Label)).Width(10).Align(lipgloss.Right),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Selected)).Bold(true),
		status: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.StatusBar)).
			Foreground(lipgloss.Color(theme.StatusBarText)),
		notice: lipgloss.NewStyle().Faint(true),
	}
}

// NewModel creates a new application model
func NewModel(ctx context.Context, opts ModelOptions) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)

	m := &Model{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		engine:    opts.Engine,
		reader:    opts.Reader,
		generator: opts.Generator,
		logger:    logger.With("component", "ui"),
		keys:      newKeyMap(cfg.Keybindings),
		help:      help.New(),
		styles:    newStyles(cfg.Theme),
		slots:     search.NewTermSlots(),
		list:      viewport.New(80, 20),
		opened:    make(map[string]search.LogEntry),
		speedText: "Create files and use the search below to feel the speed.",
		width:     80,
		height:    24,
	}
	m.submit = newSubmitter(opts.Engine, m.logger)
	m.syncInputs()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	go m.submit.Run(m.ctx)
	m.submit.Post(nil)
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// Close stops the background submitter
func (m *Model) Close() {
	m.cancel()
}

func (m *Model) waitForEvent() tea.Cmd {
	events := m.engine.Events()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case ev := <-events:
			return eventMsg{event: ev}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case eventMsg:
		m.handleEvent(msg.event)
		return m, m.waitForEvent()

	case generatedMsg:
		m.creating = false
		if msg.err != nil {
			m.status = fmt.Sprintf("created %d files: %v", msg.created, msg.err)
		} else {
			m.status = fmt.Sprintf("created %d files", msg.created)
		}
		if len(search.NormalizeTerms(m.slots.Terms())) == 0 {
			m.submit.Post(nil)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextField):
		return m, m.setFocus((m.focus + 1) % len(m.inputs))

	case key.Matches(msg, m.keys.PrevField):
		return m, m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.refreshList()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		m.refreshList()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		return m, m.generate()
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.termChanged(m.focus, after)
	}
	return m, cmd
}

// termChanged applies a search bar edit and posts the resulting query
func (m *Model) termChanged(i int, value string) {
	action := m.slots.Set(i, value)
	m.logger.Debug("term changed", "slot", i, "action", action)

	switch action {
	case search.ActionSearch:
		m.submit.Post(m.slots.Terms())
	case search.ActionShowAll:
		m.submit.Post(nil)
	}
	m.syncInputs()
}

func (m *Model) handleEvent(ev search.Event) {
	switch ev := ev.(type) {
	case search.QueryStarted:
		m.generation = ev.Query.Generation
		m.terms = ev.Query.Terms
		m.opened = make(map[string]search.LogEntry)
		m.cursor = 0
		m.status = ""

	case search.ResultsChanged:
		if ev.Generation != m.generation {
			return
		}
		m.entries = ev.Entries
		for i, e := range m.entries {
			if open, ok := m.opened[e.Name]; ok {
				m.entries[i] = open
			}
		}
		m.phase = ev.Phase
		m.pending = ev.Pending
		m.truncated = ev.Truncated
		if m.cursor >= len(m.entries) {
			m.cursor = max(0, len(m.entries)-1)
		}
		m.refreshList()

	case search.SpeedMeasured:
		if ev.Generation == m.generation {
			m.speedText = ev.Sample.String()
		}
	}
}

func (m *Model) toggleSelected() {
	if m.cursor < 0 || m.cursor >= len(m.entries) || m.reader == nil {
		return
	}

	entry := &m.entries[m.cursor]
	entry.Toggle(m.reader)
	if entry.Opened {
		m.opened[entry.Name] = *entry
	} else {
		delete(m.opened, entry.Name)
	}
	m.refreshList()
}

func (m *Model) generate() tea.Cmd {
	if m.creating || m.generator == nil {
		return nil
	}
	m.creating = true
	ctx, gen, n := m.ctx, m.generator, m.cfg.Generator.BatchSize
	return func() tea.Msg {
		created, err := gen.Batch(ctx, n)
		return generatedMsg{created: created, err: err}
	}
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// syncInputs makes the text inputs mirror the term slots
func (m *Model) syncInputs() {
	n := m.slots.Len()
	for len(m.inputs) < n {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		m.inputs = append(m.inputs, ti)
	}
	m.inputs = m.inputs[:n]

	for i := range m.inputs {
		m.inputs[i].Placeholder = search.Placeholder(i)
		if m.inputs[i].Value() != m.slots.Value(i) {
			m.inputs[i].SetValue(m.slots.Value(i))
		}
	}

	if m.focus >= n {
		m.focus = n - 1
	}
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	m.layout()
}

func (m *Model) layout() {
	width := min(m.width, m.cfg.Display.MaxWidth)
	for i := range m.inputs {
		m.inputs[i].Width = max(10, width-14-2*i)
	}

	// speed row, blank, term rows, blank, footer, status, help
	reserved := 6 + len(m.inputs)
	m.list.Width = width
	m.list.Height = max(3, m.height-reserved)
	m.refreshList()
}

// refreshList re-renders the result list and keeps the cursor visible
func (m *Model) refreshList() {
	var b strings.Builder
	cursorLine, line := 0, 0
	for i, e := range m.entries {
		if i == m.cursor {
			cursorLine = line
		}

		icon := "▸"
		if e.Opened {
			icon = "▾"
		}
		row := fmt.Sprintf("%s %s", icon, e.Name)
		if i == m.cursor {
			row = m.styles.selected.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteByte('\n')
		line++

		if e.Opened {
			r := render.ForFile(e.Name, m.cfg)
			if e.Failed {
				r = render.NewPlainRenderer()
			}
			content := render.Content(r, e.Content, m.terms, m.cfg.Display.PreviewLines)
			content = lipgloss.NewStyle().PaddingLeft(6).Render(content)
			b.WriteString(content)
			b.WriteByte('\n')
			line += strings.Count(content, "\n") + 1
		}
	}
	m.list.SetContent(strings.TrimRight(b.String(), "\n"))

	if cursorLine < m.list.YOffset {
		m.list.SetYOffset(cursorLine)
	} else if cursorLine >= m.list.YOffset+m.list.Height {
		m.list.SetYOffset(cursorLine - m.list.Height + 1)
	}
}

func (m *Model) footer() string {
	switch {
	case m.truncated:
		return fmt.Sprintf("Showing first %d. Use search to narrow down results.", m.engine.MaxResults())
	case m.phase != search.PhaseIdle || m.pending > 0:
		return "Searching . . ."
	default:
		return "Showing all results."
	}
}

func (m *Model) speedRow() string {
	create := fmt.Sprintf("[%s] Create %d files", first(m.cfg.Keybindings.Generate), m.cfg.Generator.BatchSize)
	if m.creating {
		create = "Creating files..."
	}

	speed := m.speedText
	if m.phase != search.PhaseIdle {
		speed = "Calculating Speed..."
	}
	return create + "    " + speed
}

// View implements tea.Model
func (m *Model) View() string {
	width := min(m.width, m.cfg.Display.MaxWidth)
	var b strings.Builder

	b.WriteString(m.speedRow())
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(strings.Repeat("  ", i))
		b.WriteString(m.styles.label.Render(search.Label(i)))
		b.WriteString(" ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(m.styles.notice.Width(width).Align(lipgloss.Center).Render(m.footer()))
	b.WriteString("\n")

	status := fmt.Sprintf(" %d results", len(m.entries))
	if m.status != "" {
		status += "  " + m.status
	}
	b.WriteString(m.styles.status.Width(width).Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.help()))

	return b.String()
}

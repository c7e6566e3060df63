package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/mseek/internal/config"
	"github.com/TimelordUK/mseek/pkg/logformat"
)

// Renderer applies styling to one line of an opened log
type Renderer interface {
	Render(line string, terms []string) string
}

// LogLevelRenderer colors lines based on log level and marks search terms
type LogLevelRenderer struct {
	detector *logformat.LevelDetector
	styles   map[logformat.Level]lipgloss.Style
	match    lipgloss.Style
}

// NewLogLevelRenderer creates a renderer with config
func NewLogLevelRenderer(cfg *config.Config) *LogLevelRenderer {
	detector := logformat.NewLevelDetector(&cfg.LogLevels)

	styles := map[logformat.Level]lipgloss.Style{
		logformat.LevelUnknown: lipgloss.NewStyle(),
		logformat.LevelTrace:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Trace)),
		logformat.LevelDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Debug)),
		logformat.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Info)),
		logformat.LevelWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Warn)),
		logformat.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Error)),
		logformat.LevelFatal:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Levels.Fatal)),
	}

	return &LogLevelRenderer{
		detector: detector,
		styles:   styles,
		match:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cfg.Theme.SearchMatch)),
	}
}

// Render applies level styling and highlights every term occurrence
func (r *LogLevelRenderer) Render(line string, terms []string) string {
	style := r.styles[r.detector.Detect(line)]

	var b strings.Builder
	for _, seg := range Segments(line, terms) {
		if seg.Match {
			b.WriteString(r.match.Render(seg.Text))
		} else {
			b.WriteString(style.Render(seg.Text))
		}
	}
	return b.String()
}

// PlainRenderer renders without styling
type PlainRenderer struct{}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render returns the line content as-is
func (r *PlainRenderer) Render(line string, _ []string) string {
	return line
}

// Segment is a run of a line that either matches a term or not
type Segment struct {
	Text  string
	Match bool
}

// Segments splits line into matching and non-matching runs, comparing
// case-insensitively. Terms must be lowercase.
func Segments(line string, terms []string) []Segment {
	lower := strings.ToLower(line)
	if len(terms) == 0 || len(lower) != len(line) {
		return []Segment{{Text: line}}
	}

	marked := make([]bool, len(line))
	for _, term := range terms {
		if term == "" {
			continue
		}
		for start := 0; ; {
			idx := strings.Index(lower[start:], term)
			if idx < 0 {
				break
			}
			for i := start + idx; i < start+idx+len(term); i++ {
				marked[i] = true
			}
			start += idx + len(term)
		}
	}

	var segs []Segment
	begin := 0
	for i := 1; i <= len(line); i++ {
		if i == len(line) || marked[i] != marked[begin] {
			segs = append(segs, Segment{Text: line[begin:i], Match: marked[begin]})
			begin = i
		}
	}
	if len(segs) == 0 {
		segs = []Segment{{Text: line}}
	}
	return segs
}

// ForFile picks syntax highlighting for known source formats and level
// coloring for everything else. display.plain disables both.
func ForFile(name string, cfg *config.Config) Renderer {
	if cfg.Display.Plain {
		return NewPlainRenderer()
	}
	if cfg.Display.SyntaxHighlight && IsSyntaxHighlightable(name) {
		return NewSyntaxRenderer(name)
	}
	return NewLogLevelRenderer(cfg)
}

// Content renders up to maxLines lines of content; maxLines <= 0 renders all
func Content(r Renderer, content string, terms []string, maxLines int) string {
	lines := strings.Split(strings.TrimRight(content, "\r\n"), "\n")
	more := 0
	if maxLines > 0 && len(lines) > maxLines {
		more = len(lines) - maxLines
		lines = lines[:maxLines]
	}

	out := make([]string, len(lines), len(lines)+1)
	for i, line := range lines {
		out[i] = r.Render(strings.TrimRight(line, "\r"), terms)
	}
	if more > 0 {
		out = append(out, lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("... %d more lines", more)))
	}
	return strings.Join(out, "\n")
}

package render

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const syntaxStyle = "monokai"

// SyntaxRenderer colours structured files (JSON, YAML, ...) with chroma.
// Lexer, style and formatter are resolved once per file.
type SyntaxRenderer struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewSyntaxRenderer resolves the lexer for filename, falling back to plain text
func NewSyntaxRenderer(filename string) *SyntaxRenderer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &SyntaxRenderer{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(syntaxStyle),
		formatter: formatters.Get("terminal16m"),
	}
}

// Render highlights one line. Terms are ignored because chroma owns the
// line's colours.
func (r *SyntaxRenderer) Render(line string, _ []string) string {
	if line == "" {
		return ""
	}

	tokens, err := r.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var sb strings.Builder
	if err := r.formatter.Format(&sb, r.style, tokens); err != nil {
		return line
	}
	return strings.NewReplacer("\n", "", "\r", "").Replace(sb.String())
}

// Lexer returns the chroma lexer name chosen for the file
func (r *SyntaxRenderer) Lexer() string {
	return r.lexer.Config().Name
}

var syntaxExts = map[string]bool{
	".json": true, ".ndjson": true, ".jsonl": true,
	".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".xml": true, ".html": true,
	".sql": true, ".sh": true, ".bash": true,
	".md": true, ".markdown": true, ".diff": true, ".patch": true,
}

// IsSyntaxHighlightable reports whether a file reads better with syntax
// colours than with log level colours
func IsSyntaxHighlightable(filename string) bool {
	return syntaxExts[strings.ToLower(filepath.Ext(filename))]
}

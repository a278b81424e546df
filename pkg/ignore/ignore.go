// Package ignore matches slash-separated relative paths against
// gitignore-style exclusion patterns.
package ignore

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileName is the per-directory ignore file read from the bundle root.
const FileName = ".bundleignore"

// Pattern is one compiled exclusion rule.
type Pattern struct {
	Pattern *regexp.Regexp // Compiled form of Line.
	Negate  bool           // Line started with '!'.
	DirOnly bool           // Line ended with '/'.
	Source  string         // File the line came from, or "command line".
	LineNo  int            // 1-based line number in Source.
	Line    string         // Original pattern line.
}

// Matcher holds an ordered list of patterns; later patterns override earlier ones.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty Matcher. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Load compiles root/.bundleignore (when present) followed by extra patterns.
func Load(fsys afero.Fs, root string, extra []string, logger *zap.Logger) (*Matcher, error) {
	m := New(logger)
	if err := m.CompileFile(fsys, filepath.Join(root, FileName)); err != nil {
		return nil, err
	}
	m.CompileLines("command line", extra...)
	return m, nil
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// CompileFile reads an ignore file and compiles its lines. A missing file is not an error.
func (m *Matcher) CompileFile(fsys afero.Fs, filePath string) error {
	content, err := afero.ReadFile(fsys, filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", filePath))
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return err
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	m.CompileLines(filePath, lines...)
	return nil
}

// CompileLines compiles pattern lines; blank lines and '#' comments are skipped.
func (m *Matcher) CompileLines(source string, lines ...string) {
	for i, line := range lines {
		p := parsePatternLine(line)
		if p == nil {
			continue
		}
		p.Source = source
		p.LineNo = i + 1
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled ignore pattern",
			zap.String("source", source),
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", p.Line),
			zap.Bool("negate", p.Negate))
	}
}

// Matches reports whether relPath, or any directory above it, is excluded.
func (m *Matcher) Matches(relPath string, isDir bool) bool {
	relPath = normalizePath(relPath)
	if relPath == "" || len(m.patterns) == 0 {
		return false
	}
	for i := 0; i < len(relPath); i++ {
		if relPath[i] == '/' && m.match(relPath[:i], true) {
			return true
		}
	}
	return m.match(relPath, isDir)
}

func (m *Matcher) match(p string, isDir bool) bool {
	ignored := false
	for _, pattern := range m.patterns {
		if pattern.DirOnly && !isDir {
			continue
		}
		if pattern.Pattern.MatchString(p) {
			ignored = !pattern.Negate
		}
	}
	return ignored
}

// normalizePath converts to forward slashes and drops "./" and trailing slashes.
func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimRight(p, "/")
	if p == "." {
		return ""
	}
	return path.Clean("/" + p)[1:]
}

// parsePatternLine turns one ignore line into a Pattern, or nil for blanks and comments.
func parsePatternLine(line string) *Pattern {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	p := &Pattern{Line: line}
	if strings.HasPrefix(trimmed, "!") {
		p.Negate = true
		trimmed = trimmed[1:]
	} else if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}
	if strings.HasSuffix(trimmed, "/") {
		p.DirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}

	anchored := strings.HasPrefix(trimmed, "/")
	trimmed = strings.TrimLeft(trimmed, "/")
	if !anchored && strings.Contains(trimmed, "/") && !strings.HasPrefix(trimmed, "**/") {
		anchored = true
	}
	if trimmed == "" {
		return nil
	}

	expr := "^" + globToRegex(trimmed) + "$"
	if !anchored {
		expr = "^(?:.*/)?" + globToRegex(trimmed) + "$"
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	p.Pattern = re
	return p
}

// globToRegex translates '*', '?' and '**' into regular expression syntax.
func globToRegex(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case strings.HasPrefix(glob[i:], "**/"):
			b.WriteString("(?:.*/)?")
			i += 2
		case strings.HasPrefix(glob[i:], "**"):
			b.WriteString(".*")
			i++
		case c == '*':
			b.WriteString("[^/]*")
		case c == '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}

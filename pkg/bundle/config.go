// File: pkg/bundle/config.go
package bundle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultAuthor is written in the banner when no author is given.
const DefaultAuthor = "Anonymous"

// SortMode selects the order in which selected files are emitted.
type SortMode string

const (
	SortByName     SortMode = "name"     // Full path, ordinal byte order (default).
	SortByLanguage SortMode = "language" // Extension tag, then full path.
)

// ParseSortMode validates s against the closed set of sort modes.
// An empty string yields SortByName.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortByName, nil
	case SortByName, SortByLanguage:
		return m, nil
	default:
		return "", fmt.Errorf("%w: invalid sort %q (use 'name' or 'language')", ErrUsage, s)
	}
}

// Selector is the user's language filter: either every supported extension,
// or an explicit list of tags.
type Selector struct {
	all  bool
	tags []string
}

// AllLanguages selects every supported extension.
var AllLanguages = Selector{all: true}

// ParseSelector parses the literal token "all" or a comma-separated list of
// extension tags. Empty entries are dropped; unknown tags are kept here and
// only discarded when intersected with the supported set.
func ParseSelector(s string) Selector {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return AllLanguages
	}
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := NormalizeTag(part); t != "" {
			tags = append(tags, t)
		}
	}
	return Selector{tags: tags}
}

// All reports whether the selector is the "all" token.
func (s Selector) All() bool { return s.all }

// Tags returns the user-supplied tags, or nil for "all".
func (s Selector) Tags() []string { return append([]string(nil), s.tags...) }

// Effective resolves the selector against the supported set.
func (s Selector) Effective(supported ExtensionSet) ExtensionSet {
	if s.all {
		return supported
	}
	return supported.Intersect(s.tags)
}

// String renders the selector the way it is written on the command line.
func (s Selector) String() string {
	if s.all {
		return "all"
	}
	return strings.Join(s.tags, ",")
}

// Options holds raw, unvalidated option values as collected from flags,
// environment or prompts.
type Options struct {
	Output           string
	Language         string
	Note             bool
	Sort             string
	RemoveEmptyLines bool
	Author           *string // nil selects DefaultAuthor; "" disables the banner.
	Exclude          []string
}

// Config is the validated configuration of one bundle invocation.
type Config struct {
	Output           string   // Absolute path of the output file.
	Selector         Selector // Requested languages.
	IncludeNotes     bool     // Prefix each file with a provenance line.
	SortMode         SortMode
	RemoveEmptyLines bool
	Author           string   // Banner author; empty means no banner.
	Exclude          []string // Extra ignore patterns.
}

// NewConfig validates o and returns the typed configuration.
func NewConfig(o Options) (Config, error) {
	if strings.TrimSpace(o.Output) == "" {
		return Config{}, fmt.Errorf("%w: --output is required", ErrUsage)
	}
	if strings.TrimSpace(o.Language) == "" {
		return Config{}, fmt.Errorf("%w: --language is required", ErrUsage)
	}
	mode, err := ParseSortMode(o.Sort)
	if err != nil {
		return Config{}, err
	}
	output, err := filepath.Abs(o.Output)
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid output path %q: %v", ErrUsage, o.Output, err)
	}

	author := DefaultAuthor
	if o.Author != nil {
		author = *o.Author
	}

	return Config{
		Output:           output,
		Selector:         ParseSelector(o.Language),
		IncludeNotes:     o.Note,
		SortMode:         mode,
		RemoveEmptyLines: o.RemoveEmptyLines,
		Author:           author,
		Exclude:          append([]string(nil), o.Exclude...),
	}, nil
}

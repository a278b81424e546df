// Package rsp persists bundle options as a response file: a single shell
// style command line that reproduces the invocation when expanded with
// "@bundle.rsp".
package rsp

import (
	"fmt"
	"path/filepath"
	"strings"

	"codebundle/pkg/bundle"

	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// FileName is the response file written by interactive mode.
	FileName = "bundle.rsp"
	// Command is the subcommand recorded at the start of the command line.
	Command = "bundle"
)

// Answers holds the values collected by the interactive prompts, in prompt order.
type Answers struct {
	Output           string
	Languages        string
	Note             bool
	Sort             string
	RemoveEmptyLines bool
	Author           string
}

// Config converts the answers into a validated bundle configuration.
// An empty author falls back to bundle.DefaultAuthor.
func (a Answers) Config() (bundle.Config, error) {
	var author *string
	if a.Author != "" {
		author = &a.Author
	}
	return bundle.NewConfig(bundle.Options{
		Output:           a.Output,
		Language:         a.Languages,
		Note:             a.Note,
		Sort:             a.Sort,
		RemoveEmptyLines: a.RemoveEmptyLines,
		Author:           author,
	})
}

// Args returns the bundle command and its flags. Flags whose answer is
// false or empty are omitted; output and languages are required.
func (a Answers) Args() ([]string, error) {
	if strings.TrimSpace(a.Output) == "" {
		return nil, fmt.Errorf("%w: output path is required", bundle.ErrUsage)
	}
	if strings.TrimSpace(a.Languages) == "" {
		return nil, fmt.Errorf("%w: languages are required", bundle.ErrUsage)
	}

	args := []string{Command, "--output", a.Output, "--language", a.Languages}
	if a.Note {
		args = append(args, "--note")
	}
	if a.Sort != "" {
		args = append(args, "--sort", a.Sort)
	}
	if a.RemoveEmptyLines {
		args = append(args, "--remove-empty-lines")
	}
	if a.Author != "" {
		args = append(args, "--author", a.Author)
	}
	return args, nil
}

// CommandLine renders Args as one line, quoting values for the shell where needed.
func (a Answers) CommandLine() (string, error) {
	args, err := a.Args()
	if err != nil {
		return "", err
	}
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return "", fmt.Errorf("failed to quote %q: %w", arg, err)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}

// Write stores line, newline-terminated, at path, replacing any previous file.
func Write(fsys afero.Fs, path, line string) error {
	if err := afero.WriteFile(fsys, path, []byte(line+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write response file: %w", err)
	}
	return nil
}

// Expand replaces each leading "@path" argument with the shell fields read
// from path, resolving relative paths against dir. Only arguments before the
// first flag are expanded, so flag values such as "--author @alice" pass
// through untouched. Expansion is not recursive. A lone "@" is passed through.
func Expand(fsys afero.Fs, dir string, args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if strings.HasPrefix(arg, "-") {
			return append(out, args[i:]...), nil
		}
		if len(arg) < 2 || arg[0] != '@' {
			out = append(out, arg)
			continue
		}
		path := arg[1:]
		if dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read response file: %w", err)
		}
		fields, err := shell.Fields(string(content), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to parse response file %s: %w", path, err)
		}
		out = append(out, fields...)
	}
	return out, nil
}

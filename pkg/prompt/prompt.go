// Package prompt collects response-file answers from the console.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codebundle/pkg/rsp"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels the prompts.
var ErrAborted = errors.New("prompt aborted")

// Options configures the prompt session.
type Options struct {
	Input      io.Reader
	Output     io.Writer
	Accessible bool // Plain line-based prompts instead of the full-screen form.
}

// DefaultOptions reads from stdin and switches to accessible mode when stdin
// is not a terminal or ACCESSIBLE is set. Accessible prompts go to stderr so
// they are not captured by command substitution.
func DefaultOptions() Options {
	accessible := !term.IsTerminal(int(os.Stdin.Fd())) || os.Getenv("ACCESSIBLE") != ""
	var output io.Writer = os.Stdout
	if accessible {
		output = os.Stderr
	}
	return Options{Input: os.Stdin, Output: output, Accessible: accessible}
}

// Ask runs the prompts in order: output path, languages, include comments,
// sort order, remove empty lines, author.
func Ask(opts Options) (rsp.Answers, error) {
	a := rsp.Answers{Sort: "name"}

	form := huh.NewForm(
		huh.NewGroup(huh.NewInput().
			Title("Output file path").
			Value(&a.Output).
			Validate(required("output file path"))),
		huh.NewGroup(huh.NewInput().
			Title("Languages").
			Description("Comma separated extensions, or 'all'").
			Value(&a.Languages).
			Validate(required("languages"))),
		huh.NewGroup(huh.NewConfirm().
			Title("Include source comments?").
			Value(&a.Note)),
		huh.NewGroup(huh.NewSelect[string]().
			Title("Sort order").
			Options(
				huh.NewOption("By file name", "name"),
				huh.NewOption("By language", "language"),
			).
			Value(&a.Sort)),
		huh.NewGroup(huh.NewConfirm().
			Title("Remove empty lines?").
			Value(&a.RemoveEmptyLines)),
		huh.NewGroup(huh.NewInput().
			Title("Author").
			Description("Leave empty to use the default").
			Value(&a.Author)),
	).WithAccessible(opts.Accessible).WithTheme(huh.ThemeCharm())

	if opts.Input != nil {
		form = form.WithInput(lineReader{opts.Input})
	}
	if opts.Output != nil {
		form = form.WithOutput(opts.Output)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return rsp.Answers{}, ErrAborted
		}
		return rsp.Answers{}, fmt.Errorf("failed to read answers: %w", err)
	}

	a.Output = strings.TrimSpace(a.Output)
	a.Languages = strings.TrimSpace(a.Languages)
	a.Author = strings.TrimSpace(a.Author)
	if err := checkAnswers(a); err != nil {
		return rsp.Answers{}, err
	}
	return a, nil
}

// checkAnswers catches required answers left empty, which happens in
// accessible mode when the input ends early.
func checkAnswers(a rsp.Answers) error {
	if err := required("output file path")(a.Output); err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}
	if err := required("languages")(a.Languages); err != nil {
		return fmt.Errorf("failed to read answers: %w", err)
	}
	return nil
}

// lineReader hands out one byte per Read. Accessible fields each wrap the
// input in their own scanner, so none may buffer past its own line.
type lineReader struct {
	r io.Reader
}

func (l lineReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return l.r.Read(p[:1])
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"codebundle/pkg/bundle"
	"codebundle/pkg/logging"
	"codebundle/pkg/prompt"
	"codebundle/pkg/rsp"
	"codebundle/pkg/ui"
	"codebundle/pkg/version"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes returned by Execute.
const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitUsage             = 2
	ExitDirectoryNotFound = 3
)

// App carries the collaborators shared by every command.
type App struct {
	FS     afero.Fs
	Stdout io.Writer
	Getwd  func() (string, error)
	Prompt func() (rsp.Answers, error)
}

// DefaultApp wires the real filesystem, stdout and console prompts.
func DefaultApp() *App {
	return &App{
		FS:     afero.NewOsFs(),
		Stdout: os.Stdout,
		Getwd:  os.Getwd,
		Prompt: func() (rsp.Answers, error) { return prompt.Ask(prompt.DefaultOptions()) },
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "codebundle",
		Short: "codebundle concatenates source files into a single file",
		Long: `codebundle walks the working directory, keeps the source files of the
requested languages and writes them, in a stable order, into one file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(verbose, "codebundle", version.Get().Version)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", bundle.ErrUsage, err)
	})
	root.SetOut(app.Stdout)

	root.AddCommand(newBundleCmd(app), newCreateRspCmd(app), newVersionCmd())
	return root
}

// Execute runs the CLI with args using the real environment and returns the exit code.
func Execute(args []string) int {
	return Run(DefaultApp(), args)
}

// Run normalizes args, executes the command tree and reports any error as
// a single line on app.Stdout.
func Run(app *App, args []string) int {
	printer := ui.New(app.Stdout)

	args, err := normalizeArgs(app, args)
	if err != nil {
		printer.Error(err)
		return ExitCode(err)
	}

	root := NewRootCmd(app)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		logging.Logger.Debug("Command failed", zap.Error(err))
		printer.Error(err)
		return ExitCode(err)
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, bundle.ErrUsage):
		return ExitUsage
	case errors.Is(err, bundle.ErrDirectoryNotFound):
		return ExitDirectoryNotFound
	default:
		return ExitFailure
	}
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q for %q", bundle.ErrUsage, args, cmd.CommandPath())
	}
	return nil
}

package cmd

import (
	"fmt"
	"path/filepath"

	"codebundle/pkg/logging"
	"codebundle/pkg/rsp"
	"codebundle/pkg/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCreateRspCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create-rsp",
		Short: "Interactively build a bundle.rsp response file",
		Long: `Ask for each bundle option in turn and save the equivalent command line
to bundle.rsp in the working directory. Replay it with: codebundle @bundle.rsp`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := app.Prompt()
			if err != nil {
				return err
			}
			line, err := answers.CommandLine()
			if err != nil {
				return err
			}

			dir, err := app.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			path := filepath.Join(dir, rsp.FileName)
			if err := rsp.Write(app.FS, path, line); err != nil {
				return err
			}
			logging.Logger.Debug("Wrote response file", zap.String("path", path), zap.String("commandLine", line))

			ui.New(cmd.OutOrStdout()).Success("Response file written to %s (run: codebundle @%s)", path, rsp.FileName)
			return nil
		},
	}
}

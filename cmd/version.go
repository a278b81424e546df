package cmd

import (
	"fmt"

	"codebundle/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCmd displays the current version of codebundle.
// The --short flag prints only the version number.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of codebundle",
		Long:  `Display the version, commit and Go toolchain of this codebundle build.`,
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	cmd.Flags().Bool("short", false, "Print the version number only")
	return cmd
}

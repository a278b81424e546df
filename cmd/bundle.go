package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"codebundle/pkg/bundle"
	"codebundle/pkg/logging"
	"codebundle/pkg/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// envPrefix prefixes environment overrides, e.g. BUNDLE_AUTHOR.
const envPrefix = "BUNDLE"

func newBundleCmd(app *App) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Concatenate source files into a single file",
		Long: `Concatenate every source file under the working directory whose extension
matches --language into the --output file.

Every flag can also be set through the environment, e.g. BUNDLE_AUTHOR.`,
		Example: `  codebundle bundle -o all.txt -l all
  codebundle bundle --output src.txt --language py,js --note --sort language -rel
  codebundle @bundle.rsp`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := app.Getwd()
			if err != nil {
				return fmt.Errorf("%w: %v", bundle.ErrDirectoryNotFound, err)
			}

			opts := optionsFrom(v)
			if opts.Output != "" && !filepath.IsAbs(opts.Output) {
				opts.Output = filepath.Join(root, opts.Output)
			}
			cfg, err := bundle.NewConfig(opts)
			if err != nil {
				return err
			}
			logging.Logger.Debug("Resolved configuration",
				zap.String("output", cfg.Output),
				zap.String("language", cfg.Selector.String()),
				zap.String("sort", string(cfg.SortMode)),
				zap.Bool("note", cfg.IncludeNotes),
				zap.Bool("removeEmptyLines", cfg.RemoveEmptyLines))

			b := bundle.New(app.FS, bundle.WithLogger(logging.Logger))
			res, err := b.Run(root, cfg)
			if err != nil {
				return err
			}
			ui.New(cmd.OutOrStdout()).Success("Bundled %d file(s) into %s", len(res.Files), res.Output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "Output file path (required)")
	f.StringP("language", "l", "", "Comma separated extensions, or 'all' (required)")
	f.BoolP("note", "n", false, "Precede each file with a source code comment")
	f.StringP("sort", "s", string(bundle.SortByName), "Sort order: 'name' or 'language'")
	f.Bool("remove-empty-lines", false, "Collapse runs of empty lines (alias: -rel)")
	f.StringP("author", "a", bundle.DefaultAuthor, "Author written in the banner line; empty disables it")
	f.StringArrayP("exclude", "x", nil, "Gitignore-style pattern to skip (repeatable)")
	bindEnv(v, f)

	return cmd
}

// bindEnv resolves every flag through v: explicit flag, then BUNDLE_* variable, then flag default.
func bindEnv(v *viper.Viper, f *pflag.FlagSet) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(f); err != nil {
		panic(err)
	}
}

// optionsFrom reads the raw options. The author stays nil unless set
// explicitly, so an explicit empty value can disable the banner.
func optionsFrom(v *viper.Viper) bundle.Options {
	var author *string
	if v.IsSet("author") {
		a := v.GetString("author")
		author = &a
	}
	return bundle.Options{
		Output:           v.GetString("output"),
		Language:         v.GetString("language"),
		Note:             v.GetBool("note"),
		Sort:             v.GetString("sort"),
		RemoveEmptyLines: v.GetBool("remove-empty-lines"),
		Author:           author,
		Exclude:          v.GetStringSlice("exclude"),
	}
}

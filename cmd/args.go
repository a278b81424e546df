package cmd

import (
	"codebundle/pkg/rsp"
)

// shorthandAliases maps multi-letter single-dash flags, which pflag cannot
// declare, to their long form.
var shorthandAliases = map[string]string{
	"-rel": "--remove-empty-lines",
}

// normalizeArgs expands leading "@file" response files, resolved against
// the working directory, and rewrites multi-letter shorthands.
func normalizeArgs(app *App, args []string) ([]string, error) {
	// Without a working directory relative paths stay as given; the bundle
	// command reports the failure itself.
	dir, _ := app.Getwd()
	expanded, err := rsp.Expand(app.FS, dir, args)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(expanded))
	for _, arg := range expanded {
		if long, ok := shorthandAliases[arg]; ok {
			arg = long
		}
		out = append(out, arg)
	}
	return out, nil
}

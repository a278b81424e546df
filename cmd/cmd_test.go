package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"codebundle/pkg/bundle"
	"codebundle/pkg/prompt"
	"codebundle/pkg/rsp"
	"codebundle/pkg/version"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workDir = "/work"

func newTestApp(t *testing.T, files map[string]string) (*App, *bytes.Buffer) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(workDir, 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, workDir+"/"+name, []byte(content), 0o644))
	}
	var out bytes.Buffer
	return &App{
		FS:     fsys,
		Stdout: &out,
		Getwd:  func() (string, error) { return workDir, nil },
		Prompt: func() (rsp.Answers, error) { return rsp.Answers{}, prompt.ErrAborted },
	}, &out
}

func readFile(t *testing.T, app *App, name string) string {
	t.Helper()
	b, err := afero.ReadFile(app.FS, workDir+"/"+name)
	require.NoError(t, err)
	return string(b)
}

func TestBundle_Success(t *testing.T) {
	app, out := newTestApp(t, map[string]string{"a.py": "x=1", "b.txt": "ignored"})

	code := Run(app, []string{"bundle", "-o", "out.txt", "-l", "py", "-n", "-a", "alice"})
	require.Equal(t, ExitSuccess, code, out.String())
	assert.Equal(t, "// Author: alice\n// Source code: a.py (a.py)\nx=1", readFile(t, app, "out.txt"))
	assert.Contains(t, out.String(), "Bundled 1 file(s) into /work/out.txt")
}

func TestBundle_DefaultAuthor(t *testing.T) {
	app, _ := newTestApp(t, map[string]string{"a.js": "js"})

	require.Equal(t, ExitSuccess, Run(app, []string{"bundle", "--output", "out.txt", "--language", "all"}))
	assert.Equal(t, "// Author: Anonymous\njs", readFile(t, app, "out.txt"))
}

func TestBundle_RemoveEmptyLinesAlias(t *testing.T) {
	app, _ := newTestApp(t, map[string]string{"a.c": "int a;\n\n\nint b;\n"})

	require.Equal(t, ExitSuccess, Run(app, []string{"bundle", "-o", "out.txt", "-l", "c", "-a", "", "-rel"}))
	assert.Equal(t, "int a;\nint b;", readFile(t, app, "out.txt"))
}

func TestBundle_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BUNDLE_LANGUAGE", "py")
	t.Setenv("BUNDLE_AUTHOR", "bob")
	app, _ := newTestApp(t, map[string]string{"a.py": "1", "b.js": "2"})

	require.Equal(t, ExitSuccess, Run(app, []string{"bundle", "-o", "out.txt"}))
	assert.Equal(t, "// Author: bob\n1", readFile(t, app, "out.txt"))

	// Explicit flags win over the environment.
	require.Equal(t, ExitSuccess, Run(app, []string{"bundle", "-o", "out.txt", "-l", "js", "-a", "carol"}))
	assert.Equal(t, "// Author: carol\n2", readFile(t, app, "out.txt"))
}

func TestBundle_AtSignFlagValue(t *testing.T) {
	app, out := newTestApp(t, map[string]string{"a.py": "x=1"})

	code := Run(app, []string{"bundle", "-o", "out.txt", "-l", "py", "-a", "@alice"})
	require.Equal(t, ExitSuccess, code, out.String())
	assert.Equal(t, "// Author: @alice\nx=1", readFile(t, app, "out.txt"))
}

func TestBundle_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing language", []string{"bundle", "-o", "out.txt"}},
		{"missing output", []string{"bundle", "-l", "py"}},
		{"invalid sort", []string{"bundle", "-o", "out.txt", "-l", "py", "-s", "size"}},
		{"unknown flag", []string{"bundle", "-o", "out.txt", "-l", "py", "--bogus"}},
		{"positional argument", []string{"bundle", "-o", "out.txt", "-l", "py", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, map[string]string{"a.py": "x"})

			assert.Equal(t, ExitUsage, Run(app, tt.args))
			assert.Contains(t, out.String(), "Error:")
			exists, _ := afero.Exists(app.FS, workDir+"/out.txt")
			assert.False(t, exists, "no output may be written on a usage error")
		})
	}
}

func TestBundle_MissingOutputDirectory(t *testing.T) {
	app, out := newTestApp(t, map[string]string{"a.py": "x"})

	assert.Equal(t, ExitDirectoryNotFound, Run(app, []string{"bundle", "-o", "missing/out.txt", "-l", "py"}))
	assert.Contains(t, out.String(), "directory not found")
	exists, _ := afero.Exists(app.FS, workDir+"/missing/out.txt")
	assert.False(t, exists)
}

func TestCreateRsp_ThenReplay(t *testing.T) {
	app, out := newTestApp(t, map[string]string{"a.py": "print(1)", "b.js": "js"})
	app.Prompt = func() (rsp.Answers, error) {
		return rsp.Answers{Output: "out.txt", Languages: "py", Note: true, Author: "alice"}, nil
	}

	require.Equal(t, ExitSuccess, Run(app, []string{"create-rsp"}), out.String())
	assert.Equal(t, "bundle --output out.txt --language py --note --author alice\n", readFile(t, app, rsp.FileName))
	exists, _ := afero.Exists(app.FS, workDir+"/out.txt")
	assert.False(t, exists, "create-rsp must not run the bundle")

	require.Equal(t, ExitSuccess, Run(app, []string{"@" + rsp.FileName}), out.String())
	assert.Equal(t, "// Author: alice\n// Source code: a.py (a.py)\nprint(1)", readFile(t, app, "out.txt"))
}

func TestCreateRsp_Aborted(t *testing.T) {
	app, out := newTestApp(t, nil)

	assert.Equal(t, ExitFailure, Run(app, []string{"create-rsp"}))
	assert.Contains(t, out.String(), prompt.ErrAborted.Error())
	exists, _ := afero.Exists(app.FS, workDir+"/"+rsp.FileName)
	assert.False(t, exists)
}

func TestMissingResponseFile(t *testing.T) {
	app, out := newTestApp(t, nil)

	assert.Equal(t, ExitFailure, Run(app, []string{"@nope.rsp"}))
	assert.Contains(t, out.String(), "failed to read response file")
}

func TestVersionShort(t *testing.T) {
	app, out := newTestApp(t, nil)

	require.Equal(t, ExitSuccess, Run(app, []string{"version", "--short"}))
	assert.Equal(t, version.Get().Version+"\n", out.String())
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", fmt.Errorf("%w: missing --output", bundle.ErrUsage), ExitUsage},
		{"directory not found", fmt.Errorf("%w: /gone", bundle.ErrDirectoryNotFound), ExitDirectoryNotFound},
		{"other", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

package rsp

import (
	"testing"

	"codebundle/pkg/bundle"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		in   Answers
		want string
	}{
		{
			name: "every flag",
			in: Answers{
				Output: "out.txt", Languages: "py,js", Note: true,
				Sort: "language", RemoveEmptyLines: true, Author: "alice",
			},
			want: "bundle --output out.txt --language py,js --note --sort language --remove-empty-lines --author alice",
		},
		{
			name: "falsy answers omitted",
			in:   Answers{Output: "out.txt", Languages: "all"},
			want: "bundle --output out.txt --language all",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.CommandLine()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandLine_RequiresOutputAndLanguages(t *testing.T) {
	_, err := Answers{Languages: "py"}.CommandLine()
	assert.ErrorIs(t, err, bundle.ErrUsage)

	_, err = Answers{Output: "out.txt"}.CommandLine()
	assert.ErrorIs(t, err, bundle.ErrUsage)
}

func TestAnswersConfig(t *testing.T) {
	cfg, err := Answers{Output: "/tmp/out.txt", Languages: "py", Sort: "language"}.Config()
	require.NoError(t, err)
	assert.Equal(t, bundle.SortByLanguage, cfg.SortMode)
	assert.Equal(t, bundle.DefaultAuthor, cfg.Author)

	_, err = Answers{Output: "/tmp/out.txt", Languages: "py", Sort: "size"}.Config()
	assert.ErrorIs(t, err, bundle.ErrUsage)
}

func TestWriteThenExpandRoundTrips(t *testing.T) {
	fsys := afero.NewMemMapFs()
	answers := Answers{
		Output:    "my output/all code.txt",
		Languages: "py, js",
		Note:      true,
		Author:    "O'Brien $HOME",
	}
	line, err := answers.CommandLine()
	require.NoError(t, err)
	require.NoError(t, Write(fsys, "/"+FileName, line))

	got, err := Expand(fsys, "/", []string{"@" + FileName, "--verbose"})
	require.NoError(t, err)

	want, err := answers.Args()
	require.NoError(t, err)
	assert.Equal(t, append(want, "--verbose"), got)
}

func TestExpand_PassThrough(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"lone at sign", []string{"bundle", "@", "-o", "x"}},
		{"flag value", []string{"bundle", "-o", "out.txt", "-a", "@alice"}},
		{"after first flag", []string{"--verbose", "@missing.rsp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(afero.NewMemMapFs(), "/work", tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.args, got)
		})
	}
}

func TestExpand_RelativeToDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, Write(fsys, "/work/"+FileName, "bundle -o out.txt -l py"))

	got, err := Expand(fsys, "/work", []string{"@" + FileName})
	require.NoError(t, err)
	assert.Equal(t, []string{"bundle", "-o", "out.txt", "-l", "py"}, got)
}

func TestExpand_MissingFile(t *testing.T) {
	_, err := Expand(afero.NewMemMapFs(), "/work", []string{"@missing.rsp"})
	assert.ErrorContains(t, err, "failed to read response file")
}

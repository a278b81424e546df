// File: pkg/bundle/emit.go
package bundle

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	lineEndings  = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	blankLineRun = regexp.MustCompile(`\n{2,}`)
)

// Emit truncates cfg.Output and writes the optional author banner followed
// by each file, in order, optionally preceded by its provenance line.
// Files are appended as-is with no separator. If the output directory does
// not exist nothing is written; on a later failure the content written so
// far is flushed and left in place.
func (b *Bundler) Emit(root string, files []SelectedFile, cfg Config) (err error) {
	outDir := filepath.Dir(cfg.Output)
	if ok, statErr := afero.DirExists(b.fs, outDir); statErr != nil || !ok {
		b.logger.Error("Output directory is not accessible", zap.String("directory", outDir), zap.Error(statErr))
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, outDir)
	}

	b.logger.Debug("Writing bundle to output file", zap.String("output", cfg.Output), zap.Int("files", len(files)))
	outFile, err := b.fs.OpenFile(cfg.Output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		b.logger.Error("Failed to create output file", zap.String("file", cfg.Output), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	writer := bufio.NewWriter(outFile)
	defer func() {
		err = multierr.Combine(err, writer.Flush(), outFile.Close())
	}()

	if cfg.Author != "" {
		if _, err := fmt.Fprintf(writer, "// Author: %s\n", cfg.Author); err != nil {
			return fmt.Errorf("failed to write author banner: %w", err)
		}
	}

	for _, f := range files {
		content, err := afero.ReadFile(b.fs, f.Path)
		if err != nil {
			b.logger.Error("Failed to read file", zap.String("filePath", f.Path), zap.Error(err))
			return fmt.Errorf("error reading file %s: %w", f.Path, err)
		}

		text := string(content)
		if cfg.RemoveEmptyLines {
			text = CollapseBlankLines(text)
		}
		if cfg.IncludeNotes {
			if _, err := writer.WriteString(ProvenanceLine(root, f.Path) + "\n"); err != nil {
				return fmt.Errorf("failed to write provenance line: %w", err)
			}
		}
		if _, err := writer.WriteString(text); err != nil {
			return fmt.Errorf("failed to write content of %s: %w", f.Path, err)
		}
		b.logger.Debug("Appended file", zap.String("filePath", f.Path), zap.Int("contentSizeBytes", len(text)))
	}
	return nil
}

// ProvenanceLine returns the comment line naming path and its location
// relative to root, with forward slashes.
func ProvenanceLine(root, path string) string {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = path
	}
	return fmt.Sprintf("// Source code: %s (%s)", filepath.Base(path), filepath.ToSlash(relPath))
}

// CollapseBlankLines normalizes line endings to "\n", replaces every run of
// consecutive line breaks with a single one, and drops one trailing line
// break. A run of any length collapses fully, so no empty line survives; it
// does not keep one blank line between paragraphs, so "a\n\n\nb" becomes
// "a\nb". Lines containing only whitespace are kept. Applying it twice gives
// the same result as applying it once.
func CollapseBlankLines(s string) string {
	s = lineEndings.Replace(s)
	s = blankLineRun.ReplaceAllString(s, "\n")
	return strings.TrimSuffix(s, "\n")
}

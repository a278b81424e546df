// File: pkg/bundle/discover.go
package bundle

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"codebundle/pkg/ignore"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// CandidateFile is a discovered file with its extension tag.
type CandidateFile struct {
	Path string // Absolute path as walked.
	Tag  string // Extension tag, see ExtensionTag.
}

// SelectedFile is a candidate that passed the language filter.
type SelectedFile CandidateFile

// errStopWalk ends a walk early when the consumer stops iterating.
var errStopWalk = errors.New("stop walk")

// Discover walks root recursively and yields every file below it, except
// the output file and paths excluded by .bundleignore or cfg.Exclude.
// Each call re-walks the tree. A missing or unreadable root yields a single
// error wrapping ErrDirectoryNotFound; unreadable subdirectories are logged
// and skipped.
func (b *Bundler) Discover(root string, cfg Config) iter.Seq2[CandidateFile, error] {
	root = filepath.Clean(root)
	return func(yield func(CandidateFile, error) bool) {
		if ok, err := afero.DirExists(b.fs, root); err != nil || !ok {
			b.logger.Error("Root directory is not accessible", zap.String("root", root), zap.Error(err))
			yield(CandidateFile{}, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root))
			return
		}

		gi, err := ignore.Load(b.fs, root, cfg.Exclude, b.logger)
		if err != nil {
			yield(CandidateFile{}, fmt.Errorf("failed to load ignore patterns: %w", err))
			return
		}
		b.logger.Debug("Loaded ignore patterns", zap.Int("totalPatterns", gi.Len()))

		output := filepath.Clean(cfg.Output)
		walkErr := afero.Walk(b.fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				if path == root {
					return fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
				}
				b.logger.Warn("Error accessing path during discovery", zap.String("path", path), zap.Error(err))
				return nil
			}

			relPath, _ := filepath.Rel(root, path)
			if info.IsDir() {
				if path != root && gi.Matches(relPath, true) {
					b.logger.Debug("Skipping ignored directory", zap.String("directory", path))
					return filepath.SkipDir
				}
				return nil
			}
			if !info.Mode().IsRegular() || path == output {
				return nil
			}
			if gi.Matches(relPath, false) {
				b.logger.Debug("Skipping ignored file", zap.String("file", path))
				return nil
			}

			if !yield(CandidateFile{Path: path, Tag: ExtensionTag(path)}, nil) {
				return errStopWalk
			}
			return nil
		})
		if walkErr != nil && !errors.Is(walkErr, errStopWalk) {
			yield(CandidateFile{}, walkErr)
		}
	}
}

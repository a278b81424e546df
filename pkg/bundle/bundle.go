// Package bundle concatenates source files from a directory tree into one
// output file. The pipeline runs Discover, Filter, Order and Emit in
// sequence on a validated Config.
package bundle

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Bundler runs the bundle pipeline against a filesystem.
type Bundler struct {
	fs         afero.Fs
	logger     *zap.Logger
	extensions ExtensionSet
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithExtensions replaces the supported extension set.
func WithExtensions(set ExtensionSet) Option {
	return func(b *Bundler) { b.extensions = set }
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bundler) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New returns a Bundler over fsys using SupportedExtensions.
func New(fsys afero.Fs, opts ...Option) *Bundler {
	b := &Bundler{
		fs:         fsys,
		logger:     zap.NewNop(),
		extensions: SupportedExtensions,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Extensions returns the supported extension set in use.
func (b *Bundler) Extensions() ExtensionSet {
	return b.extensions
}

// Result describes a completed run.
type Result struct {
	Output string         // Absolute path of the written file.
	Files  []SelectedFile // Files emitted, in output order.
}

// Run bundles the files under root into cfg.Output.
func (b *Bundler) Run(root string, cfg Config) (Result, error) {
	startTime := time.Now()
	b.logger.Info("Starting bundle", zap.String("root", root), zap.String("output", cfg.Output))

	filter := NewFilter(cfg.Selector, b.extensions)
	b.logger.Debug("Resolved language selector",
		zap.String("selector", cfg.Selector.String()),
		zap.Strings("effective", filter.Extensions().Tags()))

	var selected []SelectedFile
	for candidate, err := range b.Discover(root, cfg) {
		if err != nil {
			return Result{}, fmt.Errorf("failed to discover files: %w", err)
		}
		if !filter.Selects(candidate) {
			continue
		}
		selected = append(selected, SelectedFile(candidate))
	}
	b.logger.Debug("Filtered candidates", zap.Int("selected", len(selected)))

	ordered := Order(selected, cfg.SortMode)

	if err := b.Emit(root, ordered, cfg); err != nil {
		return Result{}, fmt.Errorf("failed to write bundle: %w", err)
	}

	b.logger.Info("Bundle completed",
		zap.String("output", cfg.Output),
		zap.Int("totalFiles", len(ordered)),
		zap.Duration("elapsed", time.Since(startTime)))
	return Result{Output: cfg.Output, Files: ordered}, nil
}

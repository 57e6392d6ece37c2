// Package operation sequences the bulk compile pass and the watch loop.
package operation

import (
	"context"
	"runtime"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tscwatch/pkg/config"
	"github.com/walteh/tscwatch/pkg/pipeline"
	"github.com/walteh/tscwatch/pkg/status"
	"github.com/walteh/tscwatch/pkg/transform"
)

// DefaultPattern selects the files the pipeline compiles.
const DefaultPattern = ".ts"

// 🎯 Operator defines the main interface for pipeline operations
type Operator interface {
	// Compile runs one bulk pass over the root and returns the metrics
	Compile(ctx context.Context) (status.Metrics, error)
	// Watch recompiles individual files as they change, until ctx ends
	Watch(ctx context.Context) error
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Root is the directory tree to compile and watch
	Root string
	// Config is the shared read-only compiler configuration
	Config config.Config
	// Transformer performs the per-file transformation
	Transformer transform.Transformer
	// Registry holds the shared metrics; defaults to a fresh one
	Registry *status.Registry
	// Reporter emits user-facing results; nil means log-only output
	Reporter *status.Reporter
	// Pattern matches source files by their last path component
	Pattern string
	// Jobs bounds concurrent compiles; 0 means unbounded, one goroutine
	// per file
	Jobs int
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root directory is required")
	}
	if opts.Transformer == nil {
		return nil, errors.Errorf("transformer is required")
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}

	dispatcher, err := pipeline.NewDispatcher(pipeline.DispatcherOptions{
		Transformer: opts.Transformer,
		Config:      opts.Config,
		Registry:    opts.Registry,
		Limit:       opts.Jobs,
	})
	if err != nil {
		return nil, errors.Errorf("creating dispatcher: %w", err)
	}

	return &operator{
		root:       opts.Root,
		pattern:    opts.Pattern,
		registry:   opts.Registry,
		reporter:   opts.Reporter,
		dispatcher: dispatcher,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	root       string
	pattern    string
	registry   *status.Registry
	reporter   *status.Reporter
	dispatcher *pipeline.Dispatcher
}

// DefaultJobs is the bound applied when the caller does not choose one.
func DefaultJobs() int {
	return runtime.NumCPU()
}

// 🏃 Run performs the full CLI sequence: one bulk pass, then watching
// indefinitely until ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	op, err := New(opts)
	if err != nil {
		return err
	}
	if _, err := op.Compile(ctx); err != nil {
		return err
	}
	return op.Watch(ctx)
}

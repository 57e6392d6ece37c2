// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/tscwatch/pkg/config"
	"github.com/walteh/tscwatch/pkg/status"
	"github.com/walteh/tscwatch/pkg/transform"
)

// 🔧 DispatcherOptions contains the dependencies of a Dispatcher.
type DispatcherOptions struct {
	// Transformer performs the per-file source transformation
	Transformer transform.Transformer
	// Config is shared read-only by every concurrent job
	Config config.Config
	// Registry receives one metrics update per completed job
	Registry *status.Registry
	// Limit bounds concurrent jobs; 0 means one job per file, unbounded
	Limit int
}

// 🚚 Dispatcher runs one compile job per resolved file and funnels the
// outcomes into a single channel.
type Dispatcher struct {
	transformer transform.Transformer
	config      config.Config
	registry    *status.Registry
	limit       int
}

// 🏭 NewDispatcher creates a dispatcher with the given options.
func NewDispatcher(opts DispatcherOptions) (*Dispatcher, error) {
	if opts.Transformer == nil {
		return nil, errors.Errorf("transformer is required")
	}
	if opts.Registry == nil {
		return nil, errors.Errorf("metrics registry is required")
	}
	return &Dispatcher{
		transformer: opts.Transformer,
		config:      opts.Config,
		registry:    opts.Registry,
		limit:       opts.Limit,
	}, nil
}

// 🚀 Dispatch launches one job per file and returns the result channel.
// The channel is closed after every job has completed; that close is the
// only signal that no further results will arrive. A job's failure is data
// on the channel, never an abort of its siblings.
func (d *Dispatcher) Dispatch(ctx context.Context, jobs []Job) <-chan transform.Outcome {
	// Buffered to job count so no worker ever blocks on a slow consumer.
	results := make(chan transform.Outcome, len(jobs))

	g := &errgroup.Group{}
	if d.limit > 0 {
		g.SetLimit(d.limit)
	}

	for _, job := range jobs {
		job := job // per-iteration copy; required under the go1.21 loop-variable semantics
		g.Go(func() error {
			results <- d.compileOne(ctx, job)
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	return results
}

// 📄 compileOne runs one job: read, transform, write, record. Only the
// transform step is timed. Every error is captured in the outcome.
func (d *Dispatcher) compileOne(ctx context.Context, job Job) transform.Outcome {
	logger := zerolog.Ctx(ctx)

	source, err := os.ReadFile(job.Path)
	if err != nil {
		d.registry.RecordFailure()
		return transform.Outcome{File: job.Path, Err: errors.Errorf("reading source: %w", err)}
	}

	start := time.Now()
	output, err := d.transformer.Transform(ctx, job.Path, source, d.config)
	elapsed := time.Since(start)
	if err != nil {
		d.registry.RecordFailure()
		return transform.Outcome{File: job.Path, Err: errors.Errorf("transforming: %w", err)}
	}

	outPath := OutputPath(job.Path)
	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		d.registry.RecordFailure()
		return transform.Outcome{File: job.Path, Err: errors.Errorf("writing output: %w", err)}
	}

	d.registry.RecordSuccess(elapsed)
	logger.Debug().Str("file", job.Path).Dur("dur", elapsed).Msg("compiled file")

	return transform.Outcome{File: job.Path, Output: outPath, Duration: elapsed}
}

// 📈 Summary tallies one collection run.
type Summary struct {
	Succeeded int
	Failed    int
}

// 🧺 Collect consumes outcomes until the channel closes, classifying each
// into the summary and reporting it. The reporter may be nil.
func Collect(ctx context.Context, results <-chan transform.Outcome, reporter *status.Reporter) Summary {
	logger := zerolog.Ctx(ctx)

	var sum Summary
	for outcome := range results {
		if outcome.Failed() {
			sum.Failed++
			if reporter != nil {
				reporter.FileFailed(outcome.File, outcome.Err)
			} else {
				logger.Warn().Str("file", outcome.File).Err(outcome.Err).Msg("compile failed")
			}
			continue
		}
		sum.Succeeded++
		if reporter != nil {
			reporter.FileCompiled(outcome.File, outcome.Output, outcome.Duration)
		} else {
			logger.Info().
				Str("file", outcome.File).
				Str("output", outcome.Output).
				Dur("dur", outcome.Duration).
				Msg("compiled")
		}
	}
	return sum
}

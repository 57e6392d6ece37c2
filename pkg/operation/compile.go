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

package operation

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tscwatch/pkg/pipeline"
	"github.com/walteh/tscwatch/pkg/status"
)

// Compile implements Operator.Compile: resolve every matching file under the
// root, dispatch all of them, and collect until done. A walk failure on the
// root is fatal and happens before any dispatch; per-file failures are not.
func (o *operator) Compile(ctx context.Context) (status.Metrics, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("root", o.root).Msg("starting compilation")

	entries, err := collectEntries(o.root)
	if err != nil {
		return status.Metrics{}, errors.Errorf("walking root %s: %w", o.root, err)
	}

	jobs := pipeline.ResolveEntries(entries, o.pattern)
	if o.reporter != nil {
		o.reporter.PassStarted(len(jobs))
	}

	results := o.dispatcher.Dispatch(ctx, jobs)
	sum := pipeline.Collect(ctx, results, o.reporter)

	metrics := o.registry.Snapshot()
	if o.reporter != nil {
		o.reporter.PassFinished(sum.Succeeded, sum.Failed, metrics)
	} else {
		logger.Info().
			Int("processed", metrics.FilesProcessed).
			Int("succeeded", sum.Succeeded).
			Int("failed", sum.Failed).
			Dur("total_dur", metrics.TotalDuration).
			Msg("compilation complete")
	}

	return metrics, nil
}

// collectEntries walks the tree producing one Entry per regular file. The
// components are the path split on the OS separator, so resolution sees the
// same shape whether entries come from a walk or a watch event.
func collectEntries(root string) ([]pipeline.Entry, error) {
	sep := string(filepath.Separator)

	var entries []pipeline.Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		entries = append(entries, pipeline.Entry{
			Components: strings.Split(path, sep),
			Separator:  sep,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

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
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tscwatch/pkg/pipeline"
	"github.com/walteh/tscwatch/pkg/watch"
)

// Watch implements Operator.Watch: re-enter the resolve/dispatch/collect
// path for each modified file, with the same shared config as the bulk
// pass. Each event runs in its own goroutine so a slow compile never blocks
// event delivery. Runs until ctx is canceled.
func (o *operator) Watch(ctx context.Context) error {
	ext := watchExt(o.pattern)

	w, err := watch.New(o.root, ext)
	if err != nil {
		return errors.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	if o.reporter != nil {
		o.reporter.WatchStarted(o.root)
	}

	return w.Run(ctx, func(ctx context.Context, path string) {
		go o.compilePath(ctx, path)
	})
}

// compilePath compiles a single changed file through the regular pipeline.
func (o *operator) compilePath(ctx context.Context, path string) {
	sep := string(filepath.Separator)
	entry := pipeline.Entry{
		Components: strings.Split(path, sep),
		Separator:  sep,
	}

	jobs := pipeline.ResolveEntries([]pipeline.Entry{entry}, o.pattern)
	if len(jobs) == 0 {
		return
	}

	results := o.dispatcher.Dispatch(ctx, jobs)
	pipeline.Collect(ctx, results, o.reporter)
}

// watchExt extracts the literal extension the watcher filters on. Glob
// patterns keep their trailing extension when they have one, otherwise the
// watcher forwards everything and resolution does the filtering.
func watchExt(pattern string) string {
	if !strings.ContainsAny(pattern, "*?[{") {
		return pattern
	}
	if ext := filepath.Ext(pattern); !strings.ContainsAny(ext, "*?[{") {
		return ext
	}
	return ""
}

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

// Package watch delivers filtered filesystem modification events for a
// directory tree.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔔 Handler receives the path of one accepted modification event.
type Handler func(ctx context.Context, path string)

// 👀 Watcher watches a directory tree recursively and forwards data
// modifications of files with a configured extension. Creation, deletion,
// rename, and metadata-only events never reach the handler. Rapid repeated
// writes to one file are forwarded as-is, not deduplicated: re-compiling the
// freshest content twice is preferred over missing a change.
type Watcher struct {
	fsw *fsnotify.Watcher
	ext string
}

// 🏭 New creates a watcher rooted at root for files ending in ext
// (e.g. ".ts"). Every existing subdirectory is registered; directories
// created later are registered as they appear.
func New(root, ext string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("creating watcher: %w", err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return errors.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		_ = fsw.Close()
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	return &Watcher{
		fsw: fsw,
		ext: ext,
	}, nil
}

// 🏃 Run delivers accepted events to handler until ctx is canceled or the
// underlying subscription ends. Watcher errors are logged and skipped; they
// never stop the loop.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	logger := zerolog.Ctx(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories extend the watch set. Created files do
				// not trigger a compile until their first write.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						logger.Warn().Str("path", event.Name).Err(err).Msg("cannot watch new directory")
					}
				}
				continue
			}
			if !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.HasSuffix(event.Name, w.ext) {
				continue
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			handler(ctx, event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

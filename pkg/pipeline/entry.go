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

// Package pipeline implements entry resolution and the concurrent
// dispatch/collect machinery of the compile pipeline.
package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// 📦 Entry is an unjoined sequence of path components, a candidate file
// path before filtering. Immutable once constructed.
type Entry struct {
	Components []string
	Separator  string
}

// Last returns the final path component, or "" for an empty entry.
func (e Entry) Last() string {
	if len(e.Components) == 0 {
		return ""
	}
	return e.Components[len(e.Components)-1]
}

// Join joins all components with the entry's separator.
func (e Entry) Join() string {
	return strings.Join(e.Components, e.Separator)
}

// 🎯 Job is a concrete file path selected for transformation.
type Job struct {
	Path string
}

// 🔍 ResolveEntries filters entries down to jobs whose last component
// matches pattern: a doublestar glob when the pattern contains glob
// metacharacters, a suffix match otherwise. Non-matching entries are
// silently dropped. Output order follows input order, but callers must not
// rely on it. No side effects.
func ResolveEntries(entries []Entry, pattern string) []Job {
	jobs := make([]Job, 0, len(entries))
	for _, entry := range entries {
		last := entry.Last()
		if last == "" || !matchLast(pattern, last) {
			continue
		}
		jobs = append(jobs, Job{Path: entry.Join()})
	}
	return jobs
}

// matchLast matches one file name against the target pattern. Glob errors
// from a malformed pattern are treated as non-matches.
func matchLast(pattern, name string) bool {
	if strings.ContainsAny(pattern, "*?[{") {
		ok, err := doublestar.Match(pattern, name)
		return err == nil && ok
	}
	return strings.HasSuffix(name, pattern)
}

// OutputPath derives the JavaScript output path for a source file: same
// path, extension replaced with .js.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".js"
}

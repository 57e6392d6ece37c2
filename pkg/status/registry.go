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

// Package status tracks aggregate compile metrics and reports per-file
// results to the user.
package status

import (
	"sync"
	"time"
)

// 📊 Metrics are the aggregate counters for a pipeline run. Every field is
// monotonically non-decreasing; FilesProcessed always equals successes plus
// failures.
type Metrics struct {
	FilesProcessed int           // completed jobs, success or failure
	TotalDuration  time.Duration // summed transform time of successful jobs
	Errors         int           // failed jobs
}

// 🔧 Registry is the single shared metrics instance for a process. All
// mutation happens under one mutex held for O(1) work.
type Registry struct {
	mu sync.Mutex
	m  Metrics
}

// 🏭 NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RecordSuccess folds one successful job into the counters.
func (r *Registry) RecordSuccess(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.FilesProcessed++
	r.m.TotalDuration += d
}

// RecordFailure folds one failed job into the counters. Failed jobs count as
// processed but contribute no duration.
func (r *Registry) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.FilesProcessed++
	r.m.Errors++
}

// Snapshot returns a consistent point-in-time copy of the counters.
func (r *Registry) Snapshot() Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m
}

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

package status

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, Metrics{}, r.Snapshot())

	r.RecordSuccess(10 * time.Millisecond)
	r.RecordSuccess(5 * time.Millisecond)
	r.RecordFailure()

	m := r.Snapshot()
	assert.Equal(t, 3, m.FilesProcessed)
	assert.Equal(t, 1, m.Errors)
	assert.Equal(t, 15*time.Millisecond, m.TotalDuration)
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()

	const workers = 32
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if (i+j)%4 == 0 {
					r.RecordFailure()
				} else {
					r.RecordSuccess(time.Microsecond)
				}
			}
		}(i)
	}
	wg.Wait()

	m := r.Snapshot()
	assert.Equal(t, workers*perWorker, m.FilesProcessed)
	assert.Equal(t, m.FilesProcessed, m.Errors+int(m.TotalDuration/time.Microsecond))
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.RecordSuccess(time.Millisecond)

	m := r.Snapshot()
	m.FilesProcessed = 99

	assert.Equal(t, 1, r.Snapshot().FilesProcessed)
}

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

// Package transform defines the boundary to the TypeScript-to-JavaScript
// transformation capability and the outcome type produced per file.
package transform

import (
	"context"
	"time"

	"github.com/walteh/tscwatch/pkg/config"
)

// 🔌 Transformer converts TypeScript source text into JavaScript. It is
// opaque to the pipeline: implementations may parse in-process or shell out.
// Implementations must be safe for concurrent use.
type Transformer interface {
	Transform(ctx context.Context, file string, source []byte, cfg config.Config) ([]byte, error)
}

// 📦 Outcome is the tagged result of one compile job. Exactly one Outcome
// is produced per dispatched file, success or failure.
type Outcome struct {
	File     string        // source file path
	Output   string        // output file path, empty on failure
	Duration time.Duration // wall-clock time of the transform step only
	Err      error         // nil on success
}

// Failed reports whether the job ended in failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

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

package transform

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tscwatch/pkg/config"
)

// stderrTailLimit bounds how much compiler stderr ends up in an error message.
const stderrTailLimit = 512

// 🏃 commandRunner abstracts process execution so tests can inject failures.
type commandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ⚙️ SWC invokes an swc-compatible CLI binary, feeding source on stdin and
// reading emitted JavaScript from stdout. The binary itself is treated as
// opaque; config fields are mapped to -C options.
type SWC struct {
	bin    string
	runner commandRunner
}

// 🏭 NewSWC creates a transformer backed by the named binary. An empty name
// selects "swc" from PATH.
func NewSWC(bin string) *SWC {
	if bin == "" {
		bin = "swc"
	}
	return &SWC{
		bin:    bin,
		runner: &execRunner{},
	}
}

// Transform implements Transformer.
func (t *SWC) Transform(ctx context.Context, file string, source []byte, cfg config.Config) ([]byte, error) {
	args := buildArgs(file, cfg)

	stdout, stderr, err := t.runner.Run(ctx, source, t.bin, args...)
	if err != nil {
		return nil, errors.Errorf("running %s on %s: %s: %w", t.bin, file, stderrTail(stderr), err)
	}

	return stdout, nil
}

// buildArgs maps the compiler config onto swc CLI options.
func buildArgs(file string, cfg config.Config) []string {
	return []string{
		"--filename", file,
		"-C", "jsc.parser.syntax=typescript",
		"-C", "jsc.parser.decorators=true",
		"-C", fmt.Sprintf("jsc.target=%s", cfg.Target),
		"-C", fmt.Sprintf("module.type=%s", cfg.Module),
		"-C", fmt.Sprintf("module.strict=%t", cfg.Strict),
		"-C", fmt.Sprintf("jsc.transform.decoratorMetadata=%t", cfg.EmitDecoratorsMetadata),
	}
}

// stderrTail trims compiler noise down to the last chunk of stderr.
func stderrTail(stderr []byte) string {
	s := strings.TrimSpace(string(stderr))
	if s == "" {
		return "no diagnostics"
	}
	if len(s) > stderrTailLimit {
		s = "..." + s[len(s)-stderrTailLimit:]
	}
	return s
}

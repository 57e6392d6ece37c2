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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExplicitPath(t *testing.T) {
	tests := []struct {
		name          string
		filename      string
		content       string
		want          Config
		expectedError string
	}{
		{
			name:     "json_full",
			filename: "config.json",
			content:  `{"target": "es2020", "module": "esm", "strict": false, "emit_decorators_metadata": false}`,
			want: Config{
				Target:                 "es2020",
				Module:                 "esm",
				Strict:                 false,
				EmitDecoratorsMetadata: false,
			},
		},
		{
			name:     "json_partial_keeps_defaults",
			filename: "config.json",
			content:  `{"target": "es2015"}`,
			want: Config{
				Target:                 "es2015",
				Module:                 DefaultModule,
				Strict:                 true,
				EmitDecoratorsMetadata: true,
			},
		},
		{
			name:     "yaml",
			filename: "config.yaml",
			content:  "target: esnext\nmodule: esm\nstrict: true\nemit_decorators_metadata: false\n",
			want: Config{
				Target:                 "esnext",
				Module:                 "esm",
				Strict:                 true,
				EmitDecoratorsMetadata: false,
			},
		},
		{
			name:     "hcl",
			filename: "config.hcl",
			content:  "target = \"es2017\"\nmodule = \"commonjs\"\nstrict = false\n",
			want: Config{
				Target:                 "es2017",
				Module:                 "commonjs",
				Strict:                 false,
				EmitDecoratorsMetadata: true,
			},
		},
		{
			name:          "malformed_json",
			filename:      "config.json",
			content:       `{"target": `,
			expectedError: "parsing config",
		},
		{
			name:     "unknown_extension_parses_as_json",
			filename: "config.conf",
			content:  `{"module": "esm"}`,
			want: Config{
				Target:                 DefaultTarget,
				Module:                 "esm",
				Strict:                 true,
				EmitDecoratorsMetadata: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := Load(context.Background(), path)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadDefaultPath(t *testing.T) {
	tests := []struct {
		name    string
		content *string // nil means no file at the well-known path
		want    Config
	}{
		{
			name:    "missing_file_means_defaults",
			content: nil,
			want:    Default(),
		},
		{
			name:    "malformed_file_means_defaults",
			content: strPtr("{not json"),
			want:    Default(),
		},
		{
			name:    "valid_file_wins",
			content: strPtr(`{"target": "es5"}`),
			want: Config{
				Target:                 "es5",
				Module:                 DefaultModule,
				Strict:                 true,
				EmitDecoratorsMetadata: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), []byte(*tt.content), 0o644))
			}
			chdir(t, dir)

			cfg, err := Load(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestValidateFillsEmptyFields(t *testing.T) {
	cfg := Config{Strict: true}
	cfg.Validate()
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, DefaultModule, cfg.Module)
	assert.True(t, cfg.Strict)
}

func TestString(t *testing.T) {
	assert.Equal(t,
		"target=es2022 module=commonjs strict=true decorator_metadata=true",
		Default().String())
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func strPtr(s string) *string {
	return &s
}

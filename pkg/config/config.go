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

// Package config loads and validates compiler configuration.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📍 DefaultPath is the well-known config file location, resolved relative
// to the working directory. A missing file is not an error.
const DefaultPath = "swc_config.json"

// Defaults for the tag fields of Config.
const (
	DefaultTarget = "es2022"
	DefaultModule = "commonjs"
)

// 📚 Config represents the complete compiler configuration. It is loaded
// once per run and shared read-only by every concurrent worker.
type Config struct {
	Target                 string `json:"target" yaml:"target" hcl:"target,optional"`
	Module                 string `json:"module" yaml:"module" hcl:"module,optional"`
	Strict                 bool   `json:"strict" yaml:"strict" hcl:"strict,optional"`
	EmitDecoratorsMetadata bool   `json:"emit_decorators_metadata" yaml:"emit_decorators_metadata" hcl:"emit_decorators_metadata,optional"`
}

// 🏭 Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Target:                 DefaultTarget,
		Module:                 DefaultModule,
		Strict:                 true,
		EmitDecoratorsMetadata: true,
	}
}

// 🎯 Load loads the configuration from a file. An empty path means the
// well-known default path, where a missing or malformed file silently falls
// back to defaults. An explicitly given path must load cleanly.
func Load(ctx context.Context, path string) (Config, error) {
	logger := zerolog.Ctx(ctx)

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return Config{}, errors.Errorf("reading config file: %w", err)
		}
		logger.Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}

	p := GetParser(path)
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		if explicit {
			return Config{}, errors.Errorf("parsing config: %w", err)
		}
		logger.Warn().Str("path", path).Err(err).Msg("malformed config file, using defaults")
		return Default(), nil
	}

	cfg.Validate()
	logger.Debug().Str("path", path).Str("config", cfg.String()).Msg("loaded configuration")
	return cfg, nil
}

// 🔍 Validate fills empty fields with their defaults.
func (cfg *Config) Validate() {
	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}
	if cfg.Module == "" {
		cfg.Module = DefaultModule
	}
}

// 📝 String returns a string representation of the config.
func (cfg Config) String() string {
	return fmt.Sprintf("target=%s module=%s strict=%t decorator_metadata=%t",
		cfg.Target, cfg.Module, cfg.Strict, cfg.EmitDecoratorsMetadata)
}

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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"listbatch/pkg/batch"
	"listbatch/pkg/imdb"
)

// 🔑 DefaultTokenEnv is the environment variable consulted for the ambient
// session token when the config does not name one
const DefaultTokenEnv = "IMDB_SESSION_TOKEN"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// ⏲️ Delay configures the pause between consecutive items
type Delay struct {
	Enabled    bool `json:"enabled" yaml:"enabled" hcl:"enabled,optional"`
	IntervalMs int  `json:"interval_ms,omitempty" yaml:"interval_ms,omitempty" hcl:"interval_ms,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" hcl:"endpoint,optional"`
	List     string `json:"list,omitempty" yaml:"list,omitempty" hcl:"list,optional"`
	TokenEnv string `json:"token_env,omitempty" yaml:"token_env,omitempty" hcl:"token_env,optional"`
	Input    string `json:"input,omitempty" yaml:"input,omitempty" hcl:"input,optional"`
	Delay    *Delay `json:"delay,omitempty" yaml:"delay,omitempty" hcl:"delay,block"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOrDefault loads the configuration from path, falling back to the
// defaults when the file does not exist. A malformed file is still an error.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		cfg := &Config{}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating default config: %w", err)
		}
		return cfg, nil
	}
	return Load(ctx, path)
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Endpoint == "" {
		cfg.Endpoint = imdb.DefaultEndpoint
	}
	if cfg.TokenEnv == "" {
		cfg.TokenEnv = DefaultTokenEnv
	}

	if cfg.Delay != nil {
		if cfg.Delay.IntervalMs < 0 {
			return errors.Errorf("delay.interval_ms must not be negative")
		}
		if cfg.Delay.Enabled && cfg.Delay.IntervalMs == 0 {
			cfg.Delay.IntervalMs = 1000
		}
	}

	return nil
}

// ⏲️ DelayPolicy converts the configured delay into the runner's policy
func (cfg *Config) DelayPolicy() batch.DelayPolicy {
	if cfg.Delay == nil || !cfg.Delay.Enabled {
		return batch.DelayPolicy{}
	}
	return batch.DelayPolicy{
		Enabled:  true,
		Interval: time.Duration(cfg.Delay.IntervalMs) * time.Millisecond,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	list := cfg.List
	if list == "" {
		list = "<unset>"
	}
	return fmt.Sprintf("%s -> %s", cfg.Endpoint, list)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

func init() {
	Register(&HCLParser{})
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package livestatus

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the engine-wide settings loadable from a yaml document.
type Config struct {
	// LogLevel is one of debug, info, warn, error, off.
	LogLevel string `yaml:"log_level"`
	// MaxQueryTimeSeconds bounds queries that carry no Timelimit: header
	// of their own; zero disables the budget.
	MaxQueryTimeSeconds int `yaml:"max_query_time_seconds"`
}

// DefaultConfig returns the settings used when no config is given.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// MaxQueryTime returns the configured budget as a duration.
func (c Config) MaxQueryTime() time.Duration {
	return time.Duration(c.MaxQueryTimeSeconds) * time.Second
}

// LoadConfig parses a yaml document over the defaults.
func LoadConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("cannot parse config: %w", err)
	}
	if config.MaxQueryTimeSeconds < 0 {
		return Config{}, fmt.Errorf("max_query_time_seconds must not be negative")
	}
	return config, nil
}

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
	"github.com/rulego/livestatus/logger"
	"github.com/rulego/livestatus/table"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger replaces the default logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithDiscardLogger silences all engine logging, mainly for tests.
func WithDiscardLogger() Option {
	return func(e *Engine) {
		e.log = logger.NewDiscardLogger()
	}
}

// WithConfig applies engine-wide settings.
func WithConfig(config Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithTable registers a table during construction.
func WithTable(t table.Table) Option {
	return func(e *Engine) {
		e.tables[t.Name()] = t
	}
}

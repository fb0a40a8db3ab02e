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

package column

import (
	"fmt"

	"github.com/rulego/livestatus/filter"
	"github.com/rulego/livestatus/model"
)

// NullColumn is the placeholder for an unknown column name on a Columns:
// line. Remote sites running older versions may request columns this site
// does not know; those render as empty values instead of failing the
// whole query. Filtering on a NullColumn is refused.
type NullColumn struct {
	name string
}

// NewNull creates a placeholder column for an unknown name.
func NewNull(name string) *NullColumn {
	return &NullColumn{name: name}
}

func (c *NullColumn) Name() string { return c.name }
func (c *NullColumn) Description() string { return "non-existing column" }
func (c *NullColumn) Value(model.Row) any { return "" }
func (c *NullColumn) GetDouble(model.Row) float64 { return 0 }

func (c *NullColumn) CreateFilter(filter.Kind, filter.RelationalOperator, string) (filter.Filter, error) {
	return nil, fmt.Errorf("cannot filter on non-existing column '%s'", c.name)
}

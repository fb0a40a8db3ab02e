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

package output

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Format selects the rendering of the response payload.
type Format int

const (
	// FormatCSV is proper CSV with RFC quoting.
	FormatCSV Format = iota
	// FormatBrokenCSV joins fields with the configured separators and no
	// quoting, the historical default.
	FormatBrokenCSV
	// FormatJSON renders a list of row lists.
	FormatJSON
	// FormatPython3 renders a python3 literal.
	FormatPython3
)

// CSVSeparators are the four single-byte separators of the broken_csv
// format: dataset, field, list, and host-service.
type CSVSeparators struct {
	Dataset     string
	Field       string
	List        string
	HostService string
}

// DefaultCSVSeparators returns the historical defaults.
func DefaultCSVSeparators() CSVSeparators {
	return CSVSeparators{Dataset: "\n", Field: ";", List: ",", HostService: "|"}
}

// Renderer writes result rows in one of the output formats. A row field
// is a string, an int64, a float64, or a []string list value.
type Renderer struct {
	Format     Format
	Separators CSVSeparators
}

// Render writes the header row (when enabled) and all data rows to w.
func (r Renderer) Render(w io.Writer, headers []string, showHeaders bool, rows [][]any) error {
	var all [][]any
	if showHeaders {
		headerRow := make([]any, len(headers))
		for i, h := range headers {
			headerRow[i] = h
		}
		all = append(all, headerRow)
	}
	all = append(all, rows...)

	switch r.Format {
	case FormatCSV:
		return r.renderCSV(w, all)
	case FormatBrokenCSV:
		return r.renderBrokenCSV(w, all)
	case FormatJSON, FormatPython3:
		return r.renderJSON(w, all)
	default:
		return r.renderBrokenCSV(w, all)
	}
}

func (r Renderer) renderBrokenCSV(w io.Writer, rows [][]any) error {
	var sb strings.Builder
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				sb.WriteString(r.Separators.Field)
			}
			sb.WriteString(r.fieldString(field))
		}
		sb.WriteString(r.Separators.Dataset)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r Renderer) renderCSV(w io.Writer, rows [][]any) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, field := range row {
			record[i] = r.fieldString(field)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r Renderer) renderJSON(w io.Writer, rows [][]any) error {
	// Lists nest as JSON arrays; the separator configuration does not
	// apply to structured formats.
	normalized := make([][]any, len(rows))
	for i, row := range rows {
		normalized[i] = make([]any, len(row))
		for j, field := range row {
			normalized[i][j] = normalizeJSONField(field)
		}
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func normalizeJSONField(field any) any {
	if list, ok := field.([]string); ok && list == nil {
		return []string{}
	}
	return field
}

func (r Renderer) fieldString(field any) string {
	switch v := field.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, r.Separators.List)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return cast.ToString(v)
	}
}

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

package lsql

import (
	"errors"
	"strconv"
	"strings"
)

// whitespace is the ASCII whitespace class of the protocol.
const whitespace = " \t\n\v\f\r"

var (
	errMissingArgument     = errors.New("missing argument")
	errExpectedNonNegInt   = errors.New("expected non-negative integer")
	errSuperfluousArgument = errors.New("superfluous argument(s)")
)

// nextStringArgument strips leading whitespace and consumes the next
// maximal non-whitespace run from *line.
func nextStringArgument(line *string) (string, error) {
	rest := strings.TrimLeft(*line, whitespace)
	if rest == "" {
		*line = rest
		return "", errMissingArgument
	}
	end := strings.IndexAny(rest, whitespace)
	if end < 0 {
		end = len(rest)
	}
	*line = rest[end:]
	return rest[:end], nil
}

// nextNonNegativeIntegerArgument consumes the next argument and parses it
// as a base-10 non-negative integer.
func nextNonNegativeIntegerArgument(line *string) (int, error) {
	argument, err := nextStringArgument(line)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(argument)
	if err != nil || value < 0 {
		return 0, errExpectedNonNegInt
	}
	return value, nil
}

// checkNoArguments fails if any non-whitespace residue remains.
func checkNoArguments(line string) error {
	if strings.TrimLeft(line, whitespace) != "" {
		return errSuperfluousArgument
	}
	return nil
}

// skipWhitespace returns line without its leading whitespace. Used before
// taking the rest of a line as an rhs literal; the right side is kept
// verbatim.
func skipWhitespace(line string) string {
	return strings.TrimLeft(line, whitespace)
}

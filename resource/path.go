/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
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

package resource

import (
	"errors"
	"fmt"
	"strings"
)

// Path is the ordered sequence of JSON keys leading to a value.
type Path []string

// String renders the path with "/" separators, the form used in error messages.
func (p Path) String() string {
	return strings.Join(p, "/")
}

func (p Path) join(more ...string) Path {
	out := make(Path, 0, len(p)+len(more))
	out = append(out, p...)
	return append(out, more...)
}

var errEmptySegment = errors.New("empty path segment")

// ParsePath parses a dotted path expression. Keys containing dots are
// written in brackets with single or double quotes:
//
//	Oem.Intel_RackScale.Metrics
//	Actions["#ComposedNode.Reset"].target
func ParsePath(expr string) (Path, error) {
	var (
		p       Path
		needSeg = true
	)
	for i := 0; i < len(expr); {
		switch c := expr[i]; {
		case c == '[':
			if i+1 >= len(expr) || (expr[i+1] != '"' && expr[i+1] != '\'') {
				return nil, fmt.Errorf("path %q: expected a quoted key at offset %d", expr, i)
			}
			quote := expr[i+1]
			end := strings.IndexByte(expr[i+2:], quote)
			if end < 0 {
				return nil, fmt.Errorf("path %q: unterminated quoted key at offset %d", expr, i)
			}
			key := expr[i+2 : i+2+end]
			i += end + 3
			if i >= len(expr) || expr[i] != ']' {
				return nil, fmt.Errorf("path %q: expected ']' at offset %d", expr, i)
			}
			i++
			p = append(p, key)
			needSeg = false
		case c == '.':
			if needSeg {
				return nil, fmt.Errorf("path %q: %w at offset %d", expr, errEmptySegment, i)
			}
			needSeg = true
			i++
		default:
			if !needSeg {
				return nil, fmt.Errorf("path %q: expected '.' or '[' at offset %d", expr, i)
			}
			j := i
			for j < len(expr) && expr[j] != '.' && expr[j] != '[' {
				j++
			}
			p = append(p, expr[i:j])
			needSeg = false
			i = j
		}
	}
	if needSeg {
		return nil, fmt.Errorf("path %q: %w", expr, errEmptySegment)
	}
	return p, nil
}

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

package v21

import (
	"path/filepath"
	"testing"

	"github.com/comcast/rsdfish/resource/resourcetest"
)

const version = "1.0.2"

func newConn(t *testing.T, fixtures map[string]string) *resourcetest.Transport {
	t.Helper()
	conn := resourcetest.NewTransport()
	for path, file := range fixtures {
		conn.AddFile(t, path, filepath.Join("testdata", file))
	}
	return conn
}

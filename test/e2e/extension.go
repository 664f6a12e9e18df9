// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package e2e loads the packed extension in Chrome and runs its self-test.
package e2e

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path/filepath"
	"strings"
)

// selfTestQuery opens the options page with its self-test enabled.
const selfTestQuery = "page=options&test"

func makeExtensionURL(extensionID string, relPath string, queryString string) *url.URL {
	return &url.URL{
		Scheme:   "chrome-extension",
		Host:     extensionID,
		Path:     relPath,
		RawQuery: queryString,
	}
}

// extensionID derives an extension ID from the supplied bytes the way Chrome
// does: the first 128 bits of their SHA-256 hash, with each hex digit mapped
// onto the letters a-p.
func extensionID(data []byte) string {
	sum := sha256.Sum256(data)
	return strings.Map(func(r rune) rune {
		if r >= 'a' {
			return r - 'a' + 'k'
		}
		return r - '0' + 'a'
	}, hex.EncodeToString(sum[:16]))
}

// unpackedExtensionID returns the ID Chrome assigns to an extension loaded
// from dir without a key in its manifest.
func unpackedExtensionID(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return extensionID([]byte(abs)), nil
}

// Copyright 2026 Google LLC
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

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/chrome-webext/go/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderDefault(t *testing.T) {
	out, err := execute(t, "render")
	require.NoError(t, err)

	var m manifest.Manifest
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "WebExt Demo", m.Name)
	assert.Equal(t, "html/options.html?page=options", m.Pages()["options"])
}

func TestRenderToFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "extension.toml")
	require.NoError(t, os.WriteFile(config, []byte(`
name = "Custom"
version = "2.0"

[devtools]
path = "devtools.html"
`), 0o644))
	out := filepath.Join(dir, "manifest.json")

	_, err := execute(t, "render", "--config", config, "--output", out)
	require.NoError(t, err)

	buf, err := os.ReadFile(out)
	require.NoError(t, err)
	var m manifest.Manifest
	require.NoError(t, json.Unmarshal(buf, &m))
	assert.Equal(t, "Custom", m.Name)
	assert.Equal(t, "devtools.html?page=devtools", m.DevtoolsPage)
}

func TestRenderInvalidConfig(t *testing.T) {
	config := filepath.Join(t.TempDir(), "extension.toml")
	require.NoError(t, os.WriteFile(config, []byte(`name = "No version"`), 0o644))

	_, err := execute(t, "render", "-c", config)
	assert.ErrorIs(t, err, manifest.ErrInvalidConfig)
}

func TestPages(t *testing.T) {
	out, err := execute(t, "pages")
	require.NoError(t, err)
	assert.Contains(t, out, "html/options.html?page=options")
	assert.Contains(t, out, "html/devtools.html?page=devtools")
}

func TestPack(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "html"), os.ModePerm))
	require.NoError(t, os.WriteFile(filepath.Join(src, "html", "options.html"), []byte("<html></html>"), 0o644))
	archive := filepath.Join(t.TempDir(), "ext.zip")

	_, err := execute(t, "pack", "--dir", src, "--output", archive)
	require.NoError(t, err)

	dir, cleanup, err := manifest.UnpackTemp(archive)
	require.NoError(t, err)
	defer cleanup()
	assert.FileExists(t, filepath.Join(dir, manifest.FileName))
	assert.FileExists(t, filepath.Join(dir, "html", "options.html"))
}

func TestPackRequiresOutput(t *testing.T) {
	_, err := execute(t, "pack")
	assert.Error(t, err)
}

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

package manifest

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// CleanupFunc can be invoked to cleanup any temporary state.
type CleanupFunc func()

const copyChunkSizeBytes = 4096

// Pack writes a zip archive of the extension in dir to w. The rendered
// manifest is stored first; any manifest.json already in dir is replaced.
// Hidden files and directories are skipped.
func Pack(w io.Writer, dir string, m *Manifest) error {
	zw := zip.NewWriter(w)

	mw, err := zw.Create(FileName)
	if err != nil {
		return fmt.Errorf("Failed to add manifest: %w", err)
	}
	if err := m.Write(mw); err != nil {
		return err
	}

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if name != "." && strings.HasPrefix(path.Base(name), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || name == FileName {
			return nil
		}
		return addFile(zw, p, name)
	})
	if err != nil {
		return fmt.Errorf("Failed to pack %s: %w", dir, err)
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("Failed to add %s: %w", name, err)
	}
	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("Failed to copy %s: %w", name, err)
	}
	return nil
}

// See https://github.com/securego/gosec/issues/324#issuecomment-935927967
func sanitizeArchivePath(dir, fileName string) (string, error) {
	fullPath := filepath.Join(dir, fileName)
	rel, err := filepath.Rel(dir, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("Archive contained unsafe path: %s", fileName)
	}
	return fullPath, nil
}

func extractFile(dir string, f *zip.File) error {
	filePath, err := sanitizeArchivePath(dir, f.Name)
	if err != nil {
		return err
	}

	if f.Mode().IsDir() {
		if merr := os.MkdirAll(filePath, os.ModePerm); merr != nil {
			return fmt.Errorf("Failed to create destination directory %s: %w", filePath, merr)
		}
		return nil
	}
	if merr := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); merr != nil {
		return fmt.Errorf("Failed to create destination directory %s: %w", filepath.Dir(filePath), merr)
	}

	dstFile, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return fmt.Errorf("Failed to open destination file %s: %w", filePath, err)
	}
	defer dstFile.Close()

	archFile, err := f.Open()
	if err != nil {
		return fmt.Errorf("Failed to open source file %s: %w", f.Name, err)
	}
	defer archFile.Close()

	for {
		if _, err := io.CopyN(dstFile, archFile, copyChunkSizeBytes); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("Failed to copy to destination file %s: %w", filePath, err)
		}
	}
}

// UnpackTemp unpacks a packed extension to a temporary directory, and returns
// the directory. The returned cleanup function should be invoked to cleanup
// any temporary state when it is no longer needed.
func UnpackTemp(zipPath string) (string, CleanupFunc, error) {
	dir, err := os.MkdirTemp("", "")
	if err != nil {
		return "", nil, fmt.Errorf("Failed to create temp directory: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	rdr, err := zip.OpenReader(zipPath)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("Failed to open extension file: %w", err)
	}
	defer rdr.Close()

	for _, f := range rdr.File {
		if err := extractFile(dir, f); err != nil {
			cleanup()
			return "", nil, err
		}
	}
	return dir, cleanup, nil
}

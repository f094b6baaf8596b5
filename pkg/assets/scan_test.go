// Copyright 2016-2026, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o700))
		require.NoError(t, os.WriteFile(p, []byte(contents), 0o600))
	}
}

func keys(files []File) []string {
	result := make([]string, len(files))
	for i, f := range files {
		result[i] = f.Key
	}
	return result
}

func TestScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.html":      "<h1>hi</h1>",
		"error.html":      "<h1>missing</h1>",
		"css/site.css":    "body{}",
		"img/logo.png":    "png",
		"docs/a/b/c.json": "{}",
		"LICENSE":         "mit",
	})

	files, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"LICENSE",
		"css/site.css",
		"docs/a/b/c.json",
		"error.html",
		"img/logo.png",
		"index.html",
	}, keys(files))

	byKey := map[string]File{}
	for _, f := range files {
		byKey[f.Key] = f
	}
	assert.Contains(t, byKey["index.html"].ContentType, "text/html")
	assert.Contains(t, byKey["css/site.css"].ContentType, "text/css")
	assert.Equal(t, "image/png", byKey["img/logo.png"].ContentType)
	assert.Equal(t, DefaultContentType, byKey["LICENSE"].ContentType)
	assert.Equal(t, int64(len("<h1>hi</h1>")), byKey["index.html"].Size)
	assert.Equal(t, filepath.Join(filepath.Clean(root), "css", "site.css"), byKey["css/site.css"].Path)
}

func TestScanHonorsIgnoreFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.html":              "",
		"debug.log":               "",
		"notes/todo.log":          "",
		"notes/keep.txt":          "",
		"notes/.pulumiignore":     "*.txt\n",
		"blog/post.txt":           "",
		".git/HEAD":               "ref: refs/heads/main",
		".pulumiignore":           "*.log\n",
		"vendor/.git/config":      "",
		"vendor/lib/lib.js":       "",
		"vendor/lib/lib.test.log": "",
	})

	files, err := Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"blog/post.txt",
		"index.html",
		"vendor/lib/lib.js",
	}, keys(files))
}

func TestScanEmptyDirectory(t *testing.T) {
	t.Parallel()

	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestScanMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading site directory")
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestScanFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"index.html": ""})

	_, err := Scan(filepath.Join(root, "index.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/json", ContentType("data/feed.json"))
	assert.Equal(t, DefaultContentType, ContentType("Makefile"))
	assert.Equal(t, DefaultContentType, ContentType("archive.unknownext"))
}

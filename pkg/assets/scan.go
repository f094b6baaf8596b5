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

// Package assets enumerates the files of a local site directory so that they can be mirrored into
// object storage. Files are reported with the object key they are published under and the content
// type they are served with.
package assets

import (
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"
)

// IgnoreFile is the name of the per-directory file, in .gitignore syntax, listing paths to leave out.
const IgnoreFile = ".pulumiignore"

// DefaultContentType is used when a file's extension has no registered MIME type.
const DefaultContentType = "application/octet-stream"

// File is a single regular file found beneath the scanned root.
type File struct {
	// Key is the path relative to the root, always '/'-separated.
	Key string
	// Path is the file's location on disk.
	Path string
	// ContentType is the MIME type derived from the file extension.
	ContentType string
	// Size is the file size in bytes.
	Size int64
}

// Scan walks root and returns every file that is not excluded, sorted by key. Version control
// directories are always skipped, and each directory may carry an IgnoreFile whose patterns apply to
// it and its descendants.
func Scan(root string) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading site directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("site path %s is not a directory", root)
	}

	files := []File{}
	slashRoot := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(root)), "/")
	if err := scanDirectory(slashRoot, slashRoot, nil, &files); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Key < files[j].Key })
	logging.V(5).Infof("found %d files beneath %s", len(files), root)
	return files, nil
}

// ContentType returns the MIME type for a file name, falling back to DefaultContentType.
func ContentType(name string) string {
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return DefaultContentType
}

func scanDirectory(root, dir string, ignores *ignoreState, files *[]File) error {
	ignoreFilePath := path.Join(dir, IgnoreFile)

	// If there is an ignore file, process it before looking at any child paths.
	if stat, err := os.Stat(filepath.FromSlash(ignoreFilePath)); err == nil && !stat.IsDir() {
		logging.V(9).Infof("processing ignore file in %v", dir)

		ignore, err := newGitIgnoreIgnorer(ignoreFilePath)
		if err != nil {
			return errors.Wrapf(err, "could not read ignore file in %v", dir)
		}

		ignores = ignores.Append(ignore)
	}

	dotGitPath := path.Join(dir, ".git")
	if stat, err := os.Stat(filepath.FromSlash(dotGitPath)); err == nil {
		ignores = ignores.Append(newPathIgnorer(dotGitPath, stat.IsDir()))
	}

	file, err := os.Open(filepath.FromSlash(dir))
	if err != nil {
		return errors.Wrapf(err, "opening %s", dir)
	}
	// No defer because we want to close file as soon as possible (right after we call Readdir).

	infos, err := file.Readdir(-1)
	contract.IgnoreClose(file)
	if err != nil {
		return errors.Wrapf(err, "listing %s", dir)
	}

	for _, info := range infos {
		fullName := path.Join(dir, info.Name())

		if info.Name() == IgnoreFile {
			continue
		}
		if ignores.IsIgnored(fullName) {
			logging.V(9).Infof("skip %v due to ignore file", fullName)
			continue
		}

		// Resolve symlinks (Readdir above calls os.Lstat which does not follow symlinks).
		if info.Mode()&os.ModeSymlink == os.ModeSymlink {
			info, err = os.Stat(filepath.FromSlash(fullName))
			if err != nil {
				return errors.Wrapf(err, "resolving link %s", fullName)
			}
		}

		switch {
		case info.Mode().IsDir():
			if err := scanDirectory(root, fullName, ignores, files); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			key := strings.TrimPrefix(fullName, root+"/")
			*files = append(*files, File{
				Key:         key,
				Path:        filepath.FromSlash(fullName),
				ContentType: ContentType(key),
				Size:        info.Size(),
			})
		default:
			logging.V(9).Infof("ignoring special file %v with mode %v", fullName, info.Mode())
		}
	}

	return nil
}

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
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

type ignorer interface {
	IsIgnored(f string) bool
}

// ignoreState is the stack of ignorers in effect for a directory; nested directories append to it.
type ignoreState struct {
	ignorer ignorer
	next    *ignoreState
}

func (s *ignoreState) Append(i ignorer) *ignoreState {
	return &ignoreState{ignorer: i, next: s}
}

func (s *ignoreState) IsIgnored(f string) bool {
	for cur := s; cur != nil; cur = cur.next {
		if cur.ignorer.IsIgnored(f) {
			return true
		}
	}
	return false
}

// newGitIgnoreIgnorer creates an ignorer from a file in .gitignore syntax. Patterns are matched
// relative to the directory holding the file.
func newGitIgnoreIgnorer(pathToIgnoreFile string) (ignorer, error) {
	gitIgnorer, err := ignore.CompileIgnoreFile(filepath.FromSlash(pathToIgnoreFile))
	if err != nil {
		return nil, err
	}

	return &gitIgnoreIgnorer{root: path.Dir(pathToIgnoreFile) + "/", ignorer: gitIgnorer}, nil
}

type gitIgnoreIgnorer struct {
	root    string
	ignorer *ignore.GitIgnore
}

func (g *gitIgnoreIgnorer) IsIgnored(f string) bool {
	return g.ignorer.MatchesPath(strings.TrimPrefix(f, g.root))
}

// pathIgnorer ignores a single path and, for directories, everything beneath it.
type pathIgnorer struct {
	path  string
	isDir bool
}

func newPathIgnorer(path string, isDir bool) ignorer {
	return &pathIgnorer{path: path, isDir: isDir}
}

func (p *pathIgnorer) IsIgnored(f string) bool {
	if f == p.path {
		return true
	}
	return p.isDir && strings.HasPrefix(f, p.path+"/")
}

// msavariants: a parallel variant caller for multiple sequence alignments.
// Copyright (c) 2021 the msavariants authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/asklepian/msavariants/blob/master/LICENSE.txt>.

package internal

import (
	"os"
	"path/filepath"
)

// FullPathname returns filename as an absolute, cleaned path relative
// to the current working directory.
func FullPathname(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filepath.Clean(filename), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, filename), nil
}

// FileURL returns the file:// URL of filename, or filename itself if
// its full pathname cannot be determined.
func FileURL(filename string) string {
	path, err := FullPathname(filename)
	if err != nil {
		return filename
	}
	return "file://" + filepath.ToSlash(path)
}

/*
Copyright The DrugBank Downloader Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fileutil

import (
	"io"
	"os"
	"path/filepath"
)

// AtomicWriteFile atomically (as atomic as os.Rename allows) writes a file to
// disk. The temporary file is created next to filename so the rename never
// crosses a filesystem boundary. On error nothing is left at filename and the
// temporary file is removed.
func AtomicWriteFile(filename string, reader io.Reader, mode os.FileMode) error {
	dir, name := filepath.Split(filename)
	tempFile, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	if _, err := io.Copy(tempFile, reader); err != nil {
		tempFile.Close()
		os.Remove(tempName)
		return err
	}

	if err := tempFile.Close(); err != nil {
		os.Remove(tempName)
		return err
	}

	if err := os.Chmod(tempName, mode); err != nil {
		os.Remove(tempName)
		return err
	}

	if err := os.Rename(tempName, filename); err != nil {
		// Another writer may have completed the same file first. Content for a
		// given name is immutable here, so the existing file wins.
		if _, statErr := os.Stat(filename); statErr == nil {
			os.Remove(tempName)
			return nil
		}
		os.Remove(tempName)
		return err
	}

	return nil
}

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

// Package archive reads single members out of zip archives.
//
// Release archives are large, so members are always streamed rather than
// loaded into memory, and extraction never reads more than the one member
// asked for.
package archive

import (
	"io"
	"os"
	"path"
	"path/filepath"

	fp "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"

	"github.com/cthoyt/drugbank-downloader/internal/fileutil"
)

// ErrMemberNotFound indicates the archive has no member with the requested name.
var ErrMemberNotFound = errors.New("member not found in archive")

// MemberPath returns where ExtractMember would place the named member.
func MemberPath(destDir, member string) (string, error) {
	return fp.SecureJoin(destDir, path.Base(member))
}

// ExtractMember extracts the named member of the zip archive into destDir and
// returns the path of the written file. The member lands directly in destDir
// under its base name, so names carrying directories cannot escape it.
func ExtractMember(archivePath, member, destDir string) (string, error) {
	src, err := openMember(archivePath, member)
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	target, err := MemberPath(destDir, member)
	if err != nil {
		return "", err
	}

	if err := fileutil.AtomicWriteFile(target, src, 0644); err != nil {
		return "", errors.Wrapf(err, "extracting %q from %s", member, archivePath)
	}

	return filepath.Abs(target)
}

// OpenMember streams the named member of the zip archive. Closing the
// returned reader also closes the archive.
func OpenMember(archivePath, member string) (io.ReadCloser, error) {
	return openMember(archivePath, member)
}

func openMember(archivePath, member string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening archive %s", archivePath)
	}

	for _, f := range r.File {
		if f.Name != member {
			continue
		}
		if f.FileInfo().IsDir() {
			r.Close()
			return nil, errors.Errorf("member %q in %s is a directory", member, archivePath)
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, errors.Wrapf(err, "opening member %q in %s", member, archivePath)
		}
		return &memberReadCloser{member: rc, archive: r}, nil
	}

	r.Close()
	return nil, errors.Wrapf(ErrMemberNotFound, "%q in %s", member, archivePath)
}

// memberReadCloser ties the lifetime of the archive handle to the member stream.
type memberReadCloser struct {
	member  io.ReadCloser
	archive *zip.ReadCloser
}

func (m *memberReadCloser) Read(p []byte) (int, error) {
	return m.member.Read(p)
}

func (m *memberReadCloser) Close() error {
	err := m.member.Close()
	if cerr := m.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

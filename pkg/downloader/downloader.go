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

package downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/cthoyt/drugbank-downloader/internal/fileutil"
	"github.com/cthoyt/drugbank-downloader/pkg/archive"
	"github.com/cthoyt/drugbank-downloader/pkg/drugbankpath"
	"github.com/cthoyt/drugbank-downloader/pkg/getter"
)

const (
	// DefaultURLTemplate builds the archive URL for a release. The {release}
	// token expands to the dashed version form the DrugBank site uses in its
	// release paths, {version} to the version as given.
	DefaultURLTemplate = "https://go.drugbank.com/releases/{release}/downloads/all-full-database"

	// DefaultFilename is the archive name inside a version directory.
	DefaultFilename = "full database.xml.zip"

	// DefaultMember is the database file inside the archive.
	DefaultMember = "full database.xml"

	// DefaultMinArchiveSize separates a real archive from the HTML page the
	// server returns to accounts that are not approved for downloads. Real
	// archives are north of a gigabyte; the page is a few kilobytes.
	DefaultMinArchiveSize = 5 << 20
)

// ErrIneligible indicates the server answered the download request with a
// placeholder page instead of the archive, which happens when the account
// has not been approved for downloads.
var ErrIneligible = errors.New("account is not approved for downloads; request access at https://go.drugbank.com")

// Downloader fetches versioned release archives into a local cache.
//
// The cache is keyed by version: each release lives in its own directory
// under Home, and a file that is already present is never fetched again
// unless Force is set.
type Downloader struct {
	// Out is the location to write progress and warning messages.
	Out io.Writer
	// Getter performs the HTTP requests. A default one is built when nil.
	Getter getter.Getter
	// Home is the cache root. Empty means the standard data directory.
	Home string
	// URLTemplate overrides DefaultURLTemplate.
	URLTemplate string
	// Filename overrides DefaultFilename.
	Filename string
	// Username is the DrugBank account name.
	Username string
	// Password is the DrugBank account password.
	Password string
	// MinArchiveSize rejects completed downloads smaller than this many
	// bytes. Zero means DefaultMinArchiveSize; a negative value disables
	// the check.
	MinArchiveSize int64
	// Force re-downloads and re-extracts even when cached files exist.
	Force bool
	// Lock takes an advisory file lock on the version directory so that
	// concurrent processes do not download the same release twice.
	Lock bool
}

// Ensure returns the path of the archive for the given version, downloading
// it first if it is not already cached. A cache hit touches no network.
func (d *Downloader) Ensure(ctx context.Context, version string) (string, error) {
	if version == "" {
		return "", errors.New("a release version is required")
	}

	versionDir := drugbankpath.VersionDir(d.home(), version)
	if err := os.MkdirAll(versionDir, 0755); err != nil {
		return "", errors.Wrapf(err, "preparing version directory %s", versionDir)
	}

	target := filepath.Join(versionDir, d.filename())
	if !d.Force {
		if _, err := os.Stat(target); err == nil {
			slog.Debug("archive already cached", "path", target)
			return filepath.Abs(target)
		}
	}

	if d.Lock {
		unlock, err := lockVersionDir(ctx, versionDir)
		if err != nil {
			return "", err
		}
		defer unlock()

		// Another process may have finished the download while we waited.
		if !d.Force {
			if _, err := os.Stat(target); err == nil {
				slog.Debug("archive appeared while waiting for the lock", "path", target)
				return filepath.Abs(target)
			}
		}
	}

	if err := d.download(ctx, version, target); err != nil {
		return "", err
	}

	return filepath.Abs(target)
}

// ExtractMember returns the path of the named member of the version's
// archive, extracted next to it. An already extracted member is returned
// as is, without the archive being opened or even present. The empty member
// name means DefaultMember.
func (d *Downloader) ExtractMember(ctx context.Context, version, member string) (string, error) {
	if version == "" {
		return "", errors.New("a release version is required")
	}
	if member == "" {
		member = DefaultMember
	}

	versionDir := drugbankpath.VersionDir(d.home(), version)
	memberPath, err := archive.MemberPath(versionDir, member)
	if err != nil {
		return "", err
	}

	if !d.Force {
		if _, err := os.Stat(memberPath); err == nil {
			slog.Debug("member already extracted", "path", memberPath)
			return filepath.Abs(memberPath)
		}
	}

	archivePath, err := d.Ensure(ctx, version)
	if err != nil {
		return "", err
	}

	return archive.ExtractMember(archivePath, member, versionDir)
}

// Open streams the named member of the version's archive without writing it
// out, downloading the archive first if needed. The caller closes the
// returned reader. The empty member name means DefaultMember.
func (d *Downloader) Open(ctx context.Context, version, member string) (io.ReadCloser, error) {
	if member == "" {
		member = DefaultMember
	}

	archivePath, err := d.Ensure(ctx, version)
	if err != nil {
		return nil, err
	}

	return archive.OpenMember(archivePath, member)
}

// ReleaseURL renders the archive URL for a version: {version} expands to the
// version as given, {release} to its dashed form (5.1.10 becomes 5-1-10).
func (d *Downloader) ReleaseURL(version string) string {
	u := d.urlTemplate()
	u = strings.ReplaceAll(u, "{version}", version)
	u = strings.ReplaceAll(u, "{release}", strings.ReplaceAll(version, ".", "-"))
	return u
}

func (d *Downloader) download(ctx context.Context, version, target string) error {
	u := d.ReleaseURL(version)

	g := d.Getter
	if g == nil {
		g, _ = getter.NewHTTPGetter()
	}

	fmt.Fprintf(d.out(), "Downloading DrugBank %s from %s\n", version, u)

	body, err := g.Get(ctx, u,
		getter.WithURL(u),
		getter.WithBasicAuth(d.Username, d.Password),
	)
	if err != nil {
		return errors.Wrapf(err, "downloading %s", u)
	}
	defer body.Close()

	// Stream to a temporary file first so a failed or interrupted download
	// never leaves a partial file at the final name.
	if err := fileutil.AtomicWriteFile(target, body, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", target)
	}

	if min := d.minArchiveSize(); min > 0 {
		fi, err := os.Stat(target)
		if err != nil {
			return err
		}
		if fi.Size() < min {
			os.Remove(target)
			return errors.Wrapf(ErrIneligible, "server returned %d bytes instead of an archive", fi.Size())
		}
	}

	return nil
}

// lockVersionDir takes an advisory lock inside the version directory,
// waiting up to 30 seconds for another process to let go.
func lockVersionDir(ctx context.Context, versionDir string) (func(), error) {
	lockPath := filepath.Join(versionDir, ".flock")
	fileLock := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, time.Second)
	if err != nil {
		return nil, errors.Wrapf(err, "locking %s", lockPath)
	}
	if !locked {
		slog.Warn("could not lock version directory, continuing without it", "path", lockPath)
		return func() {}, nil
	}
	return func() { _ = fileLock.Unlock() }, nil
}

func (d *Downloader) home() string {
	if d.Home != "" {
		return d.Home
	}
	return drugbankpath.DataPath()
}

func (d *Downloader) filename() string {
	if d.Filename != "" {
		return d.Filename
	}
	return DefaultFilename
}

func (d *Downloader) urlTemplate() string {
	if d.URLTemplate != "" {
		return d.URLTemplate
	}
	return DefaultURLTemplate
}

func (d *Downloader) minArchiveSize() int64 {
	if d.MinArchiveSize == 0 {
		return DefaultMinArchiveSize
	}
	return d.MinArchiveSize
}

func (d *Downloader) out() io.Writer {
	if d.Out != nil {
		return d.Out
	}
	return io.Discard
}

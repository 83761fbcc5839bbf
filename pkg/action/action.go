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

// Package action holds the operations exposed to users of the downloader,
// both through the CLI and as a library. Each operation is a struct whose
// fields are its arguments and whose Run method executes it.
package action

import (
	"context"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/cthoyt/drugbank-downloader/pkg/bioversions"
	"github.com/cthoyt/drugbank-downloader/pkg/cli"
	"github.com/cthoyt/drugbank-downloader/pkg/downloader"
)

// FetchOptions are the settings shared by every operation that may have to
// download an archive.
type FetchOptions struct {
	// Settings is the operating environment. Nil means a fresh cli.New().
	Settings *cli.EnvSettings
	// Out receives progress messages. Nil discards them.
	Out io.Writer
	// Filename overrides the archive file name inside the cache.
	Filename string
	// Timeout bounds the remote version lookup.
	Timeout time.Duration
	// Force re-downloads and re-extracts even when cached files exist.
	Force bool
	// Lock holds an advisory file lock while downloading.
	Lock bool
	// MinArchiveSize mirrors the downloader knob of the same name.
	MinArchiveSize int64
	// Provider overrides how the current version is resolved. Nil means
	// the standard metadata export client.
	Provider bioversions.Provider
}

// AddFlags binds the per-operation flags to the given flagset.
func (o *FetchOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Filename, "filename", o.Filename, "name for the archive inside the cache (default \""+downloader.DefaultFilename+"\")")
	f.DurationVar(&o.Timeout, "timeout", bioversions.DefaultTimeout, "time to wait for the version lookup")
	f.BoolVar(&o.Force, "force", o.Force, "re-download even when the archive is already cached")
	f.BoolVar(&o.Lock, "lock", o.Lock, "hold a file lock while downloading so concurrent runs cooperate")
}

// prepare layers the configuration, resolves the credentials and the version
// to fetch, and builds the downloader that will do the work.
func (o *FetchOptions) prepare(ctx context.Context) (*downloader.Downloader, string, error) {
	s := o.Settings
	if s == nil {
		s = cli.New()
	}
	if err := s.ApplyConfigFile(); err != nil {
		return nil, "", err
	}

	username, password, err := s.Credentials()
	if err != nil {
		return nil, "", err
	}

	version := bioversions.Resolve(ctx, s.Version, o.provider(s))

	d := &downloader.Downloader{
		Out:            o.Out,
		Home:           s.Home,
		URLTemplate:    s.URLTemplate,
		Filename:       o.Filename,
		Username:       username,
		Password:       password,
		MinArchiveSize: o.MinArchiveSize,
		Force:          o.Force,
		Lock:           o.Lock,
	}
	return d, version, nil
}

// provider picks the version provider. An explicitly pinned version never
// needs one, so none is built in that case.
func (o *FetchOptions) provider(s *cli.EnvSettings) bioversions.Provider {
	if o.Provider != nil {
		return o.Provider
	}
	if s.Version != "" {
		return nil
	}

	var opts []bioversions.ClientOption
	if s.VersionsURL != "" {
		opts = append(opts, bioversions.WithBaseURL(s.VersionsURL))
	}
	if o.Timeout > 0 {
		opts = append(opts, bioversions.WithTimeout(o.Timeout))
	}
	return bioversions.NewClient(opts...)
}

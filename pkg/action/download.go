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

package action

import (
	"context"

	"github.com/cthoyt/drugbank-downloader/pkg/cli"
)

// Download is the action for fetching a release archive into the cache.
//
// It provides the implementation of a plain 'drugbank-downloader' run.
type Download struct {
	FetchOptions
}

// NewDownload creates a new Download object with the given settings.
func NewDownload(settings *cli.EnvSettings) *Download {
	return &Download{FetchOptions{Settings: settings}}
}

// Run resolves the version to fetch and returns the local path of its
// archive, downloading it first when it is not already cached.
func (d *Download) Run(ctx context.Context) (string, error) {
	dl, version, err := d.prepare(ctx)
	if err != nil {
		return "", err
	}
	return dl.Ensure(ctx, version)
}

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
	"io"

	"github.com/cthoyt/drugbank-downloader/pkg/cli"
)

// Open is the action for streaming one member file out of a release archive
// without writing it to disk. It has no CLI surface; it exists for library
// callers that feed the document straight into a parser.
type Open struct {
	FetchOptions

	// Member names the file inside the archive. Empty means the full
	// database document.
	Member string
}

// NewOpen creates a new Open object with the given settings.
func NewOpen(settings *cli.EnvSettings) *Open {
	return &Open{FetchOptions: FetchOptions{Settings: settings}}
}

// Run ensures the archive is cached and streams the member out of it.
// The caller is responsible for closing the returned reader.
func (o *Open) Run(ctx context.Context) (io.ReadCloser, error) {
	dl, version, err := o.prepare(ctx)
	if err != nil {
		return nil, err
	}
	return dl.Open(ctx, version, o.Member)
}

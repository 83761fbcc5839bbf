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

// Extract is the action for pulling one member file out of a release
// archive, fetching the archive first when needed.
type Extract struct {
	FetchOptions

	// Member names the file inside the archive. Empty means the full
	// database document.
	Member string
}

// NewExtract creates a new Extract object with the given settings.
func NewExtract(settings *cli.EnvSettings) *Extract {
	return &Extract{FetchOptions: FetchOptions{Settings: settings}}
}

// Run returns the local path of the extracted member. A member that was
// extracted on an earlier run is returned without touching the archive
// or the network.
func (e *Extract) Run(ctx context.Context) (string, error) {
	dl, version, err := e.prepare(ctx)
	if err != nil {
		return "", err
	}
	return dl.ExtractMember(ctx, version, e.Member)
}

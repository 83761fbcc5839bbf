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

// Package bioversions resolves which DrugBank release to fetch when the
// caller does not say. Versions come from a Biopragmatics-style metadata
// export, with a pinned fallback so resolution always produces something
// usable even when the network does not cooperate.
package bioversions

import (
	"context"
	"log/slog"
)

// DefaultVersion is the pinned release used when no version is given and no
// provider can be consulted. It is allowed to go stale; a reachable provider
// always wins.
const DefaultVersion = "5.1.10"

// Provider reports the current DrugBank release version.
type Provider interface {
	CurrentVersion(ctx context.Context) (string, error)
}

// Fixed returns a Provider that always reports v.
func Fixed(v string) Provider {
	return fixedProvider(v)
}

type fixedProvider string

func (p fixedProvider) CurrentVersion(context.Context) (string, error) {
	return string(p), nil
}

// Resolve decides which version to use. An explicit version always wins and
// is passed through untouched. Otherwise the provider is asked once; when it
// fails, or when there is no provider, the pinned DefaultVersion is used.
// Resolve never fails.
func Resolve(ctx context.Context, explicit string, p Provider) string {
	if explicit != "" {
		return explicit
	}
	if p != nil {
		v, err := p.CurrentVersion(ctx)
		if err == nil && v != "" {
			return v
		}
		slog.Debug("version lookup failed, using pinned version", "pin", DefaultVersion, "error", err)
	}
	return DefaultVersion
}

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

package bioversions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/cthoyt/drugbank-downloader/pkg/getter"
)

const (
	// DefaultBaseURL is the Biopragmatics version metadata export.
	DefaultBaseURL = "https://biopragmatics.github.io/bioversions/exports"

	// DefaultPrefix identifies the DrugBank record in the export.
	DefaultPrefix = "drugbank"

	// DefaultTimeout bounds a version lookup. Lookups are small JSON reads,
	// so anything slower than this is treated as unavailable.
	DefaultTimeout = 10 * time.Second
)

// Client queries a version metadata export over HTTP.
type Client struct {
	getter    getter.Getter
	baseURL   string
	prefix    string
	timeout   time.Duration
	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the metadata export location.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithPrefix overrides which record is read from the export.
func WithPrefix(prefix string) ClientOption {
	return func(c *Client) {
		c.prefix = prefix
	}
}

// WithGetter overrides the transport used for the lookup.
func WithGetter(g getter.Getter) ClientOption {
	return func(c *Client) {
		c.getter = g
	}
}

// WithTimeout overrides the lookup timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header sent with the lookup.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient constructs a version metadata client.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		prefix:  DefaultPrefix,
		timeout: DefaultTimeout,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.getter == nil {
		c.getter, _ = getter.NewHTTPGetter()
	}
	return c
}

// versionRecord is one entry of the metadata export.
type versionRecord struct {
	Prefix   string    `json:"prefix"`
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	Releases []release `json:"releases"`
}

type release struct {
	Version string `json:"version"`
	Date    string `json:"date"`
}

// CurrentVersion fetches the record for the configured prefix and returns the
// highest release version it lists. Entries that do not parse as semantic
// versions are skipped; when none parse, the record's top-level version field
// is used instead.
func (c *Client) CurrentVersion(ctx context.Context) (string, error) {
	u := c.url()

	opts := []getter.Option{
		getter.WithURL(u),
		getter.WithTimeout(c.timeout),
		getter.WithAcceptHeader("application/json"),
	}
	if c.userAgent != "" {
		opts = append(opts, getter.WithUserAgent(c.userAgent))
	}

	body, err := c.getter.Get(ctx, u, opts...)
	if err != nil {
		return "", fmt.Errorf("fetching version metadata: %w", err)
	}
	defer body.Close()

	var record versionRecord
	if err := json.NewDecoder(body).Decode(&record); err != nil {
		return "", fmt.Errorf("decoding version metadata: %w", err)
	}
	// Drain so a pooled connection can be reused.
	_, _ = io.Copy(io.Discard, body)

	if v := latestRelease(record.Releases); v != "" {
		return v, nil
	}
	if record.Version != "" {
		return record.Version, nil
	}
	return "", fmt.Errorf("version metadata for %q carries no usable version", c.prefix)
}

func (c *Client) url() string {
	return strings.TrimSuffix(c.baseURL, "/") + "/" + c.prefix + ".json"
}

// latestRelease filters the releases to semantic versions and returns the
// highest one in its original spelling.
func latestRelease(releases []release) string {
	var sv []*semver.Version
	for _, r := range releases {
		if v, err := semver.NewVersion(r.Version); err == nil {
			sv = append(sv, v)
		}
	}
	if len(sv) == 0 {
		return ""
	}

	sort.Sort(sort.Reverse(semver.Collection(sv)))
	return sv[0].Original()
}

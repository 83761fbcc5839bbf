// Copyright The DrugBank Downloader Authors.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

// http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package drugbankpath

import "path/filepath"

// This helper builds paths to the downloader's configuration and data paths.
const lp = lazypath("drugbank")

// ConfigPath returns the path where configuration is stored.
func ConfigPath(elem ...string) string {
	return lp.configPath(elem...)
}

// DataPath returns the path where downloaded releases are stored.
func DataPath(elem ...string) string {
	return lp.dataPath(elem...)
}

// ConfigFile returns the path to the optional configuration file.
func ConfigFile() string {
	return ConfigPath("config.toml")
}

// VersionDir returns the directory holding the artifacts of one release.
// The version is used exactly as given so the same inputs always map to
// the same directory.
func VersionDir(home, version string) string {
	return filepath.Join(home, version)
}

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

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/cthoyt/drugbank-downloader/pkg/drugbankpath/xdg"
)

const (
	// HomeEnvVar is the environment variable that overrides where
	// downloaded releases are stored. When no value is set a default is used.
	HomeEnvVar = "DRUGBANK_HOME"

	// ConfigHomeEnvVar is the environment variable that overrides where
	// configuration is read from. When no value is set a default is used.
	ConfigHomeEnvVar = "DRUGBANK_CONFIG_HOME"
)

// lazypath is a lazy-loaded path buffer for the XDG base directory specification.
type lazypath string

func (l lazypath) path(appEnvVar, xdgEnvVar string, defaultFn func() string, elem ...string) string {

	// There is an order to checking for a path.
	// 1. See if an application specific environment variable has been set.
	// 2. Check if an XDG environment variable is set
	// 3. Fall back to a default
	base := os.Getenv(appEnvVar)
	if base != "" {
		return filepath.Join(base, filepath.Join(elem...))
	}
	base = os.Getenv(xdgEnvVar)
	if base == "" {
		base = defaultFn()
	}
	return filepath.Join(base, string(l), filepath.Join(elem...))
}

// configPath defines the base directory relative to which user specific configuration files should
// be stored.
func (l lazypath) configPath(elem ...string) string {
	return l.path(ConfigHomeEnvVar, xdg.ConfigHomeEnvVar, configHome, filepath.Join(elem...))
}

// dataPath defines the base directory relative to which user specific data files should be stored.
func (l lazypath) dataPath(elem ...string) string {
	return l.path(HomeEnvVar, xdg.DataHomeEnvVar, dataHome, filepath.Join(elem...))
}

// homeDir locates the current user's home directory. An empty string is
// returned when it cannot be determined, which mirrors an unset $HOME.
func homeDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return home
}

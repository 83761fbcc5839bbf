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

/*Package cli describes the operating environment for the DrugBank downloader.

Settings are resolved in layers: command line flags beat environment
variables, environment variables beat the optional config file, and the
config file beats built-in defaults.
*/
package cli

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/cthoyt/drugbank-downloader/pkg/drugbankpath"
)

// ErrMissingCredentials indicates that no DrugBank account is configured.
// Downloads require an approved account; see https://go.drugbank.com.
var ErrMissingCredentials = errors.New("DrugBank credentials are not configured")

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	// Home is the directory where downloaded releases are cached.
	Home string
	// Version pins the release version. Empty means resolve it remotely.
	Version string
	// Username is the DrugBank account name used for downloads.
	Username string
	// Password is the DrugBank account password used for downloads.
	Password string
	// URLTemplate overrides how archive URLs are built from a version.
	URLTemplate string
	// VersionsURL overrides the base URL of the version metadata export.
	VersionsURL string
	// Debug indicates whether verbose output is enabled.
	Debug bool
}

func New() *EnvSettings {
	env := &EnvSettings{
		Home:        envOr("DRUGBANK_HOME", drugbankpath.DataPath()),
		Version:     os.Getenv("DRUGBANK_VERSION"),
		Username:    os.Getenv("DRUGBANK_USERNAME"),
		Password:    os.Getenv("DRUGBANK_PASSWORD"),
		URLTemplate: os.Getenv("DRUGBANK_URL_TEMPLATE"),
		VersionsURL: os.Getenv("DRUGBANK_VERSIONS_URL"),
	}
	env.Debug, _ = strconv.ParseBool(os.Getenv("DRUGBANK_DEBUG"))
	return env
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.Home, "home", s.Home, "directory where downloaded releases are cached")
	fs.StringVar(&s.Version, "version", s.Version, "release version to fetch (default: resolve the current one)")
	fs.StringVar(&s.Username, "username", s.Username, "DrugBank account name")
	fs.StringVar(&s.Password, "password", s.Password, "DrugBank account password")
	fs.StringVar(&s.URLTemplate, "url", s.URLTemplate, "archive URL template with {version} and {release} placeholders")
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
}

// fileConfig is the schema of the optional config file.
type fileConfig struct {
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	URLTemplate string `toml:"url_template"`
}

// ApplyConfigFile fills settings that are still empty from the config file.
// A missing file is fine; a file that cannot be parsed is not. Values set by
// flags or environment variables are never overridden, so calling this after
// flag parsing preserves the documented precedence.
func (s *EnvSettings) ApplyConfigFile() error {
	path := drugbankpath.ConfigFile()

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "parsing config file %s", path)
	}

	if s.Username == "" {
		s.Username = cfg.Username
	}
	if s.Password == "" {
		s.Password = cfg.Password
	}
	if s.URLTemplate == "" {
		s.URLTemplate = cfg.URLTemplate
	}
	return nil
}

// Credentials returns the configured account, or ErrMissingCredentials with
// guidance when either half is absent.
func (s *EnvSettings) Credentials() (username, password string, err error) {
	if s.Username == "" || s.Password == "" {
		return "", "", errors.Wrapf(ErrMissingCredentials,
			"set DRUGBANK_USERNAME and DRUGBANK_PASSWORD or add username and password to %s",
			drugbankpath.ConfigFile())
	}
	return s.Username, s.Password, nil
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

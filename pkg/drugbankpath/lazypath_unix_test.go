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

//go:build !windows && !darwin

package drugbankpath

import (
	"path/filepath"
	"testing"

	"github.com/cthoyt/drugbank-downloader/pkg/drugbankpath/xdg"
)

const (
	appName  = "drugbank"
	testFile = "test.txt"
	lazy     = lazypath(appName)
)

func TestDataPath(t *testing.T) {
	t.Setenv(HomeEnvVar, "")
	t.Setenv(xdg.DataHomeEnvVar, "")

	expected := filepath.Join(homeDir(), ".local", "share", appName, testFile)

	if lazy.dataPath(testFile) != expected {
		t.Errorf("expected '%s', got '%s'", expected, lazy.dataPath(testFile))
	}

	t.Setenv(xdg.DataHomeEnvVar, "/tmp")

	expected = filepath.Join("/tmp", appName, testFile)

	if lazy.dataPath(testFile) != expected {
		t.Errorf("expected '%s', got '%s'", expected, lazy.dataPath(testFile))
	}

	// The application variable wins over XDG and replaces the base
	// entirely, without the app name element.
	t.Setenv(HomeEnvVar, "/opt/releases")

	expected = filepath.Join("/opt/releases", testFile)

	if lazy.dataPath(testFile) != expected {
		t.Errorf("expected '%s', got '%s'", expected, lazy.dataPath(testFile))
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv(ConfigHomeEnvVar, "")
	t.Setenv(xdg.ConfigHomeEnvVar, "")

	expected := filepath.Join(homeDir(), ".config", appName, testFile)

	if lazy.configPath(testFile) != expected {
		t.Errorf("expected '%s', got '%s'", expected, lazy.configPath(testFile))
	}

	t.Setenv(xdg.ConfigHomeEnvVar, "/tmp")

	expected = filepath.Join("/tmp", appName, testFile)

	if lazy.configPath(testFile) != expected {
		t.Errorf("expected '%s', got '%s'", expected, lazy.configPath(testFile))
	}

	t.Setenv(ConfigHomeEnvVar, "/etc/drugbank")

	expected = filepath.Join("/etc/drugbank", testFile)

	if lazy.configPath(testFile) != expected {
		t.Errorf("expected '%s', got '%s'", expected, lazy.configPath(testFile))
	}
}

func TestVersionDir(t *testing.T) {
	got := VersionDir("/data/drugbank", "5.1.10")
	expected := filepath.Join("/data/drugbank", "5.1.10")

	if got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}

	// Same inputs, same answer.
	if VersionDir("/data/drugbank", "5.1.10") != got {
		t.Error("expected VersionDir to be deterministic")
	}
}

func TestConfigFile(t *testing.T) {
	t.Setenv(ConfigHomeEnvVar, "/etc/drugbank")

	expected := filepath.Join("/etc/drugbank", "config.toml")

	if ConfigFile() != expected {
		t.Errorf("expected '%s', got '%s'", expected, ConfigFile())
	}
}

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

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cthoyt/drugbank-downloader/internal/logging"
	"github.com/cthoyt/drugbank-downloader/pkg/action"
	"github.com/cthoyt/drugbank-downloader/pkg/cli"
)

const rootDesc = `
This command downloads a release of the DrugBank full database, stores it in a
local version-keyed cache, and prints the path of the cached archive. Runs
against an already cached version touch neither the network nor the archive.

Downloading DrugBank requires an approved account. Credentials are read from
the DRUGBANK_USERNAME and DRUGBANK_PASSWORD environment variables, or from the
username and password keys of the config file.

When no version is given, the latest release is looked up from the Bioversions
export. If the lookup fails, a pinned known-good version is used instead.

With --extract, a single member is unpacked next to the archive and the path of
the extracted file is printed instead:

    $ drugbank-downloader --extract "full database.xml"
`

func newRootCmd(out io.Writer) *cobra.Command {
	settings := cli.New()
	client := action.NewDownload(settings)
	var extract string

	cmd := &cobra.Command{
		Use:          "drugbank-downloader",
		Short:        "download and cache DrugBank releases",
		Long:         rootDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewLogger(cmd.ErrOrStderr(), func() bool { return settings.Debug })
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			client.Out = cmd.ErrOrStderr()

			var (
				path string
				err  error
			)
			if extract != "" {
				ex := action.NewExtract(settings)
				ex.FetchOptions = client.FetchOptions
				ex.Member = extract
				path, err = ex.Run(cmd.Context())
			} else {
				path, err = client.Run(cmd.Context())
			}
			if err != nil {
				return err
			}

			// The path is the only thing written to stdout so the command
			// composes with shell substitution.
			fmt.Fprintln(out, path)
			return nil
		},
	}

	flags := cmd.Flags()
	settings.AddFlags(flags)
	client.AddFlags(flags)
	flags.StringVar(&extract, "extract", "", "extract this member from the archive and print its path instead of the archive's")

	return cmd
}

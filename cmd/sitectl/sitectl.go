// Copyright 2016-2026, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"

	"github.com/pulumi/static-website/pkg/deploy"
)

// DefaultDeploymentFile is read when --file is not given and it exists.
const DefaultDeploymentFile = "sitectl.yaml"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	stack       string
	file        string
	verbose     int
	logToStderr bool
}

func newSitectlCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "sitectl",
		Short: "Deploy and manage a static website",
		Long: "Deploy and manage a static website.\n" +
			"\n" +
			"sitectl runs the static website program inline through the Pulumi Automation API.\n" +
			"The stack and its configuration are read from a deployment file:\n" +
			"\n" +
			"    project: static-website\n" +
			"    stack: dev\n" +
			"    config:\n" +
			"      domainName: example.com\n" +
			"      aws:region: us-west-2\n" +
			"\n" +
			"Engine progress is streamed to stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitLogging(flags.logToStderr, flags.verbose, false)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.stack, "stack", "s", "",
		"The name of the stack to operate on. Overrides the stack in the deployment file")
	cmd.PersistentFlags().StringVarP(&flags.file, "file", "f", "",
		"The deployment file to read (default \""+DefaultDeploymentFile+"\" if present)")
	cmd.PersistentFlags().IntVarP(&flags.verbose, "verbose", "v", 0,
		"Enable verbose logging (e.g., v=3); anything >3 is very verbose")
	cmd.PersistentFlags().BoolVar(&flags.logToStderr, "logtostderr", false,
		"Log to stderr instead of to files")

	cmd.AddCommand(newPreviewCmd(&flags))
	cmd.AddCommand(newUpCmd(&flags))
	cmd.AddCommand(newRefreshCmd(&flags))
	cmd.AddCommand(newDestroyCmd(&flags))
	cmd.AddCommand(newOutputsCmd(&flags))

	return cmd
}

// openDeployer resolves the deployment named by the flags and opens its stack.
func openDeployer(cmd *cobra.Command, flags *globalFlags) (*deploy.Deployer, error) {
	d, err := resolveDeployment(flags, fileExists)
	if err != nil {
		return nil, err
	}
	return deploy.Open(cmd.Context(), d, cmd.OutOrStdout())
}

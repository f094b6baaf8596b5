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
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pulumi/pulumi/sdk/v3/go/common/apitype"

	"github.com/pulumi/static-website/pkg/deploy"
)

func newPreviewCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show a preview of updates to the site",
		Args:  cobra.NoArgs,
		Run: runCmdFunc(func(cmd *cobra.Command, args []string) error {
			d, err := openDeployer(cmd, flags)
			if err != nil {
				return err
			}
			changes, err := d.Preview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Changes: %s\n", formatChanges(changes))
			return nil
		}),
	}
}

// invalidateFunc creates an invalidation of every path on a distribution.
type invalidateFunc func(ctx context.Context, distributionID string) (string, error)

// invalidateAllIn returns an invalidateFunc whose CloudFront client is configured for region.
func invalidateAllIn(region string) invalidateFunc {
	return func(ctx context.Context, distributionID string) (string, error) {
		inv, err := deploy.NewInvalidator(ctx, region)
		if err != nil {
			return "", err
		}
		return inv.Invalidate(ctx, distributionID, deploy.AllPaths)
	}
}

func newUpCmd(flags *globalFlags) *cobra.Command {
	var invalidate bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Create or update the site",
		Long: "Create or update the site.\n" +
			"\n" +
			"Syncs the site directory into the bucket and brings the certificate, distribution and\n" +
			"DNS records up to date. With --invalidate, the distribution's cache is flushed once the\n" +
			"update has succeeded so that the new content is served immediately.",
		Args: cobra.NoArgs,
		Run: runCmdFunc(func(cmd *cobra.Command, args []string) error {
			dep, err := resolveDeployment(flags, fileExists)
			if err != nil {
				return err
			}
			d, err := deploy.Open(cmd.Context(), dep, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runUp(cmd, d, invalidate, invalidateAllIn(dep.Region()))
		}),
	}

	cmd.Flags().BoolVar(&invalidate, "invalidate", false,
		"Invalidate every cached path on the distribution after a successful update")

	return cmd
}

// upDeployer is the part of the deployer the up command needs.
type upDeployer interface {
	Up(ctx context.Context) (*deploy.Outputs, error)
}

func runUp(cmd *cobra.Command, d upDeployer, invalidate bool, invalidator invalidateFunc) error {
	ctx := cmd.Context()
	outputs, err := d.Up(ctx)
	if err != nil {
		return err
	}
	if err := outputs.Fprint(cmd.OutOrStdout()); err != nil {
		return err
	}
	if !invalidate {
		return nil
	}

	id, err := invalidator(ctx, outputs.DistributionID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created invalidation %s of %s on %s\n", id, deploy.AllPaths,
		outputs.DistributionID)
	return nil
}

func newRefreshCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the site's state from the cloud",
		Args:  cobra.NoArgs,
		Run: runCmdFunc(func(cmd *cobra.Command, args []string) error {
			d, err := openDeployer(cmd, flags)
			if err != nil {
				return err
			}
			return d.Refresh(cmd.Context())
		}),
	}
}

func newDestroyCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy",
		Short: "Delete every resource of the site",
		Args:  cobra.NoArgs,
		Run: runCmdFunc(func(cmd *cobra.Command, args []string) error {
			d, err := openDeployer(cmd, flags)
			if err != nil {
				return err
			}
			return d.Destroy(cmd.Context())
		}),
	}
}

func newOutputsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "outputs",
		Short: "Show the site's outputs",
		Args:  cobra.NoArgs,
		Run: runCmdFunc(func(cmd *cobra.Command, args []string) error {
			d, err := openDeployer(cmd, flags)
			if err != nil {
				return err
			}
			outputs, err := d.Outputs(cmd.Context())
			if err != nil {
				return err
			}
			return outputs.Fprint(cmd.OutOrStdout())
		}),
	}
}

// formatChanges renders a change summary as "create=9 same=1", sorted by operation.
func formatChanges(changes map[apitype.OpType]int) string {
	if len(changes) == 0 {
		return "none"
	}
	ops := make([]string, 0, len(changes))
	for op := range changes {
		ops = append(ops, string(op))
	}
	sort.Strings(ops)

	var s string
	for i, op := range ops {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%d", op, changes[apitype.OpType(op)])
	}
	return s
}

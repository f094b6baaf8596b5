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

package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pulumi/pulumi/sdk/v3/go/auto"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optdestroy"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optpreview"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optrefresh"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optup"
	"github.com/pulumi/pulumi/sdk/v3/go/common/apitype"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"

	"github.com/pulumi/static-website/pkg/website"
)

// ErrUpdateInProgress is returned when another update holds the stack's lock.
var ErrUpdateInProgress = errors.New("another update is currently in progress on this stack")

// Stack is the subset of an Automation API stack the deployer drives.
type Stack interface {
	Name() string
	Preview(ctx context.Context, opts ...optpreview.Option) (auto.PreviewResult, error)
	Up(ctx context.Context, opts ...optup.Option) (auto.UpResult, error)
	Refresh(ctx context.Context, opts ...optrefresh.Option) (auto.RefreshResult, error)
	Destroy(ctx context.Context, opts ...optdestroy.Option) (auto.DestroyResult, error)
	Outputs(ctx context.Context) (auto.OutputMap, error)
}

// Deployer runs one operation at a time against a stack of the website program.
type Deployer struct {
	stack    Stack
	progress io.Writer
}

// NewDeployer wraps an existing stack. Engine progress is streamed to progress.
func NewDeployer(stack Stack, progress io.Writer) *Deployer {
	contract.Assertf(stack != nil, "stack must not be nil")
	if progress == nil {
		progress = io.Discard
	}
	return &Deployer{stack: stack, progress: progress}
}

// Open checks the deployment's website settings, creates or selects its stack with the website program
// inlined, installs the pinned CLI if there is one, and applies the deployment's configuration.
func Open(ctx context.Context, d *Deployment, progress io.Writer) (*Deployer, error) {
	if _, err := d.Settings(); err != nil {
		return nil, fmt.Errorf("configuration of stack %s: %w", d.Stack, err)
	}

	var opts []auto.LocalWorkspaceOption

	if d.PulumiVersion != "" {
		version, err := d.Version()
		if err != nil {
			return nil, err
		}
		logging.V(5).Infof("installing pulumi %s", version)
		cmd, err := auto.InstallPulumiCommand(ctx, &auto.PulumiCommandOptions{Version: version})
		if err != nil {
			return nil, fmt.Errorf("installing pulumi %s: %w", version, err)
		}
		opts = append(opts, auto.Pulumi(cmd))
	}

	logging.V(5).Infof("selecting stack %s in project %s", d.Stack, d.Project)
	stack, err := auto.UpsertStackInlineSource(ctx, d.Stack, d.Project, website.Program, opts...)
	if err != nil {
		return nil, fmt.Errorf("selecting stack %s: %w", d.Stack, err)
	}

	if cfg := d.ConfigMap(); len(cfg) > 0 {
		if err := stack.SetAllConfig(ctx, cfg); err != nil {
			return nil, fmt.Errorf("setting configuration of stack %s: %w", d.Stack, err)
		}
	}

	return NewDeployer(&stack, progress), nil
}

// Preview computes the changes an update would make.
func (d *Deployer) Preview(ctx context.Context) (map[apitype.OpType]int, error) {
	res, err := d.stack.Preview(ctx, optpreview.ProgressStreams(d.progress))
	if err != nil {
		return nil, d.wrap("preview", err)
	}
	return res.ChangeSummary, nil
}

// Up deploys the site and returns its outputs.
func (d *Deployer) Up(ctx context.Context) (*Outputs, error) {
	res, err := d.stack.Up(ctx, optup.ProgressStreams(d.progress))
	if err != nil {
		return nil, d.wrap("update", err)
	}
	logging.V(3).Infof("update of %s finished: %s", d.stack.Name(), res.Summary.Result)
	return ParseOutputs(res.Outputs)
}

// Refresh reconciles the stack's state with the cloud.
func (d *Deployer) Refresh(ctx context.Context) error {
	res, err := d.stack.Refresh(ctx, optrefresh.ProgressStreams(d.progress))
	if err != nil {
		return d.wrap("refresh", err)
	}
	logging.V(3).Infof("refresh of %s finished: %s", d.stack.Name(), res.Summary.Result)
	return nil
}

// Destroy deletes every resource of the site.
func (d *Deployer) Destroy(ctx context.Context) error {
	res, err := d.stack.Destroy(ctx, optdestroy.ProgressStreams(d.progress))
	if err != nil {
		return d.wrap("destroy", err)
	}
	logging.V(3).Infof("destroy of %s finished: %s", d.stack.Name(), res.Summary.Result)
	return nil
}

// Outputs returns the outputs of the last update.
func (d *Deployer) Outputs(ctx context.Context) (*Outputs, error) {
	m, err := d.stack.Outputs(ctx)
	if err != nil {
		return nil, d.wrap("reading outputs", err)
	}
	return ParseOutputs(m)
}

func (d *Deployer) wrap(op string, err error) error {
	if isConcurrentUpdateError(err) {
		return fmt.Errorf("%s of %s: %w", op, d.stack.Name(), ErrUpdateInProgress)
	}
	return fmt.Errorf("%s of %s: %w", op, d.stack.Name(), err)
}

var isConcurrentUpdateError = auto.IsConcurrentUpdateError

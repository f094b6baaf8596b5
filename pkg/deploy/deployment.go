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

// Package deploy drives the static website program through the Pulumi Automation API.
package deploy

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/pulumi/pulumi/sdk/v3/go/auto"

	"github.com/pulumi/static-website/pkg/config"
)

// DefaultProject is the project name used when a deployment file does not set one.
const DefaultProject = "static-website"

// Deployment describes one stack of the website: where it lives and how it is configured.
type Deployment struct {
	Project string `yaml:"project,omitempty"`
	Stack   string `yaml:"stack"`
	// Config holds plain configuration values. Keys without a namespace belong to the project.
	Config map[string]string `yaml:"config,omitempty"`
	// Secrets holds configuration values that are stored encrypted.
	Secrets map[string]string `yaml:"secrets,omitempty"`
	// PulumiVersion pins the CLI used to run operations. When empty the CLI on PATH is used.
	PulumiVersion string `yaml:"pulumiVersion,omitempty"`
}

// LoadDeployment reads and validates a deployment file.
func LoadDeployment(path string) (*Deployment, error) {
	d, err := ReadDeployment(path)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ReadDeployment reads a deployment file and applies defaults without validating it, so that callers can
// fill in fields first.
func ReadDeployment(path string) (*Deployment, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deployment file: %w", err)
	}
	d, err := decodeDeployment(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseDeployment decodes a deployment document, applies defaults and validates the result.
func ParseDeployment(b []byte) (*Deployment, error) {
	d, err := decodeDeployment(b)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeDeployment(b []byte) (*Deployment, error) {
	var d Deployment
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decoding deployment: %w", err)
	}
	if d.Project == "" {
		d.Project = DefaultProject
	}
	return &d, nil
}

// Validate reports every problem with the deployment at once.
func (d *Deployment) Validate() error {
	var result *multierror.Error
	if d.Stack == "" {
		result = multierror.Append(result, fmt.Errorf("missing required field 'stack'"))
	}
	if strings.ContainsAny(d.Project, " /:") {
		result = multierror.Append(result, fmt.Errorf("invalid project name %q", d.Project))
	}
	for _, key := range sortedKeys(d.Secrets) {
		if _, has := d.Config[key]; has {
			result = multierror.Append(result, fmt.Errorf("key %q is set as both config and secret", key))
		}
	}
	if d.PulumiVersion != "" {
		if _, err := d.Version(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Version parses the pinned CLI version. The zero version means no pin.
func (d *Deployment) Version() (semver.Version, error) {
	if d.PulumiVersion == "" {
		return semver.Version{}, nil
	}
	v, err := semver.ParseTolerant(d.PulumiVersion)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid pulumiVersion %q: %w", d.PulumiVersion, err)
	}
	return v, nil
}

// ConfigMap merges plain and secret values into the form the Automation API expects.
func (d *Deployment) ConfigMap() auto.ConfigMap {
	cfg := auto.ConfigMap{}
	for k, v := range d.Config {
		cfg[k] = auto.ConfigValue{Value: v}
	}
	for k, v := range d.Secrets {
		cfg[k] = auto.ConfigValue{Value: v, Secret: true}
	}
	return cfg
}

// RegionKey is the configuration key of the AWS provider's region.
const RegionKey = "aws:region"

// Region returns the AWS region the deployment configures, or "" when it leaves the choice to the
// environment.
func (d *Deployment) Region() string {
	if r, ok := d.Config[RegionKey]; ok {
		return r
	}
	return d.Secrets[RegionKey]
}

// Settings resolves the website settings the deployment configures, so that a bad configuration is
// reported before the engine runs. Keys in the project namespace may be written with or without the
// "<project>:" prefix, and must be keys the program reads. Keys of other namespaces are ignored.
func (d *Deployment) Settings() (*config.Settings, error) {
	var result *multierror.Error

	values := map[string]string{}
	for _, m := range []map[string]string{d.Config, d.Secrets} {
		for _, k := range sortedKeys(m) {
			key, ok := strings.CutPrefix(k, d.Project+":")
			if !ok && strings.Contains(k, ":") {
				continue
			}
			if !slices.Contains(config.Keys, key) {
				msg := fmt.Sprintf("unknown configuration key '%s'", k)
				if s := config.Suggest(key, config.Keys); s != "" {
					msg += fmt.Sprintf("; did you mean '%s'?", s)
				}
				result = multierror.Append(result, errors.New(msg))
				continue
			}
			values[key] = m[k]
		}
	}

	settings, err := config.FromMap(values)
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return settings, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

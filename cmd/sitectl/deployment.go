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
	"os"

	"github.com/pulumi/static-website/pkg/deploy"
)

// resolveDeployment reads the deployment file named by the flags, falling back to the default file when it
// exists and to a bare deployment otherwise. A --stack flag always wins over the file.
func resolveDeployment(flags *globalFlags, exists func(string) bool) (*deploy.Deployment, error) {
	file := flags.file
	if file == "" && exists(DefaultDeploymentFile) {
		file = DefaultDeploymentFile
	}

	d := &deploy.Deployment{Project: deploy.DefaultProject}
	if file != "" {
		var err error
		if d, err = deploy.ReadDeployment(file); err != nil {
			return nil, err
		}
	}

	if flags.stack != "" {
		d.Stack = flags.stack
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"

	"github.com/pulumi/static-website/pkg/deploy"
)

// runCmdFunc wraps an error-returning run func so that failures are printed once, without usage, and the
// process exits with a non-zero code after deferred cleanup in the command has run.
func runCmdFunc(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := run(cmd, args); err != nil {
			logging.V(3).Infof("%s failed: %+v", cmd.CommandPath(), err)
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", errorMessage(err))
			os.Exit(1)
		}
	}
}

// errorMessage returns a message, possibly cleaning up the text if appropriate.
func errorMessage(err error) string {
	if errors.Is(err, deploy.ErrUpdateInProgress) {
		return err.Error() + "\n" +
			"    wait for it to finish, or run 'pulumi cancel' if it was interrupted"
	}
	var multi *multierror.Error
	if !errors.As(err, &multi) {
		return err.Error()
	}

	// Keep the context a wrapping error adds in front of the list.
	prefix, found := strings.CutSuffix(err.Error(), multi.Error())
	if !found {
		prefix = ""
	}

	wr := multi.WrappedErrors()
	if len(wr) == 1 {
		return prefix + errorMessage(wr[0])
	}
	msg := fmt.Sprintf("%s%d errors occurred:", prefix, len(wr))
	for i, werr := range wr {
		msg += fmt.Sprintf("\n    %d) %s", i, errorMessage(werr))
	}
	return msg
}

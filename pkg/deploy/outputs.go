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
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	"github.com/pulumi/pulumi/sdk/v3/go/auto"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/cmdutil"

	"github.com/pulumi/static-website/pkg/website"
)

// Outputs are the stack outputs of a deployed site.
type Outputs struct {
	OriginURL      string
	OriginHostname string
	CDNURL         string
	CDNHostname    string
	BucketName     string
	DistributionID string
	CertificateARN string
}

// ParseOutputs reads the site's outputs out of a stack's output map. Every output must be present and
// be a string.
func ParseOutputs(m auto.OutputMap) (*Outputs, error) {
	var result *multierror.Error
	get := func(name string) string {
		v, has := m[name]
		if !has {
			result = multierror.Append(result, fmt.Errorf("stack has no output %q", name))
			return ""
		}
		s, ok := v.Value.(string)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("output %q is a %T, not a string", name, v.Value))
			return ""
		}
		return s
	}

	out := &Outputs{
		OriginURL:      get(website.OutputOriginURL),
		OriginHostname: get(website.OutputOriginHostname),
		CDNURL:         get(website.OutputCDNURL),
		CDNHostname:    get(website.OutputCDNHostname),
		BucketName:     get(website.OutputBucketName),
		DistributionID: get(website.OutputDistributionID),
		CertificateARN: get(website.OutputCertificateARN),
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// Fprint writes the outputs as a two-column table.
func (o *Outputs) Fprint(w io.Writer) error {
	rows := [][2]string{
		{website.OutputOriginURL, o.OriginURL},
		{website.OutputOriginHostname, o.OriginHostname},
		{website.OutputCDNURL, o.CDNURL},
		{website.OutputCDNHostname, o.CDNHostname},
		{website.OutputBucketName, o.BucketName},
		{website.OutputDistributionID, o.DistributionID},
		{website.OutputCertificateARN, o.CertificateARN},
	}

	table := cmdutil.Table{Headers: []string{"OUTPUT", "VALUE"}}
	for _, row := range rows {
		table.Rows = append(table.Rows, cmdutil.TableRow{Columns: []string{row[0], row[1]}})
	}
	return cmdutil.FprintTable(w, table)
}

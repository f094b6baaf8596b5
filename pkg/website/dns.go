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

package website

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudfront"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/route53"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/pulumi/static-website/pkg/config"
)

func newAliasRecord(ctx *pulumi.Context, name string, settings *config.Settings, cdn *cloudfront.Distribution,
	opts ...pulumi.ResourceOption,
) (*route53.Record, error) {
	return route53.NewRecord(ctx, fmt.Sprintf("%s-route53-cdn-domain-name-record", name), &route53.RecordArgs{
		Name:   pulumi.String(settings.DomainName),
		ZoneId: pulumi.String(settings.HostedZoneID),
		Type:   pulumi.String("A"),
		Aliases: route53.RecordAliasArray{
			&route53.RecordAliasArgs{
				Name:                 cdn.DomainName,
				ZoneId:               cdn.HostedZoneId,
				EvaluateTargetHealth: pulumi.Bool(true),
			},
		},
	}, opts...)
}

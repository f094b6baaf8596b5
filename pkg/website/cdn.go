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
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/pulumi/static-website/pkg/config"
)

// Cache lifetimes, in seconds, shared by every cache behavior.
const (
	MinTTL     = 0
	DefaultTTL = 3600
	MaxTTL     = 86400
)

const (
	// ContentPathPattern is the path pattern of the cookie-less, compressed cache behavior.
	ContentPathPattern = "/*"
	// MinimumProtocolVersion is the oldest TLS policy viewers may negotiate.
	MinimumProtocolVersion = "TLSv1.2_2021"
	// SNIOnly serves the custom certificate to SNI-capable viewers only.
	SNIOnly = "sni-only"
	// RedirectToHTTPS upgrades plain HTTP viewer requests.
	RedirectToHTTPS = "redirect-to-https"
)

var (
	allowedMethods = []string{"GET", "HEAD", "OPTIONS"}
	contentMethods = []string{"GET", "HEAD"}
)

// newDistribution fronts the bucket's website endpoint with CloudFront. The origin is keyed by the
// bucket ARN, and the TLS certificate is taken from the validation so that the distribution waits
// for it.
func newDistribution(ctx *pulumi.Context, name string, settings *config.Settings, bucket *s3.Bucket,
	cert *CertificateChain, opts ...pulumi.ResourceOption,
) (*cloudfront.Distribution, error) {
	originID := bucket.Arn

	return cloudfront.NewDistribution(ctx, fmt.Sprintf("%s-cdn", name), &cloudfront.DistributionArgs{
		Enabled: pulumi.Bool(true),
		Aliases: pulumi.StringArray{pulumi.String(settings.DomainName)},
		Origins: cloudfront.DistributionOriginArray{
			&cloudfront.DistributionOriginArgs{
				OriginId:   originID,
				DomainName: bucket.WebsiteEndpoint,
				// S3 website endpoints only speak HTTP.
				CustomOriginConfig: &cloudfront.DistributionOriginCustomOriginConfigArgs{
					OriginProtocolPolicy: pulumi.String("http-only"),
					HttpPort:             pulumi.Int(80),
					HttpsPort:            pulumi.Int(443),
					OriginSslProtocols:   pulumi.ToStringArray([]string{"TLSv1.2"}),
				},
			},
		},
		DefaultCacheBehavior: &cloudfront.DistributionDefaultCacheBehaviorArgs{
			TargetOriginId:       originID,
			ViewerProtocolPolicy: pulumi.String(RedirectToHTTPS),
			AllowedMethods:       pulumi.ToStringArray(allowedMethods),
			CachedMethods:        pulumi.ToStringArray(allowedMethods),
			MinTtl:               pulumi.Int(MinTTL),
			DefaultTtl:           pulumi.Int(DefaultTTL),
			MaxTtl:               pulumi.Int(MaxTTL),
			ForwardedValues: &cloudfront.DistributionDefaultCacheBehaviorForwardedValuesArgs{
				QueryString: pulumi.Bool(true),
				Cookies: &cloudfront.DistributionDefaultCacheBehaviorForwardedValuesCookiesArgs{
					Forward: pulumi.String("all"),
				},
			},
		},
		OrderedCacheBehaviors: cloudfront.DistributionOrderedCacheBehaviorArray{
			&cloudfront.DistributionOrderedCacheBehaviorArgs{
				PathPattern:          pulumi.String(ContentPathPattern),
				TargetOriginId:       originID,
				ViewerProtocolPolicy: pulumi.String(RedirectToHTTPS),
				AllowedMethods:       pulumi.ToStringArray(allowedMethods),
				CachedMethods:        pulumi.ToStringArray(contentMethods),
				MinTtl:               pulumi.Int(MinTTL),
				DefaultTtl:           pulumi.Int(DefaultTTL),
				MaxTtl:               pulumi.Int(MaxTTL),
				Compress:             pulumi.Bool(true),
				ForwardedValues: &cloudfront.DistributionOrderedCacheBehaviorForwardedValuesArgs{
					QueryString: pulumi.Bool(false),
					Cookies: &cloudfront.DistributionOrderedCacheBehaviorForwardedValuesCookiesArgs{
						Forward: pulumi.String("none"),
					},
				},
			},
		},
		PriceClass: pulumi.String(settings.PriceClass),
		CustomErrorResponses: cloudfront.DistributionCustomErrorResponseArray{
			&cloudfront.DistributionCustomErrorResponseArgs{
				ErrorCode:        pulumi.Int(404),
				ResponseCode:     pulumi.Int(404),
				ResponsePagePath: pulumi.String(settings.ErrorPagePath()),
			},
		},
		Restrictions: &cloudfront.DistributionRestrictionsArgs{
			GeoRestriction: &cloudfront.DistributionRestrictionsGeoRestrictionArgs{
				RestrictionType: pulumi.String("none"),
			},
		},
		Tags: pulumi.StringMap{
			"Environment": pulumi.String(ctx.Stack()),
		},
		ViewerCertificate: &cloudfront.DistributionViewerCertificateArgs{
			AcmCertificateArn:            cert.Validation.CertificateArn,
			CloudfrontDefaultCertificate: pulumi.Bool(false),
			MinimumProtocolVersion:       pulumi.String(MinimumProtocolVersion),
			SslSupportMethod:             pulumi.String(SNIOnly),
		},
	}, opts...)
}

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

// Package website declares the resources of a static website: an S3 bucket serving the site, the
// synced content of a local directory, an ACM certificate validated through Route 53, a CloudFront
// distribution in front of the bucket, and the alias record publishing the distribution on the
// site's domain.
package website

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudfront"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/route53"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/pulumi/static-website/pkg/assets"
	"github.com/pulumi/static-website/pkg/config"
)

// SiteType is the type token of the Site component.
const SiteType = "static-website:index:Site"

// Names of the stack outputs exported by Program.
const (
	OutputOriginURL      = "originURL"
	OutputOriginHostname = "originHostname"
	OutputCDNURL         = "cdnURL"
	OutputCDNHostname    = "cdnHostname"
	OutputBucketName     = "bucketName"
	OutputDistributionID = "distributionId"
	OutputCertificateARN = "certificateArn"
)

// Site is the component that owns every resource of one website.
type Site struct {
	pulumi.ResourceState

	Bucket            *s3.Bucket
	OwnershipControls *s3.BucketOwnershipControls
	PublicAccessBlock *s3.BucketPublicAccessBlock
	Folder            *BucketFolder
	Certificate       *CertificateChain
	Distribution      *cloudfront.Distribution
	AliasRecord       *route53.Record

	OriginURL      pulumi.StringOutput
	OriginHostname pulumi.StringOutput
	CDNURL         pulumi.StringOutput
	CDNHostname    pulumi.StringOutput
}

// Program is the Pulumi program of a website stack. It reads the stack configuration, declares the
// site and exports its outputs.
func Program(ctx *pulumi.Context) error {
	settings, err := config.Load(ctx)
	if err != nil {
		return err
	}

	site, err := NewSite(ctx, settings.DomainName, settings)
	if err != nil {
		return err
	}

	site.Export(ctx)
	return nil
}

// NewSite declares all resources for settings. The content directory is scanned before anything is
// registered, so an unreadable directory fails the program without declaring resources.
func NewSite(ctx *pulumi.Context, name string, settings *config.Settings,
	opts ...pulumi.ResourceOption,
) (*Site, error) {
	contract.Assertf(settings != nil, "settings must not be nil")

	files, err := assets.Scan(settings.Path)
	if err != nil {
		return nil, err
	}

	site := &Site{}
	if err := ctx.RegisterComponentResource(SiteType, name, site, opts...); err != nil {
		return nil, err
	}
	parent := pulumi.Parent(site)

	if err := site.declareStorage(ctx, name, settings, parent); err != nil {
		return nil, err
	}

	site.Folder, err = NewBucketFolder(ctx, fmt.Sprintf("%s-bucket-folder", name), &BucketFolderArgs{
		Path:   settings.Path,
		Files:  files,
		Bucket: site.Bucket,
		Acl:    PublicReadACL,
		After:  []pulumi.Resource{site.OwnershipControls, site.PublicAccessBlock},
	}, parent)
	if err != nil {
		return nil, err
	}

	site.Certificate, err = newCertificateChain(ctx, name, settings, parent)
	if err != nil {
		return nil, err
	}

	site.Distribution, err = newDistribution(ctx, name, settings, site.Bucket, site.Certificate, parent)
	if err != nil {
		return nil, err
	}

	site.AliasRecord, err = newAliasRecord(ctx, name, settings, site.Distribution, parent)
	if err != nil {
		return nil, err
	}

	site.OriginURL = pulumi.Sprintf("http://%s", site.Bucket.WebsiteEndpoint)
	site.OriginHostname = site.Bucket.WebsiteEndpoint
	site.CDNURL = pulumi.Sprintf("https://%s", site.Distribution.DomainName)
	site.CDNHostname = site.Distribution.DomainName

	if err := ctx.RegisterResourceOutputs(site, pulumi.Map{
		OutputOriginURL:      site.OriginURL,
		OutputOriginHostname: site.OriginHostname,
		OutputCDNURL:         site.CDNURL,
		OutputCDNHostname:    site.CDNHostname,
	}); err != nil {
		return nil, err
	}
	return site, nil
}

// Export publishes the site's outputs as stack outputs.
func (s *Site) Export(ctx *pulumi.Context) {
	ctx.Export(OutputOriginURL, s.OriginURL)
	ctx.Export(OutputOriginHostname, s.OriginHostname)
	ctx.Export(OutputCDNURL, s.CDNURL)
	ctx.Export(OutputCDNHostname, s.CDNHostname)
	ctx.Export(OutputBucketName, s.Bucket.Bucket)
	ctx.Export(OutputDistributionID, s.Distribution.ID())
	ctx.Export(OutputCertificateARN, s.Certificate.Validation.CertificateArn)
}

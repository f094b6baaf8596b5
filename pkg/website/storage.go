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

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/pulumi/static-website/pkg/config"
)

// ObjectWriterOwnership lets the uploader of an object own it, which keeps object ACLs in effect.
const ObjectWriterOwnership = "ObjectWriter"

// declareStorage creates the website bucket plus the ownership and public access settings that allow
// public-read objects in it.
func (s *Site) declareStorage(ctx *pulumi.Context, name string, settings *config.Settings,
	opts ...pulumi.ResourceOption,
) error {
	bucket, err := s3.NewBucket(ctx, fmt.Sprintf("%s-bucket", name), &s3.BucketArgs{
		Website: &s3.BucketWebsiteArgs{
			IndexDocument: pulumi.String(settings.IndexDocument),
			ErrorDocument: pulumi.String(settings.ErrorDocument),
		},
	}, opts...)
	if err != nil {
		return err
	}

	ownership, err := s3.NewBucketOwnershipControls(ctx, fmt.Sprintf("%s-ownership-controls", name),
		&s3.BucketOwnershipControlsArgs{
			Bucket: bucket.Bucket,
			Rule: &s3.BucketOwnershipControlsRuleArgs{
				ObjectOwnership: pulumi.String(ObjectWriterOwnership),
			},
		}, opts...)
	if err != nil {
		return err
	}

	publicAccessBlock, err := s3.NewBucketPublicAccessBlock(ctx, fmt.Sprintf("%s-public-access-block", name),
		&s3.BucketPublicAccessBlockArgs{
			Bucket:          bucket.Bucket,
			BlockPublicAcls: pulumi.Bool(false),
		}, opts...)
	if err != nil {
		return err
	}

	s.Bucket, s.OwnershipControls, s.PublicAccessBlock = bucket, ownership, publicAccessBlock
	return nil
}

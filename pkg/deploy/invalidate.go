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
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"
)

// AllPaths matches every object the distribution serves.
const AllPaths = "/*"

// DefaultRegion is used for the CloudFront client when neither the deployment nor the environment
// names a region. CloudFront is global, so any region reaches it.
const DefaultRegion = "us-east-1"

// ErrNoDistribution is returned when there is no distribution to invalidate.
var ErrNoDistribution = errors.New("no distribution id to invalidate")

// CloudFrontAPI is the part of the CloudFront client the invalidator calls.
type CloudFrontAPI interface {
	CreateInvalidation(ctx context.Context, params *cloudfront.CreateInvalidationInput,
		optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)
}

// Invalidator evicts cached content from a distribution after new content has been synced.
type Invalidator struct {
	client CloudFrontAPI
	now    func() time.Time
}

// NewInvalidator builds an invalidator from the default AWS credential chain. A non-empty region takes
// precedence over the environment's; with neither, DefaultRegion is used.
func NewInvalidator(ctx context.Context, region string) (*Invalidator, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	logging.V(5).Infof("using region %s for CloudFront", cfg.Region)
	return NewInvalidatorFromClient(cloudfront.NewFromConfig(cfg)), nil
}

// NewInvalidatorFromClient wraps an existing CloudFront client.
func NewInvalidatorFromClient(client CloudFrontAPI) *Invalidator {
	return &Invalidator{client: client, now: time.Now}
}

// Invalidate requests an invalidation of paths, or of every path when none are given, and returns the
// invalidation's id.
func (i *Invalidator) Invalidate(ctx context.Context, distributionID string, paths ...string) (string, error) {
	if distributionID == "" {
		return "", ErrNoDistribution
	}
	if len(paths) == 0 {
		paths = []string{AllPaths}
	}

	// The caller reference only has to be unique per request.
	ref := strconv.FormatInt(i.now().UnixNano(), 10)
	logging.V(5).Infof("invalidating %v on distribution %s (ref %s)", paths, distributionID, ref)

	out, err := i.client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(distributionID),
		InvalidationBatch: &types.InvalidationBatch{
			CallerReference: aws.String(ref),
			Paths: &types.Paths{
				Quantity: aws.Int32(int32(len(paths))),
				Items:    paths,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("invalidating distribution %s: %w", distributionID, err)
	}
	if out.Invalidation == nil {
		return "", nil
	}
	return aws.ToString(out.Invalidation.Id), nil
}

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
	"path"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/s3"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/pulumi/static-website/pkg/assets"
)

// BucketFolderType is the type token of the BucketFolder component.
const BucketFolderType = "static-website:index:BucketFolder"

// PublicReadACL is the canned ACL that makes synced objects readable by anyone.
const PublicReadACL = "public-read"

// BucketFolderArgs configures a BucketFolder.
type BucketFolderArgs struct {
	// Path is the local directory to mirror.
	Path string
	// Files is the already scanned content of Path. When nil, Path is scanned.
	Files []assets.File
	// Bucket receives the objects.
	Bucket *s3.Bucket
	// Acl is the canned ACL applied to every object.
	Acl string
	// After lists resources that must be applied before any object is uploaded.
	After []pulumi.Resource
}

// BucketFolder mirrors a local directory into a bucket, one object per file.
type BucketFolder struct {
	pulumi.ResourceState

	Objects []*s3.BucketObject

	ObjectCount pulumi.IntOutput
}

// NewBucketFolder declares the objects for every file of args.Path. The component and each object
// depend on args.After, since the engine cannot infer that ordering from the data flow.
func NewBucketFolder(ctx *pulumi.Context, name string, args *BucketFolderArgs,
	opts ...pulumi.ResourceOption,
) (*BucketFolder, error) {
	contract.Assertf(args != nil && args.Bucket != nil, "BucketFolder requires a bucket")

	files := args.Files
	if files == nil {
		var err error
		if files, err = assets.Scan(args.Path); err != nil {
			return nil, err
		}
	}

	folder := &BucketFolder{}
	opts = append(opts, pulumi.DependsOn(args.After))
	if err := ctx.RegisterComponentResource(BucketFolderType, name, folder, opts...); err != nil {
		return nil, err
	}

	contract.IgnoreError(ctx.Log.Info(fmt.Sprintf("syncing %d files from %s", len(files), args.Path),
		&pulumi.LogArgs{Resource: folder}))

	for _, f := range files {
		obj, err := s3.NewBucketObject(ctx, path.Join(name, f.Key), &s3.BucketObjectArgs{
			Bucket:      args.Bucket.Bucket,
			Key:         pulumi.String(f.Key),
			Source:      pulumi.NewFileAsset(f.Path),
			ContentType: pulumi.String(f.ContentType),
			Acl:         pulumi.String(args.Acl),
		},
			pulumi.Parent(folder),
			pulumi.DependsOn(args.After),
			pulumi.DeletedWith(args.Bucket))
		if err != nil {
			return nil, err
		}
		folder.Objects = append(folder.Objects, obj)
	}

	folder.ObjectCount = pulumi.Int(len(folder.Objects)).ToIntOutput()
	if err := ctx.RegisterResourceOutputs(folder, pulumi.Map{
		"path":        pulumi.String(args.Path),
		"objectCount": folder.ObjectCount,
	}); err != nil {
		return nil, err
	}
	return folder, nil
}

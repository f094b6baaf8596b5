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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pulumi/pulumi/sdk/v3/go/common/resource"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

const (
	testProject = "website"
	testStack   = "dev"

	bucketType            = "aws:s3/bucket:Bucket"
	ownershipType         = "aws:s3/bucketOwnershipControls:BucketOwnershipControls"
	publicAccessBlockType = "aws:s3/bucketPublicAccessBlock:BucketPublicAccessBlock"
	objectType            = "aws:s3/bucketObject:BucketObject"
	certificateType       = "aws:acm/certificate:Certificate"
	validationType        = "aws:acm/certificateValidation:CertificateValidation"
	recordType            = "aws:route53/record:Record"
	distributionType      = "aws:cloudfront/distribution:Distribution"
	providerType          = "pulumi:providers:aws"
	getZoneToken          = "aws:route53/getZone:getZone"

	cdnDomain       = "d111111abcdef8.cloudfront.net"
	cdnHostedZoneID = "Z2FDTNDATAQYW2"
	lookedUpZoneID  = "ZLOOKEDUP0001"
)

// registration is one resource seen by the mock monitor.
type registration struct {
	pulumi.MockResourceArgs

	Outputs resource.PropertyMap
}

// Dependencies returns the names of the resources this registration explicitly depends on.
func (r registration) Dependencies() []string {
	if r.RegisterRPC == nil {
		return nil
	}
	var names []string
	for _, urn := range r.RegisterRPC.GetDependencies() {
		names = append(names, string(resource.URN(urn).Name()))
	}
	return names
}

// testMonitor fabricates provider outputs for the AWS resources the site declares and records every
// registration and invoke.
type testMonitor struct {
	mu            sync.Mutex
	registrations []registration
	calls         []pulumi.MockCallArgs

	zoneErr error
}

func (m *testMonitor) NewResource(args pulumi.MockResourceArgs) (string, resource.PropertyMap, error) {
	outputs := args.Inputs.Copy()

	switch args.TypeToken {
	case bucketType:
		name := args.Name + "-4f2a9c1"
		outputs["bucket"] = resource.NewStringProperty(name)
		outputs["arn"] = resource.NewStringProperty("arn:aws:s3:::" + name)
		outputs["websiteEndpoint"] = resource.NewStringProperty(name + ".s3-website-us-west-2.amazonaws.com")
	case certificateType:
		domain := args.Inputs["domainName"].StringValue()
		outputs["arn"] = resource.NewStringProperty("arn:aws:acm:us-east-1:123456789012:certificate/" + args.Name)
		outputs["domainValidationOptions"] = resource.NewArrayProperty([]resource.PropertyValue{
			resource.NewObjectProperty(resource.PropertyMap{
				"domainName":          resource.NewStringProperty(domain),
				"resourceRecordName":  resource.NewStringProperty("_3639ac514e785e898d2646601fa951d5." + domain + "."),
				"resourceRecordType":  resource.NewStringProperty("CNAME"),
				"resourceRecordValue": resource.NewStringProperty("_98d2646601fa951d5.mhbtsbpdnt.acm-validations.aws."),
			}),
		})
	case recordType:
		outputs["fqdn"] = args.Inputs["name"]
	case validationType:
		outputs["certificateArn"] = args.Inputs["certificateArn"]
	case distributionType:
		outputs["domainName"] = resource.NewStringProperty(cdnDomain)
		outputs["hostedZoneId"] = resource.NewStringProperty(cdnHostedZoneID)
		outputs["arn"] = resource.NewStringProperty("arn:aws:cloudfront::123456789012:distribution/E2QWRUHAPOMQZL")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations = append(m.registrations, registration{MockResourceArgs: args, Outputs: outputs})

	return args.Name + "_id", outputs, nil
}

func (m *testMonitor) Call(args pulumi.MockCallArgs) (resource.PropertyMap, error) {
	m.mu.Lock()
	m.calls = append(m.calls, args)
	m.mu.Unlock()

	if args.Token == getZoneToken {
		if m.zoneErr != nil {
			return nil, m.zoneErr
		}
		return resource.PropertyMap{
			"zoneId":      resource.NewStringProperty(lookedUpZoneID),
			"name":        args.Args["name"],
			"privateZone": resource.NewBoolProperty(false),
		}, nil
	}
	return resource.PropertyMap{}, nil
}

// ofType returns the registrations of the given type token in registration order.
func (m *testMonitor) ofType(typ string) []registration {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []registration
	for _, r := range m.registrations {
		if r.TypeToken == typ {
			result = append(result, r)
		}
	}
	return result
}

// one returns the only registration of the given type, failing the test if there is not exactly one.
func (m *testMonitor) one(t require.TestingT, typ string) registration {
	regs := m.ofType(typ)
	require.Len(t, regs, 1, typ)
	return regs[0]
}

func (m *testMonitor) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.registrations)
}

// withConfig sets the raw stack configuration of a mocked run. Keys without a namespace are relative to
// the test project.
func withConfig(values map[string]string) pulumi.RunOption {
	return func(info *pulumi.RunInfo) {
		info.Config = map[string]string{}
		for k, v := range values {
			if !strings.Contains(k, ":") {
				k = testProject + ":" + k
			}
			info.Config[k] = v
		}
	}
}

// run runs body against the monitor with the given configuration.
func (m *testMonitor) run(body pulumi.RunFunc, values map[string]string) error {
	return pulumi.RunErr(body, pulumi.WithMocks(testProject, testStack, m), withConfig(values))
}

// runProgram runs body against a fresh monitor with the given configuration.
func runProgram(body pulumi.RunFunc, values map[string]string) (*testMonitor, error) {
	mocks := &testMonitor{}
	return mocks, mocks.run(body, values)
}

// newSiteDir writes a small site into a temporary directory.
func newSiteDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, contents := range map[string]string{
		"index.html":   "<h1>Hello</h1>",
		"error.html":   "<h1>Not found</h1>",
		"css/site.css": "body { margin: 0 }",
	} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o700))
		require.NoError(t, os.WriteFile(p, []byte(contents), 0o600))
	}
	return dir
}

var errZoneNotFound = errors.New("no matching Route 53 Hosted Zone found")

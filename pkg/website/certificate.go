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

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/acm"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/route53"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/pulumi/static-website/pkg/config"
)

const (
	// DNSValidation asks ACM to prove domain ownership through a DNS record.
	DNSValidation = "DNS"
	// ValidationRecordTTL is the TTL, in seconds, of the published validation record.
	ValidationRecordTTL = 60
)

// CertificateChain holds the resources that take a certificate from requested to validated.
type CertificateChain struct {
	// Provider pins the certificate to the configured region.
	Provider *aws.Provider
	// Certificate is the ACM request.
	Certificate *acm.Certificate
	// ValidationRecord publishes the first domain validation option.
	ValidationRecord *route53.Record
	// Validation completes once ACM has seen the validation record.
	Validation *acm.CertificateValidation
}

func newCertificateChain(ctx *pulumi.Context, name string, settings *config.Settings,
	opts ...pulumi.ResourceOption,
) (*CertificateChain, error) {
	// An explicit provider does not inherit the stack's aws: settings.
	providerArgs := &aws.ProviderArgs{
		Region: pulumi.String(settings.CertificateRegion),
	}
	if settings.AWSProfile != "" {
		providerArgs.Profile = pulumi.String(settings.AWSProfile)
	}
	provider, err := aws.NewProvider(ctx, fmt.Sprintf("%s-%s", name, settings.CertificateRegion), providerArgs, opts...)
	if err != nil {
		return nil, err
	}
	regional := append([]pulumi.ResourceOption{pulumi.Provider(provider)}, opts...)

	cert, err := acm.NewCertificate(ctx, fmt.Sprintf("%s-certificate", name), &acm.CertificateArgs{
		DomainName:       pulumi.String(settings.DomainName),
		ValidationMethod: pulumi.String(DNSValidation),
	}, regional...)
	if err != nil {
		return nil, err
	}

	zone, err := route53.LookupZone(ctx, &route53.LookupZoneArgs{
		Name:        pulumi.StringRef(settings.DomainName),
		PrivateZone: pulumi.BoolRef(false),
	})
	if err != nil {
		return nil, fmt.Errorf("looking up hosted zone for %s: %w", settings.DomainName, err)
	}

	option := cert.DomainValidationOptions.Index(pulumi.Int(0))
	record, err := route53.NewRecord(ctx, fmt.Sprintf("%s-route53-certificate-validation-record", name),
		&route53.RecordArgs{
			ZoneId:         pulumi.String(zone.ZoneId),
			Name:           option.ResourceRecordName().Elem(),
			Type:           option.ResourceRecordType().Elem(),
			Records:        pulumi.StringArray{option.ResourceRecordValue().Elem()},
			Ttl:            pulumi.Int(ValidationRecordTTL),
			AllowOverwrite: pulumi.Bool(true),
		}, opts...)
	if err != nil {
		return nil, err
	}

	validation, err := acm.NewCertificateValidation(ctx, fmt.Sprintf("%s-certificate-validation", name),
		&acm.CertificateValidationArgs{
			CertificateArn:        cert.Arn,
			ValidationRecordFqdns: pulumi.StringArray{record.Fqdn},
		}, regional...)
	if err != nil {
		return nil, err
	}

	return &CertificateChain{
		Provider:         provider,
		Certificate:      cert,
		ValidationRecord: record,
		Validation:       validation,
	}, nil
}

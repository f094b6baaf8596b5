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

// Package config reads the website's stack configuration and applies defaults.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/idna"

	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// Configuration keys, relative to the project namespace.
const (
	KeyPath              = "path"
	KeyIndexDocument     = "indexDocument"
	KeyErrorDocument     = "errorDocument"
	KeyDomainName        = "domainName"
	KeyHostedZoneID      = "hostedZoneId"
	KeyCertificateRegion = "certificateRegion"
	KeyPriceClass        = "priceClass"
)

// Keys of the AWS provider's namespace the program reads.
const (
	AWSNamespace  = "aws"
	KeyAWSProfile = "profile"
)

// Defaults for the optional keys.
const (
	DefaultPath              = "./www"
	DefaultIndexDocument     = "index.html"
	DefaultErrorDocument     = "error.html"
	DefaultCertificateRegion = "us-east-1"
	DefaultPriceClass        = "PriceClass_100"

	// DefaultHostedZoneID is the zone the apex alias record is written to unless hostedZoneId is set.
	DefaultHostedZoneID = "Z002829096SD9TCQ7F07"
)

// ErrMissingDomainName is returned when the required domainName key is absent.
var ErrMissingDomainName = errors.New("missing required configuration variable 'domainName'")

// PriceClasses are the CloudFront price classes a distribution may use.
var PriceClasses = []string{"PriceClass_All", "PriceClass_200", "PriceClass_100"}

// Settings is the resolved configuration of a website stack.
type Settings struct {
	// Path is the local directory whose contents are synced into the bucket.
	Path string
	// IndexDocument is served for requests to the root and to directories.
	IndexDocument string
	// ErrorDocument is served, with a 404 status, for missing objects.
	ErrorDocument string
	// DomainName is the apex domain the site is published on. It is always in ASCII (punycode) form.
	DomainName string
	// HostedZoneID is the Route 53 zone that receives the alias record.
	HostedZoneID string
	// CertificateRegion is the region the ACM certificate is requested in.
	CertificateRegion string
	// PriceClass is the CloudFront price class of the distribution.
	PriceClass string
	// AWSProfile is the stack's aws:profile, carried over to explicitly created AWS providers.
	AWSProfile string
}

// LookupFunc returns the raw value of a configuration key and whether it was set at all.
type LookupFunc func(key string) (string, bool)

// Load reads the settings from the stack configuration of the running program. It fails before
// anything else happens if the domain name is absent.
func Load(ctx *pulumi.Context) (*Settings, error) {
	cfg := config.New(ctx, "")
	s, err := Resolve(func(key string) (string, bool) {
		v, err := cfg.Try(key)
		return v, err == nil
	})
	if err != nil {
		return nil, err
	}
	s.AWSProfile = config.New(ctx, AWSNamespace).Get(KeyAWSProfile)
	return s, nil
}

// FromMap resolves settings from a plain map of keys to values, e.g. a deployment file.
func FromMap(values map[string]string) (*Settings, error) {
	return Resolve(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

// Resolve builds settings from lookup, substituting defaults exactly for the keys that are absent, and
// validates the result.
func Resolve(lookup LookupFunc) (*Settings, error) {
	domain, ok := lookup(KeyDomainName)
	if !ok {
		return nil, ErrMissingDomainName
	}

	get := func(key, def string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return def
	}

	s := &Settings{
		Path:              get(KeyPath, DefaultPath),
		IndexDocument:     get(KeyIndexDocument, DefaultIndexDocument),
		ErrorDocument:     get(KeyErrorDocument, DefaultErrorDocument),
		DomainName:        domain,
		HostedZoneID:      get(KeyHostedZoneID, DefaultHostedZoneID),
		CertificateRegion: get(KeyCertificateRegion, DefaultCertificateRegion),
		PriceClass:        get(KeyPriceClass, DefaultPriceClass),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every field and reports all problems at once. A valid domain name is normalized to
// its lower-case ASCII form.
func (s *Settings) Validate() error {
	var result *multierror.Error

	if s.DomainName == "" {
		result = multierror.Append(result, ErrMissingDomainName)
	} else {
		ascii, err := normalizeDomain(s.DomainName)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid %s %q: %w", KeyDomainName, s.DomainName, err))
		} else {
			s.DomainName = ascii
		}
	}

	if s.Path == "" {
		result = multierror.Append(result, fmt.Errorf("%s must not be empty", KeyPath))
	}
	for _, doc := range [][2]string{{KeyIndexDocument, s.IndexDocument}, {KeyErrorDocument, s.ErrorDocument}} {
		if err := validateDocument(doc[1]); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid %s %q: %w", doc[0], doc[1], err))
		}
	}
	if s.HostedZoneID == "" {
		result = multierror.Append(result, fmt.Errorf("%s must not be empty", KeyHostedZoneID))
	}
	if s.CertificateRegion == "" {
		result = multierror.Append(result, fmt.Errorf("%s must not be empty", KeyCertificateRegion))
	}
	if !slices.Contains(PriceClasses, s.PriceClass) {
		msg := didYouMean(fmt.Sprintf("unknown %s %q", KeyPriceClass, s.PriceClass), s.PriceClass, PriceClasses)
		result = multierror.Append(result, errors.New(msg))
	}

	return result.ErrorOrNil()
}

// ErrorPagePath is the distribution-relative path of the error document.
func (s *Settings) ErrorPagePath() string {
	return "/" + s.ErrorDocument
}

func normalizeDomain(domain string) (string, error) {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if domain == "" {
		return "", errors.New("empty domain")
	}
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return "", err
	}
	if !strings.Contains(ascii, ".") {
		return "", errors.New("domain must have at least two labels")
	}
	return strings.ToLower(ascii), nil
}

// S3 website documents are object keys, but the site is served from the bucket root, so a
// document must be a plain key suffix.
func validateDocument(doc string) error {
	switch {
	case doc == "":
		return errors.New("must not be empty")
	case strings.HasPrefix(doc, "/"):
		return errors.New("must not start with '/'")
	case strings.ContainsAny(doc, "\\?#"):
		return errors.New("must not contain '\\', '?' or '#'")
	}
	return nil
}

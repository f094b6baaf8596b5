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


package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		needle   string
		expected string
	}{
		{"domainName", "domainName"},
		{"domainname", "domainName"},
		{"DOMAINNAME", "domainName"},
		{"domainNam", "domainName"},
		{"indexDocumnt", "indexDocument"},
		{"hostedZoneID", "hostedZoneId"},
		{"pth", "path"},
		{"region", ""},
		{"somethingElse", ""},
	}

	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Suggest(tt.needle, Keys))
		})
	}
}

func TestSuggestTiesAreAlphabetical(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PriceClass_100", Suggest("PriceClass_1", PriceClasses))
	assert.Equal(t, "PriceClass_100", Suggest("PriceClass_X00", PriceClasses))
	assert.Equal(t, "PriceClass_All", Suggest("priceclass_all", PriceClasses))
}

func TestUnknownPriceClassSuggestsClosest(t *testing.T) {
	t.Parallel()

	_, err := FromMap(map[string]string{
		KeyDomainName: "example.com",
		KeyPriceClass: "PriceClass_ALl",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown priceClass "PriceClass_ALl"; did you mean 'PriceClass_All'?`)

	_, err = FromMap(map[string]string{
		KeyDomainName: "example.com",
		KeyPriceClass: "Cheapest",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown priceClass "Cheapest"`)
	assert.NotContains(t, err.Error(), "did you mean")
}

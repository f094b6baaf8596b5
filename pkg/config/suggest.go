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
	"slices"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestionDistance is the largest Levenshtein distance at which a name is offered as the one the
// user might have meant to type.
const maxSuggestionDistance = 2

// Keys lists every configuration key the program reads from the project namespace.
var Keys = []string{
	KeyPath,
	KeyIndexDocument,
	KeyErrorDocument,
	KeyDomainName,
	KeyHostedZoneID,
	KeyCertificateRegion,
	KeyPriceClass,
}

// Suggest returns the candidate closest to needle, ignoring case, or "" when none is within
// maxSuggestionDistance. Ties go to the alphabetically first candidate.
func Suggest(needle string, candidates []string) string {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	match := ""
	closest := maxSuggestionDistance + 1
	for _, c := range sorted {
		d := levenshtein.DistanceForStrings(
			[]rune(strings.ToLower(needle)),
			[]rune(strings.ToLower(c)),
			levenshtein.DefaultOptionsWithSub,
		)
		if d == 0 {
			return c
		}
		if d < closest {
			closest = d
			match = c
		}
	}
	return match
}

// didYouMean appends a suggestion for needle to msg when there is one.
func didYouMean(msg, needle string, candidates []string) string {
	if s := Suggest(needle, candidates); s != "" {
		return msg + "; did you mean '" + s + "'?"
	}
	return msg
}

/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package feedname

import (
	"strings"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// DetectKind determines the naming class of a feedstock name. Any digit makes
// a name composite, since elementary names never carry percentages.
func DetectKind(name string, config NamingConfig) FeedKind {
	if name == "" {
		return KindUnknown
	}
	if core.IsComposite(name) {
		return KindComposite
	}
	if _, ok := trimAny(name, config.RawPrefixes); ok {
		return KindRaw
	}
	if _, ok := trimAny(name, config.StdPrefixes); ok {
		return KindStandard
	}
	return KindUnknown
}

// BaseName strips a raw or standard prefix. Other names are returned as is.
func BaseName(name string, config NamingConfig) string {
	if core.IsComposite(name) {
		return name
	}
	if base, ok := trimAny(name, config.RawPrefixes); ok {
		return base
	}
	if base, ok := trimAny(name, config.StdPrefixes); ok {
		return base
	}
	return name
}

// RawName builds the raw feed name of base.
func RawName(base string, config NamingConfig) string {
	return firstOr(config.RawPrefixes, DefaultRawPrefix) + base
}

// StandardName builds the standardized feed name of base.
func StandardName(base string, config NamingConfig) string {
	return firstOr(config.StdPrefixes, DefaultStdPrefix) + base
}

// trimAny removes the first matching prefix, requiring a non-empty remainder.
func trimAny(name string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(name, p); ok && rest != "" {
			return rest, true
		}
	}
	return "", false
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return fallback
}

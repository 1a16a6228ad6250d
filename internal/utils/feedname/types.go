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

// Package feedname classifies feedstock names by their naming convention and
// derives the standardized variants of raw feeds. Raw feeds carry the "raw"
// prefix, their moisture-standardized copies the "std" prefix, and blends are
// written as name/percent pairs such as "SRU50BSG50".
package feedname

// FeedKind represents the naming class of a feedstock.
type FeedKind string

const (
	// KindRaw indicates an elementary feed as measured.
	KindRaw FeedKind = "raw"
	// KindStandard indicates a raw feed copied for hydration to the target moisture.
	KindStandard FeedKind = "std"
	// KindComposite indicates a blend of named components.
	KindComposite FeedKind = "composite"
	// KindUnknown indicates a name matching no convention.
	KindUnknown FeedKind = "unknown"

	// DefaultRawPrefix prefixes raw feed names.
	DefaultRawPrefix = "raw"
	// DefaultStdPrefix prefixes standardized feed names.
	DefaultStdPrefix = "std"
)

// NamingConfig describes the prefixes recognized for each kind.
type NamingConfig struct {
	// RawPrefixes are prefixes that mark a raw feed. The first is used when
	// building names.
	RawPrefixes []string
	// StdPrefixes are prefixes that mark a standardized feed. The first is
	// used when building names.
	StdPrefixes []string
}

// DefaultNamingConfig returns the "raw"/"std" convention.
func DefaultNamingConfig() NamingConfig {
	return NamingConfig{
		RawPrefixes: []string{DefaultRawPrefix},
		StdPrefixes: []string{DefaultStdPrefix},
	}
}

// StandardVariant records one standardized copy created by discovery.
type StandardVariant struct {
	// Source is the raw feed name the variant was copied from.
	Source string
	// Name is the standardized feed name.
	Name string
	Temp float64
	Time float64
}

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

package collector

import "context"

// PropertySource provides the measured properties of the elementary feeds.
type PropertySource interface {
	// Name returns the unique name of this source (e.g., "csv", "sqlite").
	Name() string

	// Properties returns one row per feed, in source order.
	Properties(ctx context.Context) ([]PropertyRow, error)
}

// YieldSource provides the empirical yields per scenario.
type YieldSource interface {
	// Name returns the unique name of this source (e.g., "csv", "sqlite").
	Name() string

	// Yields returns one row per (feed, residence time, parameter).
	Yields(ctx context.Context) ([]YieldRow, error)
}

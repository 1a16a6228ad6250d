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

package core

import "errors"

var (
	// ErrNotFound indicates a registry, yield or LCIA lookup that has no match.
	ErrNotFound = errors.New("not found")

	// ErrInvalidParameter indicates an unrecognized parameter name or a malformed input vector.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConvergenceFailure indicates the thermal balance root solve did not converge.
	ErrConvergenceFailure = errors.New("convergence failure")

	// ErrInvalidComposite indicates a composite name that does not parse into
	// (identifier, percent) pairs summing to 100.
	ErrInvalidComposite = errors.New("invalid composite name")

	// ErrDuplicate indicates an insertion whose (name, temp, time) key is already registered.
	ErrDuplicate = errors.New("duplicate feedstock")

	// ErrNotHydrated indicates a charge was requested before the water-addition step ran.
	ErrNotHydrated = errors.New("feedstock not hydrated")
)

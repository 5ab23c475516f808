// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrRequestFailed is the single failure kind of every catalog operation.
	// Transport errors, non-2xx responses and malformed bodies all surface as it.
	// Maps to exit code 3.
	ErrRequestFailed = errors.New("request failed")

	// ErrNotAuthenticated indicates an operation needed stored credentials
	// before Authenticate succeeded, or that no credentials were supplied.
	// The catalog client wraps it together with ErrRequestFailed.
	// Maps to exit code 2.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidIdentifier indicates an identifier that cannot be placed in a
	// query filter. Always wrapped together with ErrRequestFailed.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrInvalidConfig indicates the loaded configuration failed validation.
	// Maps to exit code 1.
	ErrInvalidConfig = errors.New("invalid configuration")
)

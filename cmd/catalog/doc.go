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

// Package main implements the purdueio command-line interface, a thin
// front end over the catalog client for browsing Purdue's course catalog
// and a student's enrolled schedule.
//
// The CLI supports:
//   - Listing terms, subjects in a term, and a subject's courses
//   - Course details with every class, section and meeting in a term
//   - Term and subject statistics (subject, course, section and instructor counts)
//   - Fetching the signed-in student's schedule and keeping a local snapshot
//
// Usage:
//
//	purdueio <command> [flags]
//
// Example:
//
//	export PURDUEIO_USERNAME=pete PURDUEIO_PASSWORD=...
//	purdueio schedule --output schedule.ndjson
//	purdueio counts --term c543a529-fed4-4fd0-b185-bd403106b4ea
//
// Records are written as NDJSON by default; --format json pretty-prints.
// A .env file in the working directory is loaded before flags are read.
//
// Exit codes:
//   - 0: Success
//   - 1: General or configuration error
//   - 2: Not authenticated
//   - 3: Catalog request failed
package main

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

// Package catalog provides a client for the Purdue.io course catalog API.
//
// The catalog is served as an OData collection surface (Terms, Subjects,
// Courses, Classes, Sections, Instructors) plus two student endpoints used
// to authenticate and read a student's registered schedule. DataClient maps
// each high-level question ("which subjects run in this term?") onto one
// query, or two dependent queries, against that surface.
//
// The package includes:
//   - A Client interface covering every catalog operation
//   - DataClient, the HTTP implementation
//   - A Fetcher interface and its net/http implementation, HTTPFetcher
//   - MockClient for testing code that consumes a Client
//
// Every failure returned by DataClient wraps errors.ErrRequestFailed; the
// cause stays in the chain for logging but callers are not expected to
// branch on it.
//
// Basic usage:
//
//	client := catalog.New("https://api.purdue.io")
//	terms, err := client.FetchTerms(ctx)
//	if err != nil {
//	    // Handle error
//	}
//	subjects, err := client.FetchTermSubjects(ctx, terms[0])
package catalog

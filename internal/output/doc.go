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

// Package output writes catalog records (terms, subjects, courses, sections,
// count summaries) for the command line tool.
//
// The default format is NDJSON: one compact JSON object per line, which
// pipes cleanly into jq and similar tools. The "json" format writes each
// record as an indented document instead.
//
// Example usage:
//
//	w, err := output.NewWriterForFormat(os.Stdout, "ndjson")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	if err := output.WriteAll(w, terms); err != nil {
//	    return err
//	}
package output

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

// Package state persists the last fetched schedule between command runs.
//
// Snapshot files live under the configured state directory, one per user,
// and are plain JSON so they can be inspected by hand. Writes are atomic
// (write to a temp file, sync, rename) and every file carries a schema
// version and a SHA256 checksum that LoadSchedule verifies.
//
// Example usage:
//
//	path := state.GetScheduleFilePath(cfg.Defaults.StateDir, "pete")
//	err := state.SaveSchedule(&state.ScheduleSnapshot{
//	    Username:  "pete",
//	    FetchedAt: time.Now().UTC(),
//	    Sections:  sections,
//	}, path)
package state

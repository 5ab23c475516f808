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

package state

import (
	"time"

	"github.com/sanbir/WebApp/internal/catalog"
)

// CurrentVersion is the current snapshot schema version.
// Increment this when making breaking changes to ScheduleSnapshot.
const CurrentVersion = 1

// ScheduleSnapshot is the last schedule fetched for a user, kept on disk so
// the CLI can show it again without contacting the service.
type ScheduleSnapshot struct {
	// Version indicates the schema version of this snapshot file.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the snapshot content (excluding this field).
	Checksum string `json:"checksum"`

	// Username identifies whose schedule this is. The password is never stored.
	Username string `json:"username"`

	// FetchedAt records when the schedule was fetched.
	FetchedAt time.Time `json:"fetched_at"`

	// Sections are the enrolled sections exactly as the client returned them.
	Sections []catalog.SectionExpanded `json:"sections"`
}

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

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TermSchedule lists the sections a student is registered for in one term.
type TermSchedule struct {
	TermName   string   `json:"term_name"`
	SectionIDs []string `json:"section_ids"`
}

// Schedule is the /Student/Schedule response: section ids keyed by term
// name. The service returns a JSON object; Schedule keeps its key order.
type Schedule []TermSchedule

// UnmarshalJSON decodes the term-keyed object in document order.
// A JSON null decodes to an empty schedule.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read schedule: %w", err)
	}
	if tok == nil {
		*s = Schedule{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("schedule must be a JSON object, got %v", tok)
	}

	out := Schedule{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read schedule term: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected schedule key %v", keyTok)
		}

		var ids []string
		if err := dec.Decode(&ids); err != nil {
			return fmt.Errorf("failed to decode sections of term %q: %w", name, err)
		}
		out = append(out, TermSchedule{TermName: name, SectionIDs: ids})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read schedule: %w", err)
	}

	*s = out
	return nil
}

// SectionIDs flattens every term's section ids, preserving term order and
// the order within each term.
func (s Schedule) SectionIDs() []string {
	var ids []string
	for _, term := range s {
		ids = append(ids, term.SectionIDs...)
	}
	return ids
}

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

package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// Fixture builders produce the JSON shapes the catalog service returns.
// Ids are random GUIDs, as on the real service.

// TermJSON builds a Terms entity.
func TermJSON(name, startDate string) map[string]interface{} {
	return map[string]interface{}{
		"TermId":    uuid.NewString(),
		"TermCode":  "",
		"Name":      name,
		"StartDate": startDate,
		"EndDate":   "",
	}
}

// SubjectJSON builds a Subjects entity.
func SubjectJSON(abbreviation, name string) map[string]interface{} {
	return map[string]interface{}{
		"SubjectId":    uuid.NewString(),
		"Name":         name,
		"Abbreviation": abbreviation,
	}
}

// CourseJSON builds a Courses entity, optionally with an expanded subject.
func CourseJSON(number, title string, subject map[string]interface{}) map[string]interface{} {
	course := map[string]interface{}{
		"CourseId":    uuid.NewString(),
		"Number":      number,
		"Title":       title,
		"CreditHours": 3,
		"Description": fmt.Sprintf("%s description", title),
	}
	if subject != nil {
		course["Subject"] = subject
	}
	return course
}

// ClassJSON builds a Classes entity with one section, one meeting, one
// instructor and a room in a building.
func ClassJSON(term map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"ClassId": uuid.NewString(),
		"Term":    term,
		"Sections": []interface{}{
			map[string]interface{}{
				"SectionId":      uuid.NewString(),
				"CRN":            "10001",
				"Type":           "Lecture",
				"Capacity":       40,
				"Enrolled":       40,
				"RemainingSpace": 0,
				"Meetings": []interface{}{
					map[string]interface{}{
						"MeetingId":  uuid.NewString(),
						"Type":       "Lecture",
						"DaysOfWeek": "Tuesday, Thursday",
						"StartTime":  "13:30:00",
						"Duration":   "PT1H15M",
						"Instructors": []interface{}{
							map[string]interface{}{
								"InstructorId": uuid.NewString(),
								"Name":         "Ada Lovelace",
								"Email":        "ada@purdue.edu",
							},
						},
						"Room": map[string]interface{}{
							"RoomId": uuid.NewString(),
							"Number": "B155",
							"Building": map[string]interface{}{
								"BuildingId": uuid.NewString(),
								"Name":       "Lawson Computer Science Bldg",
								"ShortCode":  "LWSN",
							},
						},
					},
				},
			},
		},
	}
}

// SectionExpandedJSON builds an expanded Sections entity for the given id.
func SectionExpandedJSON(sectionID string, course, term map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"SectionId":      sectionID,
		"CRN":            "20001",
		"Type":           "Lecture",
		"Capacity":       100,
		"Enrolled":       60,
		"RemainingSpace": 40,
		"Class": map[string]interface{}{
			"ClassId": uuid.NewString(),
			"Course":  course,
			"Term":    term,
		},
		"Meetings": []interface{}{
			map[string]interface{}{
				"MeetingId":  uuid.NewString(),
				"Type":       "Lecture",
				"DaysOfWeek": "Monday, Wednesday",
				"StartTime":  "10:30:00",
				"Duration":   "PT50M",
			},
		},
	}
}

// NewSectionIDs returns n random section ids.
func NewSectionIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return ids
}

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

// Credentials are the student's myPurdue login, sent as HTTP basic auth.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// Term is an academic enrollment period such as a semester.
// Dates are kept exactly as the service formats them.
type Term struct {
	TermID    string `json:"TermId"`
	TermCode  string `json:"TermCode,omitempty"`
	Name      string `json:"Name,omitempty"`
	StartDate string `json:"StartDate,omitempty"`
	EndDate   string `json:"EndDate,omitempty"`
}

// Subject is a department or discipline grouping of courses, e.g. "CS".
type Subject struct {
	SubjectID    string `json:"SubjectId"`
	Name         string `json:"Name,omitempty"`
	Abbreviation string `json:"Abbreviation,omitempty"`
}

// Course is a catalog entry under a subject. Subject is only populated when
// the query expanded it.
type Course struct {
	CourseID    string   `json:"CourseId"`
	Number      string   `json:"Number,omitempty"`
	Title       string   `json:"Title,omitempty"`
	CreditHours float64  `json:"CreditHours,omitempty"`
	Description string   `json:"Description,omitempty"`
	Subject     *Subject `json:"Subject,omitempty"`
}

// CourseDetails is a course with its subject expanded and every class
// offered in one term attached.
type CourseDetails struct {
	Course
	Classes []ClassDetails `json:"Classes"`
}

// ClassDetails is one offering of a course within a term, with its
// sections fully expanded.
type ClassDetails struct {
	ClassID  string           `json:"ClassId"`
	Term     *Term            `json:"Term,omitempty"`
	Sections []SectionDetails `json:"Sections"`
}

// Section holds the registration fields shared by every section shape.
type Section struct {
	SectionID          string `json:"SectionId"`
	CRN                string `json:"CRN,omitempty"`
	SectionCode        string `json:"SectionCode,omitempty"`
	Type               string `json:"Type,omitempty"`
	RegistrationStatus string `json:"RegistrationStatus,omitempty"`
	StartDate          string `json:"StartDate,omitempty"`
	EndDate            string `json:"EndDate,omitempty"`
	Capacity           int    `json:"Capacity"`
	Enrolled           int    `json:"Enrolled"`
	RemainingSpace     int    `json:"RemainingSpace"`
	WaitlistCapacity   int    `json:"WaitlistCapacity"`
	WaitlistCount      int    `json:"WaitlistCount"`
	WaitlistSpace      int    `json:"WaitlistSpace"`
}

// SectionDetails is a section inside ClassDetails, meetings expanded.
type SectionDetails struct {
	Section
	Meetings []MeetingDetails `json:"Meetings"`
}

// MeetingDetails is a scheduled occurrence of a section, with instructors
// and room (and the room's building) expanded.
type MeetingDetails struct {
	MeetingID   string       `json:"MeetingId"`
	Type        string       `json:"Type,omitempty"`
	StartDate   string       `json:"StartDate,omitempty"`
	EndDate     string       `json:"EndDate,omitempty"`
	DaysOfWeek  string       `json:"DaysOfWeek,omitempty"`
	StartTime   string       `json:"StartTime,omitempty"`
	Duration    string       `json:"Duration,omitempty"`
	Instructors []Instructor `json:"Instructors,omitempty"`
	Room        *Room        `json:"Room,omitempty"`
}

// Instructor teaches one or more meetings.
type Instructor struct {
	InstructorID string `json:"InstructorId"`
	Name         string `json:"Name,omitempty"`
	Email        string `json:"Email,omitempty"`
}

// Room is where a meeting takes place.
type Room struct {
	RoomID   string    `json:"RoomId"`
	Number   string    `json:"Number,omitempty"`
	Building *Building `json:"Building,omitempty"`
}

// Building contains rooms.
type Building struct {
	BuildingID string `json:"BuildingId"`
	Name       string `json:"Name,omitempty"`
	ShortCode  string `json:"ShortCode,omitempty"`
}

// SectionExpanded is a section a student is registered for, expanded up to
// its class, course and subject. Only FetchUserSchedule produces it.
type SectionExpanded struct {
	Section
	Class    *ClassExpanded `json:"Class,omitempty"`
	Meetings []Meeting      `json:"Meetings"`
}

// ClassExpanded is the class of a SectionExpanded.
type ClassExpanded struct {
	ClassID string  `json:"ClassId"`
	Course  *Course `json:"Course,omitempty"`
	Term    *Term   `json:"Term,omitempty"`
}

// Meeting is a meeting without its navigation properties.
type Meeting struct {
	MeetingID  string `json:"MeetingId"`
	Type       string `json:"Type,omitempty"`
	StartDate  string `json:"StartDate,omitempty"`
	EndDate    string `json:"EndDate,omitempty"`
	DaysOfWeek string `json:"DaysOfWeek,omitempty"`
	StartTime  string `json:"StartTime,omitempty"`
	Duration   string `json:"Duration,omitempty"`
}

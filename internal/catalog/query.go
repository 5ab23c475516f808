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
	"fmt"
	"net/url"
	"regexp"
	"strings"

	catalogerrors "github.com/sanbir/WebApp/internal/errors"
)

// Service paths, relative to the base URL.
const (
	authenticatePath = "/Student/Authenticate"
	schedulePath     = "/Student/Schedule"

	termsPath       = "/odata/Terms"
	subjectsPath    = "/odata/Subjects"
	coursesPath     = "/odata/Courses"
	classesPath     = "/odata/Classes"
	sectionsPath    = "/odata/Sections"
	instructorsPath = "/odata/Instructors"

	countSegment = "/$count"
)

// Expansions used by the two-step operations.
const (
	enrolledSectionExpand = "Class($expand=Course($expand=Subject),Term),Meetings"
	classDetailsExpand    = "Term,Sections($expand=Meetings($expand=Instructors,Room($expand=Building)))"
)

type direction string

const (
	ascending  direction = "asc"
	descending direction = "desc"
)

// identifierPattern admits GUIDs, integers and codes. Anything else could
// change the meaning of the filter it is interpolated into.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// checkIdentifier rejects identifiers that are empty or unsafe to place
// unquoted inside a filter expression.
func checkIdentifier(kind, id string) error {
	if !identifierPattern.MatchString(id) {
		return fmt.Errorf("%w: %s id %q", catalogerrors.ErrInvalidIdentifier, kind, id)
	}
	return nil
}

// Filter expression builders. Each returns the plain-text OData fragment;
// encoding happens once, when the URL is assembled.

func eq(field, value string) string {
	return field + " eq " + value
}

func and(terms ...string) string {
	return strings.Join(terms, " and ")
}

func or(terms ...string) string {
	return strings.Join(terms, " or ")
}

func group(expr string) string {
	return "(" + expr + ")"
}

// anyOf expresses "collection has at least one element v matching pred".
func anyOf(collection, v, pred string) string {
	return collection + "/any(" + v + ": " + pred + ")"
}

func orderBy(field string, dir direction) string {
	return field + " " + string(dir)
}

// query is an ordered set of OData system query options for one path.
type query struct {
	path   string
	params [][2]string
}

func newQuery(path string) *query {
	return &query{path: path}
}

func (q *query) expand(expr string) *query {
	q.params = append(q.params, [2]string{"$expand", expr})
	return q
}

func (q *query) filter(expr string) *query {
	q.params = append(q.params, [2]string{"$filter", expr})
	return q
}

func (q *query) orderBy(field string, dir direction) *query {
	q.params = append(q.params, [2]string{"$orderby", orderBy(field, dir)})
	return q
}

// url renders the query against base. Option names are kept literal and
// values are percent-encoded with spaces as %20.
func (q *query) url(base string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString(q.path)
	for i, p := range q.params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(encodeValue(p[1]))
	}
	return b.String()
}

func encodeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// Filters for each catalog question.

func termSubjectsFilter(termID string) string {
	return group(anyOf("Courses", "c", anyOf("c/Classes", "cc", eq("cc/Term/TermId", termID))))
}

func termCoursesFilter(termID string) string {
	return group(anyOf("Classes", "c", eq("c/Term/TermId", termID)))
}

func termSectionsFilter(termID string) string {
	return group(eq("Class/Term/TermId", termID))
}

func termFilledSectionsFilter(termID string) string {
	return group(and(group(eq("Class/Term/TermId", termID)), group(eq("RemainingSpace", "0"))))
}

func termSubjectCoursesFilter(termID, subjectID string) string {
	return and(termCoursesFilter(termID), eq("Subject/SubjectId", subjectID))
}

func termSubjectInstructorsFilter(termID, subjectID string) string {
	return group(anyOf("Meetings", "m", and(
		eq("m/Section/Class/Course/Subject/SubjectId", subjectID),
		eq("m/Section/Class/Term/TermId", termID),
	)))
}

func courseClassesFilter(courseID, termID string) string {
	return and(eq("Course/CourseId", courseID), eq("Term/TermId", termID))
}

func sectionsFilter(sectionIDs []string) string {
	terms := make([]string, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		terms = append(terms, eq("SectionId", id))
	}
	return or(terms...)
}

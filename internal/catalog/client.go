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

import "context"

// Client defines the catalog operations. This interface allows for easy
// mocking in tests.
type Client interface {
	// Authenticate checks the credentials against the student service and,
	// on success, keeps them for every later request.
	Authenticate(ctx context.Context, username, password string) (string, error)

	// FetchUserSchedule returns the sections the authenticated student is
	// registered for, across all terms, and caches them.
	FetchUserSchedule(ctx context.Context) ([]SectionExpanded, error)

	// EnrolledSections returns the schedule cached by the last successful
	// FetchUserSchedule, or nil before one has succeeded.
	EnrolledSections() []SectionExpanded

	FetchTerms(ctx context.Context) ([]Term, error)
	FetchTermSubjects(ctx context.Context, term Term) ([]Subject, error)
	FetchTermSubjectCount(ctx context.Context, term Term) (int, error)
	FetchTermCourseCount(ctx context.Context, term Term) (int, error)
	FetchTermSectionCount(ctx context.Context, term Term) (int, error)
	FetchTermFilledSectionCount(ctx context.Context, term Term) (int, error)
	FetchTermSubjectCoursesCount(ctx context.Context, term Term, subject Subject) (int, error)
	FetchTermSubjectCourses(ctx context.Context, term Term, subject Subject) ([]Course, error)
	FetchTermSubjectInstructorsCount(ctx context.Context, term Term, subject Subject) (int, error)

	// FetchTermCourseDetails returns the course with its subject and all of
	// its classes in the term. It never returns a course without classes.
	FetchTermCourseDetails(ctx context.Context, term Term, course Course) (*CourseDetails, error)
}

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
	"context"
	"fmt"
	"slices"
	"sync"

	catalogerrors "github.com/sanbir/WebApp/internal/errors"
)

// Count keys understood by MockClient.Counts.
const (
	CountSubjects       = "subjects"
	CountCourses        = "courses"
	CountSections       = "sections"
	CountFilledSections = "filled_sections"
	CountSubjectCourses = "subject_courses"
	CountInstructors    = "instructors"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	mu sync.Mutex

	// Data to return
	Terms    []Term
	Subjects []Subject
	Courses  []Course
	Details  *CourseDetails
	Sections []SectionExpanded
	Counts   map[string]int

	// Error to return from every fetch
	Error error

	// Behavior flags
	ShouldFailAuth bool

	// Track calls for verification
	CallCount   int
	LastTerm    Term
	LastSubject Subject
	LastCourse  Course

	authenticated bool
	enrolled      []SectionExpanded
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	terms, subjects, courses, sections := generateTestCatalog()
	return &MockClient{
		Terms:    terms,
		Subjects: subjects,
		Courses:  courses,
		Details: &CourseDetails{
			Course: courses[0],
			Classes: []ClassDetails{
				{ClassID: "class-1", Term: &terms[0], Sections: []SectionDetails{}},
			},
		},
		Sections: sections,
		Counts: map[string]int{
			CountSubjects:       2,
			CountCourses:        3,
			CountSections:       12,
			CountFilledSections: 4,
			CountSubjectCourses: 2,
			CountInstructors:    5,
		},
	}
}

// Authenticate implements the Client interface
func (m *MockClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++

	if err := m.check(ctx); err != nil {
		return "", err
	}
	if m.ShouldFailAuth {
		return "", fmt.Errorf("authenticate: %w", catalogerrors.ErrRequestFailed)
	}
	m.authenticated = true
	return AuthenticatedToken, nil
}

// FetchUserSchedule implements the Client interface
func (m *MockClient) FetchUserSchedule(ctx context.Context) ([]SectionExpanded, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++

	if !m.authenticated {
		return nil, fmt.Errorf("fetch user schedule: %w: %w", catalogerrors.ErrRequestFailed, catalogerrors.ErrNotAuthenticated)
	}
	if err := m.check(ctx); err != nil {
		return nil, err
	}
	m.enrolled = slices.Clone(m.Sections)
	return slices.Clone(m.Sections), nil
}

// EnrolledSections implements the Client interface
func (m *MockClient) EnrolledSections() []SectionExpanded {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.enrolled)
}

// FetchTerms implements the Client interface
func (m *MockClient) FetchTerms(ctx context.Context) ([]Term, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++

	if err := m.check(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(m.Terms), nil
}

// FetchTermSubjects implements the Client interface
func (m *MockClient) FetchTermSubjects(ctx context.Context, term Term) ([]Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track(term, Subject{}, Course{})

	if err := m.check(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(m.Subjects), nil
}

// FetchTermSubjectCount implements the Client interface
func (m *MockClient) FetchTermSubjectCount(ctx context.Context, term Term) (int, error) {
	return m.count(ctx, CountSubjects, term, Subject{})
}

// FetchTermCourseCount implements the Client interface
func (m *MockClient) FetchTermCourseCount(ctx context.Context, term Term) (int, error) {
	return m.count(ctx, CountCourses, term, Subject{})
}

// FetchTermSectionCount implements the Client interface
func (m *MockClient) FetchTermSectionCount(ctx context.Context, term Term) (int, error) {
	return m.count(ctx, CountSections, term, Subject{})
}

// FetchTermFilledSectionCount implements the Client interface
func (m *MockClient) FetchTermFilledSectionCount(ctx context.Context, term Term) (int, error) {
	return m.count(ctx, CountFilledSections, term, Subject{})
}

// FetchTermSubjectCoursesCount implements the Client interface
func (m *MockClient) FetchTermSubjectCoursesCount(ctx context.Context, term Term, subject Subject) (int, error) {
	return m.count(ctx, CountSubjectCourses, term, subject)
}

// FetchTermSubjectCourses implements the Client interface
func (m *MockClient) FetchTermSubjectCourses(ctx context.Context, term Term, subject Subject) ([]Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track(term, subject, Course{})

	if err := m.check(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(m.Courses), nil
}

// FetchTermSubjectInstructorsCount implements the Client interface
func (m *MockClient) FetchTermSubjectInstructorsCount(ctx context.Context, term Term, subject Subject) (int, error) {
	return m.count(ctx, CountInstructors, term, subject)
}

// FetchTermCourseDetails implements the Client interface
func (m *MockClient) FetchTermCourseDetails(ctx context.Context, term Term, course Course) (*CourseDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track(term, Subject{}, course)

	if err := m.check(ctx); err != nil {
		return nil, err
	}
	if m.Details == nil {
		return nil, fmt.Errorf("fetch term course details: %w", catalogerrors.ErrRequestFailed)
	}
	details := *m.Details
	return &details, nil
}

func (m *MockClient) count(ctx context.Context, key string, term Term, subject Subject) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track(term, subject, Course{})

	if err := m.check(ctx); err != nil {
		return 0, err
	}
	return m.Counts[key], nil
}

func (m *MockClient) track(term Term, subject Subject, course Course) {
	m.CallCount++
	m.LastTerm = term
	m.LastSubject = subject
	m.LastCourse = course
}

// check reports context cancellation or the configured error.
func (m *MockClient) check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if m.Error != nil {
		return m.Error
	}
	return nil
}

// generateTestCatalog creates a small, consistent catalog for testing
func generateTestCatalog() ([]Term, []Subject, []Course, []SectionExpanded) {
	terms := []Term{
		{TermID: "c543a529-fed4-4fd0-b185-bd403106b4ea", TermCode: "202510", Name: "Fall 2024", StartDate: "2024-08-19T00:00:00Z"},
		{TermID: "4b1d3a2e-9f0c-4c1e-8d7a-2f5e6b7c8d90", TermCode: "202420", Name: "Spring 2024", StartDate: "2024-01-08T00:00:00Z"},
	}
	subjects := []Subject{
		{SubjectID: "0c2f0c1a-5e5f-4a4b-9b0e-1e2d3c4b5a69", Name: "Computer Sciences", Abbreviation: "CS"},
		{SubjectID: "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d", Name: "Mathematics", Abbreviation: "MA"},
	}
	courses := []Course{
		{CourseID: "5f3c2b1a-0e9d-4c8b-a7f6-e5d4c3b2a190", Number: "18000", Title: "Problem Solving And Object-Oriented Programming", CreditHours: 4, Subject: &subjects[0]},
		{CourseID: "6a4d3c2b-1f0e-4d9c-b8a7-f6e5d4c3b2a1", Number: "25000", Title: "Computer Architecture", CreditHours: 4, Subject: &subjects[0]},
	}
	sections := []SectionExpanded{
		{
			Section: Section{SectionID: "1d2e3f4a-5b6c-4d7e-8f9a-0b1c2d3e4f5a", CRN: "12345", Type: "Lecture", Capacity: 300, Enrolled: 290, RemainingSpace: 10},
			Class:   &ClassExpanded{ClassID: "class-1", Course: &courses[0], Term: &terms[0]},
			Meetings: []Meeting{
				{MeetingID: "m-1", Type: "Lecture", DaysOfWeek: "Monday, Wednesday, Friday", StartTime: "09:30:00", Duration: "PT50M"},
			},
		},
	}
	return terms, subjects, courses, sections
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithTerms sets specific terms to return
func WithTerms(terms []Term) MockClientOption {
	return func(m *MockClient) {
		m.Terms = terms
	}
}

// WithSections sets the schedule sections to return
func WithSections(sections []SectionExpanded) MockClientOption {
	return func(m *MockClient) {
		m.Sections = sections
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}

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
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sanbir/WebApp/internal/config"
	catalogerrors "github.com/sanbir/WebApp/internal/errors"
)

// AuthenticatedToken is the value Authenticate returns on success.
const AuthenticatedToken = "Authenticated"

// DataClient implements Client against a Purdue.io style service.
// It is safe for concurrent use; credentials and the cached schedule each
// have a single writer (Authenticate and FetchUserSchedule).
type DataClient struct {
	baseURL string
	fetcher Fetcher
	logger  zerolog.Logger

	mu       sync.RWMutex
	creds    *Credentials
	enrolled []SectionExpanded
}

// Option configures a DataClient.
type Option func(*DataClient)

// WithFetcher replaces the default HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *DataClient) {
		c.fetcher = f
	}
}

// WithLogger sets the logger used for request failures and, through the
// default fetcher, per-request debug lines.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *DataClient) {
		c.logger = logger
	}
}

// New creates a client rooted at baseURL. An empty baseURL selects the
// public service; a scheme-relative one ("//host") is resolved to https.
func New(baseURL string, opts ...Option) *DataClient {
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}

	c := &DataClient{
		baseURL: config.NormalizeBaseURL(baseURL),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetcher == nil {
		c.fetcher = NewHTTPFetcher(FetcherOptions{Timeout: 30 * time.Second}, c.logger)
	}
	return c
}

// BaseURL returns the URL every request path is appended to.
func (c *DataClient) BaseURL() string {
	return c.baseURL
}

// Credentials returns the stored credentials and whether Authenticate has
// succeeded.
func (c *DataClient) Credentials() (Credentials, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.creds == nil {
		return Credentials{}, false
	}
	return *c.creds, true
}

// EnrolledSections implements Client.
func (c *DataClient) EnrolledSections() []SectionExpanded {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.enrolled)
}

// Authenticate implements Client.
func (c *DataClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	creds := &Credentials{Username: username, Password: password}

	var ignored json.RawMessage
	if err := c.fetcher.GetJSON(ctx, c.baseURL+authenticatePath, creds, &ignored); err != nil {
		return "", c.fail("authenticate", err)
	}

	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()

	c.logger.Debug().Str("username", username).Msg("authenticated")
	return AuthenticatedToken, nil
}

// FetchUserSchedule implements Client. The schedule's section ids from all
// terms are joined into one disjunction and fetched in a second request.
// The cache is replaced only when both requests succeed.
func (c *DataClient) FetchUserSchedule(ctx context.Context) ([]SectionExpanded, error) {
	const op = "fetch user schedule"

	if _, ok := c.Credentials(); !ok {
		return nil, c.fail(op, catalogerrors.ErrNotAuthenticated)
	}

	var schedule Schedule
	if err := c.get(ctx, c.baseURL+schedulePath, &schedule); err != nil {
		return nil, c.fail(op, err)
	}

	ids := schedule.SectionIDs()
	for _, id := range ids {
		if err := checkIdentifier("section", id); err != nil {
			return nil, c.fail(op, err)
		}
	}

	sections := []SectionExpanded{}
	if len(ids) > 0 {
		q := newQuery(sectionsPath).
			expand(enrolledSectionExpand).
			filter(sectionsFilter(ids))
		if err := c.get(ctx, q.url(c.baseURL), &sections); err != nil {
			return nil, c.fail(op, err)
		}
		if sections == nil {
			sections = []SectionExpanded{}
		}
	}

	c.mu.Lock()
	c.enrolled = sections
	c.mu.Unlock()

	c.logger.Debug().Int("terms", len(schedule)).Int("sections", len(sections)).Msg("schedule cached")
	return slices.Clone(sections), nil
}

// FetchTerms implements Client. Terms come back most recent first.
func (c *DataClient) FetchTerms(ctx context.Context) ([]Term, error) {
	q := newQuery(termsPath).orderBy("StartDate", descending)

	var terms []Term
	if err := c.get(ctx, q.url(c.baseURL), &terms); err != nil {
		return nil, c.fail("fetch terms", err)
	}
	slices.SortStableFunc(terms, func(a, b Term) int {
		return strings.Compare(b.StartDate, a.StartDate)
	})
	return nonNil(terms), nil
}

// FetchTermSubjects implements Client. Subjects are ordered by abbreviation.
func (c *DataClient) FetchTermSubjects(ctx context.Context, term Term) ([]Subject, error) {
	const op = "fetch term subjects"
	if err := checkIdentifier("term", term.TermID); err != nil {
		return nil, c.fail(op, err)
	}

	q := newQuery(subjectsPath).
		filter(termSubjectsFilter(term.TermID)).
		orderBy("Abbreviation", ascending)

	var subjects []Subject
	if err := c.get(ctx, q.url(c.baseURL), &subjects); err != nil {
		return nil, c.fail(op, err)
	}
	slices.SortStableFunc(subjects, func(a, b Subject) int {
		return strings.Compare(a.Abbreviation, b.Abbreviation)
	})
	return nonNil(subjects), nil
}

// FetchTermSubjectCount implements Client.
func (c *DataClient) FetchTermSubjectCount(ctx context.Context, term Term) (int, error) {
	const op = "fetch term subject count"
	if err := checkIdentifier("term", term.TermID); err != nil {
		return 0, c.fail(op, err)
	}
	return c.count(ctx, op, newQuery(subjectsPath+countSegment).filter(termSubjectsFilter(term.TermID)))
}

// FetchTermCourseCount implements Client.
func (c *DataClient) FetchTermCourseCount(ctx context.Context, term Term) (int, error) {
	const op = "fetch term course count"
	if err := checkIdentifier("term", term.TermID); err != nil {
		return 0, c.fail(op, err)
	}
	return c.count(ctx, op, newQuery(coursesPath+countSegment).filter(termCoursesFilter(term.TermID)))
}

// FetchTermSectionCount implements Client.
func (c *DataClient) FetchTermSectionCount(ctx context.Context, term Term) (int, error) {
	const op = "fetch term section count"
	if err := checkIdentifier("term", term.TermID); err != nil {
		return 0, c.fail(op, err)
	}
	return c.count(ctx, op, newQuery(sectionsPath+countSegment).filter(termSectionsFilter(term.TermID)))
}

// FetchTermFilledSectionCount implements Client. A section is filled when
// it has no remaining space.
func (c *DataClient) FetchTermFilledSectionCount(ctx context.Context, term Term) (int, error) {
	const op = "fetch term filled section count"
	if err := checkIdentifier("term", term.TermID); err != nil {
		return 0, c.fail(op, err)
	}
	return c.count(ctx, op, newQuery(sectionsPath+countSegment).filter(termFilledSectionsFilter(term.TermID)))
}

// FetchTermSubjectCoursesCount implements Client.
func (c *DataClient) FetchTermSubjectCoursesCount(ctx context.Context, term Term, subject Subject) (int, error) {
	const op = "fetch term subject courses count"
	if err := checkTermSubject(term, subject); err != nil {
		return 0, c.fail(op, err)
	}
	return c.count(ctx, op, newQuery(coursesPath+countSegment).
		filter(termSubjectCoursesFilter(term.TermID, subject.SubjectID)))
}

// FetchTermSubjectCourses implements Client. Courses are ordered by number.
func (c *DataClient) FetchTermSubjectCourses(ctx context.Context, term Term, subject Subject) ([]Course, error) {
	const op = "fetch term subject courses"
	if err := checkTermSubject(term, subject); err != nil {
		return nil, c.fail(op, err)
	}

	q := newQuery(coursesPath).
		filter(termSubjectCoursesFilter(term.TermID, subject.SubjectID)).
		orderBy("Number", ascending)

	var courses []Course
	if err := c.get(ctx, q.url(c.baseURL), &courses); err != nil {
		return nil, c.fail(op, err)
	}
	slices.SortStableFunc(courses, func(a, b Course) int {
		return strings.Compare(a.Number, b.Number)
	})
	return nonNil(courses), nil
}

// FetchTermSubjectInstructorsCount implements Client. It counts distinct
// instructors teaching any meeting of the subject in the term.
func (c *DataClient) FetchTermSubjectInstructorsCount(ctx context.Context, term Term, subject Subject) (int, error) {
	const op = "fetch term subject instructors count"
	if err := checkTermSubject(term, subject); err != nil {
		return 0, c.fail(op, err)
	}
	return c.count(ctx, op, newQuery(instructorsPath+countSegment).
		filter(termSubjectInstructorsFilter(term.TermID, subject.SubjectID)))
}

// FetchTermCourseDetails implements Client. The course (with subject) is
// fetched first; its classes in the term are fetched only after that
// succeeds and are attached as Classes.
func (c *DataClient) FetchTermCourseDetails(ctx context.Context, term Term, course Course) (*CourseDetails, error) {
	const op = "fetch term course details"
	if err := checkIdentifier("term", term.TermID); err != nil {
		return nil, c.fail(op, err)
	}
	if err := checkIdentifier("course", course.CourseID); err != nil {
		return nil, c.fail(op, err)
	}

	courseQuery := newQuery(coursesPath + "(" + course.CourseID + ")").expand("Subject")
	var details *CourseDetails
	if err := c.get(ctx, courseQuery.url(c.baseURL), &details); err != nil {
		return nil, c.fail(op, err)
	}
	if details == nil || details.CourseID == "" {
		return nil, c.fail(op, errors.New("course response has no course"))
	}

	classQuery := newQuery(classesPath).
		filter(courseClassesFilter(course.CourseID, term.TermID)).
		expand(classDetailsExpand)
	var classes []ClassDetails
	if err := c.get(ctx, classQuery.url(c.baseURL), &classes); err != nil {
		return nil, c.fail(op, err)
	}

	details.Classes = nonNil(classes)
	return details, nil
}

// get issues a GET with whatever credentials are stored.
func (c *DataClient) get(ctx context.Context, url string, out interface{}) error {
	var creds *Credentials
	if stored, ok := c.Credentials(); ok {
		creds = &stored
	}
	return c.fetcher.GetJSON(ctx, url, creds, out)
}

// count fetches a $count endpoint. A negative count is a malformed response.
func (c *DataClient) count(ctx context.Context, op string, q *query) (int, error) {
	var n *int
	if err := c.get(ctx, q.url(c.baseURL), &n); err != nil {
		return 0, c.fail(op, err)
	}
	if n == nil {
		return 0, c.fail(op, errors.New("count response is null"))
	}
	if *n < 0 {
		return 0, c.fail(op, fmt.Errorf("negative count %d", *n))
	}
	return *n, nil
}

// fail logs the cause and folds it into ErrRequestFailed.
func (c *DataClient) fail(op string, cause error) error {
	c.logger.Warn().Err(cause).Str("operation", op).Msg("catalog request failed")
	return fmt.Errorf("%s: %w: %w", op, catalogerrors.ErrRequestFailed, cause)
}

func checkTermSubject(term Term, subject Subject) error {
	if err := checkIdentifier("term", term.TermID); err != nil {
		return err
	}
	return checkIdentifier("subject", subject.SubjectID)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

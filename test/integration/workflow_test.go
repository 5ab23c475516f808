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

package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sanbir/WebApp/internal/catalog"
	catalogerrors "github.com/sanbir/WebApp/internal/errors"
	"github.com/sanbir/WebApp/test/testutil"
)

// TestStudentWorkflow walks the path a schedule viewer takes: sign in, load
// the schedule, then drill into one enrolled course.
func TestStudentWorkflow(t *testing.T) {
	server := testutil.NewCatalogServer(t)
	ctx := context.Background()

	subject := testutil.SubjectJSON("CS", "Computer Sciences")
	course := testutil.CourseJSON("18000", "Problem Solving", subject)
	term := testutil.TermJSON("Fall 2024", "2024-08-19T00:00:00Z")
	ids := testutil.NewSectionIDs(3)

	server.RequireBasicAuth("/Student/Authenticate", "pete", "boilerup", true)
	server.HandleRaw("/Student/Schedule", http.StatusOK,
		fmt.Sprintf(`{"Fall2024": [%q, %q], "Spring2025": [%q]}`, ids[0], ids[1], ids[2]))
	server.HandleJSON("/odata/Sections", http.StatusOK, []interface{}{
		testutil.SectionExpandedJSON(ids[0], course, term),
		testutil.SectionExpandedJSON(ids[1], course, term),
		testutil.SectionExpandedJSON(ids[2], course, term),
	})
	courseID := course["CourseId"].(string)
	server.HandleJSON("/odata/Courses("+courseID+")", http.StatusOK, course)
	server.HandleJSON("/odata/Classes", http.StatusOK, []interface{}{testutil.ClassJSON(term)})

	client := catalog.New(server.URL)

	if _, err := client.Authenticate(ctx, "pete", "boilerup"); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	sections, err := client.FetchUserSchedule(ctx)
	if err != nil {
		t.Fatalf("FetchUserSchedule failed: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}

	filter := server.RequestsTo("/odata/Sections")[0].Filter()
	want := "SectionId eq " + ids[0] + " or SectionId eq " + ids[1] + " or SectionId eq " + ids[2]
	if filter != want {
		t.Errorf("$filter = %q, want %q", filter, want)
	}

	enrolled := sections[0].Class
	details, err := client.FetchTermCourseDetails(ctx, *enrolled.Term, *enrolled.Course)
	if err != nil {
		t.Fatalf("FetchTermCourseDetails failed: %v", err)
	}
	if details.Subject == nil || details.Subject.Abbreviation != "CS" {
		t.Errorf("course subject = %+v", details.Subject)
	}
	if len(details.Classes) != 1 || len(details.Classes[0].Sections) != 1 {
		t.Errorf("classes = %+v", details.Classes)
	}

	// Every request after sign-in carries the stored credentials.
	for _, req := range server.Requests() {
		if req.Username != "pete" || req.Password != "boilerup" {
			t.Errorf("%s sent without stored credentials", req.Path)
		}
	}
}

// TestBrowseWorkflow covers the anonymous catalog browser: terms, subjects,
// courses, and the statistics shown beside them.
func TestBrowseWorkflow(t *testing.T) {
	server := testutil.NewCatalogServer(t)
	ctx := context.Background()

	fall := testutil.TermJSON("Fall 2024", "2024-08-19T00:00:00Z")
	server.HandleJSON("/odata/Terms", http.StatusOK, []interface{}{
		testutil.TermJSON("Summer 2024", "2024-05-13T00:00:00Z"),
		fall,
	})
	cs := testutil.SubjectJSON("CS", "Computer Sciences")
	server.HandleJSON("/odata/Subjects", http.StatusOK, []interface{}{testutil.SubjectJSON("MA", "Mathematics"), cs})
	server.HandleJSON("/odata/Courses", http.StatusOK, []interface{}{testutil.CourseJSON("18000", "Problem Solving", nil)})
	for path, n := range map[string]string{
		"/odata/Subjects/$count":    "160",
		"/odata/Courses/$count":     "5400",
		"/odata/Sections/$count":    "12000",
		"/odata/Instructors/$count": "88",
	} {
		server.HandleRaw(path, http.StatusOK, n)
	}

	client := catalog.New(server.URL)

	terms, err := client.FetchTerms(ctx)
	if err != nil {
		t.Fatalf("FetchTerms failed: %v", err)
	}
	if terms[0].Name != "Fall 2024" {
		t.Errorf("most recent term = %q, want Fall 2024", terms[0].Name)
	}

	subjects, err := client.FetchTermSubjects(ctx, terms[0])
	if err != nil {
		t.Fatalf("FetchTermSubjects failed: %v", err)
	}
	if subjects[0].Abbreviation != "CS" {
		t.Errorf("first subject = %q, want CS", subjects[0].Abbreviation)
	}

	if _, err := client.FetchTermSubjectCourses(ctx, terms[0], subjects[0]); err != nil {
		t.Fatalf("FetchTermSubjectCourses failed: %v", err)
	}

	checks := []struct {
		name string
		call func() (int, error)
		want int
	}{
		{"subjects", func() (int, error) { return client.FetchTermSubjectCount(ctx, terms[0]) }, 160},
		{"courses", func() (int, error) { return client.FetchTermCourseCount(ctx, terms[0]) }, 5400},
		{"sections", func() (int, error) { return client.FetchTermSectionCount(ctx, terms[0]) }, 12000},
		{"filled sections", func() (int, error) { return client.FetchTermFilledSectionCount(ctx, terms[0]) }, 12000},
		{"subject courses", func() (int, error) { return client.FetchTermSubjectCoursesCount(ctx, terms[0], subjects[0]) }, 5400},
		{"instructors", func() (int, error) { return client.FetchTermSubjectInstructorsCount(ctx, terms[0], subjects[0]) }, 88},
	}
	for _, c := range checks {
		got, err := c.call()
		if err != nil {
			t.Errorf("%s count failed: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s count = %d, want %d", c.name, got, c.want)
		}
	}

	for _, req := range server.Requests() {
		if req.BasicAuth {
			t.Errorf("anonymous request to %s carried credentials", req.Path)
		}
	}
}

func TestConcurrentReadsDuringScheduleRefresh(t *testing.T) {
	server := testutil.NewCatalogServer(t)
	server.RequireBasicAuth("/Student/Authenticate", "pete", "boilerup", true)
	server.HandleRaw("/Student/Schedule", http.StatusOK, `{"Fall2024": ["a1"]}`)
	server.HandleJSON("/odata/Sections", http.StatusOK, []interface{}{
		testutil.SectionExpandedJSON("a1", nil, testutil.TermJSON("Fall 2024", "2024-08-19")),
	})
	server.HandleJSON("/odata/Terms", http.StatusOK, []interface{}{})

	ctx := context.Background()
	client := catalog.New(server.URL)
	if _, err := client.Authenticate(ctx, "pete", "boilerup"); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := client.FetchUserSchedule(ctx); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := client.FetchTerms(ctx); err != nil {
				errs <- err
			}
			_ = client.EnrolledSections()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent call failed: %v", err)
	}
	if got := client.EnrolledSections(); len(got) != 1 || got[0].SectionID != "a1" {
		t.Errorf("cached schedule = %+v", got)
	}
}

func TestRateLimitedClient(t *testing.T) {
	server := testutil.NewCatalogServer(t)
	server.HandleRaw("/odata/Courses/$count", http.StatusOK, "7")

	fetcher := catalog.NewHTTPFetcher(catalog.FetcherOptions{
		Timeout:           5 * time.Second,
		RequestsPerSecond: 20,
		Burst:             2,
	}, zerolog.Nop())
	client := catalog.New(server.URL, catalog.WithFetcher(fetcher))

	start := time.Now()
	for i := 0; i < 6; i++ {
		if _, err := client.FetchTermCourseCount(context.Background(), catalog.Term{TermID: "T1"}); err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}
	// Two requests ride the burst; the remaining four wait 50ms each.
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("six requests took %v, expected throttling", elapsed)
	}
}

func TestNetworkFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testutil.CatalogServer)
	}{
		{
			name: "unauthorized",
			setup: func(s *testutil.CatalogServer) {
				s.HandleStatus("/odata/Terms", http.StatusUnauthorized)
			},
		},
		{
			name: "truncated body",
			setup: func(s *testutil.CatalogServer) {
				s.HandleRaw("/odata/Terms", http.StatusOK, `[{"TermId": "t1", "Name": "Fall`)
			},
		},
		{
			name: "connection dropped",
			setup: func(s *testutil.CatalogServer) {
				s.HandleFunc("/odata/Terms", func(w http.ResponseWriter, r *http.Request) {
					hj, ok := w.(http.Hijacker)
					if !ok {
						w.WriteHeader(http.StatusInternalServerError)
						return
					}
					conn, _, err := hj.Hijack()
					if err == nil {
						conn.Close()
					}
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewCatalogServer(t)
			tt.setup(server)

			var logs strings.Builder
			client := catalog.New(server.URL, catalog.WithLogger(zerolog.New(&logs)))

			terms, err := client.FetchTerms(context.Background())
			if !errors.Is(err, catalogerrors.ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}
			if terms != nil {
				t.Errorf("terms = %v, want nil", terms)
			}
			if !strings.Contains(logs.String(), `"operation":"fetch terms"`) {
				t.Errorf("failure not logged: %s", logs.String())
			}
		})
	}
}

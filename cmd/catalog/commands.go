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

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sanbir/WebApp/internal/catalog"
	catalogerrors "github.com/sanbir/WebApp/internal/errors"
	"github.com/sanbir/WebApp/internal/state"
)

type credentialFlags struct {
	username string
	password string
}

func addCredentialFlags(cmd *cobra.Command, f *credentialFlags) {
	cmd.Flags().StringVar(&f.username, "username", "", "Purdue username (overrides the configured env var)")
	cmd.Flags().StringVar(&f.password, "password", "", "Purdue password (overrides the configured env var)")
}

// credentials returns the flag values, falling back to the environment
// variables named in config.
func (a *app) credentials(f credentialFlags) (username, password string) {
	envUser, envPass := a.cfg.Credentials()
	username, password = f.username, f.password
	if username == "" {
		username = envUser
	}
	if password == "" {
		password = envPass
	}
	return username, password
}

func (a *app) authenticate(ctx context.Context, f credentialFlags) (string, error) {
	username, password := a.credentials(f)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: set %s and %s or use --username and --password",
			catalogerrors.ErrNotAuthenticated, a.cfg.Auth.UsernameEnv, a.cfg.Auth.PasswordEnv)
	}
	if _, err := a.client.Authenticate(ctx, username, password); err != nil {
		return "", err
	}
	return username, nil
}

type authRecord struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

func newAuthCommand(a *app) *cobra.Command {
	var creds credentialFlags

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Check that your credentials are accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := a.authenticate(cmd.Context(), creds)
			if err != nil {
				return err
			}
			return writeRecords(a, "accounts", []authRecord{{Username: username, Status: catalog.AuthenticatedToken}})
		},
	}
	addCredentialFlags(cmd, &creds)
	return cmd
}

func newScheduleCommand(a *app) *cobra.Command {
	var (
		creds  credentialFlags
		cached bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Fetch your enrolled sections",
		Long: `Fetch the signed-in student's enrolled sections across all terms, with
class, course, subject, term and meetings expanded.

Each successful fetch is saved to the state directory; --cached prints the
saved copy without contacting the service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached {
				return runCachedSchedule(a, creds)
			}
			return runSchedule(cmd.Context(), a, creds)
		},
	}
	addCredentialFlags(cmd, &creds)
	cmd.Flags().BoolVar(&cached, "cached", false, "Print the last saved schedule instead of fetching")
	return cmd
}

func runSchedule(ctx context.Context, a *app, creds credentialFlags) error {
	username, err := a.authenticate(ctx, creds)
	if err != nil {
		return err
	}

	sections, err := a.client.FetchUserSchedule(ctx)
	if err != nil {
		return err
	}

	snapshot := &state.ScheduleSnapshot{
		Username:  username,
		FetchedAt: time.Now().UTC(),
		Sections:  sections,
	}
	path := state.GetScheduleFilePath(a.cfg.Defaults.StateDir, username)
	if err := state.SaveSchedule(snapshot, path); err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("could not save schedule snapshot")
	} else {
		a.logger.Debug().Str("path", path).Int("sections", len(sections)).Msg("schedule snapshot saved")
	}

	return writeRecords(a, "sections", sections)
}

func runCachedSchedule(a *app, creds credentialFlags) error {
	username, _ := a.credentials(creds)
	if username == "" {
		return fmt.Errorf("%w: a username is needed to find the saved schedule", catalogerrors.ErrNotAuthenticated)
	}

	snapshot, err := state.LoadSchedule(state.GetScheduleFilePath(a.cfg.Defaults.StateDir, username))
	if err != nil {
		return err
	}
	a.logger.Info().Time("fetched_at", snapshot.FetchedAt).Msg("using saved schedule")
	return writeRecords(a, "sections", snapshot.Sections)
}

func newTermsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "terms",
		Short: "List terms, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := a.client.FetchTerms(cmd.Context())
			if err != nil {
				return err
			}
			return writeRecords(a, "terms", terms)
		},
	}
}

func newSubjectsCommand(a *app) *cobra.Command {
	var termID string

	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List subjects with at least one class in a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := a.client.FetchTermSubjects(cmd.Context(), catalog.Term{TermID: termID})
			if err != nil {
				return err
			}
			return writeRecords(a, "subjects", subjects)
		},
	}
	cmd.Flags().StringVar(&termID, "term", "", "Term id")
	_ = cmd.MarkFlagRequired("term")
	return cmd
}

func newCoursesCommand(a *app) *cobra.Command {
	var termID, subjectID string

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List a subject's courses offered in a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := a.client.FetchTermSubjectCourses(cmd.Context(),
				catalog.Term{TermID: termID}, catalog.Subject{SubjectID: subjectID})
			if err != nil {
				return err
			}
			return writeRecords(a, "courses", courses)
		},
	}
	cmd.Flags().StringVar(&termID, "term", "", "Term id")
	cmd.Flags().StringVar(&subjectID, "subject", "", "Subject id")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newCourseCommand(a *app) *cobra.Command {
	var termID, courseID string

	cmd := &cobra.Command{
		Use:   "course",
		Short: "Show a course with its classes, sections and meetings in a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := a.client.FetchTermCourseDetails(cmd.Context(),
				catalog.Term{TermID: termID}, catalog.Course{CourseID: courseID})
			if err != nil {
				return err
			}
			return writeRecords(a, "courses", []*catalog.CourseDetails{details})
		},
	}
	cmd.Flags().StringVar(&termID, "term", "", "Term id")
	cmd.Flags().StringVar(&courseID, "course", "", "Course id")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

// termCounts summarizes a term.
type termCounts struct {
	TermID         string `json:"TermId"`
	Subjects       int    `json:"Subjects"`
	Courses        int    `json:"Courses"`
	Sections       int    `json:"Sections"`
	FilledSections int    `json:"FilledSections"`
}

// subjectCounts summarizes one subject within a term.
type subjectCounts struct {
	TermID      string `json:"TermId"`
	SubjectID   string `json:"SubjectId"`
	Courses     int    `json:"Courses"`
	Instructors int    `json:"Instructors"`
}

func newCountsCommand(a *app) *cobra.Command {
	var termID, subjectID string

	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Show enrollment statistics for a term or a subject in a term",
		Long: `Show how many subjects, courses, sections and filled sections a term has.
With --subject, show the subject's course and instructor counts instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			term := catalog.Term{TermID: termID}
			if subjectID != "" {
				counts, err := fetchSubjectCounts(cmd.Context(), a.client, term, catalog.Subject{SubjectID: subjectID})
				if err != nil {
					return err
				}
				return writeRecords(a, "summaries", []subjectCounts{counts})
			}

			counts, err := fetchTermCounts(cmd.Context(), a.client, term)
			if err != nil {
				return err
			}
			return writeRecords(a, "summaries", []termCounts{counts})
		},
	}
	cmd.Flags().StringVar(&termID, "term", "", "Term id")
	cmd.Flags().StringVar(&subjectID, "subject", "", "Subject id (optional)")
	_ = cmd.MarkFlagRequired("term")
	return cmd
}

// fetchTermCounts issues the four term counts concurrently. The first
// failure cancels the rest.
func fetchTermCounts(ctx context.Context, client catalog.Client, term catalog.Term) (termCounts, error) {
	counts := termCounts{TermID: term.TermID}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Subjects, err = client.FetchTermSubjectCount(ctx, term)
		return err
	})
	g.Go(func() (err error) {
		counts.Courses, err = client.FetchTermCourseCount(ctx, term)
		return err
	})
	g.Go(func() (err error) {
		counts.Sections, err = client.FetchTermSectionCount(ctx, term)
		return err
	})
	g.Go(func() (err error) {
		counts.FilledSections, err = client.FetchTermFilledSectionCount(ctx, term)
		return err
	})

	if err := g.Wait(); err != nil {
		return termCounts{}, err
	}
	return counts, nil
}

func fetchSubjectCounts(ctx context.Context, client catalog.Client, term catalog.Term, subject catalog.Subject) (subjectCounts, error) {
	counts := subjectCounts{TermID: term.TermID, SubjectID: subject.SubjectID}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Courses, err = client.FetchTermSubjectCoursesCount(ctx, term, subject)
		return err
	})
	g.Go(func() (err error) {
		counts.Instructors, err = client.FetchTermSubjectInstructorsCount(ctx, term, subject)
		return err
	})

	if err := g.Wait(); err != nil {
		return subjectCounts{}, err
	}
	return counts, nil
}

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
	"net/http"
	"strings"
	"testing"

	"github.com/sanbir/WebApp/test/testutil"
)

func TestCLI_HelpCommand(t *testing.T) {
	result := testutil.RunCLI(t, []string{"--help"}, nil)
	testutil.AssertCLISuccess(t, result)

	for _, sub := range []string{"auth", "schedule", "terms", "subjects", "courses", "course", "counts"} {
		if !strings.Contains(result.Stdout, sub) {
			t.Errorf("help output missing %q command:\n%s", sub, result.Stdout)
		}
	}
}

func TestCLI_VersionFlag(t *testing.T) {
	result := testutil.RunCLI(t, []string{"--version"}, nil)
	testutil.AssertCLISuccess(t, result)

	if !strings.Contains(result.Stdout, "purdueio version") {
		t.Errorf("unexpected version output: %q", result.Stdout)
	}
}

func TestCLI_ExitCodes(t *testing.T) {
	server := testutil.NewCatalogServer(t)
	server.RequireBasicAuth("/Student/Authenticate", "pete", "boilerup", true)
	server.HandleStatus("/odata/Terms", http.StatusInternalServerError)

	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		wantCode int
	}{
		{
			name:     "authenticated",
			args:     []string{"auth"},
			env:      map[string]string{"PURDUEIO_USERNAME": "pete", "PURDUEIO_PASSWORD": "boilerup"},
			wantCode: 0,
		},
		{
			name:     "no credentials",
			args:     []string{"auth"},
			wantCode: 2,
		},
		{
			name:     "schedule without credentials",
			args:     []string{"schedule"},
			wantCode: 2,
		},
		{
			name:     "rejected credentials",
			args:     []string{"auth", "--username", "pete", "--password", "iu"},
			wantCode: 3,
		},
		{
			name:     "service error",
			args:     []string{"terms"},
			wantCode: 3,
		},
		{
			name:     "unsafe identifier",
			args:     []string{"subjects", "--term", "x or 1 eq 1"},
			wantCode: 3,
		},
		{
			name:     "invalid output format",
			args:     []string{"terms", "--format", "yaml"},
			wantCode: 1,
		},
		{
			name:     "unknown flag",
			args:     []string{"terms", "--nope"},
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunAgainstServer(t, server, tt.env, tt.args...)
			testutil.AssertExitCode(t, result, tt.wantCode)
		})
	}
}

func TestCLI_CoursesEndToEnd(t *testing.T) {
	server := testutil.NewCatalogServer(t)
	server.HandleJSON("/odata/Courses", http.StatusOK, []interface{}{
		testutil.CourseJSON("25000", "Computer Architecture", nil),
		testutil.CourseJSON("18000", "Problem Solving", nil),
	})

	result := testutil.RunAgainstServer(t, server, nil,
		"courses", "--term", "T1", "--subject", "S1")
	testutil.AssertCLISuccess(t, result)

	records := testutil.ParseNDJSON(t, result.Stdout)
	if len(records) != 2 || records[0]["Number"] != "18000" {
		t.Errorf("courses not sorted by number: %v", records)
	}

	last := server.LastRequest(t)
	if want := "(Classes/any(c: c/Term/TermId eq T1)) and Subject/SubjectId eq S1"; last.Filter() != want {
		t.Errorf("$filter = %q, want %q", last.Filter(), want)
	}
	if !strings.HasPrefix(last.UserAgent, "purdueio-catalog/") {
		t.Errorf("User-Agent = %q", last.UserAgent)
	}
}

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
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestCatalogServer_RoutesAndRecords(t *testing.T) {
	server := NewCatalogServer(t)
	server.HandleJSON("/odata/Terms", http.StatusOK, []interface{}{TermJSON("Fall 2024", "2024-08-19")})

	req, err := http.NewRequest(http.MethodGet, server.URL+"/odata/Terms?$orderby=StartDate%20desc", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.SetBasicAuth("pete", "boilerup")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var terms []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&terms); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(terms) != 1 || terms[0]["Name"] != "Fall 2024" {
		t.Errorf("unexpected terms: %v", terms)
	}

	last := server.LastRequest(t)
	if last.Path != "/odata/Terms" {
		t.Errorf("Path = %q, want /odata/Terms", last.Path)
	}
	if got := last.Query.Get("$orderby"); got != "StartDate desc" {
		t.Errorf("$orderby = %q, want %q", got, "StartDate desc")
	}
	if !last.BasicAuth || last.Username != "pete" || last.Password != "boilerup" {
		t.Errorf("basic auth not recorded: %+v", last)
	}
}

func TestCatalogServer_UnknownPath(t *testing.T) {
	server := NewCatalogServer(t)

	resp, err := http.Get(server.URL + "/odata/Nope")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if n := len(server.RequestsTo("/odata/Nope")); n != 1 {
		t.Errorf("recorded %d requests, want 1", n)
	}
}

func TestCatalogServer_RequireBasicAuth(t *testing.T) {
	server := NewCatalogServer(t)
	server.RequireBasicAuth("/Student/Authenticate", "pete", "boilerup", true)

	tests := []struct {
		name       string
		user, pass string
		auth       bool
		wantStatus int
	}{
		{name: "correct credentials", user: "pete", pass: "boilerup", auth: true, wantStatus: http.StatusOK},
		{name: "wrong password", user: "pete", pass: "iu", auth: true, wantStatus: http.StatusUnauthorized},
		{name: "no credentials", auth: false, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, server.URL+"/Student/Authenticate", nil)
			if tt.auth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestCatalogServer_HandleRawAndStatus(t *testing.T) {
	server := NewCatalogServer(t)
	server.HandleRaw("/odata/Terms", http.StatusOK, "{not json")
	server.HandleStatus("/odata/Subjects", http.StatusServiceUnavailable)

	resp, err := http.Get(server.URL + "/odata/Terms")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "{not json" {
		t.Errorf("body = %q, want raw body", body)
	}

	resp, err = http.Get(server.URL + "/odata/Subjects")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestNewErrorServer(t *testing.T) {
	server := NewErrorServer(t, http.StatusBadGateway)

	resp, err := http.Get(server.URL + "/anything")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestFixturesUseDistinctIDs(t *testing.T) {
	a := TermJSON("Fall 2024", "2024-08-19")
	b := TermJSON("Fall 2024", "2024-08-19")
	if a["TermId"] == b["TermId"] {
		t.Error("expected distinct term ids")
	}

	ids := NewSectionIDs(3)
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate section id %s", id)
		}
		seen[id] = true
	}
}

func TestParseNDJSON(t *testing.T) {
	records := ParseNDJSON(t, "{\"a\":1}\n\n{\"a\":2}\n")
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if !strings.Contains(CreateTempFile(t, t.TempDir(), "x-*.ndjson", "{}"), "x-") {
		t.Error("temp file name should keep pattern prefix")
	}
}

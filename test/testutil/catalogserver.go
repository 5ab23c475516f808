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

// Package testutil provides common test helpers for the catalog client
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is what the fake server saw for one request.
type RecordedRequest struct {
	Method    string
	Path      string
	RawQuery  string
	Query     url.Values
	Username  string
	Password  string
	BasicAuth bool
	UserAgent string
}

// Filter returns the decoded $filter option.
func (r RecordedRequest) Filter() string {
	return r.Query.Get("$filter")
}

// CatalogServer is an httptest server that answers catalog paths with
// canned JSON and records every request.
type CatalogServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []RecordedRequest
}

// NewCatalogServer starts a server with no routes; unknown paths get 404.
// The server is closed when the test ends.
func NewCatalogServer(t *testing.T) *CatalogServer {
	t.Helper()

	s := &CatalogServer{routes: make(map[string]http.HandlerFunc)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *CatalogServer) serve(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:    r.Method,
		Path:      r.URL.Path,
		RawQuery:  r.URL.RawQuery,
		Query:     r.URL.Query(),
		Username:  user,
		Password:  pass,
		BasicAuth: ok,
		UserAgent: r.UserAgent(),
	})
	handler, found := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !found {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}

// HandleJSON answers path with status and body encoded as JSON.
func (s *CatalogServer) HandleJSON(path string, status int, body interface{}) {
	s.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		WriteJSONResponse(w, status, body)
	})
}

// HandleStatus answers path with a bare status code.
func (s *CatalogServer) HandleStatus(path string, status int) {
	s.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(http.StatusText(status)))
	})
}

// HandleRaw answers path with a raw body, useful for malformed responses.
func (s *CatalogServer) HandleRaw(path string, status int, body string) {
	s.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// HandleFunc registers a custom handler for path.
func (s *CatalogServer) HandleFunc(path string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = handler
}

// RequireBasicAuth answers path with body only when the request carries the
// given credentials, and 401 otherwise.
func (s *CatalogServer) RequireBasicAuth(path, username, password string, body interface{}) {
	s.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != username || pass != password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		WriteJSONResponse(w, http.StatusOK, body)
	})
}

// Requests returns a copy of every recorded request in arrival order.
func (s *CatalogServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo returns the recorded requests for one path.
func (s *CatalogServer) RequestsTo(path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range s.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// LastRequest returns the most recent request. It fails the test if the
// server has seen none.
func (s *CatalogServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("catalog server received no requests")
	}
	return reqs[len(reqs)-1]
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	}))
	t.Cleanup(server.Close)
	return server
}

// WriteJSONResponse writes body as a JSON response.
func WriteJSONResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

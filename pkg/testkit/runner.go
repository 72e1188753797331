package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

// Run executes one scenario file against handler.
func Run(t *testing.T, handler http.Handler, scenarioPath string, vars Vars) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s, vars)
	})
}

// RunDir runs every *.json file in dir as an independent scenario. Files
// that fail to load are reported as failures of the parent test.
func RunDir(t *testing.T, handler http.Handler, dir string, vars Vars) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}

	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			t.Errorf("testkit: load %q: %v", path, err)
			continue
		}
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s, vars)
		})
	}
}

// runScenario fires the request, checks it and returns the decoded body
// (nil when it is not JSON) for captures.
func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars Vars) any {
	t.Helper()

	raw, err := s.requestBody()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}

	var body io.Reader
	if raw != nil {
		body = bytes.NewReader([]byte(vars.expand(string(raw))))
	}

	req := httptest.NewRequest(s.Method, vars.expand(s.URL), body)
	req.Header.Set("Accept", "application/json")
	if raw != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range s.Headers {
		req.Header.Set(k, vars.expand(v))
	}
	for name, v := range s.Cookies {
		if v = vars.expand(v); v != "" {
			req.AddCookie(&http.Cookie{Name: name, Value: v})
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	AssertHeaders(t, s, rec.Header())

	var decoded any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}

	expected, err := s.expectedBody()
	if err != nil {
		t.Errorf("[%s] read expected body: %v", s.Name, err)
	} else if expected != nil {
		AssertJSONSubset(t, s, []byte(vars.expand(string(expected))), rec.Body.Bytes())
	}
	return decoded
}

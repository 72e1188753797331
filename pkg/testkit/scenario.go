// Package testkit drives HTTP tests from JSON scenario files.
//
// Each scenario describes:
//   - the request to fire (method, url, inline body or body file, headers, cookies)
//   - the expected status code
//   - an expected JSON subset of the response body (inline or from a file)
//   - response values to capture for later steps of a suite
//
// Strings in the url, body, headers and cookies may reference variables as
// {{name}}. Variables come from the test (tokens, seeded ids) and from
// captures of earlier steps.
//
//	testdata/
//	  review_lifecycle.json     ← suite: array of steps run in order
//	  health.json               ← single scenario
//
//	func TestAPI(t *testing.T) {
//	    vars := testkit.Vars{"adminToken": tok}
//	    testkit.RunSuite(t, handler, "testdata/review_lifecycle.json", vars)
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Scenario is a single HTTP test case.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	Method          string            `json:"method"`
	URL             string            `json:"url"`
	Body            json.RawMessage   `json:"body"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	Headers         map[string]string `json:"headers"`
	Cookies         map[string]string `json:"cookies"`

	// Response assertions
	ExpectedCode     int               `json:"expectedCode"`
	ExpectedBody     json.RawMessage   `json:"expectedBody"`     // subset of the response
	ResponseFileName string            `json:"responseFileName"` // subset, from a file
	ExpectedHeaders  map[string]string `json:"expectedHeaders"`

	// Capture maps a variable name to a dotted path in the response body.
	Capture map[string]string `json:"capture"`

	dir string
}

// Vars are the {{name}} substitutions available to a scenario.
type Vars map[string]string

func (v Vars) expand(s string) string {
	if len(v) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	pairs := make([]string, 0, len(v)*2)
	for k, val := range v {
		pairs = append(pairs, "{{"+k+"}}", val)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func (v Vars) clone() Vars {
	out := make(Vars, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	return &s, nil
}

// LoadSuite reads an array of scenarios that run in order.
func LoadSuite(path string) ([]*Scenario, error) {
	abs, data, err := read(path)
	if err != nil {
		return nil, err
	}

	var steps []*Scenario
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("testkit: parse suite %q: %w", abs, err)
	}
	for i, s := range steps {
		s.dir = filepath.Dir(abs)
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid step %d of %q: %w", i, abs, err)
		}
	}
	return steps, nil
}

// LoadAllFromDir loads every *.json file in dir as a single scenario.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}

func read(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}
	return abs, data, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.URL == "" {
		return fmt.Errorf("url is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.Method == "" {
		s.Method = http.MethodGet
	}
	s.Method = strings.ToUpper(s.Method)
	if len(s.Body) > 0 && s.RequestFileName != "" {
		return fmt.Errorf("body and requestFileName are exclusive")
	}
	return nil
}

// requestBody returns the raw request body, or nil when there is none.
func (s *Scenario) requestBody() ([]byte, error) {
	if len(s.Body) > 0 {
		return s.Body, nil
	}
	if s.RequestFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.RequestFileName))
}

// expectedBody returns the expected response subset, or nil when unchecked.
func (s *Scenario) expectedBody() ([]byte, error) {
	if len(s.ExpectedBody) > 0 {
		return s.ExpectedBody, nil
	}
	if s.ResponseFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.ResponseFileName))
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

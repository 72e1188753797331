package testkit

import (
	"fmt"
	"net/http"
	"testing"
)

// RunSuite runs the steps of a suite file in order against one handler.
// Values captured by a step are visible to every later step. A failed
// capture stops the suite, since later steps would fire at the wrong URL.
func RunSuite(t *testing.T, handler http.Handler, suitePath string, vars Vars) Vars {
	t.Helper()

	steps, err := LoadSuite(suitePath)
	if err != nil {
		t.Fatalf("testkit: load suite %q: %v", suitePath, err)
	}

	state := vars.clone()
	for i, s := range steps {
		ok := t.Run(fmt.Sprintf("%02d_%s", i+1, s.Name), func(t *testing.T) {
			decoded := runScenario(t, handler, s, state)
			for name, path := range s.Capture {
				v, found := Lookup(decoded, path)
				if !found {
					t.Fatalf("[%s] capture %s: %q not in response", s.Name, name, path)
				}
				state[name] = fmt.Sprint(v)
			}
		})
		if !ok && len(s.Capture) > 0 {
			t.Fatalf("testkit: step %q failed before its captures", s.Name)
		}
	}
	return state
}

package engine

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chazu/planekit/pkg/coords"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine(coords.XYZRightHand)

	for _, src := range []string{"", "   \n\t  \n  "} {
		res, evalErrs, err := eng.Evaluate(src)
		if err != nil {
			t.Fatalf("unexpected fatal error: %v", err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("unexpected eval errors: %v", evalErrs)
		}
		if res == nil || res.Scene == nil {
			t.Fatal("expected non-nil scene")
		}
		if res.Scene.PlaneCount() != 0 || res.Scene.SolidCount() != 0 {
			t.Errorf("expected empty scene, got %d planes and %d solids",
				res.Scene.PlaneCount(), res.Scene.SolidCount())
		}
	}
}

func TestEvaluateSceneUsesEngineSystem(t *testing.T) {
	eng := NewEngine(coords.XZYLeftHand)
	res, evalErrs, err := eng.Evaluate("")
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate failed: %v %v", err, evalErrs)
	}
	if res.Scene.System != coords.XZYLeftHand {
		t.Errorf("System = %v, want %v", res.Scene.System, coords.XZYLeftHand)
	}
}

func TestEvaluateMultipleExpressions(t *testing.T) {
	eng := NewEngine(coords.XYZRightHand)

	source := `
(def x 10)
(def y 20)
(+ x y)
`
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if res.Value != "30" {
		t.Errorf("Value = %q, want %q", res.Value, "30")
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine(coords.XYZRightHand)

	// Unmatched paren is a parse error.
	res, evalErrs, err := eng.Evaluate("(+ 1 2")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if res != nil {
		t.Fatal("expected nil result on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine(coords.XYZRightHand)

	res, evalErrs, err := eng.Evaluate("(+ 1 undefined-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if res != nil {
		t.Fatal("expected nil result on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateBuiltinError(t *testing.T) {
	eng := NewEngine(coords.XYZRightHand)

	_, evalErrs, err := eng.Evaluate(`(plane 1 2 3)`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected an eval error for a short coefficient list")
	}
	if !strings.Contains(evalErrs[0].Message, "4 coefficients") {
		t.Errorf("message = %q, want mention of 4 coefficients", evalErrs[0].Message)
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Message: "something went wrong"}
	s := e.Error()
	if !strings.Contains(s, "line 5") {
		t.Errorf("Error() should contain line info, got: %s", s)
	}
	if !strings.Contains(s, "something went wrong") {
		t.Errorf("Error() should contain message, got: %s", s)
	}

	e2 := EvalError{Line: 0, Message: "no location"}
	if s2 := e2.Error(); strings.Contains(s2, "line") {
		t.Errorf("Error() with no line should not contain 'line', got: %s", s2)
	}
}

func TestEvalWarningString(t *testing.T) {
	tests := []struct {
		w    EvalWarning
		want string
	}{
		{EvalWarning{Subject: "floor", Message: "not normalized"}, "floor: not normalized"},
		{EvalWarning{Message: "scene-wide"}, "scene-wide"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := NewEngine(coords.XYZRightHand)

	src := `(defplane "p" (plane 0 0 1 -2)) (distance (plane-ref "p") (vec3 0 0 5))`
	var first string
	for i := 0; i < 5; i++ {
		res, evalErrs, err := eng.Evaluate(src)
		if err != nil {
			t.Fatalf("iteration %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: unexpected eval errors: %v", i, evalErrs)
		}
		if res.Scene.PlaneCount() != 1 {
			t.Errorf("iteration %d: expected 1 plane, got %d", i, res.Scene.PlaneCount())
		}
		if i == 0 {
			first = res.Value
		} else if res.Value != first {
			t.Errorf("iteration %d: Value = %q, want %q", i, res.Value, first)
		}
	}
}

func TestCheckReportsValidation(t *testing.T) {
	eng := NewEngine(coords.XYZRightHand)

	src := `
(defplane "floor" (plane 0 0 2 0))
(clip "floor" "ghost")
`
	er, err := eng.Check(src)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if er.Result == nil {
		t.Fatal("expected a result")
	}

	var sawGhost bool
	for _, e := range er.Errors {
		if strings.Contains(e.Message, "ghost") {
			sawGhost = true
		}
	}
	if !sawGhost {
		t.Errorf("expected an error for the undefined clip plane, got %v", er.Errors)
	}

	var sawScale bool
	for _, w := range er.Warnings {
		if w.Subject == "floor" {
			sawScale = true
		}
	}
	if !sawScale {
		t.Errorf("expected a warning for the unnormalized floor, got %v", er.Warnings)
	}
}

func TestCheckPassesEvalErrorsThrough(t *testing.T) {
	eng := NewEngine(coords.XYZRightHand)

	er, err := eng.Check("(+ 1")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if er.Result != nil {
		t.Error("expected nil result on syntax error")
	}
	if len(er.Errors) == 0 {
		t.Error("expected eval errors")
	}
}

func TestEvaluateTimeout(t *testing.T) {
	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult) // never sends

	done := make(chan struct{})
	var resultErr error
	go func() {
		defer close(done)
		_, _, resultErr = waitWithTimeout(ch, 20*time.Millisecond, 1, &mu, &gen)
	}()

	select {
	case <-done:
		if resultErr == nil {
			t.Fatal("expected timeout error, got nil")
		}
		if !strings.Contains(resultErr.Error(), "timed out") {
			t.Errorf("expected timeout error message, got: %v", resultErr)
		}
	case <-time.After(EvalTimeout):
		t.Fatal("test itself timed out waiting for evaluation timeout")
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2) // current generation

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	// Pass generation 1 (stale).
	_, _, err := waitWithTimeout(ch, time.Second, 1, &mu, &gen)
	if err == nil {
		t.Fatal("expected error for stale generation")
	}
	if !strings.Contains(err.Error(), "superseded") {
		t.Errorf("expected superseded error, got: %v", err)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "error on line format",
			msg:      "Error on line 5: unexpected token\n",
			wantLine: 5,
			wantMsg:  "unexpected token",
		},
		{
			name:     "no line info",
			msg:      "some generic error",
			wantLine: 0,
			wantMsg:  "some generic error",
		},
		{
			name:     "line format lowercase",
			msg:      "error on line 12: missing paren",
			wantLine: 12,
			wantMsg:  "missing paren",
		},
		{
			name:     "short line format",
			msg:      "line 3: bad plane",
			wantLine: 3,
			wantMsg:  "bad plane",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			e := errs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", e.Line, tt.wantLine)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }

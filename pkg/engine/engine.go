// Package engine evaluates plane scripts. It wraps zygomys in a sandboxed
// environment, exposes the plane kernel as Lisp builtins and collects the
// named planes, clip planes and solids a script defines into a scene.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/planekit/pkg/coords"
	"github.com/chazu/planekit/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError is a non-fatal error in user code, such as a parse error or a
// builtin rejecting its arguments.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning is a finding that does not stop evaluation.
type EvalWarning struct {
	Subject string
	Message string
}

func (w EvalWarning) String() string {
	if w.Subject == "" {
		return w.Message
	}
	return w.Subject + ": " + w.Message
}

// Result is what a successful evaluation produces.
type Result struct {
	Scene *scene.Scene
	// Value is the printed form of the last expression.
	Value string
	// Output holds one line per call to show.
	Output []string
}

// EvalResult bundles an evaluation with scene validation.
type EvalResult struct {
	*Result
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine evaluates scripts. It is safe for concurrent use; each call to
// Evaluate creates a fresh sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	// System is the coordinate system scripts start in.
	System coords.System
	// Timeout bounds one evaluation. Zero means EvalTimeout.
	Timeout time.Duration
}

// NewEngine creates an Engine whose scripts start in cs.
func NewEngine(cs coords.System) *Engine {
	return &Engine{System: cs, Timeout: EvalTimeout}
}

// Evaluate runs source and returns the scene it built.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	cs := e.System
	timeout := e.Timeout
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := evaluate(source, cs)
		ch <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, timeout, gen, &e.mu, &e.generation)
}

// Check evaluates source and validates the resulting scene. Validation
// errors are reported as EvalErrors without line information.
func (e *Engine) Check(source string) (EvalResult, error) {
	res, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return EvalResult{}, err
	}
	out := EvalResult{Result: res, Errors: evalErrs}
	if res == nil {
		return out, nil
	}

	vr := scene.ValidateAll(res.Scene)
	for _, ve := range vr.Errors {
		out.Errors = append(out.Errors, EvalError{Message: ve.Error()})
	}
	for _, vw := range vr.Warnings {
		out.Warnings = append(out.Warnings, EvalWarning{Subject: vw.Subject, Message: vw.Message})
	}
	return out, nil
}

// evaluate performs the zygomys evaluation in a fresh sandbox.
func evaluate(source string, cs coords.System) (*Result, []EvalError, error) {
	st := &session{scene: scene.New(cs)}

	// Empty source is a valid program that produces an empty scene.
	if strings.TrimSpace(source) == "" {
		return &Result{Scene: st.scene}, nil, nil
	}

	v, err := run(source, st)
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	res := &Result{Scene: st.scene, Output: st.output}
	if v != nil && v != zygo.SexpNull {
		res.Value = display(v)
	}
	return res, nil, nil
}

// run evaluates source against st and returns the last value.
func run(source string, st *session) (zygo.Sexp, error) {
	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, err
	}
	return env.Run()
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalErrors, extracting
// the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

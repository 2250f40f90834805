package repl

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// newTestREPL builds a REPL reading from input with history in a
// temp dir.
func newTestREPL(t *testing.T, input string, runner Runner) (*REPL, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := New(runner)
	r.input = strings.NewReader(input)
	r.output = &out
	r.history = &History{path: filepath.Join(t.TempDir(), "history")}
	return r, &out
}

func TestREPLExecutesCommands(t *testing.T) {
	var got [][]string
	r, _ := newTestREPL(t, "weight alice\ntoken supply\nexit\n", func(args []string) error {
		got = append(got, args)
		return nil
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("executed %d commands, want 2", len(got))
	}
	if strings.Join(got[0], " ") != "weight alice" {
		t.Errorf("first command = %v", got[0])
	}
	if strings.Join(got[1], " ") != "token supply" {
		t.Errorf("second command = %v", got[1])
	}
}

func TestREPLSkipsEmptyLines(t *testing.T) {
	var calls int
	r, _ := newTestREPL(t, "\n  \nquit\n", func(args []string) error {
		calls++
		return nil
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("executed %d commands, want 0", calls)
	}
}

func TestREPLReportsErrors(t *testing.T) {
	r, out := newTestREPL(t, "mint\nexit\n", func(args []string) error {
		return errTest
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "error: test failure") {
		t.Errorf("output missing error line:\n%s", out.String())
	}
}

var errTest = errorString("test failure")

type errorString string

func (e errorString) Error() string { return string(e) }

func TestREPLExitsOnEOF(t *testing.T) {
	r, _ := newTestREPL(t, "weight alice\n", func(args []string) error {
		return nil
	})
	if err := r.Run(); err != nil {
		t.Fatalf("Run on EOF = %v, want nil", err)
	}
}

func TestREPLRefusesNestedRepl(t *testing.T) {
	var calls int
	r, out := newTestREPL(t, "repl\nexit\n", func(args []string) error {
		calls++
		return nil
	})

	if err := r.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("runner invoked for nested repl")
	}
	if !strings.Contains(out.String(), "already in interactive mode") {
		t.Errorf("missing nested repl message:\n%s", out.String())
	}
}

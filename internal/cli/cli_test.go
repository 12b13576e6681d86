package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"RESEARCHER_SAVE_DIR", "RESEARCHER_SEED", "RESEARCHER_LOG_FILE", "RESEARCHER_LOG_LEVEL", "RESEARCHER_GOAL_WEEKS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, want := range []string{"Focused Coding", "Teaching Assistant", "Caffeine Drink", "¥300", "Technical Breakthrough"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog output missing %q:\n%s", want, out)
		}
	}
}

func TestNameCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "name", "--save-dir", dir)
	if err != nil || !strings.Contains(out, "No researcher name") {
		t.Fatalf("expected no stored name, got %q %v", out, err)
	}

	if _, err := run(t, "name", "set", "Ada", "Lovelace", "--save-dir", dir); err != nil {
		t.Fatalf("name set: %v", err)
	}
	out, err = run(t, "name", "--save-dir", dir)
	if err != nil || !strings.Contains(out, "Ada Lovelace") {
		t.Fatalf("expected stored name, got %q %v", out, err)
	}

	if _, err := run(t, "name", "set", strings.Repeat("x", 21), "--save-dir", dir); err == nil {
		t.Fatalf("expected an error for a 21 character name")
	}

	if _, err := run(t, "name", "clear", "--save-dir", dir); err != nil {
		t.Fatalf("name clear: %v", err)
	}
	out, _ = run(t, "name", "--save-dir", dir)
	if !strings.Contains(out, "No researcher name") {
		t.Fatalf("expected name cleared, got %q", out)
	}
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "simulate", "--seed", "5", "--weeks", "8", "--save-dir", dir)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out, "Week 8:") || !strings.Contains(out, "Reached week 9") {
		t.Fatalf("unexpected simulate output:\n%s", out)
	}

	again, err := run(t, "simulate", "--seed", "5", "--weeks", "8", "--save-dir", dir)
	if err != nil {
		t.Fatalf("simulate again: %v", err)
	}
	if again != out {
		t.Fatalf("same seed printed different reports")
	}

	if _, err := run(t, "simulate", "--policy", "psychic", "--save-dir", dir); err == nil {
		t.Fatalf("expected an error for an unknown policy")
	}
}

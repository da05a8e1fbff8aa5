package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestSmilesCanonicalize_FromStdin(t *testing.T) {
	cmd := NewSmilesCmd()
	cmd.SetArgs([]string{"canonicalize"})
	cmd.SetIn(strings.NewReader("OCC\nc1ccccc1\n"))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execution failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "CCO" {
		t.Errorf("expected CCO, got %q", lines[0])
	}
	if lines[1] != "c1ccccc1" {
		t.Errorf("expected c1ccccc1, got %q", lines[1])
	}
}

func TestSmilesCanonicalize_ReportsBadLines(t *testing.T) {
	cmd := NewSmilesCmd()
	cmd.SetArgs([]string{"canonicalize"})
	cmd.SetIn(strings.NewReader("CCO\nC((\n"))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error because one line failed to parse")
	}
	if !strings.Contains(out.String(), "CCO") {
		t.Errorf("expected the valid line to still be canonicalized, got %q", out.String())
	}
}

func TestSmilesCanonicalize_EmptyInputProducesNoOutput(t *testing.T) {
	cmd := NewSmilesCmd()
	cmd.SetArgs([]string{"canonicalize"})
	cmd.SetIn(strings.NewReader(""))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execution failed: %v", err)
	}
	if out.String() != "" {
		t.Errorf("expected no output for empty input, got %q", out.String())
	}
}

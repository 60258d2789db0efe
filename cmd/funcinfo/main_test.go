package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunLookupByName(t *testing.T) {
	var stdout, stderr bytes.Buffer
	status := run([]string{"SUM"}, &stdout, &stderr)
	if status != 0 {
		t.Fatalf("run returned %d, stderr: %s", status, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "SUM") || !strings.Contains(out, "returns V") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRunLookupByIndex(t *testing.T) {
	var stdout, stderr bytes.Buffer
	status := run([]string{"76"}, &stdout, &stderr)
	if status != 0 {
		t.Fatalf("run returned %d, stderr: %s", status, stderr.String())
	}
	if !strings.Contains(stdout.String(), "OFFSET") {
		t.Errorf("unexpected output: %q", stdout.String())
	}
}

func TestRunUnknownFunction(t *testing.T) {
	var stdout, stderr bytes.Buffer
	status := run([]string{"NOPE"}, &stdout, &stderr)
	if status != 1 {
		t.Fatalf("run returned %d, want 1", status)
	}
	if stderr.Len() == 0 {
		t.Error("expected an error message on stderr")
	}
}

func TestRunList(t *testing.T) {
	var stdout, stderr bytes.Buffer
	status := run([]string{"-list"}, &stdout, &stderr)
	if status != 0 {
		t.Fatalf("run returned %d", status)
	}
	if !strings.Contains(stdout.String(), "VLOOKUP") {
		t.Errorf("list output missing VLOOKUP")
	}
}

func TestRunNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := run(nil, &stdout, &stderr); status != 2 {
		t.Fatalf("run returned %d, want 2", status)
	}
}

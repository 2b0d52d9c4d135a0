package runner

import (
	"os"
	"path/filepath"
	"testing"
)

// script materializes a small shell script to stand in for a built target.
// Targets only talk through stdin/stdout and their exit status, so shell
// scripts cover the protocols without invoking a compiler.
func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestSingleOk(t *testing.T) {
	r := Single{Problem: script(t, "cat >/dev/null")}
	status, err := r.Run([]byte("1 2 3\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusOk {
		t.Fatalf("status = %v, want ok", status)
	}
}

func TestSingleAlwaysFailingProgram(t *testing.T) {
	// A program that always exits 1 must fail on the very first input.
	r := Single{Problem: script(t, "exit 1")}
	status, err := r.Run([]byte("anything\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
}

func TestCompareSameProgramNeverDiffers(t *testing.T) {
	echo := script(t, "cat")
	r := Compare{Primary: echo, Secondary: echo}
	for i := 0; i < 5; i++ {
		status, err := r.Run([]byte("17 29\n"))
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if status != StatusOk {
			t.Fatalf("status = %v, want ok", status)
		}
	}
}

func TestCompareWhitespaceInsensitive(t *testing.T) {
	spaces := script(t, `printf '1 2 3'`)
	lines := script(t, `printf '1\n2\n3\n'`)
	status, err := Compare{Primary: spaces, Secondary: lines}.Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusOk {
		t.Fatalf("status = %v, want ok for same tokens", status)
	}

	different := script(t, `printf '1 2 4'`)
	status, err = Compare{Primary: spaces, Secondary: different}.Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusDifferentOutputs {
		t.Fatalf("status = %v, want different outputs", status)
	}
}

func TestCompareFailurePrecedence(t *testing.T) {
	ok := script(t, `printf '1 2 3'`)
	failing := script(t, `printf 'junk'; exit 1`)

	// A crashed solver is never reported as an output mismatch.
	status, err := Compare{Primary: failing, Secondary: ok}.Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusPrimaryFailed {
		t.Fatalf("status = %v, want primary failed", status)
	}

	status, err = Compare{Primary: ok, Secondary: failing}.Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusSecondaryFailed {
		t.Fatalf("status = %v, want secondary failed", status)
	}

	// Both failing reports the primary first; that ordering is part of the
	// protocol, not an accident.
	status, err = Compare{Primary: failing, Secondary: failing}.Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusPrimaryFailed {
		t.Fatalf("status = %v, want primary failed when both fail", status)
	}
}

func TestVerifyReceivesInputNewlineOutput(t *testing.T) {
	problem := script(t, `printf '42'`)
	captured := filepath.Join(t.TempDir(), "verifier.in")
	verifier := script(t, `cat >"`+captured+`"`)

	status, err := Verify{Problem: problem, Verifier: verifier}.Run([]byte("5\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusOk {
		t.Fatalf("status = %v, want ok", status)
	}
	got, err := os.ReadFile(captured)
	if err != nil {
		t.Fatalf("failed to read captured verifier input: %v", err)
	}
	if string(got) != "5\n\n42" {
		t.Fatalf("verifier received %q, want %q", got, "5\n\n42")
	}
}

func TestVerifyRejection(t *testing.T) {
	problem := script(t, `printf '41'`)
	verifier := script(t, "cat >/dev/null; exit 1")
	status, err := Verify{Problem: problem, Verifier: verifier}.Run([]byte("5\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusVerifierFailed {
		t.Fatalf("status = %v, want verifier failed", status)
	}
}

func TestVerifyProblemFailureShortCircuits(t *testing.T) {
	problem := script(t, "exit 1")
	verifier := script(t, "exit 1")
	status, err := Verify{Problem: problem, Verifier: verifier}.Run([]byte("5\n"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if status != StatusFailed {
		t.Fatalf("status = %v, want failed", status)
	}
}

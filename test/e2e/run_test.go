package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/looc/internal/driver"
	"github.com/you-not-fish/looc/internal/syntax"
)

// TestE2E runs end-to-end tests for all .loo files in testdata/.
// Each test:
//  1. Runs the full pipeline: tokenize → parse → emit → write
//  2. Compares the C++ against the .cpp.golden file
//  3. Compiles it with the host C++ compiler, if there is one
//  4. Runs the binary and compares stdout against the .golden file
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.loo")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .loo test files found in testdata/")
	}

	cxx := findCompiler()

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".loo")
		t.Run(name, func(t *testing.T) {
			runE2ETest(t, testFile, cxx)
		})
	}
}

// runE2ETest runs a single end-to-end test.
func runE2ETest(t *testing.T, looFile, cxx string) {
	t.Helper()

	tmpDir := t.TempDir()
	cppFile := filepath.Join(tmpDir, "output.cpp")
	binFile := filepath.Join(tmpDir, "output")

	// Step 1: Translate .loo → .cpp (in-process).
	if err := driver.Run(looFile, cppFile, driver.Options{}); err != nil {
		t.Fatalf("translate: %v", err)
	}

	// Step 2: Compare the generated source.
	got, err := os.ReadFile(cppFile)
	if err != nil {
		t.Fatal(err)
	}
	wantCpp, err := os.ReadFile(strings.TrimSuffix(looFile, ".loo") + ".cpp.golden")
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if string(got) != string(wantCpp) {
		t.Fatalf("C++ mismatch:\ngot:\n%s\nwant:\n%s", got, wantCpp)
	}

	if cxx == "" {
		t.Skip("no C++ compiler found, skipping build and run")
	}

	// Step 3: Compile.
	cmd := exec.Command(cxx, "-std=c++11", cppFile, "-o", binFile)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("%s failed:\n%s\n%v", cxx, out, err)
	}

	// Step 4: Run binary and compare stdout.
	expected, err := os.ReadFile(strings.TrimSuffix(looFile, ".loo") + ".golden")
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	out, err := exec.Command(binFile).Output()
	if err != nil {
		t.Fatalf("binary execution failed: %v", err)
	}
	if string(out) != string(expected) {
		t.Errorf("output mismatch:\ngot:  %q\nwant: %q", out, expected)
	}
}

// TestE2EErrors checks that failing programs produce a positioned
// diagnostic and no output file.
func TestE2EErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind string
	}{
		{"unclosed_brace", "while a { a = 1;", "uneven parentheses"},
		{"stray_paren", "a = 1);", "uneven parentheses"},
		{"bad_number", "a = 3x;", "incorrect number"},
		{"bad_loop", "loop a { }", "malformed loop count"},
		{"bad_else", "if a { } else a = 1;", "malformed if"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "prog.loo")
			out := filepath.Join(dir, "prog.cpp")
			if err := os.WriteFile(in, []byte(tt.src), 0o600); err != nil {
				t.Fatal(err)
			}

			err := driver.Run(in, out, driver.Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.kind) {
				t.Errorf("error %q does not name %q", err, tt.kind)
			}
			if _, ok := syntax.ErrorPos(err); !ok {
				t.Errorf("error %v carries no position", err)
			}
			if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("output written despite error")
			}
		})
	}
}

// findCompiler returns the first C++ compiler found on PATH, or "".
func findCompiler() string {
	for _, name := range []string{"c++", "g++", "clang++"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

package e2e

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
)

var (
	update     = flag.Bool("update", false, "update golden files")
	binaryPath string
)

func TestMain(m *testing.M) {
	flag.Parse()

	// Skip if E2E_TEST is not set
	if os.Getenv("E2E_TEST") == "" {
		fmt.Println("Skipping E2E tests. Set E2E_TEST=1 to run them.")
		os.Exit(0)
	}

	fmt.Println("Building csv-nodeid-decoder binary...")
	cmd := exec.Command("go", "build", "-o", "csv-nodeid-decoder-test", "../../.")
	cmd.Dir = "."
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to build binary: %v\n%s\n", err, output)
		os.Exit(1)
	}

	var err error
	binaryPath, err = filepath.Abs("csv-nodeid-decoder-test")
	if err != nil {
		fmt.Printf("Failed to get absolute path: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	os.Remove("csv-nodeid-decoder-test")
	os.Exit(code)
}

// copyFixture copies testdata/<name> into a fresh temp dir and returns its path.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func runBinary(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stdout.String(), stderr.String(), 0
	case errors.As(err, &exitErr):
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	default:
		t.Fatalf("Failed to run binary: %v", err)
		return "", "", -1
	}
}

func compareGolden(t *testing.T, actualPath, goldenFile string) {
	t.Helper()

	actual, err := os.ReadFile(actualPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	goldenPath := filepath.Join("testdata", "golden", goldenFile)

	if *update {
		if err := os.WriteFile(goldenPath, actual, 0644); err != nil {
			t.Fatalf("Failed to update golden file: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("Failed to read golden file: %v", err)
	}
	if !bytes.Equal(expected, actual) {
		t.Errorf("Output mismatch\nExpected:\n%s\nActual:\n%s", expected, actual)
	}
}

func TestRunDecodesColumns(t *testing.T) {
	input := copyFixture(t, "nodes.csv")

	stdout, stderr, code := runBinary(t, "run", input, "encoded_id", "encoded_value", "not_there")
	if code != 0 {
		t.Fatalf("Run command exited with %d\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}

	output := filepath.Join(filepath.Dir(input), "nodes_opts.csv")
	compareGolden(t, output, "nodes_opts.csv")

	for _, want := range []string{"Done: " + output, "Processed columns: encoded_id, encoded_value", "Processed rows: 3"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	for _, want := range []string{"column not found", "not_there", "failed to decode cell"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestRunExitCodes(t *testing.T) {
	input := copyFixture(t, "nodes.csv")

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{name: "no arguments", args: []string{"run"}, wantStderr: "Usage:"},
		{name: "path only", args: []string{"run", input}, wantStderr: "at least one column name is required"},
		{name: "no matching column", args: []string{"run", input, "nope"}, wantStderr: "csv processing error"},
		{name: "missing file", args: []string{"run", filepath.Join(t.TempDir(), "missing.csv"), "id"}, wantStderr: "csv processing error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runBinary(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr)
			}
		})
	}
}

func TestRunInteractiveColumnSelection(t *testing.T) {
	input := copyFixture(t, "nodes.csv")

	console, err := expect.NewConsole(expect.WithStdout(os.Stdout), expect.WithDefaultTimeout(30*time.Second))
	if err != nil {
		t.Fatalf("Failed to create console: %v", err)
	}
	defer console.Close()

	// Run with only the path to trigger the column prompt
	cmd := exec.Command(binaryPath, "run", "--interactive", input)
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Run()
	}()

	if _, err := console.ExpectString("Select columns to transform"); err != nil {
		t.Fatalf("Failed to see column prompt: %v", err)
	}

	// Select the first column (encoded_id) with space, then press enter
	console.Send(" ")
	time.Sleep(100 * time.Millisecond)
	console.Send("\r")

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run command failed: %v", err)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("Command timed out")
	}

	compareGolden(t, filepath.Join(filepath.Dir(input), "nodes_opts.csv"), "nodes_id_only_opts.csv")
}

func TestRunConfirmOverwrite(t *testing.T) {
	input := copyFixture(t, "nodes.csv")
	output := filepath.Join(filepath.Dir(input), "nodes_opts.csv")
	if err := os.WriteFile(output, []byte("keep me\n"), 0644); err != nil {
		t.Fatalf("Failed to write existing output: %v", err)
	}

	console, err := expect.NewConsole(expect.WithStdout(os.Stdout), expect.WithDefaultTimeout(30*time.Second))
	if err != nil {
		t.Fatalf("Failed to create console: %v", err)
	}
	defer console.Close()

	cmd := exec.Command(binaryPath, "run", "--confirm", input, "encoded_id")
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Run()
	}()

	if _, err := console.ExpectString("Overwrite"); err != nil {
		t.Fatalf("Failed to see overwrite prompt: %v", err)
	}
	console.Send("n\r")

	if _, err := console.ExpectString("Skipped"); err != nil {
		t.Fatalf("Failed to see skip message: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run command failed: %v", err)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("Command timed out")
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(content) != "keep me\n" {
		t.Errorf("existing output was modified: %q", content)
	}
}

func TestEncodeThenDecode(t *testing.T) {
	input := copyFixture(t, "nodes.csv")
	decoded := filepath.Join(filepath.Dir(input), "nodes_opts.csv")

	if _, stderr, code := runBinary(t, "run", input, "encoded_id", "encoded_value"); code != 0 {
		t.Fatalf("run exited with %d: %s", code, stderr)
	}
	if _, stderr, code := runBinary(t, "encode", decoded, "encoded_id"); code != 0 {
		t.Fatalf("encode exited with %d: %s", code, stderr)
	}

	reencoded, err := os.ReadFile(filepath.Join(filepath.Dir(input), "nodes_opts_b64.csv"))
	if err != nil {
		t.Fatalf("Failed to read encoded output: %v", err)
	}
	if !strings.HasPrefix(string(reencoded), "encoded_id,name,encoded_value\nMTAw,alice,42\n") {
		t.Errorf("unexpected encoded output:\n%s", reencoded)
	}
}

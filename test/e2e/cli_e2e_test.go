package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/fibseq into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "fibseq"
	if runtime.GOOS == "windows" {
		binName = "fibseq.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs with the package directory as CWD; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/fibseq")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build fibseq: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary functions correctly.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	binPath := buildBinary(t)

	tests := []struct {
		name       string
		args       []string
		wantStdout string // exact match when non-empty
		wantStderr string // substring match (case-insensitive)
		wantCode   int
	}{
		{
			name:       "Sequence of ten",
			args:       []string{"-n", "10"},
			wantStdout: "0\n1\n1\n2\n3\n5\n8\n13\n21\n34\n",
		},
		{
			name:       "Single index",
			args:       []string{"--index", "20"},
			wantStdout: "6765\n",
		},
		{
			name:       "Negative index",
			args:       []string{"--index", "-1"},
			wantStderr: "invalid index -1",
			wantCode:   5,
		},
		{
			name:       "Non-integer index",
			args:       []string{"--index", "x"},
			wantStderr: "invalid value",
			wantCode:   4,
		},
		{
			name:       "All Algorithms Comparison",
			args:       []string{"-n", "10", "--algo", "all"},
			wantStdout: "0\n1\n1\n2\n3\n5\n8\n13\n21\n34\n",
			wantStderr: "comparison summary",
		},
		{
			name:       "Help",
			args:       []string{"--help"},
			wantStderr: "usage",
		},
		{
			name:       "Version Flag",
			args:       []string{"--version"},
			wantStdout: "",
		},
		{
			name:       "Very Short Timeout",
			args:       []string{"--algo", "naive", "-n", "60", "--timeout", "1ms"},
			wantStderr: "timeout",
			wantCode:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			err := cmd.Run()

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running fibseq: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstderr:\n%s", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(strings.ToLower(stderr.String()), strings.ToLower(tt.wantStderr)) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

func TestCLI_VersionBanner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	out, err := exec.Command(buildBinary(t), "--version").Output()
	if err != nil {
		t.Fatalf("fibseq --version: %v", err)
	}
	if !strings.HasPrefix(string(out), "fibseq ") {
		t.Errorf("version banner = %q", out)
	}
}

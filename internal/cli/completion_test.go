package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	algos := []string{"iterative", "memo", "naive"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _fibseq_completions fibseq", "--algo)", `algorithms="iterative memo naive all"`, "-i|--index)", "--env-file)", "--log-format)"}},
		{"zsh", []string{"#compdef fibseq", "algorithms=(iterative memo naive all)", "'(-q --quiet)'{-q,--quiet}'[Suppress diagnostics]'", "'--env-file[Load FIBSEQ_ variables from a dotenv file]:file:_files'"}},
		{"fish", []string{"complete -c fibseq -f", "complete -c fibseq -l algo -d 'Algorithm to use' -xa 'iterative memo naive all'", "complete -c fibseq -s n -d 'Number of sequence values to print' -x"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, algos); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("%s script missing %q", tt.shell, s)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupported(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "powershell", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Fatalf("expected unsupported shell error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

func TestFlagRegistryCoversEveryShortFlag(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		if f.Short == "" {
			continue
		}
		if seen[f.Short] {
			t.Errorf("short flag -%s registered twice", f.Short)
		}
		seen[f.Short] = true
	}
	for _, s := range []string{"n", "i", "q", "v", "V", "h"} {
		if !seen[s] {
			t.Errorf("short flag -%s missing from registry", s)
		}
	}
}

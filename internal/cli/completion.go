package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/fibseq/internal/ui"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every shell script is generated from flagRegistry, so adding a flag only
// requires appending to it.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsAlgo    bool     // true if values come from the algorithm list
}

// takesValue reports whether the flag expects an argument.
func (f FlagCompletion) takesValue() bool {
	return f.ValueName != ""
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Number of sequence values to print", ValueName: "count"},
	{Long: "index", Short: "i", Help: "Print a single value F(index)", ValueName: "index"},
	{Long: "algo", Help: "Algorithm to use", IsAlgo: true, ValueName: "algorithm"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "quiet", Short: "q", Help: "Suppress diagnostics"},
	{Long: "verbose", Short: "v", Help: "Debug logs and run summary"},
	{Long: "progress", Help: "Show a progress indicator"},
	{Long: "metrics", Help: "Print collected metrics"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "log-format", Help: "Log format on stderr", Values: []string{"console", "json"}, ValueName: "format"},
	{Long: "theme", Help: "Color theme", Values: ui.ThemeNames(), ValueName: "theme"},
	{Long: "env-file", Help: "Load FIBSEQ_ variables from a dotenv file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: SupportedShells, ValueName: "shell"},
}

// SupportedShells lists the shells a completion script can be generated for.
var SupportedShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - algorithms: List of available algorithm names.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algorithms)
	case "zsh":
		script = zshCompletion(algorithms)
	case "fish":
		script = fishCompletion(algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(SupportedShells, ", "))
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// algoWords returns the algorithm names followed by "all".
func algoWords(algorithms []string) string {
	return strings.Join(append(append([]string{}, algorithms...), "all"), " ")
}

// flagSpellings returns the dashed forms of f, short first.
func flagSpellings(f FlagCompletion) []string {
	var out []string
	if f.Short != "" {
		out = append(out, "-"+f.Short)
	}
	if f.Long != "" {
		out = append(out, "--"+f.Long)
	}
	return out
}

func bashCompletion(algorithms []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		spellings := flagSpellings(f)
		opts = append(opts, spellings...)

		var reply string
		switch {
		case f.IsAlgo:
			reply = `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`
		case f.IsFile:
			reply = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			reply = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		case f.takesValue():
			reply = "COMPREPLY=()"
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(spellings, "|"), reply)
	}

	return fmt.Sprintf(`# Bash completion script for fibseq
# Add this to your ~/.bashrc or ~/.bash_completion

_fibseq_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    algorithms="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibseq_completions fibseq
`, strings.Join(opts, " "), algoWords(algorithms), cases.String())
}

func zshCompletion(algorithms []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	return fmt.Sprintf(`#compdef fibseq

# Zsh completion script for fibseq
# Place this file in $fpath as _fibseq

_fibseq() {
    local -a algorithms
    algorithms=(%s)

    _arguments -s \
%s
}

_fibseq "$@"
`, algoWords(algorithms), strings.Join(args, " \\\n"))
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	var valueSuffix string
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		valueSuffix = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.takesValue():
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '%s[%s]%s'", flagSpellings(f)[0], f.Help, valueSuffix)
}

func fishCompletion(algorithms []string) string {
	lines := []string{
		"# Fish completion script for fibseq",
		"# Add this to ~/.config/fish/completions/fibseq.fish",
		"",
		"complete -c fibseq -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, algoWords(algorithms)))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, algoList string) string {
	parts := []string{"complete -c fibseq"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s'", algoList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.takesValue():
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

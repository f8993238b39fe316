package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// getEnvString returns EnvPrefix+key from the environment, or defaultVal.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet reports whether the flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	return isFlagSetAny(fs, name)
}

// isFlagSetAny reports whether any of the aliased flags was given.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// envOverride binds a FIBSEQ_ variable to the flag aliases it shadows.
// When any flag in conflicts was given, the variable is ignored too, so
// the environment can never switch away from a mode chosen on the command
// line.
type envOverride struct {
	envKey    string
	flags     []string
	conflicts []string
	apply     func(*AppConfig, string) error
}

// Flags that select between sequence and single-index mode.
var modeFlags = []string{"n", "index", "i"}

// parseIndexEnv rejects anything that is not a base-10 integer.
func parseIndexEnv(key, v string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, apperrors.NewConfigError("invalid %s%s %q: must be an integer", EnvPrefix, key, v)
	}
	return parsed, nil
}

func boolOverride(key string, flags []string, field func(*AppConfig) *bool) envOverride {
	return envOverride{envKey: key, flags: flags, apply: func(c *AppConfig, v string) error {
		p := field(c)
		*p = parseBoolEnv(v, *p)
		return nil
	}}
}

var envOverrides = []envOverride{
	{envKey: "N", flags: []string{"n"}, conflicts: modeFlags, apply: func(c *AppConfig, v string) error {
		n, err := parseIndexEnv("N", v)
		if err != nil {
			return err
		}
		c.N, c.BoundSet = n, true
		return nil
	}},
	{envKey: "INDEX", flags: []string{"index", "i"}, conflicts: modeFlags, apply: func(c *AppConfig, v string) error {
		k, err := parseIndexEnv("INDEX", v)
		if err != nil {
			return err
		}
		c.Index, c.IndexSet = k, true
		return nil
	}},
	{envKey: "TIMEOUT", flags: []string{"timeout"}, apply: func(c *AppConfig, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return apperrors.NewConfigError("invalid %sTIMEOUT %q: %v", EnvPrefix, v, err)
		}
		c.Timeout = d
		return nil
	}},
	{envKey: "ALGO", flags: []string{"algo"}, apply: func(c *AppConfig, v string) error { c.Algo = v; return nil }},
	{envKey: "THEME", flags: []string{"theme"}, apply: func(c *AppConfig, v string) error { c.Theme = v; return nil }},
	{envKey: "LOG_FORMAT", flags: []string{"log-format"}, apply: func(c *AppConfig, v string) error { c.LogFormat = v; return nil }},
	boolOverride("QUIET", []string{"quiet", "q"}, func(c *AppConfig) *bool { return &c.Quiet }),
	boolOverride("VERBOSE", []string{"verbose", "v"}, func(c *AppConfig) *bool { return &c.Verbose }),
	boolOverride("PROGRESS", []string{"progress"}, func(c *AppConfig) *bool { return &c.Progress }),
	boolOverride("METRICS", []string{"metrics"}, func(c *AppConfig) *bool { return &c.Metrics }),
	boolOverride("NO_COLOR", []string{"no-color"}, func(c *AppConfig) *bool { return &c.NoColor }),
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case. Anything else
// keeps defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides fills every option not given on the command line from its
// FIBSEQ_ variable, so flags win over the environment and the environment
// wins over defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) || isFlagSetAny(fs, o.conflicts...) {
			continue
		}
		val := os.Getenv(EnvPrefix + o.envKey)
		if val == "" {
			continue
		}
		// A comparison cannot run in single-index mode; --index wins.
		if o.envKey == "ALGO" && val == AlgoAll && isFlagSetAny(fs, "index", "i") {
			continue
		}
		if err := o.apply(config, val); err != nil {
			return err
		}
	}
	return nil
}

package project

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"surgelint/internal/diag"
)

// Config is the parsed surgelint.toml.
type Config struct {
	Lint   LintConfig        `toml:"lint"`
	Output OutputConfig      `toml:"output"`
	Rules  map[string]string `toml:"rules"`
}

// LintConfig holds engine limits and cache settings.
type LintConfig struct {
	MaxDiagnostics int    `toml:"max-diagnostics"`
	Jobs           int    `toml:"jobs"` // 0 means GOMAXPROCS
	Cache          bool   `toml:"cache"`
	CacheDir       string `toml:"cache-dir"`
}

// OutputConfig holds presentation defaults; flags override them.
type OutputConfig struct {
	Format string `toml:"format"` // "pretty" or "json"
	Color  string `toml:"color"`  // "auto", "always", "never"
}

// RuleOverrides is the config's contribution to rule resolution:
// per-rule enablement and severity, plus the names it mentions that no
// registered rule carries.
type RuleOverrides struct {
	Enabled  map[diag.Code]bool
	Severity map[diag.Code]diag.Severity
	Unknown  []string
}

// DefaultConfig returns the configuration used when no surgelint.toml
// is found.
func DefaultConfig() Config {
	return Config{
		Lint: LintConfig{
			MaxDiagnostics: 256,
			Jobs:           0,
			Cache:          true,
			CacheDir:       ".surgelint-cache",
		},
		Output: OutputConfig{
			Format: "pretty",
			Color:  "auto",
		},
		Rules: map[string]string{},
	}
}

// LoadConfig parses path on top of the defaults. Unknown keys and
// malformed rule settings are errors; unknown rule names are not, the
// caller reports them as diagnostics via RuleOverrides.Unknown.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Lint.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: lint.max-diagnostics must be non-negative", path)
	}
	if cfg.Lint.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: lint.jobs must be non-negative", path)
	}
	switch cfg.Output.Format {
	case "pretty", "json":
	default:
		return Config{}, fmt.Errorf("%s: output.format must be \"pretty\" or \"json\", got %q", path, cfg.Output.Format)
	}
	switch cfg.Output.Color {
	case "auto", "always", "never":
	default:
		return Config{}, fmt.Errorf("%s: output.color must be \"auto\", \"always\" or \"never\", got %q", path, cfg.Output.Color)
	}
	for name, setting := range cfg.Rules {
		if _, _, _, err := parseRuleSetting(setting); err != nil {
			return Config{}, fmt.Errorf("%s: rules.%s: %w", path, name, err)
		}
	}
	return cfg, nil
}

// parseRuleSetting maps a [rules] value to enablement and an optional
// severity override. hasSev is false for "on"/"default", which keep
// the rule's own severity.
func parseRuleSetting(setting string) (on bool, sev diag.Severity, hasSev bool, err error) {
	switch setting {
	case "off", "allow":
		return false, 0, false, nil
	case "on", "default":
		return true, 0, false, nil
	case "info":
		return true, diag.SevInfo, true, nil
	case "warn", "warning":
		return true, diag.SevWarning, true, nil
	case "error", "deny":
		return true, diag.SevError, true, nil
	default:
		return false, 0, false, fmt.Errorf("invalid rule setting %q (want off, on, info, warn or error)", setting)
	}
}

// RuleOverrides resolves the [rules] table against the set of known
// rule IDs.
func (c Config) RuleOverrides(known func(diag.Code) bool) RuleOverrides {
	out := RuleOverrides{
		Enabled:  make(map[diag.Code]bool),
		Severity: make(map[diag.Code]diag.Severity),
	}
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		code := diag.Code(name)
		if known != nil && !known(code) {
			out.Unknown = append(out.Unknown, name)
			continue
		}
		on, sev, hasSev, err := parseRuleSetting(c.Rules[name])
		if err != nil {
			// LoadConfig rejects malformed settings; a hand-built
			// Config with one is simply ignored here.
			continue
		}
		out.Enabled[code] = on
		if on && hasSev {
			out.Severity[code] = sev
		}
	}
	return out
}

// Digest returns a stable hash of every setting that affects lint
// results. It feeds the cache key so a config change invalidates
// cached findings.
func (c Config) Digest() Digest {
	h := sha256.New()
	fmt.Fprintf(h, "max-diagnostics=%d\n", c.Lint.MaxDiagnostics)
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(h, "rule %s=%s\n", name, c.Rules[name])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

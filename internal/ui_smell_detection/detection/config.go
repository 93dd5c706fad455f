package detection

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph"
)

//go:embed default_rules.toml
var embeddedRules []byte

// Config holds rule thresholds. Non-positive values mean "use the default";
// an empty EnabledRules enables every rule.
type Config struct {
	MaxResponsibilities int             `toml:"max_responsibilities" json:"max_responsibilities,omitempty" yaml:"max_responsibilities,omitempty"`
	MaxBodySize         int             `toml:"max_body_size" json:"max_body_size,omitempty" yaml:"max_body_size,omitempty"`
	MaxNestingDepth     int             `toml:"max_nesting_depth" json:"max_nesting_depth,omitempty" yaml:"max_nesting_depth,omitempty"`
	HeavyWorkThreshold  int             `toml:"heavy_work_threshold" json:"heavy_work_threshold,omitempty" yaml:"heavy_work_threshold,omitempty"`
	MinDrillDepth       int             `toml:"min_drill_depth" json:"min_drill_depth,omitempty" yaml:"min_drill_depth,omitempty"`
	MinDuplicates       int             `toml:"min_duplicates" json:"min_duplicates,omitempty" yaml:"min_duplicates,omitempty"`
	LargeListThreshold  int             `toml:"large_list_threshold" json:"large_list_threshold,omitempty" yaml:"large_list_threshold,omitempty"`
	EnabledRules        []domain.RuleID `toml:"enabled_rules" json:"enabled_rules,omitempty" yaml:"enabled_rules,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		MaxResponsibilities: 3,
		MaxBodySize:         80,
		MaxNestingDepth:     4,
		HeavyWorkThreshold:  10000,
		MinDrillDepth:       3,
		MinDuplicates:       3,
		LargeListThreshold:  500,
	}
}

// WithDefaults fills every unset threshold from DefaultConfig.
func (c Config) WithDefaults() Config {
	return DefaultConfig().Merge(c)
}

// Merge returns c overridden by the set fields of o.
func (c Config) Merge(o Config) Config {
	pick := func(base, over int) int {
		if over > 0 {
			return over
		}
		return base
	}
	out := Config{
		MaxResponsibilities: pick(c.MaxResponsibilities, o.MaxResponsibilities),
		MaxBodySize:         pick(c.MaxBodySize, o.MaxBodySize),
		MaxNestingDepth:     pick(c.MaxNestingDepth, o.MaxNestingDepth),
		HeavyWorkThreshold:  pick(c.HeavyWorkThreshold, o.HeavyWorkThreshold),
		MinDrillDepth:       pick(c.MinDrillDepth, o.MinDrillDepth),
		MinDuplicates:       pick(c.MinDuplicates, o.MinDuplicates),
		LargeListThreshold:  pick(c.LargeListThreshold, o.LargeListThreshold),
		EnabledRules:        c.EnabledRules,
	}
	if len(o.EnabledRules) > 0 {
		out.EnabledRules = o.EnabledRules
	}
	out.EnabledRules = append([]domain.RuleID(nil), out.EnabledRules...)
	return out
}

func (c Config) Validate() error {
	for _, id := range c.EnabledRules {
		if !domain.IsKnownRule(id) {
			return fmt.Errorf("%w: %q", domain.ErrUnknownRule, id)
		}
	}
	return nil
}

func (c Config) Enabled(id domain.RuleID) bool {
	if len(c.EnabledRules) == 0 {
		return true
	}
	for _, r := range c.EnabledRules {
		if r == id {
			return true
		}
	}
	return false
}

// Hash identifies the effective configuration; equal configs hash equally
// regardless of EnabledRules order.
func (c Config) Hash() string {
	c = c.WithDefaults()
	enabled := make([]string, 0, len(c.EnabledRules))
	for _, r := range c.EnabledRules {
		enabled = append(enabled, string(r))
	}
	sort.Strings(enabled)
	return graph.HashFields(
		strconv.Itoa(c.MaxResponsibilities),
		strconv.Itoa(c.MaxBodySize),
		strconv.Itoa(c.MaxNestingDepth),
		strconv.Itoa(c.HeavyWorkThreshold),
		strconv.Itoa(c.MinDrillDepth),
		strconv.Itoa(c.MinDuplicates),
		strconv.Itoa(c.LargeListThreshold),
		strings.Join(enabled, ","),
	)
}

// LoadConfig layers the embedded defaults, the optional TOML file at path
// and DETECT_* environment variables.
func LoadConfig(path string) (Config, error) {
	var base Config
	if err := toml.Unmarshal(embeddedRules, &base); err != nil {
		return Config{}, fmt.Errorf("failed to parse embedded rule config: %w", err)
	}
	cfg := DefaultConfig().Merge(base)

	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}

	cfg = cfg.Merge(FromEnv())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load rule config from %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv reads threshold overrides; unset or invalid values are left unset.
func FromEnv() Config {
	cfg := Config{
		MaxResponsibilities: envInt("DETECT_MAX_RESPONSIBILITIES"),
		MaxBodySize:         envInt("DETECT_MAX_BODY_SIZE"),
		MaxNestingDepth:     envInt("DETECT_MAX_NESTING_DEPTH"),
		HeavyWorkThreshold:  envInt("DETECT_HEAVY_WORK_THRESHOLD"),
		MinDrillDepth:       envInt("DETECT_MIN_DRILL_DEPTH"),
		MinDuplicates:       envInt("DETECT_MIN_DUPLICATES"),
		LargeListThreshold:  envInt("DETECT_LARGE_LIST_THRESHOLD"),
	}
	cfg.EnabledRules = ParseRuleList(os.Getenv("DETECT_ENABLED_RULES"))
	return cfg
}

// ParseRuleList splits a comma separated list of rule ids.
func ParseRuleList(s string) []domain.RuleID {
	var out []domain.RuleID
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, domain.RuleID(p))
		}
	}
	return out
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

package contracts

import (
	"fmt"
	"sort"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

// NotifyConfig mails the finished report when present in the config.
type NotifyConfig struct {
	Smtp SmtpConfig `json:"smtp"`
	To   []string   `json:"to"`
}

const (
	MatchAny = "any"
	MatchAll = "all"

	MatchSubstring = "substring"
	MatchExact     = "exact"
)

type Config struct {
	Keywords []string `json:"keywords"`
	// target district name -> portal district id used to scope searches.
	// the id only narrows discovery, the name is what the integrity
	// filter checks against.
	Districts map[string]int `json:"districts"`
	Output    string         `json:"output"`

	PageSize       int `json:"page_size"`
	RequestDelayMs int `json:"request_delay_ms"`
	RetryCount     int `json:"retry_count"`
	RetryWaitMs    int `json:"retry_wait_ms"`

	// "any" accepts a record when any of its execution locations matches
	// a target district, "all" requires every location to match
	MatchMode string `json:"match_mode"`
	// "substring" or "exact" matching of location parts against
	// district names
	MatchStrategy string `json:"match_strategy"`

	Notify *NotifyConfig `json:"notify"`
}

func (c *Config) Validate() error {
	if len(c.Keywords) == 0 {
		return fmt.Errorf("config: keyword list is empty")
	}
	if len(c.Districts) == 0 {
		return fmt.Errorf("config: district list is empty")
	}
	if c.Output == "" {
		c.Output = "contracts_report.csv"
	}
	if c.MatchMode == "" {
		c.MatchMode = MatchAny
	}
	if c.MatchMode != MatchAny && c.MatchMode != MatchAll {
		return fmt.Errorf("config: unknown match_mode %q", c.MatchMode)
	}
	if c.MatchStrategy == "" {
		c.MatchStrategy = MatchSubstring
	}
	if c.MatchStrategy != MatchSubstring && c.MatchStrategy != MatchExact {
		return fmt.Errorf("config: unknown match_strategy %q", c.MatchStrategy)
	}
	return nil
}

// district names in deterministic order, so two runs over identical
// upstream data produce identical output
func (c *Config) districtNames() []string {
	names := make([]string, 0, len(c.Districts))
	for name := range c.Districts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

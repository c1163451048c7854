package conf

import (
	"fmt"
	"strings"
)

// ReasoningEffort is the reasoning effort level requested from the model.
type ReasoningEffort string

const (
	ReasoningEffortMinimal ReasoningEffort = "minimal"
	ReasoningEffortLow     ReasoningEffort = "low"
	ReasoningEffortMedium  ReasoningEffort = "medium"
	ReasoningEffortHigh    ReasoningEffort = "high"
)

// ReasoningEfforts lists the accepted levels from lowest to highest.
func ReasoningEfforts() []ReasoningEffort {
	return []ReasoningEffort{
		ReasoningEffortMinimal,
		ReasoningEffortLow,
		ReasoningEffortMedium,
		ReasoningEffortHigh,
	}
}

// ParseReasoningEffort parses a level name, ignoring case.
func ParseReasoningEffort(s string) (ReasoningEffort, error) {
	e := ReasoningEffort(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ReasoningEfforts() {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown reasoning effort %q (expected one of %s)", s, strings.Join(effortNames(), ", "))
}

// String returns the canonical lowercase form written to config.toml.
func (e ReasoningEffort) String() string {
	return string(e)
}

// MarshalText implements encoding.TextMarshaler.
func (e ReasoningEffort) MarshalText() ([]byte, error) {
	return []byte(e), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *ReasoningEffort) UnmarshalText(text []byte) error {
	parsed, err := ParseReasoningEffort(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func effortNames() []string {
	var names []string
	for _, e := range ReasoningEfforts() {
		names = append(names, e.String())
	}
	return names
}

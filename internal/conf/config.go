package conf

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigTOMLFile is the name of the configuration file inside the home directory.
const ConfigTOMLFile = "config.toml"

// Keys recognized in config.toml.
const (
	KeyProfile         = "profile"
	KeyProfiles        = "profiles"
	KeyModel           = "model"
	KeyReasoningEffort = "model_reasoning_effort"
)

// defaultConfig contains the embedded default configuration file.
// It serves as the base layer before config.toml and the active profile
// are applied.
//
//go:embed defaults.toml
var defaultConfig string

// Config represents the effective settings.
type Config struct {
	Profile         string
	Model           string
	ReasoningEffort ReasoningEffort
}

// Update applies non-nil values from a settingsDTO.
func (c *Config) Update(dto settingsDTO) {
	if dto.Model != nil {
		c.Model = *dto.Model
	}
	if dto.ReasoningEffort != nil {
		c.ReasoningEffort = *dto.ReasoningEffort
	}
}

// ConfigSource orchestrates loading configuration from the home directory.
// See the Read method.
type ConfigSource struct {
	Home string
	// Profile selects a profile explicitly. When nil the profile key of the
	// file is used.
	Profile *string
}

// Path returns the location of config.toml.
func (cs *ConfigSource) Path() string {
	return filepath.Join(cs.Home, ConfigTOMLFile)
}

// Read loads and returns the complete Config by merging all layers:
// 1. Embedded defaults
// 2. Top-level keys of config.toml
// 3. Keys of the effective profile
func (cs *ConfigSource) Read() (Config, error) {
	resolved := Config{}

	// Start with embedded defaults
	dto, err := parseConfigDTO(defaultConfig)
	if err != nil {
		slog.Error("failed to parse embedded defaults", "error", err)
		return resolved, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	resolved.Update(dto.settings())

	path := cs.Path()
	var fileDTO configDTO
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return resolved, fmt.Errorf("failed to load %s: %w", path, err)
		}
	} else {
		fileDTO, err = parseConfigDTO(string(data))
		if err != nil {
			// Existing but malformed file should result in failure (let's not hide
			// problems from the users).
			return resolved, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	resolved.Update(fileDTO.settings())

	profile := fileDTO.profile()
	if cs.Profile != nil {
		profile = cs.Profile
	}
	if profile == nil {
		return resolved, nil
	}

	resolved.Profile = *profile
	settings, ok := fileDTO.Profiles[*profile]
	if !ok {
		slog.Debug("profile has no settings table", "profile", *profile, "path", path)
		return resolved, nil
	}
	resolved.Update(settings)

	return resolved, nil
}

type settingsDTO struct {
	Model           *string          `toml:"model"`
	ReasoningEffort *ReasoningEffort `toml:"model_reasoning_effort"`
}

type configDTO struct {
	Profile         interface{}            `toml:"profile"`
	Model           *string                `toml:"model"`
	ReasoningEffort *ReasoningEffort       `toml:"model_reasoning_effort"`
	Profiles        map[string]settingsDTO `toml:"profiles"`
}

// profile returns the profile key when it holds a string. Values of any
// other type are ignored, as they are when writing.
func (dto configDTO) profile() *string {
	name, ok := dto.Profile.(string)
	if !ok {
		return nil
	}
	return &name
}

func (dto configDTO) settings() settingsDTO {
	return settingsDTO{Model: dto.Model, ReasoningEffort: dto.ReasoningEffort}
}

// parseConfigDTO parses a TOML string into a configDTO.
func parseConfigDTO(data string) (configDTO, error) {
	var dto configDTO

	if err := toml.Unmarshal([]byte(data), &dto); err != nil {
		return dto, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return dto, nil
}

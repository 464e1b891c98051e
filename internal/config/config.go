package config

import (
	"github.com/mjosborne1/check-sparked-server/internal/adapters/fhir"
	"github.com/mjosborne1/check-sparked-server/internal/adapters/github"
	"github.com/mjosborne1/check-sparked-server/internal/audit"
	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	"github.com/mjosborne1/check-sparked-server/internal/log"
	"github.com/mjosborne1/check-sparked-server/internal/reporting/json"
	"github.com/mjosborne1/check-sparked-server/internal/reporting/text"
)

type Config struct {
	Settings SettingsConfig `mapstructure:"settings"`
	Server   fhir.Config    `mapstructure:"server" validate:"required"`
	Corpus   CorpusConfig   `mapstructure:"corpus" validate:"required"`
	Report   ReportConfig   `mapstructure:"report"`
}

type SettingsConfig struct {
	LogLevel        log.Level         `mapstructure:"log_level"`
	LogFormat       log.Format        `mapstructure:"log_format"`
	ExpectedVersion string            `mapstructure:"expected_version" validate:"required"`
	MatchPolicy     audit.MatchPolicy `mapstructure:"match_policy" validate:"oneof=first-prefix longest-prefix"`
	ReporterType    string            `mapstructure:"reporter" validate:"oneof=text json"`
	Reporter        ReporterConfigs   `mapstructure:"reporter_config"`
}

type CorpusConfig struct {
	GitHub  github.Config `mapstructure:"github" validate:"required"`
	Path    string        `mapstructure:"path"`
	Filters []string      `mapstructure:"filters" validate:"min=1,dive,required"`
}

type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

type ReporterConfigs struct {
	Text *text.Config `mapstructure:"text,omitempty"`
	JSON *json.Config `mapstructure:"json,omitempty"`
}

// Profiles returns the canonical profile table for this audit. Fixed, not
// configuration-driven: the tracked set is the IG's, not the operator's.
func (c *Config) Profiles() []domain.ProfileCheck {
	return domain.DefaultProfileChecks
}

func (c *Config) ResourceTypes() []domain.ResourceType {
	return domain.TrackedResourceTypes
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:        log.LevelInfo,
			LogFormat:       log.FormatText,
			ExpectedVersion: "1.0.0",
			MatchPolicy:     audit.FirstPrefixMatch,
			ReporterType:    text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
			},
		},
		Server: fhir.Config{
			BaseURL: "https://smile.sparked-fhir.com/ereq",
		},
		Corpus: CorpusConfig{
			GitHub: github.Config{
				Owner: "hl7au",
				Repo:  "sparked-test-data",
			},
			Path:    "",
			Filters: []string{"eRequesting"},
		},
		Report: ReportConfig{
			OutputDir: "output",
		},
	}
}

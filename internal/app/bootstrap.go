package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mjosborne1/check-sparked-server/internal/adapters/fhir"
	"github.com/mjosborne1/check-sparked-server/internal/adapters/github"
	"github.com/mjosborne1/check-sparked-server/internal/audit"
	"github.com/mjosborne1/check-sparked-server/internal/config"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
	"github.com/mjosborne1/check-sparked-server/internal/errors"
	"github.com/mjosborne1/check-sparked-server/internal/log"
	jsonreport "github.com/mjosborne1/check-sparked-server/internal/reporting/json"
	"github.com/mjosborne1/check-sparked-server/internal/reporting/text"
	"github.com/mjosborne1/check-sparked-server/internal/transcript"
)

// BuildApplicationFromViper wires the full pipeline: config, logger,
// console, HTTP adapters, the four audit stages, reporter and transcript
// writer.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(ctx, cfg); err != nil {
		var errorDetails strings.Builder
		errorDetails.WriteString("Configuration validation failed:")
		validationErrors := err.(validator.ValidationErrors)
		for _, fe := range validationErrors {
			errorDetails.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, errorDetails.String(), "Please check your configuration file, environment or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	console := transcript.NewConsole(os.Stdout)

	fhirLog := logger.WithFields(map[string]any{"client": "fhir"})
	fhirClient, err := fhir.NewClient(cfg.Server, fhirLog)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize FHIR client")
	}
	fhirLog.Infof(ctx, "Using FHIR server: %s (auth: %t)", cfg.Server.BaseURL, cfg.Server.UseAuth)

	repoLog := logger.WithFields(map[string]any{"client": "github"})
	repoClient, err := github.NewClient(cfg.Corpus.GitHub, repoLog)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize GitHub client")
	}
	repoLog.Infof(ctx, "Using corpus repository: %s/%s (token: %t)",
		cfg.Corpus.GitHub.Owner, cfg.Corpus.GitHub.Repo, cfg.Corpus.GitHub.Token != "")

	var reporter ports.Reporter
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText})
		if cfg.Settings.Reporter.Text == nil {
			cfg.Settings.Reporter.Text = config.DefaultConfig().Settings.Reporter.Text
		}
		reporter, err = text.NewReporter(*cfg.Settings.Reporter.Text, console, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize text reporter")
		}
	case jsonreport.ReporterTypeJSON:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": jsonreport.ReporterTypeJSON})
		if cfg.Settings.Reporter.JSON == nil {
			cfg.Settings.Reporter.JSON = &jsonreport.Config{}
		}
		reporter, err = jsonreport.NewReporter(*cfg.Settings.Reporter.JSON, console, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}

	application := &Application{
		Config:  cfg,
		Logger:  logger,
		Console: console,
		Auditor: audit.NewProfileAuditor(fhirClient, console,
			logger.WithFields(map[string]any{"component": "profile-auditor"}),
			cfg.Profiles(), cfg.Settings.ExpectedVersion),
		Counter: audit.NewResourceCounter(fhirClient, console,
			logger.WithFields(map[string]any{"component": "resource-counter"}),
			cfg.ResourceTypes()),
		Scanner: audit.NewCorpusScanner(repoClient, console,
			logger.WithFields(map[string]any{"component": "corpus-scanner"}),
			cfg.Corpus.Path, cfg.Corpus.Filters, cfg.ResourceTypes(), cfg.Settings.MatchPolicy),
		Reporter: reporter,
		Writer: transcript.NewWriter(cfg.Report.OutputDir,
			logger.WithFields(map[string]any{"component": "transcript-writer"})),
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return application, nil
}

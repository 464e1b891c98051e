package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
)

const ReporterTypeJSON = "json"

type Config struct{}

// Reporter emits the count comparison as a single JSON document through the
// console, so the transcript carries it too.
type Reporter struct {
	config  Config
	console ports.Console
	logger  ports.Logger
}

func NewReporter(cfg Config, console ports.Console, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config:  cfg,
		console: console,
		logger:  logger,
	}, nil
}

type jsonReport struct {
	Summary jsonSummary      `json:"summary"`
	Results []jsonResultItem `json:"results"`
}

type jsonSummary struct {
	ResourceTypesReported int `json:"resource_types_reported"`
	ExactMatches          int `json:"exact_matches"`
	Anomalies             int `json:"anomalies"`
	PartiallyLoaded       int `json:"partially_loaded"`
	MissingOnServer       int `json:"missing_on_server"`
	Other                 int `json:"other"`
}

type jsonResultItem struct {
	Verdict      domain.Verdict      `json:"verdict"`
	ResourceType domain.ResourceType `json:"resource_type"`
	ServerCount  *int                `json:"server_count"`
	CorpusCount  int                 `json:"corpus_count"`
}

func (r *Reporter) Report(ctx context.Context, rows []domain.ComparisonRow) error {
	report := jsonReport{
		Summary: jsonSummary{ResourceTypesReported: len(rows)},
		Results: make([]jsonResultItem, 0, len(rows)),
	}

	for _, row := range rows {
		if ctx.Err() != nil {
			r.logger.Warnf(ctx, "JSON report generation cancelled.")
			return ctx.Err()
		}

		switch row.Verdict {
		case domain.VerdictExactMatch:
			report.Summary.ExactMatches++
		case domain.VerdictServerExceedsCorpus:
			report.Summary.Anomalies++
		case domain.VerdictServerBelowCorpus:
			report.Summary.PartiallyLoaded++
		case domain.VerdictMissingOnServer:
			report.Summary.MissingOnServer++
		default:
			report.Summary.Other++
		}

		report.Results = append(report.Results, jsonResultItem{
			Verdict:      row.Verdict,
			ResourceType: row.ResourceType,
			ServerCount:  row.ServerCount,
			CorpusCount:  row.CorpusCount,
		})
	}

	encoder := json.NewEncoder(r.console)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}

	r.logger.Debugf(ctx, "JSON report successfully generated.")
	return nil
}

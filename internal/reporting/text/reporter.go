package text

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `mapstructure:"no_color"`
}

// Reporter prints the count comparison through the console so every line
// lands in the transcript.
type Reporter struct {
	config  Config
	console ports.Console
	logger  ports.Logger
}

func NewReporter(cfg Config, console ports.Console, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor {
		color.NoColor = true
	}
	return &Reporter{
		config:  cfg,
		console: console,
		logger:  logger,
	}, nil
}

func (r *Reporter) Report(ctx context.Context, rows []domain.ComparisonRow) error {
	if len(rows) == 0 {
		r.console.Println("No resource types with data on either side.")
		return nil
	}

	tw := tabwriter.NewWriter(r.console, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	fmt.Fprintln(tw, "Test Data Comparison Report")
	fmt.Fprintln(tw, "===========================")
	fmt.Fprintln(tw, "Status\tResource Type\tServer\tCorpus\tDetails")
	fmt.Fprintln(tw, "------\t-------------\t------\t------\t-------")

	matchCount := 0
	anomalyCount := 0
	missingCount := 0
	partialCount := 0
	otherCount := 0

	for _, row := range rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		serverStr := "n/a"
		if row.ServerCount != nil {
			serverStr = fmt.Sprintf("%d", *row.ServerCount)
		}

		statusStr := ""
		details := ""

		switch row.Verdict {
		case domain.VerdictExactMatch:
			matchCount++
			statusStr = green("[MATCH]")
			details = "Server count equals corpus file count."
		case domain.VerdictServerExceedsCorpus:
			anomalyCount++
			statusStr = red("[ANOMALY]")
			details = "Server has more instances than corpus seed files."
		case domain.VerdictServerBelowCorpus:
			partialCount++
			statusStr = yellow("[PARTIAL]")
			details = "Server has fewer instances than corpus seed files."
		case domain.VerdictMissingOnServer:
			missingCount++
			statusStr = yellow("[MISSING]")
			details = "Corpus has test data but server holds no instances."
		case domain.VerdictNoCorpusFiles:
			otherCount++
			statusStr = cyan("[NO FILES]")
			details = "Server holds instances but corpus has no test data files."
		case domain.VerdictNotOnServer:
			otherCount++
			statusStr = magenta("[N/A]")
			details = "Resource type not countable on this server."
		default:
			otherCount++
			statusStr = "[UNKNOWN]"
			details = "Unknown comparison verdict."
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", statusStr, row.ResourceType, serverStr, row.CorpusCount, details)
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Resource Types Reported:\t%d\n", len(rows))
	fmt.Fprintf(tw, "Exact Matches:\t%s\n", green(matchCount))
	fmt.Fprintf(tw, "Anomalies (server exceeds corpus):\t%s\n", red(anomalyCount))
	fmt.Fprintf(tw, "Partially Loaded:\t%s\n", yellow(partialCount))
	fmt.Fprintf(tw, "Missing on Server:\t%s\n", yellow(missingCount))
	fmt.Fprintf(tw, "Other:\t%s\n", cyan(otherCount))

	fmt.Fprintln(tw, "\nNote: this comparison only shows that instance counts line up with the")
	fmt.Fprintln(tw, "available test data files; it does not validate individual instances")
	fmt.Fprintln(tw, "against the corpus content.")

	return nil
}

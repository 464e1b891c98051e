package app

import (
	"context"

	"github.com/mjosborne1/check-sparked-server/internal/audit"
	"github.com/mjosborne1/check-sparked-server/internal/config"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
	"github.com/mjosborne1/check-sparked-server/internal/transcript"
)

// Application drives the audit phases strictly in sequence: profile checks,
// server counts, corpus scan, comparison, transcript save. One HTTP call is
// in flight at any time.
type Application struct {
	Config   *config.Config
	Logger   ports.Logger
	Console  *transcript.Console
	Auditor  *audit.ProfileAuditor
	Counter  *audit.ResourceCounter
	Scanner  *audit.CorpusScanner
	Reporter ports.Reporter
	Writer   *transcript.Writer
}

func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting Sparked server audit...")

	// Whatever happens mid-run, the partial transcript is still saved.
	defer a.Writer.Save(ctx, a.Console)

	a.Console.Printf("--- Auditing Sparked Servers: %s ---\n", a.Config.Server.BaseURL)
	if a.Config.Server.UseAuth {
		a.Console.Printf("    Using Basic Authentication (User: %s)\n\n", a.Config.Server.Username)
	} else {
		a.Console.Printf("    No authentication configured\n\n")
	}

	results := a.Auditor.Run(ctx)
	verified := 0
	for _, r := range results {
		if r.Verified {
			verified++
		}
	}
	a.Logger.Infof(ctx, "Profile audit complete: %d/%d verified", verified, len(results))

	a.Console.Printf("\n--- Counting server resources (%d tracked types) ---\n", len(a.Config.ResourceTypes()))
	counts := a.Counter.Run(ctx)

	a.Console.Printf("\n--- Scanning test data corpus: %s/%s ---\n",
		a.Config.Corpus.GitHub.Owner, a.Config.Corpus.GitHub.Repo)
	index := a.Scanner.Run(ctx)

	a.Console.Printf("\n--- Comparing server counts with corpus ---\n")
	rows := audit.Compare(counts, index)
	if err := a.Reporter.Report(ctx, rows); err != nil {
		a.Logger.Errorf(ctx, err, "report generation failed")
		return err
	}

	a.Logger.Infof(ctx, "Audit completed")
	return nil
}

package audit

import (
	"context"
	"strings"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
	apperrors "github.com/mjosborne1/check-sparked-server/internal/errors"
)

// CorpusScanner indexes test-data files in the corpus repository by resource
// type. Phase 1 lists filtered subdirectories; phase 2 runs a code-search
// fallback for types the capped directory listing surfaced nothing for.
type CorpusScanner struct {
	repo    ports.RepoClient
	console ports.Console
	logger  ports.Logger
	path    string
	filters []string
	types   []domain.ResourceType
	policy  MatchPolicy
}

func NewCorpusScanner(repo ports.RepoClient, console ports.Console, logger ports.Logger, path string, filters []string, types []domain.ResourceType, policy MatchPolicy) *CorpusScanner {
	return &CorpusScanner{
		repo:    repo,
		console: console,
		logger:  logger,
		path:    path,
		filters: filters,
		types:   types,
		policy:  policy,
	}
}

// Run returns an index touching only resource types with at least one
// matched file; absence means zero matches in both phases.
func (s *CorpusScanner) Run(ctx context.Context) domain.CorpusFileIndex {
	index := make(domain.CorpusFileIndex)
	s.scanDirectories(ctx, index)
	s.searchFallback(ctx, index)
	return index
}

func (s *CorpusScanner) scanDirectories(ctx context.Context, index domain.CorpusFileIndex) {
	entries, err := s.repo.ListContents(ctx, s.path)
	if err != nil {
		s.reportListingFailure(ctx, err)
		return
	}

	for _, entry := range entries {
		if entry.Type != domain.RepoEntryDir || !s.matchesFilter(entry.Name) {
			continue
		}

		children, err := s.repo.ListContents(ctx, entry.Path)
		if err != nil {
			// Partial failure isolation: the next directory still scans.
			s.logger.Warnf(ctx, "failed to list %s: %v", entry.Path, err)
			s.console.Printf("[X] Could not list test data directory %s: %v\n", entry.Path, err)
			continue
		}

		var unmatched []string
		for _, child := range children {
			if child.Type != domain.RepoEntryFile || !strings.HasSuffix(child.Name, ".json") {
				continue
			}
			rt, ok := s.policy.classify(child.Name, s.types)
			if !ok {
				unmatched = append(unmatched, child.Name)
				continue
			}
			index[rt] = append(index[rt], child.Path)
		}
		if len(unmatched) > 0 {
			s.console.Printf("[!] %s: %d file(s) match no tracked resource type: %s\n",
				entry.Name, len(unmatched), strings.Join(unmatched, ", "))
		}
	}
}

func (s *CorpusScanner) searchFallback(ctx context.Context, index domain.CorpusFileIndex) {
	for _, rt := range s.types {
		// Only types the directory phase found nothing for; a single
		// phase-1 hit disqualifies the type from fallback.
		if len(index[rt]) > 0 {
			continue
		}

		paths, err := s.repo.SearchFiles(ctx, s.path, string(rt)+"-")
		if err != nil {
			s.logger.Warnf(ctx, "search fallback for %s stopped: %v", rt, err)
			s.console.Printf("[X] Search fallback for %s stopped: %v\n", rt, err)
		}

		marker := "/" + string(rt) + "-"
		for _, path := range paths {
			// The search engine matches on relevance; re-check the
			// filename prefix before trusting a hit.
			if strings.Contains(path, marker) {
				index[rt] = append(index[rt], path)
			}
		}
	}
}

func (s *CorpusScanner) matchesFilter(name string) bool {
	for _, filter := range s.filters {
		if strings.HasPrefix(name, filter) {
			return true
		}
	}
	return false
}

func (s *CorpusScanner) reportListingFailure(ctx context.Context, err error) {
	if apperrors.Is(err, apperrors.CodeRateLimited) {
		msg, suggestion, _ := apperrors.GetUserFacingMessage(err)
		s.console.Printf("[X] %s\n", msg)
		s.console.Printf("    %s\n", suggestion)
		return
	}
	s.logger.Errorf(ctx, err, "top-level corpus listing failed")
	s.console.Printf("[X] Could not list test data directories: %v\n", err)
}

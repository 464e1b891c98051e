package audit

import (
	"sort"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
)

// Compare merges the server counts and the corpus index into one row per
// resource type, sorted lexicographically. Rows where the server has nothing
// countable and the corpus has no files are suppressed.
func Compare(counts domain.ResourceCountMap, index domain.CorpusFileIndex) []domain.ComparisonRow {
	keys := make(map[domain.ResourceType]struct{}, len(counts))
	for rt := range counts {
		keys[rt] = struct{}{}
	}
	for rt := range index {
		keys[rt] = struct{}{}
	}

	types := make([]domain.ResourceType, 0, len(keys))
	for rt := range keys {
		types = append(types, rt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var rows []domain.ComparisonRow
	for _, rt := range types {
		serverCount, counted := counts[rt]
		if !counted {
			serverCount = nil
		}
		corpusCount := len(index[rt])

		if (serverCount == nil || *serverCount == 0) && corpusCount == 0 {
			continue
		}

		rows = append(rows, domain.ComparisonRow{
			ResourceType: rt,
			ServerCount:  serverCount,
			CorpusCount:  corpusCount,
			Verdict:      classifyRow(serverCount, corpusCount),
		})
	}
	return rows
}

func classifyRow(serverCount *int, corpusCount int) domain.Verdict {
	switch {
	case serverCount == nil:
		return domain.VerdictNotOnServer
	case *serverCount == 0:
		return domain.VerdictMissingOnServer
	case corpusCount == 0:
		return domain.VerdictNoCorpusFiles
	case *serverCount == corpusCount:
		return domain.VerdictExactMatch
	case *serverCount > corpusCount:
		// The server holding more live instances than seed files exist
		// is the one combination the intended load process cannot
		// produce.
		return domain.VerdictServerExceedsCorpus
	default:
		return domain.VerdictServerBelowCorpus
	}
}

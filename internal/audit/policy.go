package audit

import (
	"strings"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
)

// MatchPolicy decides which tracked resource type a corpus filename belongs
// to. It exists as a named, swappable choice because prefix classification is
// ambiguous for colliding type names: with first-prefix matching a file named
// PractitionerRole-001.json classifies as Practitioner, because Practitioner
// appears earlier in the tracked list. Historical reports were produced with
// that behavior, so it stays the default; LongestPrefixMatch is the corrected
// alternative.
type MatchPolicy string

const (
	// FirstPrefixMatch walks the tracked list in order and returns the
	// first type whose name prefixes the filename. Matches historical
	// report output, including its misclassification of colliding names.
	FirstPrefixMatch MatchPolicy = "first-prefix"

	// LongestPrefixMatch returns the longest type name that prefixes the
	// filename, so PractitionerRole files classify as PractitionerRole.
	LongestPrefixMatch MatchPolicy = "longest-prefix"
)

func (p MatchPolicy) classify(filename string, types []domain.ResourceType) (domain.ResourceType, bool) {
	switch p {
	case LongestPrefixMatch:
		var best domain.ResourceType
		found := false
		for _, rt := range types {
			if strings.HasPrefix(filename, string(rt)) && len(rt) > len(best) {
				best = rt
				found = true
			}
		}
		return best, found
	default:
		for _, rt := range types {
			if strings.HasPrefix(filename, string(rt)) {
				return rt, true
			}
		}
		return "", false
	}
}

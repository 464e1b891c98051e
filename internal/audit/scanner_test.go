package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	apperrors "github.com/mjosborne1/check-sparked-server/internal/errors"
	"github.com/mjosborne1/check-sparked-server/internal/transcript"
)

func newScanner(repo *fakeRepo, filters []string, types []domain.ResourceType, policy MatchPolicy) (*CorpusScanner, *transcript.Console) {
	console := transcript.NewConsole()
	return NewCorpusScanner(repo, console, NewTestLogger(), "", filters, types, policy), console
}

func dirEntry(name string) domain.RepoEntry {
	return domain.RepoEntry{Name: name, Path: name, Type: domain.RepoEntryDir}
}

func fileEntry(dir, name string) domain.RepoEntry {
	return domain.RepoEntry{Name: name, Path: dir + "/" + name, Type: domain.RepoEntryFile}
}

func TestCorpusScanner_DirectoryPhase(t *testing.T) {
	ctx := context.Background()

	t.Run("filters directories and classifies json files", func(t *testing.T) {
		repo := &fakeRepo{
			listings: map[string][]domain.RepoEntry{
				"": {
					dirEntry("eRequesting-pathology"),
					dirEntry("unrelated"),
					{Name: "README.md", Path: "README.md", Type: domain.RepoEntryFile},
				},
				"eRequesting-pathology": {
					fileEntry("eRequesting-pathology", "Patient-001.json"),
					fileEntry("eRequesting-pathology", "Patient-002.json"),
					fileEntry("eRequesting-pathology", "Task-001.json"),
					fileEntry("eRequesting-pathology", "notes.txt"),
				},
			},
		}
		scanner, _ := newScanner(repo, []string{"eRequesting"}, domain.TrackedResourceTypes, FirstPrefixMatch)

		index := scanner.Run(ctx)

		assert.Equal(t, []string{
			"eRequesting-pathology/Patient-001.json",
			"eRequesting-pathology/Patient-002.json",
		}, index["Patient"])
		assert.Equal(t, []string{"eRequesting-pathology/Task-001.json"}, index["Task"])
	})

	t.Run("first prefix match misclassifies PractitionerRole as Practitioner", func(t *testing.T) {
		// Practitioner precedes PractitionerRole in the tracked list, so
		// with the historical policy the role file lands under
		// Practitioner. Deliberate compatibility behavior.
		repo := &fakeRepo{
			listings: map[string][]domain.RepoEntry{
				"": {dirEntry("eRequesting-core")},
				"eRequesting-core": {
					fileEntry("eRequesting-core", "PractitionerRole-001.json"),
				},
			},
			searchResults: map[string][]string{},
		}
		scanner, _ := newScanner(repo, []string{"eRequesting"}, domain.TrackedResourceTypes, FirstPrefixMatch)

		index := scanner.Run(ctx)

		assert.Equal(t, []string{"eRequesting-core/PractitionerRole-001.json"}, index["Practitioner"])
		assert.Empty(t, index["PractitionerRole"])
	})

	t.Run("longest prefix match classifies colliding names correctly", func(t *testing.T) {
		repo := &fakeRepo{
			listings: map[string][]domain.RepoEntry{
				"": {dirEntry("eRequesting-core")},
				"eRequesting-core": {
					fileEntry("eRequesting-core", "PractitionerRole-001.json"),
					fileEntry("eRequesting-core", "Practitioner-001.json"),
				},
			},
		}
		scanner, _ := newScanner(repo, []string{"eRequesting"}, domain.TrackedResourceTypes, LongestPrefixMatch)

		index := scanner.Run(ctx)

		assert.Equal(t, []string{"eRequesting-core/PractitionerRole-001.json"}, index["PractitionerRole"])
		assert.Equal(t, []string{"eRequesting-core/Practitioner-001.json"}, index["Practitioner"])
	})

	t.Run("unmatched files are reported but not indexed", func(t *testing.T) {
		repo := &fakeRepo{
			listings: map[string][]domain.RepoEntry{
				"": {dirEntry("eRequesting-core")},
				"eRequesting-core": {
					fileEntry("eRequesting-core", "Bundle-everything.json"),
				},
			},
		}
		scanner, console := newScanner(repo, []string{"eRequesting"}, domain.TrackedResourceTypes, FirstPrefixMatch)

		index := scanner.Run(ctx)

		for _, paths := range index {
			assert.NotContains(t, paths, "eRequesting-core/Bundle-everything.json")
		}
		assert.Contains(t, console.Contents(), "Bundle-everything.json")
		assert.Contains(t, console.Contents(), "match no tracked resource type")
	})

	t.Run("one broken subdirectory does not stop the others", func(t *testing.T) {
		repo := &fakeRepo{
			listings: map[string][]domain.RepoEntry{
				"": {dirEntry("eRequesting-a"), dirEntry("eRequesting-b")},
				"eRequesting-b": {
					fileEntry("eRequesting-b", "Patient-001.json"),
				},
			},
			listErrs: map[string]error{
				"eRequesting-a": apperrors.New(apperrors.CodeHTTPStatusError, "HTTP 500"),
			},
		}
		scanner, console := newScanner(repo, []string{"eRequesting"}, domain.TrackedResourceTypes, FirstPrefixMatch)

		index := scanner.Run(ctx)

		assert.Equal(t, []string{"eRequesting-b/Patient-001.json"}, index["Patient"])
		assert.Contains(t, console.Contents(), "[X] Could not list test data directory eRequesting-a")
	})

	t.Run("rate limited top-level listing prints guidance", func(t *testing.T) {
		repo := &fakeRepo{
			listErrs: map[string]error{
				"": apperrors.NewUserFacing(apperrors.CodeRateLimited,
					"GitHub API rate limit exceeded (unauthenticated limit: 60 requests/hour)",
					"Set a GitHub access token (GITHUB_TOKEN) to raise the API rate limit from 60 to 5000 requests per hour."),
			},
		}
		scanner, console := newScanner(repo, []string{"eRequesting"}, []domain.ResourceType{"Patient"}, FirstPrefixMatch)

		scanner.Run(ctx)

		assert.Contains(t, console.Contents(), "rate limit exceeded")
		assert.Contains(t, console.Contents(), "GITHUB_TOKEN")
	})
}

func TestCorpusScanner_SearchFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("triggers only for types with zero directory matches", func(t *testing.T) {
		repo := &fakeRepo{
			listings: map[string][]domain.RepoEntry{
				"": {dirEntry("eRequesting-core")},
				"eRequesting-core": {
					fileEntry("eRequesting-core", "Patient-001.json"),
				},
			},
			searchResults: map[string][]string{
				"Task-": {"eRequesting-extra/Task-900.json"},
			},
		}
		types := []domain.ResourceType{"Patient", "Task"}
		scanner, _ := newScanner(repo, []string{"eRequesting"}, types, FirstPrefixMatch)

		index := scanner.Run(ctx)

		// Patient had a phase-1 hit, so it must never be searched even if
		// more instances exist remotely.
		assert.NotContains(t, repo.searchedPrefixes, "Patient-")
		assert.Contains(t, repo.searchedPrefixes, "Task-")
		assert.Equal(t, []string{"eRequesting-extra/Task-900.json"}, index["Task"])
	})

	t.Run("search hits without the path marker are dropped", func(t *testing.T) {
		repo := &fakeRepo{
			searchResults: map[string][]string{
				"Task-": {
					"eRequesting-extra/Task-900.json",
					"docs/notes-about-Task.md",
				},
			},
		}
		scanner, _ := newScanner(repo, []string{"eRequesting"}, []domain.ResourceType{"Task"}, FirstPrefixMatch)

		index := scanner.Run(ctx)

		assert.Equal(t, []string{"eRequesting-extra/Task-900.json"}, index["Task"])
	})

	t.Run("a failed search stops only that type", func(t *testing.T) {
		repo := &fakeRepo{
			searchResults: map[string][]string{
				"Coverage-": {"eRequesting-extra/Coverage-001.json"},
			},
			searchErrs: map[string]error{
				"Task-": apperrors.New(apperrors.CodeHTTPStatusError, "HTTP 500"),
			},
		}
		scanner, console := newScanner(repo, []string{"eRequesting"},
			[]domain.ResourceType{"Task", "Coverage"}, FirstPrefixMatch)

		index := scanner.Run(ctx)

		assert.Empty(t, index["Task"])
		assert.Equal(t, []string{"eRequesting-extra/Coverage-001.json"}, index["Coverage"])
		assert.Contains(t, console.Contents(), "[X] Search fallback for Task stopped")
	})

	t.Run("types with no matches anywhere stay out of the index", func(t *testing.T) {
		repo := &fakeRepo{}
		scanner, _ := newScanner(repo, []string{"eRequesting"}, []domain.ResourceType{"Consent"}, FirstPrefixMatch)

		index := scanner.Run(ctx)

		_, present := index["Consent"]
		assert.False(t, present)
	})
}

func TestMatchPolicy_Classify(t *testing.T) {
	types := []domain.ResourceType{"Communication", "CommunicationRequest"}

	rt, ok := FirstPrefixMatch.classify("CommunicationRequest-001.json", types)
	require.True(t, ok)
	assert.Equal(t, domain.ResourceType("Communication"), rt)

	rt, ok = LongestPrefixMatch.classify("CommunicationRequest-001.json", types)
	require.True(t, ok)
	assert.Equal(t, domain.ResourceType("CommunicationRequest"), rt)

	_, ok = FirstPrefixMatch.classify("Unrelated-001.json", types)
	assert.False(t, ok)
}

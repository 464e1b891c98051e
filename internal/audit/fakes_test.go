package audit

import (
	"context"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
)

// fakeFHIR serves canned responses per canonical URL / resource type.
type fakeFHIR struct {
	searchSets   map[string]domain.SearchSet
	searchErrs   map[string]error
	counts       map[domain.ResourceType]int
	countErrs    map[domain.ResourceType]error
	countedTypes []domain.ResourceType
}

func (f *fakeFHIR) SearchStructureDefinitions(ctx context.Context, canonicalURL string) (domain.SearchSet, error) {
	if err, ok := f.searchErrs[canonicalURL]; ok {
		return domain.SearchSet{}, err
	}
	return f.searchSets[canonicalURL], nil
}

func (f *fakeFHIR) CountResources(ctx context.Context, resourceType domain.ResourceType) (int, error) {
	f.countedTypes = append(f.countedTypes, resourceType)
	if err, ok := f.countErrs[resourceType]; ok {
		return 0, err
	}
	return f.counts[resourceType], nil
}

// fakeRepo serves canned directory listings and search results, recording
// which searches were issued.
type fakeRepo struct {
	listings         map[string][]domain.RepoEntry
	listErrs         map[string]error
	searchResults    map[string][]string
	searchErrs       map[string]error
	searchedPrefixes []string
}

func (f *fakeRepo) ListContents(ctx context.Context, path string) ([]domain.RepoEntry, error) {
	if err, ok := f.listErrs[path]; ok {
		return nil, err
	}
	return f.listings[path], nil
}

func (f *fakeRepo) SearchFiles(ctx context.Context, path string, filenamePrefix string) ([]string, error) {
	f.searchedPrefixes = append(f.searchedPrefixes, filenamePrefix)
	if err, ok := f.searchErrs[filenamePrefix]; ok {
		return f.searchResults[filenamePrefix], err
	}
	return f.searchResults[filenamePrefix], nil
}

package domain

// SearchSet is the slice of a FHIR searchset bundle the profile audit needs:
// the reported total and the version/status of each returned
// StructureDefinition.
type SearchSet struct {
	Total   int
	Entries []StructureDefinitionEntry
}

type StructureDefinitionEntry struct {
	Version string
	Status  string
}

// ProfileCheckResult captures one profile's audit outcome. ActiveVersions
// preserves server result order; the first entry is treated as the active
// version when more than one entry reports status "active".
type ProfileCheckResult struct {
	Name           string
	AllVersions    []string
	ActiveVersions []string
	Found          bool
	Verified       bool
	Err            error
}

// ResourceCountMap holds the server-side instance tally per tracked resource
// type. A nil entry means the count could not be obtained (unsupported type
// or query failure) and is distinct from a true zero.
type ResourceCountMap map[ResourceType]*int

// CorpusFileIndex maps a resource type to the repo-relative paths of its
// test-data files. Types with no matched files are absent from the map.
type CorpusFileIndex map[ResourceType][]string

// RepoEntry is one child of a repository contents listing.
type RepoEntry struct {
	Name string
	Path string
	Type string
}

const (
	RepoEntryDir  = "dir"
	RepoEntryFile = "file"
)

type Verdict string

const (
	VerdictNotOnServer         Verdict = "NOT_ON_SERVER"
	VerdictMissingOnServer     Verdict = "MISSING_ON_SERVER"
	VerdictNoCorpusFiles       Verdict = "NO_CORPUS_FILES"
	VerdictExactMatch          Verdict = "EXACT_MATCH"
	VerdictServerExceedsCorpus Verdict = "SERVER_EXCEEDS_CORPUS"
	VerdictServerBelowCorpus   Verdict = "SERVER_BELOW_CORPUS"
)

// ComparisonRow is one printed line of the count comparison. ServerCount is
// nil when the server could not report a count for the type.
type ComparisonRow struct {
	ResourceType ResourceType
	ServerCount  *int
	CorpusCount  int
	Verdict      Verdict
}

package core

import "time"

// Match is a single hit from the external search index. Locator is untrusted
// input and must be parsed defensively.
type Match struct {
	Text    string
	Score   float64
	Locator string
}

// Repository identifies the origin repository of a stored artifact.
type Repository struct {
	Org  string
	Name string
}

// FullName returns the "org/name" repository identifier.
func (r Repository) FullName() string {
	return r.Org + "/" + r.Name
}

// Links are the quick-launch URLs derived from a repository identity.
type Links struct {
	Primary  string
	CloudIDE string
	AltIDE   string
}

// AuxMetadata is auxiliary repository metadata fetched from the object store.
// Its absence is a valid outcome, never an error condition.
type AuxMetadata struct {
	LastPushed   time.Time
	CanonicalURL string
	ProcessedAt  time.Time
}

// EnrichedMatch is a raw match augmented with repository identity,
// quick-launch links, and optional auxiliary metadata. Known is false when
// the locator could not be parsed and the sentinel identity is in use.
type EnrichedMatch struct {
	Match
	Repository Repository
	Artifact   string
	Links      Links
	Aux        *AuxMetadata
	Known      bool
}

// PublicResult is the wire-level result shape returned to clients.
type PublicResult struct {
	Repository string         `json:"repository"`
	Path       string         `json:"path"`
	Snippet    string         `json:"snippet"`
	Score      float64        `json:"score"`
	Metadata   ResultMetadata `json:"metadata"`
}

// ResultMetadata is the metadata block of a public result, with defaults
// substituted when the underlying values are unavailable.
type ResultMetadata struct {
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	LastUpdated time.Time `json:"last_updated"`
	URL         string    `json:"url"`
}

// QueryResult is the orchestrator's response: ordered public results plus the
// elapsed wall-clock time.
type QueryResult struct {
	Results []PublicResult `json:"results"`
	TookMs  int64          `json:"took_ms"`
}

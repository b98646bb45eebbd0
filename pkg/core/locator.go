package core

import (
	"fmt"
	"net/url"
	"strings"
)

// minLocatorSegments is the number of path segments a well-formed locator
// carries: root/{org}/{repo}/{artifact}.
const minLocatorSegments = 4

// UnknownRepository is the sentinel identity used when a locator cannot be
// parsed. Downstream code must branch on ParsedLocator.Valid, not on the
// sentinel strings.
var UnknownRepository = Repository{Org: "unknown", Name: "unknown"}

// ParsedLocator is the tagged outcome of parsing a storage locator.
// Valid=false is a first-class outcome, not an exception.
type ParsedLocator struct {
	Repository Repository
	Artifact   string
	Valid      bool
	Reason     string
}

// ParseLocator parses a hierarchical storage path of the form
// root/{org}/{repo}/{artifact}, percent-decoding the org and repo segments.
// It never panics and reports malformed input through the Valid/Reason pair.
func ParseLocator(locator string) ParsedLocator {
	parts := strings.Split(locator, "/")
	if len(parts) < minLocatorSegments {
		return invalidLocator(fmt.Sprintf("expected at least %d path segments, got %d", minLocatorSegments, len(parts)))
	}

	for i, p := range parts[:minLocatorSegments-1] {
		if p == "" {
			return invalidLocator(fmt.Sprintf("empty path segment at position %d", i))
		}
	}

	org, err := url.PathUnescape(parts[1])
	if err != nil {
		return invalidLocator("org segment is not valid percent-encoding")
	}

	name, err := url.PathUnescape(parts[2])
	if err != nil {
		return invalidLocator("repo segment is not valid percent-encoding")
	}

	if org == "" || name == "" {
		return invalidLocator("org and repo segments must be non-empty after decoding")
	}

	artifact := strings.Join(parts[3:], "/")
	if artifact == "" {
		return invalidLocator("artifact segment must be non-empty")
	}

	return ParsedLocator{
		Repository: Repository{Org: org, Name: name},
		Artifact:   artifact,
		Valid:      true,
	}
}

func invalidLocator(reason string) ParsedLocator {
	return ParsedLocator{Repository: UnknownRepository, Valid: false, Reason: reason}
}

// DeriveLinks deterministically derives quick-launch links from a repository
// identity: the repository page, the cloud IDE on the same host family, and
// a third-party IDE with the URL-encoded target embedded after the fragment
// marker.
func DeriveLinks(repo Repository) Links {
	primary := "https://github.com/" + repo.Org + "/" + repo.Name

	return Links{
		Primary:  primary,
		CloudIDE: "https://github.dev/" + repo.Org + "/" + repo.Name,
		AltIDE:   "https://gitpod.io/#" + url.QueryEscape(primary),
	}
}

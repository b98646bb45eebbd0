package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		name     string
		locator  string
		wantOrg  string
		wantName string
		wantArt  string
		invalid  bool
	}{
		{
			name:     "well formed",
			locator:  "repos/alphagov/govuk-frontend/src/index.js",
			wantOrg:  "alphagov",
			wantName: "govuk-frontend",
			wantArt:  "src/index.js",
		},
		{
			name:     "single artifact segment",
			locator:  "repos/hmrc/tax-calc/main.go",
			wantOrg:  "hmrc",
			wantName: "tax-calc",
			wantArt:  "main.go",
		},
		{
			name:     "percent encoded segments",
			locator:  "repos/gov%20uk/my%2Frepo/README.md",
			wantOrg:  "gov uk",
			wantName: "my/repo",
			wantArt:  "README.md",
		},
		{
			name:    "too few segments",
			locator: "repos/alphagov/govuk-frontend",
			invalid: true,
		},
		{
			name:    "empty string",
			locator: "",
			invalid: true,
		},
		{
			name:    "empty org segment",
			locator: "repos//govuk-frontend/main.go",
			invalid: true,
		},
		{
			name:    "empty artifact",
			locator: "repos/alphagov/govuk-frontend/",
			invalid: true,
		},
		{
			name:    "bad percent encoding in org",
			locator: "repos/al%zzgov/repo/main.go",
			invalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseLocator(tt.locator)

			if tt.invalid {
				assert.False(t, parsed.Valid)
				assert.Equal(t, UnknownRepository, parsed.Repository)
				assert.NotEmpty(t, parsed.Reason)

				return
			}

			require.True(t, parsed.Valid, "reason: %s", parsed.Reason)
			assert.Equal(t, tt.wantOrg, parsed.Repository.Org)
			assert.Equal(t, tt.wantName, parsed.Repository.Name)
			assert.Equal(t, tt.wantArt, parsed.Artifact)
		})
	}
}

func TestDeriveLinks(t *testing.T) {
	links := DeriveLinks(Repository{Org: "alphagov", Name: "govuk-frontend"})

	assert.Equal(t, "https://github.com/alphagov/govuk-frontend", links.Primary)
	assert.Equal(t, "https://github.dev/alphagov/govuk-frontend", links.CloudIDE)
	assert.Equal(t, "https://gitpod.io/#https%3A%2F%2Fgithub.com%2Falphagov%2Fgovuk-frontend", links.AltIDE)
}

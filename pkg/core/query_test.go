package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisns/govreposcrape-sub006/pkg/errs"
)

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		limit    int
		wantCode string
	}{
		{
			name:  "valid",
			text:  "authentication middleware",
			limit: 5,
		},
		{
			name:  "minimum length after trim",
			text:  "  abc  ",
			limit: 1,
		},
		{
			name:  "maximum length",
			text:  strings.Repeat("a", MaxQueryLength),
			limit: MaxLimit,
		},
		{
			name:     "too short",
			text:     "ab",
			limit:    5,
			wantCode: errs.CodeQueryTooShort,
		},
		{
			name:     "whitespace only",
			text:     "   ",
			limit:    5,
			wantCode: errs.CodeQueryTooShort,
		},
		{
			name:     "too long",
			text:     strings.Repeat("a", MaxQueryLength+1),
			limit:    5,
			wantCode: errs.CodeQueryTooLong,
		},
		{
			name:     "limit below minimum",
			text:     "postcode lookup",
			limit:    0,
			wantCode: errs.CodeInvalidLimit,
		},
		{
			name:     "limit above maximum",
			text:     "postcode lookup",
			limit:    21,
			wantCode: errs.CodeInvalidLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuery(tt.text, tt.limit)

			if tt.wantCode != "" {
				require.Error(t, err)

				v, ok := errs.AsValidation(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, v.Code)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.text), q.Text())
			assert.Equal(t, tt.limit, q.Limit())
		})
	}
}

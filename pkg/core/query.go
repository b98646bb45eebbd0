package core

import (
	"fmt"
	"strings"

	"github.com/chrisns/govreposcrape-sub006/pkg/errs"
)

// Query shape constraints. Violations raise ValidationFailure with distinct codes.
const (
	MinQueryLength = 3
	MaxQueryLength = 500
	MinLimit       = 1
	MaxLimit       = 20
	DefaultLimit   = 5
)

// Query is a validated search request. Immutable once constructed.
type Query struct {
	text  string
	limit int
}

// NewQuery validates the query text and result limit and returns an immutable
// Query. The text is trimmed before length validation. Callers that received
// no limit should pass DefaultLimit.
func NewQuery(text string, limit int) (Query, error) {
	text = strings.TrimSpace(text)

	if len(text) < MinQueryLength {
		return Query{}, errs.NewValidation(errs.CodeQueryTooShort,
			fmt.Sprintf("query must be at least %d characters", MinQueryLength))
	}

	if len(text) > MaxQueryLength {
		return Query{}, errs.NewValidation(errs.CodeQueryTooLong,
			fmt.Sprintf("query must be at most %d characters", MaxQueryLength))
	}

	if limit < MinLimit || limit > MaxLimit {
		return Query{}, errs.NewValidation(errs.CodeInvalidLimit,
			fmt.Sprintf("limit must be between %d and %d", MinLimit, MaxLimit))
	}

	return Query{text: text, limit: limit}, nil
}

// Text returns the trimmed query text.
func (q Query) Text() string { return q.text }

// Limit returns the maximum number of results to retrieve.
func (q Query) Limit() int { return q.limit }

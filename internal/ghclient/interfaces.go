package ghclient

import (
	"context"

	"github.com/reposcore/reposcore/internal/model"
)

// Fetcher defines the GitHub operations the scoring engine depends on.
// This interface enables mocking the API in engine tests.
type Fetcher interface {
	// RepoCounts returns aggregate counts; zero-valued on failure.
	RepoCounts(ctx context.Context, repo model.Repository) model.RepoCounts

	// CollectRelation returns the deduplicated logins for one relation.
	// Transport failures are absorbed into a partial set; the error is
	// non-nil only on context cancellation.
	CollectRelation(ctx context.Context, kind model.RelationKind, repo model.Repository) (map[string]struct{}, error)

	// UserProfile returns a user's profile; zero-valued on failure.
	UserProfile(ctx context.Context, login string) model.UserProfile
}

// Ensure Client implements Fetcher.
var _ Fetcher = (*Client)(nil)

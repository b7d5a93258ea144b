package ghclient

import (
	"strings"
	"testing"

	"github.com/reposcore/reposcore/internal/model"
)

func TestRelationQueriesLoaded(t *testing.T) {
	for _, kind := range model.AllRelationKinds {
		query := RelationQuery(kind)
		if query == "" {
			t.Errorf("no query loaded for relation %q", kind)
			continue
		}
		// Every relation paginates with the same page shape.
		for _, want := range []string{"first: 100", "after: $after", "pageInfo", "hasNextPage", "endCursor"} {
			if !strings.Contains(query, want) {
				t.Errorf("%s query missing %q", kind, want)
			}
		}
	}
}

func TestForkQuerySelectsOwnerLogin(t *testing.T) {
	query := RelationQuery(model.RelationForker)
	if !strings.Contains(query, "owner") || !strings.Contains(query, "login") {
		t.Errorf("fork query must select the fork owner's login:\n%s", query)
	}
}

func TestRepoCountsQueryFields(t *testing.T) {
	for _, want := range []string{"stargazerCount", "watchers", "totalCount", "forkCount"} {
		if !strings.Contains(repoCountsQuery, want) {
			t.Errorf("repo counts query missing %q", want)
		}
	}
}

func TestUserProfileQueryFields(t *testing.T) {
	for _, want := range []string{
		"contributionsCollection(from: $from, to: $to)",
		"contributionCalendar",
		"totalContributions",
		"company",
		"repositories",
		"totalCount",
	} {
		if !strings.Contains(userProfileQuery, want) {
			t.Errorf("user profile query missing %q", want)
		}
	}
}

func TestConnectionField(t *testing.T) {
	tests := []struct {
		kind model.RelationKind
		want string
	}{
		{model.RelationStargazer, "stargazers"},
		{model.RelationWatcher, "watchers"},
		{model.RelationForker, "forks"},
		{model.RelationKind("bogus"), ""},
	}
	for _, tt := range tests {
		if got := connectionField(tt.kind); got != tt.want {
			t.Errorf("connectionField(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

package ghclient

import (
	"embed"
	"fmt"

	"github.com/reposcore/reposcore/internal/model"
)

//go:embed queries/*.graphql
var queryFiles embed.FS

// Query documents loaded at init time. Field names follow the GitHub
// GraphQL schema and must stay verbatim; the response parsers in
// collector.go, counter.go, and profile.go depend on them.
var (
	relationQueries   map[model.RelationKind]string
	repoCountsQuery   string
	userProfileQuery  string
	relationQueryFile = map[model.RelationKind]string{
		model.RelationStargazer: "queries/stargazers.graphql",
		model.RelationWatcher:   "queries/watchers.graphql",
		model.RelationForker:    "queries/forks.graphql",
	}
)

func init() {
	relationQueries = make(map[model.RelationKind]string, len(relationQueryFile))
	for kind, file := range relationQueryFile {
		data, err := queryFiles.ReadFile(file)
		if err != nil {
			panic(fmt.Sprintf("failed to load %s: %v", file, err))
		}
		relationQueries[kind] = string(data)
	}

	data, err := queryFiles.ReadFile("queries/repo_counts.graphql")
	if err != nil {
		panic(fmt.Sprintf("failed to load repo_counts.graphql: %v", err))
	}
	repoCountsQuery = string(data)

	data, err = queryFiles.ReadFile("queries/user_profile.graphql")
	if err != nil {
		panic(fmt.Sprintf("failed to load user_profile.graphql: %v", err))
	}
	userProfileQuery = string(data)
}

// RelationQuery returns the query document for a relation kind.
// Exposed for query-shape tests.
func RelationQuery(kind model.RelationKind) string {
	return relationQueries[kind]
}

// connectionField maps a relation kind to the repository connection it
// paginates over in the GraphQL response.
func connectionField(kind model.RelationKind) string {
	switch kind {
	case model.RelationStargazer:
		return "stargazers"
	case model.RelationWatcher:
		return "watchers"
	case model.RelationForker:
		return "forks"
	default:
		return ""
	}
}

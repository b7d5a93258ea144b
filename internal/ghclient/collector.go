package ghclient

import (
	"context"
	"encoding/json"

	"github.com/reposcore/reposcore/internal/log"
	"github.com/reposcore/reposcore/internal/model"
)

// relationConnection is the paginated connection shape shared by the
// stargazers, watchers, and forks queries. For forks the login lives on
// the fork's owner; forks are a proxy for the user who created them.
type relationConnection struct {
	PageInfo struct {
		HasNextPage bool   `json:"hasNextPage"`
		EndCursor   string `json:"endCursor"`
	} `json:"pageInfo"`
	Nodes []struct {
		Login string `json:"login"`
		Owner *struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"nodes"`
}

// CollectRelation walks all pages of one relation and returns the set of
// engaged user logins. The first page is requested without a cursor;
// each following page carries the previous page's endCursor.
//
// The loop is fail-soft: an executor failure or an absent repository
// terminates pagination and the partially accumulated set is returned
// with a nil error. Only context cancellation surfaces as an error, and
// even then the partial set is returned alongside it.
func (c *Client) CollectRelation(ctx context.Context, kind model.RelationKind, repo model.Repository) (map[string]struct{}, error) {
	logins := make(map[string]struct{})

	query := relationQueries[kind]
	var cursor *string

	for {
		if err := ctx.Err(); err != nil {
			return logins, err
		}

		variables := map[string]any{
			"owner": repo.Owner,
			"name":  repo.Name,
			"after": cursor,
		}

		data, err := c.execGraphQL(ctx, query, variables)
		if err != nil {
			if ctx.Err() != nil {
				return logins, ctx.Err()
			}
			log.Warn("relation page fetch failed, keeping partial set",
				"relation", kind, "repo", repo.FullName(), "collected", len(logins), "error", err)
			return logins, nil
		}

		conn, ok := parseRelationPage(data, kind)
		if !ok {
			log.Warn("repository absent from response, keeping partial set",
				"relation", kind, "repo", repo.FullName(), "collected", len(logins))
			return logins, nil
		}

		for _, node := range conn.Nodes {
			login := node.Login
			if kind == model.RelationForker && node.Owner != nil {
				login = node.Owner.Login
			}
			if login != "" {
				logins[login] = struct{}{}
			}
		}

		log.Debug("collected relation page",
			"relation", kind, "repo", repo.FullName(),
			"pageItems", len(conn.Nodes), "total", len(logins),
			"hasNextPage", conn.PageInfo.HasNextPage)

		if !conn.PageInfo.HasNextPage {
			return logins, nil
		}
		cursor = &conn.PageInfo.EndCursor
	}
}

// parseRelationPage extracts the relation connection for kind from the
// response data. ok is false when the repository is null or the payload
// doesn't follow the query shape.
func parseRelationPage(data json.RawMessage, kind model.RelationKind) (*relationConnection, bool) {
	var resp struct {
		Repository map[string]json.RawMessage `json:"repository"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.Repository == nil {
		return nil, false
	}

	raw, ok := resp.Repository[connectionField(kind)]
	if !ok {
		return nil, false
	}

	var conn relationConnection
	if err := json.Unmarshal(raw, &conn); err != nil {
		return nil, false
	}
	return &conn, true
}

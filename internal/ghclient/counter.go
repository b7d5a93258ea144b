package ghclient

import (
	"context"
	"encoding/json"

	"github.com/reposcore/reposcore/internal/log"
	"github.com/reposcore/reposcore/internal/model"
)

// RepoCounts fetches the repository's aggregate star/watcher/fork counts
// in a single non-paginated query. The counts are reporting-only: on any
// failure or an absent repository all three default to zero so scoring
// is never blocked.
func (c *Client) RepoCounts(ctx context.Context, repo model.Repository) model.RepoCounts {
	variables := map[string]any{
		"owner": repo.Owner,
		"name":  repo.Name,
	}

	data, err := c.execGraphQL(ctx, repoCountsQuery, variables)
	if err != nil {
		log.Warn("repository counts fetch failed, defaulting to zero", "repo", repo.FullName(), "error", err)
		return model.RepoCounts{}
	}

	var resp struct {
		Repository *struct {
			StargazerCount int `json:"stargazerCount"`
			Watchers       struct {
				TotalCount int `json:"totalCount"`
			} `json:"watchers"`
			ForkCount int `json:"forkCount"`
		} `json:"repository"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.Repository == nil {
		log.Warn("repository absent from counts response, defaulting to zero", "repo", repo.FullName())
		return model.RepoCounts{}
	}

	return model.RepoCounts{
		Stars:    resp.Repository.StargazerCount,
		Watchers: resp.Repository.Watchers.TotalCount,
		Forks:    resp.Repository.ForkCount,
	}
}

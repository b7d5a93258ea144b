package ghclient

import (
	"context"
	"encoding/json"
	"time"

	"github.com/reposcore/reposcore/internal/log"
	"github.com/reposcore/reposcore/internal/model"
)

// contributionWindowDays is the trailing window for the contribution
// total. This is a rolling window ending at the moment of the call, not
// a calendar year.
const contributionWindowDays = 365

// UserProfile fetches the profile fields classification is based on:
// the user's contribution total over the trailing 365 days, their
// self-declared company text, and their owned-repository count.
//
// On failure or an absent user the zero profile is returned, which
// classifies as not significant rather than erroring.
func (c *Client) UserProfile(ctx context.Context, login string) model.UserProfile {
	to := c.now().UTC()
	from := to.AddDate(0, 0, -contributionWindowDays)

	variables := map[string]any{
		"login": login,
		"from":  from.Format(time.RFC3339),
		"to":    to.Format(time.RFC3339),
	}

	data, err := c.execGraphQL(ctx, userProfileQuery, variables)
	if err != nil {
		log.Warn("user profile fetch failed, treating as not significant", "login", login, "error", err)
		return model.UserProfile{}
	}

	var resp struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
			Company      string `json:"company"`
			Repositories struct {
				TotalCount int `json:"totalCount"`
			} `json:"repositories"`
		} `json:"user"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.User == nil {
		log.Debug("user absent from profile response", "login", login)
		return model.UserProfile{}
	}

	return model.UserProfile{
		ContributionsLastYear: resp.User.ContributionsCollection.ContributionCalendar.TotalContributions,
		Company:               resp.User.Company,
		RepositoryCount:       resp.User.Repositories.TotalCount,
	}
}

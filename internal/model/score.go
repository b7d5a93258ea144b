// Package model defines the core types shared across the scoring pipeline.
package model

import "fmt"

// Repository identifies a GitHub repository by owner and name.
type Repository struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// FullName returns the owner/name form of the repository.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// HTMLURL returns the canonical web URL for the repository.
func (r Repository) HTMLURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", r.Owner, r.Name)
}

// RelationKind is one of the three ways a user can be engaged with a
// repository: starring, watching, or forking it.
type RelationKind string

const (
	RelationStargazer RelationKind = "stargazer"
	RelationWatcher   RelationKind = "watcher"
	RelationForker    RelationKind = "forker"
)

// AllRelationKinds lists the relation kinds in display order.
var AllRelationKinds = []RelationKind{RelationStargazer, RelationWatcher, RelationForker}

// RepoCounts holds the repository's aggregate engagement counts.
// These are advisory numbers for the report; scoring works off the
// collected user sets, not these totals.
type RepoCounts struct {
	Stars    int `json:"stars"`
	Watchers int `json:"watchers"`
	Forks    int `json:"forks"`
}

// UserProfile holds the fields a classification decision is based on.
// Profiles are fetched per user and discarded after classification.
type UserProfile struct {
	ContributionsLastYear int
	Company               string
	RepositoryCount       int
}

// Classification is the outcome of classifying a single engaged user.
type Classification int

const (
	// NotSignificant is the default outcome: neither rule matched.
	NotSignificant Classification = iota
	// SignificantOther matched the activity-threshold rule.
	SignificantOther
	// SignificantOrg matched the organization-affiliation rule.
	// Org affiliation takes precedence over the activity rule.
	SignificantOrg
)

// Significant reports whether the classification counts toward the
// power-user tally.
func (c Classification) Significant() bool {
	return c == SignificantOther || c == SignificantOrg
}

func (c Classification) String() string {
	switch c {
	case SignificantOrg:
		return "significant-org"
	case SignificantOther:
		return "significant-other"
	default:
		return "not-significant"
	}
}

// ScoreResult is the artifact of one scoring run.
type ScoreResult struct {
	Repository Repository `json:"repository"`

	Counts RepoCounts `json:"counts"`

	TotalEngaged     int `json:"total_engaged"`
	SignificantCount int `json:"significant_count"`
	OrgCount         int `json:"org_count"`

	PowerUserRate float64 `json:"power_user_rate"`
	OrgUserRate   float64 `json:"org_user_rate"`
}

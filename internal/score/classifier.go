// Package score implements user classification and the engagement
// scoring engine.
package score

import (
	"strings"

	"github.com/reposcore/reposcore/internal/model"
)

// Default thresholds for the significance rule.
const (
	DefaultOrgSubstring     = "microsoft"
	DefaultMinContributions = 50
	DefaultMinRepositories  = 5
)

// Rule holds the thresholds for classifying an engaged user as
// significant.
type Rule struct {
	// OrgSubstring marks a user as org-affiliated when their declared
	// company text contains it, case-insensitively.
	OrgSubstring string

	// MinContributions and MinRepositories are inclusive lower bounds;
	// both must be met for the activity rule.
	MinContributions int
	MinRepositories  int
}

// DefaultRule returns the stock significance rule.
func DefaultRule() Rule {
	return Rule{
		OrgSubstring:     DefaultOrgSubstring,
		MinContributions: DefaultMinContributions,
		MinRepositories:  DefaultMinRepositories,
	}
}

// Classify applies the significance rule to a profile. The organization
// check runs first: an org-affiliated user with low activity is still
// classified by organization, never falling through to the activity
// check.
func (r Rule) Classify(p model.UserProfile) model.Classification {
	if p.Company != "" && r.OrgSubstring != "" &&
		strings.Contains(strings.ToLower(p.Company), strings.ToLower(r.OrgSubstring)) {
		return model.SignificantOrg
	}
	if p.ContributionsLastYear >= r.MinContributions && p.RepositoryCount >= r.MinRepositories {
		return model.SignificantOther
	}
	return model.NotSignificant
}

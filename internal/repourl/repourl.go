// Package repourl parses user-supplied repository addresses.
package repourl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/reposcore/reposcore/internal/model"
)

// ErrInvalidAddress is returned when an address has fewer than the
// owner and name path segments.
var ErrInvalidAddress = errors.New("invalid repository address")

// Parse extracts the repository owner and name from an address like
// https://github.com/owner/repo. Only the first two path segments are
// consulted; trailing segments (e.g. /tree/main) are ignored.
// Bare owner/repo input without a scheme is accepted as well.
func Parse(address string) (model.Repository, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return model.Repository{}, fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	path := trimmed
	if strings.Contains(trimmed, "://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return model.Repository{}, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
		}
		path = u.Path
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return model.Repository{}, fmt.Errorf("%w: expected owner and name segments in %q", ErrInvalidAddress, address)
	}

	return model.Repository{Owner: parts[0], Name: parts[1]}, nil
}

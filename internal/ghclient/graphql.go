package ghclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/reposcore/reposcore/internal/log"
)

const graphqlEndpoint = "https://api.github.com/graphql"

// graphqlRequest represents a GraphQL request payload.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse represents a generic GraphQL response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// execGraphQL executes a single GraphQL query with variables against the
// GitHub API. It makes exactly one request: no retry, no back-off. An
// error covers transport failures and non-2xx statuses only; GraphQL
// errors alongside partial data are logged and left to the caller, since
// an absent repository or user still arrives as a null in the data tree.
func (c *Client) execGraphQL(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	bodyBytes, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.graphqlURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.graphqlClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GraphQL request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GraphQL response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GraphQL request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL response: %w", err)
	}

	for _, e := range gqlResp.Errors {
		log.Debug("GraphQL error", "message", e.Message, "type", e.Type)
	}

	log.Trace("GraphQL response", "bytes", len(respBody))

	return gqlResp.Data, nil
}

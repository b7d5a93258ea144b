package ghclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reposcore/reposcore/internal/model"
)

// newTestClient builds a client pointed at a local test server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		token:         "test-token",
		graphqlClient: srv.Client(),
		graphqlURL:    srv.URL,
		now:           time.Now,
	}
}

// decodeRequest pulls the query and variables out of a GraphQL request body.
func decodeRequest(t *testing.T, r *http.Request) (string, map[string]any) {
	t.Helper()
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	return req.Query, req.Variables
}

func relationPage(field string, logins []string, hasNext bool, endCursor string) string {
	nodes := make([]map[string]any, len(logins))
	for i, l := range logins {
		nodes[i] = map[string]any{"login": l}
	}
	payload := map[string]any{
		"data": map[string]any{
			"repository": map[string]any{
				field: map[string]any{
					"pageInfo": map[string]any{
						"hasNextPage": hasNext,
						"endCursor":   endCursor,
					},
					"nodes": nodes,
				},
			},
		},
	}
	out, _ := json.Marshal(payload)
	return string(out)
}

var testRepo = model.Repository{Owner: "octocat", Name: "Hello-World"}

func TestCollectRelationPagination(t *testing.T) {
	var requests int
	var cursors []any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, variables := decodeRequest(t, r)
		cursors = append(cursors, variables["after"])

		switch requests {
		case 1:
			fmt.Fprint(w, relationPage("stargazers", []string{"alice", "bob"}, true, "cursor1"))
		case 2:
			fmt.Fprint(w, relationPage("stargazers", []string{"carol"}, true, "cursor2"))
		default:
			fmt.Fprint(w, relationPage("stargazers", []string{"dave"}, false, "cursor3"))
		}
	})

	c := newTestClient(t, handler)
	logins, err := c.CollectRelation(context.Background(), model.RelationStargazer, testRepo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requests != 3 {
		t.Errorf("expected exactly 3 requests, got %d", requests)
	}
	// First page has no cursor, each later page carries the previous endCursor.
	if cursors[0] != nil {
		t.Errorf("first request should have nil cursor, got %v", cursors[0])
	}
	if cursors[1] != "cursor1" || cursors[2] != "cursor2" {
		t.Errorf("unexpected cursor sequence: %v", cursors)
	}

	want := []string{"alice", "bob", "carol", "dave"}
	if len(logins) != len(want) {
		t.Fatalf("expected %d logins, got %d", len(want), len(logins))
	}
	for _, login := range want {
		if _, ok := logins[login]; !ok {
			t.Errorf("missing login %q", login)
		}
	}
}

func TestCollectRelationFailSoft(t *testing.T) {
	var requests int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			fmt.Fprint(w, relationPage("watchers", []string{"alice", "bob"}, true, "cursor1"))
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := newTestClient(t, handler)
	logins, err := c.CollectRelation(context.Background(), model.RelationWatcher, testRepo)
	if err != nil {
		t.Fatalf("transport failure must not surface as error, got: %v", err)
	}

	// First page's users survive the second page's failure.
	if len(logins) != 2 {
		t.Errorf("expected partial set of 2, got %d", len(logins))
	}
	if _, ok := logins["alice"]; !ok {
		t.Error("partial set missing alice")
	}
}

func TestCollectRelationForkerOwnerLogin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"repository": {"forks": {
			"pageInfo": {"hasNextPage": false, "endCursor": ""},
			"nodes": [
				{"owner": {"login": "forker1"}},
				{"owner": {"login": "forker2"}},
				{"owner": null}
			]
		}}}}`)
	})

	c := newTestClient(t, handler)
	logins, err := c.CollectRelation(context.Background(), model.RelationForker, testRepo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logins) != 2 {
		t.Fatalf("expected 2 fork owners, got %d", len(logins))
	}
	for _, login := range []string{"forker1", "forker2"} {
		if _, ok := logins[login]; !ok {
			t.Errorf("missing fork owner %q", login)
		}
	}
}

func TestCollectRelationAbsentRepository(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"repository": null}, "errors": [{"message": "Could not resolve", "type": "NOT_FOUND"}]}`)
	})

	c := newTestClient(t, handler)
	logins, err := c.CollectRelation(context.Background(), model.RelationStargazer, testRepo)
	if err != nil {
		t.Fatalf("absent repository must not surface as error, got: %v", err)
	}
	if len(logins) != 0 {
		t.Errorf("expected empty set, got %d logins", len(logins))
	}
}

func TestCollectRelationCancelledContext(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, relationPage("stargazers", []string{"alice"}, true, "cursor1"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, handler)
	logins, err := c.CollectRelation(ctx, model.RelationStargazer, testRepo)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// Partial set comes back alongside the error.
	if logins == nil {
		t.Error("expected a non-nil partial set")
	}
}

func TestCollectRelationDeduplicatesWithinRelation(t *testing.T) {
	var requests int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			fmt.Fprint(w, relationPage("stargazers", []string{"alice", "bob"}, true, "cursor1"))
			return
		}
		fmt.Fprint(w, relationPage("stargazers", []string{"bob", "alice"}, false, ""))
	})

	c := newTestClient(t, handler)
	logins, err := c.CollectRelation(context.Background(), model.RelationStargazer, testRepo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logins) != 2 {
		t.Errorf("expected 2 unique logins, got %d", len(logins))
	}
}

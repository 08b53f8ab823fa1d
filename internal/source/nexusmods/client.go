// Package nexusmods fetches mod summaries from the Nexus Mods GraphQL API.
package nexusmods

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hasura/go-graphql-client"
)

const (
	graphqlEndpoint = "https://api.nexusmods.com/v2/graphql"

	// StardewValleyGameID is the numeric Nexus Mods game ID for Stardew Valley.
	StardewValleyGameID = 1303
)

// Client wraps the NexusMods GraphQL API
type Client struct {
	gql    *graphql.Client
	gameID int
}

// NewClient creates a new NexusMods API client for the given game.
func NewClient(httpClient *http.Client, apiKey string, gameID int) *Client {
	return newClient(httpClient, apiKey, gameID, graphqlEndpoint)
}

func newClient(httpClient *http.Client, apiKey string, gameID int, endpoint string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	authedClient := &http.Client{
		Transport: &apiKeyTransport{base: httpClient.Transport, apiKey: apiKey},
		Timeout:   httpClient.Timeout,
	}

	return &Client{
		gql:    graphql.NewClient(endpoint, authedClient),
		gameID: gameID,
	}
}

type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.apiKey != "" {
		req = req.Clone(req.Context())
		req.Header.Set("apikey", t.apiKey)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// GetMod fetches a mod by its Nexus ID
func (c *Client) GetMod(ctx context.Context, modID int) (*ModData, error) {
	var query struct {
		Mod ModData `graphql:"mod(gameId: $gameId, modId: $modId)"`
	}

	variables := map[string]interface{}{
		"gameId": graphql.Int(c.gameID),
		"modId":  graphql.Int(modID),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return nil, fmt.Errorf("querying mod %d: %w", modID, err)
	}

	return &query.Mod, nil
}

// Describe returns the mod's short summary.
func (c *Client) Describe(ctx context.Context, modID int) (string, error) {
	mod, err := c.GetMod(ctx, modID)
	if err != nil {
		return "", err
	}
	return mod.Summary, nil
}

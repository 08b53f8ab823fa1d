package nexusmods

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func TestClient_GetMod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "testapikey", r.Header.Get("apikey"))

		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, strings.Contains(req.Query, "mod(gameId: $gameId, modId: $modId)"), req.Query)
		assert.EqualValues(t, 1303, req.Variables["gameId"])
		assert.EqualValues(t, 1915, req.Variables["modId"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"mod":{
			"modId": 1915,
			"name": "Content Patcher",
			"summary": "Loads content packs to change the game's data.",
			"version": "2.5.0",
			"author": "Pathoschild",
			"pictureUrl": "https://example.com/cp.png",
			"endorsements": 10000,
			"downloads": 500000
		}}}`))
	}))
	defer server.Close()

	client := newClient(nil, "testapikey", StardewValleyGameID, server.URL)

	mod, err := client.GetMod(context.Background(), 1915)
	require.NoError(t, err)
	assert.Equal(t, 1915, mod.ModID)
	assert.Equal(t, "Content Patcher", mod.Name)
	assert.Equal(t, "Pathoschild", mod.Author)
	assert.Equal(t, 10000, mod.Endorsements)
}

func TestClient_Describe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"mod":{"modId":1,"name":"A","summary":"short text","version":"1","author":"x","pictureUrl":"","endorsements":0,"downloads":0}}}`))
	}))
	defer server.Close()

	client := newClient(nil, "", StardewValleyGameID, server.URL)

	summary, err := client.Describe(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "short text", summary)
}

func TestClient_GraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"message":"mod not found"}]}`))
	}))
	defer server.Close()

	client := newClient(nil, "k", StardewValleyGameID, server.URL)

	_, err := client.GetMod(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mod 42")
}

func TestAPIKeyTransport_NoKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("apikey"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := &http.Client{Transport: &apiKeyTransport{}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

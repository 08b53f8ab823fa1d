// Package smapi queries the SMAPI web API for mod metadata.
package smapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"

	"svmm/internal/domain"
)

// DefaultURL is the public mods endpoint.
const DefaultURL = "https://smapi.io/api/v3.0/mods"

// Client looks up mod IDs against the SMAPI registry.
type Client struct {
	httpClient *http.Client
	url        string
	userAgent  string
	platform   string
}

// NewClient creates a registry client. An empty url uses DefaultURL.
func NewClient(httpClient *http.Client, url, userAgent string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		httpClient: httpClient,
		url:        url,
		userAgent:  userAgent,
		platform:   Platform(runtime.GOOS),
	}
}

// Platform maps a GOOS value to the registry's platform name, or "" when
// the registry has none for it.
func Platform(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Mac"
	case "windows":
		return "Windows"
	case "android":
		return "Android"
	default:
		return ""
	}
}

// Lookup fetches metadata for ids. Only mods the registry knows are returned.
func (c *Client) Lookup(ctx context.Context, ids []string) ([]domain.RegistryMod, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	entries, err := c.Search(ctx, ids)
	if err != nil {
		return nil, err
	}

	mods := make([]domain.RegistryMod, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Metadata.Name == "" {
			continue
		}
		mods = append(mods, domain.RegistryMod{
			ID:      e.ID,
			Name:    e.Metadata.Name,
			URL:     e.Metadata.Main.URL,
			NexusID: e.Metadata.NexusID,
		})
	}
	return mods, nil
}

// Search sends one batched request for ids and returns the raw entries.
func (c *Client) Search(ctx context.Context, ids []string) ([]ModEntry, error) {
	body := searchRequest{
		Mods:                    make([]modRef, len(ids)),
		Platform:                c.platform,
		IncludeExtendedMetadata: true,
	}
	for i, id := range ids {
		body.Mods[i] = modRef{ID: id}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("registry returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var entries []ModEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding registry response: %w", err)
	}
	return entries, nil
}

package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.unsplash.com"

// Client searches stock photos on an Unsplash compatible API.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	pick       func(n int) int
}

// NewClient builds an API client.
func NewClient(baseURL, accessKey string) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(base, "/"),
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		pick: rand.Intn,
	}
}

// Search returns one of the top three most relevant results at random, for
// variety across repeated item lookups.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=5&orientation=squarish", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build photo request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("photo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("photo request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode photo response: %w", err)
	}
	if len(raw.Results) == 0 {
		return "", errors.New("photo search returned no results")
	}

	top := len(raw.Results)
	if top > 3 {
		top = 3
	}
	chosen := raw.Results[c.pick(top)]
	if chosen.URLs.Small != "" {
		return chosen.URLs.Small, nil
	}
	return chosen.URLs.Regular, nil
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

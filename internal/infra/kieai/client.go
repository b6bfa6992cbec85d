package kieai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/weather-stylist/internal/domain/genjob"
)

const defaultBaseURL = "https://api.kie.ai"

// Client drives the asynchronous image-generation API: create a task, then
// query its record until a terminal successFlag shows up.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey string) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateTask submits a generation prompt and returns the opaque task id.
func (c *Client) CreateTask(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"prompt": prompt,
		"size":   "3:4",
	})
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/gpt4o-image/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read generation response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("generation request error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var raw createResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if raw.Code != 200 && raw.Code != 0 {
		return "", fmt.Errorf("generation api error: code=%d msg=%s", raw.Code, raw.Msg)
	}
	if strings.TrimSpace(raw.Data.TaskID) == "" {
		return "", fmt.Errorf("generation api returned no task id: %s", string(body))
	}
	return raw.Data.TaskID, nil
}

// QueryTask fetches one status record for a task id.
func (c *Client) QueryTask(ctx context.Context, taskID string) (genjob.Snapshot, error) {
	endpoint := fmt.Sprintf("%s/api/v1/gpt4o-image/record-info?taskId=%s", c.baseURL, url.QueryEscape(taskID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return genjob.Snapshot{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return genjob.Snapshot{}, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return genjob.Snapshot{}, fmt.Errorf("read status response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return genjob.Snapshot{}, fmt.Errorf("status request error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var raw recordResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return genjob.Snapshot{}, fmt.Errorf("decode status response: %w", err)
	}

	snap := genjob.Snapshot{
		Status:      genjob.StatusForFlag(raw.Data.SuccessFlag),
		SuccessFlag: raw.Data.SuccessFlag,
		Error:       raw.Data.ErrorMessage,
		Raw:         json.RawMessage(body),
	}
	if len(raw.Data.Response.ResultURLs) > 0 {
		snap.ImageURL = raw.Data.Response.ResultURLs[0]
	}
	if snap.Status == genjob.StatusSuccess && snap.ImageURL == "" {
		return genjob.Snapshot{}, fmt.Errorf("status reported success without image url: %s", string(body))
	}
	if snap.Error == "" && (snap.Status == genjob.StatusCreateFailed || snap.Status == genjob.StatusGenerationFailed) {
		snap.Error = "image generation failed"
	}
	return snap, nil
}

type createResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID string `json:"taskId"`
	} `json:"data"`
}

type recordResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID       string `json:"taskId"`
		SuccessFlag  int    `json:"successFlag"`
		ErrorMessage string `json:"errorMessage"`
		Response     struct {
			ResultURLs []string `json:"resultUrls"`
		} `json:"response"`
	} `json:"data"`
}

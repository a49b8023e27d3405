// Package kie implements the transport contract against the KIE aggregator
// API (createTask / queryTask / cancel).
package kie

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studio/internal/domain"
	"studio/internal/infra"
	"studio/internal/transport"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("kie: api key is required")

const defaultBaseURL = "https://api.kie.ai"

// Options configures the KIE client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the KIE jobs API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient validates the options and builds a client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout == 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    base,
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

type createTaskRequest struct {
	Model string         `json:"model"`
	Input map[string]any `json:"input"`
}

type createTaskResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID     string `json:"taskId"`
		State      string `json:"state"`
		ResultJSON string `json:"resultJson"`
	} `json:"data"`
}

type queryTaskResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID     string `json:"taskId"`
		State      string `json:"state"`
		Progress   int    `json:"progress"`
		FailMsg    string `json:"failMsg"`
		ResultJSON string `json:"resultJson"`
	} `json:"data"`
}

type taskResult struct {
	ResultURLs []string `json:"resultUrls"`
}

// Submit creates a remote task for the request. When the aggregator answers
// with an already-final state and a result, the returned SubmitResult
// carries the result reference and no polling is needed.
func (c *Client) Submit(ctx context.Context, req domain.GenerationRequest) (transport.SubmitResult, error) {
	payload := createTaskRequest{
		Model: apiModel(req),
		Input: buildInput(req),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return transport.SubmitResult{}, fmt.Errorf("kie: marshal request: %w", err)
	}

	var resp createTaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/jobs/createTask", bytes.NewReader(body), &resp); err != nil {
		return transport.SubmitResult{}, err
	}
	if resp.Code != 0 && resp.Code != 200 {
		return transport.SubmitResult{}, fmt.Errorf("kie: createTask code %d: %s", resp.Code, resp.Msg)
	}

	result := transport.SubmitResult{RemoteID: resp.Data.TaskID, State: resp.Data.State}
	if ref := firstResultURL(resp.Data.ResultJSON); ref != "" {
		result.ResultRef = ref
	}
	if result.RemoteID == "" && result.ResultRef == "" {
		return transport.SubmitResult{}, fmt.Errorf("kie: createTask returned neither task id nor result")
	}
	return result, nil
}

// PollStatus fetches one raw status snapshot for a remote task.
func (c *Client) PollStatus(ctx context.Context, remoteID string) (transport.JobStatus, error) {
	path := "/api/v1/jobs/queryTask?taskId=" + url.QueryEscape(remoteID)
	var resp queryTaskResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return transport.JobStatus{}, err
	}
	if resp.Code != 0 && resp.Code != 200 {
		return transport.JobStatus{}, fmt.Errorf("kie: queryTask code %d: %s", resp.Code, resp.Msg)
	}
	return transport.JobStatus{
		State:     resp.Data.State,
		Progress:  resp.Data.Progress,
		ResultRef: firstResultURL(resp.Data.ResultJSON),
		Error:     resp.Data.FailMsg,
	}, nil
}

// Cancel asks the aggregator to stop a task. Callers treat failures as
// non-fatal; local cancellation stays authoritative.
func (c *Client) Cancel(ctx context.Context, remoteID string) error {
	body, _ := json.Marshal(map[string]string{"taskId": remoteID})
	var resp createTaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/jobs/cancelTask", bytes.NewReader(body), &resp); err != nil {
		return err
	}
	if resp.Code != 0 && resp.Code != 200 {
		return fmt.Errorf("kie: cancelTask code %d: %s", resp.Code, resp.Msg)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("kie: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("kie: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("kie: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("kie: request failed")
		}
		return fmt.Errorf("kie: %s %s: status %d", method, path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("kie: decode response: %w", err)
	}
	return nil
}

// apiModel maps the request onto the aggregator's model identifier: the
// resolved variant id when one is chosen, the model id otherwise.
func apiModel(req domain.GenerationRequest) string {
	if req.ModelVariant != "" {
		return req.ModelVariant
	}
	return req.ModelID
}

func buildInput(req domain.GenerationRequest) map[string]any {
	input := map[string]any{
		"prompt": req.Prompt,
	}
	if req.NegativePrompt != "" {
		input["negative_prompt"] = req.NegativePrompt
	}
	if req.Mode != "" {
		input["mode"] = string(req.Mode)
	}
	if req.DurationSec > 0 {
		input["duration"] = req.DurationSec
	}
	if req.Quality != "" {
		input["quality"] = req.Quality
	}
	if req.Resolution != "" {
		input["resolution"] = req.Resolution
	}
	if req.AspectRatio != "" {
		input["aspect_ratio"] = req.AspectRatio
	}
	if req.Audio {
		input["audio"] = true
	}
	if req.SoundPreset != "" {
		input["sound_preset"] = req.SoundPreset
	}
	if req.Style != "" {
		input["style"] = req.Style
	}
	if req.StartFrame != "" {
		input["start_image"] = req.StartFrame
	}
	if req.EndFrame != "" {
		input["end_image"] = req.EndFrame
	}
	if req.ReferenceVideo != "" {
		input["video_url"] = req.ReferenceVideo
	}
	if req.MotionVideo != "" {
		input["motion_video"] = req.MotionVideo
	}
	if req.CharacterImage != "" {
		input["character_image"] = req.CharacterImage
	}
	if n := req.Variants(); n > 1 {
		input["n"] = n
	}
	return input
}

func firstResultURL(resultJSON string) string {
	if resultJSON == "" {
		return ""
	}
	var parsed taskResult
	if err := json.Unmarshal([]byte(resultJSON), &parsed); err != nil {
		return ""
	}
	if len(parsed.ResultURLs) == 0 {
		return ""
	}
	return parsed.ResultURLs[0]
}

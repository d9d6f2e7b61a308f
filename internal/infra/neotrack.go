package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NeotrackPosition is the last known position of a tracker, as reported by
// the Neotrack platform.
type NeotrackPosition struct {
	IMEI      string  `json:"imei"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
	Timestamp string  `json:"timestamp"`
}

// neotrackStatusResponse is returned by the platform on activation calls.
type neotrackStatusResponse struct {
	IMEI   string `json:"imei"`
	Status string `json:"status"` // "active" | "inactive" | "error"
}

// NeotrackClient talks to the external Neotrack GPS platform over HTTP.
// Platform failures are isolated from the core backend by the circuit
// breaker wrapped around every call site.
type NeotrackClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewNeotrackClient(baseURL, apiKey string) *NeotrackClient {
	return &NeotrackClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Activate registers the device on the platform and starts tracking.
func (c *NeotrackClient) Activate(ctx context.Context, imei string) error {
	_, err := c.post(ctx, "/devices/"+imei+"/activate", nil)
	return err
}

// Deactivate stops platform-side tracking of the device.
func (c *NeotrackClient) Deactivate(ctx context.Context, imei string) error {
	_, err := c.post(ctx, "/devices/"+imei+"/deactivate", nil)
	return err
}

// Position fetches the last reported position of a device.
func (c *NeotrackClient) Position(ctx context.Context, imei string) (*NeotrackPosition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/devices/"+imei+"/position", nil)
	if err != nil {
		return nil, fmt.Errorf("neotrack: create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("neotrack: platform unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("neotrack: device %s unknown to platform", imei)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("neotrack: platform returned %d", resp.StatusCode)
	}

	var pos NeotrackPosition
	if err := json.NewDecoder(resp.Body).Decode(&pos); err != nil {
		return nil, fmt.Errorf("neotrack: decode response: %w", err)
	}
	return &pos, nil
}

func (c *NeotrackClient) post(ctx context.Context, path string, payload interface{}) (*neotrackStatusResponse, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, fmt.Errorf("neotrack: marshal payload: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, fmt.Errorf("neotrack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("neotrack: platform unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("neotrack: platform returned %d", resp.StatusCode)
	}

	var result neotrackStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("neotrack: decode response: %w", err)
	}
	return &result, nil
}

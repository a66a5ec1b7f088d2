package shelly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client polls device status from the Shelly cloud REST API.
type Client struct {
	server  string
	authKey string
	httpc   *http.Client
}

// NewClient returns a client for the given cloud server and access
// key. The server is a bare hostname; a value carrying a scheme is
// used verbatim.
func NewClient(server, authKey string) *Client {
	return &Client{
		server:  server,
		authKey: authKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

type statusResponse struct {
	IsOK   bool            `json:"isok"`
	Errors json.RawMessage `json:"errors"`
	Data   *statusData     `json:"data"`
}

type statusData struct {
	DeviceStatus map[string]any `json:"device_status"`
}

// DeviceStatus fetches the current raw status payload for one device.
//
// Parameters:
//   - ctx: controls cancellation of the request
//   - id: cloud identifier of the device
//
// Returns the device_status object on success. All failure modes are
// reported as errors and none of them are fatal to the poll loop.
func (c *Client) DeviceStatus(ctx context.Context, id string) (map[string]any, error) {
	form := url.Values{}
	form.Set("id", id)
	form.Set("auth_key", c.authKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.statusURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("shelly: building status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shelly: status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s", ErrBadResponse, resp.Status)
	}

	var decoded statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %v", ErrBadResponse, err)
	}
	if !decoded.IsOK {
		if len(decoded.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrAPIError, decoded.Errors)
		}
		return nil, ErrAPIError
	}
	if decoded.Data == nil || decoded.Data.DeviceStatus == nil {
		return nil, fmt.Errorf("%w: missing device_status", ErrBadResponse)
	}
	return decoded.Data.DeviceStatus, nil
}

func (c *Client) statusURL() string {
	base := c.server
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return base + "/device/status"
}

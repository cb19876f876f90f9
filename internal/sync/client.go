// Package sync keeps the local log reconciled with the remote slot.
//
// The protocol is a periodic pull/merge/push cycle: fetch the remote
// snapshot, union it with the local one by entry id, push the result
// back. There is no versioning and no conditional write; the merge
// step is the only conflict resolution, so every failure mode must
// collapse to something the next cycle can retry from scratch.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/liftbook/liftbook/internal/logging"
	"github.com/liftbook/liftbook/internal/models"
)

// RemoteClient is the transport used by the orchestrator to reach the
// remote slot. Both operations are infallible at the signature level:
// fetch collapses every failure to "absent" and push reports a bare
// success flag. Retry policy lives in the orchestrator's interval, not
// here.
type RemoteClient interface {
	// Fetch returns the remote snapshot and true, or nil and false
	// when the remote has never been written or is unreachable.
	Fetch(ctx context.Context) (*models.LogStore, bool)

	// Push unconditionally overwrites the remote slot. Returns false
	// on any transport or remote-side failure.
	Push(ctx context.Context, snapshot *models.LogStore) bool
}

// HTTPClientConfig configures the HTTP remote client.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPClient implements RemoteClient against the GET/POST /sync
// endpoint contract.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTP remote client.
func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
	}
}

// Fetch implements RemoteClient. Any transport failure or non-success
// status is "absent". A body that decodes but is malformed yields the
// default empty snapshot rather than an error: the subsequent merge
// then simply re-seeds the remote from local state.
func (c *HTTPClient) Fetch(ctx context.Context) (*models.LogStore, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/sync", nil)
	if err != nil {
		logging.Warn("remote fetch request build failed", logging.Fields{"error": err.Error()})
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Warn("remote fetch failed", logging.Fields{"error": err.Error()})
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Warn("remote fetch non-success status", logging.Fields{"status": resp.StatusCode})
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.Warn("remote fetch body read failed", logging.Fields{"error": err.Error()})
		return nil, false
	}

	snapshot, err := models.UnmarshalLogStore(body)
	if err != nil {
		logging.Warn("remote snapshot malformed, substituting empty", logging.Fields{"error": err.Error()})
		return models.NewLogStore(), true
	}
	return snapshot, true
}

// Push implements RemoteClient.
func (c *HTTPClient) Push(ctx context.Context, snapshot *models.LogStore) bool {
	payload, err := snapshot.Marshal()
	if err != nil {
		logging.Error("snapshot encode failed before push", err, nil)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sync", bytes.NewReader(payload))
	if err != nil {
		logging.Warn("remote push request build failed", logging.Fields{"error": err.Error()})
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Warn("remote push failed", logging.Fields{"error": err.Error()})
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var remoteErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&remoteErr)
		logging.Warn("remote push rejected", logging.Fields{
			"status": resp.StatusCode,
			"error":  remoteErr.Error,
		})
		return false
	}
	return true
}

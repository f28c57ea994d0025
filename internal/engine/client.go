package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/tartampluch/go-journal/internal/config"
)

// SyncConfig contains all parameters required to talk to the backend.
type SyncConfig struct {
	BackendURL string // Base URL of the journaling backend
	User       string // HTTP Basic Auth Username
	Pass       string // HTTP Basic Auth Password
}

// EntryAPI defines the consumed backend contract.
// This interface allows for mocking in tests and decoupling from the
// network layer.
type EntryAPI interface {
	// List retrieves the full entry collection.
	List(ctx context.Context, cfg SyncConfig) ([]Record, error)

	// UpdateEmoji sends a partial update scoped to one entry, carrying
	// only the emoji field. The response body is unused.
	UpdateEmoji(ctx context.Context, cfg SyncConfig, id, emoji string) error
}

// HTTPClient implements EntryAPI using the standard net/http library.
type HTTPClient struct {
	Client *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with configured timeouts.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// List performs GET {base}/api/entries and decodes the JSON array.
// It enforces a maximum response size limit.
func (c *HTTPClient) List(ctx context.Context, cfg SyncConfig) ([]Record, error) {
	endpoint, log, err := c.endpoint(cfg, config.APIPathEntries)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderAccept, config.MimeApplicationJSON)
	c.prepare(req, cfg, log)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Server returned error status",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	var records []Record
	limited := io.LimitReader(resp.Body, config.MaxAPIResponseSize)
	if err := json.NewDecoder(limited).Decode(&records); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDecodeEntries, err)
	}

	log.Debug("Entries downloaded", slog.Int(config.LogKeyTotal, len(records)))
	return records, nil
}

// UpdateEmoji performs PATCH {base}/api/entries/{id} with {"emoji": glyph}.
func (c *HTTPClient) UpdateEmoji(ctx context.Context, cfg SyncConfig, id, emoji string) error {
	endpoint, log, err := c.endpoint(cfg, config.APIPathEntries+config.RouteRoot+url.PathEscape(id))
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{config.JSONFieldEmoji: emoji})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncodeEmoji, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(config.HeaderContentType, config.MimeApplicationJSON)
	c.prepare(req, cfg, log)

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("network error during update: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Response body is unused; drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, config.MaxAPIResponseSize))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn("Server rejected emoji update",
			slog.String(config.LogKeyEntryID, id),
			slog.Int(config.LogKeyStatus, resp.StatusCode),
		)
		return fmt.Errorf("%s: %d %s", config.ErrEmojiRejected, resp.StatusCode, resp.Status)
	}

	return nil
}

// endpoint validates the configured base URL, joins the API path, and
// returns a logger carrying a query-stripped safe URL (tokens in query
// parameters must never reach the logs).
func (c *HTTPClient) endpoint(cfg SyncConfig, path string) (string, *slog.Logger, error) {
	if cfg.BackendURL == "" {
		return "", nil, fmt.Errorf(config.ErrBackendURLEmpty)
	}

	u, err := url.Parse(strings.TrimSuffix(cfg.BackendURL, config.RouteRoot))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return "", nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	u.Path += path
	safeURL := u.Scheme + "://" + u.Host + u.Path

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompClient),
		slog.String(config.LogKeyURL, safeURL),
	)

	return u.String(), log, nil
}

// prepare sets the shared request headers: identity, correlation id, auth.
func (c *HTTPClient) prepare(req *http.Request, cfg SyncConfig, log *slog.Logger) {
	requestID := uuid.NewString()
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderRequestID, requestID)

	if cfg.User != "" || cfg.Pass != "" {
		req.SetBasicAuth(cfg.User, cfg.Pass)
	}

	log.Debug("Issuing backend request", slog.String(config.LogKeyRequestID, requestID))
}

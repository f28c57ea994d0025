package engine_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-journal/internal/config"
	"github.com/tartampluch/go-journal/internal/engine"
)

// TestHTTPClient_List_Success verifies a complete successful load flow.
// It checks correct headers (User-Agent, Basic Auth, correlation id) and
// payload decoding.
func TestHTTPClient_List_Success(t *testing.T) {
	expectedUser := "journaluser"
	expectedPass := "securepass"
	payload := `[
		{"id":"1","name":"Flying","type":"dream","timestamp":"2025-06-14T23:00:00Z"},
		{"id":"2","name":"Notes","type":"note","createdAt":"2025-06-13T09:00:00Z"}
	]`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, config.APIPathEntries, r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, expectedUser, user)
		assert.Equal(t, expectedPass, pass)

		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		assert.NotEmpty(t, r.Header.Get(config.HeaderRequestID), "Correlation id must be set")

		w.Header().Set(config.HeaderContentType, config.MimeApplicationJSON)
		_, _ = w.Write([]byte(payload))
	}))
	defer ts.Close()

	client := engine.NewHTTPClient()
	records, err := client.List(context.Background(), engine.SyncConfig{
		BackendURL: ts.URL,
		User:       expectedUser,
		Pass:       expectedPass,
	})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Flying", records[0].Name)
	assert.Equal(t, "note", records[1].Type)
}

// TestHTTPClient_List_Errors verifies proper error handling for non-200 statuses.
func TestHTTPClient_List_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"ServerError", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			client := engine.NewHTTPClient()
			records, err := client.List(context.Background(), engine.SyncConfig{BackendURL: ts.URL})

			assert.Error(t, err)
			assert.Nil(t, records)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestHTTPClient_List_MalformedPayload ensures a decode failure is
// reported with the centralized message.
func TestHTTPClient_List_MalformedPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer ts.Close()

	client := engine.NewHTTPClient()
	_, err := client.List(context.Background(), engine.SyncConfig{BackendURL: ts.URL})

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDecodeEntries)
}

// TestHTTPClient_List_Timeout ensures the client respects context deadlines.
func TestHTTPClient_List_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	client := engine.NewHTTPClient()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.List(ctx, engine.SyncConfig{BackendURL: ts.URL})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestHTTPClient_URLValidation ensures malformed URLs and non-web schemes
// are caught before any request leaves the process.
func TestHTTPClient_URLValidation(t *testing.T) {
	client := engine.NewHTTPClient()

	_, err := client.List(context.Background(), engine.SyncConfig{BackendURL: string([]byte{0x7f})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)

	_, err = client.List(context.Background(), engine.SyncConfig{BackendURL: "ftp://example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)

	_, err = client.List(context.Background(), engine.SyncConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrBackendURLEmpty)
}

// TestHTTPClient_UpdateEmoji_Success verifies the partial update request:
// PATCH to the scoped entry route with only the emoji field in the body.
func TestHTTPClient_UpdateEmoji_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, config.APIPathEntries+"/5", r.URL.Path)
		assert.Equal(t, config.MimeApplicationJSON, r.Header.Get(config.HeaderContentType))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var patch map[string]string
		require.NoError(t, json.Unmarshal(body, &patch))
		assert.Equal(t, map[string]string{config.JSONFieldEmoji: "🌙"}, patch,
			"Body must carry exactly the emoji field")

		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := engine.NewHTTPClient()
	err := client.UpdateEmoji(context.Background(), engine.SyncConfig{BackendURL: ts.URL}, "5", "🌙")

	assert.NoError(t, err)
}

// TestHTTPClient_UpdateEmoji_Rejected verifies error surfacing for a
// backend refusal.
func TestHTTPClient_UpdateEmoji_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	client := engine.NewHTTPClient()
	err := client.UpdateEmoji(context.Background(), engine.SyncConfig{BackendURL: ts.URL}, "5", "🌙")

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrEmojiRejected)
	assert.Contains(t, err.Error(), "403")
}

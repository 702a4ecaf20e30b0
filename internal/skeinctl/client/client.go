// Package client implements the HTTP client for the skeind REST+SSE API.
package client

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/entity"
	"github.com/skeinlab/skein/pkg/utils/json"
)

// Conversation is the wire form of a conversation record.
type Conversation struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	AgentID    string `json:"agent_id,omitempty"`
	EventCount int64  `json:"event_count"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// Thread is the reconstructed display thread for one conversation.
type Thread struct {
	ConversationID string                 `json:"conversation_id"`
	EventCount     int64                  `json:"event_count"`
	Groups         []*entity.DisplayGroup `json:"groups"`
	PendingToolIDs []string               `json:"pending_tool_ids,omitempty"`
	Hints          map[string]string      `json:"hints,omitempty"`
}

type errResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SkeindClient is the HTTP client for the skeind API.
type SkeindClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewSkeindClient creates a new client. A nil httpClient gets sane defaults.
func NewSkeindClient(baseURL, token string, httpClient *http.Client) *SkeindClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &SkeindClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: httpClient,
	}
}

func (c *SkeindClient) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	return req, nil
}

func (c *SkeindClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errResponse
		if jsonErr := json.Unmarshal(respBody, &er); jsonErr == nil && er.Message != "" {
			return fmt.Errorf("server returned %d (code %d): %s", resp.StatusCode, er.Code, er.Message)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CreateConversation registers a new conversation record.
func (c *SkeindClient) CreateConversation(ctx context.Context, title, agentID string) (*Conversation, error) {
	body := map[string]string{}
	if title != "" {
		body["title"] = title
	}
	if agentID != "" {
		body["agent_id"] = agentID
	}

	var conv Conversation
	if err := c.do(ctx, http.MethodPost, "/v1/conversations", body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns all conversations, most recently updated first.
func (c *SkeindClient) ListConversations(ctx context.Context) ([]Conversation, error) {
	var resp struct {
		Data []Conversation `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/conversations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetConversation fetches one conversation record.
func (c *SkeindClient) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	if err := c.do(ctx, http.MethodGet, "/v1/conversations/"+id, nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// DeleteConversation removes a conversation and its event feed.
func (c *SkeindClient) DeleteConversation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/conversations/"+id, nil, nil)
}

// AppendEvents appends raw events to a conversation's feed.
func (c *SkeindClient) AppendEvents(ctx context.Context, id string, events []*entity.Event) error {
	body := map[string]interface{}{"events": events}
	return c.do(ctx, http.MethodPost, "/v1/conversations/"+id+"/events", body, nil)
}

// GetThread fetches the reconstructed display thread for a conversation.
func (c *SkeindClient) GetThread(ctx context.Context, id string) (*Thread, error) {
	var thread Thread
	if err := c.do(ctx, http.MethodGet, "/v1/conversations/"+id+"/thread", nil, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// SetHint stores a short-lived activity hint for a pending tool call.
func (c *SkeindClient) SetHint(ctx context.Context, toolID, text string) error {
	body := map[string]string{"text": text}
	return c.do(ctx, http.MethodPut, "/v1/hints/"+toolID, body, nil)
}

// InvalidateCallback is called for each invalidation signal with the
// conversation's new event count.
type InvalidateCallback func(eventCount int64)

// Watch subscribes to the conversation's SSE invalidation stream and calls
// cb on every "invalidate" signal. It blocks until ctx is canceled or the
// stream ends.
func (c *SkeindClient) Watch(ctx context.Context, id string, cb InvalidateCallback) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/conversations/"+id+"/watch", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	// The stream stays open indefinitely, so the default client timeout
	// must not apply here.
	streamClient := &http.Client{Transport: c.HTTPClient.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	scanner := bufio.NewScanner(resp.Body)
	// Increase buffer for large frames
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var event, lastID string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "id:"):
			lastID = strings.TrimSpace(strings.TrimPrefix(line, "id:"))
		case line == "":
			// Frame boundary. Only invalidations matter; heartbeats and
			// the initial ready frame are dropped here.
			if event == "invalidate" {
				count, _ := strconv.ParseInt(lastID, 10, 64)
				cb(count)
			}
			event, lastID = "", ""
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("read stream: %w", err)
	}

	return nil
}

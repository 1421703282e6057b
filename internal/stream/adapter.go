// Package stream consumes the backend's provider-agnostic chat streaming
// endpoint and reduces its server-sent events into incremental full-state
// message snapshots.
package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"capitolview/internal/model"
	"capitolview/pkg/logger"
)

const dataPrefix = "data: "

// ErrMissingCredential short-circuits before any network call when no API
// key is configured; the upstream would only answer with a confusing 401.
var ErrMissingCredential = errors.New("chat credential is not configured")

// providerHints rewrites known provider-limitation errors into actionable
// messages; anything unmatched is surfaced close to verbatim.
var providerHints = []struct {
	substr   string
	friendly string
}{
	{"does not support tool", "This provider's plan does not support tool calling. Switch providers in settings to keep using page-aware answers."},
	{"tool use is not available", "Tool use is not available on this provider. Switch providers in settings to keep using page-aware answers."},
	{"context_length_exceeded", "The conversation is too long for this provider. Start a new chat to continue."},
	{"rate limit", "The provider is rate limiting requests right now. Wait a moment and resubmit."},
}

// Request is the streaming endpoint's input: provider selection, the ordered
// message history, and the page the user is looking at.
type Request struct {
	Provider    string             `json:"provider"`
	Messages    []HistoryMessage   `json:"messages"`
	PageContext *model.PageContext `json:"page_context,omitempty"`
}

type HistoryMessage struct {
	Role    model.Role `json:"role"`
	Content string     `json:"content"`
}

// Snapshot is the full reconstructed message state after one applied event.
// Consumers replace their view rather than patching it.
type Snapshot struct {
	Parts []model.ContentPart
	Text  string
	Done  bool
}

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Stream POSTs the request and feeds every applied event's snapshot to
// yield, strictly in arrival order. It returns once the stream signals done,
// the context is canceled, or an error terminates the stream. The response
// body is released on every exit path.
func (c *Client) Stream(ctx context.Context, req Request, yield func(Snapshot)) error {
	if c.apiKey == "" {
		return ErrMissingCredential
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("chat endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if resp.Body == nil {
		return errors.New("chat endpoint returned no body")
	}

	return consume(resp.Body, yield)
}

// consume runs the read loop: decode bytes incrementally, split on
// newlines, buffer trailing partial lines across reads, and fold complete
// "data:" lines into the reducer. Chunk boundaries never change the parsed
// output.
func consume(body io.Reader, yield func(Snapshot)) error {
	red := newReducer()
	var pending []byte
	buf := make([]byte, 4096)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				line := pending[:idx]
				pending = pending[idx+1:]

				done, err := applyLine(red, line, yield)
				if err != nil {
					return err
				}
				if done {
					return nil
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				// Connection close without a done event: whatever state
				// accumulated stands, but the stream did not finish cleanly.
				return errors.New("chat stream ended before completion")
			}
			return fmt.Errorf("read chat stream: %w", readErr)
		}
	}
}

// applyLine processes one complete line. Lines without the data prefix and
// malformed JSON payloads are skipped silently.
func applyLine(red *reducer, line []byte, yield func(Snapshot)) (done bool, err error) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return false, nil
	}

	ev, ok := DecodeEvent(line[len(dataPrefix):])
	if !ok {
		logger.Debugf("skipping malformed stream line: %q", line)
		return false, nil
	}

	switch ev.Type {
	case EventError:
		return false, errors.New(friendlyError(ev.Err))
	case EventDone:
		red.finish()
		yield(Snapshot{Parts: red.snapshot(), Text: red.textContent(), Done: true})
		return true, nil
	default:
		if red.apply(ev) {
			yield(Snapshot{Parts: red.snapshot(), Text: red.textContent()})
		}
		return false, nil
	}
}

func friendlyError(raw string) string {
	lower := strings.ToLower(raw)
	for _, hint := range providerHints {
		if strings.Contains(lower, hint.substr) {
			return hint.friendly
		}
	}
	return raw
}

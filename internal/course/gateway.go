package course

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ayush/gyft/backend/internal/models"
)

const maxGatewayBody = 4 << 20

// Generated is the course content produced by the gateway. Raw is the inner
// course JSON exactly as received, after fence stripping.
type Generated struct {
	Title       string
	Description string
	Language    string
	Chapters    []models.Chapter
	Raw         []byte
}

// checkResp returns an error if the status is not 2xx, including a bounded
// slice of the upstream body for debugging.
func checkResp(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// HTTPGateway calls the remote course generation API over HTTP.
type HTTPGateway struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

func NewHTTPGateway(url string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{url: url, timeout: timeout, httpClient: &http.Client{}}
}

// GenerateCourse POSTs {"prompt": topic} and decodes the course carried in
// the "response" field. The whole exchange is bounded by the gateway timeout.
func (g *HTTPGateway) GenerateCourse(ctx context.Context, topic string) (*Generated, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	body, _ := json.Marshal(map[string]string{"prompt": topic})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp); err != nil {
		return nil, err
	}

	var envelope struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxGatewayBody)).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("gateway: decode: %w", err)
	}
	if envelope.Response == "" {
		if envelope.Error != "" {
			return nil, fmt.Errorf("gateway: %s", envelope.Error)
		}
		return nil, fmt.Errorf("gateway: empty response")
	}
	return parseCourse(envelope.Response)
}

// parseCourse decodes the model output: a JSON object with t/d/l/c keys,
// optionally wrapped in a markdown code fence.
func parseCourse(text string) (*Generated, error) {
	raw := []byte(stripFence(text))
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("gateway: course payload is not a JSON object")
	}
	var payload struct {
		T string           `json:"t"`
		D string           `json:"d"`
		L string           `json:"l"`
		C []models.Chapter `json:"c"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("gateway: invalid course payload: %w", err)
	}
	return &Generated{
		Title:       payload.T,
		Description: payload.D,
		Language:    payload.L,
		Chapters:    payload.C,
		Raw:         raw,
	}, nil
}

func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	} else {
		return s
	}
	if j := strings.Index(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}

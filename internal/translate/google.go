package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yousafroja/comment-analyzer/internal/apperrors"
)

// DefaultGoogleURL is the public web translation endpoint.
const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

const maxGoogleResponseBytes = 1 << 20

// GoogleProvider calls the keyless Google web translation endpoint.
type GoogleProvider struct {
	baseURL string
	client  *http.Client
}

// NewGoogleProvider returns a provider for baseURL (DefaultGoogleURL when empty).
func NewGoogleProvider(baseURL string, timeout time.Duration) *GoogleProvider {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}

	return &GoogleProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Translate implements Provider.
func (p *GoogleProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("google translate request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google translate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGoogleResponseBytes))
	if err != nil {
		return "", fmt.Errorf("google translate read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google translate: %w: %d", apperrors.ErrUnexpectedStatus, resp.StatusCode)
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse joins the translated segments of a response shaped like
// [[["Hello","こんにちは",...],...],null,"ja",...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("google translate decode: %w", err)
	}

	if len(payload) == 0 {
		return "", fmt.Errorf("google translate: %w", apperrors.ErrEmptyResponse)
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("google translate segments: %w", err)
	}

	var sb strings.Builder

	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}

		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("google translate: %w", apperrors.ErrEmptyResponse)
	}

	return sb.String(), nil
}

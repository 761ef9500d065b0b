// Package translit provides the HTTP client for a remote transliteration
// provider, satisfying the services.TransliterationProvider contract.
package translit

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

	"github.com/seva-intake/api/internal/services"
)

const (
	defaultTimeout     = 3 * time.Second
	maxErrorBodyLength = 512
)

// ErrMissingEndpoint is returned when no provider endpoint is configured.
var ErrMissingEndpoint = errors.New("translit: missing endpoint")

// RemoteProvider calls an external phonetic transliteration service over HTTP.
type RemoteProvider struct {
	endpoint  string
	authToken string
	http      *http.Client
}

// RemoteProviderOption customises the client before construction.
type RemoteProviderOption func(*RemoteProvider)

// WithAuthToken sets the bearer token sent on every request.
func WithAuthToken(token string) RemoteProviderOption {
	return func(p *RemoteProvider) {
		p.authToken = strings.TrimSpace(token)
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) RemoteProviderOption {
	return func(p *RemoteProvider) {
		if timeout > 0 {
			p.http.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) RemoteProviderOption {
	return func(p *RemoteProvider) {
		if client != nil {
			p.http = client
		}
	}
}

// NewRemoteProvider constructs a provider client for the given endpoint.
func NewRemoteProvider(endpoint string, opts ...RemoteProviderOption) (*RemoteProvider, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if trimmed == "" {
		return nil, ErrMissingEndpoint
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("translit: invalid endpoint: %w", err)
	}

	provider := &RemoteProvider{
		endpoint: trimmed,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(provider)
	}
	return provider, nil
}

type transliterateRequest struct {
	Latin  string `json:"latin"`
	Script string `json:"script"`
}

type transliterateResponse struct {
	Provider   string `json:"provider"`
	Devanagari string `json:"devanagari"`
}

// Transliterate sends the Latin text to the remote service. Transport and
// server failures surface as services.ErrTransliterationUnavailable so the
// caller's fallback chain can absorb them.
func (p *RemoteProvider) Transliterate(ctx context.Context, req services.TransliterationRequest) (services.TransliterationResult, error) {
	if p == nil || p.endpoint == "" {
		return services.TransliterationResult{}, services.ErrTransliterationUnavailable
	}

	payload, err := json.Marshal(transliterateRequest{
		Latin:  req.Latin,
		Script: "devanagari",
	})
	if err != nil {
		return services.TransliterationResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return services.TransliterationResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if p.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.authToken)
	}

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return services.TransliterationResult{}, fmt.Errorf("%w: %v", services.ErrTransliterationUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest:
		return services.TransliterationResult{}, fmt.Errorf("translit: provider rejected input: %s", drainError(resp.Body))
	default:
		return services.TransliterationResult{}, fmt.Errorf("%w: status %d", services.ErrTransliterationUnavailable, resp.StatusCode)
	}

	var decoded transliterateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return services.TransliterationResult{}, fmt.Errorf("%w: %v", services.ErrTransliterationUnavailable, err)
	}

	return services.TransliterationResult{
		Provider:   strings.TrimSpace(decoded.Provider),
		Devanagari: strings.TrimSpace(decoded.Devanagari),
	}, nil
}

func drainError(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodyLength))
	if err != nil {
		return "unreadable error body"
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "empty error body"
	}
	return text
}

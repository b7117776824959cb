package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/tradui/internal/entities"
)

const DefaultURL = "https://translation.googleapis.com/language/translate/v2"

// GoogleClient implements Client using the Cloud Translation v2 REST API.
type GoogleClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		timer := time.NewTimer(r.interval - since)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	r.lastCall = time.Now()
	return nil
}

// Config configures the Google client.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	Interval time.Duration
}

func NewGoogleClient(cfg Config) *GoogleClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 200 * time.Millisecond
	}
	return &GoogleClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		rateLimiter: newRateLimiter(cfg.Interval),
	}
}

func (c *GoogleClient) Name() string {
	return "google"
}

// Configured reports whether an API key is set.
func (c *GoogleClient) Configured() bool {
	return c.apiKey != ""
}

// Translate sends text to the remote service.
func (c *GoogleClient) Translate(ctx context.Context, text string, source, target entities.Language) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}
	sourceCode, err := LanguageCode(source)
	if err != nil {
		return nil, err
	}
	targetCode, err := LanguageCode(target)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", text)
	params.Set("source", sourceCode)
	params.Set("target", targetCode)
	params.Set("format", "text")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Tradui/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch translation: %w", err)
	}
	defer resp.Body.Close()

	var apiResponse googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if apiResponse.Error != nil && apiResponse.Error.Message != "" {
			return nil, fmt.Errorf("unexpected status: %d: %s", resp.StatusCode, apiResponse.Error.Message)
		}
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if len(apiResponse.Data.Translations) == 0 {
		return nil, fmt.Errorf("empty response for text: %s", text)
	}

	return &Result{
		Text:       text,
		Translated: html.UnescapeString(apiResponse.Data.Translations[0].TranslatedText),
		Source:     source,
		Target:     target,
		Provider:   c.Name(),
	}, nil
}

// Cloud Translation API response types

type googleResponse struct {
	Data struct {
		Translations []googleTranslation `json:"translations"`
	} `json:"data"`
	Error *googleError `json:"error,omitempty"`
}

type googleTranslation struct {
	TranslatedText         string `json:"translatedText"`
	DetectedSourceLanguage string `json:"detectedSourceLanguage,omitempty"`
}

type googleError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

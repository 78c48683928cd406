// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package strapi is the REST client for the headless content service that
// stores categories and applications.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/janderssonse/appstore/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultTimeout matches the storefront's request timeout.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response is read.
const maxBodySize = 8 << 20

// ErrInvalidBaseURL is returned by New for unusable base URLs.
var ErrInvalidBaseURL = errors.New("invalid content service URL")

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int
	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration
	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration
	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
	// Jitter adds randomness to backoff (0.0 to 1.0)
	Jitter float64
	// RetryableStatusCodes are HTTP status codes that should be retried
	RetryableStatusCodes []int
}

// DefaultRetryConfig retries idempotent calls three times.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            0.1,
		RetryableStatusCodes: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// Config configures a Client.
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:1337. The REST API
	// lives under BaseURL/api and relative media URLs resolve against BaseURL.
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// HTTPClient defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
	// RateLimit is the sustained request rate per second; 0 disables it.
	RateLimit float64
	Burst     int
	Retry     RetryConfig
	Logger    zerolog.Logger
}

// Client implements domain.CatalogSource over the REST API.
type Client struct {
	apiBase   string
	mediaBase string
	token     string
	http      *http.Client
	limiter   *rate.Limiter
	retry     RetryConfig
	log       zerolog.Logger
}

var _ domain.CatalogSource = (*Client)(nil)

// New creates a client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout, Transport: &http.Transport{Proxy: http.ProxyFromEnvironment}}
	}

	client := &Client{
		apiBase:   base + "/api",
		mediaBase: base,
		token:     cfg.Token,
		http:      httpClient,
		retry:     cfg.Retry,
		log:       cfg.Logger.With().Str("component", "strapi").Logger(),
	}

	if cfg.RateLimit > 0 {
		burst := max(cfg.Burst, 1)
		client.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return client, nil
}

// MediaURL turns a stored media path into an absolute URL.
func (c *Client) MediaURL(path string) string {
	return absoluteMediaURL(c.mediaBase, path)
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// do sends one API call, retrying idempotent methods, and decodes the JSON
// response into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte

	if body != nil {
		var err error

		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
	}

	target := c.apiBase + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	requestID := uuid.NewString()
	retryable := idempotent(method)

	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return newTransportError(err, requestID)
			}
		}

		resp, data, err := c.roundTrip(ctx, method, target, path, payload, requestID, attempt)

		canRetry := retryable && attempt < c.retry.MaxRetries && ctx.Err() == nil

		switch {
		case err != nil:
			if canRetry && errors.Is(err, domain.ErrNetworkFailure) {
				if waitErr := c.backoff(ctx, attempt); waitErr == nil {
					continue
				}
			}

			return err
		case resp.StatusCode >= http.StatusBadRequest:
			if canRetry && slices.Contains(c.retry.RetryableStatusCodes, resp.StatusCode) {
				if waitErr := c.backoff(ctx, attempt); waitErr == nil {
					continue
				}
			}

			return newStatusError(resp, data, requestID)
		}

		if out == nil || len(data) == 0 {
			return nil
		}

		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}

		return nil
	}
}

func (c *Client) roundTrip(
	ctx context.Context, method, target, path string, payload []byte, requestID string, attempt int,
) (*http.Response, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("attempt", attempt).
		Msg("api request")

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Dur("duration", time.Since(start)).
			Msg("api request failed")

		return nil, nil, newTransportError(err, requestID)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, newTransportError(err, requestID)
	}

	event := c.log.Debug()
	if resp.StatusCode >= http.StatusBadRequest {
		event = c.log.Warn()
	}

	event.
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api response")

	return resp, data, nil
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	timer := time.NewTimer(c.calculateBackoff(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	multiplier := c.retry.BackoffMultiplier
	if multiplier < 1 {
		multiplier = 1
	}

	backoff := float64(c.retry.InitialBackoff) * math.Pow(multiplier, float64(attempt))

	if c.retry.MaxBackoff > 0 && backoff > float64(c.retry.MaxBackoff) {
		backoff = float64(c.retry.MaxBackoff)
	}

	if c.retry.Jitter > 0 {
		jitter := backoff * c.retry.Jitter
		backoff += (rand.Float64()*2 - 1) * jitter //nolint:gosec // jitter needs no crypto randomness
	}

	return time.Duration(max(backoff, 0))
}

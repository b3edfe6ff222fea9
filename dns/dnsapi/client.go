// Copyright (c) 2023 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dnsapi implements a client for the ACME DNS challenge rotation
// endpoint of Google Domains.
//
// See the top-level package for general documentation.
package dnsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tsavola/gdsdns/dns"
)

const (
	DefaultBaseURL = "https://acmedns.googleapis.com/v1/"
	DefaultTimeout = 30 * time.Second

	rotatePath  = "acmeChallengeSets/%s:rotateChallenges"
	contentType = "application/json; charset=utf-8"

	maxBodySize = 1 << 20
)

type Config struct {
	BaseURL    string       // Defaults to DefaultBaseURL
	HTTPClient *http.Client // Defaults to a client with DefaultTimeout

	ErrorLog Logger // Defaults to lego's logger
	DebugLog Logger // Defaults to nothingness
}

// Client is stateless; the access token travels in each request.  It may be
// used concurrently.
type Client struct {
	baseURL    string
	httpClient *http.Client
	errorLog   Logger
	debugLog   Logger
}

func NewClient(clientConfig *Config) *Client {
	var config Config

	if clientConfig != nil {
		config = *clientConfig
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if config.ErrorLog == nil {
		config.ErrorLog = defaultLogger{}
	}

	return &Client{
		baseURL:    config.BaseURL,
		httpClient: config.HTTPClient,
		errorLog:   config.ErrorLog,
		debugLog:   config.DebugLog,
	}
}

// RotateChallenges applies req to the challenge records of zone, and returns
// the resulting record set.  A single attempt is made.
//
// Failures are reported as *TransportError or *ParseError, apart from invalid
// arguments which are detected before sending anything.
func (c *Client) RotateChallenges(ctx context.Context, zone string, req *dns.RotationRequest) (*dns.ChallengeSet, error) {
	if zone == "" {
		return nil, errors.New("dnsapi: zone not specified")
	}
	if req == nil || req.AccessToken == "" {
		return nil, errors.New("dnsapi: access token not specified")
	}

	endpoint := c.baseURL + fmt.Sprintf(rotatePath, url.PathEscape(zone))

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("dnsapi: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("dnsapi: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{URL: endpoint, StatusCode: resp.StatusCode, Err: err}
	}

	c.logExchange(endpoint, resp.StatusCode, respBody, req)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	set := new(dns.ChallengeSet)
	if err := json.Unmarshal(respBody, set); err != nil {
		return nil, &ParseError{Body: string(respBody), Err: err}
	}

	return set, nil
}

// logExchange never sees the access token.
func (c *Client) logExchange(endpoint string, status int, respBody []byte, req *dns.RotationRequest) {
	success := status >= 200 && status <= 299
	if success && c.debugLog == nil {
		return
	}

	sanitized, err := json.Marshal(req.Redacted())
	if err != nil {
		sanitized = []byte(err.Error())
	}

	if c.debugLog != nil {
		c.debugLog.Printf("request to %s returned %d %s with data %s", endpoint, status, respBody, sanitized)
	}
	if !success {
		c.errorLog.Printf("request to %s returned %d with data %s", endpoint, status, sanitized)
	}
}

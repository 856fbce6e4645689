// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

// Package query calls read-only contract view functions through the
// MultiversX api and returns the raw base64 returnData items.
package query

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// maximum size of an api response body
const maxResponseSize = 8 * 1024 * 1024

type ClientOption func(*Client)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithCache enables response caching.
func WithCache(cache *Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

func WithMetrics(metrics *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = metrics
	}
}

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// Client is a MultiversX api client for vm queries.
type Client struct {
	apiURL  string
	httpc   *http.Client
	cache   *Cache
	metrics *Metrics
	log     *zap.Logger
}

// NewClient creates a client for the api at apiURL, e.g.
// https://devnet-api.multiversx.com
func NewClient(apiURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		httpc: &http.Client{
			Timeout: timeout,
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) APIURL() string {
	return c.apiURL
}

// Query calls a view function. args are hex encoded arguments, see
// abiutils.ToHexArg.
//
// Non 2xx responses return a *HTTPError, failed gateway envelopes a
// *GatewayError and failed contract calls a *ReturnCodeError.
func (c *Client) Query(ctx context.Context, scAddress string, funcName string, args ...string) (*Response, error) {
	req := &Request{
		ScAddress: scAddress,
		FuncName:  funcName,
		Args:      args,
	}
	if req.Args == nil {
		req.Args = []string{}
	}

	if c.cache != nil {
		if response, ok := c.cache.Get(req); ok {
			c.metrics.cacheHit(funcName)
			c.log.Debug("query served from cache", zap.String("function", funcName), zap.Strings("args", args))
			return response, nil
		}
	}

	start := time.Now()
	response, err := c.query(ctx, req)
	result := "ok"
	switch err.(type) {
	case nil:
	case *ReturnCodeError:
		result = "return_code"
	case *HTTPError:
		result = "http_error"
	case *GatewayError:
		result = "gateway_error"
	default:
		result = "error"
	}
	c.metrics.observe(funcName, result, time.Since(start).Seconds())

	if err != nil {
		c.log.Debug("query failed", zap.String("function", funcName), zap.Strings("args", args), zap.Error(err))
		return nil, err
	}

	c.log.Debug("query completed", zap.String("function", funcName), zap.Strings("args", args), zap.Int("items", len(response.ReturnData)), zap.Duration("took", time.Since(start)))

	if c.cache != nil {
		if err := c.cache.Set(req, response); err != nil {
			c.log.Warn("failed caching query response", zap.String("function", funcName), zap.Error(err))
		}
	}

	return response, nil
}

func (c *Client) query(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("error encoding query: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, c.apiURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	response, err := ParseResponse(respBody)
	var gatewayErr *GatewayError
	if errors.As(err, &gatewayErr) {
		return nil, gatewayErr
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding query response: %w", err)
	}

	if response.ReturnCode != ReturnCodeOk {
		return nil, &ReturnCodeError{
			Function:      req.FuncName,
			ReturnCode:    response.ReturnCode,
			ReturnMessage: response.ReturnMessage,
		}
	}

	return response, nil
}

func (c *Client) do(ctx context.Context, method string, url string, body io.Reader) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return respBody, nil
}

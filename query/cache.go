// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package query

import (
	"context"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
	json "github.com/goccy/go-json"
)

// Cache keeps successful query responses for a short time.
type Cache struct {
	cache *bigcache.BigCache
}

// NewCache creates a response cache with the given entry lifetime.
func NewCache(ctx context.Context, ttl time.Duration) (*Cache, error) {
	config := bigcache.DefaultConfig(ttl)
	config.Shards = 64
	config.MaxEntriesInWindow = 10 * 64
	config.MaxEntrySize = 1024
	config.CleanWindow = ttl
	config.Verbose = false

	cache, err := bigcache.New(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Cache{
		cache: cache,
	}, nil
}

func cacheKey(req *Request) string {
	return req.ScAddress + "|" + req.FuncName + "|" + strings.Join(req.Args, ",")
}

// Get returns the cached response for a request, if present.
func (c *Cache) Get(req *Request) (*Response, bool) {
	data, err := c.cache.Get(cacheKey(req))
	if err != nil {
		return nil, false
	}

	response := &Response{}
	if err := json.Unmarshal(data, response); err != nil {
		return nil, false
	}

	return response, true
}

// Set stores a response.
func (c *Cache) Set(req *Request, response *Response) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return c.cache.Set(cacheKey(req), data)
}

// Len returns the number of cached responses.
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Reset drops all cached responses.
func (c *Cache) Reset() error {
	return c.cache.Reset()
}

func (c *Cache) Close() error {
	return c.cache.Close()
}

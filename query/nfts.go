// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package query

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// NFT is an nft or sft held by an account.
type NFT struct {
	Identifier string   `json:"identifier"`
	Collection string   `json:"collection"`
	Nonce      uint64   `json:"nonce"`
	Balance    string   `json:"balance,omitempty"`
	Name       string   `json:"name,omitempty"`
	Attributes string   `json:"attributes,omitempty"`
	URIs       []string `json:"uris,omitempty"`
}

// AccountNFTs returns up to size nfts held by the bech32 address.
func (c *Client) AccountNFTs(ctx context.Context, bech32 string, size int) ([]NFT, error) {
	reqURL := fmt.Sprintf("%s/accounts/%s/nfts?size=%d", c.apiURL, url.PathEscape(bech32), size)

	body, err := c.do(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.log.Debug("nft lookup failed", zap.String("address", bech32), zap.Error(err))
		return nil, err
	}

	nfts := []NFT{}
	if err := json.Unmarshal(body, &nfts); err != nil {
		return nil, fmt.Errorf("error decoding nft list: %w", err)
	}

	return nfts, nil
}

// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

// Package festival decodes the view function responses of the festival
// ticketing contract.
package festival

import (
	"math/big"

	"github.com/pk910/mvx-abi/address"
)

// contract view functions
const (
	FuncFestivalData  = "getFestivalData"
	FuncTicketPrices  = "getTicketPrices"
	FuncEvents        = "getEventsForFestival"
	FuncProducts      = "getProducts"
	FuncResaleListing = "getResaleListings"
)

// FestivalData is the packed tuple returned by getFestivalData.
type FestivalData struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name" abi-required:"true"`
	StartTime   uint64 `json:"startTime"`
	EndTime     uint64 `json:"endTime"`
	MaxTickets  uint64 `json:"maxTickets"`
	SoldTickets uint64 `json:"soldTickets"`
	InsideCount uint64 `json:"insideCount"`
}

// TicketPrice is one item of getTicketPrices.
type TicketPrice struct {
	Name       string     `json:"name" abi-required:"true"`
	Phase      string     `json:"phase"`
	Price      *big.Int   `json:"price"`
	SaleStart  uint64     `json:"saleStart"`
	SaleEnd    uint64     `json:"saleEnd"`
	TicketType TicketType `json:"ticketType" abi-type:"u8"`
}

// FestivalEvent is one item of getEventsForFestival.
type FestivalEvent struct {
	Name      string `json:"name" abi-required:"true"`
	Location  string `json:"location"`
	StartTime uint64 `json:"startTime"`
	EndTime   uint64 `json:"endTime"`
}

// FestivalProduct is one item of getProducts.
type FestivalProduct struct {
	ProductID   uint64   `json:"productId"`
	Name        string   `json:"name" abi-required:"true"`
	Price       *big.Int `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
}

// ResaleListing is one item of getResaleListings. Listings without seller
// are empty slots.
type ResaleListing struct {
	TicketNonce   uint64          `json:"ticketNonce"`
	Seller        address.Address `json:"seller" abi-required:"true"`
	Price         *big.Int        `json:"price"`
	OriginalPrice *big.Int        `json:"originalPrice"`
}

// OwnedTicket is a ticket nft held by an account.
type OwnedTicket struct {
	TokenID    string   `json:"tokenId"`
	Identifier string   `json:"identifier,omitempty"`
	Nonce      uint64   `json:"nonce"`
	Balance    string   `json:"balance"`
	Name       string   `json:"name"`
	Attributes string   `json:"attributes,omitempty"`
	URIs       []string `json:"uris"`
}

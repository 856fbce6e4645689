// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package festival

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// EgldDecimals is the number of decimals of the native token.
const EgldDecimals = 18

// display precision of EGLD amounts
const displayDecimals = 4

var (
	weiPerEgld     = new(big.Int).Exp(big.NewInt(10), big.NewInt(EgldDecimals), nil)
	weiPerDisplay  = new(big.Int).Exp(big.NewInt(10), big.NewInt(EgldDecimals-displayDecimals), nil)
	halfPerDisplay = new(big.Int).Div(weiPerDisplay, big.NewInt(2))
)

// resale fees in basis points
const (
	PlatformFeeBps  = 500
	OrganizerFeeBps = 250
	bpsDenominator  = 10000
)

// TicketType distinguishes full passes from day tickets.
type TicketType uint8

const (
	TicketTypeFullPass TicketType = 0
	TicketTypeDay      TicketType = 1
)

func (t TicketType) String() string {
	switch t {
	case TicketTypeFullPass:
		return "Full Pass"
	case TicketTypeDay:
		return "Day Ticket"
	}
	return fmt.Sprintf("Unknown (%d)", uint8(t))
}

// WeiToEgld formats a wei amount as EGLD with 4 decimals, rounding half up.
func WeiToEgld(wei *big.Int) string {
	if wei == nil {
		wei = new(big.Int)
	}

	negative := wei.Sign() < 0
	abs := new(big.Int).Abs(wei)

	units := new(big.Int).Add(abs, halfPerDisplay)
	units.Quo(units, weiPerDisplay)

	whole, frac := new(big.Int).QuoRem(units, big.NewInt(10000), new(big.Int))

	sign := ""
	if negative && units.Sign() != 0 {
		sign = "-"
	}

	return fmt.Sprintf("%s%s.%04d", sign, whole.String(), frac.Int64())
}

// EgldToWei parses a decimal EGLD amount. Digits beyond 18 decimals are
// truncated.
func EgldToWei(egld string) (*big.Int, error) {
	egld = strings.TrimSpace(egld)

	amount, ok := new(big.Rat).SetString(egld)
	if !ok {
		return nil, fmt.Errorf("invalid EGLD amount %q", egld)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("negative EGLD amount %q", egld)
	}

	amount.Mul(amount, new(big.Rat).SetInt(weiPerEgld))

	return new(big.Int).Quo(amount.Num(), amount.Denom()), nil
}

// PriceDisplay returns the price in EGLD.
func (p *TicketPrice) PriceDisplay() string {
	return WeiToEgld(p.Price)
}

// IsOnSale reports whether the price phase is open at now. A zero sale
// window bound is treated as open.
func (p *TicketPrice) IsOnSale(now time.Time) bool {
	ts := unix(now)
	if p.SaleStart != 0 && ts < p.SaleStart {
		return false
	}
	if p.SaleEnd != 0 && ts > p.SaleEnd {
		return false
	}
	return true
}

func (p *FestivalProduct) PriceDisplay() string {
	return WeiToEgld(p.Price)
}

func unix(t time.Time) uint64 {
	ts := t.Unix()
	if ts < 0 {
		return 0
	}
	return uint64(ts)
}

func (f *FestivalData) Start() time.Time {
	return time.Unix(int64(f.StartTime), 0)
}

func (f *FestivalData) End() time.Time {
	return time.Unix(int64(f.EndTime), 0)
}

// IsActive reports whether now lies within the festival, both ends inclusive.
func (f *FestivalData) IsActive(now time.Time) bool {
	ts := unix(now)
	return ts >= f.StartTime && ts <= f.EndTime
}

func (f *FestivalData) HasStarted(now time.Time) bool {
	return unix(now) >= f.StartTime
}

func (f *FestivalData) HasEnded(now time.Time) bool {
	return unix(now) > f.EndTime
}

func (f *FestivalData) IsSoldOut() bool {
	return f.SoldTickets >= f.MaxTickets
}

// AvailableTickets returns the number of unsold tickets.
func (f *FestivalData) AvailableTickets() uint64 {
	if f.SoldTickets >= f.MaxTickets {
		return 0
	}
	return f.MaxTickets - f.SoldTickets
}

// AvailabilityPercent returns the share of unsold tickets, 0 for festivals
// without tickets.
func (f *FestivalData) AvailabilityPercent() float64 {
	if f.MaxTickets == 0 {
		return 0
	}
	return float64(f.AvailableTickets()) / float64(f.MaxTickets) * 100
}

// ResaleFees is the split of a resale price.
type ResaleFees struct {
	ResalePrice    *big.Int `json:"resalePrice"`
	PlatformFee    *big.Int `json:"platformFee"`
	OrganizerFee   *big.Int `json:"organizerFee"`
	TotalFees      *big.Int `json:"totalFees"`
	SellerReceives *big.Int `json:"sellerReceives"`
	BuyerPays      *big.Int `json:"buyerPays"`
}

// CalculateResaleFees splits a resale price in wei. Fees are rounded down
// to whole wei.
func CalculateResaleFees(resalePrice *big.Int) *ResaleFees {
	if resalePrice == nil {
		resalePrice = new(big.Int)
	}

	platformFee := bpsOf(resalePrice, PlatformFeeBps)
	organizerFee := bpsOf(resalePrice, OrganizerFeeBps)
	totalFees := new(big.Int).Add(platformFee, organizerFee)

	return &ResaleFees{
		ResalePrice:    new(big.Int).Set(resalePrice),
		PlatformFee:    platformFee,
		OrganizerFee:   organizerFee,
		TotalFees:      totalFees,
		SellerReceives: new(big.Int).Sub(resalePrice, totalFees),
		BuyerPays:      new(big.Int).Set(resalePrice),
	}
}

func bpsOf(value *big.Int, bps int64) *big.Int {
	fee := new(big.Int).Mul(value, big.NewInt(bps))
	return fee.Quo(fee, big.NewInt(bpsDenominator))
}

// Fees returns the fee split of the listing price.
func (l *ResaleListing) Fees() *ResaleFees {
	return CalculateResaleFees(l.Price)
}

// Markup returns the resale price relative to the original price in
// percent, 0 when the original price is unknown.
func (l *ResaleListing) Markup() float64 {
	if l.OriginalPrice == nil || l.OriginalPrice.Sign() == 0 || l.Price == nil {
		return 0
	}
	ratio, _ := new(big.Rat).SetFrac(l.Price, l.OriginalPrice).Float64()
	return (ratio - 1) * 100
}

// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package festival_test

import (
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mvxabi "github.com/pk910/mvx-abi"
	"github.com/pk910/mvx-abi/festival"
)

func wei(t *testing.T, s string) *big.Int {
	t.Helper()
	value, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return value
}

func TestWeiToEgld(t *testing.T) {
	tests := []struct {
		wei  string
		egld string
	}{
		{"0", "0.0000"},
		{"120000000000000000", "0.1200"},
		{"1500000000000000000", "1.5000"},
		{"49999999999999", "0.0000"},
		{"50000000000000", "0.0001"},
		{"999950000000000000", "1.0000"},
		{"123456789000000000000000", "123456.7890"},
		{"-1500000000000000000", "-1.5000"},
	}

	for _, test := range tests {
		t.Run(test.wei, func(t *testing.T) {
			require.Equal(t, test.egld, festival.WeiToEgld(wei(t, test.wei)))
		})
	}

	require.Equal(t, "0.0000", festival.WeiToEgld(nil))
}

func TestEgldToWei(t *testing.T) {
	tests := []struct {
		egld string
		wei  string
	}{
		{"1", "1000000000000000000"},
		{"1.5", "1500000000000000000"},
		{" 0.12 ", "120000000000000000"},
		{"0.000000000000000001", "1"},
		{"0.0000000000000000019", "1"},
	}

	for _, test := range tests {
		t.Run(test.egld, func(t *testing.T) {
			value, err := festival.EgldToWei(test.egld)
			require.NoError(t, err)
			require.Equal(t, test.wei, value.String())
		})
	}

	for _, invalid := range []string{"", "abc", "-1", "1,5"} {
		_, err := festival.EgldToWei(invalid)
		require.Error(t, err, invalid)
	}
}

func TestTicketType(t *testing.T) {
	require.Equal(t, "Full Pass", festival.TicketTypeFullPass.String())
	require.Equal(t, "Day Ticket", festival.TicketTypeDay.String())
	require.Equal(t, "Unknown (7)", festival.TicketType(7).String())
}

func TestFestivalStatus(t *testing.T) {
	record := &festival.FestivalData{
		StartTime:   1750000000,
		EndTime:     1750300000,
		MaxTickets:  50000,
		SoldTickets: 35420,
	}

	before := time.Unix(1749999999, 0)
	require.False(t, record.HasStarted(before))
	require.False(t, record.IsActive(before))

	start := time.Unix(1750000000, 0)
	require.True(t, record.HasStarted(start))
	require.True(t, record.IsActive(start))

	end := time.Unix(1750300000, 0)
	require.True(t, record.IsActive(end))
	require.False(t, record.HasEnded(end))

	after := end.Add(time.Second)
	require.False(t, record.IsActive(after))
	require.True(t, record.HasEnded(after))

	require.Equal(t, start, record.Start())
	require.Equal(t, end, record.End())

	require.False(t, record.IsSoldOut())
	require.Equal(t, uint64(14580), record.AvailableTickets())
	require.InDelta(t, 29.16, record.AvailabilityPercent(), 1e-9)

	record.SoldTickets = 50001
	require.True(t, record.IsSoldOut())
	require.Equal(t, uint64(0), record.AvailableTickets())
	require.Equal(t, 0.0, record.AvailabilityPercent())

	require.Equal(t, 0.0, (&festival.FestivalData{}).AvailabilityPercent())
	require.True(t, (&festival.FestivalData{}).IsSoldOut())
}

func TestTicketPriceSaleWindow(t *testing.T) {
	price := &festival.TicketPrice{Price: wei(t, "120000000000000000"), SaleStart: 100, SaleEnd: 200}
	require.Equal(t, "0.1200", price.PriceDisplay())
	require.False(t, price.IsOnSale(time.Unix(99, 0)))
	require.True(t, price.IsOnSale(time.Unix(100, 0)))
	require.True(t, price.IsOnSale(time.Unix(200, 0)))
	require.False(t, price.IsOnSale(time.Unix(201, 0)))

	open := &festival.TicketPrice{}
	require.True(t, open.IsOnSale(time.Unix(0, 0)))
	require.Equal(t, "0.0000", open.PriceDisplay())
}

func TestResaleFees(t *testing.T) {
	fees := festival.CalculateResaleFees(wei(t, "1000000000000000000"))
	require.Equal(t, "50000000000000000", fees.PlatformFee.String())
	require.Equal(t, "25000000000000000", fees.OrganizerFee.String())
	require.Equal(t, "75000000000000000", fees.TotalFees.String())
	require.Equal(t, "925000000000000000", fees.SellerReceives.String())
	require.Equal(t, "1000000000000000000", fees.BuyerPays.String())

	// fees round down to whole wei
	fees = festival.CalculateResaleFees(big.NewInt(39))
	require.Equal(t, int64(1), fees.PlatformFee.Int64())
	require.Equal(t, int64(0), fees.OrganizerFee.Int64())
	require.Equal(t, int64(38), fees.SellerReceives.Int64())

	fees = festival.CalculateResaleFees(nil)
	require.Equal(t, 0, fees.TotalFees.Sign())

	listing := &festival.ResaleListing{Price: big.NewInt(200)}
	require.Equal(t, int64(10), listing.Fees().PlatformFee.Int64())
	require.Equal(t, 0.0, listing.Markup())
}

func TestRecordsMatchBuiltinSchemas(t *testing.T) {
	abi := mvxabi.NewMvxAbi(nil)
	registry := mvxabi.DefaultSchemaRegistry()

	records := map[string]reflect.Type{
		festival.FuncFestivalData:  reflect.TypeOf(festival.FestivalData{}),
		festival.FuncTicketPrices:  reflect.TypeOf(festival.TicketPrice{}),
		festival.FuncEvents:        reflect.TypeOf(festival.FestivalEvent{}),
		festival.FuncProducts:      reflect.TypeOf(festival.FestivalProduct{}),
		festival.FuncResaleListing: reflect.TypeOf(festival.ResaleListing{}),
	}

	for function, recordType := range records {
		t.Run(function, func(t *testing.T) {
			builtin, ok := registry.ByFunction(function)
			require.True(t, ok)

			derived, err := abi.SchemaFromType(recordType, builtin.Name, function)
			require.NoError(t, err)
			require.Equal(t, builtin, derived)
		})
	}
}

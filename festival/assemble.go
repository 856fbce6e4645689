// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package festival

import (
	mvxabi "github.com/pk910/mvx-abi"
	"github.com/pk910/mvx-abi/abiutils"
)

// DecodeFestivalData decodes the packed getFestivalData buffer.
//
// An empty buffer is reported as abiutils.ErrRecordAbsent, as is malformed
// base64 unless strict decoding is enabled. A decoded id of 0 is replaced by
// fallbackID, the id the festival was queried with. The returned record may
// still have an empty name, callers decide whether that makes it absent.
func DecodeFestivalData(abi *mvxabi.MvxAbi, b64 string, fallbackID uint64, opts ...mvxabi.CallOption) (*FestivalData, error) {
	if abi == nil {
		abi = mvxabi.GetGlobalMvxAbi()
	}

	data, err := abiutils.DecodeBase64(b64)
	if err != nil {
		if mvxabi.StrictMode(opts...) {
			return nil, err
		}
		data = []byte{}
	}
	if len(data) == 0 {
		return nil, abiutils.ErrRecordAbsent
	}

	festival := &FestivalData{}
	if err := abi.UnmarshalNested(festival, data, opts...); err != nil {
		return nil, err
	}

	if festival.ID == 0 {
		festival.ID = fallbackID
	}

	return festival, nil
}

// DecodeTicketPrices decodes one ticket price per returnData item and drops
// items without name.
func DecodeTicketPrices(abi *mvxabi.MvxAbi, returnData []string, opts ...mvxabi.CallOption) ([]*TicketPrice, error) {
	return mvxabi.DecodeEach[TicketPrice](abi, returnData, opts...)
}

// DecodeEvents decodes one event per returnData item and drops items
// without name.
func DecodeEvents(abi *mvxabi.MvxAbi, returnData []string, opts ...mvxabi.CallOption) ([]*FestivalEvent, error) {
	return mvxabi.DecodeEach[FestivalEvent](abi, returnData, opts...)
}

// DecodeProducts decodes one product per returnData item and drops items
// without name.
func DecodeProducts(abi *mvxabi.MvxAbi, returnData []string, opts ...mvxabi.CallOption) ([]*FestivalProduct, error) {
	return mvxabi.DecodeEach[FestivalProduct](abi, returnData, opts...)
}

// DecodeResaleListings decodes one listing per returnData item and drops
// items without seller.
func DecodeResaleListings(abi *mvxabi.MvxAbi, returnData []string, opts ...mvxabi.CallOption) ([]*ResaleListing, error) {
	return mvxabi.DecodeEach[ResaleListing](abi, returnData, opts...)
}

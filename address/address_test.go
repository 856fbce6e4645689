// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package address_test

import (
	"encoding/json"
	"errors"
	"testing"

	. "github.com/pk910/mvx-abi/address"
)

const festivalContract = "erd1qqqqqqqqqqqqqpgq7kpf8d4eyy6umdgeug8la0ss64uxeg4cn2jsuxvsq2"

func TestBech32RoundTrip(t *testing.T) {
	testCases := []struct {
		bech32 string
		hex    string
	}{
		{festivalContract, "00000000000000000500f58293b6b92135cdb519e20ffebe10d5786ca2b89aa5"},
		{"erd1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq6gq4hu", "0000000000000000000000000000000000000000000000000000000000000000"},
		{"erd1qyqszqgpqyqszqgpqyqszqgpqyqszqgpqyqszqgpqyqszqgpqyqsl6e0p7", "0101010101010101010101010101010101010101010101010101010101010101"},
		{"erd1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnzs23v9ccrydpk8qarc0snuthh9", "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"},
	}

	for _, test := range testCases {
		addr, err := FromBech32(test.bech32)
		if err != nil {
			t.Errorf("FromBech32(%v) failed: %v", test.bech32, err)
			continue
		}
		if addr.Hex() != test.hex {
			t.Errorf("FromBech32(%v): got %v, wanted %v", test.bech32, addr.Hex(), test.hex)
		}

		fromHex, err := FromHex(test.hex)
		if err != nil {
			t.Errorf("FromHex(%v) failed: %v", test.hex, err)
			continue
		}
		if fromHex.Bech32() != test.bech32 {
			t.Errorf("Bech32(%v): got %v, wanted %v", test.hex, fromHex.Bech32(), test.bech32)
		}
	}
}

func TestAddressErrors(t *testing.T) {
	if _, err := FromBech32("erd1invalid"); err == nil {
		t.Errorf("expected error for invalid bech32")
	}
	if _, err := FromHex("0011"); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := FromBytes(make([]byte, 20)); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
	// valid bech32 with a foreign prefix
	if _, err := FromBech32("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"); err == nil {
		t.Errorf("expected error for foreign hrp")
	}
}

func TestAddressHelpers(t *testing.T) {
	contract := MustParse(festivalContract)
	if !contract.IsSmartContract() {
		t.Errorf("expected smart contract address")
	}
	if contract.IsZero() {
		t.Errorf("contract address is not zero")
	}
	if short := contract.Short(); short != "erd1qqqq...uxvsq2" {
		t.Errorf("unexpected short form %v", short)
	}

	user := MustParse("0x0101010101010101010101010101010101010101010101010101010101010101")
	if user.IsSmartContract() {
		t.Errorf("user address reported as smart contract")
	}
	if !Zero.IsZero() {
		t.Errorf("zero address not zero")
	}
}

func TestAddressJSON(t *testing.T) {
	payload := struct {
		Owner Address `json:"owner"`
	}{Owner: MustParse(festivalContract)}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"owner":"`+festivalContract+`"}` {
		t.Errorf("unexpected json %s", data)
	}

	payload.Owner = Zero
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Owner.Bech32() != festivalContract {
		t.Errorf("unexpected address %v", payload.Owner)
	}
}

// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

// Package address converts MultiversX account addresses between their raw
// 32 byte form, hex and the bech32 form shown to users.
package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/pk910/mvx-abi/abiutils"
)

// HRP is the human readable part of MultiversX addresses.
const HRP = "erd"

// Length is the size of a raw address.
const Length = abiutils.AddressLength

// smart contract addresses start with 8 zero bytes
const scPrefixLength = 8

var (
	ErrInvalidLength = errors.New("invalid address length")
	ErrInvalidHRP    = errors.New("invalid address prefix")
)

// Address is a raw MultiversX account address.
type Address [Length]byte

// Zero is the all zero address.
var Zero Address

func FromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != Length {
		return addr, fmt.Errorf("%w: %v bytes", ErrInvalidLength, len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

func FromHex(s string) (Address, error) {
	b, err := abiutils.DecodeHex(s)
	if err != nil {
		return Address{}, err
	}
	return FromBytes(b)
}

// FromBech32 parses an erd1... address.
func FromBech32(s string) (Address, error) {
	hrp, data, err := bech32.Decode(strings.TrimSpace(s))
	if err != nil {
		return Address{}, fmt.Errorf("invalid bech32 address: %w", err)
	}
	if hrp != HRP {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidHRP, hrp)
	}

	conv, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("invalid bech32 address: %w", err)
	}

	return FromBytes(conv)
}

// Parse accepts bech32 as well as (optionally 0x prefixed) hex addresses.
func Parse(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), HRP+"1") {
		return FromBech32(s)
	}
	return FromHex(s)
}

// MustParse is like Parse but panics on invalid input. Intended for constants.
func MustParse(s string) Address {
	addr, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// Bech32 returns the erd1... form of the address.
func (a Address) Bech32() string {
	conv, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		// 8 to 5 bit conversion with padding can not fail
		panic(err)
	}

	encoded, err := bech32.Encode(HRP, conv)
	if err != nil {
		panic(err)
	}

	return encoded
}

func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == Zero
}

// IsSmartContract reports whether the address belongs to a smart contract.
func (a Address) IsSmartContract() bool {
	for i := 0; i < scPrefixLength; i++ {
		if a[i] != 0 {
			return false
		}
	}
	return true
}

// Short returns the bech32 form truncated to its first 8 and last 6 characters.
func (a Address) Short() string {
	full := a.Bech32()
	return full[:8] + "..." + full[len(full)-6:]
}

func (a Address) String() string {
	return a.Bech32()
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Bech32()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

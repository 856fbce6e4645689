// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abiutils_test

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/pk910/mvx-abi/abiutils"
)

func TestFromBase64(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []byte
	}{
		{"empty input", "", []byte{}},
		{"whitespace only", "   ", []byte{}},
		{"padded", "AAAAAAAAACo=", fromHex("0x000000000000002a")},
		{"unpadded", "AAAAAAAAACo", fromHex("0x000000000000002a")},
		{"string payload", "AAAAA0FCQw==", fromHex("0x00000003414243")},
		{"malformed", "!!not-base64!!", []byte{}},
		{"bad padding", "AAA==", []byte{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := FromBase64(tc.input)
			if result == nil {
				t.Fatalf("FromBase64 returned nil buffer")
			}
			if !bytes.Equal(result, tc.expected) {
				t.Errorf("FromBase64 result mismatch: got %x, want %x", result, tc.expected)
			}
		})
	}
}

func TestDecodeBase64Strict(t *testing.T) {
	if _, err := DecodeBase64("!!"); !errors.Is(err, ErrInvalidBase64) {
		t.Errorf("expected ErrInvalidBase64, got %v", err)
	}

	buf := []byte{0, 0, 0, 5, 'h', 'e', 'l', 'l', 'o'}
	decoded, err := DecodeBase64(ToBase64(buf))
	if err != nil {
		t.Fatalf("DecodeBase64 failed: %v", err)
	}
	if !bytes.Equal(decoded, buf) {
		t.Errorf("round trip mismatch: got %x, want %x", decoded, buf)
	}
}

func TestHexArgs(t *testing.T) {
	testCases := []struct {
		value    uint64
		expected string
	}{
		{0, "00"},
		{1, "01"},
		{8, "08"},
		{15, "0f"},
		{16, "10"},
		{255, "ff"},
		{256, "0100"},
		{1750000000, "684ee180"},
	}

	for _, tc := range testCases {
		if got := ToHexArg(tc.value); got != tc.expected {
			t.Errorf("ToHexArg(%v): got %v, want %v", tc.value, got, tc.expected)
		}
	}

	if got := StringHexArg("VIP"); got != "564950" {
		t.Errorf("StringHexArg: got %v, want 564950", got)
	}
}

func TestFromHex(t *testing.T) {
	if got := FromHex("0x2a"); !bytes.Equal(got, []byte{0x2a}) {
		t.Errorf("FromHex(0x2a): got %x", got)
	}
	if got := FromHex("abc"); !bytes.Equal(got, []byte{0x0a, 0xbc}) {
		t.Errorf("FromHex(abc): got %x", got)
	}
	if got := FromHex("zz"); len(got) != 0 {
		t.Errorf("FromHex(zz): expected empty, got %x", got)
	}
	if _, err := DecodeHex("zz"); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("DecodeHex(zz): expected ErrInvalidHex, got %v", err)
	}
}

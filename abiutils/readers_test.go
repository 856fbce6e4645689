// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abiutils_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	. "github.com/pk910/mvx-abi/abiutils"
)

func TestReadBigUintRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"one", "1"},
		{"byte boundary", "255"},
		{"two bytes", "256"},
		{"one egld", "1000000000000000000"},
		{"above u64", "340282366920938463463374607431768211455"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value, ok := new(big.Int).SetString(tc.value, 10)
			if !ok {
				t.Fatalf("invalid test value %v", tc.value)
			}

			buf := AppendBigUint(nil, value)
			if got := len(buf); got != LengthPrefixSize+len(value.Bytes()) {
				t.Errorf("unexpected encoded size: got %v, want %v", got, LengthPrefixSize+len(value.Bytes()))
			}

			decoded, next := ReadBigUint(buf, 0)
			if decoded.Cmp(value) != 0 {
				t.Errorf("round trip mismatch: got %v, want %v", decoded, value)
			}
			if next != len(buf) {
				t.Errorf("unexpected offset: got %v, want %v", next, len(buf))
			}
		})
	}
}

func TestReadBigUintZeroLengthPayload(t *testing.T) {
	decoded, next := ReadBigUint(fromHex("0x00000000"), 0)
	if decoded.Sign() != 0 {
		t.Errorf("expected zero, got %v", decoded)
	}
	if next != 4 {
		t.Errorf("expected offset 4, got %v", next)
	}
}

func TestReadStringRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"empty string", ""},
		{"simple string", "Electric Dreams"},
		{"unicode string", "Arena Națională"},
		{"string with null bytes", "hello\x00world"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := AppendString(nil, tc.value)
			decoded, next := ReadString(buf, 0)
			if decoded != tc.value {
				t.Errorf("round trip mismatch: got %q, want %q", decoded, tc.value)
			}
			if next != LengthPrefixSize+len(tc.value) {
				t.Errorf("unexpected offset: got %v, want %v", next, LengthPrefixSize+len(tc.value))
			}
		})
	}
}

func TestFixedWidthAdvance(t *testing.T) {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = byte(i * 7)
	}

	for offset := 0; offset <= 32; offset++ {
		if _, next := ReadU64(buf, offset); next != offset+8 {
			t.Errorf("u64 at %v: got next %v", offset, next)
		}
		if _, next := ReadU8(buf, offset); next != offset+1 {
			t.Errorf("u8 at %v: got next %v", offset, next)
		}
		if _, next := ReadAddress(buf, offset); next != offset+AddressLength {
			t.Errorf("address at %v: got next %v", offset, next)
		}
	}
}

func TestFixedWidthValues(t *testing.T) {
	buf := fromHex("0x000000000000002a")
	if v, _ := ReadU64(buf, 0); v != 42 {
		t.Errorf("u64: got %v, want 42", v)
	}
	if v, _ := ReadU64(fromHex("0xffffffffffffffff"), 0); v != 18446744073709551615 {
		t.Errorf("u64 max: got %v", v)
	}
	if v, _ := ReadU32(fromHex("0x00000539"), 0); v != 1337 {
		t.Errorf("u32: got %v, want 1337", v)
	}
	if v, _ := ReadU16(fromHex("0x0539"), 0); v != 1337 {
		t.Errorf("u16: got %v, want 1337", v)
	}
	if v, _ := ReadU8(fromHex("0x2a"), 0); v != 42 {
		t.Errorf("u8: got %v, want 42", v)
	}
	if v, _ := ReadBool(fromHex("0x01"), 0); !v {
		t.Errorf("bool: got false, want true")
	}
	if _, _, err := ReadBoolChecked(fromHex("0x02"), 0); !errors.Is(err, ErrInvalidBoolValue) {
		t.Errorf("bool: expected ErrInvalidBoolValue, got %v", err)
	}
}

func TestTruncationSafety(t *testing.T) {
	full := AppendString(nil, "Electric Dreams")
	full = AppendU64(full, 1750000000)
	full = AppendBigUint(full, big.NewInt(50000))
	full = append(full, bytes.Repeat([]byte{0xab}, AddressLength)...)
	full = AppendU8(full, 1)

	for cut := 0; cut <= len(full); cut++ {
		buf := full[:cut]
		for offset := -1; offset <= cut+1; offset++ {
			checkShort(t, "u8", buf, offset, 1, func() (bool, int) { v, n := ReadU8(buf, offset); return v == 0, n })
			checkShort(t, "u64", buf, offset, 8, func() (bool, int) { v, n := ReadU64(buf, offset); return v == 0, n })
			checkShort(t, "address", buf, offset, AddressLength, func() (bool, int) {
				v, n := ReadAddress(buf, offset)
				return v == [AddressLength]byte{}, n
			})

			_, next, err := ReadStringChecked(buf, offset)
			if err != nil && next != offset {
				t.Fatalf("string: offset moved on error (cut %v offset %v)", cut, offset)
			}
			if next > len(buf) {
				t.Fatalf("string: offset beyond buffer (cut %v offset %v)", cut, offset)
			}

			bigVal, next, err := ReadBigUintChecked(buf, offset)
			if err != nil && (next != offset || bigVal.Sign() != 0) {
				t.Fatalf("biguint: expected default on error (cut %v offset %v)", cut, offset)
			}
		}
	}
}

func checkShort(t *testing.T, name string, buf []byte, offset int, width int, read func() (bool, int)) {
	t.Helper()

	isZero, next := read()
	short := offset < 0 || offset > len(buf) || len(buf)-offset < width
	if short {
		if !isZero || next != offset {
			t.Fatalf("%v: expected default and unchanged offset for short read (len %v offset %v), got next %v", name, len(buf), offset, next)
		}
		return
	}
	if next != offset+width {
		t.Fatalf("%v: expected offset %v, got %v", name, offset+width, next)
	}
}

func TestLengthPrefixOverrun(t *testing.T) {
	// length prefix claims 16 bytes, only 3 present
	buf := fromHex("0x00000010414243")

	v, next := ReadString(buf, 0)
	if v != "" || next != 0 {
		t.Errorf("expected empty string and offset 0, got %q / %v", v, next)
	}

	_, _, err := ReadBytesChecked(buf, 0)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}

	// huge length prefix must not overflow the bounds check
	huge := fromHex("0xffffffff00")
	if _, _, err := ReadBytesChecked(huge, 0); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF for huge prefix, got %v", err)
	}
}

func TestSequentialComposition(t *testing.T) {
	buf := AppendU64(nil, 42)
	buf = AppendString(buf, "Electric Dreams")
	buf = AppendBigUint(buf, big.NewInt(0))
	buf = AppendU8(buf, 7)
	addr := [AddressLength]byte{1, 2, 3}
	buf = AppendAddress(buf, addr)
	buf = AppendBytes(buf, []byte{0xde, 0xad})
	buf = AppendU64(buf, 1750300000)

	offset := 0
	id, offset := ReadU64(buf, offset)
	name, offset := ReadString(buf, offset)
	price, offset := ReadBigUint(buf, offset)
	kind, offset := ReadU8(buf, offset)
	owner, offset := ReadAddress(buf, offset)
	raw, offset := ReadBytes(buf, offset)
	end, offset := ReadU64(buf, offset)

	if id != 42 || name != "Electric Dreams" || price.Sign() != 0 || kind != 7 || owner != addr || !bytes.Equal(raw, []byte{0xde, 0xad}) || end != 1750300000 {
		t.Errorf("unexpected values: %v %q %v %v %x %x %v", id, name, price, kind, owner, raw, end)
	}
	if offset != len(buf) {
		t.Errorf("expected full consumption, offset %v of %v", offset, len(buf))
	}
}

// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abiutils

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// FromBase64 decodes a base64 value as returned in the returnData array of a
// VM query. Empty or malformed input yields an empty buffer.
func FromBase64(s string) []byte {
	buf, err := DecodeBase64(s)
	if err != nil {
		return []byte{}
	}
	return buf
}

// DecodeBase64 is the strict form of FromBase64. Both padded and unpadded
// standard encodings are accepted, the node API emits either.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []byte{}, nil
	}

	var (
		buf []byte
		err error
	)
	if strings.HasSuffix(s, "=") {
		buf, err = base64.StdEncoding.DecodeString(s)
	} else {
		buf, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return buf, nil
}

// ToBase64 encodes a buffer the way the query API returns it.
func ToBase64(buf []byte) string {
	return base64.StdEncoding.EncodeToString(buf)
}

// FromHex decodes a hex string with optional 0x prefix. Odd length input is
// left padded with a zero nibble. Malformed input yields an empty buffer.
func FromHex(s string) []byte {
	buf, err := DecodeHex(s)
	if err != nil {
		return []byte{}
	}
	return buf
}

// DecodeHex is the strict form of FromHex.
func DecodeHex(s string) ([]byte, error) {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return buf, nil
}

// ToHexArg formats an integer query argument: minimal big-endian hex with an
// even number of digits.
func ToHexArg(v uint64) string {
	h := strconv.FormatUint(v, 16)
	if len(h)%2 != 0 {
		h = "0" + h
	}
	return h
}

// StringHexArg formats a text query argument.
func StringHexArg(s string) string {
	return hex.EncodeToString([]byte(s))
}

// has0xPrefix validates str begins with '0x' or '0X'.
func has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

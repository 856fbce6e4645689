// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abiutils

import "fmt"

var (
	ErrUnexpectedEOF    = fmt.Errorf("unexpected end of buffer")
	ErrInvalidBase64    = fmt.Errorf("invalid base64 input")
	ErrInvalidHex       = fmt.Errorf("invalid hex input")
	ErrBufferTooLong    = fmt.Errorf("buffer length is higher than max value")
	ErrTrailingBytes    = fmt.Errorf("did not consume full buffer")
	ErrUnsupportedType  = fmt.Errorf("unsupported type")
	ErrInvalidBoolValue = fmt.Errorf("invalid bool value")
	ErrRecordAbsent     = fmt.Errorf("record absent")
)

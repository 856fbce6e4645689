// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abiutils

import "math/big"

// DynamicSpecs resolves named spec values and expressions used in dynabi-max tags.
type DynamicSpecs interface {
	ResolveSpecValue(name string) (bool, uint64, error)
}

// Decoder reads nested-encoded values from a byte source.
//
// Implementations never advance the position when a read fails, so a caller
// that chooses to ignore the error can keep decoding from the same position.
type Decoder interface {
	GetPosition() int // return current position
	GetLength() int   // return remaining length
	PushLimit(limit int)
	PopLimit() int
	DecodeBool() (bool, error)
	DecodeUint8() (uint8, error)
	DecodeUint16() (uint16, error)
	DecodeUint32() (uint32, error)
	DecodeUint64() (uint64, error)
	DecodeBytesBuf(len int) ([]byte, error) // raw bytes without length prefix
	DecodeNestedBytes() ([]byte, error)     // u32 length prefix + payload
	DecodeString() (string, error)
	DecodeBigUint() (*big.Int, error)
	DecodeAddress() ([AddressLength]byte, error)
}

// Encoder writes nested-encoded values.
type Encoder interface {
	GetPosition() int
	GetBuffer() []byte
	EncodeBool(v bool)
	EncodeUint8(v uint8)
	EncodeUint16(v uint16)
	EncodeUint32(v uint32)
	EncodeUint64(v uint64)
	EncodeBytes(v []byte) // raw bytes without length prefix
	EncodeNestedBytes(v []byte)
	EncodeString(v string)
	EncodeBigUint(v *big.Int)
	EncodeAddress(v [AddressLength]byte)
}

// NestedDecoder is implemented by types that decode themselves from a Decoder.
type NestedDecoder interface {
	DecodeNested(dec Decoder) error
}

// NestedEncoder is implemented by types that encode themselves to an Encoder.
type NestedEncoder interface {
	EncodeNested(enc Encoder) error
}

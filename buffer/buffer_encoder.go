// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package buffer

import (
	"math/big"

	"github.com/pk910/mvx-abi/abiutils"
)

// BufferEncoder appends nested-encoded values to a growing buffer.
type BufferEncoder struct {
	buffer []byte
}

var _ abiutils.Encoder = (*BufferEncoder)(nil)

// NewBufferEncoder creates a new BufferEncoder appending to buffer.
func NewBufferEncoder(buffer []byte) *BufferEncoder {
	return &BufferEncoder{
		buffer: buffer,
	}
}

func (e *BufferEncoder) GetPosition() int {
	return len(e.buffer)
}

func (e *BufferEncoder) GetBuffer() []byte {
	return e.buffer
}

func (e *BufferEncoder) EncodeBool(v bool) {
	e.buffer = abiutils.AppendBool(e.buffer, v)
}

func (e *BufferEncoder) EncodeUint8(v uint8) {
	e.buffer = abiutils.AppendU8(e.buffer, v)
}

func (e *BufferEncoder) EncodeUint16(v uint16) {
	e.buffer = abiutils.AppendU16(e.buffer, v)
}

func (e *BufferEncoder) EncodeUint32(v uint32) {
	e.buffer = abiutils.AppendU32(e.buffer, v)
}

func (e *BufferEncoder) EncodeUint64(v uint64) {
	e.buffer = abiutils.AppendU64(e.buffer, v)
}

func (e *BufferEncoder) EncodeBytes(v []byte) {
	e.buffer = append(e.buffer, v...)
}

func (e *BufferEncoder) EncodeNestedBytes(v []byte) {
	e.buffer = abiutils.AppendBytes(e.buffer, v)
}

func (e *BufferEncoder) EncodeString(v string) {
	e.buffer = abiutils.AppendString(e.buffer, v)
}

func (e *BufferEncoder) EncodeBigUint(v *big.Int) {
	e.buffer = abiutils.AppendBigUint(e.buffer, v)
}

func (e *BufferEncoder) EncodeAddress(v [abiutils.AddressLength]byte) {
	e.buffer = abiutils.AppendAddress(e.buffer, v)
}

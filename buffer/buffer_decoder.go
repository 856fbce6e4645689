// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package buffer

import (
	"math/big"

	"github.com/pk910/mvx-abi/abiutils"
)

// BufferDecoder is a cursor over one contract response buffer.
// Every read either consumes the complete field or nothing.
type BufferDecoder struct {
	buffer   []byte
	limits   []int
	position int
}

var _ abiutils.Decoder = (*BufferDecoder)(nil)

func NewBufferDecoder(buffer []byte) *BufferDecoder {
	return &BufferDecoder{
		buffer:   buffer,
		limits:   make([]int, 0, 4),
		position: 0,
	}
}

// NewBase64Decoder creates a decoder for a base64 returnData item.
// Malformed input results in an empty decoder.
func NewBase64Decoder(b64 string) *BufferDecoder {
	return NewBufferDecoder(abiutils.FromBase64(b64))
}

func (e *BufferDecoder) GetPosition() int {
	return e.position
}

func (e *BufferDecoder) getLimit() int {
	if len(e.limits) == 0 {
		return len(e.buffer)
	}
	return e.limits[len(e.limits)-1]
}

// view returns the part of the buffer visible under the current limit.
func (e *BufferDecoder) view() []byte {
	return e.buffer[:e.getLimit()]
}

func (e *BufferDecoder) GetLength() int {
	return e.getLimit() - e.position
}

func (e *BufferDecoder) PushLimit(limit int) {
	limitPos := e.position + limit
	if curLimit := e.getLimit(); limitPos > curLimit {
		limitPos = curLimit
	}

	e.limits = append(e.limits, limitPos)
}

func (e *BufferDecoder) PopLimit() int {
	if len(e.limits) == 0 {
		return 0
	}
	limit := e.limits[len(e.limits)-1]
	e.limits = e.limits[:len(e.limits)-1]
	return limit - e.position
}

func (e *BufferDecoder) DecodeBool() (bool, error) {
	val, next, err := abiutils.ReadBoolChecked(e.view(), e.position)
	if err != nil {
		return false, err
	}
	e.position = next
	return val, nil
}

func (e *BufferDecoder) DecodeUint8() (uint8, error) {
	val, next, err := abiutils.ReadU8Checked(e.view(), e.position)
	if err != nil {
		return 0, err
	}
	e.position = next
	return val, nil
}

func (e *BufferDecoder) DecodeUint16() (uint16, error) {
	val, next, err := abiutils.ReadU16Checked(e.view(), e.position)
	if err != nil {
		return 0, err
	}
	e.position = next
	return val, nil
}

func (e *BufferDecoder) DecodeUint32() (uint32, error) {
	val, next, err := abiutils.ReadU32Checked(e.view(), e.position)
	if err != nil {
		return 0, err
	}
	e.position = next
	return val, nil
}

func (e *BufferDecoder) DecodeUint64() (uint64, error) {
	val, next, err := abiutils.ReadU64Checked(e.view(), e.position)
	if err != nil {
		return 0, err
	}
	e.position = next
	return val, nil
}

// DecodeBytesBuf returns the next len raw bytes. A negative len returns
// everything up to the current limit.
func (e *BufferDecoder) DecodeBytesBuf(len int) ([]byte, error) {
	limit := e.getLimit()
	if len < 0 {
		len = limit - e.position
	} else if limit-e.position < len {
		return nil, abiutils.ErrUnexpectedEOF
	}
	buf := e.buffer[e.position : e.position+len]
	e.position += len
	return buf, nil
}

func (e *BufferDecoder) DecodeNestedBytes() ([]byte, error) {
	val, next, err := abiutils.ReadBytesChecked(e.view(), e.position)
	if err != nil {
		return nil, err
	}
	e.position = next
	return val, nil
}

func (e *BufferDecoder) DecodeString() (string, error) {
	val, next, err := abiutils.ReadStringChecked(e.view(), e.position)
	if err != nil {
		return "", err
	}
	e.position = next
	return val, nil
}

func (e *BufferDecoder) DecodeBigUint() (*big.Int, error) {
	val, next, err := abiutils.ReadBigUintChecked(e.view(), e.position)
	if err != nil {
		return new(big.Int), err
	}
	e.position = next
	return val, nil
}

func (e *BufferDecoder) DecodeAddress() ([abiutils.AddressLength]byte, error) {
	val, next, err := abiutils.ReadAddressChecked(e.view(), e.position)
	if err != nil {
		return val, err
	}
	e.position = next
	return val, nil
}

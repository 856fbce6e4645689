// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abiutils

import (
	"encoding/binary"
	"math/big"
)

// AddressLength is the size of a MultiversX account address.
const AddressLength = 32

// LengthPrefixSize is the size of the big-endian length prefix in front of
// nested buffers and big integers.
const LengthPrefixSize = 4

// ---- Checked readers ----
//
// All checked readers share one contract: given a buffer and a start offset
// they return the decoded value and the offset right after the field. If the
// field does not fit into the buffer, ErrUnexpectedEOF is returned together
// with the zero value and the unchanged offset.

func fits(buf []byte, offset int, n int) bool {
	return offset >= 0 && n >= 0 && offset <= len(buf) && len(buf)-offset >= n
}

func ReadU8Checked(buf []byte, offset int) (uint8, int, error) {
	if !fits(buf, offset, 1) {
		return 0, offset, ErrUnexpectedEOF
	}
	return buf[offset], offset + 1, nil
}

func ReadBoolChecked(buf []byte, offset int) (bool, int, error) {
	v, next, err := ReadU8Checked(buf, offset)
	if err != nil {
		return false, offset, err
	}
	if v > 1 {
		return false, offset, ErrInvalidBoolValue
	}
	return v == 1, next, nil
}

func ReadU16Checked(buf []byte, offset int) (uint16, int, error) {
	if !fits(buf, offset, 2) {
		return 0, offset, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint16(buf[offset:]), offset + 2, nil
}

func ReadU32Checked(buf []byte, offset int) (uint32, int, error) {
	if !fits(buf, offset, 4) {
		return 0, offset, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint32(buf[offset:]), offset + 4, nil
}

func ReadU64Checked(buf []byte, offset int) (uint64, int, error) {
	if !fits(buf, offset, 8) {
		return 0, offset, ErrUnexpectedEOF
	}
	return binary.BigEndian.Uint64(buf[offset:]), offset + 8, nil
}

// ReadBytesChecked reads a length-prefixed buffer. The returned slice aliases buf.
func ReadBytesChecked(buf []byte, offset int) ([]byte, int, error) {
	length, start, err := ReadU32Checked(buf, offset)
	if err != nil {
		return nil, offset, err
	}
	if uint64(length) > uint64(len(buf)-start) {
		return nil, offset, ErrUnexpectedEOF
	}
	end := start + int(length)
	return buf[start:end:end], end, nil
}

func ReadStringChecked(buf []byte, offset int) (string, int, error) {
	data, next, err := ReadBytesChecked(buf, offset)
	if err != nil {
		return "", offset, err
	}
	return string(data), next, nil
}

// ReadBigUintChecked reads a length-prefixed big-endian unsigned integer.
// A zero-length payload is zero.
func ReadBigUintChecked(buf []byte, offset int) (*big.Int, int, error) {
	data, next, err := ReadBytesChecked(buf, offset)
	if err != nil {
		return new(big.Int), offset, err
	}
	return new(big.Int).SetBytes(data), next, nil
}

func ReadAddressChecked(buf []byte, offset int) ([AddressLength]byte, int, error) {
	var addr [AddressLength]byte
	if !fits(buf, offset, AddressLength) {
		return addr, offset, ErrUnexpectedEOF
	}
	copy(addr[:], buf[offset:offset+AddressLength])
	return addr, offset + AddressLength, nil
}

// ---- Best-effort readers ----
//
// Contract responses for unknown ids come back empty or cut short. These
// readers turn any short read into the zero value and leave the offset where
// it was, so a record assembler can read a whole tuple without checks.

func ReadU8(buf []byte, offset int) (uint8, int) {
	v, next, _ := ReadU8Checked(buf, offset)
	return v, next
}

func ReadBool(buf []byte, offset int) (bool, int) {
	v, next, _ := ReadBoolChecked(buf, offset)
	return v, next
}

func ReadU16(buf []byte, offset int) (uint16, int) {
	v, next, _ := ReadU16Checked(buf, offset)
	return v, next
}

func ReadU32(buf []byte, offset int) (uint32, int) {
	v, next, _ := ReadU32Checked(buf, offset)
	return v, next
}

func ReadU64(buf []byte, offset int) (uint64, int) {
	v, next, _ := ReadU64Checked(buf, offset)
	return v, next
}

func ReadBytes(buf []byte, offset int) ([]byte, int) {
	v, next, err := ReadBytesChecked(buf, offset)
	if err != nil {
		return []byte{}, next
	}
	return v, next
}

func ReadString(buf []byte, offset int) (string, int) {
	v, next, _ := ReadStringChecked(buf, offset)
	return v, next
}

func ReadBigUint(buf []byte, offset int) (*big.Int, int) {
	v, next, _ := ReadBigUintChecked(buf, offset)
	return v, next
}

func ReadAddress(buf []byte, offset int) ([AddressLength]byte, int) {
	v, next, _ := ReadAddressChecked(buf, offset)
	return v, next
}

// ---- Writers ----

func AppendU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func AppendU16(dst []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(dst, v)
}

func AppendU32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}

func AppendU64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

func AppendBytes(dst []byte, v []byte) []byte {
	dst = AppendU32(dst, uint32(len(v)))
	return append(dst, v...)
}

func AppendString(dst []byte, v string) []byte {
	dst = AppendU32(dst, uint32(len(v)))
	return append(dst, v...)
}

// AppendBigUint writes the minimal big-endian magnitude of v. Nil and zero
// are written as an empty payload. The sign of v is ignored.
func AppendBigUint(dst []byte, v *big.Int) []byte {
	if v == nil || v.Sign() == 0 {
		return AppendU32(dst, 0)
	}
	return AppendBytes(dst, v.Bytes())
}

func AppendAddress(dst []byte, v [AddressLength]byte) []byte {
	return append(dst, v[:]...)
}

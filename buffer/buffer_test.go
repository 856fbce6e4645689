// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package buffer_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/pk910/mvx-abi/abiutils"
	"github.com/pk910/mvx-abi/buffer"
)

func TestBufferRoundTrip(t *testing.T) {
	enc := buffer.NewBufferEncoder(nil)
	enc.EncodeUint64(42)
	enc.EncodeString("Electric Dreams")
	enc.EncodeBigUint(big.NewInt(120000000000000000))
	enc.EncodeUint32(7)
	enc.EncodeUint16(3)
	enc.EncodeUint8(1)
	enc.EncodeBool(true)
	enc.EncodeAddress([32]byte{0xaa})
	enc.EncodeNestedBytes([]byte{1, 2, 3})
	enc.EncodeBytes([]byte{9, 9})

	dec := buffer.NewBufferDecoder(enc.GetBuffer())

	if v, err := dec.DecodeUint64(); err != nil || v != 42 {
		t.Fatalf("DecodeUint64: %v %v", v, err)
	}
	if v, err := dec.DecodeString(); err != nil || v != "Electric Dreams" {
		t.Fatalf("DecodeString: %q %v", v, err)
	}
	if v, err := dec.DecodeBigUint(); err != nil || v.Cmp(big.NewInt(120000000000000000)) != 0 {
		t.Fatalf("DecodeBigUint: %v %v", v, err)
	}
	if v, err := dec.DecodeUint32(); err != nil || v != 7 {
		t.Fatalf("DecodeUint32: %v %v", v, err)
	}
	if v, err := dec.DecodeUint16(); err != nil || v != 3 {
		t.Fatalf("DecodeUint16: %v %v", v, err)
	}
	if v, err := dec.DecodeUint8(); err != nil || v != 1 {
		t.Fatalf("DecodeUint8: %v %v", v, err)
	}
	if v, err := dec.DecodeBool(); err != nil || !v {
		t.Fatalf("DecodeBool: %v %v", v, err)
	}
	if v, err := dec.DecodeAddress(); err != nil || v[0] != 0xaa {
		t.Fatalf("DecodeAddress: %x %v", v, err)
	}
	if v, err := dec.DecodeNestedBytes(); err != nil || len(v) != 3 {
		t.Fatalf("DecodeNestedBytes: %x %v", v, err)
	}
	if v, err := dec.DecodeBytesBuf(-1); err != nil || len(v) != 2 {
		t.Fatalf("DecodeBytesBuf: %x %v", v, err)
	}
	if dec.GetLength() != 0 {
		t.Errorf("expected empty decoder, %v bytes left", dec.GetLength())
	}
}

func TestBufferDecoderNoAdvanceOnError(t *testing.T) {
	dec := buffer.NewBufferDecoder([]byte{0, 0, 0, 9, 'a', 'b'})

	if _, err := dec.DecodeString(); !errors.Is(err, abiutils.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
	if dec.GetPosition() != 0 {
		t.Fatalf("position moved on failed read: %v", dec.GetPosition())
	}
	if _, err := dec.DecodeUint64(); !errors.Is(err, abiutils.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
	if _, err := dec.DecodeAddress(); !errors.Is(err, abiutils.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
	if v, err := dec.DecodeUint32(); err != nil || v != 9 {
		t.Fatalf("DecodeUint32: %v %v", v, err)
	}
}

func TestBufferDecoderLimits(t *testing.T) {
	dec := buffer.NewBufferDecoder([]byte{1, 2, 3, 4, 5, 6})

	dec.PushLimit(2)
	if dec.GetLength() != 2 {
		t.Fatalf("expected 2 bytes under limit, got %v", dec.GetLength())
	}
	if _, err := dec.DecodeUint32(); !errors.Is(err, abiutils.ErrUnexpectedEOF) {
		t.Fatalf("read crossed limit: %v", err)
	}
	if v, err := dec.DecodeUint16(); err != nil || v != 0x0102 {
		t.Fatalf("DecodeUint16: %v %v", v, err)
	}
	if rest := dec.PopLimit(); rest != 0 {
		t.Fatalf("expected limit to be consumed, %v left", rest)
	}
	if dec.GetLength() != 4 {
		t.Fatalf("expected 4 bytes after pop, got %v", dec.GetLength())
	}
	if dec.PopLimit() != 0 {
		t.Fatalf("PopLimit on empty stack should return 0")
	}
}

func TestBase64Decoder(t *testing.T) {
	dec := buffer.NewBase64Decoder("AAAAAAAAACo=")
	if v, err := dec.DecodeUint64(); err != nil || v != 42 {
		t.Fatalf("DecodeUint64: %v %v", v, err)
	}

	dec = buffer.NewBase64Decoder("%%%")
	if dec.GetLength() != 0 {
		t.Fatalf("malformed base64 should give empty decoder")
	}
}

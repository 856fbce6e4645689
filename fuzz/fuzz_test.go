// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package fuzz

import (
	"math/big"
	"testing"
	"time"

	"github.com/pk910/mvx-abi/address"
	"github.com/pk910/mvx-abi/festival"
)

type fixedRecord struct {
	A uint64
	B uint32
	C uint16
	D uint8
	E bool
	F address.Address
}

type bufferRecord struct {
	Name  string `abi-required:"true" abi-max:"48"`
	Data  []byte `abi-max:"100"`
	Value *big.Int
	Raw   [32]byte
}

type listItem struct {
	Key   string
	Value uint32
}

type listRecord struct {
	ID     uint64
	Items  []listItem `abi-max:"20"`
	Counts []uint16   `abi-max:"50"`
	Tail   string
}

type nestedRecord struct {
	Head  fixedRecord
	Body  *bufferRecord
	Lists listRecord
}

func testCases() []any {
	return []any{
		&fixedRecord{},
		&bufferRecord{},
		&listRecord{},
		&nestedRecord{},
		&festival.FestivalData{},
		&festival.TicketPrice{},
		&festival.FestivalEvent{},
		&festival.FestivalProduct{},
		&festival.ResaleListing{},
	}
}

// FuzzMarshalUnmarshal checks random records survive a round trip and
// decode safely from every truncated prefix.
func FuzzMarshalUnmarshal(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(time.Now().UnixNano())

	f.Fuzz(func(t *testing.T, seed int64) {
		fuzzer := NewFuzzer(seed)

		for _, testCase := range testCases() {
			fuzzer.FuzzValue(testCase)

			data, err := fuzzer.FuzzMarshalUnmarshal(testCase)
			if err != nil {
				t.Fatalf("round trip failed for %T: %v", testCase, err)
			}

			if err := fuzzer.FuzzTruncation(testCase, data); err != nil {
				t.Fatalf("truncation failed for %T: %v", testCase, err)
			}
		}
	})
}

// FuzzGarbage checks best-effort decoding never fails on arbitrary input.
func FuzzGarbage(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00, 0x0f})
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0x01})

	fuzzer := NewFuzzer(1)

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, testCase := range testCases() {
			if err := fuzzer.FuzzGarbage(testCase, data); err != nil {
				t.Fatalf("garbage decode failed for %T: %v", testCase, err)
			}
		}
	})
}

func TestFuzzerRoundTrip(t *testing.T) {
	fuzzer := NewFuzzer(42)
	fuzzer.SetEdgeProbability(0.3)

	for i := 0; i < 50; i++ {
		for _, testCase := range testCases() {
			fuzzer.FuzzValue(testCase)

			data, err := fuzzer.FuzzMarshalUnmarshal(testCase)
			if err != nil {
				t.Fatalf("round trip failed for %T: %v", testCase, err)
			}
			if err := fuzzer.FuzzTruncation(testCase, data); err != nil {
				t.Fatalf("truncation failed for %T: %v", testCase, err)
			}
		}
	}
}

func TestFuzzerGarbage(t *testing.T) {
	fuzzer := NewFuzzer(7)

	for i := 0; i < 200; i++ {
		data := fuzzer.RandomBytes(fuzzer.Intn(256))
		for _, testCase := range testCases() {
			if err := fuzzer.FuzzGarbage(testCase, data); err != nil {
				t.Fatalf("garbage decode failed for %T: %v", testCase, err)
			}
		}
	}
}

func BenchmarkFuzzMarshalUnmarshal(b *testing.B) {
	fuzzer := NewFuzzer(42)
	record := &nestedRecord{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fuzzer.FuzzValue(record)
		if _, err := fuzzer.FuzzMarshalUnmarshal(record); err != nil {
			b.Fatalf("round trip failed: %v", err)
		}
	}
}

// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

// Package fuzz generates random records for round trip and truncation
// testing of the decoder.
package fuzz

import (
	"bytes"
	"fmt"
	"math/big"
	"math/rand"
	"reflect"
	"strconv"
	"strings"
	"time"

	mvxabi "github.com/pk910/mvx-abi"
)

// Fuzzer fills records with random values.
type Fuzzer struct {
	r        *rand.Rand
	abi      *mvxabi.MvxAbi
	edgeProb float64 // probability of generating edge case values
	maxLen   int
}

// NewFuzzer creates a fuzzer, a seed of 0 picks a time based seed.
func NewFuzzer(seed int64) *Fuzzer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Fuzzer{
		r:        rand.New(rand.NewSource(seed)),
		abi:      mvxabi.NewMvxAbi(nil),
		edgeProb: 0.1,
		maxLen:   64,
	}
}

// SetEdgeProbability sets the probability of generating edge case values.
func (f *Fuzzer) SetEdgeProbability(prob float64) {
	f.edgeProb = prob
}

// Abi returns the decoder used by the fuzzer.
func (f *Fuzzer) Abi() *mvxabi.MvxAbi {
	return f.abi
}

// FuzzValue fills v, a pointer to a record, with random data.
func (f *Fuzzer) FuzzValue(v any) {
	f.fuzzValue(reflect.ValueOf(v), 0, -1)
}

// RandomBytes returns up to maxLen random bytes.
func (f *Fuzzer) RandomBytes(maxLen int) []byte {
	buf := make([]byte, f.r.Intn(maxLen+1))
	f.r.Read(buf)
	return buf
}

// Intn returns a random number in [0, n).
func (f *Fuzzer) Intn(n int) int {
	return f.r.Intn(n)
}

// FuzzMarshalUnmarshal encodes original, decodes it strictly into a new
// record and checks that the new record encodes to the same bytes.
func (f *Fuzzer) FuzzMarshalUnmarshal(original any) ([]byte, error) {
	marshaled, err := f.abi.MarshalNested(original)
	if err != nil {
		return nil, fmt.Errorf("marshal failed: %w", err)
	}

	size, err := f.abi.SizeNested(original)
	if err != nil {
		return nil, fmt.Errorf("size failed: %w", err)
	}
	if size != len(marshaled) {
		return nil, fmt.Errorf("size mismatch: calculated %d, actual %d", size, len(marshaled))
	}

	originalType := reflect.TypeOf(original)
	if originalType.Kind() == reflect.Ptr {
		originalType = originalType.Elem()
	}
	unmarshaled := reflect.New(originalType).Interface()

	if err := f.abi.UnmarshalNested(unmarshaled, marshaled, mvxabi.WithStrict(), mvxabi.WithRequireFullConsumption()); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}

	remarshaled, err := f.abi.MarshalNested(unmarshaled)
	if err != nil {
		return nil, fmt.Errorf("remarshal failed: %w", err)
	}
	if !bytes.Equal(marshaled, remarshaled) {
		return nil, fmt.Errorf("marshal mismatch: %x != %x", marshaled, remarshaled)
	}

	return marshaled, nil
}

// FuzzTruncation decodes every proper prefix of data into new records of
// the type of template. Best-effort decoding must succeed and report at
// least one missing field, strict decoding must fail.
func (f *Fuzzer) FuzzTruncation(template any, data []byte) error {
	recordType := reflect.TypeOf(template)
	if recordType.Kind() == reflect.Ptr {
		recordType = recordType.Elem()
	}

	for cut := 0; cut < len(data); cut++ {
		var missing []string
		record := reflect.New(recordType).Interface()
		if err := f.abi.UnmarshalNested(record, data[:cut], mvxabi.WithMissingFields(&missing)); err != nil {
			return fmt.Errorf("best-effort decode of %d/%d bytes failed: %w", cut, len(data), err)
		}
		if len(missing) == 0 {
			return fmt.Errorf("decode of %d/%d bytes reported no missing fields", cut, len(data))
		}

		record = reflect.New(recordType).Interface()
		if err := f.abi.UnmarshalNested(record, data[:cut], mvxabi.WithStrict()); err == nil {
			return fmt.Errorf("strict decode of %d/%d bytes succeeded", cut, len(data))
		}
	}

	return nil
}

// FuzzGarbage decodes data best-effort into a new record of the type of
// template, which must never fail.
func (f *Fuzzer) FuzzGarbage(template any, data []byte) error {
	recordType := reflect.TypeOf(template)
	if recordType.Kind() == reflect.Ptr {
		recordType = recordType.Elem()
	}

	record := reflect.New(recordType).Interface()
	if err := f.abi.UnmarshalNested(record, data); err != nil {
		return fmt.Errorf("best-effort decode failed: %w", err)
	}

	return nil
}

func (f *Fuzzer) edgeCase() bool {
	return f.r.Float64() < f.edgeProb
}

// fuzzLen picks a length below limit, or below the fuzzer maximum when
// limit is negative.
func (f *Fuzzer) fuzzLen(limit int) int {
	if limit < 0 || limit > f.maxLen {
		limit = f.maxLen
	}
	if f.edgeCase() {
		if f.r.Intn(2) == 0 {
			return 0
		}
		return limit
	}
	return f.r.Intn(limit + 1)
}

func (f *Fuzzer) fuzzUint(bits int) uint64 {
	if f.edgeCase() {
		if f.r.Intn(2) == 0 {
			return 0
		}
		return ^uint64(0) >> (64 - bits)
	}
	return f.r.Uint64() >> (64 - bits)
}

var bigIntType = reflect.TypeOf(big.Int{})

func (f *Fuzzer) fuzzValue(v reflect.Value, depth int, limit int) {
	if depth > 8 {
		return
	}

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		if v.Type().Elem() == bigIntType {
			v.Set(reflect.ValueOf(new(big.Int).SetBytes(f.RandomBytes(f.fuzzLen(32)))))
			return
		}
		f.fuzzValue(v.Elem(), depth+1, limit)
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(f.r.Intn(2) == 1)
	case reflect.Uint8:
		v.SetUint(f.fuzzUint(8))
	case reflect.Uint16:
		v.SetUint(f.fuzzUint(16))
	case reflect.Uint32:
		v.SetUint(f.fuzzUint(32))
	case reflect.Uint64:
		v.SetUint(f.fuzzUint(64))
	case reflect.String:
		v.SetString(string(f.RandomBytes(f.fuzzLen(limit))))
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			f.fuzzValue(v.Index(i), depth+1, -1)
		}
	case reflect.Slice:
		length := f.fuzzLen(limit)
		if v.Type().Elem().Kind() == reflect.Uint8 {
			buf := make([]byte, length)
			f.r.Read(buf)
			v.SetBytes(buf)
			return
		}
		slice := reflect.MakeSlice(v.Type(), length, length)
		for i := 0; i < length; i++ {
			f.fuzzValue(slice.Index(i), depth+1, -1)
		}
		v.Set(slice)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Tag.Get("abi-type") == "-" {
				continue
			}
			f.fuzzValue(v.Field(i), depth+1, maxTag(field))
		}
	}
}

func maxTag(field reflect.StructField) int {
	tag, ok := field.Tag.Lookup("abi-max")
	if !ok {
		return -1
	}
	value, err := strconv.Atoi(strings.Split(tag, ",")[0])
	if err != nil {
		return -1
	}
	return value
}

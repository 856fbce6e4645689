// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abitypes_test

import (
	"errors"
	"math/big"
	"reflect"
	"testing"

	"github.com/pk910/mvx-abi/abitypes"
	"github.com/pk910/mvx-abi/abiutils"
)

type testSpecs map[string]uint64

func (s testSpecs) ResolveSpecValue(name string) (bool, uint64, error) {
	v, ok := s[name]
	return ok, v, nil
}

type descRecord struct {
	ID       uint64
	Name     string `abi-required:"true" abi-max:"64"`
	Price    *big.Int
	Owner    [32]byte
	Kind     uint8
	Internal string `abi-type:"-"`
	hidden   uint64
	Tags     []string `abi-max:"4" dynabi-max:"MAX_TAGS"`
}

type fixedRecord struct {
	A uint64
	B uint32
	C uint16
	D uint8
	E bool
	F [32]byte
}

func TestTypeDescriptorTuple(t *testing.T) {
	tc := abitypes.NewTypeCache(testSpecs{"MAX_TAGS": 16})

	desc, err := tc.GetTypeDescriptor(reflect.TypeOf(descRecord{}), nil, nil)
	if err != nil {
		t.Fatalf("GetTypeDescriptor failed: %v", err)
	}

	if desc.AbiType != abitypes.AbiTupleType {
		t.Fatalf("expected tuple type, got %v", desc.AbiType)
	}
	if !desc.IsDynamic() {
		t.Errorf("expected dynamic tuple")
	}

	fields := desc.ContainerDesc.Fields
	expected := []struct {
		name    string
		abiType abitypes.AbiType
	}{
		{"ID", abitypes.AbiU64Type},
		{"Name", abitypes.AbiStringType},
		{"Price", abitypes.AbiBigUintType},
		{"Owner", abitypes.AbiAddressType},
		{"Kind", abitypes.AbiU8Type},
		{"Tags", abitypes.AbiListType},
	}
	if len(fields) != len(expected) {
		t.Fatalf("expected %v fields, got %v", len(expected), len(fields))
	}
	for i, exp := range expected {
		if fields[i].Name != exp.name || fields[i].Type.AbiType != exp.abiType {
			t.Errorf("field %v: got %v/%v, want %v/%v", i, fields[i].Name, fields[i].Type.AbiType, exp.name, exp.abiType)
		}
	}

	if desc.ContainerDesc.RequiredField != 1 {
		t.Errorf("expected Name to be the required field, got %v", desc.ContainerDesc.RequiredField)
	}
	if fields[1].Type.Limit != 64 {
		t.Errorf("expected name limit 64, got %v", fields[1].Type.Limit)
	}
	if fields[5].Type.Limit != 16 || fields[5].Type.MaxExpression == nil {
		t.Errorf("expected tags limit 16 from spec value, got %v", fields[5].Type.Limit)
	}
	if !fields[2].Type.IsPointer() {
		t.Errorf("expected price to be a pointer type")
	}
}

func TestTypeDescriptorFixedSize(t *testing.T) {
	tc := abitypes.NewTypeCache(nil)

	desc, err := tc.GetTypeDescriptor(reflect.TypeOf(fixedRecord{}), nil, nil)
	if err != nil {
		t.Fatalf("GetTypeDescriptor failed: %v", err)
	}
	if desc.IsDynamic() {
		t.Errorf("expected static tuple")
	}
	if desc.Size != 8+4+2+1+1+32 {
		t.Errorf("unexpected size %v", desc.Size)
	}
}

func TestTypeDescriptorUnknownSpecFallsBack(t *testing.T) {
	tc := abitypes.NewTypeCache(testSpecs{})

	desc, err := tc.GetTypeDescriptor(reflect.TypeOf(descRecord{}), nil, nil)
	if err != nil {
		t.Fatalf("GetTypeDescriptor failed: %v", err)
	}
	tags := desc.ContainerDesc.Fields[5].Type
	if tags.Limit != 4 {
		t.Errorf("expected abi-max fallback 4, got %v", tags.Limit)
	}
}

func TestTypeDescriptorErrors(t *testing.T) {
	tc := abitypes.NewTypeCache(nil)

	testCases := []struct {
		name    string
		payload any
	}{
		{"signed int", struct{ A int64 }{}},
		{"float", struct{ A float64 }{}},
		{"map", struct{ A map[string]uint64 }{}},
		{"short array", struct{ A [20]byte }{}},
		{"bad type hint", struct {
			A uint64 `abi-type:"string"`
		}{}},
		{"unknown type hint", struct {
			A uint64 `abi-type:"u128"`
		}{}},
		{"two required fields", struct {
			A string `abi-required:"true"`
			B string `abi-required:"true"`
		}{}},
		{"bad max", struct {
			A string `abi-max:"x"`
		}{}},
		{"empty list item", struct{ A []struct{} }{}},
		{"skipped list item", struct {
			A []struct {
				B uint64 `abi-type:"skip"`
			}
		}{}},
	}

	for _, tc2 := range testCases {
		t.Run(tc2.name, func(t *testing.T) {
			if _, err := tc.GetTypeDescriptor(reflect.TypeOf(tc2.payload), nil, nil); err == nil {
				t.Errorf("expected error")
			}
		})
	}

	_, err := tc.GetTypeDescriptor(reflect.TypeOf(struct{ A int }{}), nil, nil)
	if !errors.Is(err, abiutils.ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestTypeCacheCaching(t *testing.T) {
	tc := abitypes.NewTypeCache(nil)

	d1, err := tc.GetTypeDescriptor(reflect.TypeOf(fixedRecord{}), nil, nil)
	if err != nil {
		t.Fatalf("GetTypeDescriptor failed: %v", err)
	}
	d2, _ := tc.GetTypeDescriptor(reflect.TypeOf(fixedRecord{}), nil, nil)
	if d1 != d2 {
		t.Errorf("expected cached descriptor")
	}
	if len(tc.GetAllTypes()) == 0 {
		t.Errorf("expected cached types")
	}

	tc.RemoveAllTypes()
	if len(tc.GetAllTypes()) != 0 {
		t.Errorf("expected empty cache")
	}
}

func TestParseAbiType(t *testing.T) {
	testCases := map[string]abitypes.AbiType{
		"u64":           abitypes.AbiU64Type,
		"BigUint":       abitypes.AbiBigUintType,
		"ManagedBuffer": abitypes.AbiBytesType,
		"Address":       abitypes.AbiAddressType,
		"string":        abitypes.AbiStringType,
		"-":             abitypes.AbiSkipType,
	}
	for name, expected := range testCases {
		got, err := abitypes.ParseAbiType(name)
		if err != nil || got != expected {
			t.Errorf("ParseAbiType(%v): got %v / %v, want %v", name, got, err, expected)
		}
	}
	if abitypes.AbiU64Type.String() != "u64" {
		t.Errorf("unexpected name %v", abitypes.AbiU64Type.String())
	}
}

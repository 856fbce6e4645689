// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package reflection

import (
	"math/big"
	"reflect"

	"github.com/pk910/mvx-abi/abitypes"
	"github.com/pk910/mvx-abi/abiutils"
)

type ReflectionCtx struct {
	ds      abiutils.DynamicSpecs
	logCb   func(format string, args ...any)
	verbose bool
}

func NewReflectionCtx(ds abiutils.DynamicSpecs, logCb func(format string, args ...any), verbose bool) *ReflectionCtx {
	return &ReflectionCtx{
		ds:      ds,
		logCb:   logCb,
		verbose: verbose,
	}
}

// DecodeState carries the per call decoding mode.
//
// In best-effort mode (Strict unset) a field that can not be read is left at
// its zero value and the decoder position is not moved. The paths of all such
// fields are collected in Missing.
type DecodeState struct {
	Strict  bool
	Missing []string
}

func (s *DecodeState) addMissing(path string) {
	s.Missing = append(s.Missing, path)
}

func getPtr(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)

	return ptr
}

func fieldPath(prefix string, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (ctx *ReflectionCtx) SizeNested(targetType *abitypes.TypeDescriptor, targetValue reflect.Value) (uint32, error) {
	return ctx.getValueSize(targetType, targetValue)
}

func (ctx *ReflectionCtx) MarshalNested(targetType *abitypes.TypeDescriptor, targetValue reflect.Value, encoder abiutils.Encoder) error {
	return ctx.marshalType(targetType, targetValue, encoder, 0)
}

func (ctx *ReflectionCtx) UnmarshalNested(targetType *abitypes.TypeDescriptor, targetValue reflect.Value, decoder abiutils.Decoder, state *DecodeState) error {
	if state == nil {
		state = &DecodeState{}
	}
	return ctx.unmarshalType(targetType, targetValue, decoder, state, "", 0)
}

// IsAbsent reports whether the abi-required field of a decoded tuple holds its
// zero value. Types without a required field are never absent.
func (ctx *ReflectionCtx) IsAbsent(targetType *abitypes.TypeDescriptor, targetValue reflect.Value) bool {
	if targetType.IsPointer() {
		if targetValue.IsNil() {
			return true
		}
		targetValue = targetValue.Elem()
	}

	if targetType.ContainerDesc == nil || targetType.ContainerDesc.RequiredField < 0 {
		return false
	}

	field := targetType.ContainerDesc.Fields[targetType.ContainerDesc.RequiredField]
	return isZeroValue(field.Type, targetValue.Field(int(field.FieldIndex)))
}

func isZeroValue(targetType *abitypes.TypeDescriptor, targetValue reflect.Value) bool {
	if targetType.IsPointer() {
		if targetValue.IsNil() {
			return true
		}
		targetValue = targetValue.Elem()
	}

	switch {
	case targetType.GoTypeFlags&abitypes.GoTypeFlagIsBigInt != 0:
		return getPtr(targetValue).Interface().(*big.Int).Sign() == 0
	case targetType.AbiType == abitypes.AbiListType, targetType.AbiType == abitypes.AbiBytesType && targetType.Kind == reflect.Slice:
		return targetValue.Len() == 0
	case targetType.ContainerDesc != nil:
		for _, field := range targetType.ContainerDesc.Fields {
			if !isZeroValue(field.Type, targetValue.Field(int(field.FieldIndex))) {
				return false
			}
		}
		return true
	}

	return targetValue.IsZero()
}

// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package reflection

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/pk910/mvx-abi/abitypes"
	"github.com/pk910/mvx-abi/abiutils"
)

// unmarshalType is the core recursive function for decoding nested encoded data into Go values.
//
// Parameters:
//   - targetType: The TypeDescriptor containing metadata about the type to decode
//   - targetValue: The reflect.Value where decoded data will be stored
//   - decoder: The decoder instance used to read the encoded data
//   - state: The decoding mode and the list of defaulted fields
//   - path: The field path used for error messages and the missing field report
//   - idt: Indentation level for verbose logging (when enabled)
//
// Primitive reads never move the decoder on failure. In best-effort mode the
// failed field is reset to its zero value and decoding continues at the same
// position with the next field.
func (ctx *ReflectionCtx) unmarshalType(targetType *abitypes.TypeDescriptor, targetValue reflect.Value, decoder abiutils.Decoder, state *DecodeState, path string, idt int) error {
	if targetType.IsPointer() {
		if targetValue.IsNil() {
			newValue := reflect.New(targetType.Type.Elem())
			targetValue.Set(newValue)
		}
		targetValue = targetValue.Elem()
	}

	if ctx.verbose {
		ctx.logCb("%stype: %s\t kind: %v\t abi: %v\t pos: %v\n", strings.Repeat(" ", idt), targetType.Type.Name(), targetType.Kind, targetType.AbiType, decoder.GetPosition())
	}

	var err error
	switch targetType.AbiType {
	// composite types
	case abitypes.AbiTupleType:
		return ctx.unmarshalTuple(targetType, targetValue, decoder, state, path, idt)
	case abitypes.AbiListType:
		return ctx.unmarshalList(targetType, targetValue, decoder, state, path, idt)
	case abitypes.AbiCustomType:
		nestedDecoder, ok := getPtr(targetValue).Interface().(abiutils.NestedDecoder)
		if !ok {
			return fmt.Errorf("type %v does not implement DecodeNested", targetType.Type)
		}
		startPos := decoder.GetPosition()
		err = nestedDecoder.DecodeNested(decoder)
		if err == nil && decoder.GetPosition() < startPos {
			err = fmt.Errorf("custom decoder for %v moved backwards", targetType.Type)
		}

	// length prefixed types
	case abitypes.AbiStringType, abitypes.AbiBytesType:
		err = ctx.unmarshalBuffer(targetType, targetValue, decoder, state, path)
	case abitypes.AbiBigUintType:
		var val *big.Int
		val, err = decoder.DecodeBigUint()
		if err == nil {
			getPtr(targetValue).Interface().(*big.Int).Set(val)
		}

	// fixed width types
	case abitypes.AbiBoolType:
		var val bool
		val, err = decoder.DecodeBool()
		if err == nil {
			targetValue.SetBool(val)
		}
	case abitypes.AbiU8Type:
		var val uint8
		val, err = decoder.DecodeUint8()
		if err == nil {
			targetValue.SetUint(uint64(val))
		}
	case abitypes.AbiU16Type:
		var val uint16
		val, err = decoder.DecodeUint16()
		if err == nil {
			targetValue.SetUint(uint64(val))
		}
	case abitypes.AbiU32Type:
		var val uint32
		val, err = decoder.DecodeUint32()
		if err == nil {
			targetValue.SetUint(uint64(val))
		}
	case abitypes.AbiU64Type:
		var val uint64
		val, err = decoder.DecodeUint64()
		if err == nil {
			targetValue.SetUint(val)
		}
	case abitypes.AbiAddressType:
		var val [abiutils.AddressLength]byte
		val, err = decoder.DecodeAddress()
		if err == nil {
			targetValue.Set(reflect.ValueOf(val).Convert(targetValue.Type()))
		}
	default:
		return fmt.Errorf("unknown type: %v", targetType.AbiType)
	}

	if err != nil {
		return ctx.handleFieldError(targetValue, state, path, err)
	}

	return nil
}

// handleFieldError either fails the decoding (strict mode) or resets the
// field to its zero value and records it as missing.
func (ctx *ReflectionCtx) handleFieldError(targetValue reflect.Value, state *DecodeState, path string, err error) error {
	if state.Strict {
		if path == "" {
			return err
		}
		return fmt.Errorf("field %v: %w", path, err)
	}

	if ctx.verbose {
		ctx.logCb("field %v defaulted: %v\n", path, err)
	}

	targetValue.Set(reflect.Zero(targetValue.Type()))
	state.addMissing(path)

	return nil
}

// unmarshalBuffer decodes a length prefixed buffer into a string or byte slice.
//
// A buffer longer than the abi-max limit is consumed but rejected.
func (ctx *ReflectionCtx) unmarshalBuffer(targetType *abitypes.TypeDescriptor, targetValue reflect.Value, decoder abiutils.Decoder, state *DecodeState, path string) error {
	buf, err := decoder.DecodeNestedBytes()
	if err != nil {
		return err
	}

	if targetType.HasLimit() && uint64(len(buf)) > targetType.Limit {
		return fmt.Errorf("%w: %v bytes (max %v)", abiutils.ErrBufferTooLong, len(buf), targetType.Limit)
	}

	if targetType.Kind == reflect.String {
		targetValue.SetString(string(buf))
		return nil
	}

	bufCopy := make([]byte, len(buf))
	copy(bufCopy, buf)
	targetValue.Set(reflect.ValueOf(bufCopy).Convert(targetValue.Type()))

	return nil
}

// unmarshalTuple decodes the fields of a tuple back to back in declaration order.
func (ctx *ReflectionCtx) unmarshalTuple(targetType *abitypes.TypeDescriptor, targetValue reflect.Value, decoder abiutils.Decoder, state *DecodeState, path string, idt int) error {
	for i := range targetType.ContainerDesc.Fields {
		field := &targetType.ContainerDesc.Fields[i]
		fieldValue := targetValue.Field(int(field.FieldIndex))

		if ctx.verbose {
			ctx.logCb("%sfield %d: %s\n", strings.Repeat(" ", idt+1), i, field.Name)
		}

		err := ctx.unmarshalType(field.Type, fieldValue, decoder, state, fieldPath(path, field.Name), idt+2)
		if err != nil {
			return err
		}
	}

	return nil
}

// unmarshalList decodes a u32 item count followed by the items.
//
// In best-effort mode the list is cut at the first item that could not be
// read at all, the remaining items are reported as one missing entry.
func (ctx *ReflectionCtx) unmarshalList(targetType *abitypes.TypeDescriptor, targetValue reflect.Value, decoder abiutils.Decoder, state *DecodeState, path string, idt int) error {
	count, err := decoder.DecodeUint32()
	if err != nil {
		return ctx.handleFieldError(targetValue, state, path, err)
	}

	overLimit := targetType.HasLimit() && uint64(count) > targetType.Limit
	if overLimit && state.Strict {
		return fmt.Errorf("field %v: %w: %v items (max %v)", path, abiutils.ErrBufferTooLong, count, targetType.Limit)
	}

	if ctx.verbose {
		ctx.logCb("%slist: %v items\n", strings.Repeat(" ", idt), count)
	}

	elemType := targetType.ElemDesc.Type
	capacity := int(count)
	if maxItems := decoder.GetLength(); capacity > maxItems {
		// every item takes at least one byte
		capacity = maxItems
	}
	newValue := reflect.MakeSlice(targetValue.Type(), 0, capacity)

	for i := 0; i < int(count); i++ {
		itemPath := fmt.Sprintf("%v[%d]", path, i)
		itemValue := reflect.New(elemType).Elem()
		missingBefore := len(state.Missing)
		startPos := decoder.GetPosition()

		err := ctx.unmarshalType(targetType.ElemDesc, itemValue, decoder, state, itemPath, idt+2)
		if err != nil {
			return err
		}

		if len(state.Missing) > missingBefore && decoder.GetPosition() == startPos {
			state.Missing = state.Missing[:missingBefore]
			state.addMissing(fmt.Sprintf("%v[%d:%d]", path, i, count))
			break
		}

		newValue = reflect.Append(newValue, itemValue)
	}

	if overLimit {
		return ctx.handleFieldError(targetValue, state, path, fmt.Errorf("%w: %v items (max %v)", abiutils.ErrBufferTooLong, count, targetType.Limit))
	}

	targetValue.Set(newValue)

	return nil
}

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

// marshalType is the core recursive function for nested encoding.
//
// Nil pointers are encoded as the zero value of their element type, buffers
// and lists exceeding their abi-max limit are rejected.
func (ctx *ReflectionCtx) marshalType(sourceType *abitypes.TypeDescriptor, sourceValue reflect.Value, encoder abiutils.Encoder, idt int) error {
	if sourceType.IsPointer() {
		if sourceValue.IsNil() {
			sourceValue = reflect.New(sourceType.Type.Elem()).Elem()
		} else {
			sourceValue = sourceValue.Elem()
		}
	}

	if ctx.verbose {
		ctx.logCb("%stype: %s\t kind: %v\t abi: %v\n", strings.Repeat(" ", idt), sourceType.Type.Name(), sourceType.Kind, sourceType.AbiType)
	}

	switch sourceType.AbiType {
	case abitypes.AbiTupleType:
		for i := range sourceType.ContainerDesc.Fields {
			field := &sourceType.ContainerDesc.Fields[i]
			err := ctx.marshalType(field.Type, sourceValue.Field(int(field.FieldIndex)), encoder, idt+2)
			if err != nil {
				return fmt.Errorf("failed encoding field %v: %w", field.Name, err)
			}
		}
	case abitypes.AbiListType:
		itemCount := sourceValue.Len()
		if sourceType.HasLimit() && uint64(itemCount) > sourceType.Limit {
			return fmt.Errorf("%w: %v items (max %v)", abiutils.ErrBufferTooLong, itemCount, sourceType.Limit)
		}
		encoder.EncodeUint32(uint32(itemCount))
		for i := 0; i < itemCount; i++ {
			err := ctx.marshalType(sourceType.ElemDesc, sourceValue.Index(i), encoder, idt+2)
			if err != nil {
				return fmt.Errorf("failed encoding item %v: %w", i, err)
			}
		}
	case abitypes.AbiCustomType:
		nestedEncoder, ok := getPtr(sourceValue).Interface().(abiutils.NestedEncoder)
		if !ok {
			return fmt.Errorf("type %v does not implement EncodeNested", sourceType.Type)
		}
		return nestedEncoder.EncodeNested(encoder)
	case abitypes.AbiStringType, abitypes.AbiBytesType:
		if sourceType.HasLimit() && uint64(sourceValue.Len()) > sourceType.Limit {
			return fmt.Errorf("%w: %v bytes (max %v)", abiutils.ErrBufferTooLong, sourceValue.Len(), sourceType.Limit)
		}
		if sourceType.Kind == reflect.String {
			encoder.EncodeString(sourceValue.String())
		} else {
			encoder.EncodeNestedBytes(sourceValue.Bytes())
		}
	case abitypes.AbiBigUintType:
		val := getPtr(sourceValue).Interface().(*big.Int)
		if val.Sign() < 0 {
			return fmt.Errorf("negative value %v can not be encoded as biguint", val)
		}
		encoder.EncodeBigUint(val)
	case abitypes.AbiBoolType:
		encoder.EncodeBool(sourceValue.Bool())
	case abitypes.AbiU8Type:
		encoder.EncodeUint8(uint8(sourceValue.Uint()))
	case abitypes.AbiU16Type:
		encoder.EncodeUint16(uint16(sourceValue.Uint()))
	case abitypes.AbiU32Type:
		encoder.EncodeUint32(uint32(sourceValue.Uint()))
	case abitypes.AbiU64Type:
		encoder.EncodeUint64(sourceValue.Uint())
	case abitypes.AbiAddressType:
		var addr [abiutils.AddressLength]byte
		reflect.Copy(reflect.ValueOf(&addr).Elem(), sourceValue)
		encoder.EncodeAddress(addr)
	default:
		return fmt.Errorf("unknown type: %v", sourceType.AbiType)
	}

	return nil
}

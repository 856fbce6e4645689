// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package reflection

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/pk910/mvx-abi/abitypes"
	"github.com/pk910/mvx-abi/abiutils"
)

// getValueSize calculates the nested encoded size of a value.
//
// Fixed width types and static tuples return their precomputed size, all
// other types are walked recursively.
func (ctx *ReflectionCtx) getValueSize(targetType *abitypes.TypeDescriptor, targetValue reflect.Value) (uint32, error) {
	if !targetType.IsDynamic() {
		return targetType.Size, nil
	}

	if targetType.IsPointer() {
		if targetValue.IsNil() {
			targetValue = reflect.New(targetType.Type.Elem()).Elem()
		} else {
			targetValue = targetValue.Elem()
		}
	}

	size := uint32(0)
	switch targetType.AbiType {
	case abitypes.AbiTupleType:
		for i := range targetType.ContainerDesc.Fields {
			field := &targetType.ContainerDesc.Fields[i]
			fieldSize, err := ctx.getValueSize(field.Type, targetValue.Field(int(field.FieldIndex)))
			if err != nil {
				return 0, err
			}
			size += fieldSize
		}
	case abitypes.AbiListType:
		size = abiutils.LengthPrefixSize
		for i := 0; i < targetValue.Len(); i++ {
			itemSize, err := ctx.getValueSize(targetType.ElemDesc, targetValue.Index(i))
			if err != nil {
				return 0, err
			}
			size += itemSize
		}
	case abitypes.AbiStringType, abitypes.AbiBytesType:
		size = abiutils.LengthPrefixSize + uint32(targetValue.Len())
	case abitypes.AbiBigUintType:
		val := getPtr(targetValue).Interface().(*big.Int)
		size = abiutils.LengthPrefixSize + uint32(len(val.Bytes()))
	case abitypes.AbiCustomType:
		// custom encoders are sized by the encoder buffer growth
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown dynamic type: %v", targetType.AbiType)
	}

	return size, nil
}

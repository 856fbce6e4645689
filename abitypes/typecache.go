// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package abitypes

import (
	"fmt"
	"math/big"
	"reflect"
	"sync"

	"github.com/pk910/mvx-abi/abiutils"
)

var (
	bigIntType        = reflect.TypeOf(big.Int{})
	nestedDecoderType = reflect.TypeOf((*abiutils.NestedDecoder)(nil)).Elem()
	nestedEncoderType = reflect.TypeOf((*abiutils.NestedEncoder)(nil)).Elem()
)

// TypeCache manages cached type descriptors
type TypeCache struct {
	specs       abiutils.DynamicSpecs
	mutex       sync.RWMutex
	descriptors map[reflect.Type]*TypeDescriptor
}

// NewTypeCache creates a new type cache
func NewTypeCache(specs abiutils.DynamicSpecs) *TypeCache {
	return &TypeCache{
		specs:       specs,
		descriptors: make(map[reflect.Type]*TypeDescriptor),
	}
}

// GetTypeDescriptor returns a cached type descriptor for the given type, computing it if necessary.
//
// Descriptors are only cached for root types (no hints from a parent field),
// hinted descriptors depend on the field they were built for.
func (tc *TypeCache) GetTypeDescriptor(t reflect.Type, maxHints []AbiMaxHint, typeHints []AbiTypeHint) (*TypeDescriptor, error) {
	if len(maxHints) == 0 && len(typeHints) == 0 {
		tc.mutex.RLock()
		if desc, exists := tc.descriptors[t]; exists {
			tc.mutex.RUnlock()
			return desc, nil
		}
		tc.mutex.RUnlock()
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	return tc.getTypeDescriptor(t, maxHints, typeHints)
}

// GetAllTypes returns all cached root types.
func (tc *TypeCache) GetAllTypes() []reflect.Type {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()

	types := make([]reflect.Type, 0, len(tc.descriptors))
	for t := range tc.descriptors {
		types = append(types, t)
	}
	return types
}

// RemoveAllTypes clears the cache.
func (tc *TypeCache) RemoveAllTypes() {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	tc.descriptors = make(map[reflect.Type]*TypeDescriptor)
}

func (tc *TypeCache) getTypeDescriptor(t reflect.Type, maxHints []AbiMaxHint, typeHints []AbiTypeHint) (*TypeDescriptor, error) {
	cacheable := len(maxHints) == 0 && len(typeHints) == 0
	if desc, exists := tc.descriptors[t]; exists && cacheable {
		return desc, nil
	}

	desc, err := tc.buildTypeDescriptor(t, maxHints, typeHints)
	if err != nil {
		return nil, err
	}

	if cacheable {
		tc.descriptors[t] = desc
	}

	return desc, nil
}

// buildTypeDescriptor computes a type descriptor for the given type
func (tc *TypeCache) buildTypeDescriptor(t reflect.Type, maxHints []AbiMaxHint, typeHints []AbiTypeHint) (*TypeDescriptor, error) {
	desc := &TypeDescriptor{
		Type: t,
	}

	if t.Kind() == reflect.Ptr {
		desc.GoTypeFlags |= GoTypeFlagIsPointer
		t = t.Elem()
	}

	desc.Kind = t.Kind()

	if len(maxHints) > 0 {
		if !maxHints[0].NoValue {
			desc.AbiTypeFlags |= AbiTypeFlagHasLimit
			desc.Limit = maxHints[0].Size
		}
		if maxHints[0].Custom {
			desc.AbiTypeFlags |= AbiTypeFlagHasDynamicMax
		}
		if maxHints[0].Expr != "" {
			expr := maxHints[0].Expr
			desc.MaxExpression = &expr
			desc.AbiTypeFlags |= AbiTypeFlagHasMaxExpr
		}
	}

	ptrType := reflect.PointerTo(t)
	if ptrType.Implements(nestedDecoderType) {
		desc.CompatFlags |= AbiCompatFlagNestedDecoder
	}
	if ptrType.Implements(nestedEncoderType) {
		desc.CompatFlags |= AbiCompatFlagNestedEncoder
	}

	if t == bigIntType {
		desc.GoTypeFlags |= GoTypeFlagIsBigInt
	}
	if desc.Kind == reflect.String {
		desc.GoTypeFlags |= GoTypeFlagIsString
	}
	if (desc.Kind == reflect.Slice || desc.Kind == reflect.Array) && t.Elem().Kind() == reflect.Uint8 {
		desc.GoTypeFlags |= GoTypeFlagIsByteArray
	}

	abiType := AbiUnspecifiedType
	if len(typeHints) > 0 {
		abiType = typeHints[0].Type
	}

	if abiType == AbiUnspecifiedType && desc.CompatFlags&AbiCompatFlagNestedDecoder != 0 {
		abiType = AbiCustomType
	}

	if abiType == AbiUnspecifiedType {
		switch {
		case desc.GoTypeFlags&GoTypeFlagIsBigInt != 0:
			abiType = AbiBigUintType
		case desc.Kind == reflect.Bool:
			abiType = AbiBoolType
		case desc.Kind == reflect.Uint8:
			abiType = AbiU8Type
		case desc.Kind == reflect.Uint16:
			abiType = AbiU16Type
		case desc.Kind == reflect.Uint32:
			abiType = AbiU32Type
		case desc.Kind == reflect.Uint64:
			abiType = AbiU64Type
		case desc.Kind == reflect.String:
			abiType = AbiStringType
		case desc.Kind == reflect.Slice && desc.GoTypeFlags&GoTypeFlagIsByteArray != 0:
			abiType = AbiBytesType
		case desc.Kind == reflect.Array && desc.GoTypeFlags&GoTypeFlagIsByteArray != 0 && t.Len() == abiutils.AddressLength:
			abiType = AbiAddressType
		case desc.Kind == reflect.Slice:
			abiType = AbiListType
		case desc.Kind == reflect.Struct:
			abiType = AbiTupleType

		case desc.Kind == reflect.Int, desc.Kind == reflect.Int8, desc.Kind == reflect.Int16, desc.Kind == reflect.Int32, desc.Kind == reflect.Int64:
			return nil, fmt.Errorf("%w: signed integers are not supported (use unsigned integers or big.Int)", abiutils.ErrUnsupportedType)
		case desc.Kind == reflect.Float32, desc.Kind == reflect.Float64:
			return nil, fmt.Errorf("%w: floating-point numbers are not supported", abiutils.ErrUnsupportedType)
		case desc.Kind == reflect.Map:
			return nil, fmt.Errorf("%w: maps are not supported (use structs or lists instead)", abiutils.ErrUnsupportedType)
		case desc.Kind == reflect.Interface:
			return nil, fmt.Errorf("%w: interfaces are not supported (use concrete types)", abiutils.ErrUnsupportedType)
		default:
			return nil, fmt.Errorf("%w: %v", abiutils.ErrUnsupportedType, t)
		}
	}

	desc.AbiType = abiType

	// check type compatibility and compute size
	switch abiType {
	case AbiBoolType:
		if desc.Kind != reflect.Bool {
			return nil, fmt.Errorf("bool abi type can only be represented by bool types, got %v", desc.Kind)
		}
	case AbiU8Type:
		if desc.Kind != reflect.Uint8 {
			return nil, fmt.Errorf("u8 abi type can only be represented by uint8 types, got %v", desc.Kind)
		}
	case AbiU16Type:
		if desc.Kind != reflect.Uint16 {
			return nil, fmt.Errorf("u16 abi type can only be represented by uint16 types, got %v", desc.Kind)
		}
	case AbiU32Type:
		if desc.Kind != reflect.Uint32 {
			return nil, fmt.Errorf("u32 abi type can only be represented by uint32 types, got %v", desc.Kind)
		}
	case AbiU64Type:
		if desc.Kind != reflect.Uint64 {
			return nil, fmt.Errorf("u64 abi type can only be represented by uint64 types, got %v", desc.Kind)
		}
	case AbiAddressType:
		if desc.Kind != reflect.Array || desc.GoTypeFlags&GoTypeFlagIsByteArray == 0 || t.Len() != abiutils.AddressLength {
			return nil, fmt.Errorf("address abi type can only be represented by [32]byte types, got %v", t)
		}
	case AbiStringType, AbiBytesType:
		if desc.Kind != reflect.String && (desc.Kind != reflect.Slice || desc.GoTypeFlags&GoTypeFlagIsByteArray == 0) {
			return nil, fmt.Errorf("%v abi type can only be represented by string or []byte types, got %v", abiType, t)
		}
		desc.AbiTypeFlags |= AbiTypeFlagIsDynamic
	case AbiBigUintType:
		if desc.GoTypeFlags&GoTypeFlagIsBigInt == 0 {
			return nil, fmt.Errorf("biguint abi type can only be represented by big.Int types, got %v", t)
		}
		desc.AbiTypeFlags |= AbiTypeFlagIsDynamic
	case AbiTupleType:
		if desc.Kind != reflect.Struct {
			return nil, fmt.Errorf("tuple abi type can only be represented by struct types, got %v", desc.Kind)
		}
		if err := tc.buildContainerDescriptor(desc, t); err != nil {
			return nil, err
		}
	case AbiListType:
		if desc.Kind != reflect.Slice {
			return nil, fmt.Errorf("list abi type can only be represented by slice types, got %v", desc.Kind)
		}
		var childTypeHints []AbiTypeHint
		if len(typeHints) > 1 {
			childTypeHints = typeHints[1:]
		}
		var childMaxHints []AbiMaxHint
		if len(maxHints) > 1 {
			childMaxHints = maxHints[1:]
		}
		elemDesc, err := tc.getTypeDescriptor(t.Elem(), childMaxHints, childTypeHints)
		if err != nil {
			return nil, fmt.Errorf("failed to build list item descriptor: %w", err)
		}
		if !elemDesc.IsDynamic() && elemDesc.Size == 0 {
			// a count could never be checked against the remaining bytes
			return nil, fmt.Errorf("%w: list items of %v encode to zero bytes", abiutils.ErrUnsupportedType, t.Elem())
		}
		desc.ElemDesc = elemDesc
		desc.AbiTypeFlags |= AbiTypeFlagIsDynamic
	case AbiCustomType:
		if desc.CompatFlags&AbiCompatFlagNestedDecoder == 0 {
			return nil, fmt.Errorf("custom abi type requires a DecodeNested implementation on %v", t)
		}
		desc.AbiTypeFlags |= AbiTypeFlagIsDynamic
	case AbiSkipType:
		return nil, fmt.Errorf("skip abi type is only valid on struct fields")
	}

	if desc.AbiTypeFlags&AbiTypeFlagIsDynamic == 0 && abiType != AbiTupleType {
		desc.Size = abiType.FixedSize()
	}

	return desc, nil
}

// buildContainerDescriptor collects the exported struct fields in declaration order.
func (tc *TypeCache) buildContainerDescriptor(desc *TypeDescriptor, t reflect.Type) error {
	container := &ContainerDescriptor{
		Fields:        make([]FieldDescriptor, 0, t.NumField()),
		RequiredField: -1,
	}

	size := uint32(0)
	dynamic := false

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		typeHints, err := getAbiTypeTag(&field)
		if err != nil {
			return err
		}
		if len(typeHints) > 0 && typeHints[0].Type == AbiSkipType {
			continue
		}

		maxHints, err := getAbiMaxTag(tc.specs, &field)
		if err != nil {
			return err
		}

		required, err := getAbiRequiredTag(&field)
		if err != nil {
			return err
		}

		fieldDesc, err := tc.getTypeDescriptor(field.Type, maxHints, typeHints)
		if err != nil {
			return fmt.Errorf("field '%v': %w", field.Name, err)
		}

		if required {
			if container.RequiredField >= 0 {
				return fmt.Errorf("field '%v': only one field per tuple can be abi-required", field.Name)
			}
			container.RequiredField = len(container.Fields)
		}

		container.Fields = append(container.Fields, FieldDescriptor{
			Name:       field.Name,
			Type:       fieldDesc,
			FieldIndex: uint16(i),
			Required:   required,
		})

		if fieldDesc.IsDynamic() {
			dynamic = true
		} else {
			size += fieldDesc.Size
		}
	}

	desc.ContainerDesc = container
	if dynamic {
		desc.AbiTypeFlags |= AbiTypeFlagIsDynamic
	} else {
		desc.Size = size
	}

	return nil
}
